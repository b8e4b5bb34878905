package service

import (
	"context"
	"strings"

	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/repository"
)

// KanjiService read-only catalog queries
type KanjiService interface {
	List(ctx context.Context, character string) ([]*domain.Kanji, error)
	Get(ctx context.Context, character string) (*domain.Kanji, error)
}

type kanjiService struct {
	repo repository.KanjiRepository
}

// NewKanjiService creates a new KanjiService
func NewKanjiService(repo repository.KanjiRepository) KanjiService {
	return &kanjiService{repo: repo}
}

// List returns every kanji, or only those whose character contains the
// filter (case-insensitive) when one is given. A blank filter counts as none.
func (s *kanjiService) List(ctx context.Context, character string) ([]*domain.Kanji, error) {
	if strings.TrimSpace(character) == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.SearchByCharacter(ctx, character)
}

// Get looks a kanji up by its exact character
func (s *kanjiService) Get(ctx context.Context, character string) (*domain.Kanji, error) {
	return s.repo.FindByCharacter(ctx, character)
}
