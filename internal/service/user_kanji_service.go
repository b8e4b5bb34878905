package service

import (
	"context"
	"strconv"
	"time"

	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/policy"
	"github.com/kanjidojo/kanji-backend/internal/repository"
	"github.com/kanjidojo/kanji-backend/pkg/logger"
)

// UserKanjiService study record business logic
type UserKanjiService interface {
	Get(ctx context.Context, user *domain.User, id uint64) (*domain.UserKanji, error)
	Update(ctx context.Context, user *domain.User, id uint64, patch domain.UserKanjiPatch) (*domain.UserKanji, error)
}

type userKanjiService struct {
	repo   repository.UserKanjiRepository
	policy policy.UserKanjiPolicy
}

// NewUserKanjiService creates a new UserKanjiService
func NewUserKanjiService(repo repository.UserKanjiRepository) UserKanjiService {
	return &userKanjiService{repo: repo}
}

// Get loads a record; missing rows win over ownership failures
func (s *userKanjiService) Get(ctx context.Context, user *domain.User, id uint64) (*domain.UserKanji, error) {
	uk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize[domain.UserKanji](s.policy, policy.ActionShow, user, uk); err != nil {
		return nil, err
	}
	return uk, nil
}

// Update applies the patch. Writing the value already stored is a no-op.
func (s *userKanjiService) Update(ctx context.Context, user *domain.User, id uint64, patch domain.UserKanjiPatch) (*domain.UserKanji, error) {
	uk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize[domain.UserKanji](s.policy, policy.ActionUpdate, user, uk); err != nil {
		return nil, err
	}

	if !patch.Set {
		return uk, nil
	}

	next := normalizeTime(patch.LastReviewedAt)
	if sameTime(uk.LastReviewedAt, next) {
		return uk, nil
	}

	if err := s.repo.UpdateLastReviewedAt(ctx, uk, next); err != nil {
		return nil, err
	}

	log := logger.WithUserID(strconv.FormatUint(uk.UserID, 10))
	log.Debug().Uint64("user_kanji_id", uk.ID).Msg("last_reviewed_at updated")

	return uk, nil
}

// normalizeTime stores times as UTC with the precision of DATETIME(6)
func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
