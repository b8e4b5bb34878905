package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KanjiRepository kanji catalog data access interface
type KanjiRepository interface {
	FindAll(ctx context.Context) ([]*domain.Kanji, error)
	SearchByCharacter(ctx context.Context, query string) ([]*domain.Kanji, error)
	FindByCharacter(ctx context.Context, character string) (*domain.Kanji, error)
}

type kanjiRepository struct {
	db *gorm.DB
}

// NewKanjiRepository creates a new KanjiRepository
func NewKanjiRepository(db *gorm.DB) KanjiRepository {
	return &kanjiRepository{db: db}
}

var characterColumn = clause.Column{Name: "character"}

// FindAll returns every kanji in id order
func (r *kanjiRepository) FindAll(ctx context.Context) ([]*domain.Kanji, error) {
	kanjis := make([]*domain.Kanji, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&kanjis).Error
	return kanjis, err
}

// SearchByCharacter returns kanji whose character contains query, ignoring case
func (r *kanjiRepository) SearchByCharacter(ctx context.Context, query string) ([]*domain.Kanji, error) {
	kanjis := make([]*domain.Kanji, 0)
	pattern := "%" + escapeLike(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(?) LIKE LOWER(?) ESCAPE '!'", characterColumn, pattern).
		Order("id ASC").
		Find(&kanjis).Error
	return kanjis, err
}

// FindByCharacter returns the kanji with exactly this character
func (r *kanjiRepository) FindByCharacter(ctx context.Context, character string) (*domain.Kanji, error) {
	var kanji domain.Kanji
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: characterColumn, Value: character}).
		Order("id ASC").
		First(&kanji).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrKanjiNotFound
		}
		return nil, err
	}
	return &kanji, nil
}

// escapeLike neutralizes LIKE wildcards; '!' is the escape character
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
