package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"gorm.io/gorm"
)

// UserKanjiRepository study record data access interface
type UserKanjiRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.UserKanji, error)
	UpdateLastReviewedAt(ctx context.Context, userKanji *domain.UserKanji, reviewedAt *time.Time) error
	List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.UserKanji, error)
}

type userKanjiRepository struct {
	db *gorm.DB
}

// NewUserKanjiRepository creates a new UserKanjiRepository
func NewUserKanjiRepository(db *gorm.DB) UserKanjiRepository {
	return &userKanjiRepository{db: db}
}

// FindByID loads a record with its kanji
func (r *userKanjiRepository) FindByID(ctx context.Context, id uint64) (*domain.UserKanji, error) {
	var uk domain.UserKanji
	err := r.db.WithContext(ctx).Preload("Kanji").Where("id = ?", id).First(&uk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserKanjiNotFound
		}
		return nil, err
	}
	return &uk, nil
}

// UpdateLastReviewedAt writes last_reviewed_at (and updated_at) for one row
func (r *userKanjiRepository) UpdateLastReviewedAt(ctx context.Context, userKanji *domain.UserKanji, reviewedAt *time.Time) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.UserKanji{ID: userKanji.ID}).
		Updates(map[string]interface{}{
			"last_reviewed_at": reviewedAt,
			"updated_at":       now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrUserKanjiNotFound
	}
	userKanji.LastReviewedAt = reviewedAt
	userKanji.UpdatedAt = now
	return nil
}

// List returns records matching scope (e.g. a policy scope) in id order
func (r *userKanjiRepository) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.UserKanji, error) {
	rows := make([]*domain.UserKanji, 0)
	query := r.db.WithContext(ctx).Model(&domain.UserKanji{})
	if scope != nil {
		query = query.Scopes(scope)
	}
	err := query.Order("id ASC").Find(&rows).Error
	return rows, err
}
