package service

import (
	"context"
	"time"

	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- Mock KanjiRepository ---

type mockKanjiRepo struct {
	mock.Mock
}

func (m *mockKanjiRepo) FindAll(ctx context.Context) ([]*domain.Kanji, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Kanji), args.Error(1)
}

func (m *mockKanjiRepo) SearchByCharacter(ctx context.Context, query string) ([]*domain.Kanji, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Kanji), args.Error(1)
}

func (m *mockKanjiRepo) FindByCharacter(ctx context.Context, character string) (*domain.Kanji, error) {
	args := m.Called(ctx, character)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Kanji), args.Error(1)
}

// --- Mock UserKanjiRepository ---

type mockUserKanjiRepo struct {
	mock.Mock
}

func (m *mockUserKanjiRepo) FindByID(ctx context.Context, id uint64) (*domain.UserKanji, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserKanji), args.Error(1)
}

func (m *mockUserKanjiRepo) UpdateLastReviewedAt(ctx context.Context, uk *domain.UserKanji, reviewedAt *time.Time) error {
	err := m.Called(ctx, uk, reviewedAt).Error(0)
	if err == nil {
		uk.LastReviewedAt = reviewedAt
	}
	return err
}

func (m *mockUserKanjiRepo) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.UserKanji, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserKanji), args.Error(1)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
