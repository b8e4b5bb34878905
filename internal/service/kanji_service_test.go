package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestKanjiList_NoFilter(t *testing.T) {
	repo := new(mockKanjiRepo)
	svc := NewKanjiService(repo)

	all := []*domain.Kanji{{ID: 1, Character: "水"}, {ID: 2, Character: "火"}}
	repo.On("FindAll", mock.Anything).Return(all, nil)

	results, err := svc.List(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SearchByCharacter", mock.Anything, mock.Anything)
}

func TestKanjiList_BlankFilterMeansAll(t *testing.T) {
	repo := new(mockKanjiRepo)
	svc := NewKanjiService(repo)

	all := []*domain.Kanji{{ID: 1, Character: "水"}, {ID: 2, Character: "火"}}
	repo.On("FindAll", mock.Anything).Return(all, nil)

	for _, filter := range []string{" ", "  ", "\t\n"} {
		results, err := svc.List(context.Background(), filter)
		assert.NoError(t, err)
		assert.Len(t, results, 2)
	}
	repo.AssertNotCalled(t, "SearchByCharacter", mock.Anything, mock.Anything)
}

func TestKanjiList_WithFilter(t *testing.T) {
	repo := new(mockKanjiRepo)
	svc := NewKanjiService(repo)

	repo.On("SearchByCharacter", mock.Anything, "水").Return([]*domain.Kanji{{ID: 1, Character: "水"}}, nil)

	results, err := svc.List(context.Background(), "水")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	repo.AssertExpectations(t)
}

func TestKanjiList_RepoError(t *testing.T) {
	repo := new(mockKanjiRepo)
	svc := NewKanjiService(repo)

	repo.On("FindAll", mock.Anything).Return(nil, errors.New("db error"))

	results, err := svc.List(context.Background(), "")
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestKanjiGet(t *testing.T) {
	repo := new(mockKanjiRepo)
	svc := NewKanjiService(repo)

	repo.On("FindByCharacter", mock.Anything, "水").Return(&domain.Kanji{ID: 1, Character: "水"}, nil)
	repo.On("FindByCharacter", mock.Anything, "犬").Return(nil, common.ErrKanjiNotFound)

	k, err := svc.Get(context.Background(), "水")
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), k.ID)

	_, err = svc.Get(context.Background(), "犬")
	assert.ErrorIs(t, err, common.ErrKanjiNotFound)
}
