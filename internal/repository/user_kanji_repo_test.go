package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/repository"
	"github.com/kanjidojo/kanji-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserKanjiRepository_FindByID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserKanjiRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "taro")
	k := testutil.CreateKanji(t, db, "水", "water")
	uk := testutil.CreateUserKanji(t, db, u.ID, k.ID, nil)

	got, err := repo.FindByID(ctx, uk.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Nil(t, got.LastReviewedAt)
	require.NotNil(t, got.Kanji)
	assert.Equal(t, "水", got.Kanji.Character)

	_, err = repo.FindByID(ctx, uk.ID+100)
	assert.ErrorIs(t, err, common.ErrUserKanjiNotFound)
}

func TestUserKanjiRepository_UpdateLastReviewedAt(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserKanjiRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "taro")
	k := testutil.CreateKanji(t, db, "水", "water")
	uk := testutil.CreateUserKanji(t, db, u.ID, k.ID, nil)

	reviewed := time.Date(2025, 7, 27, 19, 45, 49, 0, time.UTC)
	require.NoError(t, repo.UpdateLastReviewedAt(ctx, uk, &reviewed))

	got, err := repo.FindByID(ctx, uk.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, reviewed.Equal(*got.LastReviewedAt))

	// clearing
	require.NoError(t, repo.UpdateLastReviewedAt(ctx, got, nil))
	got, err = repo.FindByID(ctx, uk.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastReviewedAt)

	// kanji row untouched
	var kanji domain.Kanji
	require.NoError(t, db.First(&kanji, k.ID).Error)
	assert.Equal(t, []string{"water"}, kanji.Meanings)
}

func TestUserKanjiRepository_UpdateMissingRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserKanjiRepository(db)

	now := time.Now()
	err := repo.UpdateLastReviewedAt(context.Background(), &domain.UserKanji{ID: 404}, &now)
	assert.ErrorIs(t, err, common.ErrUserKanjiNotFound)
}

func TestUserKanjiRepository_ListWithScope(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserKanjiRepository(db)

	taro := testutil.CreateUser(t, db, "taro")
	hanako := testutil.CreateUser(t, db, "hanako")
	water := testutil.CreateKanji(t, db, "水", "water")
	fire := testutil.CreateKanji(t, db, "火", "fire")
	testutil.CreateUserKanji(t, db, taro.ID, water.ID, nil)
	testutil.CreateUserKanji(t, db, taro.ID, fire.ID, nil)
	testutil.CreateUserKanji(t, db, hanako.ID, water.ID, nil)

	all, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyHanako := func(tx *gorm.DB) *gorm.DB { return tx.Where("user_id = ?", hanako.ID) }
	rows, err := repo.List(context.Background(), onlyHanako)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, hanako.ID, rows[0].UserID)
}
