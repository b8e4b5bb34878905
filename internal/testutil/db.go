// Package testutil builds migrated in-memory databases for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/kanjidojo/kanji-backend/internal/database"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/migration"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns an in-memory SQLite database with the full schema applied
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, migration.Up(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with an unusable password hash
func CreateUser(t testing.TB, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Password: "-", Nickname: username}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateKanji inserts a kanji with the given character and meanings
func CreateKanji(t testing.TB, db *gorm.DB, character string, meanings ...string) *domain.Kanji {
	t.Helper()
	k := &domain.Kanji{Character: character, Meanings: meanings}
	require.NoError(t, db.Create(k).Error)
	return k
}

// CreateUserKanji links a user to a kanji
func CreateUserKanji(t testing.TB, db *gorm.DB, userID, kanjiID uint64, reviewed *time.Time) *domain.UserKanji {
	t.Helper()
	uk := &domain.UserKanji{UserID: userID, KanjiID: kanjiID, LastReviewedAt: reviewed}
	require.NoError(t, db.Create(uk).Error)
	return uk
}
