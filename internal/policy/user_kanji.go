package policy

import (
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"gorm.io/gorm"
)

// UserKanjiPolicy only the owner may see or change a study record
type UserKanjiPolicy struct{}

var _ Policy[domain.UserKanji] = UserKanjiPolicy{}

func (UserKanjiPolicy) CanShow(user *domain.User, record *domain.UserKanji) bool {
	return owns(user, record)
}

func (UserKanjiPolicy) CanUpdate(user *domain.User, record *domain.UserKanji) bool {
	return owns(user, record)
}

func (UserKanjiPolicy) CanDestroy(user *domain.User, record *domain.UserKanji) bool {
	return owns(user, record)
}

// CanCreate any signed-in user may create their own records
func (UserKanjiPolicy) CanCreate(user *domain.User, _ *domain.UserKanji) bool {
	return user != nil && user.ID != 0
}

// Scope restricts a query to rows owned by user. A nil user sees nothing.
func (UserKanjiPolicy) Scope(user *domain.User) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if user == nil || user.ID == 0 {
			return tx.Where("1 = 0")
		}
		return tx.Where("user_kanjis.user_id = ?", user.ID)
	}
}

func owns(user *domain.User, record *domain.UserKanji) bool {
	if user == nil || record == nil || user.ID == 0 {
		return false
	}
	return record.UserID == user.ID
}
