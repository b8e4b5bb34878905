package domain

import "time"

// UserKanji one user's study state for one kanji (user_kanjis table).
// (user_id, kanji_id) is unique.
type UserKanji struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID         uint64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_kanjis_user_kanji" json:"user_id"`
	KanjiID        uint64     `gorm:"column:kanji_id;not null;uniqueIndex:idx_user_kanjis_user_kanji" json:"kanji_id"`
	LastReviewedAt *time.Time `gorm:"column:last_reviewed_at" json:"last_reviewed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Kanji *Kanji `gorm:"foreignKey:KanjiID;constraint:OnDelete:CASCADE" json:"kanji,omitempty"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserKanji) TableName() string { return "user_kanjis" }

// UserKanjiPatch the whitelisted update. LastReviewedAt is applied only when
// Set is true; a nil value with Set clears the timestamp.
type UserKanjiPatch struct {
	LastReviewedAt *time.Time
	Set            bool
}
