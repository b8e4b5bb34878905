package domain

import (
	"time"

	"gorm.io/gorm"
)

// Kanji a catalog character with its readings and metadata (kanjis table).
// String lists are stored as JSON arrays.
type Kanji struct {
	ID                  uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Character           string    `gorm:"column:character;type:varchar(16);index" json:"character"`
	Meanings            []string  `gorm:"column:meanings;serializer:json" json:"meanings"`
	Onyomi              []string  `gorm:"column:onyomi;serializer:json" json:"onyomi"`
	Kunyomi             []string  `gorm:"column:kunyomi;serializer:json" json:"kunyomi"`
	NameReadings        []string  `gorm:"column:name_readings;serializer:json" json:"name_readings"`
	Notes               []string  `gorm:"column:notes;serializer:json" json:"notes"`
	HeisigEn            string    `gorm:"column:heisig_en;type:varchar(255)" json:"heisig_en"`
	StrokeCount         *int      `gorm:"column:stroke_count" json:"stroke_count"`
	Grade               *int      `gorm:"column:grade" json:"grade"`
	JLPTLevel           *int      `gorm:"column:jlpt_level" json:"jlpt_level"`
	FreqMainichiShinbun *int      `gorm:"column:freq_mainichi_shinbun" json:"freq_mainichi_shinbun"`
	Unicode             string    `gorm:"column:unicode;type:varchar(16)" json:"unicode"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Kanji) TableName() string { return "kanjis" }

// AfterFind renders missing lists as [] rather than null
func (k *Kanji) AfterFind(_ *gorm.DB) error {
	k.normalize()
	return nil
}

func (k *Kanji) normalize() {
	for _, list := range []*[]string{&k.Meanings, &k.Onyomi, &k.Kunyomi, &k.NameReadings, &k.Notes} {
		if *list == nil {
			*list = []string{}
		}
	}
}
