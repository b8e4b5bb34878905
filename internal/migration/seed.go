package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/kanjidojo/kanji-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions demo account created alongside the sample catalog
type SeedOptions struct {
	Username string
	Password string
}

// Seed inserts a small development catalog, a demo user and that user's
// study rows. It does nothing when the kanjis table already has rows.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	if opts.Username == "" || opts.Password == "" {
		return errors.New("seed: username and password are required")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&domain.Kanji{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &domain.User{Username: opts.Username, Password: string(hashed), Nickname: opts.Username}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create demo user: %w", err)
		}

		kanjis := sampleKanji()
		if err := tx.Create(&kanjis).Error; err != nil {
			return fmt.Errorf("create kanji: %w", err)
		}

		rows := make([]domain.UserKanji, 0, len(kanjis))
		for _, k := range kanjis {
			rows = append(rows, domain.UserKanji{UserID: user.ID, KanjiID: k.ID})
		}
		return tx.Create(&rows).Error
	})
}

func sampleKanji() []domain.Kanji {
	intPtr := func(v int) *int { return &v }

	return []domain.Kanji{
		{Character: "水", Meanings: []string{"water"}, Onyomi: []string{"スイ"}, Kunyomi: []string{"みず", "みず-"}, NameReadings: []string{"み", "みな", "ゆ"}, Notes: []string{}, HeisigEn: "water", StrokeCount: intPtr(4), Grade: intPtr(1), JLPTLevel: intPtr(5), FreqMainichiShinbun: intPtr(223), Unicode: "6c34"},
		{Character: "火", Meanings: []string{"fire"}, Onyomi: []string{"カ"}, Kunyomi: []string{"ひ", "-び", "ほ-"}, NameReadings: []string{}, Notes: []string{}, HeisigEn: "fire", StrokeCount: intPtr(4), Grade: intPtr(1), JLPTLevel: intPtr(5), FreqMainichiShinbun: intPtr(574), Unicode: "706b"},
		{Character: "木", Meanings: []string{"tree", "wood"}, Onyomi: []string{"ボク", "モク"}, Kunyomi: []string{"き", "こ-"}, NameReadings: []string{"ぎ", "きへん"}, Notes: []string{}, HeisigEn: "tree", StrokeCount: intPtr(4), Grade: intPtr(1), JLPTLevel: intPtr(5), FreqMainichiShinbun: intPtr(317), Unicode: "6728"},
		{Character: "日", Meanings: []string{"day", "sun", "Japan", "counter for days"}, Onyomi: []string{"ニチ", "ジツ"}, Kunyomi: []string{"ひ", "-び", "-か"}, NameReadings: []string{"あ", "あき", "いる", "く", "くさ", "こう", "す", "たち", "に", "にっ", "につ", "へ"}, Notes: []string{}, HeisigEn: "day", StrokeCount: intPtr(4), Grade: intPtr(1), JLPTLevel: intPtr(5), FreqMainichiShinbun: intPtr(1), Unicode: "65e5"},
		{Character: "本", Meanings: []string{"book", "present", "main", "true", "real", "counter for long things"}, Onyomi: []string{"ホン"}, Kunyomi: []string{"もと"}, NameReadings: []string{"まと"}, Notes: []string{}, HeisigEn: "book", StrokeCount: intPtr(5), Grade: intPtr(1), JLPTLevel: intPtr(5), FreqMainichiShinbun: intPtr(10), Unicode: "672c"},
	}
}
