package domain

import "time"

// User an account that owns study records (users table)
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Password  string    `gorm:"column:password;type:varchar(255)" json:"-"`
	Nickname  string    `gorm:"column:nickname;type:varchar(100)" json:"nickname"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
