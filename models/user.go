package models

import (
	"time"
)

// User is a cashier or back-office account. Email is the primary key.
type User struct {
	Email     string `gorm:"primaryKey;size:140" json:"email"`
	FirstName string `gorm:"size:140" json:"first_name"`
	LastName  string `gorm:"size:140" json:"last_name"`
	FullName  string `gorm:"size:280" json:"full_name"`
	UserImage string `json:"user_image"`

	// bcrypt hash
	Password string `gorm:"not null" json:"-"`

	APIKey string `gorm:"column:api_key;size:40;index" json:"api_key"`
	// sealed with the configured encryption key, never returned as-is
	APISecret string `gorm:"column:api_secret;type:text" json:"-"`

	Enabled   bool `json:"enabled"`
	LastLogin *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// DisplayName falls back to first and last name when full name is unset.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.FirstName + " " + u.LastName
}
