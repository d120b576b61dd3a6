// models/error_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ErrorLog struct {
	ID        string `gorm:"primaryKey;size:36"`
	Title     string `gorm:"size:140"`
	Method    string `gorm:"size:140"`
	Error     string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

func (ErrorLog) TableName() string {
	return "error_logs"
}

func (l *ErrorLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.NewString()
	return
}
