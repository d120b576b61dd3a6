package services

import (
	"context"
	"fmt"
	"time"

	"retail-backend/models"
	"retail-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorLogService persists failures that are reported to clients as data
// rather than as HTTP errors, so they can be inspected later.
type ErrorLogService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewErrorLogService(db *gorm.DB, log *zap.Logger) *ErrorLogService {
	return &ErrorLogService{db: db, log: log}
}

func (s *ErrorLogService) Record(ctx context.Context, title, method string, cause error) {
	s.log.Error(title, zap.String("method", method), zap.Error(cause))

	entry := models.ErrorLog{
		Title:  title,
		Method: method,
		Error:  cause.Error(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("Failed to persist error log", zap.String("title", title), zap.Error(err))
	}
}

// Purge deletes entries created before the start of the given day.
func (s *ErrorLogService) Purge(ctx context.Context, before time.Time) (int64, error) {
	cutoff := utils.BeginningOfDay(before)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ErrorLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge error logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// StartCleanup schedules Purge, keeping the last retention worth of entries.
// The returned scheduler is already running.
func (s *ErrorLogService) StartCleanup(schedule string, retention time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		removed, err := s.Purge(context.Background(), time.Now().Add(-retention))
		if err != nil {
			s.log.Error("Error log cleanup failed", zap.Error(err))
			return
		}
		s.log.Info("Error log cleanup finished", zap.Int64("removed", removed))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule error log cleanup %q: %w", schedule, err)
	}

	c.Start()
	s.log.Info("Error log cleanup scheduled", zap.String("schedule", schedule))
	return c, nil
}
