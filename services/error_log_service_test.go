package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"retail-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestErrorLogService(t *testing.T) {
	ctx := context.Background()

	t.Run("records failures", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewErrorLogService(db, zaptest.NewLogger(t))

		svc.Record(ctx, "Sales Invoice Creation Error", "/api/method/retail_app.api.create_sales_invoice", errors.New("customer is required"))

		var logs []models.ErrorLog
		require.NoError(t, db.Find(&logs).Error)
		require.Len(t, logs, 1)
		assert.Equal(t, "Sales Invoice Creation Error", logs[0].Title)
		assert.Equal(t, "customer is required", logs[0].Error)
		assert.Len(t, logs[0].ID, 36)
	})

	t.Run("purges old entries", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewErrorLogService(db, zaptest.NewLogger(t))
		mustCreate(t, db,
			&models.ErrorLog{Title: "old", CreatedAt: time.Now().AddDate(0, 0, -45)},
			&models.ErrorLog{Title: "recent", CreatedAt: time.Now().AddDate(0, 0, -2)},
		)

		removed, err := svc.Purge(ctx, time.Now().AddDate(0, 0, -30))
		require.NoError(t, err)
		assert.EqualValues(t, 1, removed)

		var left []models.ErrorLog
		require.NoError(t, db.Find(&left).Error)
		require.Len(t, left, 1)
		assert.Equal(t, "recent", left[0].Title)
	})

	t.Run("schedules cleanup", func(t *testing.T) {
		svc := NewErrorLogService(newTestDB(t), zaptest.NewLogger(t))

		_, err := svc.StartCleanup("not a schedule", time.Hour)
		assert.Error(t, err)

		c, err := svc.StartCleanup("@daily", 30*24*time.Hour)
		require.NoError(t, err)
		assert.Len(t, c.Entries(), 1)
		c.Stop()
	})
}
