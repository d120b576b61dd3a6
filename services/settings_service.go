package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"retail-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService loads and saves the Retail Settings singleton and the
// global defaults record.
type SettingsService struct {
	db              *gorm.DB
	defaultCurrency string

	mu    sync.RWMutex
	hooks []func(models.RetailSettings)
}

// OnUpdate registers fn to run after every successful Update.
func (s *SettingsService) OnUpdate(fn func(models.RetailSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func NewSettingsService(db *gorm.DB, defaultCurrency string) *SettingsService {
	return &SettingsService{db: db, defaultCurrency: defaultCurrency}
}

// Get returns the settings record; an unsaved store yields empty fields.
func (s *SettingsService) Get(ctx context.Context) (*models.RetailSettings, error) {
	var settings models.RetailSettings
	err := s.db.WithContext(ctx).Where("name = ?", models.RetailSettingsName).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	settings.Name = models.RetailSettingsName
	settings.DocType = models.RetailSettingsName
	return &settings, nil
}

type SettingsInput struct {
	WalkInCustomer string
	StoreName      string
	StoreAddress   string
}

// Update overwrites all three fields. A non-empty walk-in customer must name
// an existing customer.
func (s *SettingsService) Update(ctx context.Context, input SettingsInput) (*models.RetailSettings, error) {
	db := s.db.WithContext(ctx)

	if input.WalkInCustomer != "" {
		var count int64
		if err := db.Model(&models.Customer{}).Where("name = ?", input.WalkInCustomer).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, validationErrorf("Could not find Walk In Customer: %s", input.WalkInCustomer)
		}
	}

	settings := models.RetailSettings{
		Name:           models.RetailSettingsName,
		DocType:        models.RetailSettingsName,
		WalkInCustomer: input.WalkInCustomer,
		StoreName:      input.StoreName,
		StoreAddress:   input.StoreAddress,
		Modified:       time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&settings).Error; err != nil {
		return nil, err
	}

	s.mu.RLock()
	hooks := append([]func(models.RetailSettings){}, s.hooks...)
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(settings)
	}
	return &settings, nil
}

// DefaultCurrency reads Global Defaults, falling back to the configured code.
func (s *SettingsService) DefaultCurrency(ctx context.Context) (string, error) {
	var defaults models.GlobalDefaults
	err := s.db.WithContext(ctx).Where("name = ?", models.GlobalDefaultsName).First(&defaults).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultCurrency, nil
		}
		return "", err
	}
	if defaults.DefaultCurrency == "" {
		return s.defaultCurrency, nil
	}
	return defaults.DefaultCurrency, nil
}

// EnsureDefaults seeds Global Defaults with the configured currency when the
// record does not exist yet.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	defaults := models.GlobalDefaults{
		Name:            models.GlobalDefaultsName,
		DefaultCurrency: s.defaultCurrency,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error
}
