package core

import (
	"context"
	"fmt"
	"strings"
)

// SettingsService reads and updates the shop profile.
type SettingsService interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
}

type settingsService struct {
	db *DB
}

func NewSettingsService(db *DB) SettingsService {
	return &settingsService{db: db}
}

func (s *settingsService) Get(ctx context.Context) (Settings, error) {
	return s.db.Settings(ctx)
}

func (s *settingsService) Update(ctx context.Context, settings Settings) (Settings, error) {
	if strings.TrimSpace(settings.ShopName) == "" {
		return Settings{}, fmt.Errorf("shop name: %w", ErrMissingField)
	}
	if settings.Language == "" {
		settings.Language = "English"
	}

	s.db.Lock()
	defer s.db.Unlock()
	if err := s.db.SaveSettings(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
