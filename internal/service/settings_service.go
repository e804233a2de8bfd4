package service

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
)

type SettingsStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.FilterConfig, error)
	Save(ctx context.Context, cfg *model.FilterConfig) error
}

// SettingsService loads and saves the per-user FilterConfig at the
// boundary. Missing config yields the defaults.
type SettingsService struct {
	settings SettingsStore
}

func NewSettingsService(settings SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Load(ctx context.Context, userID uuid.UUID) (*model.FilterConfig, error) {
	cfg, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &model.FilterConfig{UserID: userID, ViewMode: model.ViewKanban}, nil
	}
	return cfg, nil
}

func (s *SettingsService) Save(ctx context.Context, cfg *model.FilterConfig) error {
	if cfg.ViewMode == "" {
		cfg.ViewMode = model.ViewKanban
	}
	return s.settings.Save(ctx, cfg)
}
