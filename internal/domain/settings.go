package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSettingNotFound means no row exists yet for the requested key.
// Callers treat this as "use the default", not as a failure.
var ErrSettingNotFound = errors.New("setting not found")

// SiteSetting is a single named boolean switch, e.g. show_cats_page.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SettingsRepository interface {
	GetByKey(ctx context.Context, key string) (*SiteSetting, error)
	Upsert(ctx context.Context, setting SiteSetting) error
}
