package repository

import (
	"context"
	"database/sql"

	"github.com/rotemgl/jars_backend/internal/domain"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*domain.SiteSetting, error) {
	var setting domain.SiteSetting
	err := r.db.QueryRowContext(ctx, `
		SELECT key, value, updated_at
		FROM site_settings
		WHERE key = $1
	`, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting domain.SiteSetting) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, setting.Key, setting.Value, setting.UpdatedAt)
	return err
}
