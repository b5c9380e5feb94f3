package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// SettingsRepository stores per staff preferences.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindByStaffID loads preferences of a staff account.
func (r *SettingsRepository) FindByStaffID(ctx context.Context, staffID string) (*models.Settings, error) {
	const query = `SELECT id, staff_id, theme, language, notifications, created_at, updated_at FROM settings WHERE staff_id = $1`
	var settings models.Settings
	if err := r.db.GetContext(ctx, &settings, query, staffID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return &settings, nil
}

// Upsert creates or replaces the preferences of a staff account.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	const query = `INSERT INTO settings (id, staff_id, theme, language, notifications, created_at, updated_at)
VALUES (:id, :staff_id, :theme, :language, :notifications, :created_at, :updated_at)
ON CONFLICT (staff_id) DO UPDATE SET
	theme = EXCLUDED.theme,
	language = EXCLUDED.language,
	notifications = EXCLUDED.notifications,
	updated_at = EXCLUDED.updated_at
RETURNING id, created_at`
	rows, err := r.db.NamedQueryContext(ctx, query, settings)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", classify(err))
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&settings.ID, &settings.CreatedAt); err != nil {
			return fmt.Errorf("scan settings: %w", err)
		}
	}
	return rows.Err()
}
