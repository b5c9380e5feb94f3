package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// StaffLogRepository records account activity.
type StaffLogRepository struct {
	db *sqlx.DB
}

// NewStaffLogRepository creates a StaffLogRepository.
func NewStaffLogRepository(db *sqlx.DB) *StaffLogRepository {
	return &StaffLogRepository{db: db}
}

// Create inserts an activity entry.
func (r *StaffLogRepository) Create(ctx context.Context, entry *models.StaffLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Status == "" {
		entry.Status = models.StaffLogSuccess
	}
	const query = `INSERT INTO staff_log (id, staff_id, action, ip_address, user_agent, timestamp, status) VALUES (:id, :staff_id, :action, :ip_address, :user_agent, :timestamp, :status)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create staff log: %w", err)
	}
	return nil
}

// ListByStaff returns the most recent entries for a staff account.
func (r *StaffLogRepository) ListByStaff(ctx context.Context, staffID string, limit int) ([]models.StaffLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `SELECT id, staff_id, action, ip_address, user_agent, timestamp, status FROM staff_log WHERE staff_id = $1 ORDER BY timestamp DESC LIMIT $2`
	entries := []models.StaffLog{}
	if err := r.db.SelectContext(ctx, &entries, query, staffID, limit); err != nil {
		return nil, fmt.Errorf("list staff log: %w", err)
	}
	return entries, nil
}
