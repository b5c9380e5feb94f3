package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// DashboardRepository aggregates headline counts.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns student, active schedule and staff totals in one round trip.
func (r *DashboardRepository) Counts(ctx context.Context) (*models.DashboardCounts, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM student) AS student_count,
	(SELECT COUNT(*) FROM schedule WHERE is_active) AS schedule_count,
	(SELECT COUNT(*) FROM staff) AS staff_count`
	var counts models.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &counts, nil
}
