package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const scheduleDetailSelect = `SELECT sc.id, sc.subject_id, sc.teacher_id, sc.academic_term_id, sc.section_id, sc.day, sc.start_time, sc.end_time, sc.is_active,
        sub.code AS subject_code, sub.name AS subject_name,
        NULLIF(TRIM(COALESCE(st.first_name, '') || ' ' || COALESCE(st.last_name, '')), '') AS teacher_name,
        sec.name AS section_name
        FROM schedule sc
        JOIN subject sub ON sub.id = sc.subject_id
        LEFT JOIN staff st ON st.id = sc.teacher_id
        LEFT JOIN section sec ON sec.id = sc.section_id`

// ScheduleRepository provides persistence for weekly schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedules with subject, teacher and section names.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleDetail, error) {
	var conditions []string
	var args []interface{}

	if filter.AcademicTermID != "" {
		conditions = append(conditions, fmt.Sprintf("sc.academic_term_id = $%d", len(args)+1))
		args = append(args, filter.AcademicTermID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("sc.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.SectionID != "" {
		conditions = append(conditions, fmt.Sprintf("sc.section_id = $%d", len(args)+1))
		args = append(args, filter.SectionID)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("sc.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("sc.day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}

	query := scheduleDetailSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY sc.day, sc.start_time"

	schedules := []models.ScheduleDetail{}
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// FindByID returns a schedule by identifier.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	const query = `SELECT id, subject_id, teacher_id, academic_term_id, section_id, day, start_time, end_time, is_active FROM schedule WHERE id = $1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return &schedule, nil
}

// FindOverlapping returns active schedules in the same term and day whose time
// range overlaps the candidate and that share its teacher or section.
func (r *ScheduleRepository) FindOverlapping(ctx context.Context, candidate *models.Schedule) ([]models.Schedule, error) {
	if candidate.TeacherID == nil && candidate.SectionID == nil {
		return nil, nil
	}
	query := `SELECT id, subject_id, teacher_id, academic_term_id, section_id, day, start_time, end_time, is_active
        FROM schedule
        WHERE is_active AND academic_term_id = $1 AND day = $2 AND start_time < $3 AND end_time > $4 AND id <> $5`
	args := []interface{}{candidate.AcademicTermID, candidate.Day, candidate.EndTime, candidate.StartTime, candidate.ID}

	var owners []string
	if candidate.TeacherID != nil {
		owners = append(owners, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, *candidate.TeacherID)
	}
	if candidate.SectionID != nil {
		owners = append(owners, fmt.Sprintf("section_id = $%d", len(args)+1))
		args = append(args, *candidate.SectionID)
	}
	query += " AND (" + strings.Join(owners, " OR ") + ") ORDER BY start_time"

	var overlapping []models.Schedule
	if err := r.db.SelectContext(ctx, &overlapping, query, args...); err != nil {
		return nil, fmt.Errorf("find overlapping schedules: %w", err)
	}
	return overlapping, nil
}

// Create inserts a new schedule.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	const query = `INSERT INTO schedule (id, subject_id, teacher_id, academic_term_id, section_id, day, start_time, end_time, is_active)
        VALUES (:id, :subject_id, :teacher_id, :academic_term_id, :section_id, :day, :start_time, :end_time, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", classify(err))
	}
	return nil
}

// Update modifies an existing schedule.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	const query = `UPDATE schedule SET subject_id = :subject_id, teacher_id = :teacher_id, academic_term_id = :academic_term_id,
        section_id = :section_id, day = :day, start_time = :start_time, end_time = :end_time, is_active = :is_active WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, schedule)
	if err != nil {
		return fmt.Errorf("update schedule: %w", classify(err))
	}
	return expectAffected(res)
}

// Delete removes a schedule.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return expectAffected(res)
}
