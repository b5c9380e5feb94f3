package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// CatalogRepository persists reference data: courses, year levels and sections.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCourses returns courses ordered by code.
func (r *CatalogRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, `SELECT id, code, name, total_units, is_active FROM course ORDER BY code`); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// CreateCourse inserts a course.
func (r *CatalogRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	const query = `INSERT INTO course (id, code, name, total_units, is_active) VALUES (:id, :code, :name, :total_units, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", classify(err))
	}
	return nil
}

// DeleteCourse removes a course that no section references.
func (r *CatalogRepository) DeleteCourse(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM course WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", classify(err))
	}
	return expectAffected(res)
}

// ListYearLevels returns year levels in ascending order.
func (r *CatalogRepository) ListYearLevels(ctx context.Context) ([]models.YearLevel, error) {
	levels := []models.YearLevel{}
	if err := r.db.SelectContext(ctx, &levels, `SELECT id, level, name FROM year_level ORDER BY level`); err != nil {
		return nil, fmt.Errorf("list year levels: %w", err)
	}
	return levels, nil
}

// CreateYearLevel inserts a year level.
func (r *CatalogRepository) CreateYearLevel(ctx context.Context, level *models.YearLevel) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	const query = `INSERT INTO year_level (id, level, name) VALUES (:id, :level, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, level); err != nil {
		return fmt.Errorf("create year level: %w", classify(err))
	}
	return nil
}

// ListSections returns sections matching the filter.
func (r *CatalogRepository) ListSections(ctx context.Context, filter models.SectionFilter) ([]models.Section, error) {
	base := `SELECT id, name, course_id, year_level_id, academic_term_id, max_students, is_active FROM section WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.YearLevelID != "" {
		conditions = append(conditions, fmt.Sprintf("year_level_id = $%d", len(args)+1))
		args = append(args, filter.YearLevelID)
	}
	if filter.AcademicTermID != "" {
		conditions = append(conditions, fmt.Sprintf("academic_term_id = $%d", len(args)+1))
		args = append(args, filter.AcademicTermID)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sections := []models.Section{}
	if err := r.db.SelectContext(ctx, &sections, base+" ORDER BY name", args...); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// CreateSection inserts a section.
func (r *CatalogRepository) CreateSection(ctx context.Context, section *models.Section) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	const query = `INSERT INTO section (id, name, course_id, year_level_id, academic_term_id, max_students, is_active)
VALUES (:id, :name, :course_id, :year_level_id, :academic_term_id, :max_students, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, section); err != nil {
		return fmt.Errorf("create section: %w", classify(err))
	}
	return nil
}

// DeleteSection removes a section that no schedule references.
func (r *CatalogRepository) DeleteSection(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM section WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", classify(err))
	}
	return expectAffected(res)
}
