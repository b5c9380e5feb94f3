package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const enrolledSelect = `SELECT gs.id, gs.grade_id, gs.subject_id, gs.prelim, gs.midterm, gs.semifinals, gs.finals, gs.combined, gs.remarks,
        g.stud_no, g.academic_term_id, s.code AS subject_code, s.name AS subject_name, s.units
        FROM grade_subject gs
        JOIN grade g ON g.id = gs.grade_id
        JOIN subject s ON s.id = gs.subject_id`

// GradeRepository handles grade sheets and their subject rows.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns grade rows joined with subject data.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.EnrolledSubject, error) {
	query := enrolledSelect + " WHERE 1=1"
	var args []interface{}
	if filter.StudNo != "" {
		query += fmt.Sprintf(" AND g.stud_no = $%d", len(args)+1)
		args = append(args, filter.StudNo)
	}
	if filter.AcademicTermID != "" {
		query += fmt.Sprintf(" AND g.academic_term_id = $%d", len(args)+1)
		args = append(args, filter.AcademicTermID)
	}
	if filter.SubjectID != "" {
		query += fmt.Sprintf(" AND gs.subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	query += " ORDER BY g.stud_no, s.code"

	rows := []models.EnrolledSubject{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return rows, nil
}

// Enroll adds a subject to the student's grade sheet for a term, creating the
// sheet when it does not exist yet.
func (r *GradeRepository) Enroll(ctx context.Context, studNo, termID, subjectID string) (_ *models.GradeSubject, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin enroll: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var gradeID string
	const sheet = `INSERT INTO grade (id, stud_no, academic_term_id) VALUES ($1, $2, $3)
        ON CONFLICT (stud_no, academic_term_id) DO UPDATE SET updated_at = NOW()
        RETURNING id`
	if err = tx.GetContext(ctx, &gradeID, sheet, uuid.NewString(), studNo, termID); err != nil {
		return nil, fmt.Errorf("ensure grade sheet: %w", classify(err))
	}

	row := &models.GradeSubject{ID: uuid.NewString(), GradeID: gradeID, SubjectID: subjectID}
	const insert = `INSERT INTO grade_subject (id, grade_id, subject_id) VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, insert, row.ID, row.GradeID, row.SubjectID); err != nil {
		return nil, fmt.Errorf("enroll subject: %w", classify(err))
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit enroll: %w", err)
	}
	return row, nil
}

// Unenroll removes a subject row from the student's sheet for a term.
func (r *GradeRepository) Unenroll(ctx context.Context, studNo, termID, subjectID string) error {
	const query = `DELETE FROM grade_subject gs USING grade g
        WHERE gs.grade_id = g.id AND g.stud_no = $1 AND g.academic_term_id = $2 AND gs.subject_id = $3`
	res, err := r.db.ExecContext(ctx, query, studNo, termID, subjectID)
	if err != nil {
		return fmt.Errorf("unenroll subject: %w", err)
	}
	return expectAffected(res)
}

// UpdateScores writes the scores of one enrolled subject. It returns
// sql.ErrNoRows when the student is not enrolled in the subject for the term.
func (r *GradeRepository) UpdateScores(ctx context.Context, studNo, termID string, scores *models.GradeSubject) error {
	const query = `UPDATE grade_subject gs
        SET prelim = $4, midterm = $5, semifinals = $6, finals = $7, combined = $8, remarks = $9
        FROM grade g
        WHERE gs.grade_id = g.id AND g.stud_no = $1 AND g.academic_term_id = $2 AND gs.subject_id = $3
        RETURNING gs.id, gs.grade_id`
	row := r.db.QueryRowxContext(ctx, query, studNo, termID, scores.SubjectID,
		scores.Prelim, scores.Midterm, scores.Semifinals, scores.Finals, scores.Combined, scores.Remarks)
	if err := row.Scan(&scores.ID, &scores.GradeID); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("update scores: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE grade SET updated_at = NOW() WHERE id = $1`, scores.GradeID); err != nil {
		return fmt.Errorf("touch grade sheet: %w", err)
	}
	return nil
}
