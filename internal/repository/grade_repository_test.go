package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

func TestGradeEnrollCreatesSheetAndRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO grade .* ON CONFLICT \\(stud_no, academic_term_id\\) DO UPDATE SET updated_at = NOW\\(\\) RETURNING id").
		WithArgs(sqlmock.AnyArg(), "2025-0001", "term").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("g1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grade_subject (id, grade_id, subject_id) VALUES ($1, $2, $3)")).
		WithArgs(sqlmock.AnyArg(), "g1", "math").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	row, err := repo.Enroll(context.Background(), "2025-0001", "term", "math")
	require.NoError(t, err)
	assert.Equal(t, "g1", row.GradeID)
	assert.Equal(t, "math", row.SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeEnrollDuplicateRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO grade ").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("g1"))
	mock.ExpectExec("INSERT INTO grade_subject").WillReturnError(&pq.Error{Code: pqUniqueViolation})
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), "2025-0001", "term", "math")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeUpdateScores(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	scores := &models.GradeSubject{SubjectID: "math", Prelim: 80, Midterm: 84, Combined: 41, Remarks: "ok"}
	mock.ExpectQuery("UPDATE grade_subject gs SET prelim = \\$4").
		WithArgs("2025-0001", "term", "math", 80.0, 84.0, 0.0, 0.0, 41.0, "ok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "grade_id"}).AddRow("gs1", "g1"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE grade SET updated_at = NOW() WHERE id = $1")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateScores(context.Background(), "2025-0001", "term", scores))
	assert.Equal(t, "gs1", scores.ID)
	assert.Equal(t, "g1", scores.GradeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeUpdateScoresNotEnrolled(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("UPDATE grade_subject").WillReturnRows(sqlmock.NewRows([]string{"id", "grade_id"}))

	err := repo.UpdateScores(context.Background(), "2025-0001", "term", &models.GradeSubject{SubjectID: "pe"})
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeUnenrollMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("DELETE FROM grade_subject gs USING grade g").
		WithArgs("2025-0001", "term", "math").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Unenroll(context.Background(), "2025-0001", "term", "math")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
