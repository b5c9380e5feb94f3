package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type memoryGrades struct {
	rows []models.EnrolledSubject
}

func (m *memoryGrades) List(_ context.Context, filter models.GradeFilter) ([]models.EnrolledSubject, error) {
	out := []models.EnrolledSubject{}
	for _, row := range m.rows {
		if filter.StudNo != "" && row.StudNo != filter.StudNo {
			continue
		}
		if filter.AcademicTermID != "" && row.AcademicTermID != filter.AcademicTermID {
			continue
		}
		if filter.SubjectID != "" && row.SubjectID != filter.SubjectID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memoryGrades) Enroll(_ context.Context, studNo, termID, subjectID string) (*models.GradeSubject, error) {
	for _, row := range m.rows {
		if row.StudNo == studNo && row.AcademicTermID == termID && row.SubjectID == subjectID {
			return nil, repository.ErrDuplicate
		}
	}
	gs := models.GradeSubject{ID: "gs-" + subjectID, GradeID: "g-" + studNo + termID, SubjectID: subjectID}
	m.rows = append(m.rows, models.EnrolledSubject{GradeSubject: gs, StudNo: studNo, AcademicTermID: termID})
	return &gs, nil
}

func (m *memoryGrades) Unenroll(_ context.Context, studNo, termID, subjectID string) error {
	for i, row := range m.rows {
		if row.StudNo == studNo && row.AcademicTermID == termID && row.SubjectID == subjectID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryGrades) UpdateScores(_ context.Context, studNo, termID string, scores *models.GradeSubject) error {
	for i, row := range m.rows {
		if row.StudNo == studNo && row.AcademicTermID == termID && row.SubjectID == scores.SubjectID {
			m.rows[i].GradeSubject = *scores
			return nil
		}
	}
	return sql.ErrNoRows
}

type fixedStudents map[string]models.Student

func (f fixedStudents) FindByStudNo(_ context.Context, studNo string) (*models.Student, error) {
	student, ok := f[studNo]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

type fixedSubjects map[string]models.Subject

func (f fixedSubjects) FindByID(_ context.Context, id string) (*models.Subject, error) {
	subject, ok := f[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &subject, nil
}

func f64(v float64) *float64 { return &v }

func newGradeFixture() (*GradeService, *memoryGrades) {
	repo := &memoryGrades{}
	students := fixedStudents{"2025-0001": {StudNo: "2025-0001", FirstName: "Ana", LastName: "Cruz", Course: "BSIT"}}
	subjects := fixedSubjects{
		"math": {ID: "math", Code: "MATH101", Name: "College Algebra", Units: 3},
		"pe":   {ID: "pe", Code: "PE1", Name: "Physical Education", Units: 2},
	}
	return NewGradeService(repo, students, subjects, staticTerm{id: "term-1"}, nil, nil), repo
}

func TestCombinedGrade(t *testing.T) {
	assert.Equal(t, 88.5, CombinedGrade(85, 88, 90, 91))
	assert.Equal(t, 83.33, CombinedGrade(100, 100, 33.33, 100))
	assert.Equal(t, 0.0, CombinedGrade(0, 0, 0, 0))
}

func TestGradeServiceEnroll(t *testing.T) {
	svc, _ := newGradeFixture()
	ctx := context.Background()

	row, err := svc.Enroll(ctx, "2025-0001", EnrollRequest{SubjectID: "math"})
	require.NoError(t, err)
	assert.Equal(t, "term-1", row.AcademicTermID)
	assert.Equal(t, "MATH101", row.SubjectCode)
	assert.Equal(t, 3, row.Units)

	_, err = svc.Enroll(ctx, "2025-0001", EnrollRequest{SubjectID: "math"})
	assert.Equal(t, appErrors.ErrConflict.Status, appErrors.FromError(err).Status)

	_, err = svc.Enroll(ctx, "9999", EnrollRequest{SubjectID: "math"})
	assert.Equal(t, "student not found", appErrors.FromError(err).Message)

	_, err = svc.Enroll(ctx, "2025-0001", EnrollRequest{SubjectID: "art"})
	assert.Equal(t, "subject not found", appErrors.FromError(err).Message)

	enrolled, err := svc.Enrolled(ctx, "2025-0001", "")
	require.NoError(t, err)
	assert.Len(t, enrolled, 1)
}

func TestGradeServiceRecordGradesMergesScores(t *testing.T) {
	svc, repo := newGradeFixture()
	ctx := context.Background()

	_, err := svc.Enroll(ctx, "2025-0001", EnrollRequest{SubjectID: "math"})
	require.NoError(t, err)

	row, err := svc.RecordGrades(ctx, "2025-0001", GradeRequest{SubjectID: "math", Prelim: f64(80), Midterm: f64(84), Remarks: strPtr(" Good ")})
	require.NoError(t, err)
	assert.Equal(t, 41.0, row.Combined)
	assert.Equal(t, "Good", row.Remarks)

	row, err = svc.RecordGrades(ctx, "2025-0001", GradeRequest{SubjectID: "math", Semifinals: f64(88), Finals: f64(92)})
	require.NoError(t, err)
	assert.Equal(t, 80.0, row.Prelim)
	assert.Equal(t, 86.0, row.Combined)
	assert.Equal(t, "Good", row.Remarks)

	row, err = svc.RecordGrades(ctx, "2025-0001", GradeRequest{SubjectID: "math", Combined: f64(90)})
	require.NoError(t, err)
	assert.Equal(t, 90.0, row.Combined)
	assert.Equal(t, 90.0, repo.rows[0].Combined)
}

func TestGradeServiceRecordGradesValidation(t *testing.T) {
	svc, _ := newGradeFixture()
	ctx := context.Background()

	_, err := svc.RecordGrades(ctx, "2025-0001", GradeRequest{SubjectID: "math", Prelim: f64(120)})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.RecordGrades(ctx, "2025-0001", GradeRequest{SubjectID: "math", Prelim: f64(90)})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceUnenroll(t *testing.T) {
	svc, repo := newGradeFixture()
	ctx := context.Background()

	_, err := svc.Enroll(ctx, "2025-0001", EnrollRequest{SubjectID: "pe"})
	require.NoError(t, err)

	require.NoError(t, svc.Unenroll(ctx, "2025-0001", "pe", ""))
	assert.Empty(t, repo.rows)

	err = svc.Unenroll(ctx, "2025-0001", "pe", "term-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
