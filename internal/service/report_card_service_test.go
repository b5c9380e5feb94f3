package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type fixedTerms struct {
	active models.AcademicTerm
	others map[string]models.AcademicTerm
}

func (f fixedTerms) Get(_ context.Context, id string) (*models.AcademicTerm, error) {
	if id == f.active.ID {
		term := f.active
		return &term, nil
	}
	term, ok := f.others[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "academic term not found")
	}
	return &term, nil
}

func (f fixedTerms) Active(context.Context) (*models.AcademicTerm, error) {
	term := f.active
	return &term, nil
}

func newReportCardFixture() *ReportCardService {
	section := "IT-1A"
	students := fixedStudents{"2025-0001": {StudNo: "2025-0001", FirstName: "Ana", LastName: "Cruz", Course: "BSIT", Section: &section}}
	terms := fixedTerms{
		active: models.AcademicTerm{ID: "term-2", Name: "2nd Semester", IsActive: true},
		others: map[string]models.AcademicTerm{"term-1": {ID: "term-1", Name: "1st Semester"}},
	}
	grades := &memoryGrades{rows: []models.EnrolledSubject{
		{GradeSubject: models.GradeSubject{SubjectID: "math", Combined: 90}, StudNo: "2025-0001", AcademicTermID: "term-2", SubjectCode: "MATH101", SubjectName: "Algebra", Units: 3},
		{GradeSubject: models.GradeSubject{SubjectID: "pe", Combined: 80}, StudNo: "2025-0001", AcademicTermID: "term-2", SubjectCode: "PE1", SubjectName: "PE", Units: 1},
		{GradeSubject: models.GradeSubject{SubjectID: "hist", Combined: 70}, StudNo: "2025-0001", AcademicTermID: "term-1", SubjectCode: "HIST", SubjectName: "History", Units: 3},
	}}
	return NewReportCardService(students, terms, grades, nil)
}

func TestReportCardBuildWeightsByUnits(t *testing.T) {
	svc := newReportCardFixture()

	card, err := svc.Build(context.Background(), "2025-0001", "")
	require.NoError(t, err)
	assert.Equal(t, "term-2", card.Term.ID)
	assert.Len(t, card.Subjects, 2)
	assert.Equal(t, 87.5, card.Average)

	card, err = svc.Build(context.Background(), "2025-0001", "term-1")
	require.NoError(t, err)
	assert.Equal(t, 70.0, card.Average)
}

func TestReportCardBuildErrors(t *testing.T) {
	svc := newReportCardFixture()

	_, err := svc.Build(context.Background(), "missing", "")
	assert.Equal(t, "student not found", appErrors.FromError(err).Message)

	_, err = svc.Build(context.Background(), "2025-0001", "term-9")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportCardRender(t *testing.T) {
	svc := newReportCardFixture()
	ctx := context.Background()

	csvReport, err := svc.Render(ctx, "2025-0001", "", "CSV")
	require.NoError(t, err)
	assert.Equal(t, "report-card-2025-0001.csv", csvReport.Filename)
	assert.Equal(t, "text/csv", csvReport.ContentType)
	assert.Contains(t, string(csvReport.Body), "MATH101")
	assert.Contains(t, string(csvReport.Body), "87.50")

	pdfReport, err := svc.Render(ctx, "2025-0001", "", "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdfReport.ContentType)
	assert.True(t, bytes.HasPrefix(pdfReport.Body, []byte("%PDF")))

	_, err = svc.Render(ctx, "2025-0001", "", "xlsx")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
