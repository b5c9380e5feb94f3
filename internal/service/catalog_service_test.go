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

type memoryCatalog struct {
	courses  []models.Course
	levels   []models.YearLevel
	sections []models.Section
	writeErr error
}

func (m *memoryCatalog) ListCourses(context.Context) ([]models.Course, error) { return m.courses, nil }

func (m *memoryCatalog) CreateCourse(_ context.Context, course *models.Course) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	course.ID = "c1"
	m.courses = append(m.courses, *course)
	return nil
}

func (m *memoryCatalog) DeleteCourse(context.Context, string) error { return m.writeErr }

func (m *memoryCatalog) ListYearLevels(context.Context) ([]models.YearLevel, error) {
	return m.levels, nil
}

func (m *memoryCatalog) CreateYearLevel(_ context.Context, level *models.YearLevel) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.levels = append(m.levels, *level)
	return nil
}

func (m *memoryCatalog) ListSections(_ context.Context, filter models.SectionFilter) ([]models.Section, error) {
	var out []models.Section
	for _, s := range m.sections {
		if filter.CourseID == "" || s.CourseID == filter.CourseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryCatalog) CreateSection(_ context.Context, section *models.Section) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.sections = append(m.sections, *section)
	return nil
}

func (m *memoryCatalog) DeleteSection(context.Context, string) error { return m.writeErr }

func TestCatalogCreateCourse(t *testing.T) {
	repo := &memoryCatalog{}
	svc := NewCatalogService(repo, nil, nil)

	course, err := svc.CreateCourse(context.Background(), CourseRequest{Code: " bsit ", Name: "Information Technology", TotalUnits: 160})
	require.NoError(t, err)
	assert.Equal(t, "BSIT", course.Code)
	assert.True(t, course.IsActive)

	courses, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestCatalogCreateSectionDefaults(t *testing.T) {
	repo := &memoryCatalog{}
	svc := NewCatalogService(repo, nil, nil)

	section, err := svc.CreateSection(context.Background(), SectionRequest{Name: "IT-1A", CourseID: "c1", YearLevelID: "y1", AcademicTermID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 40, section.MaxStudents)
	assert.True(t, section.IsActive)

	listed, err := svc.ListSections(context.Background(), models.SectionFilter{CourseID: "other"})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCatalogValidation(t *testing.T) {
	svc := NewCatalogService(&memoryCatalog{}, nil, nil)

	_, err := svc.CreateYearLevel(context.Background(), YearLevelRequest{Level: 0, Name: "Zero"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	tooMany := 1000
	_, err = svc.CreateSection(context.Background(), SectionRequest{Name: "IT-1A", CourseID: "c1", YearLevelID: "y1", AcademicTermID: "t1", MaxStudents: &tooMany})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogWriteErrors(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"duplicate":         {repository.ErrDuplicate, appErrors.ErrConflict.Status},
		"referenced":        {repository.ErrReferenced, appErrors.ErrConflict.Status},
		"missing reference": {repository.ErrMissingReference, appErrors.ErrValidation.Status},
		"not found":         {sql.ErrNoRows, appErrors.ErrNotFound.Status},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewCatalogService(&memoryCatalog{writeErr: tc.err}, nil, nil)
			err := svc.DeleteSection(context.Background(), "s1")
			assert.Equal(t, tc.status, appErrors.FromError(err).Status)
		})
	}
}
