package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type gradeRepository interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.EnrolledSubject, error)
	Enroll(ctx context.Context, studNo, termID, subjectID string) (*models.GradeSubject, error)
	Unenroll(ctx context.Context, studNo, termID, subjectID string) error
	UpdateScores(ctx context.Context, studNo, termID string, scores *models.GradeSubject) error
}

type studentFinder interface {
	FindByStudNo(ctx context.Context, studNo string) (*models.Student, error)
}

type subjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// EnrollRequest adds a subject to a student's term. An omitted
// academicTermId targets the active term.
type EnrollRequest struct {
	SubjectID      string `json:"subjectId" validate:"required"`
	AcademicTermID string `json:"academicTermId"`
}

// GradeRequest records scores of one enrolled subject. Omitted scores keep
// their value. Combined defaults to the mean of the four periods.
type GradeRequest struct {
	SubjectID      string   `json:"subjectId" validate:"required"`
	AcademicTermID string   `json:"academicTermId"`
	Prelim         *float64 `json:"prelim" validate:"omitempty,min=0,max=100"`
	Midterm        *float64 `json:"midterm" validate:"omitempty,min=0,max=100"`
	Semifinals     *float64 `json:"semifinals" validate:"omitempty,min=0,max=100"`
	Finals         *float64 `json:"finals" validate:"omitempty,min=0,max=100"`
	Combined       *float64 `json:"combined" validate:"omitempty,min=0,max=100"`
	Remarks        *string  `json:"remarks" validate:"omitempty,max=100"`
}

// GradeService manages subject enrollment and grade recording.
type GradeService struct {
	repo      gradeRepository
	students  studentFinder
	subjects  subjectFinder
	terms     activeTermProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(repo gradeRepository, students studentFinder, subjects subjectFinder, terms activeTermProvider, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, students: students, subjects: subjects, terms: terms, validator: validate, logger: logger}
}

// List returns grade rows across students.
func (s *GradeService) List(ctx context.Context, filter models.GradeFilter) ([]models.EnrolledSubject, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return rows, nil
}

// Enrolled returns the subjects and grades of a student for a term.
func (s *GradeService) Enrolled(ctx context.Context, studNo, termID string) ([]models.EnrolledSubject, error) {
	if _, err := s.student(ctx, studNo); err != nil {
		return nil, err
	}
	termID, err := s.resolveTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, models.GradeFilter{StudNo: studNo, AcademicTermID: termID})
}

// Enroll adds a subject to the student's grade sheet.
func (s *GradeService) Enroll(ctx context.Context, studNo string, req EnrollRequest) (*models.EnrolledSubject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "subjectId is required")
	}
	if _, err := s.student(ctx, studNo); err != nil {
		return nil, err
	}
	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	termID, err := s.resolveTerm(ctx, req.AcademicTermID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Enroll(ctx, studNo, termID, subject.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in this subject")
		case errors.Is(err, repository.ErrMissingReference):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academic term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll subject")
	}
	s.logger.Info("subject enrolled", zap.String("stud_no", studNo), zap.String("subject_id", subject.ID), zap.String("term_id", termID))

	return &models.EnrolledSubject{
		GradeSubject:   *row,
		StudNo:         studNo,
		AcademicTermID: termID,
		SubjectCode:    subject.Code,
		SubjectName:    subject.Name,
		Units:          subject.Units,
	}, nil
}

// Unenroll removes a subject and its grades from the student's term.
func (s *GradeService) Unenroll(ctx context.Context, studNo, subjectID, termID string) error {
	termID, err := s.resolveTerm(ctx, termID)
	if err != nil {
		return err
	}
	if err := s.repo.Unenroll(ctx, studNo, termID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student is not enrolled in this subject")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unenroll subject")
	}
	return nil
}

// RecordGrades updates the scores of one enrolled subject.
func (s *GradeService) RecordGrades(ctx context.Context, studNo string, req GradeRequest) (*models.EnrolledSubject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	termID, err := s.resolveTerm(ctx, req.AcademicTermID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, models.GradeFilter{StudNo: studNo, AcademicTermID: termID, SubjectID: req.SubjectID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not enrolled in this subject")
	}
	current := rows[0]
	scores := current.GradeSubject

	periodsChanged := false
	for _, p := range []struct {
		dst *float64
		src *float64
	}{
		{&scores.Prelim, req.Prelim},
		{&scores.Midterm, req.Midterm},
		{&scores.Semifinals, req.Semifinals},
		{&scores.Finals, req.Finals},
	} {
		if p.src != nil {
			*p.dst = *p.src
			periodsChanged = true
		}
	}
	switch {
	case req.Combined != nil:
		scores.Combined = *req.Combined
	case periodsChanged:
		scores.Combined = CombinedGrade(scores.Prelim, scores.Midterm, scores.Semifinals, scores.Finals)
	}
	if req.Remarks != nil {
		scores.Remarks = strings.TrimSpace(*req.Remarks)
	}

	if err := s.repo.UpdateScores(ctx, studNo, termID, &scores); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not enrolled in this subject")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grades")
	}
	current.GradeSubject = scores
	return &current, nil
}

// CombinedGrade is the mean of the four grading periods rounded to two decimals.
func CombinedGrade(prelim, midterm, semifinals, finals float64) float64 {
	return roundTo2((prelim + midterm + semifinals + finals) / 4)
}

func (s *GradeService) student(ctx context.Context, studNo string) (*models.Student, error) {
	student, err := s.students.FindByStudNo(ctx, studNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func (s *GradeService) resolveTerm(ctx context.Context, termID string) (string, error) {
	termID = strings.TrimSpace(termID)
	if termID != "" {
		return termID, nil
	}
	if s.terms == nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "academicTermId is required")
	}
	term, err := s.terms.Active(ctx)
	if err != nil {
		return "", err
	}
	return term.ID, nil
}

func roundTo2(v float64) float64 {
	if v < 0 {
		return -roundTo2(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}
