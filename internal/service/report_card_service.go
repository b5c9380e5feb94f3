package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/export"
)

// Report card formats.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

type datasetRenderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset) ([]byte, error)
}

type termFinder interface {
	Get(ctx context.Context, id string) (*models.AcademicTerm, error)
	Active(ctx context.Context) (*models.AcademicTerm, error)
}

type gradeLister interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.EnrolledSubject, error)
}

// RenderedReport is a rendered document ready to download.
type RenderedReport struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportCardService assembles and renders report cards.
type ReportCardService struct {
	students  studentFinder
	terms     termFinder
	grades    gradeLister
	renderers map[string]datasetRenderer
	logger    *zap.Logger
}

// NewReportCardService constructs a ReportCardService with CSV and PDF output.
func NewReportCardService(students studentFinder, terms termFinder, grades gradeLister, logger *zap.Logger) *ReportCardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportCardService{
		students: students,
		terms:    terms,
		grades:   grades,
		renderers: map[string]datasetRenderer{
			ReportFormatCSV: export.NewCSVExporter(),
			ReportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Build returns the report card of a student for a term, defaulting to the
// active term. Average is weighted by subject units.
func (s *ReportCardService) Build(ctx context.Context, studNo, termID string) (*models.ReportCard, error) {
	student, err := s.students.FindByStudNo(ctx, studNo)
	if err != nil {
		return nil, notFoundOr(err, "student not found", "failed to load student")
	}

	var term *models.AcademicTerm
	if strings.TrimSpace(termID) == "" {
		term, err = s.terms.Active(ctx)
	} else {
		term, err = s.terms.Get(ctx, termID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.grades.List(ctx, models.GradeFilter{StudNo: studNo, AcademicTermID: term.ID})
	if err != nil {
		return nil, err
	}

	var weighted, units float64
	for _, row := range rows {
		weight := float64(row.Units)
		if weight <= 0 {
			weight = 1
		}
		weighted += row.Combined * weight
		units += weight
	}
	card := &models.ReportCard{Student: *student, Term: *term, Subjects: rows}
	if units > 0 {
		card.Average = roundTo2(weighted / units)
	}
	return card, nil
}

// Render builds the report card and renders it in format.
func (s *ReportCardService) Render(ctx context.Context, studNo, termID, format string) (*RenderedReport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ReportFormatPDF
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	card, err := s.Build(ctx, studNo, termID)
	if err != nil {
		return nil, err
	}
	body, err := renderer.Render(reportCardDataset(card))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}
	return &RenderedReport{
		Filename:    fmt.Sprintf("report-card-%s.%s", card.Student.StudNo, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func reportCardDataset(card *models.ReportCard) export.Dataset {
	headers := []string{"Code", "Subject", "Units", "Prelim", "Midterm", "Semifinals", "Finals", "Combined", "Remarks"}
	rows := make([]map[string]string, 0, len(card.Subjects))
	for _, subject := range card.Subjects {
		rows = append(rows, map[string]string{
			"Code":       subject.SubjectCode,
			"Subject":    subject.SubjectName,
			"Units":      fmt.Sprintf("%d", subject.Units),
			"Prelim":     formatScore(subject.Prelim),
			"Midterm":    formatScore(subject.Midterm),
			"Semifinals": formatScore(subject.Semifinals),
			"Finals":     formatScore(subject.Finals),
			"Combined":   formatScore(subject.Combined),
			"Remarks":    subject.Remarks,
		})
	}
	details := []export.Field{
		{Label: "Student No.", Value: card.Student.StudNo},
		{Label: "Name", Value: card.Student.FullName()},
		{Label: "Course", Value: card.Student.Course},
		{Label: "Term", Value: card.Term.Name},
	}
	if card.Student.YearLevel != nil {
		details = append(details, export.Field{Label: "Year Level", Value: *card.Student.YearLevel})
	}
	if card.Student.Section != nil {
		details = append(details, export.Field{Label: "Section", Value: *card.Student.Section})
	}
	return export.Dataset{
		Title:   "Report Card",
		Details: details,
		Headers: headers,
		Rows:    rows,
		Summary: map[string]string{"Subject": "General Average", "Combined": formatScore(card.Average)},
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func notFoundOr(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}
