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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByStudNo(ctx context.Context, studNo string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studNo string) error
}

// StudentProfile holds the optional biodata shared by create and update payloads.
type StudentProfile struct {
	MiddleName    *string `json:"middleName" validate:"omitempty,max=100"`
	Gender        *string `json:"gender" validate:"omitempty,max=20"`
	Age           *int    `json:"age" validate:"omitempty,min=0,max=150"`
	BirthDate     *string `json:"birthDate" validate:"omitempty,eq=|datetime=2006-01-02"`
	BirthPlace    *string `json:"birthPlace"`
	Address       *string `json:"address"`
	HouseNo       *string `json:"houseNo"`
	Street        *string `json:"street"`
	Barangay      *string `json:"barangay"`
	City          *string `json:"city"`
	Province      *string `json:"province"`
	ZipCode       *string `json:"zipCode" validate:"omitempty,max=10"`
	ContactNumber *string `json:"contactNumber" validate:"omitempty,max=32"`
	Email         *string `json:"email" validate:"omitempty,eq=|email"`
	PictureID     *string `json:"pictureId"`
	PictureURL    *string `json:"pictureUrl" validate:"omitempty,eq=|url"`
	YearLevel     *string `json:"yearLevel"`
	Section       *string `json:"section"`
	Guardian      *string `json:"guardian"`
	GuardianPhone *string `json:"guardianPhone" validate:"omitempty,max=32"`
	Mother        *string `json:"mother"`
	Father        *string `json:"father"`
	Nationality   *string `json:"nationality"`
	Religion      *string `json:"religion"`
	CivilStatus   *string `json:"civilStatus"`
}

// CreateStudentRequest registers a student.
type CreateStudentRequest struct {
	StudNo    string `json:"studNo" validate:"required,max=32"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Course    string `json:"course" validate:"required,max=100"`
	StudentProfile
}

// UpdateStudentRequest patches a student. Omitted fields are unchanged and
// empty strings clear optional fields.
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Course    *string `json:"course" validate:"omitempty,min=1,max=100"`
	StudentProfile
}

// StudentService handles student biodata.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns a page of students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a student by student number.
func (s *StudentService) Get(ctx context.Context, studNo string) (*models.Student, error) {
	student, err := s.repo.FindByStudNo(ctx, studNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a student under a unique student number.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	req.StudNo = strings.TrimSpace(req.StudNo)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Course = strings.TrimSpace(req.Course)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		StudNo:    req.StudNo,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Course:    req.Course,
	}
	req.StudentProfile.apply(student)
	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student number already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student created", zap.String("stud_no", student.StudNo))
	return student, nil
}

// Update patches a student.
func (s *StudentService) Update(ctx context.Context, studNo string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.Get(ctx, studNo)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Course != nil {
		student.Course = strings.TrimSpace(*req.Course)
	}
	req.StudentProfile.apply(student)
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student together with their grade sheets.
func (s *StudentService) Delete(ctx context.Context, studNo string) error {
	if err := s.repo.Delete(ctx, studNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.String("stud_no", studNo))
	return nil
}

func (p StudentProfile) apply(student *models.Student) {
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = optionalString(*src)
		}
	}
	set(&student.MiddleName, p.MiddleName)
	set(&student.Gender, p.Gender)
	set(&student.BirthDate, p.BirthDate)
	set(&student.BirthPlace, p.BirthPlace)
	set(&student.Address, p.Address)
	set(&student.HouseNo, p.HouseNo)
	set(&student.Street, p.Street)
	set(&student.Barangay, p.Barangay)
	set(&student.City, p.City)
	set(&student.Province, p.Province)
	set(&student.ZipCode, p.ZipCode)
	set(&student.ContactNumber, p.ContactNumber)
	set(&student.Email, p.Email)
	set(&student.PictureID, p.PictureID)
	set(&student.PictureURL, p.PictureURL)
	set(&student.YearLevel, p.YearLevel)
	set(&student.Section, p.Section)
	set(&student.Guardian, p.Guardian)
	set(&student.GuardianPhone, p.GuardianPhone)
	set(&student.Mother, p.Mother)
	set(&student.Father, p.Father)
	set(&student.Nationality, p.Nationality)
	set(&student.Religion, p.Religion)
	set(&student.CivilStatus, p.CivilStatus)
	if p.Age != nil {
		age := *p.Age
		student.Age = &age
	}
}
