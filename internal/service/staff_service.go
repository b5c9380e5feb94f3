package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/repository"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/password"
)

type staffRepository interface {
	List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error)
	Create(ctx context.Context, staff *models.Staff) error
}

type payloadCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

// CreateStaffRequest is the payload for creating a staff account.
type CreateStaffRequest struct {
	Username   string           `json:"username" validate:"required,min=3,max=64"`
	Email      string           `json:"email" validate:"required,email"`
	Password   string           `json:"password" validate:"required,min=8"`
	Role       models.StaffRole `json:"role" validate:"required"`
	FirstName  string           `json:"firstName" validate:"omitempty,max=100"`
	LastName   string           `json:"lastName" validate:"omitempty,max=100"`
	PictureID  string           `json:"pictureId"`
	PictureURL string           `json:"pictureUrl" validate:"omitempty,url"`
}

// StaffSummary is the public view of a staff account shared with clients.
type StaffSummary struct {
	ID         string           `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	Role       models.StaffRole `json:"role"`
	FirstName  *string          `json:"firstName"`
	LastName   *string          `json:"lastName"`
	Name       string           `json:"name"`
	IsActive   bool             `json:"isActive"`
	PictureURL *string          `json:"pictureUrl"`
}

// NewStaffSummary builds the public view of staff.
func NewStaffSummary(staff *models.Staff) StaffSummary {
	return StaffSummary{
		ID:         staff.ID,
		Username:   staff.Username,
		Email:      staff.Email,
		Role:       staff.Role,
		FirstName:  staff.FirstName,
		LastName:   staff.LastName,
		Name:       staff.DisplayName(),
		IsActive:   staff.IsActive,
		PictureURL: staff.PictureURL,
	}
}

// StaffService manages staff accounts.
type StaffService struct {
	repo      staffRepository
	cipher    payloadCipher
	hasher    *password.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(repo staffRepository, cipher payloadCipher, hasher *password.Hasher, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = password.NewHasher(password.DefaultParams)
	}
	return &StaffService{repo: repo, cipher: cipher, hasher: hasher, validator: validate, logger: logger}
}

// List returns staff matching the filter.
func (s *StaffService) List(ctx context.Context, filter models.StaffFilter) ([]StaffSummary, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role filter")
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	summaries := make([]StaffSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, NewStaffSummary(&rows[i]))
	}
	return summaries, nil
}

// ListEncrypted returns the staff list as an encrypted JSON document.
func (s *StaffService) ListEncrypted(ctx context.Context, filter models.StaffFilter) (string, error) {
	summaries, err := s.List(ctx, filter)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(summaries)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode staff")
	}
	encrypted, err := s.cipher.Encrypt(string(raw))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encrypt staff")
	}
	return encrypted, nil
}

// CreateEncrypted decrypts a CreateStaffRequest and creates the account.
func (s *StaffService) CreateEncrypted(ctx context.Context, encrypted string) (*StaffSummary, error) {
	if strings.TrimSpace(encrypted) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "encryptedData is required")
	}
	plain, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid encrypted payload")
	}
	var req CreateStaffRequest
	if err := json.Unmarshal([]byte(plain), &req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	return s.Create(ctx, req)
}

// Create validates and stores a new staff account with an Argon2id hash.
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffSummary, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "role must be admin, registrar or teacher")
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check staff")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	staff := &models.Staff{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hash,
		Role:       req.Role,
		FirstName:  optionalString(req.FirstName),
		LastName:   optionalString(req.LastName),
		IsActive:   true,
		PictureID:  optionalString(req.PictureID),
		PictureURL: optionalString(req.PictureURL),
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff")
	}

	s.logger.Info("staff created", zap.String("staff_id", staff.ID), zap.String("role", string(staff.Role)))
	summary := NewStaffSummary(staff)
	return &summary, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
