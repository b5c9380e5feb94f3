package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const staffColumns = `id, username, email, password, role, first_name, last_name, is_active, picture_id, picture_url, created_at, updated_at`

// StaffRepository provides database access for staff accounts.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// FindByUsername returns a staff account by its exact username.
func (r *StaffRepository) FindByUsername(ctx context.Context, username string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE username = $1 LIMIT 1`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by username: %w", err)
	}
	return &staff, nil
}

// FindByID returns a staff account by identifier.
func (r *StaffRepository) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 LIMIT 1`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	return &staff, nil
}

// ExistsByUsernameOrEmail reports whether either value is already taken by another account.
func (r *StaffRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM staff WHERE (username = $1 OR email = $2) AND id <> $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username, email, excludeID); err != nil {
		return false, fmt.Errorf("check staff uniqueness: %w", err)
	}
	return exists, nil
}

// List returns staff ordered by creation date.
func (r *StaffRepository) List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	base := `FROM staff WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)+1))
		args = append(args, filter.Role)
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *filter.IsActive)
	}
	if filter.Search != "" {
		placeholder := fmt.Sprintf("$%d", len(args)+1)
		conditions = append(conditions, fmt.Sprintf("(username ILIKE %s OR email ILIKE %s OR first_name ILIKE %s OR last_name ILIKE %s)", placeholder, placeholder, placeholder, placeholder))
		args = append(args, "%"+filter.Search+"%")
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + staffColumns + ` ` + base + ` ORDER BY created_at DESC`
	staff := []models.Staff{}
	if err := r.db.SelectContext(ctx, &staff, query, args...); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// Create inserts a staff account.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	staff.CreatedAt = now
	staff.UpdatedAt = now

	const query = `INSERT INTO staff (id, username, email, password, role, first_name, last_name, is_active, picture_id, picture_url, created_at, updated_at)
VALUES (:id, :username, :email, :password, :role, :first_name, :last_name, :is_active, :picture_id, :picture_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		return fmt.Errorf("create staff: %w", classify(err))
	}
	return nil
}

// CreateFirstAdmin inserts staff only when the table is empty. It reports
// false when another account already exists.
func (r *StaffRepository) CreateFirstAdmin(ctx context.Context, staff *models.Staff) (bool, error) {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	staff.CreatedAt = now
	staff.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin setup tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Serialises concurrent setup attempts so only one can observe an empty table.
	if _, err = tx.ExecContext(ctx, `LOCK TABLE staff IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock staff table: %w", err)
	}

	const query = `INSERT INTO staff (id, username, email, password, role, first_name, last_name, is_active, picture_id, picture_url, created_at, updated_at)
SELECT $1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9, $10, $10
WHERE NOT EXISTS (SELECT 1 FROM staff)`
	res, err := tx.ExecContext(ctx, query,
		staff.ID, staff.Username, staff.Email, staff.Password, staff.Role,
		staff.FirstName, staff.LastName, staff.PictureID, staff.PictureURL, now,
	)
	if err != nil {
		err = classify(err)
		return false, fmt.Errorf("create first admin: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create first admin rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit setup tx: %w", err)
	}
	staff.IsActive = affected == 1
	return affected == 1, nil
}

// Count returns the number of staff accounts.
func (r *StaffRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM staff`); err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return count, nil
}

// UpdatePassword replaces the stored password hash.
func (r *StaffRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE staff SET password = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now().UTC()); err != nil {
		return fmt.Errorf("update staff password: %w", err)
	}
	return nil
}

// UpdateInfo updates the email and password hash of an account. Empty values keep the current column.
func (r *StaffRepository) UpdateInfo(ctx context.Context, id, email, passwordHash string) error {
	const query = `UPDATE staff SET
	email = COALESCE(NULLIF($2, ''), email),
	password = COALESCE(NULLIF($3, ''), password),
	updated_at = $4
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, email, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update staff info: %w", classify(err))
	}
	return expectAffected(res)
}

// UpdatePicture stores the media reference of the account picture.
func (r *StaffRepository) UpdatePicture(ctx context.Context, id string, pictureID, pictureURL *string) error {
	const query = `UPDATE staff SET picture_id = $2, picture_url = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, pictureID, pictureURL, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update staff picture: %w", err)
	}
	return expectAffected(res)
}

// FindPictureByMediaID resolves the stored picture URL for a media identifier.
func (r *StaffRepository) FindPictureByMediaID(ctx context.Context, pictureID string) (string, error) {
	const query = `SELECT picture_url FROM staff WHERE picture_id = $1 AND picture_url IS NOT NULL
UNION ALL
SELECT picture_url FROM student WHERE picture_id = $1 AND picture_url IS NOT NULL
LIMIT 1`
	var pictureURL string
	if err := r.db.GetContext(ctx, &pictureURL, query, pictureID); err != nil {
		if err == sql.ErrNoRows {
			return "", err
		}
		return "", fmt.Errorf("find picture: %w", err)
	}
	return pictureURL, nil
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
