package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

const termColumns = `id, name, start_date, end_date, is_active`

// TermRepository handles persistence for academic terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns every term, the active one first and then newest first.
func (r *TermRepository) List(ctx context.Context) ([]models.AcademicTerm, error) {
	query := `SELECT ` + termColumns + ` FROM academic_term ORDER BY is_active DESC, start_date DESC`
	terms := []models.AcademicTerm{}
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// FindByID loads a term by identifier.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.AcademicTerm, error) {
	query := `SELECT ` + termColumns + ` FROM academic_term WHERE id = $1`
	var term models.AcademicTerm
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindActive returns the currently active term.
func (r *TermRepository) FindActive(ctx context.Context) (*models.AcademicTerm, error) {
	query := `SELECT ` + termColumns + ` FROM academic_term WHERE is_active = TRUE LIMIT 1`
	var term models.AcademicTerm
	if err := r.db.GetContext(ctx, &term, query); err != nil {
		return nil, err
	}
	return &term, nil
}

// Create inserts a term. An active term deactivates the others in the same transaction.
func (r *TermRepository) Create(ctx context.Context, term *models.AcademicTerm) (err error) {
	if term.ID == "" {
		term.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create term tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if term.IsActive {
		if _, err = tx.ExecContext(ctx, `UPDATE academic_term SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
			return fmt.Errorf("deactivate terms: %w", err)
		}
	}

	const query = `INSERT INTO academic_term (id, name, start_date, end_date, is_active) VALUES (:id, :name, :start_date, :end_date, :is_active)`
	if _, err = tx.NamedExecContext(ctx, query, term); err != nil {
		return fmt.Errorf("create term: %w", classify(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create term tx: %w", err)
	}
	return nil
}

// Update modifies name and dates of an existing term.
func (r *TermRepository) Update(ctx context.Context, term *models.AcademicTerm) error {
	const query = `UPDATE academic_term SET name = :name, start_date = :start_date, end_date = :end_date WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, term)
	if err != nil {
		return fmt.Errorf("update term: %w", err)
	}
	return expectAffected(res)
}

// SetActive marks the provided term as active and deactivates the rest.
func (r *TermRepository) SetActive(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set active tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE academic_term SET is_active = FALSE WHERE is_active = TRUE AND id <> $1`, id); err != nil {
		return fmt.Errorf("deactivate other terms: %w", err)
	}

	var res sql.Result
	if res, err = tx.ExecContext(ctx, `UPDATE academic_term SET is_active = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("activate term: %w", err)
	}
	if err = expectAffected(res); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit set active tx: %w", err)
	}
	return nil
}

// Delete removes a term permanently.
func (r *TermRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM academic_term WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete term: %w", classify(err))
	}
	return expectAffected(res)
}
