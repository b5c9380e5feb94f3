package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// SessionRepository persists login sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session row.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	const query = `INSERT INTO session (id, user_id, expires_at, created_at) VALUES (:id, :user_id, :expires_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindWithStaff loads a session joined with the owning staff account.
func (r *SessionRepository) FindWithStaff(ctx context.Context, id string) (*models.SessionWithStaff, error) {
	const query = `SELECT
	s.id AS "session.id", s.user_id AS "session.user_id", s.expires_at AS "session.expires_at", s.created_at AS "session.created_at",
	st.id AS "staff.id", st.username AS "staff.username", st.email AS "staff.email", st.password AS "staff.password",
	st.role AS "staff.role", st.first_name AS "staff.first_name", st.last_name AS "staff.last_name",
	st.is_active AS "staff.is_active", st.picture_id AS "staff.picture_id", st.picture_url AS "staff.picture_url",
	st.created_at AS "staff.created_at", st.updated_at AS "staff.updated_at"
FROM session s
INNER JOIN staff st ON st.id = s.user_id
WHERE s.id = $1`
	var row models.SessionWithStaff
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &row, nil
}

// UpdateExpiry moves the expiry of a session.
func (r *SessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE session SET expires_at = $2 WHERE id = $1`, id, expiresAt); err != nil {
		return fmt.Errorf("update session expiry: %w", err)
	}
	return nil
}

// Delete removes a session row. Missing rows are not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser removes every session of a staff account.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return res.RowsAffected()
}

// DeleteExpired removes sessions that expired at or before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
