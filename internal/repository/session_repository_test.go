package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

func TestSessionFindWithStaff(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"session.id", "session.user_id", "session.expires_at", "session.created_at",
		"staff.id", "staff.username", "staff.email", "staff.password", "staff.role", "staff.first_name", "staff.last_name",
		"staff.is_active", "staff.picture_id", "staff.picture_url", "staff.created_at", "staff.updated_at",
	}).AddRow("hash", "s1", now.Add(time.Hour), now, "s1", "admin", "admin@school.test", "x", "admin", nil, nil, true, nil, nil, now, now)
	mock.ExpectQuery("FROM session s INNER JOIN staff st ON st.id = s.user_id WHERE s.id = \\$1").
		WithArgs("hash").
		WillReturnRows(rows)

	row, err := repo.FindWithStaff(context.Background(), "hash")
	require.NoError(t, err)
	assert.Equal(t, "s1", row.Session.UserID)
	assert.Equal(t, "admin", row.Staff.Username)
	assert.True(t, row.Staff.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFindWithStaffMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("FROM session s").WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindWithStaff(context.Background(), "nope")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestSessionCreateAndExpire(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)")).
		WithArgs("hash", "s1", now.Add(time.Hour), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE session SET expires_at = $2 WHERE id = $1")).
		WithArgs("hash", now.Add(2*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session WHERE expires_at <= $1")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session WHERE user_id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Create(ctx, &models.Session{ID: "hash", UserID: "s1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
	require.NoError(t, repo.UpdateExpiry(ctx, "hash", now.Add(2*time.Hour)))

	purged, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)

	revoked, err := repo.DeleteByUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
