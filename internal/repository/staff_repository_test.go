package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var staffRowColumns = []string{"id", "username", "email", "password", "role", "first_name", "last_name", "is_active", "picture_id", "picture_url", "created_at", "updated_at"}

func TestStaffFindByUsername(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(staffRowColumns).
		AddRow("s1", "admin", "admin@school.test", "$argon2id$...", "admin", "Ada", nil, true, nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+staffColumns+" FROM staff WHERE username = $1 LIMIT 1")).
		WithArgs("admin").
		WillReturnRows(rows)

	staff, err := repo.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, staff.Role)
	require.NotNil(t, staff.FirstName)
	assert.Equal(t, "Ada", *staff.FirstName)
	assert.Nil(t, staff.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffFindByUsernameNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectQuery("FROM staff WHERE username").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffCreateFirstAdmin(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("LOCK TABLE staff IN SHARE ROW EXCLUSIVE MODE")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO staff .* WHERE NOT EXISTS \\(SELECT 1 FROM staff\\)").
		WithArgs(sqlmock.AnyArg(), "admin", "admin@school.test", "hash", "admin", nil, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	staff := &models.Staff{Username: "admin", Email: "admin@school.test", Password: "hash", Role: models.RoleAdmin}
	created, err := repo.CreateFirstAdmin(context.Background(), staff)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, staff.IsActive)
	assert.NotEmpty(t, staff.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffCreateFirstAdminWhenStaffExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("LOCK TABLE staff").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO staff").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	created, err := repo.CreateFirstAdmin(context.Background(), &models.Staff{Username: "late", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffCreateClassifiesDuplicates(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectExec("INSERT INTO staff").WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "staff_username_key"})

	err := repo.Create(context.Background(), &models.Staff{Username: "dup", Role: models.RoleTeacher})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "staff_username_key", ConstraintName(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	active := true
	mock.ExpectQuery(regexp.QuoteMeta("AND role = $1 AND is_active = $2 AND (username ILIKE $3")).
		WithArgs("teacher", true, "%ana%").
		WillReturnRows(sqlmock.NewRows(staffRowColumns))

	rows, err := repo.List(context.Background(), models.StaffFilter{Role: models.RoleTeacher, IsActive: &active, Search: "ana"})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffUpdateInfoMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectExec("UPDATE staff SET").
		WithArgs("missing", "new@school.test", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateInfo(context.Background(), "missing", "new@school.test", "")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassifyForeignKeyViolations(t *testing.T) {
	referenced := classify(&pq.Error{Code: pqForeignKeyViolation, Detail: `Key (id)=(t1) is still referenced from table "section".`})
	assert.ErrorIs(t, referenced, ErrReferenced)

	missing := classify(&pq.Error{Code: pqForeignKeyViolation, Detail: `Key (subject_id)=(x) is not present in table "subject".`})
	assert.ErrorIs(t, missing, ErrMissingReference)

	plain := errors.New("boom")
	assert.Equal(t, plain, classify(plain))
}
