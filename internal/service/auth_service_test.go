package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/password"
)

var cheapHasher = password.NewHasher(password.Params{Memory: 1024, Iterations: 1, Threads: 1, SaltLength: 16, KeyLength: 32})

type fakeAuthStaff struct {
	byUsername map[string]*models.Staff
	findErr    error
	rehashed   map[string]string
}

func (f *fakeAuthStaff) FindByUsername(_ context.Context, username string) (*models.Staff, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	staff, ok := f.byUsername[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *staff
	return &copied, nil
}

func (f *fakeAuthStaff) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if f.rehashed == nil {
		f.rehashed = map[string]string{}
	}
	f.rehashed[id] = passwordHash
	return nil
}

type fakeIssuer struct {
	created     []string
	invalidated []string
	createErr   error
}

func (f *fakeIssuer) GenerateToken() (string, error) {
	return "token-" + string(rune('a'+len(f.created))), nil
}

func (f *fakeIssuer) CreateSession(_ context.Context, token, userID string) (*models.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, token)
	return &models.Session{ID: SessionID(token), UserID: userID}, nil
}

func (f *fakeIssuer) InvalidateSession(_ context.Context, sessionID string) error {
	f.invalidated = append(f.invalidated, sessionID)
	return nil
}

type recordedActivity struct {
	staffID string
	action  string
	meta    RequestMeta
}

type fakeActivity struct {
	records []recordedActivity
}

func (f *fakeActivity) Record(_ context.Context, staffID, action, _ string, meta RequestMeta) {
	f.records = append(f.records, recordedActivity{staffID: staffID, action: action, meta: meta})
}

func newAuthFixture(t *testing.T, stored string, active bool) (*AuthService, *fakeAuthStaff, *fakeIssuer, *fakeActivity) {
	t.Helper()
	staff := &fakeAuthStaff{byUsername: map[string]*models.Staff{
		"admin": {ID: "staff-1", Username: "admin", Password: stored, Role: models.RoleAdmin, IsActive: active},
	}}
	issuer := &fakeIssuer{}
	activity := &fakeActivity{}
	svc := NewAuthService(staff, issuer, cheapHasher, activity, nil, nil, nil)
	return svc, staff, issuer, activity
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	hash, err := cheapHasher.Hash("secret123")
	require.NoError(t, err)
	svc, staff, issuer, activity := newAuthFixture(t, hash, true)

	meta := RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}
	result, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "secret123"}, meta)
	require.NoError(t, err)

	assert.Equal(t, "token-a", result.Token)
	assert.Equal(t, SessionID("token-a"), result.Session.ID)
	assert.Equal(t, "staff-1", result.Staff.ID)
	assert.Len(t, issuer.created, 1)
	assert.Empty(t, staff.rehashed)
	require.Len(t, activity.records, 1)
	assert.Equal(t, models.StaffActionLogin, activity.records[0].action)
	assert.Equal(t, meta, activity.records[0].meta)
}

func TestAuthServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := cheapHasher.Hash("secret123")
	require.NoError(t, err)
	svc, _, issuer, activity := newAuthFixture(t, hash, true)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "secret123"}, RequestMeta{})
	_, wrongErr := svc.Login(ctx, LoginRequest{Username: "admin", Password: "nope"}, RequestMeta{})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, appErrors.FromError(unknownErr).Status, appErrors.FromError(wrongErr).Status)
	assert.ErrorIs(t, unknownErr, appErrors.ErrInvalidCredentials)
	assert.Empty(t, issuer.created)
	assert.Empty(t, activity.records)
}

func TestAuthServiceLoginInactiveAfterPasswordCheck(t *testing.T) {
	hash, err := cheapHasher.Hash("secret123")
	require.NoError(t, err)
	svc, _, issuer, _ := newAuthFixture(t, hash, false)
	ctx := context.Background()

	_, err = svc.Login(ctx, LoginRequest{Username: "admin", Password: "secret123"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInactiveAccount)

	_, err = svc.Login(ctx, LoginRequest{Username: "admin", Password: "wrong"}, RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Empty(t, issuer.created)
}

func TestAuthServiceUpgradesLegacyHashes(t *testing.T) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	cases := map[string]string{
		"plain text": "secret123",
		"bcrypt":     string(bcryptHash),
	}
	for name, stored := range cases {
		t.Run(name, func(t *testing.T) {
			svc, staff, _, _ := newAuthFixture(t, stored, true)

			result, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "secret123"}, RequestMeta{})
			require.NoError(t, err)

			upgraded := staff.rehashed["staff-1"]
			assert.True(t, strings.HasPrefix(upgraded, "$argon2id$"))
			assert.Equal(t, upgraded, result.Staff.Password)
			_, err = cheapHasher.Verify(upgraded, "secret123")
			assert.NoError(t, err)
		})
	}
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t, "x", true)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin"}, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginStoreFailure(t *testing.T) {
	svc, staff, _, _ := newAuthFixture(t, "x", true)
	staff.findErr = errors.New("connection refused")

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "x"}, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _, issuer, activity := newAuthFixture(t, "x", true)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, nil, RequestMeta{}))
	assert.Empty(t, issuer.invalidated)

	session := &models.Session{ID: "hash", UserID: "staff-1"}
	require.NoError(t, svc.Logout(ctx, session, RequestMeta{IPAddress: "10.0.0.2"}))
	assert.Equal(t, []string{"hash"}, issuer.invalidated)
	require.Len(t, activity.records, 1)
	assert.Equal(t, models.StaffActionLogout, activity.records[0].action)
}
