package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/password"
)

const testCookie = "auth-session"

var testHasher = password.NewHasher(password.Params{Memory: 1024, Iterations: 1, Threads: 1, SaltLength: 16, KeyLength: 32})

type memoryStaff struct {
	mu    sync.Mutex
	staff map[string]*models.Staff
}

func (m *memoryStaff) FindByUsername(_ context.Context, username string) (*models.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.staff {
		if s.Username == username {
			copied := *s
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryStaff) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[id].Password = hash
	return nil
}

func (m *memoryStaff) FindByID(_ context.Context, id string) (*models.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (m *memoryStaff) ExistsByUsernameOrEmail(_ context.Context, _, email, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.staff {
		if id != excludeID && s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStaff) UpdateInfo(_ context.Context, id, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return sql.ErrNoRows
	}
	if email != "" {
		s.Email = email
	}
	if passwordHash != "" {
		s.Password = passwordHash
	}
	return nil
}

func (m *memoryStaff) UpdatePicture(context.Context, string, *string, *string) error { return nil }

func (m *memoryStaff) FindPictureByMediaID(context.Context, string) (string, error) {
	return "", sql.ErrNoRows
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	staff    *memoryStaff
}

func (m *memorySessions) Create(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessions) FindWithStaff(_ context.Context, id string) (*models.SessionWithStaff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	staff := m.staff.staff[session.UserID]
	return &models.SessionWithStaff{Session: session, Staff: *staff}, nil
}

func (m *memorySessions) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.sessions[id]
	session.ExpiresAt = expiresAt
	m.sessions[id] = session
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memorySessions) DeleteByUser(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memorySessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type authFixture struct {
	router   *gin.Engine
	sessions *memorySessions
}

func newAuthFixture(t *testing.T, active bool) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := testHasher.Hash("secret123")
	require.NoError(t, err)
	staff := &memoryStaff{staff: map[string]*models.Staff{
		"staff-1": {ID: "staff-1", Username: "admin", Email: "admin@school.test", Password: hash, Role: models.RoleAdmin, IsActive: active},
	}}
	sessions := &memorySessions{sessions: map[string]models.Session{}, staff: staff}

	sessionSvc := service.NewSessionService(sessions, config.SessionConfig{}, nil, nil)
	authSvc := service.NewAuthService(staff, sessionSvc, testHasher, nil, nil, nil, nil)
	cookie := CookieSettings{Name: testCookie}

	router := NewRouter(RouterConfig{APIPrefix: "/api", CookieName: testCookie}, Handlers{
		Auth:    NewAuthHandler(authSvc, cookie),
		Profile: NewProfileHandler(service.NewProfileService(staff, nil, sessionSvc, testHasher, nil, nil), cookie),
		Metrics: NewMetricsHandler(nil, nil),
	}, RouterDeps{Sessions: sessionSvc})

	return &authFixture{router: router, sessions: sessions}
}

func (f *authFixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestStudentsRequireSession(t *testing.T) {
	f := newAuthFixture(t, true)

	rec := f.do(http.MethodGet, "/api/students", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`, rec.Body.String())
}

func TestUnknownSessionTokenIsRejected(t *testing.T) {
	f := newAuthFixture(t, true)

	rec := f.do(http.MethodGet, "/api/auth/session", "", &http.Cookie{Name: testCookie, Value: "forged"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newAuthFixture(t, true)

	rec := f.do(http.MethodPost, "/api/login", `{"username":"admin","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"username":"admin","role":"admin"}`, rec.Body.String())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), cookie.Expires, time.Minute)

	stored, ok := f.sessions.sessions[service.SessionID(cookie.Value)]
	require.True(t, ok, "only the token hash is stored")
	assert.Equal(t, "staff-1", stored.UserID)

	rec = f.do(http.MethodGet, "/api/auth/session", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var identity SessionIdentity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, SessionIdentity{ID: "staff-1", Username: "admin", Role: models.RoleAdmin}, identity)
}

func TestRenewedSessionReissuesCookie(t *testing.T) {
	f := newAuthFixture(t, true)
	cookie := sessionCookie(f.do(http.MethodPost, "/api/login", `{"username":"admin","password":"secret123"}`))
	require.NotNil(t, cookie)

	id := service.SessionID(cookie.Value)
	f.sessions.mu.Lock()
	stored := f.sessions.sessions[id]
	stored.ExpiresAt = time.Now().UTC().Add(10 * 24 * time.Hour)
	f.sessions.sessions[id] = stored
	f.sessions.mu.Unlock()

	rec := f.do(http.MethodGet, "/api/auth/session", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	renewed := sessionCookie(rec)
	require.NotNil(t, renewed, "renewal must re-issue the cookie")
	assert.Equal(t, cookie.Value, renewed.Value)
	assert.True(t, renewed.HttpOnly)
	assert.WithinDuration(t, f.sessions.sessions[id].ExpiresAt, renewed.Expires, time.Second)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), renewed.Expires, time.Minute)

	rec = f.do(http.MethodGet, "/api/auth/session", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, sessionCookie(rec), "a fresh session is not re-issued")
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	f := newAuthFixture(t, true)

	wrongPassword := f.do(http.MethodPost, "/api/login", `{"username":"admin","password":"nope"}`)
	unknownUser := f.do(http.MethodPost, "/api/login", `{"username":"ghost","password":"secret123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Nil(t, sessionCookie(wrongPassword))
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture(t, false)

	rec := f.do(http.MethodPost, "/api/login", `{"username":"admin","password":"secret123"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_INACTIVE")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newAuthFixture(t, true)
	cookie := sessionCookie(f.do(http.MethodPost, "/api/login", `{"username":"admin","password":"secret123"}`))
	require.NotNil(t, cookie)

	rec := f.do(http.MethodPost, "/api/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Empty(t, f.sessions.sessions)

	rec = f.do(http.MethodGet, "/api/auth/session", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPasswordChangeRevokesOtherSessions(t *testing.T) {
	f := newAuthFixture(t, true)
	login := `{"username":"admin","password":"secret123"}`
	current := sessionCookie(f.do(http.MethodPost, "/api/login", login))
	other := sessionCookie(f.do(http.MethodPost, "/api/login", login))
	require.NotNil(t, current)
	require.NotNil(t, other)

	rec := f.do(http.MethodPost, "/api/profile/update_info", `{"password":"changed-secret"}`, current)
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := sessionCookie(rec)
	require.NotNil(t, fresh, "the caller gets a new session cookie")
	assert.NotEqual(t, current.Value, fresh.Value)
	assert.Len(t, f.sessions.sessions, 1)

	for _, stale := range []*http.Cookie{current, other} {
		rec = f.do(http.MethodGet, "/api/auth/session", "", stale)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec = f.do(http.MethodGet, "/api/auth/session", "", fresh)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/login", login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(http.MethodPost, "/api/login", `{"username":"admin","password":"changed-secret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	f := newAuthFixture(t, true)

	rec := f.do(http.MethodPost, "/api/login", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
