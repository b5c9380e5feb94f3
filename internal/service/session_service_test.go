package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
)

type fakeSessionRepo struct {
	sessions map[string]models.Session
	staff    map[string]models.Staff
	updated  []string
	deleted  []string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: map[string]models.Session{},
		staff:    map[string]models.Staff{"staff-1": {ID: "staff-1", Username: "admin", Role: models.RoleAdmin, IsActive: true}},
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) FindWithStaff(_ context.Context, id string) (*models.SessionWithStaff, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.SessionWithStaff{Session: session, Staff: f.staff[session.UserID]}, nil
}

func (f *fakeSessionRepo) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	session := f.sessions[id]
	session.ExpiresAt = expiresAt
	f.sessions[id] = session
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, session := range f.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func newTestSessionService(repo *fakeSessionRepo, now *time.Time) *SessionService {
	svc := NewSessionService(repo, config.SessionConfig{}, nil, nil)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestGenerateTokenIsUnpaddedBase64URL(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), config.SessionConfig{}, nil, nil)

	token, err := svc.GenerateToken()
	require.NoError(t, err)
	assert.Len(t, token, 27)
	assert.NotContains(t, token, "=")

	other, err := svc.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestCreateSessionStoresOnlyTheHash(t *testing.T) {
	repo := newFakeSessionRepo()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestSessionService(repo, &now)

	session, err := svc.CreateSession(context.Background(), "plain-token", "staff-1")
	require.NoError(t, err)

	assert.Equal(t, SessionID("plain-token"), session.ID)
	assert.Len(t, session.ID, 64)
	assert.Equal(t, now.Add(30*24*time.Hour), session.ExpiresAt)
	_, stored := repo.sessions["plain-token"]
	assert.False(t, stored)
}

func TestValidateTokenLifecycle(t *testing.T) {
	repo := newFakeSessionRepo()
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	now := start
	svc := newTestSessionService(repo, &now)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, "tok", "staff-1")
	require.NoError(t, err)

	t.Run("fresh session is returned unchanged", func(t *testing.T) {
		now = start.Add(24 * time.Hour)
		session, staff, err := svc.ValidateToken(ctx, "tok")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "admin", staff.Username)
		assert.Equal(t, start.Add(30*24*time.Hour), session.ExpiresAt)
		assert.False(t, session.Renewed)
		assert.Empty(t, repo.updated)
	})

	t.Run("session inside renewal window is extended", func(t *testing.T) {
		now = start.Add(20 * 24 * time.Hour)
		session, _, err := svc.ValidateToken(ctx, "tok")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, now.Add(30*24*time.Hour), session.ExpiresAt)
		assert.True(t, session.Renewed)
		assert.Equal(t, []string{SessionID("tok")}, repo.updated)
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		now = now.Add(31 * 24 * time.Hour)
		session, staff, err := svc.ValidateToken(ctx, "tok")
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, staff)
		assert.Contains(t, repo.deleted, SessionID("tok"))
		assert.Empty(t, repo.sessions)
	})
}

func TestValidateTokenUnknownOrEmpty(t *testing.T) {
	now := time.Now().UTC()
	svc := newTestSessionService(newFakeSessionRepo(), &now)

	for _, token := range []string{"", "missing"} {
		session, staff, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, staff)
	}
}

func TestInvalidateAndPurgeSessions(t *testing.T) {
	repo := newFakeSessionRepo()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestSessionService(repo, &now)
	ctx := context.Background()

	first, err := svc.CreateSession(ctx, "a", "staff-1")
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, "b", "staff-1")
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateSession(ctx, first.ID))
	require.NoError(t, svc.InvalidateSession(ctx, ""))
	assert.Len(t, repo.sessions, 1)

	now = now.Add(40 * 24 * time.Hour)
	purged, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = svc.CreateSession(ctx, "c", "staff-1")
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateUserSessions(ctx, "staff-1"))
	assert.Empty(t, repo.sessions)
}

func TestRenewWindowFallsBackToHalfTTL(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), config.SessionConfig{TTL: 10 * time.Hour, RenewWindow: 20 * time.Hour}, nil, nil)
	assert.Equal(t, 10*time.Hour, svc.TTL())
	assert.Equal(t, 5*time.Hour, svc.renewWindow)
}
