package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type memorySetupRepo struct {
	staff []models.Staff
}

func (m *memorySetupRepo) Count(context.Context) (int, error) {
	return len(m.staff), nil
}

func (m *memorySetupRepo) CreateFirstAdmin(_ context.Context, staff *models.Staff) (bool, error) {
	if len(m.staff) > 0 {
		return false, nil
	}
	staff.ID = "admin-1"
	staff.IsActive = true
	m.staff = append(m.staff, *staff)
	return true, nil
}

// racingSetupRepo reports an empty table but loses the insert race.
type racingSetupRepo struct{}

func (racingSetupRepo) Count(context.Context) (int, error) { return 0, nil }

func (racingSetupRepo) CreateFirstAdmin(context.Context, *models.Staff) (bool, error) {
	return false, nil
}

func TestSetupServiceCreatesOnlyOneAdmin(t *testing.T) {
	repo := &memorySetupRepo{}
	svc := NewSetupService(repo, nil, cheapHasher, nil, nil)
	ctx := context.Background()

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.NeedsSetup)

	admin, err := svc.CreateAdmin(ctx, SetupRequest{Username: "admin", Email: "Admin@School.Test", Password: "secret123"}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@school.test", admin.Email)
	assert.True(t, admin.IsActive)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.NeedsSetup)
	assert.Equal(t, 1, status.StaffCount)

	_, err = svc.CreateAdmin(ctx, SetupRequest{Username: "second", Email: "second@school.test", Password: "secret123"}, nil)
	assert.Equal(t, appErrors.ErrConflict.Status, appErrors.FromError(err).Status)
}

func TestSetupServiceUploadsPictureAndCleansUpOnLostRace(t *testing.T) {
	media, host, queue := newMediaFixture(1024)
	svc := NewSetupService(racingSetupRepo{}, media, cheapHasher, nil, nil)

	picture := &MediaUpload{Body: bytes.NewReader(pngHeader), Size: int64(len(pngHeader))}
	_, err := svc.CreateAdmin(context.Background(), SetupRequest{Username: "admin", Email: "admin@school.test", Password: "secret123"}, picture)
	assert.Equal(t, appErrors.ErrConflict.Status, appErrors.FromError(err).Status)

	assert.Contains(t, host.objects, "profile_pics/admin/profile")
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "profile_pics/admin/profile", queue.jobs[0].Payload)
}

func TestSetupServiceStoresPicture(t *testing.T) {
	media, _, _ := newMediaFixture(1024)
	repo := &memorySetupRepo{}
	svc := NewSetupService(repo, media, cheapHasher, nil, nil)

	picture := &MediaUpload{Body: bytes.NewReader(pngHeader), Size: int64(len(pngHeader))}
	admin, err := svc.CreateAdmin(context.Background(), SetupRequest{Username: "admin", Email: "admin@school.test", Password: "secret123"}, picture)
	require.NoError(t, err)
	require.NotNil(t, admin.PictureURL)
	assert.Equal(t, "https://media.test/profile_pics/admin/profile", *admin.PictureURL)
}

func TestSetupServiceValidation(t *testing.T) {
	svc := NewSetupService(&memorySetupRepo{}, nil, cheapHasher, nil, nil)

	_, err := svc.CreateAdmin(context.Background(), SetupRequest{Username: "ad", Email: "bad", Password: "short"}, nil)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
