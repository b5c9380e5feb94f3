package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/payload"
)

type memoryStaffRepo struct {
	rows []models.Staff
}

func (m *memoryStaffRepo) List(_ context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	out := []models.Staff{}
	for _, row := range m.rows {
		if filter.Role != "" && row.Role != filter.Role {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memoryStaffRepo) ExistsByUsernameOrEmail(_ context.Context, username, email, _ string) (bool, error) {
	for _, row := range m.rows {
		if row.Username == username || row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStaffRepo) Create(_ context.Context, staff *models.Staff) error {
	staff.ID = "staff-" + staff.Username
	m.rows = append(m.rows, *staff)
	return nil
}

func newStaffFixture(t *testing.T) (*StaffService, *memoryStaffRepo, *payload.Cipher) {
	t.Helper()
	cipher, err := payload.New(config.PayloadConfig{Key: "0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	repo := &memoryStaffRepo{}
	return NewStaffService(repo, cipher, cheapHasher, nil, nil), repo, cipher
}

func TestStaffServiceCreateHashesPassword(t *testing.T) {
	svc, repo, _ := newStaffFixture(t)

	summary, err := svc.Create(context.Background(), CreateStaffRequest{
		Username: " jdoe ", Email: "JDoe@School.Test", Password: "password123", Role: models.RoleTeacher, FirstName: "John",
	})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", summary.Username)
	assert.Equal(t, "jdoe@school.test", summary.Email)
	assert.Equal(t, "John", summary.Name)
	assert.True(t, summary.IsActive)
	require.Len(t, repo.rows, 1)
	assert.True(t, strings.HasPrefix(repo.rows[0].Password, "$argon2id$"))
	assert.Nil(t, repo.rows[0].LastName)
}

func TestStaffServiceCreateRejects(t *testing.T) {
	svc, _, _ := newStaffFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStaffRequest{Username: "jdoe", Email: "j@school.test", Password: "password123", Role: models.RoleTeacher})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateStaffRequest{Username: "jdoe", Email: "other@school.test", Password: "password123", Role: models.RoleTeacher})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, CreateStaffRequest{Username: "new", Email: "new@school.test", Password: "password123", Role: "principal"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, CreateStaffRequest{Username: "new", Email: "not-an-email", Password: "short", Role: models.RoleAdmin})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStaffServiceEncryptedRoundTrip(t *testing.T) {
	svc, _, cipher := newStaffFixture(t)
	ctx := context.Background()

	body, err := json.Marshal(CreateStaffRequest{Username: "registrar1", Email: "reg@school.test", Password: "password123", Role: models.RoleRegistrar})
	require.NoError(t, err)
	encrypted, err := cipher.Encrypt(string(body))
	require.NoError(t, err)

	created, err := svc.CreateEncrypted(ctx, encrypted)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRegistrar, created.Role)

	listed, err := svc.ListEncrypted(ctx, models.StaffFilter{})
	require.NoError(t, err)
	plain, err := cipher.Decrypt(listed)
	require.NoError(t, err)

	var summaries []StaffSummary
	require.NoError(t, json.Unmarshal([]byte(plain), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "registrar1", summaries[0].Username)
	assert.NotContains(t, plain, "argon2id")
}

func TestStaffServiceCreateEncryptedRejectsGarbage(t *testing.T) {
	svc, _, _ := newStaffFixture(t)

	for _, input := range []string{"", "zz:zz", "00112233445566778899aabbccddeeff:00"} {
		_, err := svc.CreateEncrypted(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, input)
	}
}

func TestStaffServiceListRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newStaffFixture(t)

	_, err := svc.List(context.Background(), models.StaffFilter{Role: "janitor"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
