package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/jobs"
)

type memoryStaffLog struct {
	entries   []*models.StaffLog
	lastLimit int
}

func (m *memoryStaffLog) Create(_ context.Context, entry *models.StaffLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryStaffLog) ListByStaff(_ context.Context, staffID string, limit int) ([]models.StaffLog, error) {
	m.lastLimit = limit
	var out []models.StaffLog
	for _, e := range m.entries {
		if e.StaffID == staffID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type refusingQueue struct{}

func (refusingQueue) Enqueue(jobs.Job) error { return errors.New("queue stopped") }

func TestActivityRecordGoesThroughQueue(t *testing.T) {
	repo := &memoryStaffLog{}
	queue := &capturedJobs{}
	svc := NewActivityService(repo, queue, nil)

	svc.Record(context.Background(), "s1", models.StaffActionLogin, models.StaffLogSuccess, RequestMeta{IPAddress: "10.0.0.1"})

	assert.Empty(t, repo.entries)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobStaffLog, queue.jobs[0].Type)

	require.NoError(t, svc.HandleJob(context.Background(), queue.jobs[0]))
	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "s1", entry.StaffID)
	assert.Equal(t, models.StaffActionLogin, entry.Action)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "10.0.0.1", *entry.IPAddress)
	assert.Nil(t, entry.UserAgent)
}

func TestActivityRecordFallsBackInline(t *testing.T) {
	repo := &memoryStaffLog{}
	NewActivityService(repo, refusingQueue{}, nil).Record(context.Background(), "s1", models.StaffActionLogout, models.StaffLogSuccess, RequestMeta{})
	assert.Len(t, repo.entries, 1)

	NewActivityService(repo, nil, nil).Record(context.Background(), "s1", models.StaffActionLogin, models.StaffLogFailed, RequestMeta{})
	assert.Len(t, repo.entries, 2)
}

func TestActivityHandleJobRejectsForeignPayload(t *testing.T) {
	svc := NewActivityService(&memoryStaffLog{}, nil, nil)
	assert.Error(t, svc.HandleJob(context.Background(), jobs.Job{Type: JobStaffLog, Payload: "nope"}))
}

func TestActivityRecentClampsLimit(t *testing.T) {
	repo := &memoryStaffLog{}
	svc := NewActivityService(repo, nil, nil)
	svc.Record(context.Background(), "s1", models.StaffActionLogin, models.StaffLogSuccess, RequestMeta{})
	svc.Record(context.Background(), "s2", models.StaffActionLogin, models.StaffLogSuccess, RequestMeta{})

	logs, err := svc.Recent(context.Background(), "s1", 500)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, 20, repo.lastLimit)

	_, err = svc.Recent(context.Background(), "s1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
}

func TestActivityRecordOnNilService(t *testing.T) {
	var svc *ActivityService
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), "s1", models.StaffActionLogin, models.StaffLogSuccess, RequestMeta{})
	})
}
