package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/jobs"
)

// JobStaffLog is the queue job type for staff activity entries.
const JobStaffLog = "staff_log"

type staffLogRepository interface {
	Create(ctx context.Context, entry *models.StaffLog) error
	ListByStaff(ctx context.Context, staffID string, limit int) ([]models.StaffLog, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ActivityService records staff activity. Writes go through the job queue so
// request latency does not depend on them; without a queue they run inline.
type ActivityService struct {
	repo   staffLogRepository
	queue  jobEnqueuer
	logger *zap.Logger
	now    func() time.Time
}

// NewActivityService constructs an ActivityService. queue may be nil.
func NewActivityService(repo staffLogRepository, queue jobEnqueuer, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, queue: queue, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Record stores an activity entry. Failures are logged and never returned.
func (s *ActivityService) Record(ctx context.Context, staffID, action, status string, meta RequestMeta) {
	if s == nil {
		return
	}
	entry := &models.StaffLog{
		ID:        uuid.NewString(),
		StaffID:   staffID,
		Action:    action,
		Timestamp: s.now(),
		Status:    status,
	}
	if meta.IPAddress != "" {
		entry.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		entry.UserAgent = &meta.UserAgent
	}

	if s.queue != nil {
		err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: JobStaffLog, Payload: entry})
		if err == nil {
			return
		}
		s.logger.Warn("staff log enqueue failed, writing inline", zap.Error(err))
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("staff log write failed", zap.String("staff_id", staffID), zap.String("action", action), zap.Error(err))
	}
}

// HandleJob persists a queued staff log entry.
func (s *ActivityService) HandleJob(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(*models.StaffLog)
	if !ok || entry == nil {
		return fmt.Errorf("unexpected staff log payload %T", job.Payload)
	}
	return s.repo.Create(ctx, entry)
}

// Recent returns the latest activity of a staff member.
func (s *ActivityService) Recent(ctx context.Context, staffID string, limit int) ([]models.StaffLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByStaff(ctx, staffID, limit)
}
