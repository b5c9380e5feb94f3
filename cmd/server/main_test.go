package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/pkg/jobs"
)

func TestJobsOutliveShutdownSignal(t *testing.T) {
	signalCtx, interrupt := context.WithCancel(context.Background())

	queue := jobs.NewQueue("test", jobs.QueueConfig{})
	seen := make(chan error, 1)
	queue.Handle("staff_log", func(ctx context.Context, _ jobs.Job) error {
		seen <- ctx.Err()
		return nil
	})
	stop := startJobs(queue)

	// The signal arrives while a request is still being drained and that
	// request enqueues a job.
	interrupt()
	require.Error(t, signalCtx.Err())
	require.NoError(t, queue.Enqueue(jobs.Job{ID: "1", Type: "staff_log"}))

	stop()
	select {
	case err := <-seen:
		assert.NoError(t, err, "job ran with a cancelled context")
	default:
		t.Fatal("job was not drained before stop returned")
	}
	assert.Error(t, queue.Enqueue(jobs.Job{Type: "staff_log"}))
}
