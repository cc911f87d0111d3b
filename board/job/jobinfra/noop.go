package jobinfra

import (
	"context"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// NoopViewTracker drops view tracking. Used when Redis is not
// configured.
type NoopViewTracker struct{}

func NewNoopViewTracker() *NoopViewTracker { return &NoopViewTracker{} }

func (NoopViewTracker) TrackView(ctx context.Context, jobID kernel.JobID, viewer kernel.UserID) error {
	return nil
}

func (NoopViewTracker) Views(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return 0, nil
}

// NoopNotifier drops lifecycle events. Used when the broker is not
// configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) JobCreated(ctx context.Context, j *job.Job) error { return nil }

func (NoopNotifier) JobUpdated(ctx context.Context, j *job.Job) error { return nil }

func (NoopNotifier) JobDeleted(ctx context.Context, jobID kernel.JobID, actor kernel.UserID) error {
	return nil
}

// NoopAuditLog drops audit entries. Only meant for tests and local
// runs without a database.
type NoopAuditLog struct{}

func NewNoopAuditLog() *NoopAuditLog { return &NoopAuditLog{} }

func (NoopAuditLog) Record(ctx context.Context, entry job.AuditEntry) error { return nil }
