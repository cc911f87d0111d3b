package job

import (
	"context"
	"time"

	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

type Repository interface {
	// Create persists a fully-formed job entity
	Create(ctx context.Context, job *Job) error

	// FindByID retrieves a job by ID, returning ErrJobNotFound when absent
	FindByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// FindAll retrieves one page of jobs matching the query
	FindAll(ctx context.Context, query JobQuery) (*kernel.Paginated[Job], error)

	// Update applies the non-nil patch fields atomically, stamps the
	// modification time and returns the stored row
	Update(ctx context.Context, id kernel.JobID, patch UpdateJobRequest, updatedAt time.Time) (*Job, error)

	// Delete removes a job, reporting whether a row was actually removed
	Delete(ctx context.Context, id kernel.JobID) (bool, error)

	// Count counts jobs matching the query
	Count(ctx context.Context, query JobQuery) (int64, error)
}

// AuditAction tags an audit record with the operation that produced it.
type AuditAction string

const (
	AuditJobCreated AuditAction = "JOB_CREATED"
	AuditJobUpdated AuditAction = "JOB_UPDATED"
	AuditJobDeleted AuditAction = "JOB_DELETED"
)

// AuditEntry is one row of the job audit trail.
type AuditEntry struct {
	Action  AuditAction    `json:"action"`
	JobID   kernel.JobID   `json:"job_id"`
	Actor   kernel.UserID  `json:"actor"`
	Details map[string]any `json:"details,omitempty"`
	At      time.Time      `json:"at"`
}

// AuditLog records who did what to which posting. Failures are logged
// and swallowed by callers; they never fail the primary operation.
type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// ViewTracker counts views of postings by non-owners.
type ViewTracker interface {
	// TrackView registers one view. The viewer is empty for anonymous
	// visitors.
	TrackView(ctx context.Context, jobID kernel.JobID, viewer kernel.UserID) error

	// Views returns the view count of a posting.
	Views(ctx context.Context, jobID kernel.JobID) (int64, error)
}

// Notifier publishes job lifecycle events to interested parties.
// Best-effort: callers swallow failures.
type Notifier interface {
	JobCreated(ctx context.Context, job *Job) error
	JobUpdated(ctx context.Context, job *Job) error
	JobDeleted(ctx context.Context, jobID kernel.JobID, actor kernel.UserID) error
}
