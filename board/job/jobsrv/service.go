package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/errx"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
	"github.com/boardwalk-hq/boardwalk/pkg/logx"
	"github.com/boardwalk-hq/boardwalk/pkg/metrics"
)

// duplicateScanLimit bounds how many of a user's most recent postings
// the duplicate check inspects.
const duplicateScanLimit = 100

// previewLength is where descriptions get cut for previews and audit
// records.
const previewLength = 200

// defaultBlacklist holds companies that may never be posted, matched
// case-insensitively as substrings.
var defaultBlacklist = []string{
	"evil corp",
	"scamco",
	"fake industries",
}

// JobService provides business operations for job postings.
type JobService struct {
	jobRepo  job.Repository
	audit    job.AuditLog
	views    job.ViewTracker
	notifier job.Notifier

	sink      metrics.Sink
	clock     func() time.Time
	blacklist []string
}

// Option customizes a JobService.
type Option func(*JobService)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *JobService) { s.clock = clock }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(sink metrics.Sink) Option {
	return func(s *JobService) { s.sink = sink }
}

// WithBlacklist replaces the built-in company deny-list.
func WithBlacklist(entries []string) Option {
	return func(s *JobService) { s.blacklist = entries }
}

// NewJobService creates a new instance of the job service.
func NewJobService(
	jobRepo job.Repository,
	audit job.AuditLog,
	views job.ViewTracker,
	notifier job.Notifier,
	opts ...Option,
) *JobService {
	s := &JobService{
		jobRepo:   jobRepo,
		audit:     audit,
		views:     views,
		notifier:  notifier,
		sink:      metrics.NewNoopSink(),
		clock:     time.Now,
		blacklist: defaultBlacklist,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Shared Helpers
// ============================================================================

// repoFault logs an unexpected repository failure and converts it into
// a repository error. Typed domain errors pass through untouched.
func (s *JobService) repoFault(op string, err error) error {
	if e, ok := err.(*errx.Error); ok {
		return e
	}
	logx.Errorf("job repository %s failed: %v", op, err)
	return job.ErrRepository(err).WithDetail("operation", op)
}

// companyBlacklisted matches the company against the deny-list,
// case-insensitively and by substring.
func (s *JobService) companyBlacklisted(company kernel.CompanyName) bool {
	lowered := strings.ToLower(company.String())
	for _, entry := range s.blacklist {
		if strings.Contains(lowered, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}

// isAdmin gates bulk operations. The board has no role system, so
// nobody is an administrator.
func (s *JobService) isAdmin(userID kernel.UserID) bool {
	return false
}

// recordAudit writes an audit entry, swallowing failures.
func (s *JobService) recordAudit(ctx context.Context, entry job.AuditEntry) {
	if err := s.audit.Record(ctx, entry); err != nil {
		logx.Warnf("audit record %s for job %s failed: %v", entry.Action, entry.JobID, err)
	}
}

// notify runs a best-effort notification, swallowing failures.
func (s *JobService) notify(event string, fn func() error) {
	if err := fn(); err != nil {
		logx.Warnf("notification %s failed: %v", event, err)
	}
}

func (s *JobService) toJobResponse(j *job.Job) *job.JobResponse {
	return &job.JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Description: j.Description,
		Location:    j.Location,
		JobType:     j.JobType,
		PostedBy:    j.PostedBy,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// truncate cuts a string to limit runes, appending an ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
