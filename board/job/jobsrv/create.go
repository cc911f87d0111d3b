package jobsrv

import (
	"context"

	"github.com/google/uuid"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
	"github.com/boardwalk-hq/boardwalk/pkg/logx"
	"github.com/boardwalk-hq/boardwalk/pkg/metrics"
)

// CreateJob creates a new job posting on behalf of req.PostedBy.
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.JobResponse, error) {
	if req.PostedBy.IsEmpty() {
		return nil, job.ErrUnauthenticated()
	}

	if err := job.ValidateCreateJob(&req); err != nil {
		return nil, err
	}

	if s.companyBlacklisted(req.Company) {
		s.sink.RuleRejected(metrics.RuleCompanyBlacklist)
		return nil, job.ErrCompanyNotAllowed().WithDetail("company", req.Company.String())
	}

	if err := s.rejectDuplicate(ctx, req); err != nil {
		return nil, err
	}

	now := s.clock()
	newJob := &job.Job{
		ID:          kernel.NewJobID(uuid.NewString()),
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		JobType:     req.JobType,
		PostedBy:    req.PostedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := newJob.Validate(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, s.repoFault("create", err)
	}

	s.recordAudit(ctx, job.AuditEntry{
		Action: job.AuditJobCreated,
		JobID:  newJob.ID,
		Actor:  newJob.PostedBy,
		At:     now,
		Details: map[string]any{
			"title":    newJob.Title.String(),
			"company":  newJob.Company.String(),
			"job_type": newJob.JobType.String(),
		},
	})
	s.notify("job.created", func() error { return s.notifier.JobCreated(ctx, newJob) })
	s.sink.JobCreated(newJob.JobType.String())

	return s.toJobResponse(newJob), nil
}

// rejectDuplicate blocks re-posting the same title and company by the
// same user inside the duplicate window. The check is advisory: when
// the lookup itself fails, creation proceeds.
func (s *JobService) rejectDuplicate(ctx context.Context, req job.CreateJobRequest) error {
	recent, err := s.jobRepo.FindAll(ctx, job.JobQuery{
		PostedBy: req.PostedBy,
		OrderBy:  job.OrderByCreatedAt,
		OrderDir: job.OrderDesc,
		Pagination: kernel.PaginationOptions{
			Page:     1,
			PageSize: duplicateScanLimit,
		},
	})
	if err != nil {
		logx.Warnf("duplicate check for user %s skipped: %v", req.PostedBy, err)
		return nil
	}

	now := s.clock()
	for i := range recent.Items {
		existing := &recent.Items[i]
		if !existing.MatchesPosting(req.Title, req.Company) {
			continue
		}
		if now.Sub(existing.CreatedAt) < job.DuplicateWindow {
			s.sink.RuleRejected(metrics.RuleDuplicatePosting)
			return job.ErrDuplicatePosting().
				WithDetail("existing_job_id", existing.ID.String()).
				WithDetail("title", req.Title.String()).
				WithDetail("company", req.Company.String())
		}
	}
	return nil
}
