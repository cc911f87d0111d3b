package jobsrv

import (
	"context"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
	"github.com/boardwalk-hq/boardwalk/pkg/metrics"
)

// UpdateJob applies a partial update to a posting owned by the caller.
// Absent fields are left untouched. Edits are allowed for 90 days after
// creation; the company may only change within the first 24 hours.
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest, userID kernel.UserID) (*job.JobResponse, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthenticated()
	}
	if err := job.ValidateID(jobID); err != nil {
		return nil, err
	}

	existing, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, s.repoFault("find", err)
	}

	if !existing.IsOwnedBy(userID) {
		return nil, job.ErrForbidden().WithDetail("job_id", jobID)
	}

	now := s.clock()
	if !existing.CanBeEditedAt(now) {
		s.sink.RuleRejected(metrics.RuleEditWindow)
		return nil, job.ErrEditWindowExpired().
			WithDetail("job_id", jobID).
			WithDetail("created_at", existing.CreatedAt)
	}

	if err := job.ValidateUpdateJob(&req); err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return s.toJobResponse(existing), nil
	}

	if req.Company != nil && *req.Company != existing.Company {
		if s.companyBlacklisted(*req.Company) {
			s.sink.RuleRejected(metrics.RuleCompanyBlacklist)
			return nil, job.ErrCompanyNotAllowed().WithDetail("company", req.Company.String())
		}
		if !existing.CompanyChangeableAt(now) {
			s.sink.RuleRejected(metrics.RuleCompanyLock)
			return nil, job.ErrCompanyLocked().
				WithDetail("job_id", jobID).
				WithDetail("created_at", existing.CreatedAt)
		}
	}

	updated, err := s.jobRepo.Update(ctx, jobID, req, now)
	if err != nil {
		return nil, s.repoFault("update", err)
	}

	s.recordAudit(ctx, job.AuditEntry{
		Action:  job.AuditJobUpdated,
		JobID:   jobID,
		Actor:   userID,
		Details: map[string]any{"changes": diffChanges(existing, updated)},
		At:      now,
	})
	s.notify("job.updated", func() error { return s.notifier.JobUpdated(ctx, updated) })
	s.sink.JobUpdated()

	return s.toJobResponse(updated), nil
}

// diffChanges builds a before/after map of the fields that differ
// between the stored and updated rows. Description values are truncated
// to keep audit rows small.
func diffChanges(before, after *job.Job) map[string]any {
	changes := make(map[string]any)
	if before.Title != after.Title {
		changes["title"] = fieldChange(before.Title.String(), after.Title.String())
	}
	if before.Company != after.Company {
		changes["company"] = fieldChange(before.Company.String(), after.Company.String())
	}
	if before.Description != after.Description {
		changes["description"] = fieldChange(
			truncate(before.Description.String(), previewLength),
			truncate(after.Description.String(), previewLength),
		)
	}
	if before.Location != after.Location {
		changes["location"] = fieldChange(before.Location.String(), after.Location.String())
	}
	if before.JobType != after.JobType {
		changes["job_type"] = fieldChange(string(before.JobType), string(after.JobType))
	}
	return changes
}

func fieldChange(from, to string) map[string]any {
	return map[string]any{"from": from, "to": to}
}
