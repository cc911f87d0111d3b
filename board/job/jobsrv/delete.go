package jobsrv

import (
	"context"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
	"github.com/boardwalk-hq/boardwalk/pkg/logx"
	"github.com/boardwalk-hq/boardwalk/pkg/metrics"
)

// DeleteJob removes a posting. Owners may delete their own postings
// unless the posting was edited within the last five minutes; the force
// flag bypasses both the ownership check and the cool-down and is meant
// for privileged callers.
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID, userID kernel.UserID, force bool) error {
	if userID.IsEmpty() {
		return job.ErrUnauthenticated()
	}
	if err := job.ValidateID(jobID); err != nil {
		return err
	}

	existing, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return s.repoFault("find", err)
	}

	if !existing.IsOwnedBy(userID) && !force {
		return job.ErrForbidden().WithDetail("job_id", jobID)
	}

	now := s.clock()
	if !force && existing.RecentlyUpdatedAt(now) {
		s.sink.RuleRejected(metrics.RuleDeleteCooldown)
		return job.ErrRecentlyUpdated().
			WithDetail("job_id", jobID).
			WithDetail("updated_at", existing.UpdatedAt)
	}

	if existing.YoungAt(now) {
		logx.Warnf("deleting job %s less than an hour after creation", jobID)
	}

	s.recordAudit(ctx, job.AuditEntry{
		Action: job.AuditJobDeleted,
		JobID:  jobID,
		Actor:  userID,
		Details: map[string]any{
			"title":   existing.Title.String(),
			"company": existing.Company.String(),
			"forced":  force,
		},
		At: now,
	})

	removed, err := s.jobRepo.Delete(ctx, jobID)
	if err != nil {
		return s.repoFault("delete", err)
	}
	if !removed {
		return job.ErrDeleteFailed().WithDetail("job_id", jobID)
	}

	s.notify("job.deleted", func() error { return s.notifier.JobDeleted(ctx, jobID, userID) })
	s.sink.JobDeleted(force)

	return nil
}

// BulkDeleteJobs removes several postings in one call. The operation is
// restricted to administrators; until a role system exists it is
// rejected for every caller.
func (s *JobService) BulkDeleteJobs(ctx context.Context, jobIDs []kernel.JobID, userID kernel.UserID) (*job.BulkJobOperationResponse, error) {
	if userID.IsEmpty() {
		return nil, job.ErrUnauthenticated()
	}
	if !s.isAdmin(userID) {
		return nil, job.ErrAdminOnly()
	}

	result := &job.BulkJobOperationResponse{
		Successful: []kernel.JobID{},
		Failed:     make(map[kernel.JobID]string),
		Total:      len(jobIDs),
	}
	for _, id := range jobIDs {
		// Administrators are not owners, so each deletion runs forced.
		if err := s.DeleteJob(ctx, id, userID, true); err != nil {
			result.Failed[id] = errMessage(err)
			continue
		}
		result.Successful = append(result.Successful, id)
	}
	return result, nil
}
