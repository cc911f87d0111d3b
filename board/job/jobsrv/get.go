package jobsrv

import (
	"context"
	"time"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/errx"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
	"github.com/boardwalk-hq/boardwalk/pkg/logx"
)

// relatedJobsLimit caps how many related postings a detail view carries.
const relatedJobsLimit = 5

// GetJobByID retrieves a single posting together with viewer-relative
// flags. The viewer is empty for anonymous visitors; views by anyone
// but the owner are tracked fire-and-forget.
func (s *JobService) GetJobByID(ctx context.Context, jobID kernel.JobID, viewer kernel.UserID) (*job.JobDetailResponse, error) {
	if err := job.ValidateID(jobID); err != nil {
		return nil, err
	}

	entity, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, s.repoFault("find", err)
	}

	isOwner := entity.IsOwnedBy(viewer)
	if !isOwner {
		s.trackView(jobID, viewer)
		s.sink.JobViewed()
	}

	return &job.JobDetailResponse{
		Job:     *s.toJobResponse(entity),
		IsOwner: isOwner,
		CanEdit: isOwner && entity.CanBeEditedAt(s.clock()),
	}, nil
}

// GetMultipleJobs fetches a batch of postings best-effort. Malformed
// ids, missing jobs and lookup faults are reported per id; the call
// itself never fails.
func (s *JobService) GetMultipleJobs(ctx context.Context, jobIDs []kernel.JobID, viewer kernel.UserID) (*job.MultiJobResponse, error) {
	resp := &job.MultiJobResponse{
		Jobs:   make([]job.JobResponse, 0, len(jobIDs)),
		Errors: make(map[kernel.JobID]string),
	}

	for _, id := range jobIDs {
		if err := job.ValidateID(id); err != nil {
			resp.Errors[id] = errMessage(err)
			continue
		}
		entity, err := s.jobRepo.FindByID(ctx, id)
		if err != nil {
			resp.Errors[id] = errMessage(err)
			continue
		}
		resp.Jobs = append(resp.Jobs, *s.toJobResponse(entity))
	}
	return resp, nil
}

// GetJobWithRelated retrieves a posting plus up to five others sharing
// its location or job type. A failing related lookup degrades to an
// empty list.
func (s *JobService) GetJobWithRelated(ctx context.Context, jobID kernel.JobID, viewer kernel.UserID) (*job.RelatedJobsResponse, error) {
	detail, err := s.GetJobByID(ctx, jobID, viewer)
	if err != nil {
		return nil, err
	}

	return &job.RelatedJobsResponse{
		Job:     *detail,
		Related: s.relatedJobs(ctx, detail.Job),
	}, nil
}

func (s *JobService) relatedJobs(ctx context.Context, self job.JobResponse) []job.JobResponse {
	related := make([]job.JobResponse, 0, relatedJobsLimit)
	seen := map[kernel.JobID]bool{self.ID: true}

	queries := []job.JobQuery{
		{Location: self.Location.String()},
		{JobType: self.JobType},
	}
	for _, q := range queries {
		if len(related) == relatedJobsLimit {
			break
		}
		q.OrderBy = job.OrderByCreatedAt
		q.OrderDir = job.OrderDesc
		q.Pagination = kernel.PaginationOptions{Page: 1, PageSize: relatedJobsLimit + 1}

		page, err := s.jobRepo.FindAll(ctx, q)
		if err != nil {
			logx.Warnf("related lookup for job %s skipped: %v", self.ID, err)
			continue
		}
		for i := range page.Items {
			if len(related) == relatedJobsLimit {
				break
			}
			candidate := &page.Items[i]
			if seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			related = append(related, *s.toJobResponse(candidate))
		}
	}
	return related
}

// GetJobPreview returns a lightweight card for a posting, with the
// description cut to 200 characters.
func (s *JobService) GetJobPreview(ctx context.Context, jobID kernel.JobID) (*job.JobPreviewResponse, error) {
	if err := job.ValidateID(jobID); err != nil {
		return nil, err
	}

	entity, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, s.repoFault("find", err)
	}

	return &job.JobPreviewResponse{
		ID:          entity.ID,
		Title:       entity.Title,
		Company:     entity.Company,
		Location:    entity.Location,
		JobType:     entity.JobType,
		Description: truncate(entity.Description.String(), previewLength),
	}, nil
}

// GetJobStats returns view counts and edit-window state for a posting.
func (s *JobService) GetJobStats(ctx context.Context, jobID kernel.JobID) (*job.JobStatsResponse, error) {
	if err := job.ValidateID(jobID); err != nil {
		return nil, err
	}

	entity, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, s.repoFault("find", err)
	}

	views, err := s.views.Views(ctx, jobID)
	if err != nil {
		logx.Warnf("view count for job %s unavailable: %v", jobID, err)
		views = 0
	}

	now := s.clock()
	return &job.JobStatsResponse{
		JobID:     entity.ID,
		Title:     entity.Title,
		JobType:   entity.JobType,
		Views:     views,
		AgeDays:   int(now.Sub(entity.CreatedAt).Hours() / 24),
		Editable:  entity.CanBeEditedAt(now),
		CreatedAt: entity.CreatedAt,
	}, nil
}

// trackView registers a view without blocking the response.
func (s *JobService) trackView(jobID kernel.JobID, viewer kernel.UserID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.views.TrackView(ctx, jobID, viewer); err != nil {
			logx.Warnf("view tracking for job %s failed: %v", jobID, err)
		}
	}()
}

func errMessage(err error) string {
	if e, ok := err.(*errx.Error); ok {
		return e.Message
	}
	return "lookup failed"
}
