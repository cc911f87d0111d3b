package jobsrv

import (
	"context"
	"time"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// Pagination limits for listing queries.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListJobs retrieves one page of postings matching the raw filters.
// Unknown job types and order fields fail fast, before any repository
// access; free-text filters are sanitized, page and limit normalized.
func (s *JobService) ListJobs(ctx context.Context, req job.ListJobsRequest) (*job.PaginatedJobsResponse, error) {
	query, err := s.buildQuery(req)
	if err != nil {
		return nil, err
	}
	return s.runQuery(ctx, *query)
}

// GetFeaturedJobs returns the newest postings, sized by the caller.
func (s *JobService) GetFeaturedJobs(ctx context.Context, limit int) (*job.PaginatedJobsResponse, error) {
	return s.ListJobs(ctx, job.ListJobsRequest{Limit: limit})
}

// GetJobsByLocation returns postings whose location contains the given
// fragment.
func (s *JobService) GetJobsByLocation(ctx context.Context, location string, page, limit int) (*job.PaginatedJobsResponse, error) {
	return s.ListJobs(ctx, job.ListJobsRequest{Location: location, Page: page, Limit: limit})
}

// GetJobsByType returns postings of one employment type.
func (s *JobService) GetJobsByType(ctx context.Context, jobType string, page, limit int) (*job.PaginatedJobsResponse, error) {
	return s.ListJobs(ctx, job.ListJobsRequest{JobType: jobType, Page: page, Limit: limit})
}

// SearchJobs matches a free-text term against title, company and
// description.
func (s *JobService) SearchJobs(ctx context.Context, term string, page, limit int) (*job.PaginatedJobsResponse, error) {
	return s.ListJobs(ctx, job.ListJobsRequest{SearchTerm: term, Page: page, Limit: limit})
}

// GetUserJobs returns the postings of one owner, newest first.
func (s *JobService) GetUserJobs(ctx context.Context, userID kernel.UserID, page, limit int) (*job.PaginatedJobsResponse, error) {
	if userID.IsEmpty() {
		return nil, job.ErrMissingUserID()
	}

	return s.runQuery(ctx, job.JobQuery{
		PostedBy:   userID,
		OrderBy:    job.OrderByCreatedAt,
		OrderDir:   job.OrderDesc,
		Pagination: normalizePagination(page, limit),
	})
}

// CountUserJobs counts the postings of one owner.
func (s *JobService) CountUserJobs(ctx context.Context, userID kernel.UserID) (int64, error) {
	if userID.IsEmpty() {
		return 0, job.ErrMissingUserID()
	}

	count, err := s.jobRepo.Count(ctx, job.JobQuery{PostedBy: userID})
	if err != nil {
		return 0, s.repoFault("count", err)
	}
	return count, nil
}

// buildQuery validates and normalizes raw filters into a repository
// query. Validation failures return before the repository is touched.
func (s *JobService) buildQuery(req job.ListJobsRequest) (*job.JobQuery, error) {
	var jobType job.JobType
	if req.JobType != "" {
		parsed, ok := job.ParseJobType(req.JobType)
		if !ok {
			return nil, job.ErrInvalidJobType().
				WithDetail("job_type", req.JobType).
				WithDetail("valid", job.JobTypes())
		}
		jobType = parsed
	}

	orderBy, ok := job.ParseOrderField(req.OrderBy)
	if !ok {
		return nil, job.ErrInvalidOrderField().
			WithDetail("order_by", req.OrderBy)
	}

	return &job.JobQuery{
		Location:   job.SanitizeFilter(req.Location),
		JobType:    jobType,
		SearchTerm: job.SanitizeFilter(req.SearchTerm),
		OrderBy:    orderBy,
		OrderDir:   job.ParseOrderDirection(req.OrderDir),
		Pagination: normalizePagination(req.Page, req.Limit),
	}, nil
}

func (s *JobService) runQuery(ctx context.Context, query job.JobQuery) (*job.PaginatedJobsResponse, error) {
	started := time.Now()
	page, err := s.jobRepo.FindAll(ctx, query)
	if err != nil {
		return nil, s.repoFault("list", err)
	}
	s.sink.ListQueryCompleted(time.Since(started), len(page.Items))

	responses := make([]job.JobResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, *s.toJobResponse(&page.Items[i]))
	}

	return &kernel.Paginated[job.JobResponse]{
		Items: responses,
		Page:  page.Page,
		Empty: page.Empty,
	}, nil
}

// normalizePagination clamps the page to at least 1 and the limit into
// [1, MaxLimit], falling back to the default for non-positive limits.
func normalizePagination(page, limit int) kernel.PaginationOptions {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return kernel.PaginationOptions{Page: page, PageSize: limit}
}
