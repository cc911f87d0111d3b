package job

import (
	"time"

	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new posting
type CreateJobRequest struct {
	Title       kernel.JobTitle       `json:"title" validate:"required,max=100"`
	Company     kernel.CompanyName    `json:"company" validate:"required,max=100"`
	Description kernel.JobDescription `json:"description" validate:"required,min=10,max=5000"`
	Location    kernel.JobLocation    `json:"location" validate:"required,max=100"`
	JobType     JobType               `json:"job_type" validate:"required,jobtype"`

	// PostedBy is resolved from the caller identity, never from the body.
	PostedBy kernel.UserID `json:"-"`
}

// UpdateJobRequest - patch DTO; nil fields are left untouched
type UpdateJobRequest struct {
	Title       *kernel.JobTitle       `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
	Company     *kernel.CompanyName    `json:"company,omitempty" validate:"omitnil,min=1,max=100"`
	Description *kernel.JobDescription `json:"description,omitempty" validate:"omitnil,min=10,max=5000"`
	Location    *kernel.JobLocation    `json:"location,omitempty" validate:"omitnil,min=1,max=100"`
	JobType     *JobType               `json:"job_type,omitempty" validate:"omitnil,jobtype"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdateJobRequest) IsEmpty() bool {
	return r.Title == nil && r.Company == nil && r.Description == nil &&
		r.Location == nil && r.JobType == nil
}

// OrderField names a sortable column of the listing query.
type OrderField string

const (
	OrderByCreatedAt OrderField = "createdAt"
	OrderByUpdatedAt OrderField = "updatedAt"
	OrderByTitle     OrderField = "title"
	OrderByCompany   OrderField = "company"
)

// ParseOrderField validates a raw orderBy token. The empty string maps
// to the default ordering by creation time.
func ParseOrderField(raw string) (OrderField, bool) {
	switch OrderField(raw) {
	case "":
		return OrderByCreatedAt, true
	case OrderByCreatedAt, OrderByUpdatedAt, OrderByTitle, OrderByCompany:
		return OrderField(raw), true
	}
	return "", false
}

// OrderDirection is the sort direction of the listing query.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// ParseOrderDirection maps raw input to a direction, defaulting to
// descending for anything that is not exactly "asc".
func ParseOrderDirection(raw string) OrderDirection {
	if OrderDirection(raw) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// ListJobsRequest - raw listing filters as received from the caller
type ListJobsRequest struct {
	Location   string `json:"location,omitempty"`
	JobType    string `json:"job_type,omitempty"`
	SearchTerm string `json:"search,omitempty"`
	OrderBy    string `json:"order_by,omitempty"`
	OrderDir   string `json:"order_dir,omitempty"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// JobQuery - normalized, sanitized query handed to the repository
type JobQuery struct {
	Location   string
	JobType    JobType
	SearchTerm string
	PostedBy   kernel.UserID
	OrderBy    OrderField
	OrderDir   OrderDirection
	Pagination kernel.PaginationOptions
}

// BulkDeleteJobsRequest - DTO for deleting several postings at once
type BulkDeleteJobsRequest struct {
	JobIDs []kernel.JobID `json:"job_ids" validate:"required,min=1"`
}

// Response type alias for paginated jobs
type PaginatedJobsResponse = kernel.Paginated[JobResponse]

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID          kernel.JobID          `json:"id"`
	Title       kernel.JobTitle       `json:"title"`
	Company     kernel.CompanyName    `json:"company"`
	Description kernel.JobDescription `json:"description"`
	Location    kernel.JobLocation    `json:"location"`
	JobType     JobType               `json:"job_type"`
	PostedBy    kernel.UserID         `json:"posted_by"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// JobDetailResponse - single job plus viewer-relative flags
type JobDetailResponse struct {
	Job     JobResponse `json:"job"`
	IsOwner bool        `json:"is_owner"`
	CanEdit bool        `json:"can_edit"`
}

// MultiJobResponse - best-effort batch lookup result
type MultiJobResponse struct {
	Jobs   []JobResponse           `json:"jobs"`
	Errors map[kernel.JobID]string `json:"errors"`
}

// RelatedJobsResponse - a job together with related postings
type RelatedJobsResponse struct {
	Job     JobDetailResponse `json:"job"`
	Related []JobResponse     `json:"related"`
}

// JobPreviewResponse - lightweight card with a truncated description
type JobPreviewResponse struct {
	ID          kernel.JobID       `json:"id"`
	Title       kernel.JobTitle    `json:"title"`
	Company     kernel.CompanyName `json:"company"`
	Location    kernel.JobLocation `json:"location"`
	JobType     JobType            `json:"job_type"`
	Description string             `json:"description"`
}

// JobStatsResponse - owner-facing statistics for one posting
type JobStatsResponse struct {
	JobID     kernel.JobID    `json:"job_id"`
	Title     kernel.JobTitle `json:"title"`
	JobType   JobType         `json:"job_type"`
	Views     int64           `json:"views"`
	AgeDays   int             `json:"age_days"`
	Editable  bool            `json:"editable"`
	CreatedAt time.Time       `json:"created_at"`
}

// BulkJobOperationResponse - result of bulk operations
type BulkJobOperationResponse struct {
	Successful []kernel.JobID          `json:"successful"`
	Failed     map[kernel.JobID]string `json:"failed"`
	Total      int                     `json:"total"`
}
