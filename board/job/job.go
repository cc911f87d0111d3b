package job

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// JobType classifies the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime JobType = "FULL_TIME"
	JobTypePartTime JobType = "PART_TIME"
	JobTypeContract JobType = "CONTRACT"
)

// JobTypes returns the closed set of valid job types.
func JobTypes() []JobType {
	return []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract}
}

// ParseJobType normalizes raw input ("Full-Time", "part time") into a
// canonical JobType. Membership in the closed set is strict: anything
// outside it, such as "FREELANCE" or "REMOTE", is rejected.
func ParseJobType(raw string) (JobType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	candidate := JobType(normalized)
	for _, t := range JobTypes() {
		if candidate == t {
			return t, true
		}
	}
	return "", false
}

// IsValid reports whether the value is one of the canonical job types.
func (t JobType) IsValid() bool {
	_, ok := ParseJobType(string(t))
	return ok
}

func (t JobType) String() string { return string(t) }

// Field bounds, counted in runes.
const (
	TitleMinLen       = 1
	TitleMaxLen       = 100
	CompanyMinLen     = 1
	CompanyMaxLen     = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 5000
	LocationMinLen    = 1
	LocationMaxLen    = 100
)

// Temporal windows governing mutations.
const (
	// EditWindow is how long after creation a posting stays editable.
	// The boundary is inclusive: a posting exactly this old can still
	// be edited.
	EditWindow = 90 * 24 * time.Hour

	// CompanyChangeWindow is how long after creation the company field
	// may still be changed. Inclusive boundary.
	CompanyChangeWindow = 24 * time.Hour

	// DuplicateWindow is how far back duplicate detection looks when a
	// user re-posts the same title and company. Exclusive boundary: a
	// posting exactly this old no longer blocks.
	DuplicateWindow = 7 * 24 * time.Hour

	// DeleteCooldown blocks deletion right after an update. Exclusive
	// boundary: a posting updated exactly this long ago may be deleted.
	DeleteCooldown = 5 * time.Minute

	// youngJobAge is the age under which deletion triggers a warning.
	youngJobAge = time.Hour
)

// Job is a single posting on the board. ID, PostedBy and CreatedAt are
// immutable after creation; UpdatedAt moves on every mutation.
type Job struct {
	ID          kernel.JobID          `db:"id" json:"id"`
	Title       kernel.JobTitle       `db:"title" json:"title"`
	Company     kernel.CompanyName    `db:"company" json:"company"`
	Description kernel.JobDescription `db:"description" json:"description"`
	Location    kernel.JobLocation    `db:"location" json:"location"`
	JobType     JobType               `db:"job_type" json:"job_type"`
	PostedBy    kernel.UserID         `db:"posted_by" json:"posted_by"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Validate checks every field invariant and returns a ValidationFailed
// error naming the first violated field.
func (j *Job) Validate() error {
	if err := validateLength("title", j.Title.String(), TitleMinLen, TitleMaxLen); err != nil {
		return err
	}
	if err := validateLength("company", j.Company.String(), CompanyMinLen, CompanyMaxLen); err != nil {
		return err
	}
	if err := validateLength("description", j.Description.String(), DescriptionMinLen, DescriptionMaxLen); err != nil {
		return err
	}
	if err := validateLength("location", j.Location.String(), LocationMinLen, LocationMaxLen); err != nil {
		return err
	}
	if !j.JobType.IsValid() {
		return ErrValidationFailed().
			WithDetail("field", "job_type").
			WithDetail("message", fmt.Sprintf("must be one of %v", JobTypes()))
	}
	return nil
}

// IsOwnedBy reports whether the posting belongs to the given user.
func (j *Job) IsOwnedBy(userID kernel.UserID) bool {
	return !userID.IsEmpty() && j.PostedBy == userID
}

// CanBeEditedAt reports whether the posting is still inside its edit
// window at the given instant.
func (j *Job) CanBeEditedAt(now time.Time) bool {
	return now.Sub(j.CreatedAt) <= EditWindow
}

// CompanyChangeableAt reports whether the company field may still be
// changed at the given instant.
func (j *Job) CompanyChangeableAt(now time.Time) bool {
	return now.Sub(j.CreatedAt) <= CompanyChangeWindow
}

// RecentlyUpdatedAt reports whether the posting was updated inside the
// delete cool-down at the given instant.
func (j *Job) RecentlyUpdatedAt(now time.Time) bool {
	return now.Sub(j.UpdatedAt) < DeleteCooldown
}

// YoungAt reports whether the posting is younger than an hour at the
// given instant.
func (j *Job) YoungAt(now time.Time) bool {
	return now.Sub(j.CreatedAt) < youngJobAge
}

// MatchesPosting reports whether the posting has the same title and
// company, compared case-insensitively. Used for duplicate detection.
func (j *Job) MatchesPosting(title kernel.JobTitle, company kernel.CompanyName) bool {
	return strings.EqualFold(j.Title.String(), title.String()) &&
		strings.EqualFold(j.Company.String(), company.String())
}

func validateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return ErrValidationFailed().
			WithDetail("field", field).
			WithDetail("message", fmt.Sprintf("must be at least %d characters", min))
	}
	if n > max {
		return ErrValidationFailed().
			WithDetail("field", field).
			WithDetail("message", fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

// jobIDPattern accepts UUID-shaped ids as well as compact tokens of
// letters, digits, underscores and hyphens.
var jobIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateID checks the structural shape of a job id before it is used
// in any lookup.
func ValidateID(id kernel.JobID) error {
	if id.IsEmpty() || !jobIDPattern.MatchString(id.String()) {
		return ErrInvalidJobID().WithDetail("job_id", id.String())
	}
	return nil
}
