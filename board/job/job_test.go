package job

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardwalk-hq/boardwalk/pkg/errx"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

func validJob() *Job {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &Job{
		ID:          kernel.NewJobID("8f14e45f-ea3a-4c6b-9d25-1f5c7b4e9a01"),
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build great APIs for our customers",
		Location:    "Remote",
		JobType:     JobTypeFullTime,
		PostedBy:    kernel.NewUserID("u1"),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestParseJobType(t *testing.T) {
	tests := []struct {
		raw  string
		want JobType
		ok   bool
	}{
		{"FULL_TIME", JobTypeFullTime, true},
		{"Full-Time", JobTypeFullTime, true},
		{"full time", JobTypeFullTime, true},
		{"  Part-Time  ", JobTypePartTime, true},
		{"contract", JobTypeContract, true},
		{"CONTRACT", JobTypeContract, true},
		{"Freelance", "", false},
		{"REMOTE", "", false},
		{"", "", false},
		{"FULL__TIME", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseJobType(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateFieldBounds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Job)
		wantField string
	}{
		{"valid job", func(j *Job) {}, ""},
		{"empty title", func(j *Job) { j.Title = "" }, "title"},
		{"title at min", func(j *Job) { j.Title = "X" }, ""},
		{"title at max", func(j *Job) { j.Title = kernel.JobTitle(strings.Repeat("a", 100)) }, ""},
		{"title over max", func(j *Job) { j.Title = kernel.JobTitle(strings.Repeat("a", 101)) }, "title"},
		{"multibyte title counts runes", func(j *Job) { j.Title = kernel.JobTitle(strings.Repeat("é", 100)) }, ""},
		{"multibyte title over max", func(j *Job) { j.Title = kernel.JobTitle(strings.Repeat("é", 101)) }, "title"},
		{"empty company", func(j *Job) { j.Company = "" }, "company"},
		{"company at max", func(j *Job) { j.Company = kernel.CompanyName(strings.Repeat("c", 100)) }, ""},
		{"company over max", func(j *Job) { j.Company = kernel.CompanyName(strings.Repeat("c", 101)) }, "company"},
		{"description below min", func(j *Job) { j.Description = kernel.JobDescription(strings.Repeat("d", 9)) }, "description"},
		{"description at min", func(j *Job) { j.Description = kernel.JobDescription(strings.Repeat("d", 10)) }, ""},
		{"description at max", func(j *Job) { j.Description = kernel.JobDescription(strings.Repeat("d", 5000)) }, ""},
		{"description over max", func(j *Job) { j.Description = kernel.JobDescription(strings.Repeat("d", 5001)) }, "description"},
		{"empty location", func(j *Job) { j.Location = "" }, "location"},
		{"location at max", func(j *Job) { j.Location = kernel.JobLocation(strings.Repeat("l", 100)) }, ""},
		{"location over max", func(j *Job) { j.Location = kernel.JobLocation(strings.Repeat("l", 101)) }, "location"},
		{"unknown job type", func(j *Job) { j.JobType = "INTERNSHIP" }, "job_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(j)

			err := j.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, CodeValidationFailed, e.Code)
			assert.Equal(t, tt.wantField, e.Details["field"])
			assert.NotEmpty(t, e.Details["message"])
		})
	}
}

func TestIsOwnedBy(t *testing.T) {
	j := validJob()

	assert.True(t, j.IsOwnedBy(kernel.NewUserID("u1")))
	assert.False(t, j.IsOwnedBy(kernel.NewUserID("u2")))
	assert.False(t, j.IsOwnedBy(kernel.NewUserID("")))
}

func TestCanBeEditedAt(t *testing.T) {
	j := validJob()

	assert.True(t, j.CanBeEditedAt(j.CreatedAt.Add(89*24*time.Hour)))
	assert.True(t, j.CanBeEditedAt(j.CreatedAt.Add(EditWindow)), "window boundary is inclusive")
	assert.False(t, j.CanBeEditedAt(j.CreatedAt.Add(EditWindow+time.Second)))
	assert.False(t, j.CanBeEditedAt(j.CreatedAt.Add(91*24*time.Hour)))
}

func TestCompanyChangeableAt(t *testing.T) {
	j := validJob()

	assert.True(t, j.CompanyChangeableAt(j.CreatedAt.Add(23*time.Hour)))
	assert.True(t, j.CompanyChangeableAt(j.CreatedAt.Add(CompanyChangeWindow)), "window boundary is inclusive")
	assert.False(t, j.CompanyChangeableAt(j.CreatedAt.Add(25*time.Hour)))
}

func TestRecentlyUpdatedAt(t *testing.T) {
	j := validJob()
	j.UpdatedAt = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, j.RecentlyUpdatedAt(j.UpdatedAt.Add(4*time.Minute)))
	assert.False(t, j.RecentlyUpdatedAt(j.UpdatedAt.Add(DeleteCooldown)), "cool-down boundary is exclusive")
	assert.False(t, j.RecentlyUpdatedAt(j.UpdatedAt.Add(6*time.Minute)))
}

func TestYoungAt(t *testing.T) {
	j := validJob()

	assert.True(t, j.YoungAt(j.CreatedAt.Add(30*time.Minute)))
	assert.False(t, j.YoungAt(j.CreatedAt.Add(time.Hour)))
	assert.False(t, j.YoungAt(j.CreatedAt.Add(2*time.Hour)))
}

func TestMatchesPosting(t *testing.T) {
	j := validJob()

	assert.True(t, j.MatchesPosting("backend engineer", "ACME"))
	assert.True(t, j.MatchesPosting("Backend Engineer", "Acme"))
	assert.False(t, j.MatchesPosting("Backend Engineer", "Globex"))
	assert.False(t, j.MatchesPosting("Frontend Engineer", "Acme"))
}

func TestValidateID(t *testing.T) {
	valid := []string{
		"8f14e45f-ea3a-4c6b-9d25-1f5c7b4e9a01",
		"job_123",
		"A-1_b",
		"42",
	}
	for _, id := range valid {
		assert.NoError(t, ValidateID(kernel.NewJobID(id)), id)
	}

	invalid := []string{"", "has space", "semi;colon", "job!", "id/with/slash", "ключ?"}
	for _, id := range invalid {
		err := ValidateID(kernel.NewJobID(id))
		require.Error(t, err, id)
		assert.True(t, errx.IsCode(err, CodeInvalidID), id)
	}
}
