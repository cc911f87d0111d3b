package jobinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-hq/boardwalk/board/job"
)

func TestBuildWhere(t *testing.T) {
	tests := []struct {
		name       string
		query      job.JobQuery
		wantClause string
		wantArgs   []interface{}
	}{
		{
			name:       "no filters",
			query:      job.JobQuery{},
			wantClause: "",
			wantArgs:   []interface{}{},
		},
		{
			name:       "location only",
			query:      job.JobQuery{Location: "Oslo"},
			wantClause: "WHERE location ILIKE $1",
			wantArgs:   []interface{}{"%Oslo%"},
		},
		{
			name:       "job type only",
			query:      job.JobQuery{JobType: job.JobTypeContract},
			wantClause: "WHERE job_type = $1",
			wantArgs:   []interface{}{"CONTRACT"},
		},
		{
			name:       "search term spans three columns with one arg",
			query:      job.JobQuery{SearchTerm: "backend"},
			wantClause: "WHERE (title ILIKE $1 OR company ILIKE $1 OR description ILIKE $1)",
			wantArgs:   []interface{}{"%backend%"},
		},
		{
			name:       "posted by only",
			query:      job.JobQuery{PostedBy: "u1"},
			wantClause: "WHERE posted_by = $1",
			wantArgs:   []interface{}{"u1"},
		},
		{
			name: "all filters combined in order",
			query: job.JobQuery{
				Location:   "Oslo",
				JobType:    job.JobTypeFullTime,
				SearchTerm: "go",
				PostedBy:   "u1",
			},
			wantClause: "WHERE location ILIKE $1 AND job_type = $2 AND (title ILIKE $3 OR company ILIKE $3 OR description ILIKE $3) AND posted_by = $4",
			wantArgs:   []interface{}{"%Oslo%", "FULL_TIME", "%go%", "u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := buildWhere(tt.query)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderColumn(t *testing.T) {
	assert.Equal(t, "created_at", orderColumn(job.OrderByCreatedAt))
	assert.Equal(t, "updated_at", orderColumn(job.OrderByUpdatedAt))
	assert.Equal(t, "title", orderColumn(job.OrderByTitle))
	assert.Equal(t, "company", orderColumn(job.OrderByCompany))
	// Anything unexpected falls back to creation time.
	assert.Equal(t, "created_at", orderColumn(job.OrderField("salary")))
}

func TestOrderDirection(t *testing.T) {
	assert.Equal(t, "ASC", orderDirection(job.OrderAsc))
	assert.Equal(t, "DESC", orderDirection(job.OrderDesc))
	assert.Equal(t, "DESC", orderDirection(job.OrderDirection("")))
}

func TestJobModelRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	entity := &job.Job{
		ID:          "j1",
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build and run our backend services.",
		Location:    "Oslo",
		JobType:     job.JobTypeFullTime,
		PostedBy:    "u1",
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
	}

	assert.Equal(t, entity, fromEntity(entity).toEntity())
}
