package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Company     string    `db:"company"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	JobType     string    `db:"job_type"`
	PostedBy    string    `db:"posted_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	return &job.Job{
		ID:          kernel.JobID(m.ID),
		Title:       kernel.JobTitle(m.Title),
		Company:     kernel.CompanyName(m.Company),
		Description: kernel.JobDescription(m.Description),
		Location:    kernel.JobLocation(m.Location),
		JobType:     job.JobType(m.JobType),
		PostedBy:    kernel.UserID(m.PostedBy),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:          string(j.ID),
		Title:       string(j.Title),
		Company:     string(j.Company),
		Description: string(j.Description),
		Location:    string(j.Location),
		JobType:     string(j.JobType),
		PostedBy:    string(j.PostedBy),
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

const jobColumns = "id, title, company, description, location, job_type, posted_by, created_at, updated_at"

// ============================================================================
// Query Building
// ============================================================================

// buildWhere translates a normalized query into a WHERE clause with
// positional args. Filter values arrive sanitized from the service
// layer; they are still passed as parameters, never interpolated.
func buildWhere(q job.JobQuery) (string, []interface{}) {
	whereConditions := []string{}
	args := []interface{}{}
	argCount := 1

	if q.Location != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("location ILIKE $%d", argCount))
		args = append(args, "%"+q.Location+"%")
		argCount++
	}

	if q.JobType != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("job_type = $%d", argCount))
		args = append(args, string(q.JobType))
		argCount++
	}

	if q.SearchTerm != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+q.SearchTerm+"%")
		argCount++
	}

	if !q.PostedBy.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("posted_by = $%d", argCount))
		args = append(args, q.PostedBy.String())
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + whereConditions[0]
		for i := 1; i < len(whereConditions); i++ {
			whereClause += " AND " + whereConditions[i]
		}
	}

	return whereClause, args
}

// orderColumn maps an order field to its column. The field comes from a
// closed set, so splicing it into SQL is safe.
func orderColumn(field job.OrderField) string {
	switch field {
	case job.OrderByUpdatedAt:
		return "updated_at"
	case job.OrderByTitle:
		return "title"
	case job.OrderByCompany:
		return "company"
	default:
		return "created_at"
	}
}

func orderDirection(dir job.OrderDirection) string {
	if dir == job.OrderAsc {
		return "ASC"
	}
	return "DESC"
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job posting
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model := fromEntity(jobEntity)

	query := `
		INSERT INTO jobs (
			id, title, company, description, location,
			job_type, posted_by, created_at, updated_at
		) VALUES (
			:id, :title, :company, :description, :location,
			:job_type, :posted_by, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return job.ErrDuplicatePosting().WithDetail("job_id", jobEntity.ID)
			}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID retrieves a job by ID
func (r *PostgresJobRepository) FindByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id)
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity(), nil
}

// FindAll retrieves one page of jobs matching the query
func (r *PostgresJobRepository) FindAll(ctx context.Context, q job.JobQuery) (*kernel.Paginated[job.Job], error) {
	whereClause, args := buildWhere(q)

	// Count total
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	// Calculate pagination
	offset := q.Pagination.Offset()
	totalPages := (total + q.Pagination.PageSize - 1) / q.Pagination.PageSize

	// Get paginated results
	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, jobColumns, whereClause, orderColumn(q.OrderBy), orderDirection(q.OrderDir), len(args)+1, len(args)+2)

	args = append(args, q.Pagination.PageSize, offset)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	// Convert to entities
	entities := make([]job.Job, 0, len(models))
	for i := range models {
		entities = append(entities, *models[i].toEntity())
	}

	return &kernel.Paginated[job.Job]{
		Items: entities,
		Page: kernel.Page{
			Number:  q.Pagination.Page,
			Size:    q.Pagination.PageSize,
			Total:   total,
			Pages:   totalPages,
			HasMore: q.Pagination.Page*q.Pagination.PageSize < total,
		},
		Empty: len(entities) == 0,
	}, nil
}

// Update applies the non-nil patch fields and stamps the modification time
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, patch job.UpdateJobRequest, updatedAt time.Time) (*job.Job, error) {
	sets := []string{}
	args := []interface{}{}
	argCount := 1

	if patch.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argCount))
		args = append(args, patch.Title.String())
		argCount++
	}
	if patch.Company != nil {
		sets = append(sets, fmt.Sprintf("company = $%d", argCount))
		args = append(args, patch.Company.String())
		argCount++
	}
	if patch.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argCount))
		args = append(args, patch.Description.String())
		argCount++
	}
	if patch.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argCount))
		args = append(args, patch.Location.String())
		argCount++
	}
	if patch.JobType != nil {
		sets = append(sets, fmt.Sprintf("job_type = $%d", argCount))
		args = append(args, patch.JobType.String())
		argCount++
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, updatedAt)
	argCount++

	query := fmt.Sprintf(`
		UPDATE jobs SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argCount, jobColumns)
	args = append(args, string(id))

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id)
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return model.toEntity(), nil
}

// Delete removes a job, reporting whether a row was actually removed
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) (bool, error) {
	query := `DELETE FROM jobs WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Count counts jobs matching the query
func (r *PostgresJobRepository) Count(ctx context.Context, q job.JobQuery) (int64, error) {
	whereClause, args := buildWhere(q)

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}
