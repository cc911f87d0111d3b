package jobinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/boardwalk-hq/boardwalk/board/job"
)

// PostgresAuditLog implements job.AuditLog using PostgreSQL
type PostgresAuditLog struct {
	db *sqlx.DB
}

// NewPostgresAuditLog creates a new PostgreSQL audit log
func NewPostgresAuditLog(db *sqlx.DB) *PostgresAuditLog {
	return &PostgresAuditLog{
		db: db,
	}
}

// Record appends one entry to the job audit trail
func (l *PostgresAuditLog) Record(ctx context.Context, entry job.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	query := `
		INSERT INTO job_audit (
			id, action, job_id, actor, details, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err = l.db.ExecContext(ctx, query,
		uuid.NewString(),
		string(entry.Action),
		entry.JobID.String(),
		entry.Actor.String(),
		details,
		entry.At,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}
