package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bulkwave/campaign-engine/internal/models"
)

type retryJobRepository struct {
	db *sqlx.DB
}

func NewRetryJobRepository(db *sqlx.DB) RetryJobRepository {
	return &retryJobRepository{
		db: db,
	}
}

func (r *retryJobRepository) Enqueue(job *models.RetryJob) error {
	query := `
		INSERT INTO retry_jobs (id, event_id, campaign_id, source, attempts, next_attempt_at, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING
	`

	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Exec(query, job.ID, job.EventID, job.CampaignID, job.Source,
		job.Attempts, job.NextAttemptAt, job.LastError, createdAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue retry job: %w", err)
	}

	return nil
}

// Due lists jobs whose backoff delay has elapsed, oldest first.
func (r *retryJobRepository) Due(now time.Time, limit int) ([]*models.RetryJob, error) {
	query := `
		SELECT id, event_id, campaign_id, source, attempts, next_attempt_at, last_error, created_at
		FROM retry_jobs
		WHERE next_attempt_at <= $1
		ORDER BY next_attempt_at ASC
		LIMIT $2
	`

	var jobs []*models.RetryJob
	err := r.db.Select(&jobs, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due retry jobs: %w", err)
	}

	return jobs, nil
}

func (r *retryJobRepository) Reschedule(id string, attempts int, nextAttemptAt time.Time, lastError string) error {
	query := `
		UPDATE retry_jobs
		SET attempts = $2, next_attempt_at = $3, last_error = $4
		WHERE id = $1
	`

	_, err := r.db.Exec(query, id, attempts, nextAttemptAt, lastError)
	if err != nil {
		return fmt.Errorf("failed to reschedule retry job: %w", err)
	}

	return nil
}

func (r *retryJobRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM retry_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete retry job: %w", err)
	}

	return nil
}

// DeleteByCampaign is the bulk cancellation primitive for one campaign's
// pending retries.
func (r *retryJobRepository) DeleteByCampaign(campaignID string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM retry_jobs WHERE campaign_id = $1`, campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel retry jobs by campaign: %w", err)
	}

	return res.RowsAffected()
}

// DeleteBySource cancels every pending retry originating from one callback
// source.
func (r *retryJobRepository) DeleteBySource(source string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM retry_jobs WHERE source = $1`, source)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel retry jobs by source: %w", err)
	}

	return res.RowsAffected()
}

type deadLetterRepository struct {
	db *sqlx.DB
}

func NewDeadLetterRepository(db *sqlx.DB) DeadLetterRepository {
	return &deadLetterRepository{
		db: db,
	}
}

// Insert appends a quarantined entry. Entries are never updated or deleted by
// the engine; purging is an administrative operation outside this code path.
func (r *deadLetterRepository) Insert(entry *models.DeadLetterEntry) error {
	query := `
		INSERT INTO dead_letters (id, event_id, reason, attempts, last_error, created_at, failed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Exec(query, entry.ID, entry.EventID, entry.Reason, entry.Attempts,
		entry.LastError, createdAt, entry.FailedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dead letter: %w", err)
	}

	return nil
}

func (r *deadLetterRepository) List(offset, limit int) ([]*models.DeadLetterEntry, error) {
	query := `
		SELECT id, event_id, reason, attempts, last_error, created_at, failed_at
		FROM dead_letters
		ORDER BY failed_at DESC
		LIMIT $1 OFFSET $2
	`

	var entries []*models.DeadLetterEntry
	err := r.db.Select(&entries, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list dead letters: %w", err)
	}

	return entries, nil
}

func (r *deadLetterRepository) Count() (int64, error) {
	var count int64
	err := r.db.Get(&count, `SELECT COUNT(*) FROM dead_letters`)
	if err != nil {
		return 0, fmt.Errorf("failed to count dead letters: %w", err)
	}

	return count, nil
}
