package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	queryPoll := `
		SELECT p.id, p.title, p.description, p.type, p.status,
		       p.scheduled_at, p.closed_at, p.config, p.creator_id, c.plan, p.created_at
		FROM polls p
		JOIN creators c ON c.id = p.creator_id
		WHERE p.id = $1
	`

	poll, err := scanPoll(r.db.QueryRowContext(ctx, queryPoll, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return poll, nil
}

func (r *pollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	query := `
		SELECT p.id, p.title, p.description, p.type, p.status,
		       p.scheduled_at, p.closed_at, p.config, p.creator_id, c.plan, p.created_at
		FROM polls p
		JOIN creators c ON c.id = p.creator_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Poll, error) {
	query := `
		SELECT p.id, p.title, p.description, p.type, p.status,
		       p.scheduled_at, p.closed_at, p.config, p.creator_id, c.plan, p.created_at
		FROM polls p
		JOIN creators c ON c.id = p.creator_id
		WHERE p.status IN ('scheduled', 'open')
		  AND p.closed_at IS NOT NULL
		  AND p.closed_at <= $1
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) MarkClosed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE polls SET status = 'closed' WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark poll closed: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*domain.Poll, error) {
	var poll domain.Poll
	var rawConfig []byte
	if err := row.Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.Type, &poll.Status,
		&poll.ScheduledAt, &poll.ClosedAt, &rawConfig, &poll.CreatorID, &poll.CreatorPlan, &poll.CreatedAt,
	); err != nil {
		return nil, err
	}

	// Config is decoded exactly once, here at the storage boundary.
	cfg, err := domain.DecodeConfig(poll.Type, rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to decode poll config: %w", err)
	}
	poll.Config = cfg

	return &poll, nil
}

func (r *pollRepository) scanPolls(ctx context.Context, rows *sql.Rows) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}

		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options

		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	queryOptions := `
		SELECT id, poll_id, label, order_index, created_at
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY order_index, created_at
	`
	rows, err := r.db.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Label, &opt.OrderIndex, &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
