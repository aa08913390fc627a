package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/ports"
)

// uniqueViolation is the postgres error code for a unique or primary key
// constraint violation.
const uniqueViolation = "23505"

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveBallot writes the voter marker and the ballot's vote rows in one
// transaction. The primary key on poll_voters is the authority for the
// one-ballot-per-voter invariant: two racing submissions both pass the
// advisory pre-check, but only one marker insert commits; the loser surfaces
// as domain.ErrAlreadyVoted, never as an infrastructure error.
func (r *voteRepository) SaveBallot(ctx context.Context, pollID uuid.UUID, voterFingerprint string, rows []domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryMarker := `
		INSERT INTO poll_voters (poll_id, voter_fingerprint)
		VALUES ($1, $2)
	`
	if _, err := tx.ExecContext(ctx, queryMarker, pollID, voterFingerprint); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert voter marker: %w", err)
	}

	queryVote := `
		INSERT INTO votes (id, poll_id, option_id, voter_fingerprint, value, rating, rank, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	stmt, err := tx.PrepareContext(ctx, queryVote)
	if err != nil {
		return fmt.Errorf("failed to prepare vote statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx,
			row.ID, pollID, row.OptionID, voterFingerprint, row.Value, row.Rating, row.Rank, row.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot: %w", err)
	}

	return nil
}

func (r *voteRepository) VotesByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Vote, error) {
	query := `
		SELECT id, poll_id, option_id, voter_fingerprint, value, rating, rank, created_at
		FROM votes
		WHERE poll_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (r *voteRepository) VotesByVoter(ctx context.Context, pollID uuid.UUID, voterFingerprint string) ([]domain.Vote, error) {
	query := `
		SELECT id, poll_id, option_id, voter_fingerprint, value, rating, rank, created_at
		FROM votes
		WHERE poll_id = $1 AND voter_fingerprint = $2
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, pollID, voterFingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to get voter ballot: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID uuid.UUID, voterFingerprint string) (bool, error) {
	query := `SELECT 1 FROM poll_voters WHERE poll_id = $1 AND voter_fingerprint = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, pollID, voterFingerprint).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) VoterCount(ctx context.Context, pollID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM poll_voters WHERE poll_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, pollID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return count, nil
}

func (r *voteRepository) DeleteBallot(ctx context.Context, pollID uuid.UUID, voterFingerprint string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM votes WHERE poll_id = $1 AND voter_fingerprint = $2`,
		pollID, voterFingerprint); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM poll_voters WHERE poll_id = $1 AND voter_fingerprint = $2`,
		pollID, voterFingerprint); err != nil {
		return fmt.Errorf("failed to delete voter marker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot reset: %w", err)
	}
	return nil
}

func scanVotes(rows *sql.Rows) ([]domain.Vote, error) {
	var votes []domain.Vote
	for rows.Next() {
		var v domain.Vote
		var optionID uuid.NullUUID
		var value sql.NullString
		var rating, rank sql.NullInt64

		if err := rows.Scan(&v.ID, &v.PollID, &optionID, &v.VoterFingerprint,
			&value, &rating, &rank, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}

		if optionID.Valid {
			id := optionID.UUID
			v.OptionID = &id
		}
		if value.Valid {
			s := value.String
			v.Value = &s
		}
		if rating.Valid {
			n := int(rating.Int64)
			v.Rating = &n
		}
		if rank.Valid {
			n := int(rank.Int64)
			v.Rank = &n
		}

		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}
