package domain

import (
	"errors"
	"fmt"
)

// Stable rejection and validation codes. The HTTP boundary maps these to wire
// responses; they never change meaning once published.
const (
	CodePollNotFound     = "POLL_NOT_FOUND"
	CodePollNotOpen      = "POLL_NOT_OPEN"
	CodePollClosed       = "POLL_CLOSED"
	CodeVoteLimitReached = "VOTE_LIMIT_REACHED"
	CodeAlreadyVoted     = "ALREADY_VOTED"
	CodeVoteNotFound     = "VOTE_NOT_FOUND"

	CodeMissingOption       = "MISSING_OPTION"
	CodeInvalidOption       = "INVALID_OPTION"
	CodeTooManySelections   = "TOO_MANY_SELECTIONS"
	CodeInvalidValue        = "INVALID_VALUE"
	CodeInvalidRating       = "INVALID_RATING"
	CodeInvalidRatingRange  = "INVALID_RATING_RANGE"
	CodeInvalidRank         = "INVALID_RANK"
	CodeDuplicateRankOption = "DUPLICATE_RANK_OPTION"
	CodeMissingText         = "MISSING_TEXT"
	CodeTextTooLong         = "TEXT_TOO_LONG"
	CodeInvalidFingerprint  = "INVALID_FINGERPRINT"
)

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidPollID = errors.New("invalid poll id")
	ErrPollNotOpen   = errors.New("poll is not open yet")
	ErrPollClosed    = errors.New("poll is closed")
	ErrAlreadyVoted  = errors.New("voter has already voted on this poll")
	ErrDidNotVote    = errors.New("voter did not vote on this poll")
)

// VoteLimitError rejects a ballot because the creator's plan quota for this
// poll is exhausted. It carries the limit so the boundary can render it.
type VoteLimitError struct {
	Limit int
}

func (e *VoteLimitError) Error() string {
	return fmt.Sprintf("vote limit of %d reached for this poll", e.Limit)
}

// ValidationError is a field-level rejection of a malformed or out-of-range
// ballot for the poll's type.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Invalid builds a ValidationError with a stable code.
func Invalid(code, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}
