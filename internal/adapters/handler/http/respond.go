package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/castvox/castvox/internal/core/domain"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeErrorCode(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, errorResponse{Error: body})
}

// writeDomainError maps core errors onto the wire envelope with their stable
// codes. Anything unrecognized is an infrastructure error: logged, and
// answered with a generic 500 so a failed vote is never presented as
// accepted.
func writeDomainError(w http.ResponseWriter, err error) {
	var limitErr *domain.VoteLimitError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		writeErrorCode(w, http.StatusNotFound, errorBody{
			Code: domain.CodePollNotFound, Message: "poll not found",
		})
	case errors.Is(err, domain.ErrInvalidPollID):
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodePollNotFound, Message: "invalid poll id",
		})
	case errors.Is(err, domain.ErrPollNotOpen):
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodePollNotOpen, Message: "poll is not open yet",
		})
	case errors.Is(err, domain.ErrPollClosed):
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodePollClosed, Message: "poll is closed",
		})
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeErrorCode(w, http.StatusConflict, errorBody{
			Code: domain.CodeAlreadyVoted, Message: "you have already voted on this poll",
		})
	case errors.Is(err, domain.ErrDidNotVote):
		writeErrorCode(w, http.StatusNotFound, errorBody{
			Code: domain.CodeVoteNotFound, Message: "no vote to reset for this poll",
		})
	case errors.As(err, &limitErr):
		writeErrorCode(w, http.StatusForbidden, errorBody{
			Code:    domain.CodeVoteLimitReached,
			Message: limitErr.Error(),
			Limit:   limitErr.Limit,
		})
	case errors.As(err, &validationErr):
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code:    validationErr.Code,
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
	default:
		log.Printf("internal error: %v", err)
		writeErrorCode(w, http.StatusInternalServerError, errorBody{
			Code: "INTERNAL_ERROR", Message: "failed to process request",
		})
	}
}
