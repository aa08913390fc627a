package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/castvox/castvox/internal/core/domain"
	"github.com/castvox/castvox/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Fingerprint string            `json:"fingerprint"`
	OptionID    *uuid.UUID        `json:"option_id,omitempty"`
	OptionIDs   []uuid.UUID       `json:"option_ids,omitempty"`
	Value       string            `json:"value,omitempty"`
	Rating      *int              `json:"rating,omitempty"`
	Rankings    map[int]uuid.UUID `json:"rankings,omitempty"`
}

// SubmitVote godoc
// @Summary      Submits a ballot for a poll
// @Description  Records one voter's answer in the shape the poll's type requires. Fire-and-forget: no vote id is echoed back.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      403
// @Failure      404
// @Failure      409
// @Router       /polls/{id}/votes [post]
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodeInvalidValue, Message: "invalid request body",
		})
		return
	}

	input := ports.SubmitVoteInput{
		PollID:           pollID,
		VoterFingerprint: req.Fingerprint,
		OptionID:         req.OptionID,
		OptionIDs:        req.OptionIDs,
		Value:            req.Value,
		Rating:           req.Rating,
		Rankings:         req.Rankings,
	}

	if err := h.service.Submit(r.Context(), input); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// MyVote reports whether the fingerprint has voted and echoes the prior
// answer so the client can re-render without re-submitting.
func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}

	fingerprint := r.URL.Query().Get("fingerprint")
	if fingerprint == "" {
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodeInvalidFingerprint, Message: "a voter fingerprint is required",
		})
		return
	}

	status, err := h.service.Status(r.Context(), pollID, fingerprint)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// ResetVote removes every stored row for this (poll, fingerprint) pair.
func (h *VoteHandler) ResetVote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}

	fingerprint := r.URL.Query().Get("fingerprint")
	if fingerprint == "" {
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodeInvalidFingerprint, Message: "a voter fingerprint is required",
		})
		return
	}

	if err := h.service.Reset(r.Context(), pollID, fingerprint); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func pollIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, errorBody{
			Code: domain.CodePollNotFound, Message: "invalid poll id",
		})
		return uuid.Nil, false
	}
	return pollID, true
}
