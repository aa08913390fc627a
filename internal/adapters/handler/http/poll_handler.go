package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/castvox/castvox/internal/core/ports"
)

type PollHandler struct {
	pollService   ports.PollService
	resultService ports.ResultService
}

func NewPollHandler(pollService ports.PollService, resultService ports.ResultService) *PollHandler {
	return &PollHandler{
		pollService:   pollService,
		resultService: resultService,
	}
}

// GetPoll returns the poll with its options and derived effective status.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.pollService.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	polls, err := h.pollService.ListPolls(r.Context(), ports.ListPollsInput{Page: page})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, polls)
}

// GetResults godoc
// @Summary      Returns aggregated poll results
// @Description  Recomputes the type-specific result view (tallies, averages, NPS, ranked points or recent answers) from raw vote rows.
// @Tags         polls
// @Accept       json
// @Success      200
// @Failure      404
// @Router       /polls/{id}/results [get]
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromURL(w, r)
	if !ok {
		return
	}

	results, err := h.resultService.Results(r.Context(), pollID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
