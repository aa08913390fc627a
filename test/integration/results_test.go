package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultsResponse struct {
	PollID     uuid.UUID `json:"poll_id"`
	Type       string    `json:"type"`
	TotalVotes int       `json:"total_votes"`
	Options    []struct {
		Option struct {
			ID    uuid.UUID `json:"id"`
			Label string    `json:"label"`
		} `json:"option"`
		VoteCount  int     `json:"vote_count"`
		Percentage float64 `json:"percentage"`
	} `json:"options"`
	NPS *struct {
		Promoters  int `json:"promoters"`
		Passives   int `json:"passives"`
		Detractors int `json:"detractors"`
		Score      int `json:"score"`
	} `json:"nps"`
	Ranked []struct {
		Option struct {
			ID uuid.UUID `json:"id"`
		} `json:"option"`
		Points int `json:"points"`
	} `json:"ranked"`
}

func (app *TestApp) fetchResults(t *testing.T, pollID uuid.UUID) resultsResponse {
	t.Helper()
	resp, err := app.Client.Get(fmt.Sprintf("%s/api/polls/%s/results", app.Server.URL, pollID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results resultsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	resp.Body.Close()
	return results
}

func TestMultipleChoiceResultsCountVotersNotRows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pollID, optionIDs := app.createPoll(t, pollFixture{
		Type:    "multiple_choice",
		Config:  `{"max_selections": 3}`,
		Options: []string{"Docs", "Tests", "CI"},
	})

	// Two voters, five rows between them.
	resp := app.submitVote(t, pollID, map[string]interface{}{
		"fingerprint": "voter-1",
		"option_ids":  []uuid.UUID{optionIDs[0], optionIDs[1], optionIDs[2]},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.submitVote(t, pollID, map[string]interface{}{
		"fingerprint": "voter-2",
		"option_ids":  []uuid.UUID{optionIDs[0], optionIDs[1]},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var rows int
	require.NoError(t, app.DB.QueryRow(
		"SELECT COUNT(*) FROM votes WHERE poll_id = $1", pollID).Scan(&rows))
	assert.Equal(t, 5, rows)

	results := app.fetchResults(t, pollID)
	assert.Equal(t, 2, results.TotalVotes)
	require.Len(t, results.Options, 3)
	assert.Equal(t, 2, results.Options[0].VoteCount)
	assert.Equal(t, 2, results.Options[1].VoteCount)
	assert.Equal(t, 1, results.Options[2].VoteCount)
	assert.InDelta(t, 100.0, results.Options[0].Percentage, 0.01)
	assert.InDelta(t, 50.0, results.Options[2].Percentage, 0.01)
}

func TestNPSResultsEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pollID, _ := app.createPoll(t, pollFixture{Type: "nps"})

	for i, rating := range []int{9, 10, 8, 7, 6, 5, 9, 10, 8, 3} {
		resp := app.submitVote(t, pollID, map[string]interface{}{
			"fingerprint": fmt.Sprintf("voter-%d", i),
			"rating":      rating,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	results := app.fetchResults(t, pollID)
	assert.Equal(t, 10, results.TotalVotes)
	require.NotNil(t, results.NPS)
	assert.Equal(t, 4, results.NPS.Promoters)
	assert.Equal(t, 3, results.NPS.Passives)
	assert.Equal(t, 3, results.NPS.Detractors)
	assert.Equal(t, 10, results.NPS.Score)
}

func TestRankedResultsThroughStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pollID, optionIDs := app.createPoll(t, pollFixture{
		Type:    "ranked",
		Options: []string{"First", "Second", "Third"},
	})

	// voter-1: C > A > B, voter-2: A > C > B under the default 3/2/1 weights.
	resp := app.submitVote(t, pollID, map[string]interface{}{
		"fingerprint": "voter-1",
		"rankings": map[string]uuid.UUID{
			"1": optionIDs[2], "2": optionIDs[0], "3": optionIDs[1],
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.submitVote(t, pollID, map[string]interface{}{
		"fingerprint": "voter-2",
		"rankings": map[string]uuid.UUID{
			"1": optionIDs[0], "2": optionIDs[2], "3": optionIDs[1],
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	results := app.fetchResults(t, pollID)
	assert.Equal(t, 2, results.TotalVotes)
	require.Len(t, results.Ranked, 3)

	points := make(map[uuid.UUID]int, len(results.Ranked))
	for _, entry := range results.Ranked {
		points[entry.Option.ID] = entry.Points
	}
	assert.Equal(t, 5, points[optionIDs[0]])
	assert.Equal(t, 2, points[optionIDs[1]])
	assert.Equal(t, 5, points[optionIDs[2]])

	assert.Equal(t, 5, results.Ranked[0].Points)
	assert.Equal(t, 2, results.Ranked[2].Points)
}
