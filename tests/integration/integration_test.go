package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SearchRequest struct {
	Q          string            `json:"q"`
	Paragraphs map[string]string `json:"paragraphs"`
}

type Member struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phoneNumber"`
	DateProgramEnd float64 `json:"dateProgramEnd"`
	InCharge       bool    `json:"inCharge"`
}

type EntryResponse struct {
	TeamName          string   `json:"teamName"`
	TeamMembers       []Member `json:"teamMembers"`
	MatchedParagraphs []int    `json:"matchedParagraphs"`
}

// TestE2E_PostgresRoster проверяет полный сценарий с составом команды из PostgreSQL
func TestE2E_PostgresRoster(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	env.WaitForHealthCheck(t)

	t.Run("Roster loaded in position order", func(t *testing.T) {
		team := env.App.Team()
		require.Len(t, team.Members, 2)
		assert.Equal(t, "Luis", team.Members[0].FirstName)
		assert.Equal(t, "Samuel", team.Members[1].FirstName)
	})

	t.Run("Search paragraphs", func(t *testing.T) {
		body, _ := json.Marshal(SearchRequest{
			Q: "Coveo",
			Paragraphs: map[string]string{
				"0": "Coveo Blitz is a programming competition",
				"1": "Teams of students compete",
				"2": "Registration at COVEO.com",
			},
		})

		resp := env.MakeRequest(t, http.MethodPost, "/CoveoBlitz", bytes.NewReader(body))
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entry EntryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))

		assert.Equal(t, testTeamName, entry.TeamName)
		assert.ElementsMatch(t, []int{0, 2}, entry.MatchedParagraphs)
		require.Len(t, entry.TeamMembers, 2)
		assert.True(t, entry.TeamMembers[0].InCharge)
		assert.Equal(t, float64(1556582400), entry.TeamMembers[0].DateProgramEnd)
		assert.Equal(t, "581-555-0110 x204", entry.TeamMembers[1].PhoneNumber)
	})

	t.Run("Missing q returns 400", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/CoveoBlitz",
			bytes.NewReader([]byte(`{"paragraphs":{"0":"x"}}`)))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Concurrent requests do not share matches", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(even bool) {
				defer wg.Done()

				q := "odd"
				want := []int{1}
				if even {
					q = "even"
					want = []int{2}
				}
				body, _ := json.Marshal(SearchRequest{
					Q:          q,
					Paragraphs: map[string]string{"1": "odd", "2": "even"},
				})

				resp := env.MakeRequest(t, http.MethodPost, "/CoveoBlitz", bytes.NewReader(body))
				defer resp.Body.Close()

				var entry EntryResponse
				if assert.NoError(t, json.NewDecoder(resp.Body).Decode(&entry)) {
					assert.Equal(t, want, entry.MatchedParagraphs)
				}
			}(i%2 == 0)
		}
		wg.Wait()
	})

	t.Run("Metrics exposed", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/metrics", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(data), `route="/CoveoBlitz"`)
	})
}
