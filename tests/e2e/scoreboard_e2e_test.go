//go:build e2e
// +build e2e

package e2e

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpleworks/workshop/internal/color"
	"github.com/purpleworks/workshop/internal/scoreboard"
	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

type createdTeam struct {
	Team teamModel.TeamResponse `json:"team"`
}

func (s *E2ETestSuite) addTeam(body string) teamModel.TeamResponse {
	status, resp := s.doRequest(http.MethodPost, "/teams", body)
	require.Equal(s.T(), http.StatusCreated, status, string(resp))
	var created createdTeam
	s.decode(resp, &created)
	return created.Team
}

func (s *E2ETestSuite) listTeams() []teamModel.TeamResponse {
	status, resp := s.doRequest(http.MethodGet, "/teams", "")
	require.Equal(s.T(), http.StatusOK, status)
	var list teamModel.TeamsResponse
	s.decode(resp, &list)
	return list.Teams
}

func (s *E2ETestSuite) TestHealth() {
	status, body := s.doRequest(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"status":"ok","checks":{"store":"ok"}}`, string(body))
}

func (s *E2ETestSuite) TestTeamLifecycle() {
	owls := s.addTeam(`{"name":"Owls","swatch":2}`)
	s.Equal("Owls", owls.Name)
	s.Equal(color.Palette[2].Hex(), owls.ColorHex)
	s.Equal(0, owls.Score)

	status, body := s.doRequest(http.MethodPost, "/teams", `{"name":"   "}`)
	s.Equal(http.StatusBadRequest, status)
	s.Contains(string(body), "NAME_REQUIRED")

	second := s.addTeam(`{"name":"Badgers"}`)

	for i := 0; i < 3; i++ {
		status, _ := s.doRequest(http.MethodPost, "/teams/"+owls.ID+"/increment", "")
		s.Require().Equal(http.StatusOK, status)
	}
	status, _ = s.doRequest(http.MethodPost, "/teams/"+owls.ID+"/decrement", "")
	s.Require().Equal(http.StatusOK, status)

	status, body = s.doRequest(http.MethodPatch, "/teams/"+owls.ID, `{"name":"Night Owls","color":"#00FF00"}`)
	s.Require().Equal(http.StatusOK, status, string(body))

	teams := s.listTeams()
	s.Require().Len(teams, 2)
	s.Equal("Night Owls", teams[0].Name)
	s.Equal(2, teams[0].Score)
	s.Equal("Badgers", teams[1].Name)

	status, _ = s.doRequest(http.MethodDelete, "/teams/"+second.ID, "")
	s.Equal(http.StatusNoContent, status)
	s.Len(s.listTeams(), 1)

	status, _ = s.doRequest(http.MethodDelete, "/teams/"+second.ID, "")
	s.Equal(http.StatusNotFound, status)
}

func (s *E2ETestSuite) TestDecrementNeverGoesBelowZero() {
	team := s.addTeam(`{"name":"Foxes"}`)

	for i := 0; i < 3; i++ {
		status, _ := s.doRequest(http.MethodPost, "/teams/"+team.ID+"/decrement", "")
		s.Require().Equal(http.StatusOK, status)
	}

	teams := s.listTeams()
	s.Require().Len(teams, 1)
	s.Equal(0, teams[0].Score)
}

func (s *E2ETestSuite) TestConcurrentIncrements() {
	team := s.addTeam(`{"name":"Hares"}`)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodPost, s.server.URL+"/teams/"+team.ID+"/increment", nil)
			if err != nil {
				return
			}
			resp, err := s.httpClient.Do(req)
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	teams := s.listTeams()
	s.Require().Len(teams, 1)
	s.Equal(workers, teams[0].Score)
}

func (s *E2ETestSuite) TestResetAllAndBulkDelete() {
	a := s.addTeam(`{"name":"A"}`)
	b := s.addTeam(`{"name":"B"}`)
	c := s.addTeam(`{"name":"C"}`)
	for _, id := range []string{a.ID, b.ID, b.ID} {
		status, _ := s.doRequest(http.MethodPost, "/teams/"+id+"/increment", "")
		s.Require().Equal(http.StatusOK, status)
	}

	status, _ := s.doRequest(http.MethodPost, "/teams/reset", "")
	s.Require().Equal(http.StatusNoContent, status)
	for _, team := range s.listTeams() {
		s.Equal(0, team.Score, team.Name)
	}

	status, body := s.doRequest(http.MethodPost, "/teams/delete", fmt.Sprintf(`{"ids":[%q,%q,"missing"]}`, a.ID, c.ID))
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`{"deleted":2}`, string(body))

	teams := s.listTeams()
	s.Require().Len(teams, 1)
	s.Equal("B", teams[0].Name)
}

func (s *E2ETestSuite) TestImportReplacesStore() {
	s.addTeam(`{"name":"Old"}`)

	status, _ := s.doRequest(http.MethodPost, "/teams/import", `{"teams":[["ana","bo"],["cy","di"]]}`)
	s.Require().Equal(http.StatusNoContent, status)

	teams := s.listTeams()
	s.Require().Len(teams, 2)
	s.Equal("Team 1", teams[0].Name)
	s.Equal(color.Palette[0].Hex(), teams[0].ColorHex)
	s.Equal("Team 2", teams[1].Name)
	s.Equal(color.Palette[1].Hex(), teams[1].ColorHex)

	// Malformed payloads are dropped without touching the store.
	status, _ = s.doRequest(http.MethodPost, "/teams/import", `{"teams":"ana"}`)
	s.Equal(http.StatusNoContent, status)
	s.Len(s.listTeams(), 2)
}

func (s *E2ETestSuite) TestScoreboardSnapshotAndChanges() {
	changes, unsubscribe := s.feed.Subscribe()
	defer unsubscribe()

	status, body := s.doRequest(http.MethodGet, "/scoreboard", "")
	s.Require().Equal(http.StatusOK, status)
	var empty scoreboard.Snapshot
	s.decode(body, &empty)
	s.True(empty.Empty)
	s.Equal(scoreboard.EmptyTitle, empty.EmptyTitle)

	team := s.addTeam(`{"name":"Otters"}`)
	select {
	case change := <-changes:
		s.Equal(team.ID, change.TeamID)
	default:
		s.Fail("no change published for add")
	}

	status, body = s.doRequest(http.MethodGet, "/scoreboard", "")
	s.Require().Equal(http.StatusOK, status)
	var snap scoreboard.Snapshot
	s.decode(body, &snap)
	s.False(snap.Empty)
	s.Require().Len(snap.Teams, 1)
	assert.Equal(s.T(), "Otters", snap.Teams[0].Name)
}
