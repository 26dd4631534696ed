//go:build e2e
// +build e2e

package repository

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/database/docstore"
	teamModel "github.com/purpleworks/workshop/internal/team/model"
	"github.com/purpleworks/workshop/pkg/retry"
)

// MongoRepositorySuite runs the repository cases against a single-node MongoDB replica set.
type MongoRepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	store     *docstore.Store
	repo      Repository
}

func TestMongoRepository(t *testing.T) {
	suite.Run(t, new(MongoRepositorySuite))
}

func (s *MongoRepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err, "failed to start MongoDB container")
	s.container = container

	code, out, err := container.Exec(s.ctx, []string{
		"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})",
	})
	require.NoError(s.T(), err)
	if code != 0 {
		msg, _ := io.ReadAll(out)
		s.T().Fatalf("rs.initiate exited with %d: %s", code, msg)
	}

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "27017")
	require.NoError(s.T(), err)

	// The primary is elected shortly after initiate; Connect retries until it answers.
	store, err := docstore.Connect(s.ctx, docstore.Options{
		URI:            fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port()),
		Database:       "workshop_test",
		Collection:     "teams",
		ConnectTimeout: 5 * time.Second,
	}, retry.Config{
		MaxAttempts:  20,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   1.5,
	}, zap.NewNop().Sugar())
	require.NoError(s.T(), err, "failed to connect to MongoDB")
	s.store = store
	s.repo = NewMongo(store.Client, store.Collection, zap.NewNop().Sugar())
}

func (s *MongoRepositorySuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Disconnect(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *MongoRepositorySuite) SetupTest() {
	require.NoError(s.T(), s.store.Collection.Drop(s.ctx))
	require.NoError(s.T(), EnsureIndexes(s.ctx, s.store.Collection))
}

func (s *MongoRepositorySuite) seed(id, name string, score int, offset time.Duration) {
	err := s.repo.Create(s.ctx, &teamModel.Team{
		ID:        id,
		Name:      name,
		ColorHex:  "#FF3B30",
		Score:     score,
		CreatedAt: baseTime.Add(offset),
	})
	s.Require().NoError(err)
}

func (s *MongoRepositorySuite) TestCreateAssignsID() {
	team := &teamModel.Team{Name: "Falcons", ColorHex: "#34C759", CreatedAt: baseTime}

	s.Require().NoError(s.repo.Create(s.ctx, team))
	s.NotEmpty(team.ID)

	got, err := s.repo.GetByID(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Equal("Falcons", got.Name)
	s.Equal("#34C759", got.ColorHex)
}

func (s *MongoRepositorySuite) TestGetByIDNotFound() {
	_, err := s.repo.GetByID(s.ctx, "missing")

	s.ErrorIs(err, teamModel.ErrTeamNotFound)
}

func (s *MongoRepositorySuite) TestListOrderedByCreation() {
	teams, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(teams)
	s.Empty(teams)

	s.seed("c", "Third", 0, 2*time.Second)
	s.seed("a", "First", 0, 0)
	s.seed("b", "Second", 0, time.Second)

	teams, err = s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 3)
	s.Equal([]string{"First", "Second", "Third"}, []string{teams[0].Name, teams[1].Name, teams[2].Name})

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}

func (s *MongoRepositorySuite) TestScores() {
	s.seed("t1", "Owls", 1, 0)
	s.seed("t2", "Bees", 4, time.Second)

	team, err := s.repo.Increment(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(2, team.Score)

	team, err = s.repo.Decrement(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(1, team.Score)
	team, err = s.repo.Decrement(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(0, team.Score)

	team, err = s.repo.Decrement(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(0, team.Score)

	team, err = s.repo.ResetScore(s.ctx, "t2")
	s.Require().NoError(err)
	s.Equal(0, team.Score)

	_, err = s.repo.Increment(s.ctx, "t2")
	s.Require().NoError(err)
	affected, err := s.repo.ResetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), affected)

	teams, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	for _, t := range teams {
		s.Equal(0, t.Score)
	}
}

func (s *MongoRepositorySuite) TestUnknownTeam() {
	_, err := s.repo.Increment(s.ctx, "missing")
	s.ErrorIs(err, teamModel.ErrTeamNotFound)
	_, err = s.repo.Decrement(s.ctx, "missing")
	s.ErrorIs(err, teamModel.ErrTeamNotFound)
	_, err = s.repo.ResetScore(s.ctx, "missing")
	s.ErrorIs(err, teamModel.ErrTeamNotFound)
	_, err = s.repo.Update(s.ctx, "missing", "X", "#000000")
	s.ErrorIs(err, teamModel.ErrTeamNotFound)
	s.ErrorIs(s.repo.Delete(s.ctx, "missing"), teamModel.ErrTeamNotFound)
}

func (s *MongoRepositorySuite) TestUpdate() {
	s.seed("t1", "Owls", 3, 0)

	team, err := s.repo.Update(s.ctx, "t1", "Hawks", "#007AFF")

	s.Require().NoError(err)
	s.Equal("Hawks", team.Name)
	s.Equal("#007AFF", team.ColorHex)
	s.Equal(3, team.Score)
}

func (s *MongoRepositorySuite) TestDelete() {
	s.seed("t1", "A", 0, 0)
	s.seed("t2", "B", 0, time.Second)
	s.seed("t3", "C", 0, 2*time.Second)

	s.Require().NoError(s.repo.Delete(s.ctx, "t1"))

	deleted, err := s.repo.DeleteMany(s.ctx, []string{"t2", "missing"})
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	deleted, err = s.repo.DeleteMany(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(0), deleted)

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *MongoRepositorySuite) TestReplaceAll() {
	s.seed("old1", "Old 1", 7, 0)
	s.seed("old2", "Old 2", 3, time.Second)

	err := s.repo.ReplaceAll(s.ctx, []teamModel.Team{
		{Name: "Team 1", ColorHex: "#FF3B30", CreatedAt: baseTime.Add(time.Hour)},
		{Name: "Team 2", ColorHex: "#FF9500", CreatedAt: baseTime.Add(time.Hour + time.Millisecond)},
	})

	s.Require().NoError(err)
	teams, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal("Team 1", teams[0].Name)
	s.Equal("Team 2", teams[1].Name)
	for _, team := range teams {
		s.NotContains([]string{"old1", "old2"}, team.ID)
		s.Equal(0, team.Score)
	}

	s.Require().NoError(s.repo.ReplaceAll(s.ctx, nil))
	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

func (s *MongoRepositorySuite) TestReplaceAllRollsBackOnFailedInsert() {
	s.seed("old1", "Old 1", 7, 0)

	err := s.repo.ReplaceAll(s.ctx, []teamModel.Team{
		{ID: "dup", Name: "Team 1", ColorHex: "#FF3B30", CreatedAt: baseTime},
		{ID: "dup", Name: "Team 2", ColorHex: "#FF9500", CreatedAt: baseTime},
	})

	s.Require().Error(err)
	team, err := s.repo.GetByID(s.ctx, "old1")
	s.Require().NoError(err)
	s.Equal(7, team.Score)
}
