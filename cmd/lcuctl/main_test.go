package main

import (
	"context"
	"testing"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/internal/transport/console"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) response(args mock.Arguments) (domain.Response, error) {
	return args.Get(0).(domain.Response), args.Error(1)
}

func (m *MockAPI) JoinLobby(_ context.Context, queue domain.QueueID) (domain.Response, error) {
	return m.response(m.Called(queue))
}

func (m *MockAPI) LeaveLobby(context.Context) (domain.Response, error) {
	return m.response(m.Called())
}

func (m *MockAPI) StartQueue(context.Context) (domain.Response, error) {
	return m.response(m.Called())
}

func (m *MockAPI) StopQueue(context.Context) (domain.Response, error) {
	return m.response(m.Called())
}

func (m *MockAPI) AcceptMatch(context.Context) (domain.Response, error) {
	return m.response(m.Called())
}

func (m *MockAPI) DeclineMatch(context.Context) (domain.Response, error) {
	return m.response(m.Called())
}

func (m *MockAPI) KickMember(_ context.Context, summonerID int64) (domain.Response, error) {
	return m.response(m.Called(summonerID))
}

func (m *MockAPI) InviteMember(_ context.Context, summonerID int64) (domain.Response, error) {
	return m.response(m.Called(summonerID))
}

func (m *MockAPI) SetRolePreferences(_ context.Context, prefs domain.PositionPreference) (domain.Response, error) {
	return m.response(m.Called(prefs))
}

func (m *MockAPI) DodgeLobby(context.Context) (domain.Response, error) {
	return m.response(m.Called())
}

func (m *MockAPI) RankedStats(_ context.Context, puuid string) (domain.RankedStatus, error) {
	args := m.Called(puuid)
	return args.Get(0).(domain.RankedStatus), args.Error(1)
}

func (m *MockAPI) Friends(context.Context) ([]domain.FriendPresence, error) {
	args := m.Called()
	return args.Get(0).([]domain.FriendPresence), args.Error(1)
}

func TestRun_Actions(t *testing.T) {
	noContent := domain.Response{StatusCode: 204}
	top, mid := domain.Top, domain.Middle

	client := new(MockAPI)
	client.On("JoinLobby", domain.QueueSolo).Return(noContent, nil)
	client.On("KickMember", int64(3)).Return(noContent, nil)
	client.On("SetRolePreferences", domain.PositionPreference{First: &top, Second: &mid}).Return(noContent, nil)
	client.On("AcceptMatch").Return(noContent, nil)

	for _, args := range [][]string{{"join", "solo"}, {"kick", "3"}, {"roles", "top", "mid"}, {"accept"}} {
		out, err := run(context.Background(), client, args[0], args[1:])
		require.NoError(t, err, args)
		assert.Equal(t, map[string]int{"status": 204}, out)
	}
	client.AssertExpectations(t)
}

func TestRun_Queries(t *testing.T) {
	client := new(MockAPI)
	client.On("RankedStats", "p-1").Return(domain.RankedStatus{SoloQueue: domain.RankedQueue{Tier: "GOLD"}}, nil)
	client.On("Friends").Return([]domain.FriendPresence{{ID: "f", GameName: "Game"}}, nil)

	out, err := run(context.Background(), client, "ranked", []string{"p-1"})
	require.NoError(t, err)
	assert.Equal(t, "GOLD", out.(domain.RankedStatus).SoloQueue.Tier)

	out, err = run(context.Background(), client, "friends", nil)
	require.NoError(t, err)
	entries := out.([]domain.FriendEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, "Game", entries[0].Name)
}

func TestRun_Errors(t *testing.T) {
	failure := errors.New("remote failed")
	client := new(MockAPI)
	client.On("StartQueue").Return(domain.Response{StatusCode: 500}, failure)

	_, err := run(context.Background(), client, "start", nil)
	assert.ErrorIs(t, err, failure)
	_, err = run(context.Background(), client, "fly", nil)
	assert.ErrorIs(t, err, console.ErrUnknownCommand)
	_, err = run(context.Background(), client, "join", nil)
	assert.ErrorIs(t, err, console.ErrBadArgument)
	_, err = run(context.Background(), client, "roles", []string{"a", "b", "c"})
	assert.ErrorIs(t, err, console.ErrBadArgument)
	_, err = run(context.Background(), client, "invite", []string{"x"})
	assert.ErrorIs(t, err, console.ErrBadArgument)
	_, err = run(context.Background(), client, "roles", []string{"mid", "middle"})
	assert.ErrorIs(t, err, console.ErrBadArgument)
	client.AssertNotCalled(t, "SetRolePreferences", mock.Anything)
}
