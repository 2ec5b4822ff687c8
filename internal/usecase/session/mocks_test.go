package session

import (
	"context"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRankedRepository struct {
	mock.Mock
}

func (m *MockRankedRepository) RankedStats(ctx context.Context, puuid string) (domain.RankedStatus, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).(domain.RankedStatus), args.Error(1)
}

type MockActionClient struct {
	mock.Mock
}

func (m *MockActionClient) response(args mock.Arguments) (domain.Response, error) {
	return args.Get(0).(domain.Response), args.Error(1)
}

func (m *MockActionClient) JoinLobby(ctx context.Context, queue domain.QueueID) (domain.Response, error) {
	return m.response(m.Called(ctx, queue))
}

func (m *MockActionClient) LeaveLobby(ctx context.Context) (domain.Response, error) {
	return m.response(m.Called(ctx))
}

func (m *MockActionClient) StartQueue(ctx context.Context) (domain.Response, error) {
	return m.response(m.Called(ctx))
}

func (m *MockActionClient) StopQueue(ctx context.Context) (domain.Response, error) {
	return m.response(m.Called(ctx))
}

func (m *MockActionClient) AcceptMatch(ctx context.Context) (domain.Response, error) {
	return m.response(m.Called(ctx))
}

func (m *MockActionClient) DeclineMatch(ctx context.Context) (domain.Response, error) {
	return m.response(m.Called(ctx))
}

func (m *MockActionClient) KickMember(ctx context.Context, summonerID int64) (domain.Response, error) {
	return m.response(m.Called(ctx, summonerID))
}

func (m *MockActionClient) InviteMember(ctx context.Context, summonerID int64) (domain.Response, error) {
	return m.response(m.Called(ctx, summonerID))
}

func (m *MockActionClient) SetRolePreferences(ctx context.Context, prefs domain.PositionPreference) (domain.Response, error) {
	return m.response(m.Called(ctx, prefs))
}

func (m *MockActionClient) DodgeLobby(ctx context.Context) (domain.Response, error) {
	return m.response(m.Called(ctx))
}
