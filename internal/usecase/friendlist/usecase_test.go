package friendlist

import (
	"context"
	"testing"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) Friends(ctx context.Context) ([]domain.FriendPresence, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FriendPresence), args.Error(1)
}

func presence(id, name, availability string) domain.FriendPresence {
	return domain.FriendPresence{ID: id, GameName: name, Availability: &availability}
}

func ids(entries []domain.FriendEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFriendlist_UpdateReplacesExistingEntry(t *testing.T) {
	u := New(nil, &domain.FriendlistSettings{}, zap.NewNop())
	u.Update(presence("a", "Ahri", "chat"))
	u.Update(presence("b", "Braum", "away"))
	require.Len(t, u.Entries(), 2)

	u.Update(presence("a", "Ahri", "offline"))

	entries := u.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, []string{"b", "a"}, ids(entries))
	assert.Equal(t, domain.StatusOffline, entries[1].Status)
}

func TestFriendlist_SortsByStatus(t *testing.T) {
	u := New(nil, &domain.FriendlistSettings{}, zap.NewNop())
	u.Update(presence("offline", "O", "offline"))
	u.Update(presence("mobile", "M", "mobile"))
	u.Update(presence("ingame", "G", "dnd"))
	u.Update(presence("away", "A", "away"))
	u.Update(presence("idle", "I", "chat"))
	u.Update(presence("other", "X", "streaming"))

	assert.Equal(t, []string{"idle", "away", "ingame", "mobile", "offline", "other"}, ids(u.Entries()))
}

func TestFriendlist_SortingModes(t *testing.T) {
	u := New(nil, &domain.FriendlistSettings{Sorting: domain.SortByName}, zap.NewNop())
	u.Update(presence("z", "zed", "chat"))
	u.Update(presence("a", "Annie", "offline"))
	u.Update(presence("k", "Karma", "away"))
	assert.Equal(t, []string{"a", "k", "z"}, ids(u.Entries()))

	u.SetSorting(domain.SortByNameReverse, "")
	assert.Equal(t, []string{"z", "k", "a"}, ids(u.Entries()))

	u.SetSorting(domain.SortBySearch, "AN")
	assert.Equal(t, []string{"a", "z", "k"}, ids(u.Entries()))
}

func TestFriendlist_Reload(t *testing.T) {
	repo := new(MockFriendRepository)
	repo.On("Friends", mock.Anything).Return([]domain.FriendPresence{
		presence("b", "Braum", "away"),
		presence("a", "Ahri", "chat"),
	}, nil).Once()
	u := New(repo, &domain.FriendlistSettings{}, zap.NewNop())

	require.NoError(t, u.Reload(context.Background()))
	assert.Equal(t, []string{"a", "b"}, ids(u.Entries()))
	repo.AssertExpectations(t)
}

func TestFriendlist_ReloadFailureKeepsList(t *testing.T) {
	repo := new(MockFriendRepository)
	repo.On("Friends", mock.Anything).Return([]domain.FriendPresence(nil), errors.New("unavailable"))
	u := New(repo, &domain.FriendlistSettings{}, zap.NewNop())
	u.Update(presence("a", "Ahri", "chat"))

	assert.Error(t, u.Reload(context.Background()))
	assert.Equal(t, []string{"a"}, ids(u.Entries()))
}
