package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_LoadMissingFile(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "absent.yml")).Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestRepository_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	content := `
game:
  auto_accept: "true"
friends:
  sorting: name_reverse
  search: ab
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := New(path).Load()
	require.NoError(t, err)
	assert.True(t, s.Game.AutoAccept)
	assert.Equal(t, domain.SortByNameReverse, s.Friends.Sorting)
	assert.Equal(t, "ab", s.Friends.Search)
}

func TestRepository_LoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  auto_accept: true\n"), 0o600))

	s, err := New(path).Load()
	require.NoError(t, err)
	assert.True(t, s.Game.AutoAccept)
	assert.Equal(t, domain.SortByStatus, s.Friends.Sorting)
}

func TestRepository_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("game: [1, 2"), 0o600))

	_, err := New(path).Load()
	assert.Error(t, err)
}

func TestRepository_SaveThenLoad(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "settings.yml"))
	want := Settings{
		Game:    domain.GameSettings{AutoAccept: true},
		Friends: domain.FriendlistSettings{Sorting: domain.SortBySearch, Search: "mid"},
	}
	require.NoError(t, repo.Save(want))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
