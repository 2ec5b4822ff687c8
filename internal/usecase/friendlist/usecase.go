package friendlist

import (
	"context"
	"sort"
	"strings"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	repo     domain.FriendRepository
	settings *domain.FriendlistSettings
	friends  []domain.FriendEntry
	logger   *zap.Logger
}

func New(repo domain.FriendRepository, settings *domain.FriendlistSettings, logger *zap.Logger) *useCase {
	if settings.Sorting == "" {
		settings.Sorting = domain.SortByStatus
	}
	return &useCase{
		repo:     repo,
		settings: settings,
		logger:   logger,
	}
}

// Update upserts one friend by id and keeps the list sorted.
func (u *useCase) Update(presence domain.FriendPresence) {
	entry := domain.NewFriendEntry(presence)
	for i, f := range u.friends {
		if f.ID == entry.ID {
			u.friends = append(u.friends[:i], u.friends[i+1:]...)
			break
		}
	}
	u.friends = append(u.friends, entry)
	u.sort()
}

// Reload replaces the list with the one held by the remote service.
func (u *useCase) Reload(ctx context.Context) error {
	presences, err := u.repo.Friends(ctx)
	if err != nil {
		return errors.WithMessage(err, "fetch friends")
	}
	friends := make([]domain.FriendEntry, 0, len(presences))
	for _, p := range presences {
		friends = append(friends, domain.NewFriendEntry(p))
	}
	u.friends = friends
	u.sort()
	u.logger.Info("friend list reloaded", zap.Int("count", len(friends)))
	return nil
}

func (u *useCase) Entries() []domain.FriendEntry {
	out := make([]domain.FriendEntry, len(u.friends))
	copy(out, u.friends)
	return out
}

func (u *useCase) SetSorting(sorting domain.Sorting, search string) {
	u.settings.Sorting = sorting
	u.settings.Search = search
	u.sort()
}

func (u *useCase) sort() {
	switch u.settings.Sorting {
	case domain.SortByName:
		sort.SliceStable(u.friends, func(i, j int) bool {
			return strings.ToLower(u.friends[i].Name) < strings.ToLower(u.friends[j].Name)
		})
	case domain.SortByNameReverse:
		sort.SliceStable(u.friends, func(i, j int) bool {
			return strings.ToLower(u.friends[i].Name) > strings.ToLower(u.friends[j].Name)
		})
	case domain.SortBySearch:
		term := strings.ToLower(u.settings.Search)
		sort.SliceStable(u.friends, func(i, j int) bool {
			mi := strings.Contains(strings.ToLower(u.friends[i].Name), term)
			mj := strings.Contains(strings.ToLower(u.friends[j].Name), term)
			if mi != mj {
				return mi
			}
			return u.friends[i].Status < u.friends[j].Status
		})
	default:
		sort.SliceStable(u.friends, func(i, j int) bool {
			return u.friends[i].Status < u.friends[j].Status
		})
	}
}
