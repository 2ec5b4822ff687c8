package domain

import (
	"context"
)

type Status byte

const (
	StatusIdle = Status(iota)
	StatusAway
	StatusInGame
	StatusMobile
	StatusOffline
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "online"
	case StatusAway:
		return "away"
	case StatusInGame:
		return "in game"
	case StatusMobile:
		return "mobile"
	case StatusOffline:
		return "offline"
	default:
		return "other"
	}
}

func NewStatus(availability *string) Status {
	if availability == nil {
		return StatusOther
	}
	switch *availability {
	case "chat":
		return StatusIdle
	case "away":
		return StatusAway
	case "dnd":
		return StatusInGame
	case "mobile":
		return StatusMobile
	case "offline":
		return StatusOffline
	default:
		return StatusOther
	}
}

type Rank struct {
	Tier     *string
	Division *string
}

type FriendEntry struct {
	ID         string
	Name       string
	RiotName   string
	Icon       int
	Status     Status
	Rank       Rank
	SummonerID int64
}

func NewFriendEntry(f FriendPresence) FriendEntry {
	return FriendEntry{
		ID:       f.ID,
		Name:     f.GameName,
		RiotName: f.Name,
		Icon:     f.Icon,
		Status:   NewStatus(f.Availability),
		Rank: Rank{
			Tier:     f.Lol.RankedLeagueTier,
			Division: f.Lol.RankedLeagueDivision,
		},
		SummonerID: f.SummonerID,
	}
}

type Sorting string

const (
	SortByStatus      = Sorting("status")
	SortByName        = Sorting("name")
	SortByNameReverse = Sorting("name_reverse")
	SortBySearch      = Sorting("search")
)

type FriendlistSettings struct {
	Sorting Sorting `mapstructure:"sorting" yaml:"sorting"`
	Search  string  `mapstructure:"search" yaml:"search"`
}

type FriendlistUseCase interface {
	Update(presence FriendPresence)
	Reload(ctx context.Context) error
	Entries() []FriendEntry
}
