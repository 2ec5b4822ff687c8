package domain

import (
	"context"
	"time"
)

// Phase is the discrete lifecycle state of a matchmaking session.
type Phase byte

const (
	PhaseNone = Phase(iota)
	PhaseLobby
	PhaseSearching
	PhaseFound
	PhaseChampSelect
	PhaseInGame
	PhaseAfterGameLobby
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseSearching:
		return "searching"
	case PhaseFound:
		return "found"
	case PhaseChampSelect:
		return "champ_select"
	case PhaseInGame:
		return "in_game"
	case PhaseAfterGameLobby:
		return "after_game_lobby"
	case PhaseError:
		return "error"
	default:
		return "none"
	}
}

type Position string

const (
	Unselected = Position("UNSELECTED")
	Top        = Position("TOP")
	Jungle     = Position("JUNGLE")
	Middle     = Position("MIDDLE")
	Bottom     = Position("BOTTOM")
	Utility    = Position("UTILITY")
	Fill       = Position("FILL")
)

type PositionPreference struct {
	First  *Position `json:"firstPreference"`
	Second *Position `json:"secondPreference"`
}

type QueueID int

const (
	QueueDraft = QueueID(400)
	QueueSolo  = QueueID(420)
	QueueBlind = QueueID(430)
	QueueFlex  = QueueID(440)
	QueueAram  = QueueID(450)
	QueueClash = QueueID(700)
)

type RankedQueue struct {
	Tier         string `json:"tier"`
	Division     string `json:"division"`
	Wins         int64  `json:"wins"`
	Losses       int64  `json:"losses"`
	LeaguePoints int64  `json:"leaguePoints"`
}

// RankedStatus is the resolved ranked-statistics record of one summoner.
type RankedStatus struct {
	SoloQueue RankedQueue
}

type RosterMember struct {
	Name         string
	Puuid        string
	SummonerID   int64
	Autofillable bool
	Leader       bool
	Positions    PositionPreference
	Ranked       RankedQueue
}

func NewRosterMember(m LobbyMemberData, ranked RankedStatus) RosterMember {
	member := RosterMember{
		SummonerID: m.SummonerID,
		Positions: PositionPreference{
			First:  m.FirstPositionPreference,
			Second: m.SecondPositionPreference,
		},
		Ranked: ranked.SoloQueue,
	}
	if m.Puuid != nil {
		member.Puuid = *m.Puuid
	}
	if m.SummonerName != nil {
		member.Name = *m.SummonerName
	}
	if m.AutoFillEligible != nil {
		member.Autofillable = *m.AutoFillEligible
	}
	if m.IsLeader != nil {
		member.Leader = *m.IsLeader
	}
	return member
}

// Session is the state the dispatch loop folds events into and the
// paint step reads from.
type Session struct {
	Phase              Phase
	QueueID            *QueueID
	QueueTimer         *float64
	EstimatedQueueTime *float64
	Positions          PositionPreference
	Members            []RosterMember
}

type Notification struct {
	ID      string
	Message string
	At      time.Time
}

type GameSettings struct {
	AutoAccept bool `mapstructure:"auto_accept" yaml:"auto_accept"`
}

type SessionUseCase interface {
	ApplyQueueStatus(eventType EventType, status *QueueStatus)
	ApplyRoster(ctx context.Context, roster *LobbyRoster)
	ApplyGameFlow(ctx context.Context, flow *GameFlow)
	State() Session
}
