package domain

import (
	"github.com/pkg/errors"
)

var ErrUnknownPhase = errors.New("unknown game flow phase")

// EventType tells how the payload of an event should be applied.
type EventType string

const (
	Create = EventType("Create")
	Update = EventType("Update")
	Delete = EventType("Delete")
)

type EventKind byte

const (
	KindNone = EventKind(iota)
	KindQueueStatus
	KindLobbyRoster
	KindGameFlow
	KindFriendPresence
)

func (k EventKind) String() string {
	switch k {
	case KindQueueStatus:
		return "queue_status"
	case KindLobbyRoster:
		return "lobby_roster"
	case KindGameFlow:
		return "game_flow"
	case KindFriendPresence:
		return "friend_presence"
	default:
		return "none"
	}
}

// Payload is implemented by every typed body an Event may carry.
type Payload interface {
	kind() EventKind
}

// Event is a classified notification derived from a stream frame.
// Payload is nil when the routing key was recognised but the body
// could not be decoded.
type Event struct {
	Kind    EventKind
	Type    EventType
	URI     string
	Payload Payload
}

type QueueStatus struct {
	TimeInQueue        *float64 `json:"timeInQueue"`
	EstimatedQueueTime *float64 `json:"estimatedQueueTime"`
}

func (QueueStatus) kind() EventKind { return KindQueueStatus }

type LobbyRoster struct {
	Members []LobbyMemberData `json:"members"`
}

func (LobbyRoster) kind() EventKind { return KindLobbyRoster }

type LobbyMemberData struct {
	Puuid                    *string   `json:"puuid"`
	SummonerName             *string   `json:"summonerName"`
	SummonerID               int64     `json:"summonerId"`
	AutoFillEligible         *bool     `json:"autoFillEligible"`
	IsLeader                 *bool     `json:"isLeader"`
	FirstPositionPreference  *Position `json:"firstPositionPreference"`
	SecondPositionPreference *Position `json:"secondPositionPreference"`
}

type GameFlow struct {
	Phase *GameFlowPhase `json:"phase"`
}

func (GameFlow) kind() EventKind { return KindGameFlow }

type FriendPresence struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	GameName     string    `json:"gameName"`
	Icon         int       `json:"icon"`
	Availability *string   `json:"availability"`
	SummonerID   int64     `json:"summonerId"`
	Lol          FriendLol `json:"lol"`
}

func (FriendPresence) kind() EventKind { return KindFriendPresence }

type FriendLol struct {
	RankedLeagueTier     *string `json:"rankedLeagueTier"`
	RankedLeagueDivision *string `json:"rankedLeagueDivision"`
}

// GameFlowPhase is the phase reported by the remote game-flow session.
type GameFlowPhase string

const (
	FlowNone              = GameFlowPhase("None")
	FlowLobby             = GameFlowPhase("Lobby")
	FlowMatchmaking       = GameFlowPhase("Matchmaking")
	FlowReadyCheck        = GameFlowPhase("ReadyCheck")
	FlowChampSelect       = GameFlowPhase("ChampSelect")
	FlowGameStart         = GameFlowPhase("GameStart")
	FlowInProgress        = GameFlowPhase("InProgress")
	FlowPreEndOfGame      = GameFlowPhase("PreEndOfGame")
	FlowEndOfGame         = GameFlowPhase("EndOfGame")
	FlowWaitingForStats   = GameFlowPhase("WaitingForStats")
	FlowTerminatedInError = GameFlowPhase("TerminatedInError")
)

var gameFlowPhases = map[GameFlowPhase]struct{}{
	FlowNone: {}, FlowLobby: {}, FlowMatchmaking: {}, FlowReadyCheck: {},
	FlowChampSelect: {}, FlowGameStart: {}, FlowInProgress: {},
	FlowPreEndOfGame: {}, FlowEndOfGame: {}, FlowWaitingForStats: {},
	FlowTerminatedInError: {},
}

func (p *GameFlowPhase) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.WithMessagef(ErrUnknownPhase, "phase %s", data)
	}
	v := GameFlowPhase(data[1 : len(data)-1])
	if _, ok := gameFlowPhases[v]; !ok {
		return errors.WithMessagef(ErrUnknownPhase, "phase %q", string(v))
	}
	*p = v
	return nil
}
