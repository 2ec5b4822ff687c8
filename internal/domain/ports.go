package domain

import (
	"context"
	"net/http"
)

// Connection is one streaming connection to the remote service.
type Connection interface {
	Start(ctx context.Context) error
	// ReadFrame blocks until the next text frame arrives.
	ReadFrame() ([]byte, error)
	Close() error
}

type ConnectionFactory interface {
	NewConnection(ctx context.Context) (Connection, error)
}

type Classifier interface {
	Classify(frame []byte) (Event, bool)
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type RankedRepository interface {
	RankedStats(ctx context.Context, puuid string) (RankedStatus, error)
}

type FriendRepository interface {
	Friends(ctx context.Context) ([]FriendPresence, error)
}

type ActionClient interface {
	JoinLobby(ctx context.Context, queue QueueID) (Response, error)
	LeaveLobby(ctx context.Context) (Response, error)
	StartQueue(ctx context.Context) (Response, error)
	StopQueue(ctx context.Context) (Response, error)
	AcceptMatch(ctx context.Context) (Response, error)
	DeclineMatch(ctx context.Context) (Response, error)
	KickMember(ctx context.Context, summonerID int64) (Response, error)
	InviteMember(ctx context.Context, summonerID int64) (Response, error)
	SetRolePreferences(ctx context.Context, prefs PositionPreference) (Response, error)
	DodgeLobby(ctx context.Context) (Response, error)
}

// Repainter asks the paint loop to redraw soon. Calls may be coalesced.
type Repainter interface {
	RequestRepaint()
}
