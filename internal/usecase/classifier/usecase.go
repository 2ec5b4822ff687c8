package classifier

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/pkg/utils"
	"go.uber.org/zap"
)

const (
	MatchmakingSearchURI    = "/lol-matchmaking/v1/search"
	TeamBuilderMatchmakeURI = "/lol-lobby-team-builder/v1/matchmaking"
	GameFlowSessionURI      = "/lol-gameflow/v1/session"
	LobbyURI                = "/lol-lobby/v2/lobby"
	FriendsPath             = "/lol-chat/v1/friends"
)

// frame element holding the routed resource
const envelopeIndex = 2

type envelope struct {
	Data      jsoniter.RawMessage `json:"data"`
	EventType jsoniter.RawMessage `json:"eventType"`
	URI       *string             `json:"uri"`
}

type rule struct {
	kind   domain.EventKind
	match  func(uri string) bool
	decode func(raw jsoniter.RawMessage) (domain.Payload, error)
}

func exactly(uris ...string) func(string) bool {
	return func(uri string) bool {
		for _, v := range uris {
			if uri == v {
				return true
			}
		}
		return false
	}
}

func containing(part string) func(string) bool {
	return func(uri string) bool {
		return strings.Contains(uri, part)
	}
}

func decodeAs[T any, P interface {
	*T
	domain.Payload
}](raw jsoniter.RawMessage) (domain.Payload, error) {
	v, err := utils.DecodeRaw[T](raw)
	if err != nil {
		return nil, err
	}
	return P(v), nil
}

// Rules are evaluated top to bottom. The friends rule is a substring match
// and must stay below the exact ones.
var rules = []rule{
	{
		kind:   domain.KindQueueStatus,
		match:  exactly(MatchmakingSearchURI, TeamBuilderMatchmakeURI),
		decode: decodeAs[domain.QueueStatus],
	},
	{
		kind:   domain.KindGameFlow,
		match:  exactly(GameFlowSessionURI),
		decode: decodeAs[domain.GameFlow],
	},
	{
		kind:   domain.KindLobbyRoster,
		match:  exactly(LobbyURI),
		decode: decodeAs[domain.LobbyRoster],
	},
	{
		kind:   domain.KindFriendPresence,
		match:  containing(FriendsPath),
		decode: decodeAs[domain.FriendPresence],
	},
}

type useCase struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) useCase {
	return useCase{
		logger: logger,
	}
}

// Classify turns one raw text frame into a typed event. The second result is
// false when the frame is discarded: malformed JSON, no routing key or a key
// nobody listens to.
func (u useCase) Classify(frame []byte) (domain.Event, bool) {
	var parts []jsoniter.RawMessage
	if err := jsoniter.Unmarshal(frame, &parts); err != nil {
		u.logger.Debug("discard malformed frame", zap.Error(err))
		return domain.Event{}, false
	}
	if len(parts) <= envelopeIndex {
		return domain.Event{}, false
	}
	var env envelope
	if err := jsoniter.Unmarshal(parts[envelopeIndex], &env); err != nil {
		u.logger.Debug("discard malformed envelope", zap.Error(err))
		return domain.Event{}, false
	}
	if env.URI == nil {
		return domain.Event{}, false
	}
	uri := *env.URI
	var eventType domain.EventType
	if err := jsoniter.Unmarshal(env.EventType, &eventType); err != nil {
		eventType = ""
	}
	for _, r := range rules {
		if !r.match(uri) {
			continue
		}
		event := domain.Event{
			Kind: r.kind,
			Type: eventType,
			URI:  uri,
		}
		payload, err := r.decode(env.Data)
		if err != nil {
			u.logger.Warn("forward event without payload",
				zap.String("uri", uri), zap.Stringer("kind", r.kind), zap.Error(err))
			return event, true
		}
		event.Payload = payload
		return event, true
	}
	return domain.Event{}, false
}
