package dispatcher

import (
	"context"
	"fmt"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/internal/registry"
	"go.uber.org/zap"
)

type useCase struct {
	inbound  <-chan domain.ControlMessage
	outbound chan<- domain.ControlMessage
	registry *registry.Registry
	session  domain.SessionUseCase
	friends  domain.FriendlistUseCase
	repaint  domain.Repainter
	primary  domain.ConnID
	inflight map[domain.ConnID]bool
	logger   *zap.Logger
}

// New builds the dispatch loop. primary is the connection a bare Ready
// re-arms. Drain must only be called from the paint loop.
func New(inbound <-chan domain.ControlMessage, outbound chan<- domain.ControlMessage, reg *registry.Registry,
	session domain.SessionUseCase, friends domain.FriendlistUseCase, repaint domain.Repainter,
	primary domain.ConnID, logger *zap.Logger) *useCase {
	return &useCase{
		inbound:  inbound,
		outbound: outbound,
		registry: reg,
		session:  session,
		friends:  friends,
		repaint:  repaint,
		primary:  primary,
		inflight: make(map[domain.ConnID]bool),
		logger:   logger,
	}
}

func (u *useCase) Connect(id domain.ConnID) {
	u.outbound <- domain.CreateConnection{ID: id}
}

func (u *useCase) Disconnect(id domain.ConnID) {
	u.outbound <- domain.DeleteConnection{ID: id}
}

// Drain handles the control messages that are already waiting and returns
// without blocking once there are none.
func (u *useCase) Drain(ctx context.Context) int {
	handled := 0
	for {
		select {
		case msg, ok := <-u.inbound:
			if !ok {
				return handled
			}
			u.handle(ctx, msg)
			handled++
		default:
			return handled
		}
	}
}

func (u *useCase) handle(ctx context.Context, msg domain.ControlMessage) {
	switch m := msg.(type) {
	case domain.Ready:
		u.arm(u.primary)
	case domain.ConnectionCreated:
		u.logger.Info("socket created", zap.Int("id", int(m.ID)))
		u.inflight[m.ID] = false
		u.arm(m.ID)
	case domain.DomainEvent:
		u.inflight[m.ID] = false
		u.apply(ctx, m.Event)
		u.repaint.RequestRepaint()
		u.arm(m.ID)
	case domain.DomainEventEmpty:
		u.inflight[m.ID] = false
		u.arm(m.ID)
	default:
		u.logger.Warn("unexpected control message for dispatcher", zap.Any("msg", msg))
	}
}

// arm keeps a single read outstanding per registered connection.
func (u *useCase) arm(id domain.ConnID) {
	if u.inflight[id] || !u.registry.Contains(id) {
		return
	}
	u.inflight[id] = true
	u.outbound <- domain.ReadNext{ID: id}
}

func (u *useCase) apply(ctx context.Context, event domain.Event) {
	switch event.Kind {
	case domain.KindQueueStatus:
		status, _ := event.Payload.(*domain.QueueStatus)
		u.session.ApplyQueueStatus(event.Type, status)
	case domain.KindLobbyRoster:
		if roster, ok := event.Payload.(*domain.LobbyRoster); ok && roster != nil {
			u.session.ApplyRoster(ctx, roster)
		}
	case domain.KindGameFlow:
		if flow, ok := event.Payload.(*domain.GameFlow); ok && flow != nil {
			u.session.ApplyGameFlow(ctx, flow)
		}
	case domain.KindFriendPresence:
		if presence, ok := event.Payload.(*domain.FriendPresence); ok && presence != nil {
			u.friends.Update(*presence)
		}
	default:
		panic(fmt.Sprintf("unclassified event reached the dispatcher: %+v", event))
	}
}
