package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/internal/registry"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/friendlist"
	"github.com/kiryu-dev/lcu-relay/internal/usecase/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type harness struct {
	in       chan domain.ControlMessage
	out      chan domain.ControlMessage
	reg      *registry.Registry
	session  domain.SessionUseCase
	friends  domain.FriendlistUseCase
	repaint  *repaintCounter
	dispatch *useCase
}

type repaintCounter struct {
	calls int
}

func (r *repaintCounter) RequestRepaint() {
	r.calls++
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		in:      make(chan domain.ControlMessage, 32),
		out:     make(chan domain.ControlMessage, 32),
		reg:     registry.New(),
		session: session.New(nil, nil, &domain.GameSettings{}, time.Second, zap.NewNop()),
		friends: friendlist.New(nil, &domain.FriendlistSettings{}, zap.NewNop()),
		repaint: &repaintCounter{},
	}
	h.reg.Register(0, make(chan domain.Event))
	h.dispatch = New(h.in, h.out, h.reg, h.session, h.friends, h.repaint, 0, zap.NewNop())
	return h
}

// pending returns everything the dispatcher has sent to the relay so far.
func (h *harness) pending() []domain.ControlMessage {
	var out []domain.ControlMessage
	for {
		select {
		case msg := <-h.out:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func (h *harness) event(kind domain.EventKind, eventType domain.EventType, payload domain.Payload) {
	h.in <- domain.DomainEvent{ID: 0, Event: domain.Event{Kind: kind, Type: eventType, Payload: payload}}
}

func ptr[T any](v T) *T {
	return &v
}

func TestDrain_NeverBlocksOnEmptyChannel(t *testing.T) {
	h := newHarness(t)
	done := make(chan int)
	go func() { done <- h.dispatch.Drain(context.Background()) }()
	select {
	case n := <-done:
		assert.Zero(t, n)
	case <-time.After(time.Second):
		t.Fatal("drain blocked")
	}
}

func TestDrain_ConnectionCreatedArmsRead(t *testing.T) {
	h := newHarness(t)
	h.in <- domain.ConnectionCreated{ID: 0}
	h.in <- domain.Ready{}

	assert.Equal(t, 2, h.dispatch.Drain(context.Background()))
	assert.Equal(t, []domain.ControlMessage{domain.ReadNext{ID: 0}}, h.pending())
}

func TestDrain_ReadyArmsPrimaryOnlyWhenIdle(t *testing.T) {
	h := newHarness(t)
	h.in <- domain.Ready{}
	h.dispatch.Drain(context.Background())
	assert.Equal(t, []domain.ControlMessage{domain.ReadNext{ID: 0}}, h.pending())

	h.in <- domain.Ready{}
	h.in <- domain.Ready{}
	h.dispatch.Drain(context.Background())
	assert.Empty(t, h.pending())
}

func TestDrain_EventRearmsSameConnectionAndRepaints(t *testing.T) {
	h := newHarness(t)
	h.in <- domain.ConnectionCreated{ID: 0}
	h.dispatch.Drain(context.Background())
	h.pending()

	h.event(domain.KindGameFlow, domain.Update, &domain.GameFlow{Phase: ptr(domain.FlowLobby)})
	h.in <- domain.Ready{}
	h.dispatch.Drain(context.Background())

	assert.Equal(t, []domain.ControlMessage{domain.ReadNext{ID: 0}}, h.pending())
	assert.Equal(t, 1, h.repaint.calls)
	assert.Equal(t, domain.PhaseLobby, h.session.State().Phase)
}

func TestDrain_EmptyEventRearmsWithoutTouchingState(t *testing.T) {
	h := newHarness(t)
	h.in <- domain.DomainEventEmpty{ID: 0}
	h.dispatch.Drain(context.Background())

	assert.Equal(t, []domain.ControlMessage{domain.ReadNext{ID: 0}}, h.pending())
	assert.Zero(t, h.repaint.calls)
	assert.Equal(t, domain.Session{Members: []domain.RosterMember{}}, h.session.State())
}

func TestDrain_UnregisteredConnectionIsNotPumped(t *testing.T) {
	h := newHarness(t)
	h.in <- domain.DomainEventEmpty{ID: 3}
	h.in <- domain.ConnectionCreated{ID: 4}
	h.dispatch.Drain(context.Background())
	assert.Empty(t, h.pending())
}

func TestDrain_QueueTimerScenario(t *testing.T) {
	h := newHarness(t)
	h.event(domain.KindQueueStatus, domain.Update, &domain.QueueStatus{TimeInQueue: ptr(12.0), EstimatedQueueTime: ptr(30.0)})
	h.dispatch.Drain(context.Background())

	state := h.session.State()
	require.NotNil(t, state.QueueTimer)
	assert.Equal(t, 12.0, *state.QueueTimer)
	assert.Equal(t, 30.0, *state.EstimatedQueueTime)

	h.event(domain.KindQueueStatus, domain.Delete, nil)
	h.dispatch.Drain(context.Background())

	state = h.session.State()
	assert.Nil(t, state.QueueTimer)
	assert.Nil(t, state.EstimatedQueueTime)
}

func TestDrain_GameFlowScenario(t *testing.T) {
	h := newHarness(t)
	h.event(domain.KindGameFlow, domain.Update, &domain.GameFlow{Phase: ptr(domain.FlowMatchmaking)})
	h.dispatch.Drain(context.Background())
	assert.Equal(t, domain.PhaseSearching, h.session.State().Phase)

	h.event(domain.KindGameFlow, domain.Update, &domain.GameFlow{Phase: ptr(domain.FlowReadyCheck)})
	h.dispatch.Drain(context.Background())
	assert.Equal(t, domain.PhaseFound, h.session.State().Phase)
}

func TestDrain_PayloadlessEventsDegradeGracefully(t *testing.T) {
	h := newHarness(t)
	h.event(domain.KindGameFlow, domain.Update, &domain.GameFlow{Phase: ptr(domain.FlowChampSelect)})
	h.event(domain.KindGameFlow, domain.Update, nil)
	h.event(domain.KindLobbyRoster, domain.Update, nil)
	h.event(domain.KindFriendPresence, domain.Update, nil)

	assert.Equal(t, 4, h.dispatch.Drain(context.Background()))
	assert.Equal(t, domain.PhaseChampSelect, h.session.State().Phase)
	assert.Empty(t, h.friends.Entries())
	assert.Equal(t, 4, h.repaint.calls)
}

func TestDrain_FriendPresenceUpserts(t *testing.T) {
	h := newHarness(t)
	h.event(domain.KindFriendPresence, domain.Create, &domain.FriendPresence{ID: "a", Availability: ptr("chat")})
	h.event(domain.KindFriendPresence, domain.Update, &domain.FriendPresence{ID: "b", Availability: ptr("away")})
	h.event(domain.KindFriendPresence, domain.Update, &domain.FriendPresence{ID: "a", Availability: ptr("dnd")})
	h.dispatch.Drain(context.Background())

	entries := h.friends.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)
	assert.Equal(t, domain.StatusInGame, entries[1].Status)
}

func TestDrain_UnclassifiedEventPanics(t *testing.T) {
	h := newHarness(t)
	h.event(domain.KindNone, domain.Update, nil)
	assert.Panics(t, func() {
		h.dispatch.Drain(context.Background())
	})
}

func TestConnectAndDisconnect(t *testing.T) {
	h := newHarness(t)
	h.dispatch.Connect(2)
	h.dispatch.Disconnect(2)
	assert.Equal(t, []domain.ControlMessage{
		domain.CreateConnection{ID: 2},
		domain.DeleteConnection{ID: 2},
	}, h.pending())
}
