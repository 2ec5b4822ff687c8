package relay

import (
	"context"
	"time"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/internal/registry"
	"github.com/kiryu-dev/lcu-relay/pkg/mailbox"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const maxReconnectBackoff = 30 * time.Second

// Policy controls what a connection reader does after its stream fails.
// Zero attempts ends the reader on the first error.
type Policy struct {
	ReconnectAttempts int
	ReconnectBackoff  time.Duration
}

type connection struct {
	cancel context.CancelFunc
	queue  <-chan domain.Event
}

type useCase struct {
	factory    domain.ConnectionFactory
	classifier domain.Classifier
	registry   *registry.Registry
	outbound   chan<- domain.ControlMessage
	inbound    <-chan domain.ControlMessage
	policy     Policy
	conns      map[domain.ConnID]connection
	pending    []domain.ControlMessage
	running    *atomic.Bool
	done       chan struct{}
	logger     *zap.Logger
}

// Spawn starts the relay worker. It serves control messages from inbound
// until ctx is cancelled or inbound is closed, and reports to outbound.
func Spawn(ctx context.Context, outbound chan<- domain.ControlMessage, inbound <-chan domain.ControlMessage,
	factory domain.ConnectionFactory, classifier domain.Classifier, reg *registry.Registry, policy Policy,
	logger *zap.Logger) *useCase {
	u := &useCase{
		factory:    factory,
		classifier: classifier,
		registry:   reg,
		outbound:   outbound,
		inbound:    inbound,
		policy:     policy,
		conns:      make(map[domain.ConnID]connection),
		running:    atomic.NewBool(true),
		done:       make(chan struct{}),
		logger:     logger,
	}
	go u.run(ctx)
	return u
}

func (u *useCase) Running() bool {
	return u.running.Load()
}

// Done is closed once the worker and all of its connections have stopped
// being served.
func (u *useCase) Done() <-chan struct{} {
	return u.done
}

func (u *useCase) run(ctx context.Context) {
	defer close(u.done)
	defer u.running.Store(false)
	defer u.closeAll()
	for {
		msg, ok := u.next(ctx)
		if !ok {
			return
		}
		u.handle(ctx, msg)
		u.send(ctx, domain.Ready{})
	}
}

func (u *useCase) next(ctx context.Context) (domain.ControlMessage, bool) {
	if len(u.pending) > 0 {
		msg := u.pending[0]
		u.pending = u.pending[1:]
		return msg, true
	}
	if u.inbound == nil {
		return nil, false
	}
	select {
	case <-ctx.Done():
		return nil, false
	case msg, ok := <-u.inbound:
		if !ok {
			u.inbound = nil
			return nil, false
		}
		return msg, true
	}
}

func (u *useCase) handle(ctx context.Context, msg domain.ControlMessage) {
	switch m := msg.(type) {
	case domain.CreateConnection:
		u.createConnection(ctx, m.ID)
		u.send(ctx, domain.ConnectionCreated{ID: m.ID})
	case domain.ReadNext:
		u.readNext(ctx, m.ID)
	case domain.DeleteConnection:
		u.deleteConnection(m.ID)
	default:
		u.logger.Warn("unexpected control message for relay", zap.Any("msg", msg))
	}
}

func (u *useCase) createConnection(ctx context.Context, id domain.ConnID) {
	if _, ok := u.conns[id]; ok {
		u.logger.Info("replacing connection", zap.Int("id", int(id)))
		u.deleteConnection(id)
	}
	connCtx, cancel := context.WithCancel(ctx)
	queue := mailbox.New[domain.Event]()
	u.registry.Register(id, queue.Out())
	u.conns[id] = connection{cancel: cancel, queue: queue.Out()}
	go u.read(connCtx, id, queue)
	u.logger.Info("connection created", zap.Int("id", int(id)))
}

func (u *useCase) deleteConnection(id domain.ConnID) {
	conn, ok := u.conns[id]
	if !ok {
		return
	}
	conn.cancel()
	u.registry.Remove(id, conn.queue)
	delete(u.conns, id)
	u.logger.Info("connection deleted", zap.Int("id", int(id)))
}

// readNext blocks until the queue of id yields an event. Every call reports
// exactly one DomainEvent or DomainEventEmpty unless ctx is cancelled. Control
// messages arriving meanwhile are kept for later, except a DeleteConnection
// for the same id which ends the wait.
func (u *useCase) readNext(ctx context.Context, id domain.ConnID) {
	queue, ok := u.registry.Lookup(id)
	if !ok {
		u.logger.Warn("read from unknown connection", zap.Int("id", int(id)))
		u.send(ctx, domain.DomainEventEmpty{ID: id})
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-queue:
			if !ok {
				u.registry.Remove(id, queue)
				if conn, found := u.conns[id]; found && conn.queue == queue {
					conn.cancel()
					delete(u.conns, id)
				}
				u.send(ctx, domain.DomainEventEmpty{ID: id})
				return
			}
			u.send(ctx, domain.DomainEvent{ID: id, Event: event})
			return
		case msg, ok := <-u.inbound:
			if !ok {
				u.inbound = nil
				continue
			}
			if del, isDelete := msg.(domain.DeleteConnection); isDelete && del.ID == id {
				u.deleteConnection(id)
				u.send(ctx, domain.DomainEventEmpty{ID: id})
				u.send(ctx, domain.Ready{})
				return
			}
			u.pending = append(u.pending, msg)
		}
	}
}

func (u *useCase) send(ctx context.Context, msg domain.ControlMessage) {
	select {
	case u.outbound <- msg:
	case <-ctx.Done():
	}
}

func (u *useCase) closeAll() {
	for id := range u.conns {
		u.deleteConnection(id)
	}
}

// read owns the connection of id and fills its queue until ctx is cancelled
// or the reconnect budget is spent. Closing the queue tells readNext the
// connection is gone.
func (u *useCase) read(ctx context.Context, id domain.ConnID, queue *mailbox.Mailbox[domain.Event]) {
	defer queue.Close()
	logger := u.logger.With(zap.Int("id", int(id)))
	attempts := 0
	backoff := u.policy.ReconnectBackoff
	for {
		started, err := u.stream(ctx, queue.In())
		if ctx.Err() != nil {
			return
		}
		logger.Error("connection reader stopped", zap.Error(err))
		if started {
			attempts = 0
			backoff = u.policy.ReconnectBackoff
		}
		if attempts >= u.policy.ReconnectAttempts {
			return
		}
		attempts++
		logger.Info("reconnecting", zap.Int("attempt", attempts), zap.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxReconnectBackoff)
	}
}

func (u *useCase) stream(ctx context.Context, queue chan<- domain.Event) (started bool, err error) {
	conn, err := u.factory.NewConnection(ctx)
	if err != nil {
		return false, errors.WithMessage(err, "open connection")
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer func() {
		if stop() {
			_ = conn.Close()
		}
	}()
	if err := conn.Start(ctx); err != nil {
		return false, errors.WithMessage(err, "start connection")
	}
	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			return true, errors.WithMessage(err, "read frame")
		}
		event, ok := u.classifier.Classify(frame)
		if !ok {
			continue
		}
		select {
		case queue <- event:
		case <-ctx.Done():
			return true, ctx.Err()
		}
	}
}
