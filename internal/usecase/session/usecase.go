package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var phases = map[domain.GameFlowPhase]domain.Phase{
	domain.FlowNone:              domain.PhaseNone,
	domain.FlowLobby:             domain.PhaseLobby,
	domain.FlowMatchmaking:       domain.PhaseSearching,
	domain.FlowReadyCheck:        domain.PhaseFound,
	domain.FlowChampSelect:       domain.PhaseChampSelect,
	domain.FlowGameStart:         domain.PhaseInGame,
	domain.FlowInProgress:        domain.PhaseInGame,
	domain.FlowWaitingForStats:   domain.PhaseAfterGameLobby,
	domain.FlowTerminatedInError: domain.PhaseError,
}

// PhaseFor maps a remote game flow phase onto the session phase. The second
// result is false for phases that leave the session untouched
// (PreEndOfGame, EndOfGame).
func PhaseFor(flow domain.GameFlowPhase) (domain.Phase, bool) {
	phase, ok := phases[flow]
	return phase, ok
}

type useCase struct {
	actions       domain.ActionClient
	ranked        domain.RankedRepository
	settings      *domain.GameSettings
	state         domain.Session
	selectSecond  bool
	notifications []domain.Notification
	ttl           time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

// New builds the session state machine. It is not safe for concurrent use:
// events and user actions are both applied from the paint loop.
func New(actions domain.ActionClient, ranked domain.RankedRepository, settings *domain.GameSettings,
	notificationTTL time.Duration, logger *zap.Logger) *useCase {
	return &useCase{
		actions:  actions,
		ranked:   ranked,
		settings: settings,
		ttl:      notificationTTL,
		now:      time.Now,
		logger:   logger,
	}
}

func (u *useCase) State() domain.Session {
	state := u.state
	state.Members = make([]domain.RosterMember, len(u.state.Members))
	copy(state.Members, u.state.Members)
	return state
}

func (u *useCase) ApplyQueueStatus(eventType domain.EventType, status *domain.QueueStatus) {
	switch eventType {
	case domain.Update:
		if status == nil {
			return
		}
		u.state.QueueTimer = status.TimeInQueue
		u.state.EstimatedQueueTime = status.EstimatedQueueTime
	case domain.Delete:
		u.state.QueueTimer = nil
		u.state.EstimatedQueueTime = nil
	}
}

// ApplyRoster replaces the member list with a fresh snapshot. Members without
// an identity or whose ranked lookup fails are left out.
func (u *useCase) ApplyRoster(ctx context.Context, roster *domain.LobbyRoster) {
	if roster == nil || roster.Members == nil {
		return
	}
	members := make([]domain.RosterMember, 0, len(roster.Members))
	for _, m := range roster.Members {
		if m.Puuid == nil {
			continue
		}
		status, err := u.ranked.RankedStats(ctx, *m.Puuid)
		if err != nil {
			u.logger.Warn("ranked lookup failed", zap.String("puuid", *m.Puuid), zap.Error(err))
			continue
		}
		members = append(members, domain.NewRosterMember(m, status))
	}
	u.state.Members = members
}

func (u *useCase) ApplyGameFlow(ctx context.Context, flow *domain.GameFlow) {
	if flow == nil || flow.Phase == nil {
		return
	}
	phase, ok := PhaseFor(*flow.Phase)
	if !ok {
		return
	}
	prev := u.state.Phase
	u.state.Phase = phase
	if prev == phase {
		return
	}
	u.logger.Info("session phase changed", zap.Stringer("from", prev), zap.Stringer("to", phase))
	if phase == domain.PhaseFound && u.settings.AutoAccept {
		_ = u.AcceptMatch(ctx)
	}
}

// Reset leaves the after-game and error screens.
func (u *useCase) Reset() error {
	if u.state.Phase != domain.PhaseError && u.state.Phase != domain.PhaseAfterGameLobby {
		return errNotResettable
	}
	u.state.Phase = domain.PhaseNone
	return nil
}

// SelectQueue joins the lobby of queue, or leaves it when queue is already
// the selected one.
func (u *useCase) SelectQueue(ctx context.Context, queue domain.QueueID) error {
	if u.state.QueueID != nil && *u.state.QueueID == queue {
		u.state.QueueID = nil
		return u.LeaveLobby(ctx)
	}
	u.state.QueueID = &queue
	err := u.act(ctx, "join lobby", func(ctx context.Context) (domain.Response, error) {
		return u.actions.JoinLobby(ctx, queue)
	})
	if err != nil {
		return err
	}
	return u.pushPositions(ctx)
}

// UpdatePosition toggles a role preference. A selected role is cleared,
// otherwise the role fills the first slot and then the second one.
func (u *useCase) UpdatePosition(ctx context.Context, position domain.Position) error {
	positions := &u.state.Positions
	switch {
	case positions.First != nil && *positions.First == position:
		positions.First = nil
		u.selectSecond = false
	case positions.Second != nil && *positions.Second == position:
		positions.Second = nil
		u.selectSecond = positions.First != nil
	case !u.selectSecond:
		positions.First = &position
		u.selectSecond = true
	default:
		positions.Second = &position
		u.selectSecond = false
	}
	if u.state.Phase != domain.PhaseLobby {
		return nil
	}
	return u.pushPositions(ctx)
}

func (u *useCase) pushPositions(ctx context.Context) error {
	positions := u.state.Positions
	return u.act(ctx, "set role preferences", func(ctx context.Context) (domain.Response, error) {
		return u.actions.SetRolePreferences(ctx, positions)
	})
}

func (u *useCase) LeaveLobby(ctx context.Context) error {
	return u.act(ctx, "leave lobby", u.actions.LeaveLobby)
}

func (u *useCase) StartQueue(ctx context.Context) error {
	if u.state.Phase != domain.PhaseLobby {
		return errors.WithMessage(errNoLobby, "start queue")
	}
	return u.act(ctx, "start queue", u.actions.StartQueue)
}

func (u *useCase) StopQueue(ctx context.Context) error {
	return u.act(ctx, "stop queue", u.actions.StopQueue)
}

func (u *useCase) AcceptMatch(ctx context.Context) error {
	return u.act(ctx, "accept match", u.actions.AcceptMatch)
}

func (u *useCase) DeclineMatch(ctx context.Context) error {
	return u.act(ctx, "decline match", u.actions.DeclineMatch)
}

func (u *useCase) DodgeLobby(ctx context.Context) error {
	return u.act(ctx, "dodge lobby", u.actions.DodgeLobby)
}

func (u *useCase) KickMember(ctx context.Context, summonerID int64) error {
	return u.act(ctx, "kick member", func(ctx context.Context) (domain.Response, error) {
		return u.actions.KickMember(ctx, summonerID)
	})
}

func (u *useCase) InviteMember(ctx context.Context, summonerID int64) error {
	return u.act(ctx, "invite member", func(ctx context.Context) (domain.Response, error) {
		return u.actions.InviteMember(ctx, summonerID)
	})
}

func (u *useCase) SetAutoAccept(enabled bool) {
	u.settings.AutoAccept = enabled
}

// Notifications returns the notifications younger than the configured TTL and
// forgets the older ones.
func (u *useCase) Notifications() []domain.Notification {
	cutoff := u.now().Add(-u.ttl)
	alive := u.notifications[:0]
	for _, n := range u.notifications {
		if n.At.After(cutoff) {
			alive = append(alive, n)
		}
	}
	u.notifications = alive
	out := make([]domain.Notification, len(alive))
	copy(out, alive)
	return out
}

func (u *useCase) act(ctx context.Context, name string, call func(context.Context) (domain.Response, error)) error {
	if _, err := call(ctx); err != nil {
		err = errors.WithMessage(err, name)
		u.logger.Warn("remote action failed", zap.String("action", name), zap.Error(err))
		u.notifications = append(u.notifications, domain.Notification{
			ID:      uuid.NewString(),
			Message: err.Error(),
			At:      u.now(),
		})
		return err
	}
	return nil
}
