package console

import (
	"context"
	"strings"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
)

// Session is the part of the session state machine driven by typed commands.
type Session interface {
	SelectQueue(ctx context.Context, queue domain.QueueID) error
	UpdatePosition(ctx context.Context, position domain.Position) error
	LeaveLobby(ctx context.Context) error
	StartQueue(ctx context.Context) error
	StopQueue(ctx context.Context) error
	AcceptMatch(ctx context.Context) error
	DeclineMatch(ctx context.Context) error
	DodgeLobby(ctx context.Context) error
	KickMember(ctx context.Context, summonerID int64) error
	InviteMember(ctx context.Context, summonerID int64) error
	SetAutoAccept(enabled bool)
	Reset() error
}

type Friends interface {
	SetSorting(sorting domain.Sorting, search string)
}

type handler struct {
	session Session
	friends Friends
}

func NewHandler(session Session, friends Friends) handler {
	return handler{session: session, friends: friends}
}

// Handle runs one command line such as "queue flex" or "kick 42".
func (h handler) Handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ErrEmptyCommand
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "queue":
		if err := wantArgs(name, args, 1); err != nil {
			return err
		}
		queue, err := ParseQueue(args[0])
		if err != nil {
			return err
		}
		return h.session.SelectQueue(ctx, queue)
	case "pos", "position":
		if err := wantArgs(name, args, 1); err != nil {
			return err
		}
		position, err := ParsePosition(args[0])
		if err != nil {
			return err
		}
		return h.session.UpdatePosition(ctx, position)
	case "kick", "invite":
		if err := wantArgs(name, args, 1); err != nil {
			return err
		}
		id, err := ParseSummonerID(args[0])
		if err != nil {
			return err
		}
		if name == "kick" {
			return h.session.KickMember(ctx, id)
		}
		return h.session.InviteMember(ctx, id)
	case "autoaccept":
		if err := wantArgs(name, args, 1); err != nil {
			return err
		}
		enabled, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		h.session.SetAutoAccept(enabled)
		return nil
	case "sort":
		if len(args) == 0 {
			return errors.WithMessagef(ErrBadArgument, "'%s' wants a sorting", name)
		}
		sorting, err := parseSorting(args[0])
		if err != nil {
			return err
		}
		h.friends.SetSorting(sorting, strings.Join(args[1:], " "))
		return nil
	}
	action, ok := h.actions()[name]
	if !ok {
		return errors.WithMessagef(ErrUnknownCommand, "'%s'", name)
	}
	if err := wantArgs(name, args, 0); err != nil {
		return err
	}
	return action(ctx)
}

func (h handler) actions() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"leave":   h.session.LeaveLobby,
		"start":   h.session.StartQueue,
		"stop":    h.session.StopQueue,
		"accept":  h.session.AcceptMatch,
		"decline": h.session.DeclineMatch,
		"dodge":   h.session.DodgeLobby,
		"reset": func(context.Context) error {
			return h.session.Reset()
		},
	}
}

func wantArgs(name string, args []string, n int) error {
	if len(args) != n {
		return errors.WithMessagef(ErrBadArgument, "'%s' takes %d argument(s), got %d", name, n, len(args))
	}
	return nil
}
