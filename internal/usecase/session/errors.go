package session

import (
	"github.com/pkg/errors"
)

var (
	errNotResettable = errors.New("session can only be reset after a game or an error")
	errNoLobby       = errors.New("not in a lobby")
)
