package domain

// ConnID identifies one streaming connection in the socket registry.
type ConnID int

// ControlMessage is exchanged between the dispatch loop and the relay worker.
// CreateConnection, ReadNext and DeleteConnection flow towards the worker,
// everything else flows back.
type ControlMessage interface {
	isControlMessage()
}

type CreateConnection struct{ ID ConnID }

func (CreateConnection) isControlMessage() {}

type ConnectionCreated struct{ ID ConnID }

func (ConnectionCreated) isControlMessage() {}

type ReadNext struct{ ID ConnID }

func (ReadNext) isControlMessage() {}

type DeleteConnection struct{ ID ConnID }

func (DeleteConnection) isControlMessage() {}

type DomainEvent struct {
	ID    ConnID
	Event Event
}

func (DomainEvent) isControlMessage() {}

type DomainEventEmpty struct{ ID ConnID }

func (DomainEventEmpty) isControlMessage() {}

type Ready struct{}

func (Ready) isControlMessage() {}
