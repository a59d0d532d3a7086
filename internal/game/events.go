package game

import (
	"time"

	"github.com/lox/kicker/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStarted EventType = "round_started"
	EventTypeActionTaken  EventType = "action_taken"
	EventTypeCardRevealed EventType = "card_revealed"
	EventTypeRoundEnded   EventType = "round_ended"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// EventSubscriber receives game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription. External observers
// (UI, persistence) subscribe here instead of owning engine state.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// RoundStartedEvent is published after the deal completes
type RoundStartedEvent struct {
	RoundID     string
	Board       deck.Card
	RevealOrder []int
	FirstSeat   int
	Pot         int
	Players     []Player
	timestamp   time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// ActionAppliedEvent is published after every successfully applied action
type ActionAppliedEvent struct {
	Seat       int
	Action     PlayerAction
	Message    string
	Pot        int
	CurrentBet int
	timestamp  time.Time
}

func (e ActionAppliedEvent) EventType() EventType { return EventTypeActionTaken }
func (e ActionAppliedEvent) Timestamp() time.Time { return e.timestamp }

// CardRevealedEvent is published when a player card is turned face up
// during the reveal sequence.
type CardRevealedEvent struct {
	Seat      int
	Card      deck.Card
	Folded    bool
	timestamp time.Time
}

func (e CardRevealedEvent) EventType() EventType { return EventTypeCardRevealed }
func (e CardRevealedEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndedEvent carries the final result of a round
type RoundEndedEvent struct {
	Result    RoundResult
	timestamp time.Time
}

func (e RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }
func (e RoundEndedEvent) Timestamp() time.Time { return e.timestamp }
