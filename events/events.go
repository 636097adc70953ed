package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGameCreated      EventType = "game_created"
	EventTypeGameStatusChange EventType = "game_status_change"
	EventTypeDrawRecorded     EventType = "draw_recorded"
	EventTypeHitsRecalculated EventType = "hits_recalculated"
	EventTypeWinnersDetected  EventType = "winners_detected"
	EventTypeWinnersAnnounced EventType = "winners_announced"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GameCreatedEvent represents a newly created game
type GameCreatedEvent struct {
	GameID  int64
	Name    string
	OwnerID string
}

func (e GameCreatedEvent) Type() EventType {
	return EventTypeGameCreated
}

// GameStatusChangeEvent represents a game lifecycle transition
type GameStatusChangeEvent struct {
	GameID    int64
	OldStatus string
	NewStatus string
	Automatic bool // True when closed by winner detection
}

func (e GameStatusChangeEvent) Type() EventType {
	return EventTypeGameStatusChange
}

// DrawRecordedEvent represents a daily draw added to a game
type DrawRecordedEvent struct {
	GameID   int64
	DrawID   int64
	DrawDate string
	Numbers  []int
}

func (e DrawRecordedEvent) Type() EventType {
	return EventTypeDrawRecorded
}

// HitsRecalculatedEvent is published after every recalculation pass
type HitsRecalculatedEvent struct {
	GameID                int64
	CombinationCount      int
	ChangedCombinations   int
	DrawnNumberCount      int
	QualifyingPlayerCount int
}

func (e HitsRecalculatedEvent) Type() EventType {
	return EventTypeHitsRecalculated
}

// WinnersDetectedEvent represents winner records created in a detection pass
type WinnersDetectedEvent struct {
	GameID  int64
	Winners []WinnerRef
}

func (e WinnersDetectedEvent) Type() EventType {
	return EventTypeWinnersDetected
}

// WinnerRef identifies one winning combination
type WinnerRef struct {
	WinnerID      int64
	PlayerID      int64
	PlayerName    string
	CombinationID int64
}

// WinnersAnnouncedEvent carries the one-time announcement of a game's first winners
type WinnersAnnouncedEvent struct {
	GameID         int64
	GameName       string
	PlayerNames    []string
	WinningNumbers [][]int
	PrizePerWinner int64
}

func (e WinnersAnnouncedEvent) Type() EventType {
	return EventTypeWinnersAnnounced
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// HandlerCount returns the number of handlers registered for an event type
func (b *Bus) HandlerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Emit publishes an event to all registered handlers.
// Handlers run in their own goroutines; a panicking handler is logged and dropped.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
