package infrastructure

import (
	"fmt"

	"bolao/events"
)

// DomainEventStream is the JetStream stream holding every published subject
const DomainEventStream = "bolao_events"

var eventSubjects = map[events.EventType]string{
	events.EventTypeGameCreated:      "bolao.games.created",
	events.EventTypeGameStatusChange: "bolao.games.status_changed",
	events.EventTypeDrawRecorded:     "bolao.draws.recorded",
	events.EventTypeHitsRecalculated: "bolao.results.recalculated",
	events.EventTypeWinnersDetected:  "bolao.winners.detected",
	events.EventTypeWinnersAnnounced: "bolao.winners.announced",
}

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := eventSubjects[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("bolao.unknown.%s", event.Type())
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"bolao.games.created",
		"bolao.games.status_changed",
		"bolao.draws.recorded",
		"bolao.results.recalculated",
		"bolao.winners.detected",
		"bolao.winners.announced",
	}
}
