package infrastructure

import (
	"context"
	"errors"
	"testing"

	"bolao/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSEventPublisher_LocalHandlersWithoutNATS(t *testing.T) {
	t.Parallel()

	publisher := NewNATSEventPublisher(nil, NewEventSubjectMapper())

	var received []events.Event
	publisher.RegisterLocalHandler(events.EventTypeWinnersAnnounced, func(ctx context.Context, event events.Event) error {
		return errors.New("first handler fails")
	})
	publisher.RegisterLocalHandler(events.EventTypeWinnersAnnounced, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	announced := events.WinnersAnnouncedEvent{GameID: 7, GameName: "Pool", PlayerNames: []string{"Ana"}}
	require.NoError(t, publisher.Publish(announced))
	require.NoError(t, publisher.Publish(events.GameCreatedEvent{GameID: 7}))

	assert.Equal(t, []events.Event{announced}, received)
	assert.NoError(t, publisher.EnsureDomainEventStream())
}

func TestEventSubjectMapper(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.GameCreatedEvent{}, "bolao.games.created"},
		{events.GameStatusChangeEvent{}, "bolao.games.status_changed"},
		{events.DrawRecordedEvent{}, "bolao.draws.recorded"},
		{events.HitsRecalculatedEvent{}, "bolao.results.recalculated"},
		{events.WinnersDetectedEvent{}, "bolao.winners.detected"},
		{events.WinnersAnnouncedEvent{}, "bolao.winners.announced"},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Type()), func(t *testing.T) {
			t.Parallel()

			subject := mapper.MapEventToSubject(tt.event)
			assert.Equal(t, tt.subject, subject)
			assert.Contains(t, mapper.GetAllSubjects(), subject)
		})
	}
}
