package infrastructure

import (
	"context"
	"errors"
	"testing"

	"bolao/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	PublishedEvents []events.Event
	FailOn          events.EventType
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	if event.Type() == m.FailOn {
		return errors.New("publish failed")
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_FlushPublishesInOrder(t *testing.T) {
	t.Parallel()

	mockPublisher := &MockEventPublisher{}
	publisher := NewNATSTransactionalPublisher(mockPublisher)

	first := events.DrawRecordedEvent{GameID: 1, DrawID: 10}
	second := events.HitsRecalculatedEvent{GameID: 1, CombinationCount: 4}

	require.NoError(t, publisher.Publish(first))
	require.NoError(t, publisher.Publish(second))
	assert.Empty(t, mockPublisher.PublishedEvents)

	require.NoError(t, publisher.Flush(context.Background()))
	assert.Equal(t, []events.Event{first, second}, mockPublisher.PublishedEvents)

	require.NoError(t, publisher.Flush(context.Background()))
	assert.Len(t, mockPublisher.PublishedEvents, 2)
}

func TestNATSTransactionalPublisher_FlushContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	mockPublisher := &MockEventPublisher{FailOn: events.EventTypeHitsRecalculated}
	publisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, publisher.Publish(events.HitsRecalculatedEvent{GameID: 1}))
	require.NoError(t, publisher.Publish(events.WinnersDetectedEvent{GameID: 1}))

	require.NoError(t, publisher.Flush(context.Background()))
	require.Len(t, mockPublisher.PublishedEvents, 1)
	assert.Equal(t, events.EventTypeWinnersDetected, mockPublisher.PublishedEvents[0].Type())
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	t.Parallel()

	mockPublisher := &MockEventPublisher{}
	publisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, publisher.Publish(events.GameCreatedEvent{GameID: 1}))
	publisher.Discard()

	require.NoError(t, publisher.Flush(context.Background()))
	assert.Empty(t, mockPublisher.PublishedEvents)
}
