package application

import (
	"context"

	"bolao/domain/interfaces"
	"bolao/events"
)

// eventNotifier turns a winner notification into a WinnersAnnouncedEvent on
// the unit of work's publisher, so the announcement leaves the process only
// after the winners are committed
type eventNotifier struct {
	publisher interfaces.EventPublisher
}

func newEventNotifier(publisher interfaces.EventPublisher) interfaces.Notifier {
	return &eventNotifier{publisher: publisher}
}

func (n *eventNotifier) NotifyWinners(ctx context.Context, notification interfaces.WinnerNotification) error {
	return n.publisher.Publish(events.WinnersAnnouncedEvent{
		GameID:         notification.GameID,
		GameName:       notification.GameName,
		PlayerNames:    notification.PlayerNames,
		WinningNumbers: notification.WinningNumbers,
		PrizePerWinner: notification.PrizePerWinner,
	})
}
