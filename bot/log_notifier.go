package bot

import (
	"context"
	"sync"

	"bolao/domain/interfaces"
	"bolao/domain/utils"
	"bolao/events"
	"bolao/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// LogNotifier announces winners in the service log when Discord is not configured
type LogNotifier struct {
	mu       sync.Mutex
	notified map[int64]bool
}

// NewLogNotifier creates a new log notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{notified: make(map[int64]bool)}
}

// NotifyWinners logs the announcement once per game
func (n *LogNotifier) NotifyWinners(ctx context.Context, notification interfaces.WinnerNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.notified[notification.GameID] {
		return nil
	}
	n.notified[notification.GameID] = true
	observability.RecordNotification(nil)

	log.WithFields(log.Fields{
		"gameID":   notification.GameID,
		"gameName": notification.GameName,
		"winners":  notification.PlayerNames,
		"prize":    utils.FormatCents(notification.PrizePerWinner),
	}).Info("Winners announced")
	return nil
}

// HandleWinnersAnnounced is a local event handler for WinnersAnnouncedEvent
func (n *LogNotifier) HandleWinnersAnnounced(ctx context.Context, event events.Event) error {
	return notifyFromEvent(ctx, n, event)
}
