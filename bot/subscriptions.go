package bot

import (
	"context"

	"bolao/events"

	log "github.com/sirupsen/logrus"
)

// AnnouncementHandler delivers a WinnersAnnouncedEvent to its audience
type AnnouncementHandler interface {
	HandleWinnersAnnounced(ctx context.Context, event events.Event) error
}

// RegisterAnnouncementSubscriptions subscribes the handler to winner
// announcements on the bus
func RegisterAnnouncementSubscriptions(bus *events.Bus, handler AnnouncementHandler) {
	bus.Subscribe(events.EventTypeWinnersAnnounced, func(ctx context.Context, event events.Event) {
		if err := handler.HandleWinnersAnnounced(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to deliver winners announcement")
		}
	})

	log.Info("Bot event subscriptions registered successfully")
}
