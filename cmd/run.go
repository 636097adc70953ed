package cmd

import (
	"context"
	"fmt"
	"time"

	"bolao/application"
	"bolao/bot"
	"bolao/config"
	"bolao/database"
	"bolao/events"
	"bolao/infrastructure"
	"bolao/server"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Run initializes and starts the service
func Run(ctx context.Context) error {
	cfg := config.Get()
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}

	log.WithField("environment", cfg.Environment).Info("Starting bolao...")

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), database.PoolOptions{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	natsClient, err := connectNATS(ctx, cfg)
	if err != nil {
		return err
	}
	if natsClient != nil {
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Warn("Failed to close NATS connection")
			}
		}()
	}

	publisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := publisher.EnsureDomainEventStream(); err != nil {
		return fmt.Errorf("failed to ensure domain event stream: %w", err)
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, publisher)

	// Announcements leave the request path through the bus
	eventBus := events.NewBus()
	uowFactory.RegisterLocalHandler(events.EventTypeWinnersAnnounced, func(ctx context.Context, event events.Event) error {
		eventBus.Emit(context.Background(), event)
		return nil
	})

	discordBot, err := startAnnouncer(cfg, eventBus)
	if err != nil {
		return err
	}
	if discordBot != nil {
		defer func() {
			if err := discordBot.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Discord session")
			}
		}()
	}

	console := application.NewAdminConsole(uowFactory, cfg.GameDefaults())
	srv := server.New(cfg.HTTPAddr, console)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	log.Info("Shutdown complete")
	return nil
}

// connectNATS returns nil when no servers are configured
func connectNATS(ctx context.Context, cfg *config.Config) (*infrastructure.NATSClient, error) {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, domain events stay in-process")
		return nil, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return client, nil
}

// startAnnouncer subscribes the winner announcer, Discord when configured
// and the service log otherwise
func startAnnouncer(cfg *config.Config, bus *events.Bus) (*bot.Bot, error) {
	if !cfg.DiscordEnabled() {
		log.Info("Discord not configured, announcing winners in the log")
		bot.RegisterAnnouncementSubscriptions(bus, bot.NewLogNotifier())
		return nil, nil
	}

	discordBot, err := bot.New(bot.Config{Token: cfg.DiscordToken, ChannelID: cfg.DiscordChannelID})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	if err := discordBot.Open(); err != nil {
		return nil, err
	}

	bot.RegisterAnnouncementSubscriptions(bus, discordBot.Notifier())
	return discordBot, nil
}
