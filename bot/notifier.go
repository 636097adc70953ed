package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"bolao/bot/common"
	"bolao/domain/interfaces"
	"bolao/domain/utils"
	"bolao/events"
	"bolao/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// MessageSender is the part of a discordgo session used for announcements
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts winner announcements to a Discord channel. Each game
// is announced at most once for the lifetime of the process.
type DiscordNotifier struct {
	sender    MessageSender
	channelID string

	mu       sync.Mutex
	notified map[int64]bool
}

// NewDiscordNotifier creates a notifier posting to channelID
func NewDiscordNotifier(sender MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		sender:    sender,
		channelID: channelID,
		notified:  make(map[int64]bool),
	}
}

// NotifyWinners posts the announcement unless the game was already announced
func (n *DiscordNotifier) NotifyWinners(ctx context.Context, notification interfaces.WinnerNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.notified[notification.GameID] {
		log.WithField("gameID", notification.GameID).Debug("Winners already announced, skipping")
		return nil
	}

	_, err := n.sender.ChannelMessageSendEmbed(n.channelID, BuildWinnersEmbed(notification))
	observability.RecordNotification(err)
	if err != nil {
		return fmt.Errorf("failed to send winners announcement: %w", err)
	}

	n.notified[notification.GameID] = true

	log.WithFields(log.Fields{
		"gameID":    notification.GameID,
		"channelID": n.channelID,
		"winners":   len(notification.PlayerNames),
	}).Info("Winners announced on Discord")

	return nil
}

// HandleWinnersAnnounced is a local event handler for WinnersAnnouncedEvent
func (n *DiscordNotifier) HandleWinnersAnnounced(ctx context.Context, event events.Event) error {
	return notifyFromEvent(ctx, n, event)
}

// BuildWinnersEmbed creates the announcement embed for a game's first winners
func BuildWinnersEmbed(notification interfaces.WinnerNotification) *discordgo.MessageEmbed {
	title := "🏆 We have a winner!"
	if len(notification.PlayerNames) > 1 {
		title = "🏆 We have winners!"
	}

	description := fmt.Sprintf("**%s** reached the required hits in **%s**.",
		utils.JoinNames(notification.PlayerNames), notification.GameName)

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Winners",
			Value:  common.Truncate(strings.Join(notification.PlayerNames, "\n"), common.MaxFieldValue),
			Inline: false,
		},
	}

	if len(notification.WinningNumbers) > 0 {
		lines := make([]string, len(notification.WinningNumbers))
		for i, numbers := range notification.WinningNumbers {
			lines[i] = "`" + utils.FormatNumbers(numbers) + "`"
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Winning numbers",
			Value:  common.Truncate(strings.Join(lines, "\n"), common.MaxFieldValue),
			Inline: false,
		})
	}

	if notification.PrizePerWinner > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Prize per winner",
			Value:  utils.FormatCents(notification.PrizePerWinner),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: common.Truncate(description, common.MaxEmbedDescription),
		Color:       common.ColorGold,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Game #%d", notification.GameID),
		},
	}
}

func notifyFromEvent(ctx context.Context, notifier interfaces.Notifier, event events.Event) error {
	announced, ok := event.(events.WinnersAnnouncedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	return notifier.NotifyWinners(ctx, interfaces.WinnerNotification{
		GameID:         announced.GameID,
		GameName:       announced.GameName,
		PlayerNames:    announced.PlayerNames,
		WinningNumbers: announced.WinningNumbers,
		PrizePerWinner: announced.PrizePerWinner,
	})
}
