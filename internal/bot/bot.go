// Package bot posts leaderboard digests to Telegram and answers leaderboard commands.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/cybercalc/pkg/models"
)

// Leaderboard returns the current top entries
type Leaderboard interface {
	Top(limit int) []models.LeaderboardEntry
}

// api is the subset of tgbotapi.BotAPI the bot needs
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot application
type Bot struct {
	api   api
	cfg   Config
	board Leaderboard
	log   *slog.Logger
}

// New authorizes against the Bot API and creates a bot instance
func New(cfg Config, board Leaderboard, logger *slog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}

	b := newBot(botAPI, cfg, board, logger)
	b.log.Info("authorized on telegram", "account", botAPI.Self.UserName)
	return b, nil
}

func newBot(a api, cfg Config, board Leaderboard, logger *slog.Logger) *Bot {
	defaults := DefaultConfig()
	if cfg.DefaultTopSize <= 0 {
		cfg.DefaultTopSize = defaults.DefaultTopSize
	}
	if cfg.MaxTopSize <= 0 {
		cfg.MaxTopSize = defaults.MaxTopSize
	}
	if cfg.UpdateTimeout <= 0 {
		cfg.UpdateTimeout = defaults.UpdateTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:   a,
		cfg:   cfg,
		board: board,
		log:   logger.With("component", "bot"),
	}
}

// Run handles incoming commands until ctx is cancelled
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if err := b.HandleCommand(update.Message); err != nil {
				b.log.Error("failed to handle command",
					"command", update.Message.Command(),
					"chat_id", update.Message.Chat.ID,
					"error", err)
			}
		}
	}
}

// SendLeaderboardDigest posts the entries to the configured chat
func (b *Bot) SendLeaderboardDigest(entries []models.LeaderboardEntry) error {
	if b.cfg.ChatID == 0 {
		return fmt.Errorf("digest chat is not configured")
	}

	text := "📈 Daily leaderboard\n\n" + FormatLeaderboard(entries)
	if _, err := b.api.Send(tgbotapi.NewMessage(b.cfg.ChatID, text)); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
