package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/cybercalc/pkg/models"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(message *tgbotapi.Message) error {
	if message == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}

	switch message.Command() {
	case "start", "help":
		return b.handleHelp(message)
	case "top":
		return b.handleTop(message)
	default:
		return b.reply(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "I post the derivative practice leaderboard.\n\n" +
		"/top - show the top players\n" +
		fmt.Sprintf("/top N - show the top N players (up to %d)\n", b.cfg.MaxTopSize) +
		"/help - show this message"
	return b.reply(message.Chat.ID, text)
}

func (b *Bot) handleTop(message *tgbotapi.Message) error {
	limit := b.cfg.DefaultTopSize
	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return b.reply(message.Chat.ID, "Usage: /top N, where N is a positive number.")
		}
		limit = n
	}
	if limit > b.cfg.MaxTopSize {
		limit = b.cfg.MaxTopSize
	}

	entries := b.board.Top(limit)
	if len(entries) == 0 {
		return b.reply(message.Chat.ID, "The leaderboard is empty.")
	}
	return b.reply(message.Chat.ID, FormatLeaderboard(entries))
}

// FormatLeaderboard renders entries one per line, medals for the podium
func FormatLeaderboard(entries []models.LeaderboardEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		switch e.Rank {
		case 1:
			sb.WriteString("🥇")
		case 2:
			sb.WriteString("🥈")
		case 3:
			sb.WriteString("🥉")
		default:
			sb.WriteString(strconv.Itoa(e.Rank) + ".")
		}
		sb.WriteString(fmt.Sprintf(" %s: %d pts\n", e.Username, e.Points))
	}
	return strings.TrimRight(sb.String(), "\n")
}
