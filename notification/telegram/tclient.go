// File: notification/telegram/tclient.go
package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"volumeforge/notification"
	"volumeforge/utilities"
)

// Client sends notifications to a Telegram chat through the Bot API.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *utilities.Logger
}

// NewClient authenticates against the Bot API. An error here is fatal for the
// Telegram channel but the caller may still run without it.
func NewClient(botToken string, chatID int64, logger *utilities.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: bot auth failed: %w", err)
	}
	logger.LogInfo("Telegram Client initialized as @%s", bot.Self.UserName)
	return &Client{bot: bot, chatID: chatID, logger: logger}, nil
}

// Send renders the event as a Markdown message and posts it to the chat.
func (c *Client) Send(event notification.Event) error {
	var b strings.Builder
	b.WriteString(prefixForSeverity(event.Severity))
	b.WriteString(" *")
	b.WriteString(escapeMarkdown(event.Title))
	b.WriteString("*\n")
	if event.Description != "" {
		b.WriteString(escapeMarkdown(event.Description))
		b.WriteString("\n")
	}
	for _, f := range event.Fields {
		fmt.Fprintf(&b, "%s: `%s`\n", escapeMarkdown(f.Name), f.Value)
	}

	msg := tgbotapi.NewMessage(c.chatID, b.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.bot.Send(msg); err != nil {
		c.logger.LogError("Telegram Send: failed to deliver message: %v", err)
		return fmt.Errorf("telegram: send failed: %w", err)
	}
	return nil
}

func prefixForSeverity(s notification.Severity) string {
	switch s {
	case notification.SeverityAlert:
		return "🚨"
	case notification.SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(s)
}
