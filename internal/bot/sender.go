package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is a send-only Telegram client for processes that deliver status
// notifications without polling for updates (the HTTP server, the scheduler).
type Sender struct {
	api *tgbotapi.BotAPI
}

// NewSender connects a send-only client with the given bot token.
func NewSender(token string) (*Sender, error) {
	if token == "" {
		return nil, fmt.Errorf("bot: TELEGRAM_TOKEN is not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: connect: %w", err)
	}
	return &Sender{api: api}, nil
}

// SendMessage implements notification.TelegramSender.
func (s *Sender) SendMessage(chatID int64, text string) error {
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
