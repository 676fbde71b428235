// Package notification provides a multi-channel notification system.
//
// Define a Notification:
//
//	type WelcomeNotification struct { User models.User }
//	func (n *WelcomeNotification) Via() []string { return []string{"mail"} }
//	func (n *WelcomeNotification) ToMail() notification.MailData {
//	    return notification.MailData{
//	        Subject: "Добро пожаловать!",
//	        Body:    "<h1>Здравствуйте, " + n.User.Name + "</h1>",
//	    }
//	}
//
// Send:
//
//	notification.Send("user@example.com", &WelcomeNotification{User: user})
package notification

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/bloom/pkg/http"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/mail"
	"github.com/shashiranjanraj/bloom/pkg/workerpool"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// TelegramData carries a Telegram message addressed to a chat.
type TelegramData struct {
	ChatID int64
	Text   string
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "telegram", "webhook".
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Telegramable can be implemented to support the Telegram channel.
type Telegramable interface {
	ToTelegram() TelegramData
}

// Webhookable can be implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// TelegramSender delivers Telegram messages. The bot wires the real client
// at boot; tests substitute a recorder.
type TelegramSender interface {
	SendMessage(chatID int64, text string) error
}

var telegramSender TelegramSender

// SetTelegramSender installs the transport used by the telegram channel.
func SetTelegramSender(s TelegramSender) { telegramSender = s }

// Send dispatches the notification through all channels returned by Via().
// address is typically an email address used for the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// asyncPool bounds background deliveries so a burst of notifications cannot
// spawn unbounded goroutines.
var asyncPool = workerpool.New(16)

// SendAsync dispatches the notification on the background pool. When the
// pool is saturated the notification is dropped with a log line; deliveries
// are best-effort by contract.
func SendAsync(address string, n Notification) {
	err := asyncPool.Submit(func() {
		if errs := Send(address, n); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("notification: async error", "error", e)
			}
		}
	})
	if err != nil {
		logger.Warn("notification: async pool rejected delivery", "error", err)
	}
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "telegram":
		tg, ok := n.(Telegramable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Telegramable", n)
		}
		return sendTelegram(tg.ToTelegram())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

func sendTelegram(d TelegramData) error {
	if telegramSender == nil {
		return fmt.Errorf("notification: telegram sender not configured")
	}
	if d.ChatID == 0 {
		return fmt.Errorf("notification: telegram chat id is empty")
	}
	return telegramSender.SendMessage(d.ChatID, d.Text)
}

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	resp, err := http.Post(d.URL).
		Headers(d.Headers).
		Body(d.Payload).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	return resp.Throw()
}
