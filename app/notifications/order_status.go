// Package notifications defines the concrete notifications the shop sends.
package notifications

import (
	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/pkg/notification"
)

// OrderStatusNotification carries a status-change message to the Telegram
// chat linked to the order.
type OrderStatusNotification struct {
	ChatID int64
	Text   string
}

func (n *OrderStatusNotification) Via() []string { return []string{"telegram"} }

func (n *OrderStatusNotification) ToTelegram() notification.TelegramData {
	return notification.TelegramData{ChatID: n.ChatID, Text: n.Text}
}

// OrderStatusWebhook mirrors a status change to an external endpoint, for
// shops that feed a CRM or fulfilment system. The URL comes from
// ORDERS_WEBHOOK_URL.
type OrderStatusWebhook struct {
	URL   string
	Order models.Order
}

func (n *OrderStatusWebhook) Via() []string { return []string{"webhook"} }

func (n *OrderStatusWebhook) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: n.URL,
		Payload: map[string]interface{}{
			"order_id":       n.Order.ID,
			"status":         string(n.Order.Status),
			"customer_name":  n.Order.CustomerName,
			"customer_phone": n.Order.CustomerPhone,
			"total_price":    n.Order.TotalPrice,
		},
	}
}

// WelcomeNotification greets a newly registered user by email.
type WelcomeNotification struct {
	User models.User
}

func (n *WelcomeNotification) Via() []string { return []string{"mail"} }

func (n *WelcomeNotification) ToMail() notification.MailData {
	return notification.MailData{
		To:      n.User.Email,
		Subject: "Добро пожаловать в Bloom!",
		Body: "<h1>Здравствуйте, " + n.User.Name + "!</h1>" +
			"<p>Спасибо за регистрацию в нашем цветочном магазине. " +
			"Ждем вас за свежими букетами!</p>",
	}
}
