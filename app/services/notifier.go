package services

import (
	"fmt"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/notifications"
	"github.com/shashiranjanraj/bloom/config"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/metrics"
	"github.com/shashiranjanraj/bloom/pkg/notification"
)

// Per-status Telegram message templates; %d is the order id.
var statusTemplates = map[models.OrderStatus]string{
	models.StatusNew:        "🆕 Ваш заказ №%d принят в обработку!",
	models.StatusConfirmed:  "✅ Заказ №%d подтвержден! Готовим ваш букет.",
	models.StatusProcessing: "🔧 Заказ №%d собирается нашими флористами.",
	models.StatusInProgress: "🚚 Заказ №%d передан курьеру! Ожидайте доставку.",
	models.StatusDelivered:  "📦 Заказ №%d доставлен! Спасибо за покупку! 🌹",
	models.StatusCancelled:  "❌ Заказ №%d отменен.",
}

// Notifier sends the status-specific Telegram message for an order. It is
// best-effort: transport failures are logged, never returned, and the order
// save is never affected by them.
type Notifier struct {
	// WebhookURL, when set, mirrors every status notification to an
	// external endpoint in the background.
	WebhookURL string
}

func NewNotifier() *Notifier {
	return &Notifier{WebhookURL: config.OrdersWebhookURL()}
}

// Notify resolves the template for the order's current status and sends it
// to the linked chat. Orders without a chat id are skipped silently; so are
// statuses without a template. The webhook mirror fires regardless of the
// chat link.
func (n *Notifier) Notify(order models.Order) {
	n.mirror(order)

	if order.TelegramChatID == nil {
		metrics.NotificationsSent.WithLabelValues("skipped").Inc()
		return
	}

	tpl, ok := statusTemplates[order.Status]
	if !ok {
		metrics.NotificationsSent.WithLabelValues("skipped").Inc()
		return
	}

	errs := notification.Send("", &notifications.OrderStatusNotification{
		ChatID: *order.TelegramChatID,
		Text:   fmt.Sprintf(tpl, order.ID),
	})
	if len(errs) > 0 {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		logger.Warn("status notification failed",
			"order_id", order.ID, "status", order.Status, "error", errs[0])
		return
	}

	metrics.NotificationsSent.WithLabelValues("sent").Inc()
	logger.Info("status notification sent",
		"order_id", order.ID, "status", order.Status)
}

// mirror posts the status change to the configured webhook on the background
// pool. Delivery is best-effort; the pkg/http client retries transport
// failures on its own.
func (n *Notifier) mirror(order models.Order) {
	if n.WebhookURL == "" {
		return
	}
	notification.SendAsync("", &notifications.OrderStatusWebhook{
		URL:   n.WebhookURL,
		Order: order,
	})
}

// NotifyText sends a free-form message to the order's chat, best-effort.
// Used by the delivery-reminder task.
func (n *Notifier) NotifyText(order models.Order, text string) {
	if order.TelegramChatID == nil {
		metrics.NotificationsSent.WithLabelValues("skipped").Inc()
		return
	}
	errs := notification.Send("", &notifications.OrderStatusNotification{
		ChatID: *order.TelegramChatID,
		Text:   text,
	})
	if len(errs) > 0 {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		logger.Warn("reminder notification failed", "order_id", order.ID, "error", errs[0])
		return
	}
	metrics.NotificationsSent.WithLabelValues("sent").Inc()
}
