package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/pkg/notification"
)

// recordingSender captures Telegram messages instead of sending them.
type recordingSender struct {
	sent []struct {
		chatID int64
		text   string
	}
	fail error
}

func (r *recordingSender) SendMessage(chatID int64, text string) error {
	if r.fail != nil {
		return r.fail
	}
	r.sent = append(r.sent, struct {
		chatID int64
		text   string
	}{chatID, text})
	return nil
}

func TestNotifySkipsOrdersWithoutChat(t *testing.T) {
	rec := &recordingSender{}
	notification.SetTelegramSender(rec)
	defer notification.SetTelegramSender(nil)

	services.NewNotifier().Notify(models.Order{Status: models.StatusNew})

	assert.Empty(t, rec.sent)
}

func TestNotifySendsStatusTemplate(t *testing.T) {
	rec := &recordingSender{}
	notification.SetTelegramSender(rec)
	defer notification.SetTelegramSender(nil)

	chat := int64(42)
	order := models.Order{Status: models.StatusDelivered, TelegramChatID: &chat}
	order.ID = 7

	services.NewNotifier().Notify(order)

	require.Len(t, rec.sent, 1)
	assert.Equal(t, int64(42), rec.sent[0].chatID)
	assert.Equal(t, "📦 Заказ №7 доставлен! Спасибо за покупку! 🌹", rec.sent[0].text)
}

func TestNotifySwallowsTransportErrors(t *testing.T) {
	rec := &recordingSender{fail: assert.AnError}
	notification.SetTelegramSender(rec)
	defer notification.SetTelegramSender(nil)

	chat := int64(42)
	order := models.Order{Status: models.StatusConfirmed, TelegramChatID: &chat}
	order.ID = 9

	// Must not panic or propagate the error.
	services.NewNotifier().Notify(order)
	assert.Empty(t, rec.sent)
}

func TestNotifyMirrorsToWebhook(t *testing.T) {
	rec := &recordingSender{}
	notification.SetTelegramSender(rec)
	defer notification.SetTelegramSender(nil)

	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload
	}))
	defer srv.Close()

	chat := int64(42)
	order := models.Order{Status: models.StatusConfirmed, TelegramChatID: &chat}
	order.ID = 5
	order.CustomerName = "Анна"

	n := services.NewNotifier()
	n.WebhookURL = srv.URL
	n.Notify(order)

	select {
	case payload := <-received:
		assert.Equal(t, float64(5), payload["order_id"])
		assert.Equal(t, "confirmed", payload["status"])
		assert.Equal(t, "Анна", payload["customer_name"])
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not called")
	}

	// The Telegram message still goes out alongside the mirror.
	require.Len(t, rec.sent, 1)
}

func TestNotifyTextSendsFreeForm(t *testing.T) {
	rec := &recordingSender{}
	notification.SetTelegramSender(rec)
	defer notification.SetTelegramSender(nil)

	chat := int64(11)
	order := models.Order{Status: models.StatusInProgress, TelegramChatID: &chat}
	order.ID = 3

	services.NewNotifier().NotifyText(order, "Курьер будет у вас в течение часа.")

	require.Len(t, rec.sent, 1)
	assert.Equal(t, "Курьер будет у вас в течение часа.", rec.sent[0].text)
}
