package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatNote struct {
	chatID int64
	text   string
}

func (n *chatNote) Via() []string { return []string{"telegram"} }
func (n *chatNote) ToTelegram() TelegramData {
	return TelegramData{ChatID: n.chatID, Text: n.text}
}

type recordingSender struct {
	sent []TelegramData
	err  error
}

func (s *recordingSender) SendMessage(chatID int64, text string) error {
	s.sent = append(s.sent, TelegramData{ChatID: chatID, Text: text})
	return s.err
}

func TestTelegramChannelDelivers(t *testing.T) {
	sender := &recordingSender{}
	SetTelegramSender(sender)
	defer SetTelegramSender(nil)

	errs := Send("", &chatNote{chatID: 42, text: "Заказ №1 принят"})
	assert.Empty(t, errs)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Equal(t, "Заказ №1 принят", sender.sent[0].Text)
}

func TestTelegramChannelWithoutSender(t *testing.T) {
	SetTelegramSender(nil)

	errs := Send("", &chatNote{chatID: 42, text: "x"})
	assert.Len(t, errs, 1)
}

func TestTelegramChannelRequiresChatID(t *testing.T) {
	SetTelegramSender(&recordingSender{})
	defer SetTelegramSender(nil)

	errs := Send("", &chatNote{chatID: 0, text: "x"})
	assert.Len(t, errs, 1)
}

type badChannelNote struct{}

func (n *badChannelNote) Via() []string { return []string{"pigeon"} }

func TestUnknownChannelErrors(t *testing.T) {
	errs := Send("", &badChannelNote{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "unknown channel")
}

type wrongShapeNote struct{}

func (n *wrongShapeNote) Via() []string { return []string{"telegram"} }

func TestChannelWithoutPayloadErrors(t *testing.T) {
	errs := Send("", &wrongShapeNote{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Telegramable")
}

func TestWebhookRequiresURL(t *testing.T) {
	err := sendWebhook(WebhookData{})
	assert.Error(t, err)
}
