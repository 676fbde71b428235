package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bloom/pkg/notification"
)

func TestNewSenderRequiresToken(t *testing.T) {
	_, err := NewSender("")
	assert.Error(t, err)
}

// The HTTP server installs a Sender as its notification transport, so the
// type has to satisfy the channel contract.
func TestSenderIsTelegramTransport(t *testing.T) {
	var s notification.TelegramSender = &Sender{}
	assert.NotNil(t, s)
}
