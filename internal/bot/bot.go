package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/config"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/notification"
)

// Bot drives the Telegram ordering channel. One Bot instance serves all
// chats; per-chat conversation state lives in the sessions map.
type Bot struct {
	api      *tgbotapi.BotAPI
	orders   *services.OrderService
	catalog  *services.CatalogService
	notifier *services.Notifier
	repo     *repositories.OrderRepository

	mu       sync.Mutex
	sessions map[int64]Conversation
}

// New builds the bot from TELEGRAM_TOKEN and registers it as the transport
// behind the telegram notification channel.
func New() (*Bot, error) {
	token := config.TelegramToken()
	if token == "" {
		return nil, fmt.Errorf("bot: TELEGRAM_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: connect: %w", err)
	}

	b := &Bot{
		api:      api,
		orders:   services.NewOrderService(),
		catalog:  services.NewCatalogService(),
		notifier: services.NewNotifier(),
		repo:     repositories.NewOrderRepository(),
		sessions: make(map[int64]Conversation),
	}
	notification.SetTelegramSender(b)
	return b, nil
}

// SendMessage implements notification.TelegramSender.
func (b *Bot) SendMessage(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// reply sends text to the chat, logging delivery failures.
func (b *Bot) reply(chatID int64, text string) {
	if err := b.SendMessage(chatID, text); err != nil {
		logger.Error("bot: send reply", "chat_id", chatID, "error", err)
	}
}

// Run polls for updates until ctx is cancelled. Updates arrive on a single
// channel, so turns for one chat are never handled concurrently.
func (b *Bot) Run(ctx context.Context) error {
	logger.Info("bot started", "username", b.api.Self.UserName)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			b.handle(update)
		}
	}
}

func (b *Bot) handle(update tgbotapi.Update) {
	msg := update.Message
	// From is nil for channel posts; the ordering flow is chat-only.
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID

	var conv Conversation
	var turn Turn

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.reply(chatID, fmt.Sprintf(replyGreeting, msg.From.FirstName))
		return
	case msg.IsCommand() && msg.Command() == "order":
		conv, turn = StartOrder()
	case msg.IsCommand() && msg.Command() == "status":
		conv, turn = StartStatus()
	case msg.IsCommand() && msg.Command() == "cancel":
		conv, turn = Cancel()
	case msg.IsCommand():
		b.reply(chatID, replyIdle)
		return
	default:
		conv, turn = Step(b.conversation(chatID), msg.Text)
	}

	switch turn.Action {
	case ActionCreateOrder:
		b.completeOrder(chatID, conv)
		b.setConversation(chatID, Conversation{})
		return
	case ActionLookupOrder:
		b.reply(chatID, b.renderStatus(turn.OrderID, chatID))
		b.setConversation(chatID, Conversation{})
		return
	}

	b.setConversation(chatID, conv)
	b.reply(chatID, turn.Reply)
}

// completeOrder turns the collected conversation into an order with the
// placeholder bouquet product, a fixed now+2h delivery slot and cash payment.
func (b *Bot) completeOrder(chatID int64, conv Conversation) {
	product, err := b.catalog.PlaceholderProduct()
	if err != nil {
		logger.Error("bot: placeholder product", "error", err)
		b.reply(chatID, replyCreateFail)
		return
	}

	order, err := b.orders.Create(buildOrderRequest(chatID, conv, product))
	if err != nil {
		logger.Error("bot: create order", "chat_id", chatID, "error", err)
		b.reply(chatID, replyCreateFail)
		return
	}

	b.notifier.Notify(order)
}

// buildOrderRequest maps a finished conversation onto the shared creation
// contract. Bot orders are guest orders keyed by the chat.
func buildOrderRequest(chatID int64, conv Conversation, product models.Product) services.CreateOrderRequest {
	sessionKey := fmt.Sprintf("tg:%d", chatID)
	return services.CreateOrderRequest{
		SessionKey:      &sessionKey,
		TelegramChatID:  &chatID,
		CustomerName:    conv.Name,
		CustomerPhone:   conv.Phone,
		CustomerEmail:   "",
		DeliveryAddress: conv.Address,
		DeliveryTime:    time.Now().Add(2 * time.Hour),
		PaymentMethod:   models.PaymentCash,
		Comment:         conv.Description,
		Items: []services.OrderLine{
			{ProductID: product.ID, Quantity: 1, Price: product.Price},
		},
	}
}

// renderStatus builds the /status summary. Unknown ids and orders belonging
// to other chats both come back as the same not-found text.
func (b *Bot) renderStatus(orderID uint, chatID int64) string {
	order, err := b.repo.FindForChat(orderID, chatID)
	if err != nil {
		return replyNotFound
	}
	return StatusSummary(order)
}

// StatusSummary renders the status card sent in reply to /status.
func StatusSummary(order models.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Заказ №%d\n", order.ID)
	fmt.Fprintf(&sb, "Статус: %s\n", order.Status.Label())
	fmt.Fprintf(&sb, "%s\n\n", progressTimeline(order.Status))
	fmt.Fprintf(&sb, "Имя: %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "Телефон: %s\n", order.CustomerPhone)
	fmt.Fprintf(&sb, "Адрес: %s\n", order.DeliveryAddress)
	fmt.Fprintf(&sb, "Оформлен: %s\n", order.CreatedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&sb, "Сумма: %.2f руб.", order.TotalPrice)
	if order.Comment != "" {
		fmt.Fprintf(&sb, "\nКомментарий: %s", order.Comment)
	}
	return sb.String()
}

// progressTimeline marks each step of the canonical forward sequence.
// Cancelled orders sit outside the sequence and get a single marker.
func progressTimeline(status models.OrderStatus) string {
	if status == models.StatusCancelled {
		return "❌ " + status.Label()
	}

	current := status.SequenceIndex()
	steps := make([]string, 0, len(models.StatusSequence))
	for i, st := range models.StatusSequence {
		mark := "○"
		if i <= current {
			mark = "●"
		}
		steps = append(steps, mark+" "+st.Label())
	}
	return strings.Join(steps, "  ")
}

func (b *Bot) conversation(chatID int64) Conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[chatID]
}

func (b *Bot) setConversation(chatID int64, c Conversation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.State == StateIdle {
		delete(b.sessions, chatID)
		return
	}
	b.sessions[chatID] = c
}
