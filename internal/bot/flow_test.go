package bot

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/services"
)

func TestNameStepLengthGuard(t *testing.T) {
	conv, _ := StartOrder()

	conv, turn := Step(conv, "A")
	assert.Equal(t, StateAwaitingName, conv.State)
	assert.Equal(t, replyBadName, turn.Reply)

	conv, turn = Step(conv, "Al")
	assert.Equal(t, StateAwaitingPhone, conv.State)
	assert.Equal(t, "Al", conv.Name)
	assert.Equal(t, replyAskPhone, turn.Reply)
}

func TestNameStepCountsRunesNotBytes(t *testing.T) {
	conv, _ := StartOrder()

	conv, _ = Step(conv, "Ян")
	assert.Equal(t, StateAwaitingPhone, conv.State)
}

func TestPhoneStepPattern(t *testing.T) {
	conv := Conversation{State: StateAwaitingPhone, Name: "Анна"}

	conv, turn := Step(conv, "abc")
	assert.Equal(t, StateAwaitingPhone, conv.State)
	assert.Equal(t, replyBadPhone, turn.Reply)

	conv, turn = Step(conv, "+7 999 123-45-67")
	assert.Equal(t, StateAwaitingAddress, conv.State)
	assert.Equal(t, "+7 999 123-45-67", conv.Phone)
	assert.Equal(t, replyAskAddress, turn.Reply)
}

func TestPhoneStepRejectsShortInput(t *testing.T) {
	conv := Conversation{State: StateAwaitingPhone}

	conv, _ = Step(conv, "123")
	assert.Equal(t, StateAwaitingPhone, conv.State)
	assert.Empty(t, conv.Phone)
}

func TestAddressStepLengthGuard(t *testing.T) {
	conv := Conversation{State: StateAwaitingAddress}

	conv, turn := Step(conv, "дом")
	assert.Equal(t, StateAwaitingAddress, conv.State)
	assert.Equal(t, replyBadAddress, turn.Reply)

	conv, _ = Step(conv, "Москва, ул. Ленина 1")
	assert.Equal(t, StateAwaitingBouquet, conv.State)
}

func TestCancelClearsAnyState(t *testing.T) {
	conv, turn := Cancel()
	assert.Equal(t, StateIdle, conv.State)
	assert.Equal(t, replyCancelled, turn.Reply)
}

func TestOrderNumberStep(t *testing.T) {
	conv, _ := StartStatus()

	conv, turn := Step(conv, "abc")
	assert.Equal(t, StateAwaitingOrderNumber, conv.State)
	assert.Equal(t, replyBadNumber, turn.Reply)

	conv, turn = Step(conv, "42")
	assert.Equal(t, StateIdle, conv.State)
	assert.Equal(t, ActionLookupOrder, turn.Action)
	assert.Equal(t, uint(42), turn.OrderID)
}

func TestIdleInputGetsHelp(t *testing.T) {
	_, turn := Step(Conversation{}, "букет роз")
	assert.Equal(t, replyIdle, turn.Reply)
	assert.Equal(t, ActionNone, turn.Action)
}

type memOrderStore struct {
	orders map[uint]models.Order
	nextID uint
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[uint]models.Order), nextID: 1}
}

func (s *memOrderStore) CreateWithItems(order *models.Order) error {
	order.ID = s.nextID
	s.nextID++
	s.orders[order.ID] = *order
	return nil
}

func (s *memOrderStore) FindByID(id uint) (models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, assert.AnError
	}
	return order, nil
}

func (s *memOrderStore) Save(order *models.Order) error {
	s.orders[order.ID] = *order
	return nil
}

func TestConversationProducesOneOrder(t *testing.T) {
	conv, _ := StartOrder()

	var turn Turn
	conv, turn = Step(conv, "Анна")
	require.Equal(t, StateAwaitingPhone, conv.State)
	conv, turn = Step(conv, "+79991234567")
	require.Equal(t, StateAwaitingAddress, conv.State)
	conv, turn = Step(conv, "Москва, ул. Ленина 1")
	require.Equal(t, StateAwaitingBouquet, conv.State)
	conv, turn = Step(conv, "розы 15 шт")
	require.Equal(t, ActionCreateOrder, turn.Action)

	placeholder := models.Product{Name: "Индивидуальный букет", Price: 2000}
	placeholder.ID = 9

	req := buildOrderRequest(77, conv, placeholder)
	assert.Equal(t, "Анна", req.CustomerName)
	assert.Equal(t, "+79991234567", req.CustomerPhone)
	assert.Equal(t, "Москва, ул. Ленина 1", req.DeliveryAddress)
	assert.Equal(t, "розы 15 шт", req.Comment)
	assert.Equal(t, models.PaymentCash, req.PaymentMethod)
	require.NotNil(t, req.TelegramChatID)
	assert.Equal(t, int64(77), *req.TelegramChatID)
	require.NotNil(t, req.SessionKey)
	assert.Nil(t, req.UserID)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), req.DeliveryTime, time.Minute)

	store := newMemOrderStore()
	order, err := services.NewOrderServiceWith(store).Create(req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, uint(9), order.Items[0].ProductID)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 2000.0, order.TotalPrice)
	assert.Len(t, store.orders, 1)
}

func TestStatusSummaryRendersTimeline(t *testing.T) {
	order := models.Order{
		Status:          models.StatusProcessing,
		CustomerName:    "Анна",
		CustomerPhone:   "+79991234567",
		DeliveryAddress: "Москва, ул. Ленина 1",
		TotalPrice:      2000,
		Comment:         "розы 15 шт",
	}
	order.ID = 5
	order.CreatedAt = time.Date(2025, 3, 8, 12, 30, 0, 0, time.UTC)

	text := StatusSummary(order)
	assert.Contains(t, text, "Заказ №5")
	assert.Contains(t, text, "Статус: Собирается")
	assert.Contains(t, text, "● Собирается")
	assert.Contains(t, text, "○ Доставлен")
	assert.Contains(t, text, "Оформлен: 08.03.2025 12:30")
	assert.Contains(t, text, "Сумма: 2000.00 руб.")
	assert.Contains(t, text, "Комментарий: розы 15 шт")
}

func TestStatusSummaryCancelled(t *testing.T) {
	order := models.Order{Status: models.StatusCancelled}
	order.ID = 3

	assert.Contains(t, StatusSummary(order), "❌ Отменен")
}

func TestHandleIgnoresChannelPosts(t *testing.T) {
	b := &Bot{sessions: make(map[int64]Conversation)}

	// Channel posts carry no From; the update must be dropped before any
	// reply is attempted (b.api is nil here and would panic otherwise).
	b.handle(tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "/start",
		Chat: &tgbotapi.Chat{ID: 1},
	}})

	assert.Empty(t, b.sessions)
}
