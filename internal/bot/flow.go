// Package bot implements the Telegram ordering channel: a per-chat
// conversation state machine plus the polling loop that drives it.
package bot

import (
	"regexp"
	"strconv"
	"strings"
)

// State is the conversation position within a chat.
type State string

const (
	StateIdle                State = ""
	StateAwaitingName        State = "awaiting_name"
	StateAwaitingPhone       State = "awaiting_phone"
	StateAwaitingAddress     State = "awaiting_address"
	StateAwaitingBouquet     State = "awaiting_bouquet_description"
	StateAwaitingOrderNumber State = "awaiting_order_number"
)

// Conversation is the explicit per-chat state value. It is stored in the
// session map between turns and cleared on completion or /cancel.
type Conversation struct {
	State       State
	Name        string
	Phone       string
	Address     string
	Description string
}

// Action tells the caller what side effect the completed turn requires.
type Action int

const (
	ActionNone Action = iota
	// ActionCreateOrder: the conversation collected all four fields and an
	// order must be created from them.
	ActionCreateOrder
	// ActionLookupOrder: OrderID holds the number to look up for this chat.
	ActionLookupOrder
)

// Turn is the outcome of feeding one message into the state machine.
type Turn struct {
	Reply   string
	Action  Action
	OrderID uint
}

var phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)

// Prompts and re-prompts, in the order the flow asks them.
const (
	replyGreeting    = "Привет, %s! Я бот для заказа цветов. Используйте /order, чтобы начать новый заказ."
	replyStartOrder  = "Давайте оформим заказ! Введите ваше имя:"
	replyBadName     = "Имя должно содержать не менее 2 символов. Введите ваше имя:"
	replyAskPhone    = "Введите ваш номер телефона:"
	replyBadPhone    = "Введите корректный номер телефона:"
	replyAskAddress  = "Введите адрес доставки:"
	replyBadAddress  = "Адрес должен содержать не менее 5 символов. Введите адрес доставки:"
	replyAskBouquet  = "Опишите желаемый букет (например: розы 15 шт):"
	replyStartStatus = "Введите номер заказа:"
	replyBadNumber   = "Номер заказа должен быть числом. Введите номер заказа:"
	replyCancelled   = "Оформление отменено. Используйте /order, чтобы начать заново."
	replyIdle        = "Я вас не понял. Используйте /order для нового заказа или /status для проверки статуса."
	replyNotFound    = "Заказ не найден."
	replyCreateFail  = "К сожалению, не удалось оформить заказ. Попробуйте позже."
)

// StartOrder begins the ordering dialogue, discarding any prior state.
func StartOrder() (Conversation, Turn) {
	return Conversation{State: StateAwaitingName}, Turn{Reply: replyStartOrder}
}

// StartStatus begins the status-lookup dialogue.
func StartStatus() (Conversation, Turn) {
	return Conversation{State: StateAwaitingOrderNumber}, Turn{Reply: replyStartStatus}
}

// Cancel clears the conversation from any state.
func Cancel() (Conversation, Turn) {
	return Conversation{}, Turn{Reply: replyCancelled}
}

// Step feeds one plain-text message into the conversation. Invalid input
// re-prompts and leaves the state unchanged; a finished ordering flow returns
// ActionCreateOrder with the collected fields still on the conversation.
func Step(c Conversation, input string) (Conversation, Turn) {
	text := strings.TrimSpace(input)

	switch c.State {
	case StateAwaitingName:
		if len([]rune(text)) < 2 {
			return c, Turn{Reply: replyBadName}
		}
		c.Name = text
		c.State = StateAwaitingPhone
		return c, Turn{Reply: replyAskPhone}

	case StateAwaitingPhone:
		if len(text) < 5 || !phonePattern.MatchString(text) {
			return c, Turn{Reply: replyBadPhone}
		}
		c.Phone = text
		c.State = StateAwaitingAddress
		return c, Turn{Reply: replyAskAddress}

	case StateAwaitingAddress:
		if len([]rune(text)) < 5 {
			return c, Turn{Reply: replyBadAddress}
		}
		c.Address = text
		c.State = StateAwaitingBouquet
		return c, Turn{Reply: replyAskBouquet}

	case StateAwaitingBouquet:
		c.Description = text
		return c, Turn{Action: ActionCreateOrder}

	case StateAwaitingOrderNumber:
		id, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return c, Turn{Reply: replyBadNumber}
		}
		return Conversation{}, Turn{Action: ActionLookupOrder, OrderID: uint(id)}
	}

	return c, Turn{Reply: replyIdle}
}
