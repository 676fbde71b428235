package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusInProgress OrderStatus = "in_progress"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// StatusSequence is the canonical forward progression, used for the
// progress timeline. Cancelled sits outside the sequence.
var StatusSequence = []OrderStatus{
	StatusNew, StatusConfirmed, StatusProcessing, StatusInProgress, StatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	StatusNew:        "Новый",
	StatusConfirmed:  "Подтвержден",
	StatusProcessing: "Собирается",
	StatusInProgress: "В процессе доставки",
	StatusDelivered:  "Доставлен",
	StatusCancelled:  "Отменен",
}

// Valid reports whether s is one of the six known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable (Russian) status name.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// SequenceIndex returns the position of s in the forward progression, or -1
// for cancelled/unknown.
func (s OrderStatus) SequenceIndex() int {
	for i, st := range StatusSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// Payment methods accepted at checkout. Real payment processing is a stub;
// the method is recorded on the order only.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Order is the order header. Exactly one of UserID (authenticated checkout)
// and SessionKey (guest checkout) is set; TelegramChatID links the order to
// the chat that should receive status notifications.
type Order struct {
	gorm.Model
	UserID          *uint       `gorm:"index" json:"user_id,omitempty"`
	SessionKey      *string     `gorm:"size:64;index" json:"-"`
	TelegramChatID  *int64      `gorm:"index" json:"telegram_chat_id,omitempty"`
	Status          OrderStatus `gorm:"size:20;not null;default:new;index" json:"status"`
	PaymentMethod   string      `gorm:"size:20;not null;default:cash" json:"payment_method"`
	CustomerName    string      `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone   string      `gorm:"size:20;not null" json:"customer_phone"`
	CustomerEmail   string      `gorm:"size:255" json:"customer_email"`
	DeliveryAddress string      `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryTime    time.Time   `gorm:"not null" json:"delivery_time"`
	Comment         string      `gorm:"type:text" json:"comment"`
	TotalPrice      float64     `gorm:"not null;default:0" json:"total_price"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is a single order line with the price locked at order time.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`

	Product Product `json:"product,omitempty"`
}

// LineTotal returns quantity times the locked price.
func (i OrderItem) LineTotal() float64 { return i.Price * float64(i.Quantity) }

// CanBeCancelled reports whether the order may still be cancelled. Orders
// already being delivered, delivered, or cancelled cannot.
func (o *Order) CanBeCancelled() bool {
	switch o.Status {
	case StatusNew, StatusConfirmed, StatusProcessing:
		return true
	}
	return false
}

// ItemsTotal sums the line totals.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.LineTotal()
	}
	return total
}
