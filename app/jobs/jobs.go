// Package jobs defines the queued background jobs.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/notifications"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/pkg/event"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/mail"
	"github.com/shashiranjanraj/bloom/pkg/notification"
	"github.com/shashiranjanraj/bloom/pkg/queue"
)

// Register makes all job types known to the queue. Call once at boot.
func Register() {
	queue.Register("*jobs.ReceiptEmailJob", func() queue.Job { return &ReceiptEmailJob{} })
	queue.Register("*jobs.WelcomeEmailJob", func() queue.Job { return &WelcomeEmailJob{} })
}

// ReceiptEmailJob emails an order receipt to the customer, when the order
// carries an email address.
type ReceiptEmailJob struct {
	OrderID uint `json:"order_id"`
}

func (j *ReceiptEmailJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("receipt job: load order %d: %w", j.OrderID, err)
	}
	if order.CustomerEmail == "" {
		return nil
	}

	body := fmt.Sprintf(
		"<h1>Заказ №%d принят</h1><p>%s, спасибо за заказ!</p>"+
			"<p>Сумма: %.2f руб.<br>Доставка: %s<br>Адрес: %s</p>",
		order.ID, order.CustomerName, order.TotalPrice,
		order.DeliveryTime.Format("02.01.2006 15:04"), order.DeliveryAddress,
	)
	return mail.To(order.CustomerEmail).
		Subject(fmt.Sprintf("Ваш заказ №%d", order.ID)).
		Body(body).
		Send()
}

// WelcomeEmailJob sends the welcome notification after registration.
type WelcomeEmailJob struct {
	UserID uint `json:"user_id"`
}

func (j *WelcomeEmailJob) Handle() error {
	user, err := repositories.NewUserRepository().FindByID(j.UserID)
	if err != nil {
		return fmt.Errorf("welcome job: load user %d: %w", j.UserID, err)
	}
	if errs := notification.Send(user.Email, &notifications.WelcomeNotification{User: user}); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ListenEvents wires the event bus to the jobs: "user.registered" enqueues
// the welcome email. Call once at boot, after Register.
func ListenEvents() {
	event.Listen("user.registered", func(payload interface{}) {
		user, ok := payload.(models.User)
		if !ok {
			return
		}
		if err := queue.Dispatch(&WelcomeEmailJob{UserID: user.ID}); err != nil {
			logger.Warn("welcome email dispatch failed", "user_id", user.ID, "error", err)
		}
	})
}
