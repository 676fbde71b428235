package repositories

import (
	"time"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/pkg/orm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateWithItems persists the order header together with its items in a
// single transaction; a partially written order is never observable.
func (r *OrderRepository) CreateWithItems(order *models.Order) error {
	return orm.Transaction(func(tx *orm.Query) error {
		return tx.Create(order)
	})
}

// FindByID returns an order with its items and their products preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// FindForChat returns the order only when it belongs to the given Telegram
// chat. Anything else reads as not found.
func (r *OrderRepository) FindForChat(id uint, chatID int64) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND telegram_chat_id = ?", id, chatID).
		First(&order)
	return order, err
}

// ByUser returns a user's orders, newest first.
func (r *OrderRepository) ByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// ByStatus returns orders in the given status, newest first. An empty status
// returns everything.
func (r *OrderRepository) ByStatus(status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Preload("Items")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	pagination, err := q.Order("created_at desc").GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// UpcomingDeliveries returns orders in the given status whose delivery time
// falls inside [from, to). Used by the delivery-reminder task.
func (r *OrderRepository) UpcomingDeliveries(status models.OrderStatus, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("status = ? AND delivery_time >= ? AND delivery_time < ?", status, from, to).
		Get(&orders)
	return orders, err
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	return orm.DB().Save(order)
}
