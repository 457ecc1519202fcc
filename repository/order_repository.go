package repository

import (
	"time"

	"foodhub/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail preloads everything the order screens show.
func (r *OrderRepository) GetOrderDetail(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("OrderStatus").
		Preload("OrderItems").
		Preload("OrderItems.Food").
		Preload("OrderItems.Food.Restaurant").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID         uint            `json:"id"`
	Total      decimal.Decimal `json:"total"`
	StatusName string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Table("orders AS o").
		Select("o.id, o.total, os.status_name, o.created_at").
		Joins("JOIN order_statuses os ON os.id = o.order_status_id").
		Where("o.user_id = ? AND o.deleted_at IS NULL", userID).
		Order("o.id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListAllOrders(statusID *uint, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := r.DB.Model(&entity.Order{})
	if statusID != nil && *statusID != 0 {
		db = db.Where("order_status_id = ?", *statusID)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []entity.Order
	err := db.Preload("OrderStatus").Preload("User").
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

// ListOrdersForRestaurant joins order lines through food ownership: a
// restaurant sees every order containing at least one of its foods.
func (r *OrderRepository) ListOrdersForRestaurant(restID uint, statusID *uint, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	joined := func() *gorm.DB {
		q := r.DB.Table("orders AS o").
			Joins("JOIN order_items oi ON oi.order_id = o.id").
			Joins("JOIN foods f ON f.id = oi.food_id").
			Where("f.restaurant_id = ? AND o.deleted_at IS NULL", restID)
		if statusID != nil && *statusID != 0 {
			q = q.Where("o.order_status_id = ?", *statusID)
		}
		return q
	}

	var total int64
	if err := joined().Distinct("o.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	if err := joined().Distinct().
		Order("o.id DESC").Limit(limit).Offset(offset).
		Pluck("o.id", &ids).Error; err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return nil, total, nil
	}

	var orders []entity.Order
	err := r.DB.Preload("OrderStatus").Preload("User").
		Where("id IN ?", ids).Order("id DESC").
		Find(&orders).Error
	return orders, total, err
}

// ContainsRestaurantFood reports whether the order has at least one line
// owned by the restaurant. Used for the partner status-update permission.
func (r *OrderRepository) ContainsRestaurantFood(orderID, restID uint) (bool, error) {
	var cnt int64
	err := r.DB.Table("order_items AS oi").
		Joins("JOIN foods f ON f.id = oi.food_id").
		Where("oi.order_id = ? AND f.restaurant_id = ?", orderID, restID).
		Count(&cnt).Error
	return cnt > 0, err
}

// UpdateStatusGuard flips the status only if the order is still in the
// expected from-state. Returns rows affected; 0 means the precondition no
// longer held.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromID, toID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Update("order_status_id", toID)
	return res.RowsAffected, res.Error
}

// GetOrderStatusID reads the current status inside the caller's
// transaction, for deciding what a failed guard means.
func (r *OrderRepository) GetOrderStatusID(tx *gorm.DB, orderID uint) (uint, error) {
	var row struct{ OrderStatusID uint }
	err := tx.Model(&entity.Order{}).
		Select("order_status_id").Where("id = ?", orderID).First(&row).Error
	return row.OrderStatusID, err
}

func (r *OrderRepository) DeleteOrder(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, orderID).Error
}

// ---------------- Lookups ----------------

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}

func (r *OrderRepository) GetStatusNameByID(id uint) (string, error) {
	var row struct{ StatusName string }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("status_name").Where("id = ?", id).First(&row).Error
	return row.StatusName, err
}

// HasDeliveredOrderWithFood backs the feedback gate: the user must have a
// Delivered order containing the food.
func (r *OrderRepository) HasDeliveredOrderWithFood(userID, foodID, deliveredID uint) (bool, error) {
	var cnt int64
	err := r.DB.Table("orders AS o").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Where("o.user_id = ? AND oi.food_id = ? AND o.order_status_id = ? AND o.deleted_at IS NULL",
			userID, foodID, deliveredID).
		Count(&cnt).Error
	return cnt > 0, err
}
