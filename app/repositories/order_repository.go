package repositories

import (
	"time"

	"github.com/quodex/invizo/app/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and its lines.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems persists an order and its lines in one transaction.
func (r *OrderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByOrderID loads an order with its lines by public id.
func (r *OrderRepository) FindByOrderID(orderID string) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	return order, err
}

// LatestFirst returns all orders with lines, newest first.
func (r *OrderRepository) LatestFirst() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at desc").Find(&orders).Error
	return orders, err
}

// Recent returns the newest n orders with lines.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at desc").Limit(n).Find(&orders).Error
	return orders, err
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// DeleteWithItems removes an order and its lines in one transaction.
func (r *OrderRepository) DeleteWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
}

// SumSalesByDate totals the grand total of orders created on day.
func (r *OrderRepository) SumSalesByDate(day time.Time) (float64, error) {
	start, end := dayBounds(day)
	var total struct{ Sum float64 }
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(grand_total), 0) as sum").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&total).Error
	return total.Sum, err
}

// CountByDate counts orders created on day.
func (r *OrderRepository) CountByDate(day time.Time) (int64, error) {
	start, end := dayBounds(day)
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24 * time.Hour)
}
