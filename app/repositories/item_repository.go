package repositories

import (
	"github.com/quodex/invizo/app/models"
	"gorm.io/gorm"
)

// ItemRepository handles database operations for Item.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create persists a new item.
func (r *ItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// All returns every item, newest first.
func (r *ItemRepository) All() ([]models.Item, error) {
	var items []models.Item
	err := r.db.Order("created_at desc").Find(&items).Error
	return items, err
}

// FindByItemID looks up an item by public id.
func (r *ItemRepository) FindByItemID(itemID string) (models.Item, error) {
	var item models.Item
	err := r.db.Where("item_id = ?", itemID).First(&item).Error
	return item, err
}

// CountByCategory returns how many items reference the category.
func (r *ItemRepository) CountByCategory(categoryID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Delete removes an item row.
func (r *ItemRepository) Delete(item *models.Item) error {
	return r.db.Delete(item).Error
}
