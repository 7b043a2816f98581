package repositories

import (
	"github.com/quodex/invizo/app/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// All returns every category, newest first.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("created_at desc").Find(&categories).Error
	return categories, err
}

// FindByCategoryID looks up a category by public id.
func (r *CategoryRepository) FindByCategoryID(categoryID string) (models.Category, error) {
	var category models.Category
	err := r.db.Where("category_id = ?", categoryID).First(&category).Error
	return category, err
}

// Delete removes a category row.
func (r *CategoryRepository) Delete(category *models.Category) error {
	return r.db.Delete(category).Error
}
