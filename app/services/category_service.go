package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/pkg/cache"
	"github.com/quodex/invizo/pkg/logger"
	"github.com/quodex/invizo/pkg/storage"
	"gorm.io/gorm"
)

const (
	categoryListKey = "catalog:categories"
	catalogCacheTTL = 5 * time.Minute
)

// CategoryService manages menu categories and their images.
type CategoryService struct {
	categories *repositories.CategoryRepository
	items      *repositories.ItemRepository
	disk       storage.Disk
}

func NewCategoryService(categories *repositories.CategoryRepository, items *repositories.ItemRepository, disk storage.Disk) *CategoryService {
	return &CategoryService{categories: categories, items: items, disk: disk}
}

// CreateCategoryInput is the JSON part of the multipart create request.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=1000"`
	BgColor     string `json:"bgColor" validate:"nullable,max=50"`
}

// Create uploads the image first, then persists the record. A failed
// upload means no category is created at all.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput, filename string, content []byte) (models.Category, error) {
	if len(content) == 0 {
		return models.Category{}, wrap(ErrInvalid, fmt.Errorf("image file is required"))
	}

	key := uploadKey(filename)
	if err := s.disk.Put(ctx, key, content); err != nil {
		return models.Category{}, wrap(ErrUpstream, fmt.Errorf("store image: %w", err))
	}

	category := models.Category{
		CategoryID:  uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		BgColor:     in.BgColor,
		ImgURL:      s.disk.URL(key),
	}
	if err := s.categories.Create(&category); err != nil {
		// Best effort: do not leave an orphaned upload behind.
		_ = s.disk.Delete(ctx, key)
		return models.Category{}, fmt.Errorf("category: create: %w", err)
	}

	_ = cache.Del(categoryListKey)
	logger.Info("category: created", "category_id", category.CategoryID, "name", category.Name)
	return category, nil
}

// List returns all categories, served from cache when warm.
func (s *CategoryService) List() ([]models.Category, error) {
	var cached []models.Category
	if cache.Get(categoryListKey, &cached) {
		return cached, nil
	}

	categories, err := s.categories.All()
	if err != nil {
		return nil, fmt.Errorf("category: list: %w", err)
	}

	_ = cache.Set(categoryListKey, categories, catalogCacheTTL)
	return categories, nil
}

// Get returns a single category by public id.
func (s *CategoryService) Get(categoryID string) (models.Category, error) {
	category, err := s.categories.FindByCategoryID(categoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, wrap(ErrNotFound, fmt.Errorf("category %s", categoryID))
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("category: get: %w", err)
	}
	return category, nil
}

// Delete removes a category and its image. Categories that still have
// items cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, categoryID string) error {
	category, err := s.Get(categoryID)
	if err != nil {
		return err
	}

	count, err := s.items.CountByCategory(categoryID)
	if err != nil {
		return fmt.Errorf("category: count items: %w", err)
	}
	if count > 0 {
		return wrap(ErrConflict, fmt.Errorf("category %s still has %d items", categoryID, count))
	}

	if category.ImgURL != "" {
		if err := s.disk.Delete(ctx, storage.KeyFromURL(category.ImgURL)); err != nil {
			return wrap(ErrUpstream, fmt.Errorf("delete image: %w", err))
		}
	}

	if err := s.categories.Delete(&category); err != nil {
		return fmt.Errorf("category: delete: %w", err)
	}

	_ = cache.Del(categoryListKey)
	logger.Info("category: deleted", "category_id", categoryID)
	return nil
}

// uploadKey derives a collision-free storage key that keeps the original
// file extension.
func uploadKey(filename string) string {
	return "uploads/" + uuid.NewString() + filepath.Ext(filename)
}
