package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/pkg/cache"
	"github.com/quodex/invizo/pkg/logger"
	"github.com/quodex/invizo/pkg/storage"
	"gorm.io/gorm"
)

const itemListKey = "catalog:items"

// ItemService manages sellable items and their images.
type ItemService struct {
	items      *repositories.ItemRepository
	categories *repositories.CategoryRepository
	disk       storage.Disk
}

func NewItemService(items *repositories.ItemRepository, categories *repositories.CategoryRepository, disk storage.Disk) *ItemService {
	return &ItemService{items: items, categories: categories, disk: disk}
}

// CreateItemInput is the JSON part of the multipart create request.
type CreateItemInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"nullable,max=1000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	CategoryID  string  `json:"categoryId" validate:"required"`
}

// Create uploads the image, checks the category exists, and persists the
// item.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput, filename string, content []byte) (models.Item, error) {
	if len(content) == 0 {
		return models.Item{}, wrap(ErrInvalid, fmt.Errorf("image file is required"))
	}

	if _, err := s.categories.FindByCategoryID(in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Item{}, wrap(ErrInvalid, fmt.Errorf("category %s does not exist", in.CategoryID))
		}
		return models.Item{}, fmt.Errorf("item: check category: %w", err)
	}

	key := uploadKey(filename)
	if err := s.disk.Put(ctx, key, content); err != nil {
		return models.Item{}, wrap(ErrUpstream, fmt.Errorf("store image: %w", err))
	}

	item := models.Item{
		ItemID:      uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImgURL:      s.disk.URL(key),
		CategoryID:  in.CategoryID,
	}
	if err := s.items.Create(&item); err != nil {
		_ = s.disk.Delete(ctx, key)
		return models.Item{}, fmt.Errorf("item: create: %w", err)
	}

	_ = cache.Del(itemListKey)
	logger.Info("item: created", "item_id", item.ItemID, "name", item.Name, "category_id", item.CategoryID)
	return item, nil
}

// List returns all items, served from cache when warm.
func (s *ItemService) List() ([]models.Item, error) {
	var cached []models.Item
	if cache.Get(itemListKey, &cached) {
		return cached, nil
	}

	items, err := s.items.All()
	if err != nil {
		return nil, fmt.Errorf("item: list: %w", err)
	}

	_ = cache.Set(itemListKey, items, 5*time.Minute)
	return items, nil
}

// Get returns a single item by public id.
func (s *ItemService) Get(itemID string) (models.Item, error) {
	item, err := s.items.FindByItemID(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Item{}, wrap(ErrNotFound, fmt.Errorf("item %s", itemID))
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("item: get: %w", err)
	}
	return item, nil
}

// Delete removes an item. The image is deleted first; if that fails the
// record is kept so the catalog never points at a file that may still
// exist.
func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	item, err := s.items.FindByItemID(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, fmt.Errorf("item %s", itemID))
	}
	if err != nil {
		return fmt.Errorf("item: get: %w", err)
	}

	if item.ImgURL != "" {
		if err := s.disk.Delete(ctx, storage.KeyFromURL(item.ImgURL)); err != nil {
			return wrap(ErrUpstream, fmt.Errorf("delete image: %w", err))
		}
	}

	if err := s.items.Delete(&item); err != nil {
		return fmt.Errorf("item: delete: %w", err)
	}

	_ = cache.Del(itemListKey)
	logger.Info("item: deleted", "item_id", itemID)
	return nil
}
