package repository

import (
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	BulkCreate(items []model.Item, batchSize int) error
	FindByID(id uint) (*model.Item, error)
	FindAll() ([]model.Item, error)
	FindAllPaged(pageNo, pageSize int) ([]model.Item, int64, error)
	FindByCategory(category model.ItemCategory) ([]model.Item, error)
	FindByCategoryPaged(category model.ItemCategory, pageNo, pageSize int) ([]model.Item, int64, error)
	FindByPrice(price float64) ([]model.Item, error)
	FindByPriceRange(minPrice, maxPrice float64) ([]model.Item, error)
	FindByCategoryAndPriceRange(category model.ItemCategory, minPrice, maxPrice float64) ([]model.Item, error)
	FindByNamePaged(keyword string, pageNo, pageSize int) ([]model.Item, int64, error)
	FindByVendorID(vendorID uint) ([]model.Item, error)
	FindByVendorIDPaged(vendorID uint, pageNo, pageSize int) ([]model.Item, int64, error)
	FindAvailable() ([]model.Item, error)
	FindAvailablePaged(pageNo, pageSize int) ([]model.Item, int64, error)
	Update(item *model.Item) error
	Delete(id uint) error
	CountByVendorID(vendorID uint) (int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	logger.Debug("Creating item in database", map[string]interface{}{
		"name":      item.Name,
		"vendor_id": item.VendorID,
		"category":  item.Category,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create item in database", err, map[string]interface{}{
			"name":      item.Name,
			"vendor_id": item.VendorID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) BulkCreate(items []model.Item, batchSize int) error {
	logger.Debug("Bulk creating items in database", map[string]interface{}{
		"count":      len(items),
		"batch_size": batchSize,
	})
	return r.db.CreateInBatches(items, batchSize).Error
}

func (r *itemRepository) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindAll() ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// paged runs a filtered query twice on fresh chains: once for the total
// match count across all pages and once for the requested page. Page
// numbers are 0-based.
func (r *itemRepository) paged(filter func(*gorm.DB) *gorm.DB, pageNo, pageSize int) ([]model.Item, int64, error) {
	var total int64
	if err := filter(r.db.Model(&model.Item{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Item
	err := filter(r.db).Offset(pageNo * pageSize).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) FindAllPaged(pageNo, pageSize int) ([]model.Item, int64, error) {
	return r.paged(func(q *gorm.DB) *gorm.DB { return q }, pageNo, pageSize)
}

func (r *itemRepository) FindByCategory(category model.ItemCategory) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("category = ?", category).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByCategoryPaged(category model.ItemCategory, pageNo, pageSize int) ([]model.Item, int64, error) {
	return r.paged(func(q *gorm.DB) *gorm.DB {
		return q.Where("category = ?", category)
	}, pageNo, pageSize)
}

func (r *itemRepository) FindByPrice(price float64) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("mrp_price = ?", price).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByPriceRange(minPrice, maxPrice float64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.Where("mrp_price >= ? AND mrp_price <= ?", minPrice, maxPrice).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByCategoryAndPriceRange(category model.ItemCategory, minPrice, maxPrice float64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.Where("category = ? AND mrp_price >= ? AND mrp_price <= ?", category, minPrice, maxPrice).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByNamePaged(keyword string, pageNo, pageSize int) ([]model.Item, int64, error) {
	// LOWER() keeps the substring match case-insensitive on both
	// postgres and the sqlite test database.
	return r.paged(func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%")
	}, pageNo, pageSize)
}

func (r *itemRepository) FindByVendorID(vendorID uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("vendor_id = ?", vendorID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByVendorIDPaged(vendorID uint, pageNo, pageSize int) ([]model.Item, int64, error) {
	return r.paged(func(q *gorm.DB) *gorm.DB {
		return q.Where("vendor_id = ?", vendorID)
	}, pageNo, pageSize)
}

func (r *itemRepository) FindAvailable() ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("quantity > 0").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindAvailablePaged(pageNo, pageSize int) ([]model.Item, int64, error) {
	return r.paged(func(q *gorm.DB) *gorm.DB {
		return q.Where("quantity > 0")
	}, pageNo, pageSize)
}

func (r *itemRepository) Update(item *model.Item) error {
	logger.Debug("Updating item in database", map[string]interface{}{
		"item_id": item.ID,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) Delete(id uint) error {
	logger.Debug("Deleting item from database", map[string]interface{}{
		"item_id": id,
	})

	if err := r.db.Delete(&model.Item{}, id).Error; err != nil {
		logger.Error("Failed to delete item from database", err, map[string]interface{}{
			"item_id": id,
		})
		return err
	}
	return nil
}

func (r *itemRepository) CountByVendorID(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Item{}).Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}
