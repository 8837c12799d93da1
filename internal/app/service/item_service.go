package service

import (
	"errors"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrNotVendor       = errors.New("user must have VENDOR role to manage items")
	ErrInvalidCategory = errors.New("invalid item category")
)

// ItemInput carries the writable item fields for create and update.
type ItemInput struct {
	Name        string
	Image       string
	Description string
	MrpPrice    float64
	Quantity    int64
	Category    model.ItemCategory
}

// PagedItems is the envelope for every paginated catalog query: one page of
// items plus the total match count across all pages, so callers can compute
// ceil(totalItems/pageSize) pages.
type PagedItems struct {
	Items      []model.Item `json:"items"`
	TotalItems int64        `json:"totalItems"`
}

type ItemService interface {
	Add(input ItemInput, vendorID uint) (*model.Item, error)
	GetByID(id uint) (*model.Item, error)
	Update(itemID uint, input ItemInput) (*model.Item, error)
	UpdateQuantity(itemID uint, quantity int64) (*model.Item, error)
	Delete(id uint) error
	GetAll() ([]model.Item, error)
	GetAllPaged(pageNo, pageSize int) (*PagedItems, error)
	GetByCategory(category model.ItemCategory) ([]model.Item, error)
	GetByCategoryPaged(category model.ItemCategory, pageNo, pageSize int) (*PagedItems, error)
	GetByPrice(price float64) ([]model.Item, error)
	GetByPriceRange(minPrice, maxPrice float64) ([]model.Item, error)
	GetByCategoryAndPriceRange(category model.ItemCategory, minPrice, maxPrice float64) ([]model.Item, error)
	SearchByName(keyword string, pageNo, pageSize int) (*PagedItems, error)
	GetByVendor(vendorID uint) ([]model.Item, error)
	GetByVendorPaged(vendorID uint, pageNo, pageSize int) (*PagedItems, error)
	GetAvailable() ([]model.Item, error)
	GetAvailablePaged(pageNo, pageSize int) (*PagedItems, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func NewItemService(itemRepo repository.ItemRepository, userRepo repository.UserRepository) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

func (s *itemService) Add(input ItemInput, vendorID uint) (*model.Item, error) {
	logger.Info("Adding item", map[string]interface{}{
		"name":      input.Name,
		"vendor_id": vendorID,
		"category":  input.Category,
	})

	if !model.ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	vendor, err := s.userRepo.FindByID(vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add item: vendor not found", map[string]interface{}{
				"vendor_id": vendorID,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Only the VENDOR variant may list items; exhaustive on purpose.
	switch vendor.Role {
	case model.RoleVendor:
	case model.RoleUser:
		logger.Warn("Cannot add item: user is not a vendor", map[string]interface{}{
			"user_id": vendorID,
			"role":    vendor.Role,
		})
		return nil, ErrNotVendor
	default:
		return nil, ErrNotVendor
	}

	item := &model.Item{
		Name:        input.Name,
		Image:       input.Image,
		Description: input.Description,
		MrpPrice:    input.MrpPrice,
		Quantity:    input.Quantity,
		Category:    input.Category,
		VendorID:    vendor.ID,
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Item added successfully", map[string]interface{}{
		"item_id":   item.ID,
		"vendor_id": vendor.ID,
	})
	return item, nil
}

func (s *itemService) GetByID(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Update(itemID uint, input ItemInput) (*model.Item, error) {
	logger.Info("Updating item", map[string]interface{}{
		"item_id": itemID,
	})

	if !model.ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item.Name = input.Name
	item.Image = input.Image
	item.Description = input.Description
	item.MrpPrice = input.MrpPrice
	item.Quantity = input.Quantity
	item.Category = input.Category

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity is the only operation that mutates stock. Ordering and
// cart activity never touch it.
func (s *itemService) UpdateQuantity(itemID uint, quantity int64) (*model.Item, error) {
	logger.Info("Updating item quantity", map[string]interface{}{
		"item_id":  itemID,
		"quantity": quantity,
	})

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(id uint) error {
	logger.Info("Deleting item", map[string]interface{}{
		"item_id": id,
	})

	if _, err := s.itemRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return s.itemRepo.Delete(id)
}

func (s *itemService) GetAll() ([]model.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemService) GetAllPaged(pageNo, pageSize int) (*PagedItems, error) {
	items, total, err := s.itemRepo.FindAllPaged(pageNo, pageSize)
	if err != nil {
		return nil, err
	}
	return &PagedItems{Items: items, TotalItems: total}, nil
}

func (s *itemService) GetByCategory(category model.ItemCategory) ([]model.Item, error) {
	if !model.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.itemRepo.FindByCategory(category)
}

func (s *itemService) GetByCategoryPaged(category model.ItemCategory, pageNo, pageSize int) (*PagedItems, error) {
	if !model.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	items, total, err := s.itemRepo.FindByCategoryPaged(category, pageNo, pageSize)
	if err != nil {
		return nil, err
	}
	return &PagedItems{Items: items, TotalItems: total}, nil
}

func (s *itemService) GetByPrice(price float64) ([]model.Item, error) {
	return s.itemRepo.FindByPrice(price)
}

func (s *itemService) GetByPriceRange(minPrice, maxPrice float64) ([]model.Item, error) {
	return s.itemRepo.FindByPriceRange(minPrice, maxPrice)
}

func (s *itemService) GetByCategoryAndPriceRange(category model.ItemCategory, minPrice, maxPrice float64) ([]model.Item, error) {
	if !model.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.itemRepo.FindByCategoryAndPriceRange(category, minPrice, maxPrice)
}

func (s *itemService) SearchByName(keyword string, pageNo, pageSize int) (*PagedItems, error) {
	items, total, err := s.itemRepo.FindByNamePaged(keyword, pageNo, pageSize)
	if err != nil {
		return nil, err
	}
	return &PagedItems{Items: items, TotalItems: total}, nil
}

func (s *itemService) GetByVendor(vendorID uint) ([]model.Item, error) {
	return s.itemRepo.FindByVendorID(vendorID)
}

func (s *itemService) GetByVendorPaged(vendorID uint, pageNo, pageSize int) (*PagedItems, error) {
	if _, err := s.userRepo.FindByID(vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	items, total, err := s.itemRepo.FindByVendorIDPaged(vendorID, pageNo, pageSize)
	if err != nil {
		return nil, err
	}
	return &PagedItems{Items: items, TotalItems: total}, nil
}

func (s *itemService) GetAvailable() ([]model.Item, error) {
	return s.itemRepo.FindAvailable()
}

func (s *itemService) GetAvailablePaged(pageNo, pageSize int) (*PagedItems, error) {
	items, total, err := s.itemRepo.FindAvailablePaged(pageNo, pageSize)
	if err != nil {
		return nil, err
	}
	return &PagedItems{Items: items, TotalItems: total}, nil
}
