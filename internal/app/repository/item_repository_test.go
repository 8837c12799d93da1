package repository

import (
	"fmt"
	"testing"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupItemRepositoryTest(t *testing.T) (ItemRepository, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	itemRepo := NewItemRepository(testDB)

	vendor := &model.User{
		FirstName:    "Vera",
		LastName:     "Vendor",
		Email:        "vendor@example.com",
		PasswordHash: "hash",
		PhoneNumber:  "1234567890",
		Role:         model.RoleVendor,
		IsActive:     true,
	}
	testDB.Create(vendor)

	return itemRepo, vendor, testDB
}

func TestItemRepository_FindAllPaged(t *testing.T) {
	itemRepo, vendor, _ := setupItemRepositoryTest(t)

	for i := 0; i < 7; i++ {
		require.NoError(t, itemRepo.Create(&model.Item{
			Name:     fmt.Sprintf("Item %d", i),
			MrpPrice: 10.0,
			Quantity: 5,
			Category: model.CategoryVegetables,
			VendorID: vendor.ID,
		}))
	}

	items, total, err := itemRepo.FindAllPaged(0, 5)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, int64(7), total)

	items, total, err = itemRepo.FindAllPaged(1, 5)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(7), total)
}

func TestItemRepository_FindByNamePaged_CaseInsensitive(t *testing.T) {
	itemRepo, vendor, _ := setupItemRepositoryTest(t)

	names := []string{"Cherry Tomato", "Roma Tomato", "Potato"}
	for _, name := range names {
		require.NoError(t, itemRepo.Create(&model.Item{
			Name:     name,
			MrpPrice: 10.0,
			Quantity: 5,
			Category: model.CategoryVegetables,
			VendorID: vendor.ID,
		}))
	}

	items, total, err := itemRepo.FindByNamePaged("tOmAtO", 0, 10)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), total)
}

func TestItemRepository_FindByCategoryAndPriceRange(t *testing.T) {
	itemRepo, vendor, _ := setupItemRepositoryTest(t)

	fixtures := []struct {
		name     string
		price    float64
		category model.ItemCategory
	}{
		{"Tomato", 30.0, model.CategoryVegetables},
		{"Cucumber", 20.0, model.CategoryVegetables},
		{"Apple", 25.0, model.CategoryFruits},
	}
	for _, f := range fixtures {
		require.NoError(t, itemRepo.Create(&model.Item{
			Name:     f.name,
			MrpPrice: f.price,
			Quantity: 5,
			Category: f.category,
			VendorID: vendor.ID,
		}))
	}

	// Bounds are inclusive, category filter applies on top.
	items, err := itemRepo.FindByCategoryAndPriceRange(model.CategoryVegetables, 20.0, 30.0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = itemRepo.FindByCategoryAndPriceRange(model.CategoryFruits, 26.0, 30.0)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestItemRepository_FindByPrice_ExactMatch(t *testing.T) {
	itemRepo, vendor, _ := setupItemRepositoryTest(t)

	for _, price := range []float64{30.0, 30.0, 45.0} {
		require.NoError(t, itemRepo.Create(&model.Item{
			Name:     "Item",
			MrpPrice: price,
			Quantity: 5,
			Category: model.CategoryVegetables,
			VendorID: vendor.ID,
		}))
	}

	items, err := itemRepo.FindByPrice(30.0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItemRepository_BulkCreate(t *testing.T) {
	itemRepo, vendor, _ := setupItemRepositoryTest(t)

	items := make([]model.Item, 12)
	for i := range items {
		items[i] = model.Item{
			Name:     fmt.Sprintf("Bulk %d", i),
			MrpPrice: 10.0,
			Quantity: 5,
			Category: model.CategoryGrainsAndOils,
			VendorID: vendor.ID,
		}
	}

	require.NoError(t, itemRepo.BulkCreate(items, 5))

	count, err := itemRepo.CountByVendorID(vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
