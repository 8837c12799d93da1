package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/groceteria/groceteria-backend/config"
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected columns: name, description, image, price, quantity, category,
// vendor email. Vendors must already exist with the VENDOR role.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db.GetDB())
	itemRepo := repository.NewItemRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	items, err := readItemsFromXLSX(filePath, userRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total items to import: %d\n", len(items))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := itemRepo.BulkCreate(items, batchSize); err != nil {
		log.Fatal("Failed to bulk create items:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total items imported: %d\n", len(items))
}

func readItemsFromXLSX(filePath string, userRepo repository.UserRepository) ([]model.Item, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var items []model.Item
	vendorIDs := make(map[string]uint) // email → resolved vendor ID
	seenItems := make(map[string]bool) // (vendor, name) dedupe
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 7 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		image := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		quantityStr := strings.TrimSpace(row[4])
		category := model.ItemCategory(strings.ToUpper(strings.TrimSpace(row[5])))
		vendorEmail := strings.TrimSpace(row[6])

		if name == "" || vendorEmail == "" {
			skippedCount++
			continue
		}

		if !model.ValidCategory(category) {
			fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, category)
			skippedCount++
			continue
		}

		price, errPrice := strconv.ParseFloat(priceStr, 64)
		quantity, errQty := strconv.ParseInt(quantityStr, 10, 64)
		if errPrice != nil || errQty != nil || price < 0 || quantity < 0 {
			skippedCount++
			continue
		}

		vendorID, ok := vendorIDs[vendorEmail]
		if !ok {
			vendor, err := userRepo.FindByEmail(vendorEmail)
			if err != nil || vendor.Role != model.RoleVendor {
				fmt.Printf("Row %d: no vendor account for %s, skipping\n", i+1, vendorEmail)
				skippedCount++
				continue
			}
			vendorID = vendor.ID
			vendorIDs[vendorEmail] = vendorID
		}

		key := fmt.Sprintf("%d|%s", vendorID, name)
		if seenItems[key] {
			skippedCount++
			continue
		}
		seenItems[key] = true

		items = append(items, model.Item{
			Name:        name,
			Image:       image,
			Description: description,
			MrpPrice:    price,
			Quantity:    quantity,
			Category:    category,
			VendorID:    vendorID,
		})

		if len(items)%500 == 0 {
			fmt.Printf("Processed %d items...\n", len(items))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid items: %d\n", len(items))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return items, nil
}
