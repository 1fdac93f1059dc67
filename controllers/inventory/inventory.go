package inventory

import (
	"errors"
	"time"

	"cobbler-shop/logger"
	inventoryModel "cobbler-shop/models/inventory"
	"cobbler-shop/types"
	inventoryTypes "cobbler-shop/types/inventory"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InventoryController handles stock CRUD with an append-only audit trail
type InventoryController struct {
	DB *gorm.DB
}

// NewInventoryController creates a new inventory controller
func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// ListItems returns every stocked item
func (ic *InventoryController) ListItems(c *fiber.Ctx) error {
	var items []inventoryModel.InventoryItem
	if err := ic.DB.Order("name ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to list inventory items", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}
	return c.JSON(types.Ok(items))
}

// GetItem returns one item with its change history
func (ic *InventoryController) GetItem(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var item inventoryModel.InventoryItem
	if err := ic.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("inventory item not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var history []inventoryModel.InventoryHistory
	if err := ic.DB.Where("inventory_item_id = ?", id).
		Order("created_at DESC").Find(&history).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"item":    item,
		"history": history,
	}))
}

// CreateItem adds a new item and writes its Created history row
func (ic *InventoryController) CreateItem(c *fiber.Ctx) error {
	var req inventoryTypes.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	minStock := 5
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	var item inventoryModel.InventoryItem
	txErr := ic.DB.Transaction(func(tx *gorm.DB) error {
		item = inventoryModel.InventoryItem{
			Name:          req.Name,
			Category:      req.Category,
			Quantity:      req.Quantity,
			MinStock:      minStock,
			Unit:          req.Unit,
			PurchasePrice: req.PurchasePrice,
			SellingPrice:  req.SellingPrice,
			LastUpdated:   time.Now(),
			LastUpdatedBy: &req.UpdatedBy,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		history := inventoryModel.InventoryHistory{
			InventoryItemID: item.ID,
			Action:          inventoryModel.ActionCreated,
			QuantityChange:  req.Quantity,
			NewQuantity:     req.Quantity,
			UpdatedBy:       req.UpdatedBy,
		}
		return tx.Create(&history).Error
	})
	if txErr != nil {
		logger.Error("Failed to create inventory item", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Created inventory item " + item.Name)
	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(item, "Inventory item created"))
}

// UpdateItem edits an item. A quantity change appends exactly one
// history row carrying the delta and the resulting quantity.
func (ic *InventoryController) UpdateItem(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req inventoryTypes.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var item inventoryModel.InventoryItem
	if err := ic.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("inventory item not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	previousQuantity := item.Quantity

	updates := map[string]interface{}{
		"last_updated":    time.Now(),
		"last_updated_by": req.UpdatedBy,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.MinStock != nil {
		updates["min_stock"] = *req.MinStock
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.PurchasePrice != nil {
		updates["purchase_price"] = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		updates["selling_price"] = *req.SellingPrice
	}

	txErr := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}

		if req.Quantity != nil {
			history := inventoryModel.InventoryHistory{
				InventoryItemID: item.ID,
				Action:          inventoryModel.ActionUpdated,
				QuantityChange:  *req.Quantity - previousQuantity,
				NewQuantity:     *req.Quantity,
				UpdatedBy:       req.UpdatedBy,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		logger.Error("Failed to update inventory item", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	return c.JSON(types.OkMessage(item, "Inventory item updated"))
}

// DeleteItem removes an item; its history cascades
func (ic *InventoryController) DeleteItem(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	result := ic.DB.Delete(&inventoryModel.InventoryItem{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete inventory item", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(result.Error.Error()))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.Fail("inventory item not found"))
	}

	return c.JSON(types.OkMessage(nil, "Inventory item deleted"))
}

// Stats compares quantity to min_stock in one aggregate pass
func (ic *InventoryController) Stats(c *fiber.Ctx) error {
	type statsRow struct {
		TotalItems  int64   `json:"totalItems"`
		LowStock    int64   `json:"lowStock"`
		WellStocked int64   `json:"wellStocked"`
		TotalValue  float64 `json:"totalValue"`
	}

	var stats statsRow
	err := ic.DB.Model(&inventoryModel.InventoryItem{}).
		Select(`COUNT(*) as total_items,
			SUM(CASE WHEN quantity <= min_stock THEN 1 ELSE 0 END) as low_stock,
			SUM(CASE WHEN quantity > min_stock THEN 1 ELSE 0 END) as well_stocked,
			COALESCE(SUM(quantity * purchase_price), 0) as total_value`).
		Scan(&stats).Error
	if err != nil {
		logger.Error("Failed to aggregate inventory stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(stats))
}

// Search does a substring match over name and category
func (ic *InventoryController) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("query parameter 'q' is required"))
	}

	pattern := "%" + q + "%"
	var items []inventoryModel.InventoryItem
	if err := ic.DB.Where("name LIKE ? OR category LIKE ?", pattern, pattern).
		Order("name ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to search inventory", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(items))
}
