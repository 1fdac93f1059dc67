package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cobbler-shop/database"
	inventoryModel "cobbler-shop/models/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	controller := NewInventoryController(db)
	app := fiber.New()
	app.Get("/items", controller.ListItems)
	app.Post("/items", controller.CreateItem)
	app.Get("/items/:id", controller.GetItem)
	app.Put("/items/:id", controller.UpdateItem)
	app.Delete("/items/:id", controller.DeleteItem)
	app.Get("/stats", controller.Stats)
	app.Get("/search", controller.Search)
	return app, db
}

func request(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func createItem(t *testing.T, app *fiber.App, name string, quantity int) uint {
	t.Helper()
	status, envelope := request(t, app, http.MethodPost, "/items", fiber.Map{
		"name":          name,
		"category":      "Adhesives",
		"quantity":      quantity,
		"unit":          "pcs",
		"purchasePrice": 120.0,
		"sellingPrice":  200.0,
		"updatedBy":     "Rahim",
	})
	require.Equal(t, http.StatusCreated, status)
	return uint(envelope["data"].(map[string]interface{})["id"].(float64))
}

func TestCreateItemWritesCreatedHistory(t *testing.T) {
	app, db := setupTestApp(t)
	id := createItem(t, app, "Sole adhesive", 20)

	var history []inventoryModel.InventoryHistory
	require.NoError(t, db.Where("inventory_item_id = ?", id).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, inventoryModel.ActionCreated, history[0].Action)
	assert.Equal(t, 20, history[0].QuantityChange)
	assert.Equal(t, 20, history[0].NewQuantity)
	assert.Equal(t, "Rahim", history[0].UpdatedBy)
}

func TestQuantityUpdateWritesExactlyOneHistoryRow(t *testing.T) {
	app, db := setupTestApp(t)
	id := createItem(t, app, "Leather polish", 10)
	path := fmt.Sprintf("/items/%d", id)

	status, _ := request(t, app, http.MethodPut, path, fiber.Map{
		"quantity":  4,
		"updatedBy": "Rahim",
	})
	require.Equal(t, http.StatusOK, status)

	var history []inventoryModel.InventoryHistory
	require.NoError(t, db.Where("inventory_item_id = ? AND action = ?", id, inventoryModel.ActionUpdated).
		Find(&history).Error)
	require.Len(t, history, 1, "one quantity change must append exactly one row")
	assert.Equal(t, -6, history[0].QuantityChange)
	assert.Equal(t, 4, history[0].NewQuantity)

	// Restocking records the positive delta.
	status, _ = request(t, app, http.MethodPut, path, fiber.Map{
		"quantity":  25,
		"updatedBy": "Rahim",
	})
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, db.Where("inventory_item_id = ? AND action = ?", id, inventoryModel.ActionUpdated).
		Order("id ASC").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, 21, history[1].QuantityChange)
	assert.Equal(t, 25, history[1].NewQuantity)

	// history deltas replay to the current quantity
	var item inventoryModel.InventoryItem
	require.NoError(t, db.First(&item, id).Error)
	var all []inventoryModel.InventoryHistory
	require.NoError(t, db.Where("inventory_item_id = ?", id).Find(&all).Error)
	sum := 0
	for _, h := range all {
		sum += h.QuantityChange
	}
	assert.Equal(t, item.Quantity, sum)
}

func TestUpdateWithoutQuantitySkipsHistory(t *testing.T) {
	app, db := setupTestApp(t)
	id := createItem(t, app, "Wax thread", 30)

	status, _ := request(t, app, http.MethodPut, fmt.Sprintf("/items/%d", id), fiber.Map{
		"sellingPrice": 250.0,
		"updatedBy":    "Rahim",
	})
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&inventoryModel.InventoryHistory{}).
		Where("inventory_item_id = ? AND action = ?", id, inventoryModel.ActionUpdated).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestStatsCountsLowStock(t *testing.T) {
	app, _ := setupTestApp(t)
	createItem(t, app, "Sole adhesive", 2)  // below default min stock of 5
	createItem(t, app, "Wax thread", 50)

	status, envelope := request(t, app, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["totalItems"])
	assert.Equal(t, 1.0, data["lowStock"])
	assert.Equal(t, 1.0, data["wellStocked"])
}

func TestSearchMatchesNameAndCategory(t *testing.T) {
	app, _ := setupTestApp(t)
	createItem(t, app, "Sole adhesive", 10)
	createItem(t, app, "Heel caps", 10)

	status, envelope := request(t, app, http.MethodGet, "/search?q=sole", nil)
	require.Equal(t, http.StatusOK, status)
	results := envelope["data"].([]interface{})
	require.Len(t, results, 1)

	status, envelope = request(t, app, http.MethodGet, "/search?q=Adhesives", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, envelope["data"].([]interface{}), 2)
}

func TestDeleteItemNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := request(t, app, http.MethodDelete, "/items/404", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
