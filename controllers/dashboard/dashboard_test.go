package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"cobbler-shop/database"
	deliveryModel "cobbler-shop/models/delivery"
	enquiryModel "cobbler-shop/models/enquiry"
	inventoryModel "cobbler-shop/models/inventory"
	pickupModel "cobbler-shop/models/pickup"
	serviceModel "cobbler-shop/models/service"

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

	controller := NewDashboardController(db)
	app := fiber.New()
	app.Get("/counts", controller.Counts)
	app.Get("/", controller.Overview)
	return app, db
}

func get(t *testing.T, app *fiber.App, path string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope["data"].(map[string]interface{})
}

func seedEnquiry(t *testing.T, db *gorm.DB, stage enquiryModel.Stage) *enquiryModel.Enquiry {
	t.Helper()
	enq := enquiryModel.Enquiry{
		CustomerName: "Farida",
		Phone:        "9800000000",
		Address:      "3 Church Street",
		Message:      "Strap torn on a leather handbag, needs restitching",
		InquiryType:  enquiryModel.InquiryInstagram,
		Product:      enquiryModel.ProductBag,
		Quantity:     1,
		Date:         time.Now(),
		CurrentStage: stage,
	}
	require.NoError(t, db.Create(&enq).Error)
	return &enq
}

func TestCountsAggregatePipeline(t *testing.T) {
	app, db := setupTestApp(t)

	seedEnquiry(t, db, enquiryModel.StageEnquiry)
	inPickup := seedEnquiry(t, db, enquiryModel.StagePickup)
	inService := seedEnquiry(t, db, enquiryModel.StageService)
	done := seedEnquiry(t, db, enquiryModel.StageCompleted)

	require.NoError(t, db.Create(&pickupModel.PickupDetail{
		EnquiryID: inPickup.ID,
		Status:    pickupModel.StatusAssigned,
	}).Error)

	require.NoError(t, db.Create(&serviceModel.ServiceType{
		EnquiryID:   inService.ID,
		ServiceType: serviceModel.CategoryStitching,
		Status:      serviceModel.TaskInProgress,
	}).Error)
	require.NoError(t, db.Create(&serviceModel.ServiceType{
		EnquiryID:   inService.ID,
		ServiceType: serviceModel.CategoryCleaningPolish,
		Status:      serviceModel.TaskPending,
	}).Error)

	now := time.Now()
	require.NoError(t, db.Create(&deliveryModel.DeliveryDetail{
		EnquiryID:   done.ID,
		Status:      deliveryModel.StatusDelivered,
		DeliveredAt: &now,
	}).Error)

	data := get(t, app, "/counts")
	assert.Equal(t, 4.0, data["totalEnquiries"])
	assert.Equal(t, 1.0, data["totalDelivered"])
	assert.Equal(t, 1.0, data["pendingPickups"])
	assert.Equal(t, 1.0, data["inService"], "two open lines on one enquiry count once")
	assert.Equal(t, 1.0, data["deliveredToday"])
}

func TestOverviewRecentActivity(t *testing.T) {
	app, db := setupTestApp(t)
	enq := seedEnquiry(t, db, enquiryModel.StagePickup)
	require.NoError(t, db.Create(&pickupModel.PickupDetail{
		EnquiryID: enq.ID,
		Status:    pickupModel.StatusScheduled,
	}).Error)

	data := get(t, app, "/")
	feed := data["recentActivity"].([]interface{})
	require.Len(t, feed, 2)

	texts := make([]string, 0, len(feed))
	for _, raw := range feed {
		texts = append(texts, raw.(map[string]interface{})["text"].(string))
	}
	assert.Contains(t, texts, "New enquiry from Instagram - Strap torn on a leather handbag, ne")
	assert.Contains(t, texts, "Pickup scheduled for Farida - 1 items")
}

func TestOverviewActivityTruncatesOnRuneBoundary(t *testing.T) {
	app, db := setupTestApp(t)

	// 40 Devanagari runes, 3 bytes each; a byte-indexed cut would land
	// mid-rune and corrupt the feed text.
	msg := strings.Repeat("जू", 20)
	enq := seedEnquiry(t, db, enquiryModel.StageEnquiry)
	require.NoError(t, db.Model(enq).Update("message", msg).Error)

	data := get(t, app, "/")
	feed := data["recentActivity"].([]interface{})
	require.Len(t, feed, 1)

	text := feed[0].(map[string]interface{})["text"].(string)
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, "New enquiry from Instagram - "+string([]rune(msg)[:35]), text)
}

func TestOverviewLowStockFallback(t *testing.T) {
	app, db := setupTestApp(t)

	// Empty inventory produces the demo alerts.
	data := get(t, app, "/")
	alerts := data["lowStockAlerts"].([]interface{})
	require.Len(t, alerts, 2)
	first := alerts[0].(map[string]interface{})
	assert.Equal(t, "Leather polish", first["item"])
	assert.Equal(t, 2.0, first["stock"])

	// A real low item replaces the fallback, lowest quantity first.
	require.NoError(t, db.Create(&inventoryModel.InventoryItem{
		Name:        "Sole adhesive",
		Category:    "Adhesives",
		Quantity:    1,
		MinStock:    5,
		Unit:        "pcs",
		LastUpdated: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&inventoryModel.InventoryItem{
		Name:        "Wax thread",
		Category:    "Thread",
		Quantity:    40,
		MinStock:    5,
		Unit:        "rolls",
		LastUpdated: time.Now(),
	}).Error)

	data = get(t, app, "/")
	alerts = data["lowStockAlerts"].([]interface{})
	require.Len(t, alerts, 1)
	alert := alerts[0].(map[string]interface{})
	assert.Equal(t, "Sole adhesive", alert["item"])
	assert.Equal(t, 1.0, alert["stock"])
}
