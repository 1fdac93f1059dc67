package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cobbler-shop/database"
	deliveryModel "cobbler-shop/models/delivery"
	enquiryModel "cobbler-shop/models/enquiry"
	photoModel "cobbler-shop/models/photo"

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

	app := fiber.New()
	SetupRoutes(app, db)
	return app, db
}

// request sends a JSON request and decodes the response envelope.
func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func loginTestUser(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, _ := request(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "shopkeeper",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, envelope := request(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "shopkeeper",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := setupTestApp(t)

	status, envelope := request(t, app, http.MethodGet, "/api/enquiries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, envelope["success"])

	status, _ = request(t, app, http.MethodGet, "/api/enquiries", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogoutRevokesToken(t *testing.T) {
	app, _ := setupTestApp(t)
	token := loginTestUser(t, app)

	status, _ := request(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestFullJobLifecycle walks one repair job through every stage of the
// workflow over HTTP and checks the money math and stage guards on the way.
func TestFullJobLifecycle(t *testing.T) {
	app, db := setupTestApp(t)
	token := loginTestUser(t, app)

	// Intake.
	status, envelope := request(t, app, http.MethodPost, "/api/enquiries", token, fiber.Map{
		"customerName": "Anita Desai",
		"phone":        "9812345678",
		"address":      "7 Residency Road, Bengaluru",
		"message":      "Leather boots need new soles and a polish",
		"inquiryType":  "WhatsApp",
		"product":      "Shoe",
		"quantity":     1,
		"date":         "2026-08-28",
	})
	require.Equal(t, http.StatusCreated, status)
	created := envelope["data"].(map[string]interface{})
	enquiryID := uint(created["id"].(float64))
	base := fmt.Sprintf("/api/enquiries/%d", enquiryID)

	// Convert to pickup; the response carries the collection PIN.
	status, envelope = request(t, app, http.MethodPatch, base+"/convert", token, nil)
	require.Equal(t, http.StatusOK, status)
	pickupDetail := envelope["data"].(map[string]interface{})["pickupDetail"].(map[string]interface{})
	pin := pickupDetail["pin"].(string)
	require.Len(t, pin, 4)

	// Converting twice is an out-of-order advance.
	status, _ = request(t, app, http.MethodPatch, base+"/convert", token, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Pickup stage.
	pickupBase := fmt.Sprintf("/api/pickup/enquiries/%d", enquiryID)
	status, _ = request(t, app, http.MethodPatch, pickupBase+"/schedule", token, fiber.Map{
		"scheduledTime": "2026-08-29 10:00:00",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPatch, pickupBase+"/assign", token, fiber.Map{
		"assignedTo": "Suresh",
	})
	require.Equal(t, http.StatusOK, status)

	wrongPin := "0000"
	if pin == wrongPin {
		wrongPin = "1111"
	}
	status, _ = request(t, app, http.MethodPatch, pickupBase+"/collect", token, fiber.Map{
		"pin":             wrongPin,
		"collectionPhoto": "data:image/jpeg;base64,AAAA",
	})
	assert.Equal(t, http.StatusBadRequest, status, "wrong pin must be rejected")

	status, _ = request(t, app, http.MethodPatch, pickupBase+"/collect", token, fiber.Map{
		"pin":             pin,
		"collectionPhoto": "data:image/jpeg;base64,AAAA",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPatch, pickupBase+"/receive", token, fiber.Map{
		"receivedPhoto": "data:image/jpeg;base64,BBBB",
		"receivedNotes": "Scuffed toe on the left boot",
	})
	require.Equal(t, http.StatusOK, status)
	assertStage(t, db, enquiryID, enquiryModel.StageService)

	// Service stage.
	serviceBase := fmt.Sprintf("/api/service/enquiries/%d", enquiryID)
	status, envelope = request(t, app, http.MethodPost, serviceBase+"/types", token, fiber.Map{
		"serviceType": "Cleaning & Polish",
		"beforePhoto": "data:image/jpeg;base64,CCCC",
	})
	require.Equal(t, http.StatusCreated, status)
	typeID := uint(envelope["data"].(map[string]interface{})["id"].(float64))
	typeBase := fmt.Sprintf("%s/types/%d/status", serviceBase, typeID)

	// Completing with work still pending is rejected.
	status, _ = request(t, app, http.MethodPatch, serviceBase+"/complete", token, fiber.Map{
		"overallAfterPhoto": "data:image/jpeg;base64,DDDD",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = request(t, app, http.MethodPatch, typeBase, token, fiber.Map{"status": "in-progress"})
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodPatch, typeBase, token, fiber.Map{
		"status":     "done",
		"afterPhoto": "data:image/jpeg;base64,EEEE",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPatch, serviceBase+"/complete", token, fiber.Map{
		"overallAfterPhoto": "data:image/jpeg;base64,DDDD",
		"actualCost":        1000,
	})
	require.Equal(t, http.StatusOK, status)
	assertStage(t, db, enquiryID, enquiryModel.StageBilling)

	// Billing: 1000 at 18% GST comes to 1180.
	billingBase := fmt.Sprintf("/api/billing/enquiries/%d", enquiryID)
	status, envelope = request(t, app, http.MethodPost, billingBase+"/invoice", token, fiber.Map{
		"items": []fiber.Map{
			{"serviceType": "Cleaning & Polish", "amount": 1000},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	inv := envelope["data"].(map[string]interface{})
	assert.Equal(t, 1000.0, inv["subtotal"])
	assert.Equal(t, 180.0, inv["gstAmount"])
	assert.Equal(t, 1180.0, inv["totalAmount"])
	assert.Contains(t, inv["invoiceNumber"].(string), "INV-"+time.Now().Format("20060102"))

	status, _ = request(t, app, http.MethodPatch, billingBase+"/move-to-delivery", token, nil)
	require.Equal(t, http.StatusOK, status)
	assertStage(t, db, enquiryID, enquiryModel.StageDelivery)

	// Delivery stage. An unknown method fails validation before any write.
	deliveryBase := fmt.Sprintf("/api/delivery/enquiries/%d", enquiryID)
	status, _ = request(t, app, http.MethodPatch, deliveryBase+"/schedule", token, fiber.Map{
		"deliveryMethod": "teleport",
		"scheduledTime":  "2026-08-30 17:00:00",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = request(t, app, http.MethodPatch, deliveryBase+"/schedule", token, fiber.Map{
		"deliveryMethod": "home-delivery",
		"scheduledTime":  "2026-08-30 17:00:00",
	})
	assert.Equal(t, http.StatusBadRequest, status, "home-delivery needs an address")

	status, _ = request(t, app, http.MethodPatch, deliveryBase+"/schedule", token, fiber.Map{
		"deliveryMethod":  "home-delivery",
		"scheduledTime":   "2026-08-30 17:00:00",
		"deliveryAddress": "7 Residency Road, Bengaluru",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPatch, deliveryBase+"/out-for-delivery", token, fiber.Map{
		"assignedTo": "Suresh",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodPatch, deliveryBase+"/complete", token, fiber.Map{
		"deliveryProofPhoto": "data:image/jpeg;base64,FFFF",
		"customerSignature":  "data:image/png;base64,GGGG",
	})
	require.Equal(t, http.StatusOK, status)
	assertStage(t, db, enquiryID, enquiryModel.StageCompleted)

	// Completing again is out of order, and the proof photo written
	// before the stage guard fired must be rolled back with it.
	var photosBefore int64
	require.NoError(t, db.Model(&photoModel.Photo{}).Where("enquiry_id = ?", enquiryID).Count(&photosBefore).Error)
	status, _ = request(t, app, http.MethodPatch, deliveryBase+"/complete", token, fiber.Map{
		"deliveryProofPhoto": "data:image/jpeg;base64,FFFF",
	})
	assert.Equal(t, http.StatusConflict, status)
	var photosAfter int64
	require.NoError(t, db.Model(&photoModel.Photo{}).Where("enquiry_id = ?", enquiryID).Count(&photosAfter).Error)
	assert.Equal(t, photosBefore, photosAfter)

	// The job shows up in the completed listing with the billed amount.
	status, envelope = request(t, app, http.MethodGet, "/api/completed/enquiries", token, nil)
	require.Equal(t, http.StatusOK, status)
	rows := envelope["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Anita Desai", row["customerName"])
	assert.Equal(t, 1180.0, row["finalAmount"])
}

// TestDeliveryViewRequiresDeliveryStage checks that the single-enquiry
// delivery view only serves enquiries whose current stage is delivery,
// even when a detail row already exists for an earlier stage.
func TestDeliveryViewRequiresDeliveryStage(t *testing.T) {
	app, db := setupTestApp(t)
	token := loginTestUser(t, app)

	enq := enquiryModel.Enquiry{
		CustomerName: "Meenakshi",
		Phone:        "9811122233",
		Address:      "4 Brigade Road, Bengaluru",
		Message:      "Zipper stuck on a travel bag",
		InquiryType:  enquiryModel.InquiryWalkIn,
		Product:      enquiryModel.ProductBag,
		Quantity:     1,
		Date:         time.Now(),
		Status:       enquiryModel.StatusNew,
		CurrentStage: enquiryModel.StageBilling,
	}
	require.NoError(t, db.Create(&enq).Error)
	require.NoError(t, db.Create(&deliveryModel.DeliveryDetail{
		EnquiryID: enq.ID,
		Status:    deliveryModel.StatusReady,
	}).Error)

	// Detail row exists but the enquiry is still in billing.
	path := fmt.Sprintf("/api/delivery/enquiries/%d", enq.ID)
	status, envelope := request(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, envelope["success"])

	require.NoError(t, db.Model(&enq).Update("current_stage", enquiryModel.StageDelivery).Error)

	status, envelope = request(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	view := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Meenakshi", view["customerName"])
	assert.Equal(t, "ready", view["status"])

	status, _ = request(t, app, http.MethodGet, "/api/delivery/enquiries/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func assertStage(t *testing.T, db *gorm.DB, id uint, want enquiryModel.Stage) {
	t.Helper()
	var enq enquiryModel.Enquiry
	require.NoError(t, db.First(&enq, id).Error)
	require.Equal(t, want, enq.CurrentStage)
}
