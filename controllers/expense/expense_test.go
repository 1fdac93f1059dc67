package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cobbler-shop/database"

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

	controller := NewExpenseController(db)
	app := fiber.New()
	app.Get("/expenses/stats", controller.Stats)
	app.Get("/expenses/employees/all", controller.ListEmployees)
	app.Post("/expenses/employees", controller.CreateEmployee)
	app.Put("/expenses/employees/:id", controller.UpdateEmployee)
	app.Delete("/expenses/employees/:id", controller.DeleteEmployee)
	app.Get("/expenses", controller.List)
	app.Post("/expenses", controller.Create)
	app.Get("/expenses/:id", controller.Get)
	app.Put("/expenses/:id", controller.Update)
	app.Delete("/expenses/:id", controller.Delete)
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

func createExpense(t *testing.T, app *fiber.App, title, category string, amount float64, date string) uint {
	t.Helper()
	status, envelope := request(t, app, http.MethodPost, "/expenses", fiber.Map{
		"title":    title,
		"amount":   amount,
		"category": category,
		"date":     date,
	})
	require.Equal(t, http.StatusCreated, status)
	return uint(envelope["data"].(map[string]interface{})["id"].(float64))
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	app, _ := setupTestApp(t)

	status, envelope := request(t, app, http.MethodPost, "/expenses", fiber.Map{
		"title":    "Mystery spend",
		"amount":   100,
		"category": "Snacks",
		"date":     "2026-07-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, envelope["error"], "invalid category")
}

func TestListFiltersComposeWithAnd(t *testing.T) {
	app, _ := setupTestApp(t)
	createExpense(t, app, "Leather sheets", "Materials", 2500, "2026-07-05")
	createExpense(t, app, "Glue restock", "Materials", 600, "2026-06-20")
	createExpense(t, app, "Shop rent July", "Rent", 15000, "2026-07-01")

	status, envelope := request(t, app, http.MethodGet, "/expenses?month=7&year=2026&category=Materials", nil)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	expenses := data["expenses"].([]interface{})
	require.Len(t, expenses, 1)
	assert.Equal(t, "Leather sheets", expenses[0].(map[string]interface{})["title"])

	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, 1.0, pagination["total"])
}

func TestListSearchMatchesTitleNotesCategory(t *testing.T) {
	app, _ := setupTestApp(t)
	createExpense(t, app, "Leather sheets", "Materials", 2500, "2026-07-05")
	createExpense(t, app, "Electricity bill", "Utilities", 1800, "2026-07-08")

	status, envelope := request(t, app, http.MethodGet, "/expenses?search=leather", nil)
	require.Equal(t, http.StatusOK, status)
	expenses := envelope["data"].(map[string]interface{})["expenses"].([]interface{})
	assert.Len(t, expenses, 1)
}

func TestStatsBreakdownSumsToTotal(t *testing.T) {
	app, _ := setupTestApp(t)
	createExpense(t, app, "Leather sheets", "Materials", 2500, "2026-07-05")
	createExpense(t, app, "Glue restock", "Materials", 500, "2026-07-12")
	createExpense(t, app, "Shop rent July", "Rent", 15000, "2026-07-01")
	createExpense(t, app, "Electricity bill", "Utilities", 2000, "2026-07-08")

	status, envelope := request(t, app, http.MethodGet, "/expenses/stats?month=7&year=2026", nil)
	require.Equal(t, http.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	total := data["monthlyTotal"].(float64)
	assert.Equal(t, 20000.0, total)
	assert.Equal(t, 4.0, data["count"])
	assert.Equal(t, 5000.0, data["average"])

	breakdown := data["categoryBreakdown"].([]interface{})
	require.Len(t, breakdown, 3)

	var sumAmounts, sumPercent float64
	for _, raw := range breakdown {
		row := raw.(map[string]interface{})
		sumAmounts += row["totalAmount"].(float64)
		sumPercent += row["percentage"].(float64)
	}
	assert.Equal(t, total, sumAmounts, "breakdown must account for every rupee")
	assert.InDelta(t, 100.0, sumPercent, 0.05)

	// Ordered by amount, largest bucket first.
	first := breakdown[0].(map[string]interface{})
	assert.Equal(t, "Rent", first["category"])
	assert.Equal(t, 75.0, first["percentage"])
}

func TestEmployeeSoftDelete(t *testing.T) {
	app, _ := setupTestApp(t)

	status, envelope := request(t, app, http.MethodPost, "/expenses/employees", fiber.Map{
		"name":          "Imran",
		"role":          "Cobbler",
		"monthlySalary": 18000,
	})
	require.Equal(t, http.StatusCreated, status)
	empID := uint(envelope["data"].(map[string]interface{})["id"].(float64))

	// Book a salary expense against the employee.
	status, envelope = request(t, app, http.MethodPost, "/expenses", fiber.Map{
		"title":      "Imran salary July",
		"amount":     18000,
		"category":   "Staff Salaries",
		"date":       "2026-07-31",
		"employeeId": empID,
	})
	require.Equal(t, http.StatusCreated, status)
	expenseID := uint(envelope["data"].(map[string]interface{})["id"].(float64))

	status, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/expenses/employees/%d", empID), nil)
	require.Equal(t, http.StatusOK, status)

	// Gone from the active roster.
	status, envelope = request(t, app, http.MethodGet, "/expenses/employees/all", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, envelope["data"])

	// Deleting twice is a 404, as is updating a removed employee.
	status, _ = request(t, app, http.MethodDelete, fmt.Sprintf("/expenses/employees/%d", empID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = request(t, app, http.MethodPut, fmt.Sprintf("/expenses/employees/%d", empID), fiber.Map{
		"name": "Imran", "role": "Cobbler", "monthlySalary": 20000,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// The historical expense keeps its employee link.
	status, envelope = request(t, app, http.MethodGet, fmt.Sprintf("/expenses/%d", expenseID), nil)
	require.Equal(t, http.StatusOK, status)
	exp := envelope["data"].(map[string]interface{})
	require.NotNil(t, exp["employee"])
	assert.Equal(t, "Imran", exp["employee"].(map[string]interface{})["name"])
}

func TestLinkingUnknownEmployeeFails(t *testing.T) {
	app, _ := setupTestApp(t)

	status, envelope := request(t, app, http.MethodPost, "/expenses", fiber.Map{
		"title":      "Ghost salary",
		"amount":     9000,
		"category":   "Staff Salaries",
		"date":       "2026-07-31",
		"employeeId": 42,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, envelope["error"], "employee not found")
}
