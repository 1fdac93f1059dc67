package expense

import (
	"errors"
	"io"
	"math"
	"strconv"
	"time"

	"cobbler-shop/constants"
	"cobbler-shop/logger"
	expenseModel "cobbler-shop/models/expense"
	"cobbler-shop/services/billscan"
	"cobbler-shop/types"
	expenseTypes "cobbler-shop/types/expense"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ExpenseController handles the spend ledger and payroll records
type ExpenseController struct {
	DB *gorm.DB
}

// NewExpenseController creates a new expense controller
func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

// applyFilter composes the optional filters onto a query with AND
// semantics. Absent fields are skipped entirely.
func applyFilter(query *gorm.DB, f expenseTypes.Filter) *gorm.DB {
	if f.Month != 0 {
		start, end := utils.MonthBounds(f.Year, f.Month)
		query = query.Where("date >= ? AND date < ?", start, end)
	} else if f.Year != 0 {
		start := time.Date(f.Year, 1, 1, 0, 0, 0, 0, time.Local)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR notes LIKE ? OR category LIKE ?", pattern, pattern, pattern)
	}
	return query
}

// List returns expenses matching the filter, newest first, paginated
func (ec *ExpenseController) List(c *fiber.Ctx) error {
	var filter expenseTypes.Filter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	query := applyFilter(ec.DB.Model(&expenseModel.Expense{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count expenses", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var expenses []expenseModel.Expense
	if err := query.Preload("Employee").
		Order("date DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&expenses).Error; err != nil {
		logger.Error("Failed to list expenses", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"expenses": expenses,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}))
}

// Stats aggregates the filtered set: totals plus a per-category
// breakdown with percentage-of-total.
func (ec *ExpenseController) Stats(c *fiber.Ctx) error {
	var filter expenseTypes.Filter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	type totalsRow struct {
		Total   float64 `json:"total"`
		Count   int64   `json:"count"`
		Average float64 `json:"average"`
	}
	var totals totalsRow
	err := applyFilter(ec.DB.Model(&expenseModel.Expense{}), filter).
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count, COALESCE(AVG(amount), 0) as average").
		Scan(&totals).Error
	if err != nil {
		logger.Error("Failed to aggregate expense totals", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	type breakdownRow struct {
		Category    string  `json:"category"`
		TotalAmount float64 `json:"totalAmount"`
		Count       int64   `json:"count"`
		Percentage  float64 `json:"percentage"`
	}
	var breakdown []breakdownRow
	err = applyFilter(ec.DB.Model(&expenseModel.Expense{}), filter).
		Select("category, COALESCE(SUM(amount), 0) as total_amount, COUNT(*) as count").
		Group("category").
		Order("total_amount DESC").
		Scan(&breakdown).Error
	if err != nil {
		logger.Error("Failed to aggregate expense breakdown", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	for i := range breakdown {
		if totals.Total > 0 {
			breakdown[i].Percentage = math.Round(breakdown[i].TotalAmount/totals.Total*10000) / 100
		}
	}

	return c.JSON(types.Ok(fiber.Map{
		"monthlyTotal":      totals.Total,
		"count":             totals.Count,
		"average":           totals.Average,
		"categoryBreakdown": breakdown,
	}))
}

// Get returns one expense by id, including a soft-deleted employee link
func (ec *ExpenseController) Get(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var exp expenseModel.Expense
	if err := ec.DB.Preload("Employee").First(&exp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("expense not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(exp))
}

// parseCreateRequest normalizes multipart submissions into the same
// shape as JSON submissions before validation.
func parseCreateRequest(c *fiber.Ctx) (expenseTypes.CreateRequest, *string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		var req expenseTypes.CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return req, nil, errors.New("invalid request body")
		}
		return req, nil, nil
	}

	get := func(key string) string {
		if vals := form.Value[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	req := expenseTypes.CreateRequest{
		Title:    get("title"),
		Category: get("category"),
		Date:     get("date"),
	}
	if amount := get("amount"); amount != "" {
		parsed, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return req, nil, errors.New("invalid amount")
		}
		req.Amount = parsed
	}
	if desc := get("description"); desc != "" {
		req.Description = &desc
	}
	if notes := get("notes"); notes != "" {
		req.Notes = &notes
	}
	if empID := get("employeeId"); empID != "" {
		parsed, err := strconv.ParseUint(empID, 10, 64)
		if err != nil {
			return req, nil, errors.New("invalid employeeId")
		}
		id := uint(parsed)
		req.EmployeeID = &id
	}

	var billURL *string
	if files := form.File["bill"]; len(files) > 0 {
		url, err := utils.SaveBillFile(c, files[0])
		if err != nil {
			return req, nil, err
		}
		billURL = &url
	}

	return req, billURL, nil
}

// Create records a new expense from JSON or a multipart form with an
// optional bill file
func (ec *ExpenseController) Create(c *fiber.Ctx) error {
	req, billURL, err := parseCreateRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	if req.EmployeeID != nil {
		var emp expenseModel.Employee
		if err := ec.DB.First(&emp, *req.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(types.Fail("employee not found"))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
		}
	}

	exp := expenseModel.Expense{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    expenseModel.Category(req.Category),
		Date:        date,
		Description: req.Description,
		Notes:       req.Notes,
		BillURL:     billURL,
		EmployeeID:  req.EmployeeID,
	}

	if err := ec.DB.Create(&exp).Error; err != nil {
		logger.Error("Failed to create expense", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	logger.Success("Recorded expense " + exp.Title)
	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(exp, "Expense recorded"))
}

// Update edits an existing expense
func (ec *ExpenseController) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req expenseTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var exp expenseModel.Expense
	if err := ec.DB.First(&exp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("expense not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
		}
		updates["date"] = date
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.EmployeeID != nil {
		updates["employee_id"] = *req.EmployeeID
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("no fields to update"))
	}

	if err := ec.DB.Model(&exp).Updates(updates).Error; err != nil {
		logger.Error("Failed to update expense", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(exp, "Expense updated"))
}

// Delete removes an expense permanently
func (ec *ExpenseController) Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	result := ec.DB.Delete(&expenseModel.Expense{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete expense", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(result.Error.Error()))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.Fail("expense not found"))
	}

	return c.JSON(types.OkMessage(nil, "Expense deleted"))
}

// ParseBill runs an uploaded bill image through Gemini Vision and
// returns a suggested expense entry
func (ec *ExpenseController) ParseBill(c *fiber.Ctx) error {
	file, err := c.FormFile("bill")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("bill file is required"))
	}
	if file.Size > constants.MaxUploadSizeMB*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("file too large"))
	}

	mimeType := file.Header.Get("Content-Type")
	if !billscan.IsValidImageType(mimeType) {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("unsupported image type " + mimeType))
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}
	defer src.Close()

	imageBytes, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	result, err := billscan.ParseBill(c.Context(), imageBytes, mimeType)
	if err != nil {
		logger.Error("Failed to parse bill image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(result, "Bill parsed successfully"))
}
