package expense

import (
	"errors"
	"time"

	"cobbler-shop/logger"
	expenseModel "cobbler-shop/models/expense"
	"cobbler-shop/types"
	expenseTypes "cobbler-shop/types/expense"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListEmployees returns active employees only; soft-deleted rows never
// appear here even though their expenses stay retrievable.
func (ec *ExpenseController) ListEmployees(c *fiber.Ctx) error {
	var employees []expenseModel.Employee
	if err := ec.DB.Where("is_active = ?", true).
		Order("name ASC").Find(&employees).Error; err != nil {
		logger.Error("Failed to list employees", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}
	return c.JSON(types.Ok(employees))
}

// CreateEmployee adds a worker to the payroll
func (ec *ExpenseController) CreateEmployee(c *fiber.Ctx) error {
	var req expenseTypes.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	dateAdded := time.Now()
	if req.DateAdded != "" {
		parsed, err := utils.ParseDate(req.DateAdded)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
		}
		dateAdded = parsed
	}

	emp := expenseModel.Employee{
		Name:          req.Name,
		Role:          req.Role,
		MonthlySalary: req.MonthlySalary,
		DateAdded:     dateAdded,
		IsActive:      true,
	}
	if err := ec.DB.Create(&emp).Error; err != nil {
		logger.Error("Failed to create employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	logger.Success("Added employee " + emp.Name)
	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(emp, "Employee added"))
}

// UpdateEmployee edits an active employee
func (ec *ExpenseController) UpdateEmployee(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req expenseTypes.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var emp expenseModel.Employee
	if err := ec.DB.Where("id = ? AND is_active = ?", id, true).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("employee not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	updates := map[string]interface{}{
		"name":           req.Name,
		"role":           req.Role,
		"monthly_salary": req.MonthlySalary,
	}
	if req.DateAdded != "" {
		parsed, err := utils.ParseDate(req.DateAdded)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
		}
		updates["date_added"] = parsed
	}

	if err := ec.DB.Model(&emp).Updates(updates).Error; err != nil {
		logger.Error("Failed to update employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(emp, "Employee updated"))
}

// DeleteEmployee soft-deletes by flipping is_active; historical
// expenses keep their employee link.
func (ec *ExpenseController) DeleteEmployee(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	result := ec.DB.Model(&expenseModel.Employee{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to delete employee", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(result.Error.Error()))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.Fail("employee not found"))
	}

	return c.JSON(types.OkMessage(nil, "Employee removed"))
}
