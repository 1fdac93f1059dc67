package expense

import (
	"fmt"

	expenseModel "cobbler-shop/models/expense"
)

// CreateRequest is the payload for a new expense. Multipart submissions
// with a bill file are normalized into this shape before validation.
type CreateRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Amount      float64 `json:"amount" validate:"required,min=0"`
	Category    string  `json:"category" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	EmployeeID  *uint   `json:"employeeId"`
}

func (r CreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if !expenseModel.Category(r.Category).IsValid() {
		return fmt.Errorf("invalid category '%s'", r.Category)
	}
	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	return nil
}

// UpdateRequest edits an existing expense; every field optional
type UpdateRequest struct {
	Title       *string  `json:"title"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Notes       *string  `json:"notes"`
	EmployeeID  *uint    `json:"employeeId"`
}

func (r UpdateRequest) Validate() error {
	if r.Amount != nil && *r.Amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if r.Category != nil && !expenseModel.Category(*r.Category).IsValid() {
		return fmt.Errorf("invalid category '%s'", *r.Category)
	}
	return nil
}

// Filter is the typed filter object for listing and stats. Absent
// fields are skipped; present fields compose with AND.
type Filter struct {
	Month    int    `query:"month"`
	Year     int    `query:"year"`
	Category string `query:"category"`
	Search   string `query:"search"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

func (f Filter) Validate() error {
	if f.Month < 0 || f.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if f.Month != 0 && f.Year == 0 {
		return fmt.Errorf("year is required when month is given")
	}
	if f.Category != "" && !expenseModel.Category(f.Category).IsValid() {
		return fmt.Errorf("invalid category '%s'", f.Category)
	}
	if f.Page < 0 || f.Limit < 0 {
		return fmt.Errorf("page and limit must not be negative")
	}
	return nil
}

// EmployeeRequest creates or updates an employee
type EmployeeRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Role          string  `json:"role" validate:"required,max=255"`
	MonthlySalary float64 `json:"monthlySalary" validate:"min=0"`
	DateAdded     string  `json:"dateAdded"`
}

func (r EmployeeRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Role == "" {
		return fmt.Errorf("role is required")
	}
	if r.MonthlySalary < 0 {
		return fmt.Errorf("monthlySalary must not be negative")
	}
	return nil
}
