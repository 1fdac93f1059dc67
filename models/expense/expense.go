package expense

import (
	"time"
)

// Employee is a shop worker that salary expenses can be booked against.
// Deletion is soft via IsActive so historical expenses keep their link.
type Employee struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name          string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Role          string    `gorm:"type:varchar(255);not null;index" json:"role"`
	MonthlySalary float64   `gorm:"type:decimal(10,2);not null;default:0" json:"monthlySalary"`
	DateAdded     time.Time `gorm:"type:date;not null;index" json:"dateAdded"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// Expense is a single spend entry in the shop ledger
type Expense struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Title       string    `gorm:"type:varchar(255);not null;index" json:"title"`
	Amount      float64   `gorm:"type:decimal(10,2);not null;index" json:"amount"`
	Category    Category  `gorm:"size:50;not null;index" json:"category"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	BillURL     *string   `gorm:"type:text" json:"billUrl,omitempty"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`

	EmployeeID *uint     `gorm:"index" json:"employeeId,omitempty"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL" json:"employee,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// Category is the closed set of ledger buckets an expense can fall into
type Category string

const (
	CategoryMaterials            Category = "Materials"
	CategoryTools                Category = "Tools"
	CategoryRent                 Category = "Rent"
	CategoryUtilities            Category = "Utilities"
	CategoryTransportation       Category = "Transportation"
	CategoryMarketing            Category = "Marketing"
	CategoryStaffSalaries        Category = "Staff Salaries"
	CategoryOfficeSupplies       Category = "Office Supplies"
	CategoryMaintenance          Category = "Maintenance"
	CategoryProfessionalServices Category = "Professional Services"
	CategoryInsurance            Category = "Insurance"
	CategoryMiscellaneous        Category = "Miscellaneous"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, valid := range GetAllCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// GetAllCategories returns every valid expense category
func GetAllCategories() []Category {
	return []Category{
		CategoryMaterials, CategoryTools, CategoryRent, CategoryUtilities,
		CategoryTransportation, CategoryMarketing, CategoryStaffSalaries,
		CategoryOfficeSupplies, CategoryMaintenance,
		CategoryProfessionalServices, CategoryInsurance, CategoryMiscellaneous,
	}
}
