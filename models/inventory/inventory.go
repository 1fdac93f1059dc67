package inventory

import (
	"time"
)

// InventoryItem is a stocked material or consumable
type InventoryItem struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name          string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Category      string    `gorm:"type:varchar(255);not null;index" json:"category"`
	Quantity      int       `gorm:"not null;default:0;index" json:"quantity"`
	MinStock      int       `gorm:"not null;default:5" json:"minStock"`
	Unit          string    `gorm:"type:varchar(50);not null" json:"unit"`
	PurchasePrice float64   `gorm:"type:decimal(10,2);not null" json:"purchasePrice"`
	SellingPrice  float64   `gorm:"type:decimal(10,2);not null" json:"sellingPrice"`
	LastUpdated   time.Time `gorm:"type:date;not null" json:"lastUpdated"`
	LastUpdatedBy *string   `gorm:"type:varchar(255)" json:"lastUpdatedBy,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryHistory is an append-only audit row for quantity-changing actions.
// Rows are never mutated or compacted after insert.
type InventoryHistory struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	InventoryItemID uint          `gorm:"not null;index" json:"inventoryItemId"`
	Item            InventoryItem `gorm:"foreignKey:InventoryItemID;constraint:OnDelete:CASCADE" json:"-"`

	Action         Action `gorm:"size:20;not null;index" json:"action"`
	QuantityChange int    `gorm:"not null" json:"quantityChange"`
	NewQuantity    int    `gorm:"not null" json:"newQuantity"`
	UpdatedBy      string `gorm:"type:varchar(255);not null" json:"updatedBy"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName sets the table name for the InventoryHistory model
func (InventoryHistory) TableName() string {
	return "inventory_history"
}

// Action records what kind of change produced a history row
type Action string

const (
	ActionCreated Action = "Created"
	ActionUpdated Action = "Updated"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionCreated, ActionUpdated:
		return true
	default:
		return false
	}
}
