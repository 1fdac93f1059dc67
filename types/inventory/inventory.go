package inventory

import "fmt"

// CreateItemRequest adds a new stocked item
type CreateItemRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Category      string  `json:"category" validate:"required,max=255"`
	Quantity      int     `json:"quantity" validate:"min=0"`
	MinStock      *int    `json:"minStock" validate:"omitempty,min=0"`
	Unit          string  `json:"unit" validate:"required,max=50"`
	PurchasePrice float64 `json:"purchasePrice" validate:"min=0"`
	SellingPrice  float64 `json:"sellingPrice" validate:"min=0"`
	UpdatedBy     string  `json:"updatedBy" validate:"required,max=255"`
}

func (r CreateItemRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	if r.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if r.MinStock != nil && *r.MinStock < 0 {
		return fmt.Errorf("minStock must not be negative")
	}
	if r.PurchasePrice < 0 || r.SellingPrice < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if r.UpdatedBy == "" {
		return fmt.Errorf("updatedBy is required")
	}
	return nil
}

// UpdateItemRequest edits an item; a quantity change appends one history row
type UpdateItemRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	Quantity      *int     `json:"quantity"`
	MinStock      *int     `json:"minStock"`
	Unit          *string  `json:"unit"`
	PurchasePrice *float64 `json:"purchasePrice"`
	SellingPrice  *float64 `json:"sellingPrice"`
	UpdatedBy     string   `json:"updatedBy" validate:"required,max=255"`
}

func (r UpdateItemRequest) Validate() error {
	if r.UpdatedBy == "" {
		return fmt.Errorf("updatedBy is required")
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if r.MinStock != nil && *r.MinStock < 0 {
		return fmt.Errorf("minStock must not be negative")
	}
	if r.PurchasePrice != nil && *r.PurchasePrice < 0 {
		return fmt.Errorf("purchasePrice must not be negative")
	}
	if r.SellingPrice != nil && *r.SellingPrice < 0 {
		return fmt.Errorf("sellingPrice must not be negative")
	}
	return nil
}
