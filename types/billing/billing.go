package billing

import "fmt"

// InvoiceItemRequest is one requested invoice line
type InvoiceItemRequest struct {
	ServiceType   string  `json:"serviceType" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,min=0"`
	DiscountValue float64 `json:"discountValue" validate:"omitempty,min=0,max=100"`
	Description   *string `json:"description"`
}

// GenerateInvoiceRequest creates the invoice for a billing-stage enquiry
type GenerateInvoiceRequest struct {
	Items       []InvoiceItemRequest `json:"items" validate:"required,min=1"`
	GSTIncluded *bool                `json:"gstIncluded"`
	GSTRate     *float64             `json:"gstRate"`
	Notes       *string              `json:"notes"`
}

func (r GenerateInvoiceRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("at least one invoice item is required")
	}
	for i, item := range r.Items {
		if item.ServiceType == "" {
			return fmt.Errorf("items[%d].serviceType is required", i)
		}
		if item.Amount < 0 {
			return fmt.Errorf("items[%d].amount must not be negative", i)
		}
		if item.DiscountValue < 0 || item.DiscountValue > 100 {
			return fmt.Errorf("items[%d].discountValue must be between 0 and 100", i)
		}
	}
	if r.GSTRate != nil && (*r.GSTRate < 0 || *r.GSTRate > 100) {
		return fmt.Errorf("gstRate must be between 0 and 100")
	}
	return nil
}
