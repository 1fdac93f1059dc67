package enquiry

import (
	"fmt"

	enquiryModel "cobbler-shop/models/enquiry"
)

// CreateRequest is the payload for a new customer enquiry
type CreateRequest struct {
	CustomerName string  `json:"customerName" validate:"required,min=1,max=255"`
	Phone        string  `json:"phone" validate:"required,min=7,max=20"`
	Address      string  `json:"address" validate:"required"`
	Message      string  `json:"message" validate:"required"`
	InquiryType  string  `json:"inquiryType" validate:"required"`
	Product      string  `json:"product" validate:"required"`
	Quantity     int     `json:"quantity" validate:"omitempty,min=1"`
	Date         string  `json:"date" validate:"required"`
	Notes        *string `json:"notes" validate:"omitempty"`
	QuotedAmount *float64 `json:"quotedAmount" validate:"omitempty,min=0"`
}

func (r CreateRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("customerName is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}
	if r.Message == "" {
		return fmt.Errorf("message is required")
	}
	if !enquiryModel.InquiryType(r.InquiryType).IsValid() {
		return fmt.Errorf("inquiryType must be one of Instagram, Facebook, WhatsApp, Phone, Walk-in, Website")
	}
	if !enquiryModel.Product(r.Product).IsValid() {
		return fmt.Errorf("product must be one of Bag, Shoe, Wallet, Belt, All type furniture")
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	if r.QuotedAmount != nil && *r.QuotedAmount < 0 {
		return fmt.Errorf("quotedAmount must not be negative")
	}
	return nil
}

// UpdateRequest is the payload for editing an enquiry; every field is optional
type UpdateRequest struct {
	CustomerName *string  `json:"customerName"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	Message      *string  `json:"message"`
	InquiryType  *string  `json:"inquiryType"`
	Product      *string  `json:"product"`
	Quantity     *int     `json:"quantity"`
	Date         *string  `json:"date"`
	Status       *string  `json:"status"`
	AssignedTo   *string  `json:"assignedTo"`
	Notes        *string  `json:"notes"`
	QuotedAmount *float64 `json:"quotedAmount"`
}

func (r UpdateRequest) Validate() error {
	if r.InquiryType != nil && !enquiryModel.InquiryType(*r.InquiryType).IsValid() {
		return fmt.Errorf("invalid inquiryType '%s'", *r.InquiryType)
	}
	if r.Product != nil && !enquiryModel.Product(*r.Product).IsValid() {
		return fmt.Errorf("invalid product '%s'", *r.Product)
	}
	if r.Status != nil && !enquiryModel.Status(*r.Status).IsValid() {
		return fmt.Errorf("invalid status '%s'", *r.Status)
	}
	if r.Quantity != nil && *r.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if r.QuotedAmount != nil && *r.QuotedAmount < 0 {
		return fmt.Errorf("quotedAmount must not be negative")
	}
	return nil
}

// ContactedRequest marks an enquiry as contacted
type ContactedRequest struct {
	Contacted bool    `json:"contacted"`
	Notes     *string `json:"notes"`
}
