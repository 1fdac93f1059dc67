package billing

import (
	"time"

	"cobbler-shop/models/enquiry"
)

// BusinessInfo is the shop identity snapshotted onto an invoice
type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	GSTIN   string `json:"gstin,omitempty"`
}

// BillingDetail is the 1:1 billing-stage record for an enquiry
type BillingDetail struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryID uint            `gorm:"not null;uniqueIndex" json:"enquiryId"`
	Enquiry   enquiry.Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`

	FinalAmount float64 `gorm:"type:decimal(10,2);not null" json:"finalAmount"`
	GSTIncluded bool    `gorm:"not null;default:true" json:"gstIncluded"`
	GSTRate     float64 `gorm:"type:decimal(5,2);not null;default:18" json:"gstRate"`
	GSTAmount   float64 `gorm:"type:decimal(10,2);not null" json:"gstAmount"`
	Subtotal    float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	InvoiceNumber *string    `gorm:"type:varchar(50);index" json:"invoiceNumber,omitempty"`
	InvoiceDate   *time.Time `gorm:"type:date" json:"invoiceDate,omitempty"`

	// Customer snapshot taken at invoice time so later enquiry edits
	// never change an issued invoice.
	CustomerName    string `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerPhone   string `gorm:"type:varchar(20);not null" json:"customerPhone"`
	CustomerAddress string `gorm:"type:text;not null" json:"customerAddress"`

	BusinessInfo *BusinessInfo `gorm:"serializer:json;type:longtext" json:"businessInfo,omitempty"`
	Notes        *string       `gorm:"type:text" json:"notes,omitempty"`

	Items []BillingItem `gorm:"foreignKey:BillingID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generatedAt"`
}

// TableName sets the table name for the BillingDetail model
func (BillingDetail) TableName() string {
	return "billing_details"
}

// BillingItem is one invoice line with its own discount and GST share
type BillingItem struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BillingID uint `gorm:"not null;index" json:"billingId"`

	ServiceType    string  `gorm:"type:varchar(255);not null" json:"serviceType"`
	OriginalAmount float64 `gorm:"type:decimal(10,2);not null" json:"originalAmount"`
	DiscountValue  float64 `gorm:"type:decimal(5,2);not null;default:0" json:"discountValue"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);not null" json:"discountAmount"`
	FinalAmount    float64 `gorm:"type:decimal(10,2);not null" json:"finalAmount"`
	GSTRate        float64 `gorm:"type:decimal(5,2);not null;default:18" json:"gstRate"`
	GSTAmount      float64 `gorm:"type:decimal(10,2);not null" json:"gstAmount"`
	Description    *string `gorm:"type:text" json:"description,omitempty"`
}

// TableName sets the table name for the BillingItem model
func (BillingItem) TableName() string {
	return "billing_items"
}
