package enquiry

import (
	"time"
)

// Enquiry represents a customer repair request and its position in the workflow
type Enquiry struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CustomerName string      `gorm:"type:varchar(255);not null;index" json:"customerName"`
	Phone        string      `gorm:"type:varchar(20);not null" json:"phone"`
	Address      string      `gorm:"type:text;not null" json:"address"`
	Message      string      `gorm:"type:text;not null" json:"message"`
	InquiryType  InquiryType `gorm:"size:30;not null" json:"inquiryType"`
	Product      Product     `gorm:"size:50;not null" json:"product"`
	Quantity     int         `gorm:"not null;default:1" json:"quantity"`
	Date         time.Time   `gorm:"type:date;not null;index" json:"date"`

	Status      Status     `gorm:"size:20;not null;default:new;index" json:"status"`
	Contacted   bool       `gorm:"default:false" json:"contacted"`
	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	AssignedTo  *string    `gorm:"type:varchar(255)" json:"assignedTo,omitempty"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`

	CurrentStage Stage    `gorm:"size:20;not null;default:enquiry;index" json:"currentStage"`
	QuotedAmount *float64 `gorm:"type:decimal(10,2)" json:"quotedAmount,omitempty"`
	FinalAmount  *float64 `gorm:"type:decimal(10,2)" json:"finalAmount,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the Enquiry model
func (Enquiry) TableName() string {
	return "enquiries"
}
