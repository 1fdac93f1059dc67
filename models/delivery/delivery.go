package delivery

import (
	"time"

	"cobbler-shop/models/enquiry"
)

// DeliveryDetail is the 1:1 delivery-stage record for an enquiry
type DeliveryDetail struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryID uint            `gorm:"not null;uniqueIndex" json:"enquiryId"`
	Enquiry   enquiry.Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`

	Status            Status     `gorm:"size:20;not null;default:ready;index" json:"status"`
	DeliveryMethod    *Method    `gorm:"size:20" json:"deliveryMethod,omitempty"`
	ScheduledTime     *time.Time `json:"scheduledTime,omitempty"`
	AssignedTo        *string    `gorm:"type:varchar(100)" json:"assignedTo,omitempty"`
	DeliveryAddress   *string    `gorm:"type:text" json:"deliveryAddress,omitempty"`
	DeliveryNotes     *string    `gorm:"type:text" json:"deliveryNotes,omitempty"`
	CustomerSignature *string    `gorm:"type:longtext" json:"customerSignature,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	DeliveryProofID   *uint      `json:"deliveryProofId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the DeliveryDetail model
func (DeliveryDetail) TableName() string {
	return "delivery_details"
}

// Status is the delivery progression of a finished job
type Status string

const (
	StatusReady          Status = "ready"
	StatusScheduled      Status = "scheduled"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReady, StatusScheduled, StatusOutForDelivery, StatusDelivered:
		return true
	default:
		return false
	}
}

// Method is how the finished item reaches the customer
type Method string

const (
	MethodCustomerPickup Method = "customer-pickup"
	MethodHomeDelivery   Method = "home-delivery"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCustomerPickup, MethodHomeDelivery:
		return true
	default:
		return false
	}
}
