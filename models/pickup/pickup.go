package pickup

import (
	"time"

	"cobbler-shop/models/enquiry"
)

// PickupStatus tracks a pickup through schedule → assign → collect → receive
type PickupStatus string

const (
	StatusScheduled PickupStatus = "scheduled"
	StatusAssigned  PickupStatus = "assigned"
	StatusCollected PickupStatus = "collected"
	StatusReceived  PickupStatus = "received"
)

func (s PickupStatus) String() string {
	return string(s)
}

func (s PickupStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusAssigned, StatusCollected, StatusReceived:
		return true
	default:
		return false
	}
}

// PickupDetail is the 1:1 pickup-stage record for an enquiry
type PickupDetail struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryID uint            `gorm:"not null;uniqueIndex" json:"enquiryId"`
	Enquiry   enquiry.Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`

	Status          PickupStatus `gorm:"size:20;not null;default:scheduled;index" json:"status"`
	ScheduledTime   *time.Time   `json:"scheduledTime,omitempty"`
	AssignedTo      *string      `gorm:"type:varchar(100);index" json:"assignedTo,omitempty"`
	CollectionNotes *string      `gorm:"type:text" json:"collectionNotes,omitempty"`
	CollectedAt     *time.Time   `json:"collectedAt,omitempty"`

	// PIN handed to the customer; checked when the item is collected.
	Pin *string `gorm:"type:varchar(10)" json:"pin,omitempty"`

	CollectionPhotoID *uint   `json:"collectionPhotoId,omitempty"`
	ReceivedPhotoID   *uint   `json:"receivedPhotoId,omitempty"`
	ReceivedNotes     *string `gorm:"type:text" json:"receivedNotes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the PickupDetail model
func (PickupDetail) TableName() string {
	return "pickup_details"
}
