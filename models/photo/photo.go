package photo

import (
	"time"

	"cobbler-shop/models/enquiry"
)

// Photo stores a base64-encoded image captured at some stage of the workflow
type Photo struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryID uint            `gorm:"not null;index" json:"enquiryId"`
	Enquiry   enquiry.Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`

	Stage     enquiry.Stage `gorm:"size:20;not null;index" json:"stage"`
	PhotoType Type          `gorm:"size:30;not null" json:"photoType"`
	PhotoData string        `gorm:"type:longtext;not null" json:"photoData"`
	Notes     *string       `gorm:"type:text" json:"notes,omitempty"`

	ServiceTypeID   *uint `json:"serviceTypeId,omitempty"`
	ServiceDetailID *uint `json:"serviceDetailId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName sets the table name for the Photo model
func (Photo) TableName() string {
	return "photos"
}

// Type classifies what a photo documents
type Type string

const (
	TypeBefore            Type = "before_photo"
	TypeAfter             Type = "after_photo"
	TypeOverallBefore     Type = "overall_before"
	TypeOverallAfter      Type = "overall_after"
	TypeCollectionProof   Type = "collection_proof"
	TypeReceivedCondition Type = "received_condition"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeBefore, TypeAfter, TypeOverallBefore, TypeOverallAfter,
		TypeCollectionProof, TypeReceivedCondition:
		return true
	default:
		return false
	}
}
