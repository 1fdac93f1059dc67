package service

import (
	"time"

	"cobbler-shop/models/enquiry"
)

// ServiceDetail is the 1:1 service-stage record for an enquiry
type ServiceDetail struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryID uint            `gorm:"not null;uniqueIndex" json:"enquiryId"`
	Enquiry   enquiry.Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`

	EstimatedCost *float64   `gorm:"type:decimal(10,2)" json:"estimatedCost,omitempty"`
	ActualCost    *float64   `gorm:"type:decimal(10,2)" json:"actualCost,omitempty"`
	WorkNotes     *string    `gorm:"type:text" json:"workNotes,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`

	ReceivedPhotoID *uint   `json:"receivedPhotoId,omitempty"`
	ReceivedNotes   *string `gorm:"type:text" json:"receivedNotes,omitempty"`

	OverallBeforePhotoID *uint   `json:"overallBeforePhotoId,omitempty"`
	OverallAfterPhotoID  *uint   `json:"overallAfterPhotoId,omitempty"`
	OverallBeforeNotes   *string `gorm:"type:text" json:"overallBeforeNotes,omitempty"`
	OverallAfterNotes    *string `gorm:"type:text" json:"overallAfterNotes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the ServiceDetail model
func (ServiceDetail) TableName() string {
	return "service_details"
}

// ServiceType is one line of work performed for an enquiry (1:N)
type ServiceType struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryID uint            `gorm:"not null;index" json:"enquiryId"`
	Enquiry   enquiry.Enquiry `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"-"`

	ServiceType Category   `gorm:"column:service_type;size:50;not null" json:"serviceType"`
	Status      TaskStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	Department  *string    `gorm:"type:varchar(255)" json:"department,omitempty"`
	AssignedTo  *string    `gorm:"type:varchar(255)" json:"assignedTo,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	WorkNotes   *string    `gorm:"type:text" json:"workNotes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the ServiceType model
func (ServiceType) TableName() string {
	return "service_types"
}

// Category is the kind of repair work offered by the shop
type Category string

const (
	CategorySoleReplacement  Category = "Sole Replacement"
	CategoryZipperRepair     Category = "Zipper Repair"
	CategoryCleaningPolish   Category = "Cleaning & Polish"
	CategoryStitching        Category = "Stitching"
	CategoryLeatherTreatment Category = "Leather Treatment"
	CategoryHardwareRepair   Category = "Hardware Repair"
)

func (c Category) IsValid() bool {
	switch c {
	case CategorySoleReplacement, CategoryZipperRepair, CategoryCleaningPolish,
		CategoryStitching, CategoryLeatherTreatment, CategoryHardwareRepair:
		return true
	default:
		return false
	}
}

// TaskStatus is the progress of a single service type line
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) String() string {
	return string(s)
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone:
		return true
	default:
		return false
	}
}
