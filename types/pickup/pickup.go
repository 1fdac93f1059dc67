package pickup

import "fmt"

// ScheduleRequest sets the pickup time for a converted enquiry
type ScheduleRequest struct {
	ScheduledTime string `json:"scheduledTime" validate:"required"`
}

func (r ScheduleRequest) Validate() error {
	if r.ScheduledTime == "" {
		return fmt.Errorf("scheduledTime is required")
	}
	return nil
}

// AssignRequest hands the pickup to a staff member
type AssignRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required,max=100"`
}

func (r AssignRequest) Validate() error {
	if r.AssignedTo == "" {
		return fmt.Errorf("assignedTo is required")
	}
	return nil
}

// CollectRequest records collection from the customer, verified by PIN
type CollectRequest struct {
	Pin             string  `json:"pin" validate:"required"`
	CollectionPhoto string  `json:"collectionPhoto" validate:"required"`
	CollectionNotes *string `json:"collectionNotes"`
}

func (r CollectRequest) Validate() error {
	if r.Pin == "" {
		return fmt.Errorf("pin is required")
	}
	if r.CollectionPhoto == "" {
		return fmt.Errorf("collectionPhoto is required")
	}
	return nil
}

// ReceiveRequest records arrival of the item at the shop and moves the
// enquiry into the service stage
type ReceiveRequest struct {
	ReceivedPhoto string  `json:"receivedPhoto" validate:"required"`
	ReceivedNotes *string `json:"receivedNotes"`
}

func (r ReceiveRequest) Validate() error {
	if r.ReceivedPhoto == "" {
		return fmt.Errorf("receivedPhoto is required")
	}
	return nil
}
