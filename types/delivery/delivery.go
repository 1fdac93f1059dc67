package delivery

import (
	"fmt"

	deliveryModel "cobbler-shop/models/delivery"
)

// ScheduleRequest books the hand-over. The method is checked before any
// database write.
type ScheduleRequest struct {
	DeliveryMethod  string  `json:"deliveryMethod" validate:"required,oneof=customer-pickup home-delivery"`
	ScheduledTime   string  `json:"scheduledTime" validate:"required"`
	DeliveryAddress *string `json:"deliveryAddress"`
	DeliveryNotes   *string `json:"deliveryNotes"`
}

func (r ScheduleRequest) Validate() error {
	if !deliveryModel.Method(r.DeliveryMethod).IsValid() {
		return fmt.Errorf("deliveryMethod must be either 'customer-pickup' or 'home-delivery'")
	}
	if r.ScheduledTime == "" {
		return fmt.Errorf("scheduledTime is required")
	}
	if deliveryModel.Method(r.DeliveryMethod) == deliveryModel.MethodHomeDelivery &&
		(r.DeliveryAddress == nil || *r.DeliveryAddress == "") {
		return fmt.Errorf("deliveryAddress is required for home-delivery")
	}
	return nil
}

// OutForDeliveryRequest dispatches the item with an assignee
type OutForDeliveryRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required,max=100"`
}

func (r OutForDeliveryRequest) Validate() error {
	if r.AssignedTo == "" {
		return fmt.Errorf("assignedTo is required")
	}
	return nil
}

// CompleteRequest closes out the delivery with proof
type CompleteRequest struct {
	DeliveryProofPhoto string  `json:"deliveryProofPhoto" validate:"required"`
	CustomerSignature  *string `json:"customerSignature"`
	DeliveryNotes      *string `json:"deliveryNotes"`
}

func (r CompleteRequest) Validate() error {
	if r.DeliveryProofPhoto == "" {
		return fmt.Errorf("deliveryProofPhoto is required")
	}
	return nil
}
