package service

import (
	"fmt"

	serviceModel "cobbler-shop/models/service"
)

// AddTypeRequest adds one line of work to an in-service enquiry
type AddTypeRequest struct {
	ServiceType string  `json:"serviceType" validate:"required"`
	Department  *string `json:"department"`
	AssignedTo  *string `json:"assignedTo"`
	WorkNotes   *string `json:"workNotes"`
	BeforePhoto *string `json:"beforePhoto"`
}

func (r AddTypeRequest) Validate() error {
	if !serviceModel.Category(r.ServiceType).IsValid() {
		return fmt.Errorf("serviceType must be one of Sole Replacement, Zipper Repair, Cleaning & Polish, Stitching, Leather Treatment, Hardware Repair")
	}
	return nil
}

// UpdateTypeStatusRequest moves one work line through pending → in-progress → done
type UpdateTypeStatusRequest struct {
	Status     string  `json:"status" validate:"required"`
	WorkNotes  *string `json:"workNotes"`
	AfterPhoto *string `json:"afterPhoto"`
}

func (r UpdateTypeStatusRequest) Validate() error {
	if !serviceModel.TaskStatus(r.Status).IsValid() {
		return fmt.Errorf("status must be one of pending, in-progress, done")
	}
	return nil
}

// UpdateCostRequest sets the cost estimate or the actual cost
type UpdateCostRequest struct {
	EstimatedCost *float64 `json:"estimatedCost"`
	ActualCost    *float64 `json:"actualCost"`
	WorkNotes     *string  `json:"workNotes"`
}

func (r UpdateCostRequest) Validate() error {
	if r.EstimatedCost == nil && r.ActualCost == nil && r.WorkNotes == nil {
		return fmt.Errorf("at least one of estimatedCost, actualCost, workNotes is required")
	}
	if r.EstimatedCost != nil && *r.EstimatedCost < 0 {
		return fmt.Errorf("estimatedCost must not be negative")
	}
	if r.ActualCost != nil && *r.ActualCost < 0 {
		return fmt.Errorf("actualCost must not be negative")
	}
	return nil
}

// CompleteRequest finishes the service stage with an overall after photo
type CompleteRequest struct {
	OverallAfterPhoto string   `json:"overallAfterPhoto" validate:"required"`
	OverallAfterNotes *string  `json:"overallAfterNotes"`
	ActualCost        *float64 `json:"actualCost"`
}

func (r CompleteRequest) Validate() error {
	if r.OverallAfterPhoto == "" {
		return fmt.Errorf("overallAfterPhoto is required")
	}
	if r.ActualCost != nil && *r.ActualCost < 0 {
		return fmt.Errorf("actualCost must not be negative")
	}
	return nil
}
