package service

import (
	"errors"
	"time"

	"cobbler-shop/logger"
	enquiryModel "cobbler-shop/models/enquiry"
	photoModel "cobbler-shop/models/photo"
	serviceModel "cobbler-shop/models/service"
	"cobbler-shop/services/workflow"
	"cobbler-shop/types"
	serviceTypes "cobbler-shop/types/service"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ServiceController handles the repair-work stage of the workflow
type ServiceController struct {
	DB *gorm.DB
}

// NewServiceController creates a new service controller
func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

type serviceView struct {
	serviceModel.ServiceDetail
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
}

// ListEnquiries returns every enquiry currently in the service stage,
// each with its work lines
func (sc *ServiceController) ListEnquiries(c *fiber.Ctx) error {
	var views []serviceView
	err := sc.DB.Model(&serviceModel.ServiceDetail{}).
		Select("service_details.*, enquiries.customer_name, enquiries.phone, enquiries.product, enquiries.quantity").
		Joins("JOIN enquiries ON enquiries.id = service_details.enquiry_id").
		Where("enquiries.current_stage = ?", enquiryModel.StageService).
		Order("service_details.created_at DESC").
		Scan(&views).Error
	if err != nil {
		logger.Error("Failed to list service enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	// Attach work lines per enquiry
	result := make([]fiber.Map, 0, len(views))
	for _, v := range views {
		var lines []serviceModel.ServiceType
		if err := sc.DB.Where("enquiry_id = ?", v.EnquiryID).
			Order("created_at ASC").Find(&lines).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
		}
		result = append(result, fiber.Map{
			"detail":       v,
			"serviceTypes": lines,
		})
	}

	return c.JSON(types.Ok(result))
}

// GetEnquiry returns one in-service enquiry with its work lines and photos
func (sc *ServiceController) GetEnquiry(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var view serviceView
	err = sc.DB.Model(&serviceModel.ServiceDetail{}).
		Select("service_details.*, enquiries.customer_name, enquiries.phone, enquiries.product, enquiries.quantity").
		Joins("JOIN enquiries ON enquiries.id = service_details.enquiry_id").
		Where("service_details.enquiry_id = ?", id).
		First(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("service detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var lines []serviceModel.ServiceType
	if err := sc.DB.Where("enquiry_id = ?", id).Order("created_at ASC").Find(&lines).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var photos []photoModel.Photo
	if err := sc.DB.Where("enquiry_id = ? AND stage = ?", id, enquiryModel.StageService).
		Find(&photos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"detail":       view,
		"serviceTypes": lines,
		"photos":       photos,
	}))
}

// AddType adds one line of work, optionally with a before photo
func (sc *ServiceController) AddType(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req serviceTypes.AddTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var detail serviceModel.ServiceDetail
	if err := sc.DB.Where("enquiry_id = ?", id).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("service detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var line serviceModel.ServiceType
	txErr := sc.DB.Transaction(func(tx *gorm.DB) error {
		line = serviceModel.ServiceType{
			EnquiryID:   id,
			ServiceType: serviceModel.Category(req.ServiceType),
			Status:      serviceModel.TaskPending,
			Department:  req.Department,
			AssignedTo:  req.AssignedTo,
			WorkNotes:   req.WorkNotes,
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		if req.BeforePhoto != nil && *req.BeforePhoto != "" {
			before := photoModel.Photo{
				EnquiryID:       id,
				Stage:           enquiryModel.StageService,
				PhotoType:       photoModel.TypeBefore,
				PhotoData:       *req.BeforePhoto,
				ServiceTypeID:   &line.ID,
				ServiceDetailID: &detail.ID,
			}
			if err := tx.Create(&before).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		logger.Error("Failed to add service type", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(line, "Service type added"))
}

// UpdateTypeStatus moves a work line through pending → in-progress → done,
// stamping started/completed times and storing an optional after photo
func (sc *ServiceController) UpdateTypeStatus(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}
	typeID, err := utils.ParseID(c, "typeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req serviceTypes.UpdateTypeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var line serviceModel.ServiceType
	if err := sc.DB.Where("id = ? AND enquiry_id = ?", typeID, id).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("service type not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	nowTime := time.Now()
	updates := map[string]interface{}{"status": req.Status}
	switch serviceModel.TaskStatus(req.Status) {
	case serviceModel.TaskInProgress:
		if line.StartedAt == nil {
			updates["started_at"] = nowTime
		}
	case serviceModel.TaskDone:
		updates["completed_at"] = nowTime
		if line.StartedAt == nil {
			updates["started_at"] = nowTime
		}
	}
	if req.WorkNotes != nil {
		updates["work_notes"] = *req.WorkNotes
	}

	txErr := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&line).Updates(updates).Error; err != nil {
			return err
		}

		if req.AfterPhoto != nil && *req.AfterPhoto != "" {
			after := photoModel.Photo{
				EnquiryID:     id,
				Stage:         enquiryModel.StageService,
				PhotoType:     photoModel.TypeAfter,
				PhotoData:     *req.AfterPhoto,
				ServiceTypeID: &line.ID,
			}
			if err := tx.Create(&after).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		logger.Error("Failed to update service type status", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	return c.JSON(types.OkMessage(line, "Service type updated"))
}

// UpdateCost sets the estimated/actual cost and work notes
func (sc *ServiceController) UpdateCost(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req serviceTypes.UpdateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var detail serviceModel.ServiceDetail
	if err := sc.DB.Where("enquiry_id = ?", id).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("service detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	updates := map[string]interface{}{}
	if req.EstimatedCost != nil {
		updates["estimated_cost"] = *req.EstimatedCost
	}
	if req.ActualCost != nil {
		updates["actual_cost"] = *req.ActualCost
	}
	if req.WorkNotes != nil {
		updates["work_notes"] = *req.WorkNotes
	}

	if err := sc.DB.Model(&detail).Updates(updates).Error; err != nil {
		logger.Error("Failed to update service cost", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(detail, "Service cost updated"))
}

// Complete finishes the service stage. Every work line must be done;
// the overall after photo, cost and stage advance commit atomically.
func (sc *ServiceController) Complete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req serviceTypes.CompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var detail serviceModel.ServiceDetail
	if err := sc.DB.Where("enquiry_id = ?", id).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("service detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var unfinished int64
	if err := sc.DB.Model(&serviceModel.ServiceType{}).
		Where("enquiry_id = ? AND status != ?", id, serviceModel.TaskDone).
		Count(&unfinished).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}
	if unfinished > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("all service types must be done before completing service"))
	}

	txErr := sc.DB.Transaction(func(tx *gorm.DB) error {
		overall := photoModel.Photo{
			EnquiryID:       id,
			Stage:           enquiryModel.StageService,
			PhotoType:       photoModel.TypeOverallAfter,
			PhotoData:       req.OverallAfterPhoto,
			Notes:           req.OverallAfterNotes,
			ServiceDetailID: &detail.ID,
		}
		if err := tx.Create(&overall).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"completed_at":           time.Now(),
			"overall_after_photo_id": overall.ID,
			"overall_after_notes":    req.OverallAfterNotes,
		}
		if req.ActualCost != nil {
			updates["actual_cost"] = *req.ActualCost
		}
		if err := tx.Model(&detail).Updates(updates).Error; err != nil {
			return err
		}

		return workflow.Advance(tx, id, enquiryModel.StageService, enquiryModel.StageBilling)
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		if workflow.IsStageError(txErr) {
			return c.Status(fiber.StatusConflict).JSON(types.Fail(txErr.Error()))
		}
		logger.Error("Failed to complete service", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Service completed, enquiry moved to billing stage")
	return c.JSON(types.OkMessage(detail, "Service completed"))
}
