package pickup

import (
	"errors"
	"time"

	"cobbler-shop/logger"
	enquiryModel "cobbler-shop/models/enquiry"
	photoModel "cobbler-shop/models/photo"
	pickupModel "cobbler-shop/models/pickup"
	serviceModel "cobbler-shop/models/service"
	"cobbler-shop/services/workflow"
	"cobbler-shop/types"
	pickupTypes "cobbler-shop/types/pickup"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PickupController handles the pickup stage of the workflow
type PickupController struct {
	DB *gorm.DB
}

// NewPickupController creates a new pickup controller
func NewPickupController(db *gorm.DB) *PickupController {
	return &PickupController{DB: db}
}

// pickupView is the denormalized row returned by the pickup listing
type pickupView struct {
	pickupModel.PickupDetail
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
}

// ListEnquiries returns every enquiry currently in the pickup stage
func (pc *PickupController) ListEnquiries(c *fiber.Ctx) error {
	var views []pickupView
	err := pc.DB.Model(&pickupModel.PickupDetail{}).
		Select("pickup_details.*, enquiries.customer_name, enquiries.phone, enquiries.address, enquiries.product, enquiries.quantity").
		Joins("JOIN enquiries ON enquiries.id = pickup_details.enquiry_id").
		Where("enquiries.current_stage = ?", enquiryModel.StagePickup).
		Order("pickup_details.created_at DESC").
		Scan(&views).Error
	if err != nil {
		logger.Error("Failed to list pickup enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(views))
}

// GetEnquiry returns the pickup detail of one in-pickup enquiry
func (pc *PickupController) GetEnquiry(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var view pickupView
	err = pc.DB.Model(&pickupModel.PickupDetail{}).
		Select("pickup_details.*, enquiries.customer_name, enquiries.phone, enquiries.address, enquiries.product, enquiries.quantity").
		Joins("JOIN enquiries ON enquiries.id = pickup_details.enquiry_id").
		Where("pickup_details.enquiry_id = ? AND enquiries.current_stage = ?", id, enquiryModel.StagePickup).
		First(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found in pickup stage"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(view))
}

func (pc *PickupController) loadDetail(id uint) (*pickupModel.PickupDetail, error) {
	var detail pickupModel.PickupDetail
	if err := pc.DB.Where("enquiry_id = ?", id).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// Schedule sets the pickup time
func (pc *PickupController) Schedule(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req pickupTypes.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	scheduledTime, err := utils.ParseDateTime(req.ScheduledTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	detail, err := pc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("pickup detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	if err := pc.DB.Model(detail).Updates(map[string]interface{}{
		"scheduled_time": scheduledTime,
		"status":         pickupModel.StatusScheduled,
	}).Error; err != nil {
		logger.Error("Failed to schedule pickup", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(detail, "Pickup scheduled"))
}

// Assign hands the pickup to a staff member
func (pc *PickupController) Assign(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req pickupTypes.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	detail, err := pc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("pickup detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	if err := pc.DB.Model(detail).Updates(map[string]interface{}{
		"assigned_to": req.AssignedTo,
		"status":      pickupModel.StatusAssigned,
	}).Error; err != nil {
		logger.Error("Failed to assign pickup", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(detail, "Pickup assigned"))
}

// Collect records collection from the customer. The collection PIN must
// match and a proof photo is stored.
func (pc *PickupController) Collect(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req pickupTypes.CollectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	detail, err := pc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("pickup detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	if detail.Pin == nil || *detail.Pin != req.Pin {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("incorrect collection pin"))
	}

	txErr := pc.DB.Transaction(func(tx *gorm.DB) error {
		proof := photoModel.Photo{
			EnquiryID: id,
			Stage:     enquiryModel.StagePickup,
			PhotoType: photoModel.TypeCollectionProof,
			PhotoData: req.CollectionPhoto,
			Notes:     req.CollectionNotes,
		}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}

		return tx.Model(detail).Updates(map[string]interface{}{
			"status":              pickupModel.StatusCollected,
			"collected_at":        time.Now(),
			"collection_notes":    req.CollectionNotes,
			"collection_photo_id": proof.ID,
		}).Error
	})
	if txErr != nil {
		logger.Error("Failed to record collection", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	return c.JSON(types.OkMessage(detail, "Item collected"))
}

// Receive records the item arriving at the shop, creates the service
// detail row and advances the workflow to the service stage atomically.
func (pc *PickupController) Receive(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req pickupTypes.ReceiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	detail, err := pc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("pickup detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	txErr := pc.DB.Transaction(func(tx *gorm.DB) error {
		received := photoModel.Photo{
			EnquiryID: id,
			Stage:     enquiryModel.StagePickup,
			PhotoType: photoModel.TypeReceivedCondition,
			PhotoData: req.ReceivedPhoto,
			Notes:     req.ReceivedNotes,
		}
		if err := tx.Create(&received).Error; err != nil {
			return err
		}

		if err := tx.Model(detail).Updates(map[string]interface{}{
			"status":            pickupModel.StatusReceived,
			"received_photo_id": received.ID,
			"received_notes":    req.ReceivedNotes,
		}).Error; err != nil {
			return err
		}

		serviceDetail := serviceModel.ServiceDetail{
			EnquiryID:       id,
			ReceivedPhotoID: &received.ID,
			ReceivedNotes:   req.ReceivedNotes,
		}
		if err := tx.Create(&serviceDetail).Error; err != nil {
			return err
		}

		return workflow.Advance(tx, id, enquiryModel.StagePickup, enquiryModel.StageService)
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		if workflow.IsStageError(txErr) {
			return c.Status(fiber.StatusConflict).JSON(types.Fail(txErr.Error()))
		}
		logger.Error("Failed to receive pickup", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Pickup received, enquiry moved to service stage")
	return c.JSON(types.OkMessage(detail, "Item received at shop"))
}

// Stats returns pickup counts grouped by status
func (pc *PickupController) Stats(c *fiber.Ctx) error {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var byStatus []statusCount
	if err := pc.DB.Model(&pickupModel.PickupDetail{}).
		Select("pickup_details.status, COUNT(*) as count").
		Joins("JOIN enquiries ON enquiries.id = pickup_details.enquiry_id").
		Where("enquiries.current_stage = ?", enquiryModel.StagePickup).
		Group("pickup_details.status").
		Scan(&byStatus).Error; err != nil {
		logger.Error("Failed to aggregate pickup stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var pending int64
	if err := pc.DB.Model(&enquiryModel.Enquiry{}).
		Where("current_stage = ?", enquiryModel.StagePickup).
		Count(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"pending":  pending,
		"byStatus": byStatus,
	}))
}
