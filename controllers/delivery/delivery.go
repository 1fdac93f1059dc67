package delivery

import (
	"errors"
	"time"

	"cobbler-shop/logger"
	deliveryModel "cobbler-shop/models/delivery"
	enquiryModel "cobbler-shop/models/enquiry"
	photoModel "cobbler-shop/models/photo"
	"cobbler-shop/services/workflow"
	"cobbler-shop/types"
	deliveryTypes "cobbler-shop/types/delivery"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DeliveryController handles the delivery stage of the workflow
type DeliveryController struct {
	DB *gorm.DB
}

// NewDeliveryController creates a new delivery controller
func NewDeliveryController(db *gorm.DB) *DeliveryController {
	return &DeliveryController{DB: db}
}

type deliveryView struct {
	deliveryModel.DeliveryDetail
	CustomerName string   `json:"customerName"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	Product      string   `json:"product"`
	Quantity     int      `json:"quantity"`
	FinalAmount  *float64 `json:"finalAmount,omitempty"`
}

// ListEnquiries returns the denormalized delivery view of every enquiry
// currently in the delivery stage, including their before photos
func (dc *DeliveryController) ListEnquiries(c *fiber.Ctx) error {
	var views []deliveryView
	err := dc.DB.Model(&deliveryModel.DeliveryDetail{}).
		Select("delivery_details.*, enquiries.customer_name, enquiries.phone, enquiries.address, enquiries.product, enquiries.quantity, enquiries.final_amount").
		Joins("JOIN enquiries ON enquiries.id = delivery_details.enquiry_id").
		Where("enquiries.current_stage = ?", enquiryModel.StageDelivery).
		Order("delivery_details.created_at DESC").
		Scan(&views).Error
	if err != nil {
		logger.Error("Failed to list delivery enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	result := make([]fiber.Map, 0, len(views))
	for _, v := range views {
		var photos []photoModel.Photo
		if err := dc.DB.Where("enquiry_id = ? AND stage = ?", v.EnquiryID, enquiryModel.StageDelivery).
			Find(&photos).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
		}
		result = append(result, fiber.Map{
			"delivery": v,
			"photos":   photos,
		})
	}

	return c.JSON(types.Ok(result))
}

// GetEnquiry returns the delivery view of one enquiry. 404 when the
// enquiry does not exist or is not in the delivery stage.
func (dc *DeliveryController) GetEnquiry(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var view deliveryView
	err = dc.DB.Model(&deliveryModel.DeliveryDetail{}).
		Select("delivery_details.*, enquiries.customer_name, enquiries.phone, enquiries.address, enquiries.product, enquiries.quantity, enquiries.final_amount").
		Joins("JOIN enquiries ON enquiries.id = delivery_details.enquiry_id").
		Where("delivery_details.enquiry_id = ? AND enquiries.current_stage = ?", id, enquiryModel.StageDelivery).
		First(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found in delivery stage"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(view))
}

func (dc *DeliveryController) loadDetail(id uint) (*deliveryModel.DeliveryDetail, error) {
	var detail deliveryModel.DeliveryDetail
	if err := dc.DB.Where("enquiry_id = ?", id).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// Schedule books the hand-over. The delivery method is validated before
// any database write.
func (dc *DeliveryController) Schedule(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req deliveryTypes.ScheduleRequest
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

	detail, err := dc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("delivery detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	updates := map[string]interface{}{
		"status":          deliveryModel.StatusScheduled,
		"delivery_method": req.DeliveryMethod,
		"scheduled_time":  scheduledTime,
	}
	if req.DeliveryAddress != nil {
		updates["delivery_address"] = *req.DeliveryAddress
	}
	if req.DeliveryNotes != nil {
		updates["delivery_notes"] = *req.DeliveryNotes
	}

	if err := dc.DB.Model(detail).Updates(updates).Error; err != nil {
		logger.Error("Failed to schedule delivery", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(detail, "Delivery scheduled"))
}

// OutForDelivery dispatches the item with an assignee
func (dc *DeliveryController) OutForDelivery(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req deliveryTypes.OutForDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	detail, err := dc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("delivery detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	if err := dc.DB.Model(detail).Updates(map[string]interface{}{
		"status":      deliveryModel.StatusOutForDelivery,
		"assigned_to": req.AssignedTo,
	}).Error; err != nil {
		logger.Error("Failed to mark out for delivery", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(detail, "Out for delivery"))
}

// Complete closes out the delivery: proof photo, signature, delivered
// timestamp and the advance to completed commit in one transaction.
func (dc *DeliveryController) Complete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req deliveryTypes.CompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	detail, err := dc.loadDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("delivery detail not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	txErr := dc.DB.Transaction(func(tx *gorm.DB) error {
		proof := photoModel.Photo{
			EnquiryID: id,
			Stage:     enquiryModel.StageDelivery,
			PhotoType: photoModel.TypeAfter,
			PhotoData: req.DeliveryProofPhoto,
			Notes:     req.DeliveryNotes,
		}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":            deliveryModel.StatusDelivered,
			"delivered_at":      time.Now(),
			"delivery_proof_id": proof.ID,
		}
		if req.CustomerSignature != nil {
			updates["customer_signature"] = *req.CustomerSignature
		}
		if req.DeliveryNotes != nil {
			updates["delivery_notes"] = *req.DeliveryNotes
		}
		if err := tx.Model(detail).Updates(updates).Error; err != nil {
			return err
		}

		return workflow.Advance(tx, id, enquiryModel.StageDelivery, enquiryModel.StageCompleted)
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		if workflow.IsStageError(txErr) {
			return c.Status(fiber.StatusConflict).JSON(types.Fail(txErr.Error()))
		}
		logger.Error("Failed to complete delivery", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Delivery completed, enquiry reached completed stage")
	return c.JSON(types.OkMessage(detail, "Delivery completed"))
}

// Stats returns today's delivery counts grouped by status
func (dc *DeliveryController) Stats(c *fiber.Ctx) error {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var byStatus []statusCount
	if err := dc.DB.Model(&deliveryModel.DeliveryDetail{}).
		Select("delivery_details.status, COUNT(*) as count").
		Joins("JOIN enquiries ON enquiries.id = delivery_details.enquiry_id").
		Where("enquiries.current_stage = ?", enquiryModel.StageDelivery).
		Group("delivery_details.status").
		Scan(&byStatus).Error; err != nil {
		logger.Error("Failed to aggregate delivery stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	dayStart, dayEnd := utils.DayBounds(time.Now())
	var deliveredToday int64
	if err := dc.DB.Model(&deliveryModel.DeliveryDetail{}).
		Where("status = ? AND delivered_at >= ? AND delivered_at < ?",
			deliveryModel.StatusDelivered, dayStart, dayEnd).
		Count(&deliveredToday).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"byStatus":       byStatus,
		"deliveredToday": deliveredToday,
	}))
}
