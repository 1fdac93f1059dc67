package enquiry

import (
	"errors"
	"time"

	"cobbler-shop/constants"
	"cobbler-shop/logger"
	enquiryModel "cobbler-shop/models/enquiry"
	pickupModel "cobbler-shop/models/pickup"
	"cobbler-shop/services/pin"
	"cobbler-shop/services/workflow"
	"cobbler-shop/types"
	enquiryTypes "cobbler-shop/types/enquiry"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnquiryController handles enquiry intake and the enquiry stage of the workflow
type EnquiryController struct {
	DB *gorm.DB
}

// NewEnquiryController creates a new enquiry controller
func NewEnquiryController(db *gorm.DB) *EnquiryController {
	return &EnquiryController{DB: db}
}

// List returns enquiries with optional status/stage filters and pagination
func (ec *EnquiryController) List(c *fiber.Ctx) error {
	query := ec.DB.Model(&enquiryModel.Enquiry{})

	if status := c.Query("status"); status != "" {
		if !enquiryModel.Status(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid status '" + status + "'"))
		}
		query = query.Where("status = ?", status)
	}
	if stage := c.Query("stage"); stage != "" {
		if !enquiryModel.Stage(stage).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid stage '" + stage + "'"))
		}
		query = query.Where("current_stage = ?", stage)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", constants.DefaultPageSize)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var enquiries []enquiryModel.Enquiry
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&enquiries).Error; err != nil {
		logger.Error("Failed to list enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"enquiries": enquiries,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}))
}

// Get returns one enquiry by id
func (ec *EnquiryController) Get(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var enq enquiryModel.Enquiry
	if err := ec.DB.First(&enq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		logger.Error("Failed to fetch enquiry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(enq))
}

// Create records a new customer enquiry
func (ec *EnquiryController) Create(c *fiber.Ctx) error {
	var req enquiryTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	enq := enquiryModel.Enquiry{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		Message:      req.Message,
		InquiryType:  enquiryModel.InquiryType(req.InquiryType),
		Product:      enquiryModel.Product(req.Product),
		Quantity:     quantity,
		Date:         date,
		Status:       enquiryModel.StatusNew,
		CurrentStage: enquiryModel.StageEnquiry,
		Notes:        req.Notes,
		QuotedAmount: req.QuotedAmount,
	}

	if err := ec.DB.Create(&enq).Error; err != nil {
		logger.Error("Failed to create enquiry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	logger.Success("Created enquiry for " + enq.CustomerName)
	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(enq, "Enquiry created successfully"))
}

// Update edits an enquiry in place
func (ec *EnquiryController) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req enquiryTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var enq enquiryModel.Enquiry
	if err := ec.DB.First(&enq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Message != nil {
		updates["message"] = *req.Message
	}
	if req.InquiryType != nil {
		updates["inquiry_type"] = *req.InquiryType
	}
	if req.Product != nil {
		updates["product"] = *req.Product
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
		}
		updates["date"] = date
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.QuotedAmount != nil {
		updates["quoted_amount"] = *req.QuotedAmount
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("no fields to update"))
	}

	if err := ec.DB.Model(&enq).Updates(updates).Error; err != nil {
		logger.Error("Failed to update enquiry", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(enq, "Enquiry updated successfully"))
}

// Delete removes an enquiry; detail rows cascade
func (ec *EnquiryController) Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	result := ec.DB.Delete(&enquiryModel.Enquiry{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete enquiry", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(result.Error.Error()))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
	}

	return c.JSON(types.OkMessage(nil, "Enquiry deleted successfully"))
}

// MarkContacted flags the enquiry as contacted with a timestamp
func (ec *EnquiryController) MarkContacted(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req enquiryTypes.ContactedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}

	var enq enquiryModel.Enquiry
	if err := ec.DB.First(&enq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	nowTime := time.Now()
	updates := map[string]interface{}{
		"contacted":    true,
		"contacted_at": nowTime,
	}
	if enq.Status == enquiryModel.StatusNew {
		updates["status"] = enquiryModel.StatusContacted
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if err := ec.DB.Model(&enq).Updates(updates).Error; err != nil {
		logger.Error("Failed to mark enquiry contacted", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(enq, "Enquiry marked as contacted"))
}

// Convert moves an enquiry into the pickup stage. A pickup detail row is
// created with a fresh collection PIN inside one transaction.
func (ec *EnquiryController) Convert(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	collectionPin, err := pin.Generate()
	if err != nil {
		logger.Error("Failed to generate collection pin", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var detail pickupModel.PickupDetail
	txErr := ec.DB.Transaction(func(tx *gorm.DB) error {
		if err := workflow.Advance(tx, id, enquiryModel.StageEnquiry, enquiryModel.StagePickup); err != nil {
			return err
		}

		if err := tx.Model(&enquiryModel.Enquiry{}).
			Where("id = ?", id).
			Update("status", enquiryModel.StatusConverted).Error; err != nil {
			return err
		}

		detail = pickupModel.PickupDetail{
			EnquiryID: id,
			Status:    pickupModel.StatusScheduled,
			Pin:       &collectionPin,
		}
		return tx.Create(&detail).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		if workflow.IsStageError(txErr) {
			return c.Status(fiber.StatusConflict).JSON(types.Fail(txErr.Error()))
		}
		logger.Error("Failed to convert enquiry", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Converted enquiry to pickup stage")
	return c.JSON(types.OkMessage(fiber.Map{
		"pickupDetail": detail,
	}, "Enquiry converted to pickup"))
}

// Stats returns intake counts grouped by status plus today's volume
func (ec *EnquiryController) Stats(c *fiber.Ctx) error {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var byStatus []statusCount
	if err := ec.DB.Model(&enquiryModel.Enquiry{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		logger.Error("Failed to aggregate enquiry stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var total int64
	if err := ec.DB.Model(&enquiryModel.Enquiry{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	dayStart, dayEnd := utils.DayBounds(time.Now())
	var today int64
	if err := ec.DB.Model(&enquiryModel.Enquiry{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&today).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"total":    total,
		"today":    today,
		"byStatus": byStatus,
	}))
}
