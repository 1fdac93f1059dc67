package completed

import (
	"errors"
	"time"

	"cobbler-shop/logger"
	deliveryModel "cobbler-shop/models/delivery"
	enquiryModel "cobbler-shop/models/enquiry"
	photoModel "cobbler-shop/models/photo"
	"cobbler-shop/types"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompletedController serves the read-only view of finished jobs
type CompletedController struct {
	DB *gorm.DB
}

// NewCompletedController creates a new completed controller
func NewCompletedController(db *gorm.DB) *CompletedController {
	return &CompletedController{DB: db}
}

type completedView struct {
	EnquiryID    uint       `json:"enquiryId"`
	CustomerName string     `json:"customerName"`
	Phone        string     `json:"phone"`
	Product      string     `json:"product"`
	Quantity     int        `json:"quantity"`
	FinalAmount  *float64   `json:"finalAmount,omitempty"`
	DeliveredAt  *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ListEnquiries returns every completed enquiry with its delivery close-out
func (cc *CompletedController) ListEnquiries(c *fiber.Ctx) error {
	var views []completedView
	err := cc.DB.Model(&enquiryModel.Enquiry{}).
		Select("enquiries.id as enquiry_id, enquiries.customer_name, enquiries.phone, enquiries.product, enquiries.quantity, enquiries.final_amount, enquiries.created_at, delivery_details.delivered_at").
		Joins("LEFT JOIN delivery_details ON delivery_details.enquiry_id = enquiries.id").
		Where("enquiries.current_stage = ?", enquiryModel.StageCompleted).
		Order("delivery_details.delivered_at DESC").
		Scan(&views).Error
	if err != nil {
		logger.Error("Failed to list completed enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(views))
}

// GetEnquiry returns the full history of one completed job
func (cc *CompletedController) GetEnquiry(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var enq enquiryModel.Enquiry
	if err := cc.DB.Where("id = ? AND current_stage = ?", id, enquiryModel.StageCompleted).
		First(&enq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("completed enquiry not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var deliveryDetail deliveryModel.DeliveryDetail
	deliveryErr := cc.DB.Where("enquiry_id = ?", id).First(&deliveryDetail).Error
	if deliveryErr != nil && !errors.Is(deliveryErr, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(deliveryErr.Error()))
	}

	var photos []photoModel.Photo
	if err := cc.DB.Where("enquiry_id = ?", id).Order("created_at ASC").Find(&photos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	result := fiber.Map{
		"enquiry": enq,
		"photos":  photos,
	}
	if deliveryErr == nil {
		result["delivery"] = deliveryDetail
	}
	return c.JSON(types.Ok(result))
}

// Stats returns totals, this week's completions, revenue and the
// average turnaround in days
func (cc *CompletedController) Stats(c *fiber.Ctx) error {
	var total int64
	if err := cc.DB.Model(&enquiryModel.Enquiry{}).
		Where("current_stage = ?", enquiryModel.StageCompleted).
		Count(&total).Error; err != nil {
		logger.Error("Failed to count completed enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	weekStart, weekEnd := utils.WeekBounds(time.Now())
	var thisWeek int64
	if err := cc.DB.Model(&enquiryModel.Enquiry{}).
		Joins("JOIN delivery_details ON delivery_details.enquiry_id = enquiries.id").
		Where("enquiries.current_stage = ? AND delivery_details.delivered_at >= ? AND delivery_details.delivered_at < ?",
			enquiryModel.StageCompleted, weekStart, weekEnd).
		Count(&thisWeek).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var revenue float64
	if err := cc.DB.Model(&enquiryModel.Enquiry{}).
		Where("current_stage = ?", enquiryModel.StageCompleted).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	// Turnaround is computed in Go so the query stays portable across
	// MySQL and the sqlite test databases.
	type turnaround struct {
		CreatedAt   time.Time
		DeliveredAt *time.Time
	}
	var rows []turnaround
	if err := cc.DB.Model(&enquiryModel.Enquiry{}).
		Select("enquiries.created_at, delivery_details.delivered_at").
		Joins("JOIN delivery_details ON delivery_details.enquiry_id = enquiries.id").
		Where("enquiries.current_stage = ? AND delivery_details.delivered_at IS NOT NULL", enquiryModel.StageCompleted).
		Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	avgDays := 0.0
	if len(rows) > 0 {
		var totalDays float64
		for _, r := range rows {
			totalDays += r.DeliveredAt.Sub(r.CreatedAt).Hours() / 24
		}
		avgDays = totalDays / float64(len(rows))
	}

	return c.JSON(types.Ok(fiber.Map{
		"total":             total,
		"thisWeek":          thisWeek,
		"totalRevenue":      revenue,
		"avgCompletionDays": avgDays,
	}))
}
