package billing

import (
	"errors"
	"os"
	"time"

	"cobbler-shop/constants"
	"cobbler-shop/logger"
	billingModel "cobbler-shop/models/billing"
	deliveryModel "cobbler-shop/models/delivery"
	enquiryModel "cobbler-shop/models/enquiry"
	photoModel "cobbler-shop/models/photo"
	"cobbler-shop/services/invoice"
	"cobbler-shop/services/workflow"
	"cobbler-shop/types"
	billingTypes "cobbler-shop/types/billing"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BillingController handles invoicing and the billing stage of the workflow
type BillingController struct {
	DB *gorm.DB
}

// NewBillingController creates a new billing controller
func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db}
}

type billingView struct {
	EnquiryID    uint     `json:"enquiryId"`
	CustomerName string   `json:"customerName"`
	Phone        string   `json:"phone"`
	Product      string   `json:"product"`
	Quantity     int      `json:"quantity"`
	ActualCost   *float64 `json:"actualCost,omitempty"`
}

// ListEnquiries returns every enquiry currently in the billing stage
func (bc *BillingController) ListEnquiries(c *fiber.Ctx) error {
	var views []billingView
	err := bc.DB.Model(&enquiryModel.Enquiry{}).
		Select("enquiries.id as enquiry_id, enquiries.customer_name, enquiries.phone, enquiries.product, enquiries.quantity, service_details.actual_cost").
		Joins("LEFT JOIN service_details ON service_details.enquiry_id = enquiries.id").
		Where("enquiries.current_stage = ?", enquiryModel.StageBilling).
		Order("enquiries.updated_at DESC").
		Scan(&views).Error
	if err != nil {
		logger.Error("Failed to list billing enquiries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(views))
}

// GetEnquiry returns the billing detail (with items) for one enquiry
func (bc *BillingController) GetEnquiry(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var enq enquiryModel.Enquiry
	if err := bc.DB.First(&enq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	var detail billingModel.BillingDetail
	err = bc.DB.Preload("Items").Where("enquiry_id = ?", id).First(&detail).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	result := fiber.Map{"enquiry": enq}
	if err == nil {
		result["billing"] = detail
	}
	return c.JSON(types.Ok(result))
}

// GenerateInvoice computes discounts and GST, assigns the invoice number
// and snapshots customer and business info — all in one transaction.
func (bc *BillingController) GenerateInvoice(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var req billingTypes.GenerateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var enq enquiryModel.Enquiry
	if err := bc.DB.First(&enq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}
	if enq.CurrentStage != enquiryModel.StageBilling {
		return c.Status(fiber.StatusConflict).JSON(types.Fail("enquiry is not in the billing stage"))
	}

	gstIncluded := true
	if req.GSTIncluded != nil {
		gstIncluded = *req.GSTIncluded
	}
	gstRate := constants.DefaultGSTRate
	if req.GSTRate != nil {
		gstRate = *req.GSTRate
	}

	items := make([]invoice.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, invoice.ItemInput{
			ServiceType:   it.ServiceType,
			Amount:        it.Amount,
			DiscountValue: it.DiscountValue,
			Description:   it.Description,
		})
	}
	totals := invoice.Compute(items, gstIncluded, gstRate)

	var detail billingModel.BillingDetail
	txErr := bc.DB.Transaction(func(tx *gorm.DB) error {
		// Regenerating replaces any previous draft invoice.
		if err := tx.Where("enquiry_id = ?", id).Delete(&billingModel.BillingDetail{}).Error; err != nil {
			return err
		}

		number, err := invoice.NextInvoiceNumber(tx, time.Now())
		if err != nil {
			return err
		}
		invoiceDate := time.Now()

		detail = billingModel.BillingDetail{
			EnquiryID:       id,
			FinalAmount:     totals.TotalAmount,
			GSTIncluded:     gstIncluded,
			GSTRate:         gstRate,
			GSTAmount:       totals.GSTAmount,
			Subtotal:        totals.Subtotal,
			TotalAmount:     totals.TotalAmount,
			InvoiceNumber:   &number,
			InvoiceDate:     &invoiceDate,
			CustomerName:    enq.CustomerName,
			CustomerPhone:   enq.Phone,
			CustomerAddress: enq.Address,
			BusinessInfo:    businessInfoFromEnv(),
			Notes:           req.Notes,
			Items:           totals.Items,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}

		return tx.Model(&enquiryModel.Enquiry{}).
			Where("id = ?", id).
			Update("final_amount", totals.TotalAmount).Error
	})
	if txErr != nil {
		logger.Error("Failed to generate invoice", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Generated invoice " + *detail.InvoiceNumber)
	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(detail, "Invoice generated"))
}

// MoveToDelivery closes billing: creates the delivery detail row, copies
// the service overall-after photo as the delivery before photo and
// advances the workflow, atomically.
func (bc *BillingController) MoveToDelivery(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var detail billingModel.BillingDetail
	if err := bc.DB.Where("enquiry_id = ?", id).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invoice must be generated before moving to delivery"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	txErr := bc.DB.Transaction(func(tx *gorm.DB) error {
		deliveryDetail := deliveryModel.DeliveryDetail{
			EnquiryID: id,
			Status:    deliveryModel.StatusReady,
		}
		if err := tx.Create(&deliveryDetail).Error; err != nil {
			return err
		}

		// Carry the finished-work photo forward so delivery staff see
		// what the item should look like at hand-over.
		var overallAfter photoModel.Photo
		err := tx.Where("enquiry_id = ? AND photo_type = ?", id, photoModel.TypeOverallAfter).
			Order("created_at DESC").First(&overallAfter).Error
		if err == nil {
			before := photoModel.Photo{
				EnquiryID: id,
				Stage:     enquiryModel.StageDelivery,
				PhotoType: photoModel.TypeBefore,
				PhotoData: overallAfter.PhotoData,
				Notes:     overallAfter.Notes,
			}
			if err := tx.Create(&before).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return workflow.Advance(tx, id, enquiryModel.StageBilling, enquiryModel.StageDelivery)
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail("enquiry not found"))
		}
		if workflow.IsStageError(txErr) {
			return c.Status(fiber.StatusConflict).JSON(types.Fail(txErr.Error()))
		}
		logger.Error("Failed to move enquiry to delivery", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(txErr.Error()))
	}

	logger.Success("Enquiry moved to delivery stage")
	return c.JSON(types.OkMessage(nil, "Moved to delivery"))
}

func businessInfoFromEnv() *billingModel.BusinessInfo {
	name := os.Getenv("BUSINESS_NAME")
	if name == "" {
		return nil
	}
	return &billingModel.BusinessInfo{
		Name:    name,
		Address: os.Getenv("BUSINESS_ADDRESS"),
		Phone:   os.Getenv("BUSINESS_PHONE"),
		GSTIN:   os.Getenv("BUSINESS_GSTIN"),
	}
}
