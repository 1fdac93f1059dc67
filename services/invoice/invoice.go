package invoice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	billingModel "cobbler-shop/models/billing"

	"gorm.io/gorm"
)

// ItemInput is one requested invoice line before any computation.
type ItemInput struct {
	ServiceType   string
	Amount        float64
	DiscountValue float64
	Description   *string
}

// Totals is the computed money summary of an invoice.
type Totals struct {
	Subtotal    float64
	GSTAmount   float64
	TotalAmount float64
	Items       []billingModel.BillingItem
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute applies per-item percentage discounts and GST, then sums the
// lines. When gstIncluded is false the GST amount is zero and the total
// equals the discounted subtotal.
func Compute(items []ItemInput, gstIncluded bool, gstRate float64) Totals {
	var t Totals
	for _, in := range items {
		discountAmount := round2(in.Amount * in.DiscountValue / 100)
		finalAmount := round2(in.Amount - discountAmount)

		itemGSTRate := 0.0
		itemGSTAmount := 0.0
		if gstIncluded {
			itemGSTRate = gstRate
			itemGSTAmount = round2(finalAmount * gstRate / 100)
		}

		t.Items = append(t.Items, billingModel.BillingItem{
			ServiceType:    in.ServiceType,
			OriginalAmount: in.Amount,
			DiscountValue:  in.DiscountValue,
			DiscountAmount: discountAmount,
			FinalAmount:    finalAmount,
			GSTRate:        itemGSTRate,
			GSTAmount:      itemGSTAmount,
			Description:    in.Description,
		})

		t.Subtotal += finalAmount
		t.GSTAmount += itemGSTAmount
	}

	t.Subtotal = round2(t.Subtotal)
	t.GSTAmount = round2(t.GSTAmount)
	t.TotalAmount = round2(t.Subtotal + t.GSTAmount)
	return t
}

// NextInvoiceNumber produces INV-YYYYMMDD-NNNN, where NNNN restarts at
// 0001 each day. Runs inside the caller's transaction so two concurrent
// invoices cannot claim the same sequence.
func NextInvoiceNumber(tx *gorm.DB, day time.Time) (string, error) {
	prefix := fmt.Sprintf("INV-%s-", day.Format("20060102"))

	var numbers []string
	err := tx.Model(&billingModel.BillingDetail{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if len(numbers) > 0 {
		if n, convErr := strconv.Atoi(strings.TrimPrefix(numbers[0], prefix)); convErr == nil {
			seq = n + 1
		}
	}

	return fmt.Sprintf("%s%04d", prefix, seq), nil
}
