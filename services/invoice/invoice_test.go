package invoice

import (
	"fmt"
	"testing"
	"time"

	"cobbler-shop/database"
	billingModel "cobbler-shop/models/billing"
	enquiryModel "cobbler-shop/models/enquiry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestComputeAppliesGST(t *testing.T) {
	totals := Compute([]ItemInput{
		{ServiceType: "Sole Replacement", Amount: 1000},
	}, true, 18)

	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 180.0, totals.GSTAmount)
	assert.Equal(t, 1180.0, totals.TotalAmount)
	require.Len(t, totals.Items, 1)
	assert.Equal(t, 1000.0, totals.Items[0].FinalAmount)
	assert.Equal(t, 180.0, totals.Items[0].GSTAmount)
}

func TestComputeDiscountBeforeGST(t *testing.T) {
	totals := Compute([]ItemInput{
		{ServiceType: "Cleaning & Polish", Amount: 500, DiscountValue: 10},
	}, true, 18)

	require.Len(t, totals.Items, 1)
	assert.Equal(t, 50.0, totals.Items[0].DiscountAmount)
	assert.Equal(t, 450.0, totals.Items[0].FinalAmount)
	assert.Equal(t, 81.0, totals.GSTAmount)
	assert.Equal(t, 531.0, totals.TotalAmount)
}

func TestComputeWithoutGST(t *testing.T) {
	totals := Compute([]ItemInput{
		{ServiceType: "Stitching", Amount: 300},
		{ServiceType: "Zipper Repair", Amount: 200, DiscountValue: 50},
	}, false, 18)

	assert.Equal(t, 400.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.GSTAmount)
	assert.Equal(t, 400.0, totals.TotalAmount)
	for _, item := range totals.Items {
		assert.Equal(t, 0.0, item.GSTRate)
		assert.Equal(t, 0.0, item.GSTAmount)
	}
}

func TestComputeRoundsToPaise(t *testing.T) {
	totals := Compute([]ItemInput{
		{ServiceType: "Leather Treatment", Amount: 333.33, DiscountValue: 3},
	}, true, 18)

	assert.Equal(t, 10.0, totals.Items[0].DiscountAmount)
	assert.Equal(t, 323.33, totals.Subtotal)
	assert.Equal(t, 58.2, totals.GSTAmount)
	assert.Equal(t, 381.53, totals.TotalAmount)
}

func TestNextInvoiceNumberStartsAtOne(t *testing.T) {
	db := setupTestDB(t)

	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	number, err := NextInvoiceNumber(db, day)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260314-0001", number)
}

func TestNextInvoiceNumberIncrementsPerDay(t *testing.T) {
	db := setupTestDB(t)

	enq := enquiryModel.Enquiry{
		CustomerName: "Meena",
		Phone:        "9000000001",
		Address:      "4 Brigade Road",
		Message:      "Broken heel",
		InquiryType:  enquiryModel.InquiryPhone,
		Product:      enquiryModel.ProductShoe,
		Quantity:     1,
		Date:         time.Now(),
		CurrentStage: enquiryModel.StageBilling,
	}
	require.NoError(t, db.Create(&enq).Error)

	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	existing := "INV-20260314-0007"
	detail := billingModel.BillingDetail{
		EnquiryID:     enq.ID,
		FinalAmount:   100,
		Subtotal:      100,
		TotalAmount:   100,
		InvoiceNumber: &existing,
		CustomerName:  enq.CustomerName,
	}
	require.NoError(t, db.Create(&detail).Error)

	number, err := NextInvoiceNumber(db, day)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260314-0008", number)

	// A different day restarts the sequence.
	nextDay, err := NextInvoiceNumber(db, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "INV-20260315-0001", nextDay)
}
