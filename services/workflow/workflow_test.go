package workflow

import (
	"fmt"
	"testing"
	"time"

	"cobbler-shop/database"
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

func createEnquiry(t *testing.T, db *gorm.DB, stage enquiryModel.Stage) *enquiryModel.Enquiry {
	enq := enquiryModel.Enquiry{
		CustomerName: "Ravi Kumar",
		Phone:        "9876543210",
		Address:      "12 MG Road",
		Message:      "Sole coming off both shoes",
		InquiryType:  enquiryModel.InquiryWhatsApp,
		Product:      enquiryModel.ProductShoe,
		Quantity:     2,
		Date:         time.Now(),
		Status:       enquiryModel.StatusNew,
		CurrentStage: stage,
	}
	require.NoError(t, db.Create(&enq).Error)
	return &enq
}

func TestCanAdvanceFollowsFixedOrder(t *testing.T) {
	legal := [][2]enquiryModel.Stage{
		{enquiryModel.StageEnquiry, enquiryModel.StagePickup},
		{enquiryModel.StagePickup, enquiryModel.StageService},
		{enquiryModel.StageService, enquiryModel.StageBilling},
		{enquiryModel.StageBilling, enquiryModel.StageDelivery},
		{enquiryModel.StageDelivery, enquiryModel.StageCompleted},
	}
	for _, pair := range legal {
		assert.True(t, CanAdvance(pair[0], pair[1]), "%s -> %s should be legal", pair[0], pair[1])
	}

	assert.False(t, CanAdvance(enquiryModel.StageEnquiry, enquiryModel.StageService), "skipping a stage")
	assert.False(t, CanAdvance(enquiryModel.StagePickup, enquiryModel.StageEnquiry), "going backwards")
	assert.False(t, CanAdvance(enquiryModel.StageCompleted, enquiryModel.StageEnquiry), "completed is terminal")
}

func TestAdvanceMovesEnquiry(t *testing.T) {
	db := setupTestDB(t)
	enq := createEnquiry(t, db, enquiryModel.StageEnquiry)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Advance(tx, enq.ID, enquiryModel.StageEnquiry, enquiryModel.StagePickup)
	})
	require.NoError(t, err)

	var reloaded enquiryModel.Enquiry
	require.NoError(t, db.First(&reloaded, enq.ID).Error)
	assert.Equal(t, enquiryModel.StagePickup, reloaded.CurrentStage)
}

func TestAdvanceRejectsWrongCurrentStage(t *testing.T) {
	db := setupTestDB(t)
	enq := createEnquiry(t, db, enquiryModel.StageService)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Advance(tx, enq.ID, enquiryModel.StageEnquiry, enquiryModel.StagePickup)
	})
	require.Error(t, err)
	assert.True(t, IsStageError(err))

	var reloaded enquiryModel.Enquiry
	require.NoError(t, db.First(&reloaded, enq.ID).Error)
	assert.Equal(t, enquiryModel.StageService, reloaded.CurrentStage, "guard must not touch the row")
}

func TestAdvanceRejectsIllegalTransition(t *testing.T) {
	db := setupTestDB(t)
	enq := createEnquiry(t, db, enquiryModel.StageEnquiry)

	err := Advance(db, enq.ID, enquiryModel.StageEnquiry, enquiryModel.StageBilling)
	require.Error(t, err)
	assert.True(t, IsStageError(err))
}

func TestAdvanceMissingEnquiry(t *testing.T) {
	db := setupTestDB(t)

	err := Advance(db, 9999, enquiryModel.StageEnquiry, enquiryModel.StagePickup)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.False(t, IsStageError(err))
}
