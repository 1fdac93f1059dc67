package workflow

import (
	"errors"
	"fmt"

	enquiryModel "cobbler-shop/models/enquiry"

	"gorm.io/gorm"
)

// transitions is the only legal stage order. Any advance not listed
// here is rejected before the enquiry row is touched.
var transitions = map[enquiryModel.Stage]enquiryModel.Stage{
	enquiryModel.StageEnquiry:  enquiryModel.StagePickup,
	enquiryModel.StagePickup:   enquiryModel.StageService,
	enquiryModel.StageService:  enquiryModel.StageBilling,
	enquiryModel.StageBilling:  enquiryModel.StageDelivery,
	enquiryModel.StageDelivery: enquiryModel.StageCompleted,
}

// StageError reports an out-of-order stage advance. Controllers map it
// to HTTP 409.
type StageError struct {
	EnquiryID uint
	Current   enquiryModel.Stage
	From      enquiryModel.Stage
	To        enquiryModel.Stage
}

func (e *StageError) Error() string {
	if e.Current != e.From {
		return fmt.Sprintf("enquiry %d is in stage '%s', not '%s'", e.EnquiryID, e.Current, e.From)
	}
	return fmt.Sprintf("cannot advance enquiry %d from '%s' to '%s'", e.EnquiryID, e.From, e.To)
}

// IsStageError reports whether err is a stage guard violation.
func IsStageError(err error) bool {
	var se *StageError
	return errors.As(err, &se)
}

// CanAdvance reports whether from→to is a legal transition.
func CanAdvance(from, to enquiryModel.Stage) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// Advance moves an enquiry from one stage to the next inside the
// caller's transaction. It returns gorm.ErrRecordNotFound when the
// enquiry does not exist, and *StageError when the enquiry is not
// currently in `from` or when from→to is not the legal next step.
func Advance(tx *gorm.DB, enquiryID uint, from, to enquiryModel.Stage) error {
	if !CanAdvance(from, to) {
		return &StageError{EnquiryID: enquiryID, Current: from, From: from, To: to}
	}

	var enq enquiryModel.Enquiry
	if err := tx.First(&enq, enquiryID).Error; err != nil {
		return err
	}

	if enq.CurrentStage != from {
		return &StageError{EnquiryID: enquiryID, Current: enq.CurrentStage, From: from, To: to}
	}

	return tx.Model(&enquiryModel.Enquiry{}).
		Where("id = ?", enquiryID).
		Update("current_stage", to).Error
}
