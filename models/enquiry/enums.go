package enquiry

// Stage is the workflow position of an enquiry. An enquiry holds exactly one
// stage at any time and only ever moves forward through the fixed sequence.
type Stage string

const (
	StageEnquiry   Stage = "enquiry"
	StagePickup    Stage = "pickup"
	StageService   Stage = "service"
	StageBilling   Stage = "billing"
	StageDelivery  Stage = "delivery"
	StageCompleted Stage = "completed"
)

func (s Stage) String() string {
	return string(s)
}

func (s Stage) IsValid() bool {
	switch s {
	case StageEnquiry, StagePickup, StageService, StageBilling, StageDelivery, StageCompleted:
		return true
	default:
		return false
	}
}

// Next returns the stage that follows s in the workflow, or false for the
// terminal stage.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageEnquiry:
		return StagePickup, true
	case StagePickup:
		return StageService, true
	case StageService:
		return StageBilling, true
	case StageBilling:
		return StageDelivery, true
	case StageDelivery:
		return StageCompleted, true
	default:
		return "", false
	}
}

// GetAllStages returns the workflow stages in order
func GetAllStages() []Stage {
	return []Stage{StageEnquiry, StagePickup, StageService, StageBilling, StageDelivery, StageCompleted}
}

// Status is the sales status of an enquiry, independent of the workflow stage
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
	StatusLost      Status = "lost"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted, StatusClosed, StatusLost:
		return true
	default:
		return false
	}
}

// InquiryType is the channel the enquiry arrived through
type InquiryType string

const (
	InquiryInstagram InquiryType = "Instagram"
	InquiryFacebook  InquiryType = "Facebook"
	InquiryWhatsApp  InquiryType = "WhatsApp"
	InquiryPhone     InquiryType = "Phone"
	InquiryWalkIn    InquiryType = "Walk-in"
	InquiryWebsite   InquiryType = "Website"
)

func (t InquiryType) IsValid() bool {
	switch t {
	case InquiryInstagram, InquiryFacebook, InquiryWhatsApp, InquiryPhone, InquiryWalkIn, InquiryWebsite:
		return true
	default:
		return false
	}
}

// Product is the item category being repaired
type Product string

const (
	ProductBag       Product = "Bag"
	ProductShoe      Product = "Shoe"
	ProductWallet    Product = "Wallet"
	ProductBelt      Product = "Belt"
	ProductFurniture Product = "All type furniture"
)

func (p Product) IsValid() bool {
	switch p {
	case ProductBag, ProductShoe, ProductWallet, ProductBelt, ProductFurniture:
		return true
	default:
		return false
	}
}
