package donation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FileUpload carries a client supplied file through the service layer
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateDonationInput contains a donation attempt. DonorID is set from the
// authenticated token when present; the client cannot choose anonymity.
type CreateDonationInput struct {
	CampaignID  uuid.UUID
	DonorID     *uuid.UUID
	Amount      decimal.Decimal
	PaymentSlip *FileUpload
}

// CreateDonationResult is returned after a donation is recorded
type CreateDonationResult struct {
	DonationID    uuid.UUID
	Reference     string
	CampaignTitle string
	ActualAmount  decimal.Decimal
	ServiceCharge decimal.Decimal
	NetAmount     decimal.Decimal
	IsAnonymous   bool
	Message       string
}

// DonationView is a single donation in listings and lookups
type DonationView struct {
	ID             uuid.UUID
	CampaignID     uuid.UUID
	Reference      string
	ActualAmount   decimal.Decimal
	ServiceCharge  decimal.Decimal
	NetAmount      decimal.Decimal
	Status         string
	IsAnonymous    bool
	PaymentSlipURL string
	CreatedAt      time.Time
}

// DonationListResult is a paginated donation listing
type DonationListResult struct {
	Donations []DonationView
	Total     int64
	Limit     int
	Offset    int
}
