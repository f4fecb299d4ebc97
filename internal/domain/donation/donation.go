package donation

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daana/backend/internal/domain/shared"
)

// Status represents the review state of a donation
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
)

// ServiceChargePercent is the platform fee applied to every donation
var ServiceChargePercent = decimal.NewFromFloat(2.5)

var referencePattern = regexp.MustCompile(`^DON-[A-Z0-9]{8}$`)

// Donation errors
var (
	ErrDuplicateReference = shared.NewDomainError("DUPLICATE_REFERENCE", "Payment reference already exists")
	ErrDonationNotPending = shared.NewDomainError("DONATION_NOT_PENDING", "Only pending donations can be reviewed")
)

// ReferenceGenerator produces unique payment references
type ReferenceGenerator interface {
	NewReference() string
}

// Donation records a single payment toward a campaign. Amounts are fixed
// at creation; review only changes the status.
type Donation struct {
	shared.BaseAggregateRoot
	CampaignID       uuid.UUID
	DonorID          *uuid.UUID
	ActualAmount     decimal.Decimal
	ServiceCharge    decimal.Decimal
	NetAmount        decimal.Decimal
	PaymentReference string
	PaymentSlipURL   string
	Status           Status
	IsAnonymous      bool
}

// ComputeAmounts derives the service charge and net amount from the paid
// amount. The net amount is rounded half up to two decimal places.
func ComputeAmounts(actual decimal.Decimal) (charge, net decimal.Decimal) {
	charge = actual.Mul(ServiceChargePercent).Div(decimal.NewFromInt(100))
	net = actual.Sub(charge).Round(2)
	return charge, net
}

// NewDonation creates a pending donation. A nil donorID records an
// anonymous donation regardless of what the caller requested.
func NewDonation(campaignID uuid.UUID, donorID *uuid.UUID, actual decimal.Decimal, reference, slipURL string) (*Donation, error) {
	if !actual.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Donation amount must be positive")
	}
	if !referencePattern.MatchString(reference) {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference has an unexpected format")
	}

	charge, net := ComputeAmounts(actual)
	d := &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CampaignID:        campaignID,
		DonorID:           donorID,
		ActualAmount:      actual,
		ServiceCharge:     charge,
		NetAmount:         net,
		PaymentReference:  reference,
		PaymentSlipURL:    slipURL,
		Status:            StatusPending,
		IsAnonymous:       donorID == nil,
	}
	d.AddDomainEvent(NewDonationReceivedEvent(d.ID, campaignID, net))
	return d, nil
}

// Approve confirms a pending donation
func (d *Donation) Approve() error {
	if d.Status != StatusPending {
		return ErrDonationNotPending
	}
	d.Status = StatusActive
	d.touch()
	return nil
}

// Reject marks a pending donation as rejected. The caller compensates the
// campaign raised amount in the same transaction.
func (d *Donation) Reject() error {
	if d.Status != StatusPending {
		return ErrDonationNotPending
	}
	d.Status = StatusRejected
	d.touch()
	return nil
}

func (d *Donation) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
