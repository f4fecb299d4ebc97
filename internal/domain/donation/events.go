package donation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daana/backend/internal/domain/shared"
)

// EventDonationReceived fires when a donation is recorded
const EventDonationReceived = "donation.received"

// DonationReceivedEvent carries the net amount credited to a campaign
type DonationReceivedEvent struct {
	shared.BaseDomainEvent
	CampaignID uuid.UUID       `json:"campaign_id"`
	NetAmount  decimal.Decimal `json:"net_amount"`
}

// NewDonationReceivedEvent creates a donation received event
func NewDonationReceivedEvent(donationID, campaignID uuid.UUID, net decimal.Decimal) *DonationReceivedEvent {
	return &DonationReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDonationReceived, "Donation", donationID),
		CampaignID:      campaignID,
		NetAmount:       net,
	}
}
