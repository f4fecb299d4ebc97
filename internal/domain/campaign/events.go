package campaign

import (
	"github.com/google/uuid"

	"github.com/daana/backend/internal/domain/shared"
)

// Event types emitted by the campaign aggregate
const (
	EventCampaignCreated  = "campaign.created"
	EventCampaignReviewed = "campaign.reviewed"
)

// CampaignCreatedEvent fires when a charity registers a new program
type CampaignCreatedEvent struct {
	shared.BaseDomainEvent
	CharityID uuid.UUID `json:"charity_id"`
	Title     string    `json:"title"`
}

// NewCampaignCreatedEvent creates a campaign creation event
func NewCampaignCreatedEvent(campaignID, charityID uuid.UUID, title string) *CampaignCreatedEvent {
	return &CampaignCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCampaignCreated, "Campaign", campaignID),
		CharityID:       charityID,
		Title:           title,
	}
}

// CampaignReviewedEvent fires when an admin approves or rejects a program
type CampaignReviewedEvent struct {
	shared.BaseDomainEvent
	CharityID uuid.UUID `json:"charity_id"`
	Status    string    `json:"status"`
}

// NewCampaignReviewedEvent creates a campaign review outcome event
func NewCampaignReviewedEvent(campaignID, charityID uuid.UUID, status string) *CampaignReviewedEvent {
	return &CampaignReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCampaignReviewed, "Campaign", campaignID),
		CharityID:       charityID,
		Status:          status,
	}
}
