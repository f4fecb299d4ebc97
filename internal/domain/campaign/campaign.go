package campaign

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daana/backend/internal/domain/shared"
)

// Status represents the review lifecycle of a campaign
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// Campaign-specific errors
var (
	ErrCampaignDeleted    = shared.NewDomainError("CAMPAIGN_DELETED", "This program has been removed")
	ErrCampaignNotActive  = shared.NewDomainError("CAMPAIGN_NOT_ACTIVE", "This program is not accepting donations")
	ErrHasActiveDonations = shared.NewDomainError("CAMPAIGN_HAS_DONATIONS", "Program with recorded donations cannot be deleted")
)

// Campaign is a fundraising program owned by a charity
type Campaign struct {
	shared.BaseAggregateRoot
	CharityID    uuid.UUID
	Title        string
	Slug         string
	Description  string
	Category     string
	TargetAmount decimal.Decimal
	RaisedAmount decimal.Decimal
	Status       Status
	Deleted      bool
	ImageURL     string
	DocumentURL  string
	VideoURL     string
	EndDate      *time.Time
}

// NewCampaign creates a draft campaign with a slug derived from its title
func NewCampaign(charityID uuid.UUID, title, description, category string, targetAmount decimal.Decimal, endDate *time.Time) (*Campaign, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Program title is required")
	}
	if targetAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Target amount cannot be negative")
	}

	c := &Campaign{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CharityID:         charityID,
		Title:             strings.TrimSpace(title),
		Slug:              Slugify(title),
		Description:       strings.TrimSpace(description),
		Category:          strings.TrimSpace(category),
		TargetAmount:      targetAmount,
		RaisedAmount:      decimal.Zero,
		Status:            StatusDraft,
		EndDate:           endDate,
	}
	c.AddDomainEvent(NewCampaignCreatedEvent(c.ID, c.CharityID, c.Title))
	return c, nil
}

// AttachMedia stores uploaded asset locations. Empty values leave the
// existing location untouched.
func (c *Campaign) AttachMedia(imageURL, documentURL, videoURL string) {
	if imageURL != "" {
		c.ImageURL = imageURL
	}
	if documentURL != "" {
		c.DocumentURL = documentURL
	}
	if videoURL != "" {
		c.VideoURL = videoURL
	}
	c.touch()
}

// SubmitForReview queues the campaign for admin approval
func (c *Campaign) SubmitForReview() {
	c.Status = StatusPending
	c.touch()
}

// Update edits campaign fields. Any edit sends the campaign back to review.
func (c *Campaign) Update(title, description, category string, targetAmount decimal.Decimal, endDate *time.Time) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Program title is required")
	}
	if targetAmount.IsNegative() {
		return shared.NewDomainError("INVALID_TARGET", "Target amount cannot be negative")
	}
	c.Title = strings.TrimSpace(title)
	c.Slug = Slugify(title)
	c.Description = strings.TrimSpace(description)
	c.Category = strings.TrimSpace(category)
	c.TargetAmount = targetAmount
	c.EndDate = endDate
	c.Status = StatusPending
	c.touch()
	return nil
}

// Approve activates the campaign for public donations
func (c *Campaign) Approve() {
	c.Status = StatusActive
	c.touch()
	c.AddDomainEvent(NewCampaignReviewedEvent(c.ID, c.CharityID, string(StatusActive)))
}

// Reject deactivates the campaign after review
func (c *Campaign) Reject() {
	c.Status = StatusInactive
	c.touch()
	c.AddDomainEvent(NewCampaignReviewedEvent(c.ID, c.CharityID, string(StatusInactive)))
}

// AcceptsDonations reports whether the campaign can receive a donation
func (c *Campaign) AcceptsDonations() error {
	if c.Deleted {
		return ErrCampaignDeleted
	}
	if c.Status != StatusActive {
		return ErrCampaignNotActive
	}
	return nil
}

// AddToRaised credits a net donation amount to the running total
func (c *Campaign) AddToRaised(net decimal.Decimal) error {
	if net.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Raised amount can only increase")
	}
	c.RaisedAmount = c.RaisedAmount.Add(net)
	c.touch()
	return nil
}

// CompletionPercent returns raised/target as a percentage, zero when the
// target is unset
func (c *Campaign) CompletionPercent() decimal.Decimal {
	if c.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return c.RaisedAmount.Div(c.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// MarkDeleted soft deletes the campaign. The caller must first confirm no
// donations are attached.
func (c *Campaign) MarkDeleted() {
	c.Deleted = true
	c.touch()
}

func (c *Campaign) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
