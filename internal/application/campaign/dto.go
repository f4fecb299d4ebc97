package campaign

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

// CreateCampaignInput contains program registration step one
type CreateCampaignInput struct {
	CharityID    uuid.UUID
	Title        string
	Description  string
	Category     string
	TargetAmount decimal.Decimal
	EndDate      *time.Time
}

// CreateCampaignResult is returned after the draft program is created
type CreateCampaignResult struct {
	CampaignID uuid.UUID
	Slug       string
	Status     string
}

// AttachMediaInput contains program registration step two: optional cover
// image, supporting document and video. Completing the step submits the
// program for review.
type AttachMediaInput struct {
	CampaignID uuid.UUID
	CharityID  uuid.UUID
	Image      *FileUpload
	Document   *FileUpload
	Video      *FileUpload
}

// UpdateCampaignInput edits program fields. Any edit sends the program back
// to review.
type UpdateCampaignInput struct {
	CampaignID   uuid.UUID
	CharityID    uuid.UUID
	Title        string
	Description  string
	Category     string
	TargetAmount decimal.Decimal
	EndDate      *time.Time
}

// CampaignDetail is the full program view
type CampaignDetail struct {
	ID                uuid.UUID
	CharityID         uuid.UUID
	Title             string
	Slug              string
	Description       string
	Category          string
	TargetAmount      decimal.Decimal
	RaisedAmount      decimal.Decimal
	CompletionPercent decimal.Decimal
	Status            string
	ImageURL          string
	DocumentURL       string
	VideoURL          string
	EndDate           *time.Time
	CreatedAt         time.Time
	DonationCount     int64
}

// CampaignListItem is a single row in program listings
type CampaignListItem struct {
	ID                uuid.UUID
	CharityID         uuid.UUID
	Title             string
	Slug              string
	Category          string
	TargetAmount      decimal.Decimal
	RaisedAmount      decimal.Decimal
	CompletionPercent decimal.Decimal
	Status            string
	ImageURL          string
	EndDate           *time.Time
	CreatedAt         time.Time
}

// CampaignListResult is a paginated program listing
type CampaignListResult struct {
	Campaigns []CampaignListItem
	Total     int64
	Limit     int
	Offset    int
}

// StatusBreakdown tallies programs per review state
type StatusBreakdown struct {
	Draft    int64
	Pending  int64
	Active   int64
	Inactive int64
	Archived int64
	Total    int64
}

// TopProgram is a completion-ranked dashboard entry
type TopProgram struct {
	ID                uuid.UUID
	Title             string
	Slug              string
	TargetAmount      decimal.Decimal
	RaisedAmount      decimal.Decimal
	CompletionPercent decimal.Decimal
	DonationCount     int64
}

// MonthlyPoint is one month of platform activity, labeled YYYY-MM
type MonthlyPoint struct {
	Month             string
	ProgramsCreated   int64
	AmountRaised      decimal.Decimal
	DonationsReceived int64
}

// DashboardResult aggregates one charity's program and donation statistics
type DashboardResult struct {
	Programs        StatusBreakdown
	TotalRaised     decimal.Decimal
	TotalTarget     decimal.Decimal
	TotalDonations  int64
	AverageDonation decimal.Decimal
	RecentPrograms  []CampaignListItem
	TopPrograms     []TopProgram
	Monthly         []MonthlyPoint
}
