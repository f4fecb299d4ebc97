package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcampaign "github.com/daana/backend/internal/application/campaign"
	"github.com/daana/backend/internal/application/identity"
	domainidentity "github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/interfaces/http/middleware"
)

// DashboardHandler serves the charity dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService *appcampaign.DashboardService
	charityService   *identity.CharityService
	authMW           gin.HandlerFunc
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService *appcampaign.DashboardService,
	charityService *identity.CharityService,
	authMW gin.HandlerFunc,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		charityService:   charityService,
		authMW:           authMW,
	}
}

// RegisterRoutes wires the dashboard route. Charities see their own
// figures; admins and monitors pick a charity with the charity_id query.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard",
		h.authMW,
		middleware.RequireRole(domainidentity.RoleCharity, domainidentity.RoleAdmin, domainidentity.RoleMonitor),
		h.Get)
}

// StatusBreakdownResponse tallies programs per review state
type StatusBreakdownResponse struct {
	Draft    int64 `json:"draft"`
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Archived int64 `json:"archived"`
	Total    int64 `json:"total"`
}

// TopProgramResponse is a completion-ranked dashboard entry
type TopProgramResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	TargetAmount      decimal.Decimal `json:"target_amount"`
	RaisedAmount      decimal.Decimal `json:"raised_amount"`
	CompletionPercent decimal.Decimal `json:"completion_percent"`
	DonationCount     int64           `json:"donation_count"`
}

// MonthlyPointResponse is one month of the charity's activity
type MonthlyPointResponse struct {
	Month             string          `json:"month"`
	ProgramsCreated   int64           `json:"programs_created"`
	AmountRaised      decimal.Decimal `json:"amount_raised"`
	DonationsReceived int64           `json:"donations_received"`
}

// DashboardResponse aggregates one charity's statistics
type DashboardResponse struct {
	Programs        StatusBreakdownResponse   `json:"programs"`
	TotalRaised     decimal.Decimal           `json:"total_raised"`
	TotalTarget     decimal.Decimal           `json:"total_target"`
	TotalDonations  int64                     `json:"total_donations"`
	AverageDonation decimal.Decimal           `json:"average_donation"`
	RecentPrograms  []ProgramListItemResponse `json:"recent_programs"`
	TopPrograms     []TopProgramResponse      `json:"top_programs"`
	Monthly         []MonthlyPointResponse    `json:"monthly"`
}

// Get builds and returns the dashboard for the resolved charity
func (h *DashboardHandler) Get(c *gin.Context) {
	charityID, ok := h.resolveCharityID(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.Build(c.Request.Context(), charityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := DashboardResponse{
		Programs: StatusBreakdownResponse{
			Draft:    result.Programs.Draft,
			Pending:  result.Programs.Pending,
			Active:   result.Programs.Active,
			Inactive: result.Programs.Inactive,
			Archived: result.Programs.Archived,
			Total:    result.Programs.Total,
		},
		TotalRaised:     result.TotalRaised,
		TotalTarget:     result.TotalTarget,
		TotalDonations:  result.TotalDonations,
		AverageDonation: result.AverageDonation,
	}

	resp.RecentPrograms = make([]ProgramListItemResponse, 0, len(result.RecentPrograms))
	for _, p := range result.RecentPrograms {
		resp.RecentPrograms = append(resp.RecentPrograms, ProgramListItemResponse{
			ID:                p.ID.String(),
			CharityID:         p.CharityID.String(),
			Title:             p.Title,
			Slug:              p.Slug,
			Category:          p.Category,
			TargetAmount:      p.TargetAmount,
			RaisedAmount:      p.RaisedAmount,
			CompletionPercent: p.CompletionPercent,
			Status:            p.Status,
			ImageURL:          p.ImageURL,
			EndDate:           p.EndDate,
			CreatedAt:         p.CreatedAt,
		})
	}

	resp.TopPrograms = make([]TopProgramResponse, 0, len(result.TopPrograms))
	for _, p := range result.TopPrograms {
		resp.TopPrograms = append(resp.TopPrograms, TopProgramResponse{
			ID:                p.ID.String(),
			Title:             p.Title,
			Slug:              p.Slug,
			TargetAmount:      p.TargetAmount,
			RaisedAmount:      p.RaisedAmount,
			CompletionPercent: p.CompletionPercent,
			DonationCount:     p.DonationCount,
		})
	}

	resp.Monthly = make([]MonthlyPointResponse, 0, len(result.Monthly))
	for _, m := range result.Monthly {
		resp.Monthly = append(resp.Monthly, MonthlyPointResponse{
			Month:             m.Month,
			ProgramsCreated:   m.ProgramsCreated,
			AmountRaised:      m.AmountRaised,
			DonationsReceived: m.DonationsReceived,
		})
	}

	h.Success(c, resp)
}

// resolveCharityID picks the charity whose dashboard is requested. Charity
// sessions are always pinned to their own account regardless of query
// parameters.
func (h *DashboardHandler) resolveCharityID(c *gin.Context) (uuid.UUID, bool) {
	if middleware.GetJWTRole(c) == domainidentity.RoleCharity {
		id, err := h.charityService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
		if err != nil {
			h.HandleError(c, err)
			return uuid.Nil, false
		}
		return id, true
	}

	id, err := uuid.Parse(c.Query("charity_id"))
	if err != nil {
		h.BadRequest(c, "Invalid charity id")
		return uuid.Nil, false
	}
	return id, true
}
