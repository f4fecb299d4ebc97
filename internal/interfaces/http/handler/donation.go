package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appdonation "github.com/daana/backend/internal/application/donation"
	"github.com/daana/backend/internal/application/identity"
	domainidentity "github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/interfaces/http/dto"
	"github.com/daana/backend/internal/interfaces/http/middleware"
)

// DonationHandler handles donation HTTP requests
type DonationHandler struct {
	BaseHandler
	donationService *appdonation.Service
	donorService    *identity.DonorService
	authMW          gin.HandlerFunc
	optionalAuthMW  gin.HandlerFunc
}

// NewDonationHandler creates a new donation handler. optionalAuthMW lets
// logged-in donors be attributed while keeping anonymous giving open.
func NewDonationHandler(
	donationService *appdonation.Service,
	donorService *identity.DonorService,
	authMW, optionalAuthMW gin.HandlerFunc,
) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		donorService:    donorService,
		authMW:          authMW,
		optionalAuthMW:  optionalAuthMW,
	}
}

// RegisterRoutes wires the donation routes
func (h *DonationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	donations := rg.Group("/donations")
	donations.POST("", h.optionalAuthMW, h.Create)
	donations.GET("/me", h.authMW, middleware.RequireRole(domainidentity.RoleDonor), h.ListMine)
	donations.GET("/:id", h.GetByReference)

	review := donations.Group("", h.authMW, middleware.RequireRole(domainidentity.RoleAdmin))
	review.POST("/:id/approve", h.Approve)
	review.POST("/:id/reject", h.Reject)

	rg.GET("/programs/:id/donations",
		h.authMW,
		middleware.RequireRole(domainidentity.RoleCharity, domainidentity.RoleAdmin, domainidentity.RoleMonitor),
		h.ListByProgram)
}

// DonationResponse is a single donation view
type DonationResponse struct {
	ID             string          `json:"id"`
	ProgramID      string          `json:"program_id"`
	Reference      string          `json:"reference"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Status         string          `json:"status"`
	IsAnonymous    bool            `json:"is_anonymous"`
	PaymentSlipURL string          `json:"payment_slip_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Create records a donation. Accepts multipart form data with program_id,
// amount and an optional payment_slip file. The donor is taken from the
// bearer token when one is present; the payload cannot choose attribution.
func (h *DonationHandler) Create(c *gin.Context) {
	programID, err := uuid.Parse(c.PostForm("program_id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("amount")))
	if err != nil {
		h.BadRequest(c, "Invalid donation amount")
		return
	}

	input := appdonation.CreateDonationInput{
		CampaignID: programID,
		Amount:     amount,
	}

	// An authenticated session must map to a donor account. Falling back
	// to an anonymous donation here would misattribute the gift.
	if email := middleware.GetJWTEmail(c); email != "" {
		donorID, err := h.donorService.ResolveIDByEmail(c.Request.Context(), email)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		input.DonorID = &donorID
	}

	name, contentType, data, ok, err := formFile(c, "payment_slip")
	if err != nil {
		h.HandleError(c, shared.NewDomainError("BAD_REQUEST", "Could not read uploaded slip"))
		return
	}
	if ok {
		input.PaymentSlip = &appdonation.FileUpload{
			FileName:    name,
			ContentType: contentType,
			Data:        data,
		}
	}

	result, err := h.donationService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"donation_id":    result.DonationID.String(),
		"reference":      result.Reference,
		"program_title":  result.CampaignTitle,
		"actual_amount":  result.ActualAmount,
		"service_charge": result.ServiceCharge,
		"net_amount":     result.NetAmount,
		"is_anonymous":   result.IsAnonymous,
		"message":        result.Message,
	})
}

// GetByReference looks up a donation by its payment reference
func (h *DonationHandler) GetByReference(c *gin.Context) {
	view, err := h.donationService.GetByReference(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDonationResponse(view))
}

// ListMine returns the authenticated donor's donation history
func (h *DonationHandler) ListMine(c *gin.Context) {
	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	donorID, err := h.donorService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.donationService.ListByDonor(c.Request.Context(), donorID, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toDonationResponses(result), result.Total, result.Limit, result.Offset)
}

// ListByProgram returns a program's donations
func (h *DonationHandler) ListByProgram(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.donationService.ListByCampaign(c.Request.Context(), programID, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toDonationResponses(result), result.Total, result.Limit, result.Offset)
}

// Approve confirms a pending donation
func (h *DonationHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid donation id")
		return
	}

	if err := h.donationService.Approve(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Donation approved"})
}

// Reject rejects a pending donation and reverses its raised amount
func (h *DonationHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid donation id")
		return
	}

	if err := h.donationService.Reject(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Donation rejected"})
}

func toDonationResponse(v *appdonation.DonationView) DonationResponse {
	return DonationResponse{
		ID:             v.ID.String(),
		ProgramID:      v.CampaignID.String(),
		Reference:      v.Reference,
		ActualAmount:   v.ActualAmount,
		ServiceCharge:  v.ServiceCharge,
		NetAmount:      v.NetAmount,
		Status:         v.Status,
		IsAnonymous:    v.IsAnonymous,
		PaymentSlipURL: v.PaymentSlipURL,
		CreatedAt:      v.CreatedAt,
	}
}

func toDonationResponses(result *appdonation.DonationListResult) []DonationResponse {
	items := make([]DonationResponse, 0, len(result.Donations))
	for i := range result.Donations {
		items = append(items, toDonationResponse(&result.Donations[i]))
	}
	return items
}
