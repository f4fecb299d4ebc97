package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcampaign "github.com/daana/backend/internal/application/campaign"
	"github.com/daana/backend/internal/application/identity"
	domainidentity "github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/interfaces/http/dto"
	"github.com/daana/backend/internal/interfaces/http/middleware"
)

// CampaignHandler handles donation program HTTP requests
type CampaignHandler struct {
	BaseHandler
	campaignService *appcampaign.Service
	charityService  *identity.CharityService
	authMW          gin.HandlerFunc
}

// NewCampaignHandler creates a new campaign handler. The charity service
// resolves the authenticated charity behind program ownership checks.
func NewCampaignHandler(
	campaignService *appcampaign.Service,
	charityService *identity.CharityService,
	authMW gin.HandlerFunc,
) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		charityService:  charityService,
		authMW:          authMW,
	}
}

// RegisterRoutes wires the program routes
func (h *CampaignHandler) RegisterRoutes(rg *gin.RouterGroup) {
	programs := rg.Group("/programs")
	programs.GET("", h.ListActive)
	programs.GET("/:id", h.Get)

	charity := programs.Group("", h.authMW, middleware.RequireRole(domainidentity.RoleCharity))
	charity.POST("", h.Create)
	charity.GET("/mine", h.ListMine)
	charity.POST("/:id/media", h.AttachMedia)
	charity.PUT("/:id", h.Update)
	charity.DELETE("/:id", h.Delete)

	admin := programs.Group("", h.authMW, middleware.RequireRole(domainidentity.RoleAdmin, domainidentity.RoleMonitor))
	admin.GET("/review", h.ListByStatus)

	review := programs.Group("", h.authMW, middleware.RequireRole(domainidentity.RoleAdmin))
	review.POST("/:id/approve", h.Approve)
	review.POST("/:id/reject", h.Reject)
}

// CreateProgramRequest contains program registration step one
type CreateProgramRequest struct {
	Title        string          `json:"title" binding:"required,max=255"`
	Description  string          `json:"description" binding:"max=5000"`
	Category     string          `json:"category" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	EndDate      *time.Time      `json:"end_date"`
}

// ProgramResponse is the full program view
type ProgramResponse struct {
	ID                string          `json:"id"`
	CharityID         string          `json:"charity_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category"`
	TargetAmount      decimal.Decimal `json:"target_amount"`
	RaisedAmount      decimal.Decimal `json:"raised_amount"`
	CompletionPercent decimal.Decimal `json:"completion_percent"`
	Status            string          `json:"status"`
	ImageURL          string          `json:"image_url,omitempty"`
	DocumentURL       string          `json:"document_url,omitempty"`
	VideoURL          string          `json:"video_url,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	DonationCount     int64           `json:"donation_count"`
}

// ProgramListItemResponse is a single row in program listings
type ProgramListItemResponse struct {
	ID                string          `json:"id"`
	CharityID         string          `json:"charity_id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	Category          string          `json:"category"`
	TargetAmount      decimal.Decimal `json:"target_amount"`
	RaisedAmount      decimal.Decimal `json:"raised_amount"`
	CompletionPercent decimal.Decimal `json:"completion_percent"`
	Status            string          `json:"status"`
	ImageURL          string          `json:"image_url,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Create registers a draft program for the authenticated charity
func (h *CampaignHandler) Create(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	charityID, err := h.charityService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.campaignService.Create(c.Request.Context(), appcampaign.CreateCampaignInput{
		CharityID:    charityID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		EndDate:      req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"program_id": result.CampaignID.String(),
		"slug":       result.Slug,
		"status":     result.Status,
	})
}

// AttachMedia handles program registration step two. Accepts multipart form
// data with optional image, document and video files; completing the step
// submits the program for review.
func (h *CampaignHandler) AttachMedia(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	charityID, err := h.charityService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	input := appcampaign.AttachMediaInput{
		CampaignID: campaignID,
		CharityID:  charityID,
	}
	for field, target := range map[string]**appcampaign.FileUpload{
		"image":    &input.Image,
		"document": &input.Document,
		"video":    &input.Video,
	} {
		name, contentType, data, ok, err := formFile(c, field)
		if err != nil {
			h.HandleError(c, shared.NewDomainError("BAD_REQUEST", "Could not read uploaded file"))
			return
		}
		if ok {
			*target = &appcampaign.FileUpload{
				FileName:    name,
				ContentType: contentType,
				Data:        data,
			}
		}
	}

	if err := h.campaignService.AttachMedia(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Program submitted for review"})
}

// Update edits program fields; any edit sends the program back to review
func (h *CampaignHandler) Update(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	charityID, err := h.charityService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	detail, err := h.campaignService.Update(c.Request.Context(), appcampaign.UpdateCampaignInput{
		CampaignID:   campaignID,
		CharityID:    charityID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		EndDate:      req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProgramResponse(detail))
}

// Delete soft deletes a program without recorded donations
func (h *CampaignHandler) Delete(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	charityID, err := h.charityService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), campaignID, charityID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get returns a single program. The path value may be a program id or a
// public slug.
func (h *CampaignHandler) Get(c *gin.Context) {
	key := c.Param("id")

	var detail *appcampaign.CampaignDetail
	var err error
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		detail, err = h.campaignService.GetByID(c.Request.Context(), id)
	} else {
		detail, err = h.campaignService.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProgramResponse(detail))
}

// ListActive returns publicly visible programs
func (h *CampaignHandler) ListActive(c *gin.Context) {
	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.campaignService.ListActive(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProgramListItems(result), result.Total, result.Limit, result.Offset)
}

// ListMine returns the authenticated charity's programs in every state
func (h *CampaignHandler) ListMine(c *gin.Context) {
	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	charityID, err := h.charityService.ResolveIDByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.campaignService.ListByCharity(c.Request.Context(), charityID, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProgramListItems(result), result.Total, result.Limit, result.Offset)
}

// ListByStatus returns programs in the requested review state
func (h *CampaignHandler) ListByStatus(c *gin.Context) {
	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	status := c.DefaultQuery("status", "pending")
	result, err := h.campaignService.ListByStatus(c.Request.Context(), status, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProgramListItems(result), result.Total, result.Limit, result.Offset)
}

// Approve activates a program after review
func (h *CampaignHandler) Approve(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	if err := h.campaignService.Approve(c.Request.Context(), campaignID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Program approved"})
}

// Reject deactivates a program after review
func (h *CampaignHandler) Reject(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program id")
		return
	}

	if err := h.campaignService.Reject(c.Request.Context(), campaignID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Program rejected"})
}

func toProgramResponse(d *appcampaign.CampaignDetail) ProgramResponse {
	return ProgramResponse{
		ID:                d.ID.String(),
		CharityID:         d.CharityID.String(),
		Title:             d.Title,
		Slug:              d.Slug,
		Description:       d.Description,
		Category:          d.Category,
		TargetAmount:      d.TargetAmount,
		RaisedAmount:      d.RaisedAmount,
		CompletionPercent: d.CompletionPercent,
		Status:            d.Status,
		ImageURL:          d.ImageURL,
		DocumentURL:       d.DocumentURL,
		VideoURL:          d.VideoURL,
		EndDate:           d.EndDate,
		CreatedAt:         d.CreatedAt,
		DonationCount:     d.DonationCount,
	}
}

func toProgramListItems(result *appcampaign.CampaignListResult) []ProgramListItemResponse {
	items := make([]ProgramListItemResponse, 0, len(result.Campaigns))
	for _, c := range result.Campaigns {
		items = append(items, ProgramListItemResponse{
			ID:                c.ID.String(),
			CharityID:         c.CharityID.String(),
			Title:             c.Title,
			Slug:              c.Slug,
			Category:          c.Category,
			TargetAmount:      c.TargetAmount,
			RaisedAmount:      c.RaisedAmount,
			CompletionPercent: c.CompletionPercent,
			Status:            c.Status,
			ImageURL:          c.ImageURL,
			EndDate:           c.EndDate,
			CreatedAt:         c.CreatedAt,
		})
	}
	return items
}
