package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daana/backend/internal/application/identity"
	domainidentity "github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/interfaces/http/dto"
	"github.com/daana/backend/internal/interfaces/http/middleware"
)

// CharityHandler handles charity onboarding, profile and admin review
type CharityHandler struct {
	BaseHandler
	charityService *identity.CharityService
	authMW         gin.HandlerFunc
	otpMW          gin.HandlerFunc
}

// NewCharityHandler creates a new charity handler
func NewCharityHandler(charityService *identity.CharityService, authMW, otpMW gin.HandlerFunc) *CharityHandler {
	return &CharityHandler{
		charityService: charityService,
		authMW:         authMW,
		otpMW:          otpMW,
	}
}

// RegisterRoutes wires the charity routes
func (h *CharityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	charities := rg.Group("/charities")
	charities.POST("", h.otpMW, h.Register)
	charities.POST("/verify-email", h.VerifyEmail)
	charities.POST("/resend-code", h.otpMW, h.ResendCode)

	me := charities.Group("/me", h.authMW, middleware.RequireRole(domainidentity.RoleCharity))
	me.GET("", h.GetProfile)
	me.POST("/documents", h.SubmitDocuments)
	me.PUT("/password", h.ChangePassword)

	admin := charities.Group("", h.authMW, middleware.RequireRole(domainidentity.RoleAdmin))
	admin.GET("", h.List)
	admin.POST("/:id/approve", h.Approve)
	admin.POST("/:id/reject", h.Reject)
}

// RegisterCharityRequest contains onboarding step one fields
type RegisterCharityRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	CharityName    string `json:"charity_name" binding:"required,max=255"`
	RegisteredName string `json:"registered_name" binding:"required,max=255"`
	ExecutionType  string `json:"execution_type" binding:"required,oneof=ORGANIZATION PERSON"`
	ContactNumber  string `json:"contact_number" binding:"required,max=32"`
	Address        string `json:"address" binding:"required,max=500"`
	Description    string `json:"description" binding:"max=2000"`
}

// Register creates a draft charity account and sends the verification code
func (h *CharityHandler) Register(c *gin.Context) {
	var req RegisterCharityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.charityService.Register(c.Request.Context(), identity.RegisterCharityInput{
		Email:          req.Email,
		Password:       req.Password,
		CharityName:    req.CharityName,
		RegisteredName: req.RegisteredName,
		ExecutionType:  req.ExecutionType,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		Description:    req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"charity_id": result.CharityID.String(),
		"email":      result.Email,
		"message":    "Verification code sent",
	})
}

// VerifyEmail confirms the charity OTP
func (h *CharityHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.charityService.VerifyEmail(c.Request.Context(), identity.VerifyEmailInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Account verified"})
}

// ResendCode issues a replacement charity verification code
func (h *CharityHandler) ResendCode(c *gin.Context) {
	var req ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.charityService.ResendCode(c.Request.Context(), identity.ResendCodeInput{
		Email: req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Verification code sent"})
}

// SubmitDocuments handles onboarding step two: the proof document, an
// optional logo and the payout bank detail, submitted as multipart form data
func (h *CharityHandler) SubmitDocuments(c *gin.Context) {
	profile, err := h.charityService.GetProfileByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	docName, docType, docData, ok, err := formFile(c, "document")
	if err != nil || !ok {
		h.BadRequest(c, "A proof document file is required")
		return
	}

	input := identity.SubmitCharityDocumentsInput{
		CharityID:    profile.ID,
		DocumentType: c.PostForm("document_type"),
		Document: identity.FileUpload{
			FileName:    docName,
			ContentType: docType,
			Data:        docData,
		},
		BankDetail: identity.BankDetailInput{
			AccountHolderName: c.PostForm("account_holder_name"),
			AccountNumber:     c.PostForm("account_number"),
			BankName:          c.PostForm("bank_name"),
			BranchName:        c.PostForm("branch_name"),
			SwiftCode:         c.PostForm("swift_code"),
		},
	}

	logoName, logoType, logoData, ok, err := formFile(c, "logo")
	if err != nil {
		h.HandleError(c, shared.NewDomainError("BAD_REQUEST", "Could not read uploaded logo"))
		return
	}
	if ok {
		input.Logo = &identity.FileUpload{
			FileName:    logoName,
			ContentType: logoType,
			Data:        logoData,
		}
	}

	if err := h.charityService.SubmitDocuments(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Documents submitted for review"})
}

// ChangePasswordRequest contains the charity password change input
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword rotates the charity password
func (h *CharityHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	profile, err := h.charityService.GetProfileByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	err = h.charityService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		CharityID:   profile.ID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed successfully"})
}

// ProofDocumentResponse describes an uploaded identity document
type ProofDocumentResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	FileName string `json:"file_name"`
	Location string `json:"location"`
}

// BankDetailResponse describes the stored payout account
type BankDetailResponse struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	BankName          string `json:"bank_name"`
	BranchName        string `json:"branch_name"`
	SwiftCode         string `json:"swift_code,omitempty"`
}

// CharityProfileResponse is the charity account view with program statistics
type CharityProfileResponse struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	CharityName    string                  `json:"charity_name"`
	RegisteredName string                  `json:"registered_name"`
	ExecutionType  string                  `json:"execution_type"`
	ContactNumber  string                  `json:"contact_number"`
	Address        string                  `json:"address"`
	Description    string                  `json:"description,omitempty"`
	LogoURL        string                  `json:"logo_url,omitempty"`
	Status         string                  `json:"status"`
	Verified       bool                    `json:"verified"`
	CreatedAt      time.Time               `json:"created_at"`
	ProofDocuments []ProofDocumentResponse `json:"proof_documents"`
	BankDetail     *BankDetailResponse     `json:"bank_detail,omitempty"`
	TotalPrograms  int64                   `json:"total_programs"`
	ActivePrograms int                     `json:"active_programs"`
	TotalRaised    decimal.Decimal         `json:"total_raised"`
}

// GetProfile returns the authenticated charity's profile
func (h *CharityHandler) GetProfile(c *gin.Context) {
	profile, err := h.charityService.GetProfileByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := CharityProfileResponse{
		ID:             profile.ID.String(),
		Email:          profile.Email,
		CharityName:    profile.CharityName,
		RegisteredName: profile.RegisteredName,
		ExecutionType:  profile.ExecutionType,
		ContactNumber:  profile.ContactNumber,
		Address:        profile.Address,
		Description:    profile.Description,
		LogoURL:        profile.LogoURL,
		Status:         profile.Status,
		Verified:       profile.Verified,
		CreatedAt:      profile.CreatedAt,
		TotalPrograms:  profile.TotalPrograms,
		ActivePrograms: profile.ActivePrograms,
		TotalRaised:    profile.TotalRaised,
	}
	resp.ProofDocuments = make([]ProofDocumentResponse, 0, len(profile.ProofDocuments))
	for _, doc := range profile.ProofDocuments {
		resp.ProofDocuments = append(resp.ProofDocuments, ProofDocumentResponse{
			ID:       doc.ID.String(),
			Type:     doc.Type,
			FileName: doc.FileName,
			Location: doc.Location,
		})
	}
	if profile.BankDetail != nil {
		resp.BankDetail = &BankDetailResponse{
			AccountHolderName: profile.BankDetail.AccountHolderName,
			AccountNumber:     profile.BankDetail.AccountNumber,
			BankName:          profile.BankDetail.BankName,
			BranchName:        profile.BankDetail.BranchName,
			SwiftCode:         profile.BankDetail.SwiftCode,
		}
	}

	h.Success(c, resp)
}

// CharityListItemResponse is a single row in the admin review listing
type CharityListItemResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	CharityName   string    `json:"charity_name"`
	ExecutionType string    `json:"execution_type"`
	ContactNumber string    `json:"contact_number"`
	Status        string    `json:"status"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// List returns charities in the requested review state for admin review
func (h *CharityHandler) List(c *gin.Context) {
	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	status := c.DefaultQuery("status", "pending")
	result, err := h.charityService.ListByStatus(c.Request.Context(), status, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]CharityListItemResponse, 0, len(result.Charities))
	for _, ch := range result.Charities {
		items = append(items, CharityListItemResponse{
			ID:            ch.ID.String(),
			Email:         ch.Email,
			CharityName:   ch.CharityName,
			ExecutionType: ch.ExecutionType,
			ContactNumber: ch.ContactNumber,
			Status:        ch.Status,
			Verified:      ch.Verified,
			CreatedAt:     ch.CreatedAt,
		})
	}

	h.SuccessWithMeta(c, items, result.Total, result.Limit, result.Offset)
}

// Approve activates a charity after document review
func (h *CharityHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charity id")
		return
	}

	if err := h.charityService.Approve(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Charity approved"})
}

// Reject deactivates a charity after document review
func (h *CharityHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charity id")
		return
	}

	if err := h.charityService.Reject(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Charity rejected"})
}
