package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daana/backend/internal/application/identity"
	"github.com/daana/backend/internal/domain/shared"
	domainidentity "github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/interfaces/http/middleware"
)

// DonorHandler handles donor registration and profile HTTP requests
type DonorHandler struct {
	BaseHandler
	donorService *identity.DonorService
	authMW       gin.HandlerFunc
	otpMW        gin.HandlerFunc
}

// NewDonorHandler creates a new donor handler. otpMW rate limits the code
// issuing endpoints.
func NewDonorHandler(donorService *identity.DonorService, authMW, otpMW gin.HandlerFunc) *DonorHandler {
	return &DonorHandler{
		donorService: donorService,
		authMW:       authMW,
		otpMW:        otpMW,
	}
}

// RegisterRoutes wires the donor routes
func (h *DonorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	donors := rg.Group("/donors")
	donors.POST("", h.otpMW, h.Register)
	donors.POST("/verify-email", h.VerifyEmail)
	donors.POST("/resend-code", h.otpMW, h.ResendCode)

	me := donors.Group("/me", h.authMW, middleware.RequireRole(domainidentity.RoleDonor))
	me.GET("", h.GetProfile)
	me.PUT("", h.UpdateProfile)
}

// RegisterDonorRequest contains donor registration fields
type RegisterDonorRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// DonorProfileResponse is the donor account view
type DonorProfileResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// Register creates a donor account and sends the verification code
func (h *DonorHandler) Register(c *gin.Context) {
	var req RegisterDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.donorService.Register(c.Request.Context(), identity.RegisterDonorInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"donor_id": result.DonorID.String(),
		"email":    result.Email,
		"message":  "Verification code sent",
	})
}

// VerifyEmailRequest contains the OTP confirmation input
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// VerifyEmail confirms the OTP and activates the account
func (h *DonorHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.donorService.VerifyEmail(c.Request.Context(), identity.VerifyEmailInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Account verified"})
}

// ResendCodeRequest requests a replacement verification code
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendCode issues a replacement verification code
func (h *DonorHandler) ResendCode(c *gin.Context) {
	var req ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.donorService.ResendCode(c.Request.Context(), identity.ResendCodeInput{
		Email: req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Verification code sent"})
}

// GetProfile returns the authenticated donor's profile
func (h *DonorHandler) GetProfile(c *gin.Context) {
	profile, err := h.donorService.GetProfileByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDonorProfileResponse(profile))
}

// UpdateProfile edits the donor display fields. Accepts multipart form data
// with an optional profile_image file.
func (h *DonorHandler) UpdateProfile(c *gin.Context) {
	profile, err := h.donorService.GetProfileByEmail(c.Request.Context(), middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	input := identity.UpdateDonorProfileInput{
		DonorID:   profile.ID,
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	if input.FirstName == "" || input.LastName == "" {
		h.BadRequest(c, "first_name and last_name are required")
		return
	}

	name, contentType, data, ok, err := formFile(c, "profile_image")
	if err != nil {
		h.HandleError(c, shared.NewDomainError("BAD_REQUEST", "Could not read uploaded file"))
		return
	}
	if ok {
		input.ProfileImage = &identity.FileUpload{
			FileName:    name,
			ContentType: contentType,
			Data:        data,
		}
	}

	updated, err := h.donorService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDonorProfileResponse(updated))
}

func toDonorProfileResponse(p *identity.DonorProfile) DonorProfileResponse {
	return DonorProfileResponse{
		ID:              p.ID.String(),
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		ProfileImageURL: p.ProfileImageURL,
		Verified:        p.Verified,
		CreatedAt:       p.CreatedAt,
	}
}
