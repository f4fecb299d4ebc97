package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoginInput contains the credentials submitted for authentication
type LoginInput struct {
	Email    string
	Password string
}

// PrincipalInfo contains denormalized account information returned with tokens
type PrincipalInfo struct {
	ID          uuid.UUID
	Email       string
	Role        string
	DisplayName string
	ImageURL    string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Principal             PrincipalInfo
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the rotated token pair
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput identifies the session being terminated. ExpiresAt is the
// access token expiry, used to bound the blacklist entry TTL.
type LogoutInput struct {
	TokenJTI    string
	Email       string
	ExpiresAt   time.Time
	AllSessions bool
}

// ForgotPasswordInput starts the charity password reset flow
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput completes the charity password reset flow
type ResetPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

// FileUpload carries a client supplied file through the service layer
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RegisterDonorInput contains the input for donor registration
type RegisterDonorInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterDonorResult is returned after a donor account is created
type RegisterDonorResult struct {
	DonorID uuid.UUID
	Email   string
}

// VerifyEmailInput contains the OTP confirmation input
type VerifyEmailInput struct {
	Email string
	Code  string
}

// ResendCodeInput requests a replacement verification code
type ResendCodeInput struct {
	Email string
}

// DonorProfile is the donor's own account view
type DonorProfile struct {
	ID              uuid.UUID
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Verified        bool
	CreatedAt       time.Time
}

// UpdateDonorProfileInput contains editable donor fields. ProfileImage is
// optional; when present it replaces the stored image.
type UpdateDonorProfileInput struct {
	DonorID      uuid.UUID
	FirstName    string
	LastName     string
	ProfileImage *FileUpload
}

// RegisterCharityInput contains the input for charity onboarding step one
type RegisterCharityInput struct {
	Email          string
	Password       string
	CharityName    string
	RegisteredName string
	ExecutionType  string
	ContactNumber  string
	Address        string
	Description    string
}

// RegisterCharityResult is returned after the draft charity is created
type RegisterCharityResult struct {
	CharityID uuid.UUID
	Email     string
}

// BankDetailInput contains the payout account fields. SwiftCode is optional.
type BankDetailInput struct {
	AccountHolderName string
	AccountNumber     string
	BankName          string
	BranchName        string
	SwiftCode         string
}

// SubmitCharityDocumentsInput contains onboarding step two: the mandatory
// proof document, an optional logo, and the payout account.
type SubmitCharityDocumentsInput struct {
	CharityID    uuid.UUID
	DocumentType string
	Document     FileUpload
	Logo         *FileUpload
	BankDetail   BankDetailInput
}

// ChangePasswordInput contains the input for a charity password change
type ChangePasswordInput struct {
	CharityID   uuid.UUID
	OldPassword string
	NewPassword string
}

// ProofDocumentInfo describes an uploaded identity document
type ProofDocumentInfo struct {
	ID       uuid.UUID
	Type     string
	FileName string
	Location string
}

// BankDetailInfo describes the stored payout account
type BankDetailInfo struct {
	AccountHolderName string
	AccountNumber     string
	BankName          string
	BranchName        string
	SwiftCode         string
}

// CharityProfile is the charity's own account view with program statistics
type CharityProfile struct {
	ID             uuid.UUID
	Email          string
	CharityName    string
	RegisteredName string
	ExecutionType  string
	ContactNumber  string
	Address        string
	Description    string
	LogoURL        string
	Status         string
	Verified       bool
	CreatedAt      time.Time
	ProofDocuments []ProofDocumentInfo
	BankDetail     *BankDetailInfo
	TotalPrograms  int64
	ActivePrograms int
	TotalRaised    decimal.Decimal
}

// CharityListItem is a single row in the admin review listing
type CharityListItem struct {
	ID            uuid.UUID
	Email         string
	CharityName   string
	ExecutionType string
	ContactNumber string
	Status        string
	Verified      bool
	CreatedAt     time.Time
}

// CharityListResult is a paginated admin review listing
type CharityListResult struct {
	Charities []CharityListItem
	Total     int64
	Limit     int
	Offset    int
}
