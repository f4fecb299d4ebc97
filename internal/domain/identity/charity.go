package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daana/backend/internal/domain/shared"
)

// CharityStatus represents the review lifecycle of a charity account
type CharityStatus string

const (
	CharityStatusDraft     CharityStatus = "draft"
	CharityStatusPending   CharityStatus = "pending"
	CharityStatusActive    CharityStatus = "active"
	CharityStatusInactive  CharityStatus = "inactive"
	CharityStatusSuspended CharityStatus = "suspended"
)

// ExecutionType tells whether the charity is run by a person or an organization
type ExecutionType string

const (
	ExecutionTypePerson       ExecutionType = "PERSON"
	ExecutionTypeOrganization ExecutionType = "ORGANIZATION"
)

// DocumentType classifies uploaded proof documents
type DocumentType string

const (
	DocumentTypeIDCard       DocumentType = "ID_CARD"
	DocumentTypeBusinessCert DocumentType = "BUSINESS_REGISTRATION_CERTIFICATE"
)

// RequiredDocumentType returns the proof document a charity of the given
// execution type must provide
func RequiredDocumentType(et ExecutionType) (DocumentType, error) {
	switch et {
	case ExecutionTypePerson:
		return DocumentTypeIDCard, nil
	case ExecutionTypeOrganization:
		return DocumentTypeBusinessCert, nil
	default:
		return "", shared.NewDomainError("INVALID_EXECUTION_TYPE", "Execution type must be PERSON or ORGANIZATION")
	}
}

// Charity-specific errors
var (
	ErrCharityDeleted     = shared.NewDomainError("CHARITY_DELETED", "This charity account has been removed")
	ErrCharityNotActive   = shared.NewDomainError("CHARITY_NOT_ACTIVE", "This charity account has not been approved yet")
	ErrCharityNotVerified = shared.NewDomainError("CHARITY_NOT_VERIFIED", "This charity account email has not been verified")
)

// ProofDocument is an immutable file reference proving the charity's identity
type ProofDocument struct {
	shared.BaseEntity
	CharityID uuid.UUID
	Type      DocumentType
	FileName  string
	Location  string
}

// BankDetail holds the payout account of a charity. SwiftCode is optional.
type BankDetail struct {
	shared.BaseEntity
	CharityID         uuid.UUID
	AccountHolderName string
	AccountNumber     string
	BankName          string
	BranchName        string
	SwiftCode         string
}

// NewBankDetail validates and creates a bank detail record
func NewBankDetail(charityID uuid.UUID, holder, number, bank, branch, swift string) (*BankDetail, error) {
	if strings.TrimSpace(holder) == "" || strings.TrimSpace(number) == "" ||
		strings.TrimSpace(bank) == "" || strings.TrimSpace(branch) == "" {
		return nil, shared.NewDomainError("INVALID_BANK_DETAIL", "Account holder, account number, bank name and branch are required")
	}
	return &BankDetail{
		BaseEntity:        shared.NewBaseEntity(),
		CharityID:         charityID,
		AccountHolderName: strings.TrimSpace(holder),
		AccountNumber:     strings.TrimSpace(number),
		BankName:          strings.TrimSpace(bank),
		BranchName:        strings.TrimSpace(branch),
		SwiftCode:         strings.TrimSpace(swift),
	}, nil
}

// Charity is an organization or person raising funds on the platform
type Charity struct {
	shared.BaseAggregateRoot
	Email          string
	PasswordHash   string
	CharityName    string
	RegisteredName string
	ExecutionType  ExecutionType
	ContactNumber  string
	Address        string
	Description    string
	LogoURL        string
	Status         CharityStatus
	Deleted        bool
	Verification   Verification
	ProofDocuments []ProofDocument
	BankDetail     *BankDetail
}

// NewCharity creates a draft charity pending document submission and
// email verification
func NewCharity(email, password, charityName, registeredName string, executionType ExecutionType, contactNumber, address, description string) (*Charity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(charityName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Charity name is required")
	}
	if _, err := RequiredDocumentType(executionType); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	c := &Charity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		CharityName:       strings.TrimSpace(charityName),
		RegisteredName:    strings.TrimSpace(registeredName),
		ExecutionType:     executionType,
		ContactNumber:     strings.TrimSpace(contactNumber),
		Address:           strings.TrimSpace(address),
		Description:       strings.TrimSpace(description),
		Status:            CharityStatusDraft,
	}
	c.AddDomainEvent(NewCharityRegisteredEvent(c.ID, c.Email))
	return c, nil
}

// Kind implements Principal
func (c *Charity) Kind() Kind { return KindCharity }

// GetEmail implements Principal
func (c *Charity) GetEmail() string { return c.Email }

// VerifyPassword checks a plaintext password against the stored hash
func (c *Charity) VerifyPassword(password string) bool {
	return verifyPassword(c.PasswordHash, password)
}

// Eligible reports whether the charity may authenticate
func (c *Charity) Eligible() error {
	if c.Deleted || c.Status != CharityStatusActive {
		return ErrNotEligible
	}
	return nil
}

// LoginEligible is the charity-portal variant of Eligible with staged,
// caller-facing reasons
func (c *Charity) LoginEligible() error {
	if c.Deleted {
		return ErrCharityDeleted
	}
	if c.Status != CharityStatusActive {
		return ErrCharityNotActive
	}
	if !c.Verification.Verified {
		return ErrCharityNotVerified
	}
	return nil
}

// Role implements Principal
func (c *Charity) Role() string { return RoleCharity }

// DisplayName implements Principal
func (c *Charity) DisplayName() string { return c.CharityName }

// ImageURL implements Principal
func (c *Charity) ImageURL() string { return c.LogoURL }

// IssueVerificationCode stores a fresh OTP for email verification
func (c *Charity) IssueVerificationCode(code string, now time.Time) error {
	if err := c.Verification.Issue(code, now); err != nil {
		return err
	}
	c.touch()
	return nil
}

// ConfirmVerification validates the OTP and marks the charity verified
func (c *Charity) ConfirmVerification(code string, now time.Time) error {
	if err := c.Verification.Confirm(code, now); err != nil {
		return err
	}
	c.touch()
	c.AddDomainEvent(NewCharityVerifiedEvent(c.ID, c.Email))
	return nil
}

// AttachProofDocument adds the identity document uploaded in onboarding.
// The document type must match what the execution type requires.
func (c *Charity) AttachProofDocument(docType DocumentType, fileName, location string) error {
	if c.Verification.Verified {
		return ErrAlreadyVerified
	}
	required, err := RequiredDocumentType(c.ExecutionType)
	if err != nil {
		return err
	}
	if docType != required {
		return shared.NewDomainError("DOCUMENT_TYPE_MISMATCH",
			fmt.Sprintf("Document type must be %s for %s charities", required, c.ExecutionType))
	}
	if location == "" {
		return shared.NewDomainError("UPLOAD_FAILED", "Document upload did not return a storage location")
	}
	c.ProofDocuments = append(c.ProofDocuments, ProofDocument{
		BaseEntity: shared.NewBaseEntity(),
		CharityID:  c.ID,
		Type:       docType,
		FileName:   fileName,
		Location:   location,
	})
	c.touch()
	return nil
}

// AttachBankDetail sets the payout account, replacing any previous one
func (c *Charity) AttachBankDetail(holder, number, bank, branch, swift string) error {
	detail, err := NewBankDetail(c.ID, holder, number, bank, branch, swift)
	if err != nil {
		return err
	}
	c.BankDetail = detail
	c.touch()
	return nil
}

// SetLogo stores the uploaded logo location
func (c *Charity) SetLogo(location string) {
	c.LogoURL = location
	c.touch()
}

// SubmitForReview moves a draft charity into the admin review queue
func (c *Charity) SubmitForReview() {
	if c.Status == CharityStatusDraft {
		c.Status = CharityStatusPending
		c.touch()
	}
}

// Approve activates the charity after admin review
func (c *Charity) Approve() {
	c.Status = CharityStatusActive
	c.touch()
	c.AddDomainEvent(NewCharityReviewedEvent(c.ID, c.Email, string(CharityStatusActive)))
}

// Reject deactivates the charity after admin review
func (c *Charity) Reject() {
	c.Status = CharityStatusInactive
	c.touch()
	c.AddDomainEvent(NewCharityReviewedEvent(c.ID, c.Email, string(CharityStatusInactive)))
}

// ChangePassword replaces the password after checking the current one
func (c *Charity) ChangePassword(oldPassword, newPassword string) error {
	if !c.VerifyPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	c.touch()
	return nil
}

// IssuePasswordResetCode stores an OTP for the forgot-password flow.
// Unlike verification codes this is allowed on verified accounts.
func (c *Charity) IssuePasswordResetCode(code string, now time.Time) {
	c.Verification.Replace(code, now)
	c.touch()
}

// ResetPassword consumes the reset OTP and replaces the password
func (c *Charity) ResetPassword(code, newPassword string, now time.Time) error {
	if err := c.Verification.ConsumeCode(code, now); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	c.touch()
	return nil
}

// MarkDeleted soft deletes the charity account
func (c *Charity) MarkDeleted() {
	c.Deleted = true
	c.touch()
}

func (c *Charity) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
