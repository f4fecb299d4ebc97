package identity

import (
	"strings"
	"time"

	"github.com/daana/backend/internal/domain/shared"
)

// DonorStatus represents the lifecycle state of a donor account
type DonorStatus string

const (
	DonorStatusActive   DonorStatus = "active"
	DonorStatusInactive DonorStatus = "inactive"
)

// Donor is an individual giving money through the platform
type Donor struct {
	shared.BaseAggregateRoot
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Status          DonorStatus
	Deleted         bool
	Verification    Verification
}

// NewDonor creates a donor pending email verification
func NewDonor(email, password, firstName, lastName string) (*Donor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name is required")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	d := &Donor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Status:            DonorStatusActive,
	}
	d.AddDomainEvent(NewDonorRegisteredEvent(d.ID, d.Email))
	return d, nil
}

// Kind implements Principal
func (d *Donor) Kind() Kind { return KindDonor }

// GetEmail implements Principal
func (d *Donor) GetEmail() string { return d.Email }

// VerifyPassword checks a plaintext password against the stored hash
func (d *Donor) VerifyPassword(password string) bool {
	return verifyPassword(d.PasswordHash, password)
}

// Eligible reports whether the donor may authenticate
func (d *Donor) Eligible() error {
	if d.Deleted || !d.Verification.Verified {
		return ErrNotEligible
	}
	return nil
}

// Role implements Principal
func (d *Donor) Role() string { return RoleDonor }

// DisplayName implements Principal
func (d *Donor) DisplayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// ImageURL implements Principal
func (d *Donor) ImageURL() string { return d.ProfileImageURL }

// IssueVerificationCode stores a fresh OTP for email verification
func (d *Donor) IssueVerificationCode(code string, now time.Time) error {
	if err := d.Verification.Issue(code, now); err != nil {
		return err
	}
	d.touch()
	return nil
}

// ConfirmVerification validates the OTP and marks the donor verified
func (d *Donor) ConfirmVerification(code string, now time.Time) error {
	if err := d.Verification.Confirm(code, now); err != nil {
		return err
	}
	d.touch()
	d.AddDomainEvent(NewDonorVerifiedEvent(d.ID, d.Email))
	return nil
}

// UpdateProfile changes the donor's display fields
func (d *Donor) UpdateProfile(firstName, lastName, profileImageURL string) error {
	if strings.TrimSpace(firstName) == "" {
		return shared.NewDomainError("INVALID_NAME", "First name is required")
	}
	d.FirstName = strings.TrimSpace(firstName)
	d.LastName = strings.TrimSpace(lastName)
	if profileImageURL != "" {
		d.ProfileImageURL = profileImageURL
	}
	d.touch()
	return nil
}

// MarkDeleted soft deletes the donor account
func (d *Donor) MarkDeleted() {
	d.Deleted = true
	d.touch()
}

func (d *Donor) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
