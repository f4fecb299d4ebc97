package identity

import (
	"github.com/google/uuid"

	"github.com/daana/backend/internal/domain/shared"
)

// Event types emitted by identity aggregates
const (
	EventDonorRegistered   = "identity.donor.registered"
	EventDonorVerified     = "identity.donor.verified"
	EventCharityRegistered = "identity.charity.registered"
	EventCharityVerified   = "identity.charity.verified"
	EventCharityReviewed   = "identity.charity.reviewed"
)

// DonorRegisteredEvent fires when a donor account is created
type DonorRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewDonorRegisteredEvent creates a donor registration event
func NewDonorRegisteredEvent(donorID uuid.UUID, email string) *DonorRegisteredEvent {
	return &DonorRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDonorRegistered, "Donor", donorID),
		Email:           email,
	}
}

// DonorVerifiedEvent fires when a donor confirms the verification code
type DonorVerifiedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewDonorVerifiedEvent creates a donor verification event
func NewDonorVerifiedEvent(donorID uuid.UUID, email string) *DonorVerifiedEvent {
	return &DonorVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDonorVerified, "Donor", donorID),
		Email:           email,
	}
}

// CharityRegisteredEvent fires when a charity starts onboarding
type CharityRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewCharityRegisteredEvent creates a charity registration event
func NewCharityRegisteredEvent(charityID uuid.UUID, email string) *CharityRegisteredEvent {
	return &CharityRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCharityRegistered, "Charity", charityID),
		Email:           email,
	}
}

// CharityVerifiedEvent fires when a charity confirms the verification code
type CharityVerifiedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewCharityVerifiedEvent creates a charity verification event
func NewCharityVerifiedEvent(charityID uuid.UUID, email string) *CharityVerifiedEvent {
	return &CharityVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCharityVerified, "Charity", charityID),
		Email:           email,
	}
}

// CharityReviewedEvent fires when an admin approves or rejects a charity
type CharityReviewedEvent struct {
	shared.BaseDomainEvent
	Email  string `json:"email"`
	Status string `json:"status"`
}

// NewCharityReviewedEvent creates a charity review outcome event
func NewCharityReviewedEvent(charityID uuid.UUID, email, status string) *CharityReviewedEvent {
	return &CharityReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCharityReviewed, "Charity", charityID),
		Email:           email,
		Status:          status,
	}
}
