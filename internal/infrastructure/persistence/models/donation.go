package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daana/backend/internal/domain/donation"
)

// DonationModel is the persistence model for the Donation aggregate.
type DonationModel struct {
	AggregateModel
	CampaignID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	DonorID          *uuid.UUID      `gorm:"type:uuid;index"`
	ActualAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ServiceCharge    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentReference string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	PaymentSlipURL   string          `gorm:"type:text"`
	Status           donation.Status `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsAnonymous      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DonationModel) TableName() string {
	return "donations"
}

// ToDomain converts the persistence model to a domain Donation aggregate.
func (m *DonationModel) ToDomain() *donation.Donation {
	d := &donation.Donation{
		CampaignID:       m.CampaignID,
		DonorID:          m.DonorID,
		ActualAmount:     m.ActualAmount,
		ServiceCharge:    m.ServiceCharge,
		NetAmount:        m.NetAmount,
		PaymentReference: m.PaymentReference,
		PaymentSlipURL:   m.PaymentSlipURL,
		Status:           m.Status,
		IsAnonymous:      m.IsAnonymous,
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	return d
}

// FromDomain populates the persistence model from a domain Donation aggregate.
func (m *DonationModel) FromDomain(d *donation.Donation) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.CampaignID = d.CampaignID
	m.DonorID = d.DonorID
	m.ActualAmount = d.ActualAmount
	m.ServiceCharge = d.ServiceCharge
	m.NetAmount = d.NetAmount
	m.PaymentReference = d.PaymentReference
	m.PaymentSlipURL = d.PaymentSlipURL
	m.Status = d.Status
	m.IsAnonymous = d.IsAnonymous
}

// DonationModelFromDomain creates a new persistence model from a domain Donation aggregate.
func DonationModelFromDomain(d *donation.Donation) *DonationModel {
	m := &DonationModel{}
	m.FromDomain(d)
	return m
}
