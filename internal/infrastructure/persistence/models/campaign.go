package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daana/backend/internal/domain/campaign"
)

// CampaignModel is the persistence model for the Campaign aggregate.
type CampaignModel struct {
	AggregateModel
	CharityID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title        string          `gorm:"type:varchar(255);not null"`
	Slug         string          `gorm:"type:varchar(30);not null;index"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RaisedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status       campaign.Status `gorm:"type:varchar(20);not null;default:'draft';index"`
	Deleted      bool            `gorm:"not null;default:false;index"`
	ImageURL     string          `gorm:"type:text"`
	DocumentURL  string          `gorm:"type:text"`
	VideoURL     string          `gorm:"type:text"`
	EndDate      *time.Time
}

// TableName returns the table name for GORM
func (CampaignModel) TableName() string {
	return "campaigns"
}

// ToDomain converts the persistence model to a domain Campaign aggregate.
func (m *CampaignModel) ToDomain() *campaign.Campaign {
	c := &campaign.Campaign{
		CharityID:    m.CharityID,
		Title:        m.Title,
		Slug:         m.Slug,
		Description:  m.Description,
		Category:     m.Category,
		TargetAmount: m.TargetAmount,
		RaisedAmount: m.RaisedAmount,
		Status:       m.Status,
		Deleted:      m.Deleted,
		ImageURL:     m.ImageURL,
		DocumentURL:  m.DocumentURL,
		VideoURL:     m.VideoURL,
		EndDate:      m.EndDate,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Campaign aggregate.
func (m *CampaignModel) FromDomain(c *campaign.Campaign) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CharityID = c.CharityID
	m.Title = c.Title
	m.Slug = c.Slug
	m.Description = c.Description
	m.Category = c.Category
	m.TargetAmount = c.TargetAmount
	m.RaisedAmount = c.RaisedAmount
	m.Status = c.Status
	m.Deleted = c.Deleted
	m.ImageURL = c.ImageURL
	m.DocumentURL = c.DocumentURL
	m.VideoURL = c.VideoURL
	m.EndDate = c.EndDate
}

// CampaignModelFromDomain creates a new persistence model from a domain Campaign aggregate.
func CampaignModelFromDomain(c *campaign.Campaign) *CampaignModel {
	m := &CampaignModel{}
	m.FromDomain(c)
	return m
}
