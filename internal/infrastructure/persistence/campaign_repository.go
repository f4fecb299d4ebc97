package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/persistence/models"
)

// GormCampaignRepository implements campaign.Repository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// Save creates a new campaign
func (r *GormCampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	model := models.CampaignModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing campaign
func (r *GormCampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	model := models.CampaignModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a campaign with optimistic locking (version check).
// Returns an error if the version has changed (concurrent modification).
func (r *GormCampaignRepository) SaveWithLock(ctx context.Context, c *campaign.Campaign) error {
	model := models.CampaignModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The program has been modified by another transaction")
	}
	return nil
}

// FindByID finds a campaign by its ID
func (r *GormCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a campaign by its public slug
func (r *GormCampaignRepository) FindBySlug(ctx context.Context, slug string) (*campaign.Campaign, error) {
	var model models.CampaignModel
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND deleted = ?", slug, false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCharity lists a charity's campaigns, newest first
func (r *GormCampaignRepository) FindByCharity(ctx context.Context, charityID uuid.UUID, limit, offset int) ([]*campaign.Campaign, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("charity_id = ? AND deleted = ?", charityID, false)
	return r.list(query, limit, offset)
}

// FindByStatus lists campaigns in a review state, newest first
func (r *GormCampaignRepository) FindByStatus(ctx context.Context, status campaign.Status, limit, offset int) ([]*campaign.Campaign, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("status = ? AND deleted = ?", status, false)
	return r.list(query, limit, offset)
}

func (r *GormCampaignRepository) list(query *gorm.DB, limit, offset int) ([]*campaign.Campaign, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaignModels []models.CampaignModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&campaignModels).Error; err != nil {
		return nil, 0, err
	}

	campaigns := make([]*campaign.Campaign, len(campaignModels))
	for i := range campaignModels {
		campaigns[i] = campaignModels[i].ToDomain()
	}
	return campaigns, total, nil
}

// AddToRaisedAmount applies an atomic in-database increment to the raised
// total. Concurrent donations serialize on the row instead of overwriting
// each other. A negative delta compensates a rejected donation.
func (r *GormCampaignRepository) AddToRaisedAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("id = ?", id).
		UpdateColumn("raised_amount", gorm.Expr("raised_amount + ?", delta))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus tallies the charity's non-deleted campaigns per status
func (r *GormCampaignRepository) CountByStatus(ctx context.Context, charityID uuid.UUID) ([]campaign.StatusCount, error) {
	var counts []campaign.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Select("status, COUNT(*) AS count").
		Where("charity_id = ? AND deleted = ?", charityID, false).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// SumAmounts totals raised and target amounts over the charity's
// non-deleted campaigns
func (r *GormCampaignRepository) SumAmounts(ctx context.Context, charityID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Raised decimal.Decimal
		Target decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Select("COALESCE(SUM(raised_amount), 0) AS raised, COALESCE(SUM(target_amount), 0) AS target").
		Where("charity_id = ? AND deleted = ?", charityID, false).
		Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Raised, row.Target, nil
}

// FindRecent returns the charity's newest non-deleted campaigns
func (r *GormCampaignRepository) FindRecent(ctx context.Context, charityID uuid.UUID, limit int) ([]*campaign.Campaign, error) {
	var campaignModels []models.CampaignModel
	if err := r.db.WithContext(ctx).
		Where("charity_id = ? AND deleted = ?", charityID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&campaignModels).Error; err != nil {
		return nil, err
	}

	campaigns := make([]*campaign.Campaign, len(campaignModels))
	for i := range campaignModels {
		campaigns[i] = campaignModels[i].ToDomain()
	}
	return campaigns, nil
}

// FindAllActive returns the charity's campaigns currently accepting donations
func (r *GormCampaignRepository) FindAllActive(ctx context.Context, charityID uuid.UUID) ([]*campaign.Campaign, error) {
	var campaignModels []models.CampaignModel
	if err := r.db.WithContext(ctx).
		Where("charity_id = ? AND status = ? AND deleted = ?", charityID, campaign.StatusActive, false).
		Find(&campaignModels).Error; err != nil {
		return nil, err
	}

	campaigns := make([]*campaign.Campaign, len(campaignModels))
	for i := range campaignModels {
		campaigns[i] = campaignModels[i].ToDomain()
	}
	return campaigns, nil
}

// CountCreatedBetween counts the charity's campaigns created in [from, to)
func (r *GormCampaignRepository) CountCreatedBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("charity_id = ? AND created_at >= ? AND created_at < ? AND deleted = ?", charityID, from, to, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCampaignRepository implements campaign.Repository
var _ campaign.Repository = (*GormCampaignRepository)(nil)
