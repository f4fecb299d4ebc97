package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/persistence/models"
)

// GormDonationRepository implements donation.Repository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// Save creates a new donation. The unique index on payment_reference is the
// last line of defense against duplicate submissions.
func (r *GormDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	model := models.DonationModelFromDomain(d)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return donation.ErrDuplicateReference
		}
		return err
	}
	return nil
}

// Update persists changes to an existing donation
func (r *GormDonationRepository) Update(ctx context.Context, d *donation.Donation) error {
	model := models.DonationModelFromDomain(d)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	var model models.DonationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference finds a donation by its payment reference
func (r *GormDonationRepository) FindByReference(ctx context.Context, reference string) (*donation.Donation, error) {
	var model models.DonationModel
	if err := r.db.WithContext(ctx).
		Where("payment_reference = ?", reference).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCampaign lists donations to a campaign, newest first
func (r *GormDonationRepository) FindByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*donation.Donation, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("campaign_id = ?", campaignID)
	return r.list(query, limit, offset)
}

// FindByDonor lists a donor's giving history, newest first
func (r *GormDonationRepository) FindByDonor(ctx context.Context, donorID uuid.UUID, limit, offset int) ([]*donation.Donation, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("donor_id = ?", donorID)
	return r.list(query, limit, offset)
}

func (r *GormDonationRepository) list(query *gorm.DB, limit, offset int) ([]*donation.Donation, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donationModels []models.DonationModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&donationModels).Error; err != nil {
		return nil, 0, err
	}

	donations := make([]*donation.Donation, len(donationModels))
	for i := range donationModels {
		donations[i] = donationModels[i].ToDomain()
	}
	return donations, total, nil
}

// CountByCampaign counts every donation attached to a campaign regardless
// of status
func (r *GormDonationRepository) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCampaigns tallies donation counts for a set of campaigns in one query
func (r *GormDonationRepository) CountByCampaigns(ctx context.Context, campaignIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CampaignID uuid.UUID
		Count      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DonationModel{}).
		Select("campaign_id, COUNT(*) AS count").
		Where("campaign_id IN ?", campaignIDs).
		Group("campaign_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CampaignID] = row.Count
	}
	return counts, nil
}

// charityScope narrows a donation query to one charity's campaigns.
// Donations do not carry the charity id themselves.
func charityScope(db *gorm.DB, charityID uuid.UUID) *gorm.DB {
	return db.
		Joins("JOIN campaigns ON campaigns.id = donations.campaign_id").
		Where("campaigns.charity_id = ?", charityID)
}

// Count counts the charity's non-rejected donations
func (r *GormDonationRepository) Count(ctx context.Context, charityID uuid.UUID) (int64, error) {
	var count int64
	query := charityScope(r.db.WithContext(ctx).Model(&models.DonationModel{}), charityID)
	if err := query.
		Where("donations.status <> ?", donation.StatusRejected).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumNetBetween totals the net amount of the charity's non-rejected
// donations created in [from, to)
func (r *GormDonationRepository) SumNetBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	query := charityScope(r.db.WithContext(ctx).Model(&models.DonationModel{}), charityID)
	if err := query.
		Select("COALESCE(SUM(donations.net_amount), 0) AS total").
		Where("donations.created_at >= ? AND donations.created_at < ? AND donations.status <> ?", from, to, donation.StatusRejected).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// CountBetween counts the charity's non-rejected donations created in
// [from, to)
func (r *GormDonationRepository) CountBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	query := charityScope(r.db.WithContext(ctx).Model(&models.DonationModel{}), charityID)
	if err := query.
		Where("donations.created_at >= ? AND donations.created_at < ? AND donations.status <> ?", from, to, donation.StatusRejected).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormDonationRepository implements donation.Repository
var _ donation.Repository = (*GormDonationRepository)(nil)
