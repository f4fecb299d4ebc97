package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/identity"
)

// fakeTxManager runs the transactional function directly against the test
// repositories, without a real transaction
type fakeTxManager struct {
	donations donation.Repository
	campaigns campaign.Repository
}

func (f *fakeTxManager) InTx(_ context.Context, fn func(donation.Repository, campaign.Repository) error) error {
	return fn(f.donations, f.campaigns)
}

// MockDonationRepository is a mock implementation of donation.Repository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) Update(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindByReference(ctx context.Context, reference string) (*donation.Donation, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*donation.Donation, int64, error) {
	args := m.Called(ctx, campaignID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*donation.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) FindByDonor(ctx context.Context, donorID uuid.UUID, limit, offset int) ([]*donation.Donation, int64, error) {
	args := m.Called(ctx, donorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*donation.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) CountByCampaigns(ctx context.Context, campaignIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, campaignIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockDonationRepository) Count(ctx context.Context, charityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, charityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) SumNetBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, charityID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDonationRepository) CountBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, charityID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockCampaignRepository is a mock implementation of campaign.Repository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) SaveWithLock(ctx context.Context, c *campaign.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindBySlug(ctx context.Context, slug string) (*campaign.Campaign, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindByCharity(ctx context.Context, charityID uuid.UUID, limit, offset int) ([]*campaign.Campaign, int64, error) {
	args := m.Called(ctx, charityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*campaign.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) FindByStatus(ctx context.Context, status campaign.Status, limit, offset int) ([]*campaign.Campaign, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*campaign.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) AddToRaisedAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockCampaignRepository) CountByStatus(ctx context.Context, charityID uuid.UUID) ([]campaign.StatusCount, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]campaign.StatusCount), args.Error(1)
}

func (m *MockCampaignRepository) SumAmounts(ctx context.Context, charityID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, charityID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockCampaignRepository) FindRecent(ctx context.Context, charityID uuid.UUID, limit int) ([]*campaign.Campaign, error) {
	args := m.Called(ctx, charityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*campaign.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindAllActive(ctx context.Context, charityID uuid.UUID) ([]*campaign.Campaign, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*campaign.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) CountCreatedBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, charityID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockDonorRepository is a mock implementation of identity.DonorRepository
type MockDonorRepository struct {
	mock.Mock
}

func (m *MockDonorRepository) Save(ctx context.Context, donor *identity.Donor) error {
	args := m.Called(ctx, donor)
	return args.Error(0)
}

func (m *MockDonorRepository) Update(ctx context.Context, donor *identity.Donor) error {
	args := m.Called(ctx, donor)
	return args.Error(0)
}

func (m *MockDonorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Donor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Donor), args.Error(1)
}

func (m *MockDonorRepository) FindByEmail(ctx context.Context, email string) (*identity.Donor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Donor), args.Error(1)
}

func (m *MockDonorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of media.ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
