package donation

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/random"
)

// stubReferenceGenerator returns a fixed payment reference so assertions
// can match on it
type stubReferenceGenerator struct {
	ref string
}

func (g *stubReferenceGenerator) NewReference() string {
	return g.ref
}

type serviceMocks struct {
	donationRepo *MockDonationRepository
	campaignRepo *MockCampaignRepository
	donorRepo    *MockDonorRepository
	storage      *MockObjectStorage
}

func newService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		donationRepo: new(MockDonationRepository),
		campaignRepo: new(MockCampaignRepository),
		donorRepo:    new(MockDonorRepository),
		storage:      new(MockObjectStorage),
	}
	tx := &fakeTxManager{donations: m.donationRepo, campaigns: m.campaignRepo}
	refGen := &stubReferenceGenerator{ref: "DON-4F9A2B7C"}
	svc := NewService(m.donationRepo, m.campaignRepo, m.donorRepo, m.storage, refGen, tx, zap.NewNop())
	return svc, m
}

func newActiveCampaign(t *testing.T) *campaign.Campaign {
	t.Helper()
	c, err := campaign.NewCampaign(uuid.New(), "Clean Water Wells", "", "water", decimal.NewFromInt(5000), nil)
	require.NoError(t, err)
	c.Approve()
	return c
}

func newPendingDonation(t *testing.T, campaignID uuid.UUID, amount int64) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(campaignID, nil, decimal.NewFromInt(amount), "DON-4F9A2B7C", "")
	require.NoError(t, err)
	return d
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("records an anonymous donation", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)

		var saved *donation.Donation
		m.donationRepo.On("Save", mock.Anything, mock.AnythingOfType("*donation.Donation")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*donation.Donation)
			}).
			Return(nil)
		m.campaignRepo.On("AddToRaisedAmount", mock.Anything, c.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(975))
		})).Return(nil)

		result, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			Amount:     decimal.NewFromInt(1000),
		})

		require.NoError(t, err)
		assert.Equal(t, "DON-4F9A2B7C", result.Reference)
		assert.Equal(t, "Clean Water Wells", result.CampaignTitle)
		assert.True(t, result.ServiceCharge.Equal(decimal.NewFromFloat(25)))
		assert.True(t, result.NetAmount.Equal(decimal.NewFromInt(975)))
		assert.True(t, result.IsAnonymous)
		assert.Equal(t, donationReceivedMessage, result.Message)

		require.NotNil(t, saved)
		assert.Nil(t, saved.DonorID)
		assert.Equal(t, donation.StatusPending, saved.Status)
		m.campaignRepo.AssertExpectations(t)
		m.donorRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("attributes the donation to the authenticated donor", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)
		donor, err := identity.NewDonor("amal@example.com", "password1", "Amal", "Perera")
		require.NoError(t, err)

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		m.donorRepo.On("FindByID", ctx, donor.ID).Return(donor, nil)
		m.storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return len(key) > 18 && key[:18] == "bank-payment-slip/"
		}), []byte("slip-bytes"), "image/jpeg").
			Return("https://cdn.example.com/bank-payment-slip/slip.jpg", nil)

		var saved *donation.Donation
		m.donationRepo.On("Save", mock.Anything, mock.AnythingOfType("*donation.Donation")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*donation.Donation)
			}).
			Return(nil)
		m.campaignRepo.On("AddToRaisedAmount", mock.Anything, c.ID, mock.AnythingOfType("decimal.Decimal")).
			Return(nil)

		result, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			DonorID:    &donor.ID,
			Amount:     decimal.NewFromInt(500),
			PaymentSlip: &FileUpload{
				FileName:    "slip.jpg",
				ContentType: "image/jpeg",
				Data:        []byte("slip-bytes"),
			},
		})

		require.NoError(t, err)
		assert.False(t, result.IsAnonymous)
		require.NotNil(t, saved)
		require.NotNil(t, saved.DonorID)
		assert.Equal(t, donor.ID, *saved.DonorID)
		assert.Equal(t, "https://cdn.example.com/bank-payment-slip/slip.jpg", saved.PaymentSlipURL)
	})

	t.Run("rounds the net amount to two decimals", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		m.donationRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.campaignRepo.On("AddToRaisedAmount", mock.Anything, c.ID, mock.Anything).Return(nil)

		result, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			Amount:     decimal.NewFromFloat(99.99),
		})

		require.NoError(t, err)
		// 99.99 * 2.5% = 2.49975, net 97.49025 rounds to 97.49
		assert.True(t, result.NetAmount.Equal(decimal.NewFromFloat(97.49)),
			"got %s", result.NetAmount)
	})

	t.Run("rejects donations to a campaign that is not active", func(t *testing.T) {
		svc, m := newService(t)
		c, err := campaign.NewCampaign(uuid.New(), "Still In Review", "", "water", decimal.NewFromInt(100), nil)
		require.NoError(t, err)

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)

		_, err = svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			Amount:     decimal.NewFromInt(50),
		})

		require.ErrorIs(t, err, campaign.ErrCampaignNotActive)
		m.donationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects donations to a deleted campaign", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)
		c.MarkDeleted()

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)

		_, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			Amount:     decimal.NewFromInt(50),
		})

		require.ErrorIs(t, err, campaign.ErrCampaignDeleted)
	})

	t.Run("rejects an unknown campaign", func(t *testing.T) {
		svc, m := newService(t)
		id := uuid.New()

		m.campaignRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: id,
			Amount:     decimal.NewFromInt(50),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAMPAIGN_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects an unknown donor", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)
		donorID := uuid.New()

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		m.donorRepo.On("FindByID", ctx, donorID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			DonorID:    &donorID,
			Amount:     decimal.NewFromInt(50),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DONOR_NOT_FOUND", domainErr.Code)
	})

	t.Run("fails when the slip upload returns no location", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		m.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", nil)

		_, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			Amount:     decimal.NewFromInt(50),
			PaymentSlip: &FileUpload{
				FileName:    "slip.jpg",
				ContentType: "image/jpeg",
				Data:        []byte("slip-bytes"),
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLIP_UPLOAD_FAILED", domainErr.Code)
		m.donationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("surfaces a duplicate payment reference", func(t *testing.T) {
		svc, m := newService(t)
		c := newActiveCampaign(t)

		m.campaignRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		m.donationRepo.On("Save", mock.Anything, mock.Anything).
			Return(donation.ErrDuplicateReference)

		_, err := svc.Create(ctx, CreateDonationInput{
			CampaignID: c.ID,
			Amount:     decimal.NewFromInt(50),
		})

		require.ErrorIs(t, err, donation.ErrDuplicateReference)
		m.campaignRepo.AssertNotCalled(t, "AddToRaisedAmount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Create_Concurrent(t *testing.T) {
	ctx := context.Background()

	donationRepo := new(MockDonationRepository)
	campaignRepo := new(MockCampaignRepository)
	tx := &fakeTxManager{donations: donationRepo, campaigns: campaignRepo}
	svc := NewService(donationRepo, campaignRepo, new(MockDonorRepository), new(MockObjectStorage),
		random.NewUUIDReferenceGenerator(), tx, zap.NewNop())

	c, err := campaign.NewCampaign(uuid.New(), "Flood Relief", "", "disaster", decimal.NewFromInt(10000), nil)
	require.NoError(t, err)
	c.Approve()

	var mu sync.Mutex
	total := decimal.Zero

	campaignRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	donationRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	campaignRepo.On("AddToRaisedAmount", mock.Anything, c.ID, mock.AnythingOfType("decimal.Decimal")).
		Run(func(args mock.Arguments) {
			mu.Lock()
			total = total.Add(args.Get(2).(decimal.Decimal))
			mu.Unlock()
		}).
		Return(nil)

	const donors = 20
	var wg sync.WaitGroup
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, CreateDonationInput{
				CampaignID: c.ID,
				Amount:     decimal.NewFromInt(40),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// each 40.00 donation nets 39.00 after the 2.5% charge
	want := decimal.NewFromInt(39).Mul(decimal.NewFromInt(donors))
	assert.True(t, total.Equal(want), "raised %s, want %s", total, want)
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("activates a pending donation", func(t *testing.T) {
		svc, m := newService(t)
		d := newPendingDonation(t, uuid.New(), 100)

		m.donationRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		m.donationRepo.On("Update", ctx, d).Return(nil)

		err := svc.Approve(ctx, d.ID)

		require.NoError(t, err)
		assert.Equal(t, donation.StatusActive, d.Status)
	})

	t.Run("refuses a donation that was already reviewed", func(t *testing.T) {
		svc, m := newService(t)
		d := newPendingDonation(t, uuid.New(), 100)
		require.NoError(t, d.Approve())

		m.donationRepo.On("FindByID", ctx, d.ID).Return(d, nil)

		err := svc.Approve(ctx, d.ID)

		require.ErrorIs(t, err, donation.ErrDonationNotPending)
		m.donationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("maps a missing donation", func(t *testing.T) {
		svc, m := newService(t)
		id := uuid.New()

		m.donationRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Approve(ctx, id)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DONATION_NOT_FOUND", domainErr.Code)
	})
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses the raised amount", func(t *testing.T) {
		svc, m := newService(t)
		d := newPendingDonation(t, uuid.New(), 200)

		m.donationRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		m.donationRepo.On("Update", ctx, d).Return(nil)
		m.campaignRepo.On("AddToRaisedAmount", ctx, d.CampaignID, d.NetAmount.Neg()).
			Return(nil)

		err := svc.Reject(ctx, d.ID)

		require.NoError(t, err)
		assert.Equal(t, donation.StatusRejected, d.Status)
		m.campaignRepo.AssertExpectations(t)
	})

	t.Run("refuses a donation that was already reviewed", func(t *testing.T) {
		svc, m := newService(t)
		d := newPendingDonation(t, uuid.New(), 200)
		require.NoError(t, d.Reject())

		m.donationRepo.On("FindByID", ctx, d.ID).Return(d, nil)

		err := svc.Reject(ctx, d.ID)

		require.ErrorIs(t, err, donation.ErrDonationNotPending)
		m.campaignRepo.AssertNotCalled(t, "AddToRaisedAmount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("looks up a donation by reference", func(t *testing.T) {
		svc, m := newService(t)
		d := newPendingDonation(t, uuid.New(), 100)

		m.donationRepo.On("FindByReference", ctx, d.PaymentReference).Return(d, nil)

		view, err := svc.GetByReference(ctx, d.PaymentReference)

		require.NoError(t, err)
		assert.Equal(t, d.ID, view.ID)
		assert.Equal(t, "pending", view.Status)
	})

	t.Run("maps a missing reference", func(t *testing.T) {
		svc, m := newService(t)

		m.donationRepo.On("FindByReference", ctx, "DON-MISSING1").Return(nil, shared.ErrNotFound)

		_, err := svc.GetByReference(ctx, "DON-MISSING1")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DONATION_NOT_FOUND", domainErr.Code)
	})

	t.Run("lists campaign donations with default paging", func(t *testing.T) {
		svc, m := newService(t)
		campaignID := uuid.New()
		d := newPendingDonation(t, campaignID, 100)

		m.donationRepo.On("FindByCampaign", ctx, campaignID, 20, 0).
			Return([]*donation.Donation{d}, int64(1), nil)

		result, err := svc.ListByCampaign(ctx, campaignID, 0, -5)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		assert.Equal(t, 20, result.Limit)
		assert.Equal(t, 0, result.Offset)
		require.Len(t, result.Donations, 1)
		assert.Equal(t, d.PaymentReference, result.Donations[0].Reference)
	})
}
