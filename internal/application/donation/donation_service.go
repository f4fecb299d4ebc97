package donation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/application/media"
	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/telemetry"
)

// donationReceivedMessage is returned on every successful donation
const donationReceivedMessage = "Your donation has been received and will be reflected once it is reviewed."

// TxManager runs donation and campaign repository operations inside one
// storage transaction
type TxManager interface {
	InTx(ctx context.Context, fn func(donations donation.Repository, campaigns campaign.Repository) error) error
}

// Service records donations and handles their review lifecycle
type Service struct {
	donationRepo donation.Repository
	campaignRepo campaign.Repository
	donorRepo    identity.DonorRepository
	storage      media.ObjectStorageService
	refGen       donation.ReferenceGenerator
	tx           TxManager
	logger       *zap.Logger
}

// NewService creates a new donation service
func NewService(
	donationRepo donation.Repository,
	campaignRepo campaign.Repository,
	donorRepo identity.DonorRepository,
	storage media.ObjectStorageService,
	refGen donation.ReferenceGenerator,
	tx TxManager,
	logger *zap.Logger,
) *Service {
	return &Service{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		donorRepo:    donorRepo,
		storage:      storage,
		refGen:       refGen,
		tx:           tx,
		logger:       logger,
	}
}

// Create records a donation toward an active campaign. The donation row and
// the campaign raised amount commit in one transaction; the raised amount is
// adjusted with an atomic in-database increment so concurrent donations
// always sum exactly.
func (s *Service) Create(ctx context.Context, input CreateDonationInput) (*CreateDonationResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "donation", "create",
		telemetry.WithAttribute(telemetry.SpanAttrCampaignID, input.CampaignID),
		telemetry.WithAttribute(telemetry.SpanAttrAnonymous, input.DonorID == nil))
	defer span.End()

	c, err := s.campaignRepo.FindByID(ctx, input.CampaignID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("CAMPAIGN_NOT_FOUND", "Program not found")
	}
	if err := c.AcceptsDonations(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	// The donor comes from the authenticated token, never from the payload
	var donorID *uuid.UUID
	if input.DonorID != nil {
		donor, err := s.donorRepo.FindByID(ctx, *input.DonorID)
		if err != nil {
			s.logger.Warn("Donation with unknown donor", zap.String("donor_id", input.DonorID.String()))
			telemetry.RecordError(span, err)
			return nil, shared.NewDomainError("DONOR_NOT_FOUND", "Donor account not found")
		}
		id := donor.ID
		donorID = &id
	}

	slipURL, err := s.uploadSlip(ctx, input.PaymentSlip)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	reference := s.refGen.NewReference()
	d, err := donation.NewDonation(input.CampaignID, donorID, input.Amount, reference, slipURL)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.tx.InTx(ctx, func(donations donation.Repository, campaigns campaign.Repository) error {
		if err := donations.Save(ctx, d); err != nil {
			return err
		}
		return campaigns.AddToRaisedAmount(ctx, d.CampaignID, d.NetAmount)
	})
	if err != nil {
		s.logger.Error("Failed to record donation",
			zap.String("campaign_id", input.CampaignID.String()),
			zap.String("reference", reference),
			zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Donation recorded",
		zap.String("donation_id", d.ID.String()),
		zap.String("campaign_id", d.CampaignID.String()),
		zap.String("reference", d.PaymentReference),
		zap.Bool("anonymous", d.IsAnonymous))

	telemetry.SetAttributes(span,
		telemetry.SpanAttrDonationID, d.ID,
		telemetry.SpanAttrReference, d.PaymentReference)
	telemetry.SetOK(span)

	return &CreateDonationResult{
		DonationID:    d.ID,
		Reference:     d.PaymentReference,
		CampaignTitle: c.Title,
		ActualAmount:  d.ActualAmount,
		ServiceCharge: d.ServiceCharge,
		NetAmount:     d.NetAmount,
		IsAnonymous:   d.IsAnonymous,
		Message:       donationReceivedMessage,
	}, nil
}

func (s *Service) uploadSlip(ctx context.Context, slip *FileUpload) (string, error) {
	if slip == nil {
		return "", nil
	}
	key := media.BuildKey(media.FolderPaymentSlips, slip.FileName)
	location, err := s.storage.Upload(ctx, key, slip.Data, slip.ContentType)
	if err != nil || location == "" {
		s.logger.Error("Payment slip upload failed", zap.Error(err))
		return "", shared.NewDomainError("SLIP_UPLOAD_FAILED", "Failed to upload payment slip")
	}
	return location, nil
}

// Approve confirms a pending donation. The raised amount was credited at
// creation, so approval only flips the status.
func (s *Service) Approve(ctx context.Context, donationID uuid.UUID) error {
	d, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return shared.NewDomainError("DONATION_NOT_FOUND", "Donation not found")
	}

	if err := d.Approve(); err != nil {
		return err
	}

	if err := s.donationRepo.Update(ctx, d); err != nil {
		s.logger.Error("Failed to approve donation", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to approve donation")
	}

	s.logger.Info("Donation approved", zap.String("donation_id", donationID.String()))
	return nil
}

// Reject marks a pending donation rejected and reverses its net amount out
// of the campaign raised total in the same transaction
func (s *Service) Reject(ctx context.Context, donationID uuid.UUID) error {
	err := s.tx.InTx(ctx, func(donations donation.Repository, campaigns campaign.Repository) error {
		d, err := donations.FindByID(ctx, donationID)
		if err != nil {
			return shared.NewDomainError("DONATION_NOT_FOUND", "Donation not found")
		}
		if err := d.Reject(); err != nil {
			return err
		}
		if err := donations.Update(ctx, d); err != nil {
			return err
		}
		return campaigns.AddToRaisedAmount(ctx, d.CampaignID, d.NetAmount.Neg())
	})
	if err != nil {
		s.logger.Error("Failed to reject donation",
			zap.String("donation_id", donationID.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("Donation rejected", zap.String("donation_id", donationID.String()))
	return nil
}

// GetByReference looks up a donation by its payment reference
func (s *Service) GetByReference(ctx context.Context, reference string) (*DonationView, error) {
	d, err := s.donationRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, shared.NewDomainError("DONATION_NOT_FOUND", "Donation not found")
	}
	view := toView(d)
	return &view, nil
}

// ListByCampaign returns a campaign's donations, newest first
func (s *Service) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) (*DonationListResult, error) {
	limit, offset = normalizePage(limit, offset)
	donations, total, err := s.donationRepo.FindByCampaign(ctx, campaignID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list campaign donations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list donations")
	}
	return buildListResult(donations, total, limit, offset), nil
}

// ListByDonor returns a donor's own donation history
func (s *Service) ListByDonor(ctx context.Context, donorID uuid.UUID, limit, offset int) (*DonationListResult, error) {
	limit, offset = normalizePage(limit, offset)
	donations, total, err := s.donationRepo.FindByDonor(ctx, donorID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list donor donations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list donations")
	}
	return buildListResult(donations, total, limit, offset), nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func buildListResult(donations []*donation.Donation, total int64, limit, offset int) *DonationListResult {
	result := &DonationListResult{
		Donations: make([]DonationView, 0, len(donations)),
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
	for _, d := range donations {
		result.Donations = append(result.Donations, toView(d))
	}
	return result
}

func toView(d *donation.Donation) DonationView {
	return DonationView{
		ID:             d.ID,
		CampaignID:     d.CampaignID,
		Reference:      d.PaymentReference,
		ActualAmount:   d.ActualAmount,
		ServiceCharge:  d.ServiceCharge,
		NetAmount:      d.NetAmount,
		Status:         string(d.Status),
		IsAnonymous:    d.IsAnonymous,
		PaymentSlipURL: d.PaymentSlipURL,
		CreatedAt:      d.CreatedAt,
	}
}
