package campaign

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/application/media"
	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/shared"
)

// ErrNotOwner guards charity-scoped program edits
var ErrNotOwner = shared.NewDomainError("FORBIDDEN", "This program belongs to another charity")

// Service handles the fundraising program lifecycle: two step registration,
// edits, soft deletion, public listings and admin review
type Service struct {
	campaignRepo campaign.Repository
	donationRepo donation.Repository
	storage      media.ObjectStorageService
	logger       *zap.Logger
}

// NewService creates a new campaign service
func NewService(
	campaignRepo campaign.Repository,
	donationRepo donation.Repository,
	storage media.ObjectStorageService,
	logger *zap.Logger,
) *Service {
	return &Service{
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create is program registration step one: a draft with a slug derived from
// the title
func (s *Service) Create(ctx context.Context, input CreateCampaignInput) (*CreateCampaignResult, error) {
	c, err := campaign.NewCampaign(input.CharityID, input.Title, input.Description,
		input.Category, input.TargetAmount, input.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save program", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create program")
	}

	s.logger.Info("Program created",
		zap.String("campaign_id", c.ID.String()),
		zap.String("slug", c.Slug))

	return &CreateCampaignResult{
		CampaignID: c.ID,
		Slug:       c.Slug,
		Status:     string(c.Status),
	}, nil
}

// AttachMedia is program registration step two: optional uploads, then the
// program is submitted for admin review
func (s *Service) AttachMedia(ctx context.Context, input AttachMediaInput) error {
	c, err := s.findOwned(ctx, input.CampaignID, input.CharityID)
	if err != nil {
		return err
	}

	imageURL, err := s.uploadOptional(ctx, media.FolderProgramImages, input.Image)
	if err != nil {
		return err
	}
	documentURL, err := s.uploadOptional(ctx, media.FolderProgramDocuments, input.Document)
	if err != nil {
		return err
	}
	videoURL, err := s.uploadOptional(ctx, media.FolderProgramVideos, input.Video)
	if err != nil {
		return err
	}

	c.AttachMedia(imageURL, documentURL, videoURL)
	c.SubmitForReview()

	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to update program media", zap.Error(err))
		return err
	}

	s.logger.Info("Program submitted for review", zap.String("campaign_id", c.ID.String()))
	return nil
}

func (s *Service) uploadOptional(ctx context.Context, folder string, file *FileUpload) (string, error) {
	if file == nil {
		return "", nil
	}
	key := media.BuildKey(folder, file.FileName)
	location, err := s.storage.Upload(ctx, key, file.Data, file.ContentType)
	if err != nil || location == "" {
		s.logger.Error("Program asset upload failed",
			zap.String("folder", folder),
			zap.Error(err))
		return "", shared.NewDomainError("UPLOAD_FAILED", "Failed to upload program asset")
	}
	return location, nil
}

// Update edits program fields. The program goes back to pending review and
// the slug is rebuilt from the new title.
func (s *Service) Update(ctx context.Context, input UpdateCampaignInput) (*CampaignDetail, error) {
	c, err := s.findOwned(ctx, input.CampaignID, input.CharityID)
	if err != nil {
		return nil, err
	}

	if err := c.Update(input.Title, input.Description, input.Category,
		input.TargetAmount, input.EndDate); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to update program", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Program updated",
		zap.String("campaign_id", c.ID.String()),
		zap.String("slug", c.Slug))

	return s.toDetail(ctx, c)
}

// Delete soft deletes a program. Programs with recorded donations cannot be
// deleted.
func (s *Service) Delete(ctx context.Context, campaignID, charityID uuid.UUID) error {
	c, err := s.findOwned(ctx, campaignID, charityID)
	if err != nil {
		return err
	}

	count, err := s.donationRepo.CountByCampaign(ctx, campaignID)
	if err != nil {
		s.logger.Error("Failed to count program donations", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete program")
	}
	if count > 0 {
		return campaign.ErrHasActiveDonations
	}

	c.MarkDeleted()
	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to delete program", zap.Error(err))
		return err
	}

	s.logger.Info("Program deleted", zap.String("campaign_id", campaignID.String()))
	return nil
}

func (s *Service) findOwned(ctx context.Context, campaignID, charityID uuid.UUID) (*campaign.Campaign, error) {
	c, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, shared.NewDomainError("CAMPAIGN_NOT_FOUND", "Program not found")
	}
	if c.Deleted {
		return nil, campaign.ErrCampaignDeleted
	}
	if c.CharityID != charityID {
		return nil, ErrNotOwner
	}
	return c, nil
}

// GetBySlug returns the public program view. Deleted programs are invisible.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*CampaignDetail, error) {
	c, err := s.campaignRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewDomainError("CAMPAIGN_NOT_FOUND", "Program not found")
	}
	return s.toDetail(ctx, c)
}

// GetByID returns the program view by identifier
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*CampaignDetail, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil || c.Deleted {
		return nil, shared.NewDomainError("CAMPAIGN_NOT_FOUND", "Program not found")
	}
	return s.toDetail(ctx, c)
}

func (s *Service) toDetail(ctx context.Context, c *campaign.Campaign) (*CampaignDetail, error) {
	count, err := s.donationRepo.CountByCampaign(ctx, c.ID)
	if err != nil {
		s.logger.Warn("Failed to count program donations", zap.Error(err))
		count = 0
	}

	return &CampaignDetail{
		ID:                c.ID,
		CharityID:         c.CharityID,
		Title:             c.Title,
		Slug:              c.Slug,
		Description:       c.Description,
		Category:          c.Category,
		TargetAmount:      c.TargetAmount,
		RaisedAmount:      c.RaisedAmount,
		CompletionPercent: c.CompletionPercent(),
		Status:            string(c.Status),
		ImageURL:          c.ImageURL,
		DocumentURL:       c.DocumentURL,
		VideoURL:          c.VideoURL,
		EndDate:           c.EndDate,
		CreatedAt:         c.CreatedAt,
		DonationCount:     count,
	}, nil
}

// ListByCharity returns a charity's own programs, newest first
func (s *Service) ListByCharity(ctx context.Context, charityID uuid.UUID, limit, offset int) (*CampaignListResult, error) {
	limit, offset = normalizePage(limit, offset)
	campaigns, total, err := s.campaignRepo.FindByCharity(ctx, charityID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list charity programs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list programs")
	}
	return buildListResult(campaigns, total, limit, offset), nil
}

// ListActive returns the public listing of programs accepting donations
func (s *Service) ListActive(ctx context.Context, limit, offset int) (*CampaignListResult, error) {
	return s.listByStatus(ctx, campaign.StatusActive, limit, offset)
}

// ListByStatus returns programs in a review state for the admin queue
func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) (*CampaignListResult, error) {
	return s.listByStatus(ctx, campaign.Status(status), limit, offset)
}

func (s *Service) listByStatus(ctx context.Context, status campaign.Status, limit, offset int) (*CampaignListResult, error) {
	limit, offset = normalizePage(limit, offset)
	campaigns, total, err := s.campaignRepo.FindByStatus(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list programs", zap.String("status", string(status)), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list programs")
	}
	return buildListResult(campaigns, total, limit, offset), nil
}

// Approve activates a program after admin review
func (s *Service) Approve(ctx context.Context, campaignID uuid.UUID) error {
	return s.review(ctx, campaignID, (*campaign.Campaign).Approve, "approved")
}

// Reject deactivates a program after admin review
func (s *Service) Reject(ctx context.Context, campaignID uuid.UUID) error {
	return s.review(ctx, campaignID, (*campaign.Campaign).Reject, "rejected")
}

func (s *Service) review(ctx context.Context, campaignID uuid.UUID, transition func(*campaign.Campaign), outcome string) error {
	c, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return shared.NewDomainError("CAMPAIGN_NOT_FOUND", "Program not found")
	}
	if c.Deleted {
		return campaign.ErrCampaignDeleted
	}

	transition(c)

	if err := s.campaignRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to store program review", zap.Error(err))
		return err
	}

	s.logger.Info("Program reviewed",
		zap.String("campaign_id", campaignID.String()),
		zap.String("outcome", outcome))
	return nil
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

func buildListResult(campaigns []*campaign.Campaign, total int64, limit, offset int) *CampaignListResult {
	result := &CampaignListResult{
		Campaigns: make([]CampaignListItem, 0, len(campaigns)),
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
	for _, c := range campaigns {
		result.Campaigns = append(result.Campaigns, toListItem(c))
	}
	return result
}

func toListItem(c *campaign.Campaign) CampaignListItem {
	return CampaignListItem{
		ID:                c.ID,
		CharityID:         c.CharityID,
		Title:             c.Title,
		Slug:              c.Slug,
		Category:          c.Category,
		TargetAmount:      c.TargetAmount,
		RaisedAmount:      c.RaisedAmount,
		CompletionPercent: c.CompletionPercent(),
		Status:            string(c.Status),
		ImageURL:          c.ImageURL,
		EndDate:           c.EndDate,
		CreatedAt:         c.CreatedAt,
	}
}
