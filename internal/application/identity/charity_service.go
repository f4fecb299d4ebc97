package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/application/media"
	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/mail"
)

// profileStatsLimit bounds how many programs the profile statistics scan
const profileStatsLimit = 500

// CharityService handles the three step charity onboarding flow plus
// profile and admin review operations
type CharityService struct {
	charityRepo  identity.CharityRepository
	campaignRepo campaign.Repository
	codeGen      identity.CodeGenerator
	mailer       mail.Mailer
	storage      media.ObjectStorageService
	logger       *zap.Logger
}

// NewCharityService creates a new charity service
func NewCharityService(
	charityRepo identity.CharityRepository,
	campaignRepo campaign.Repository,
	codeGen identity.CodeGenerator,
	mailer mail.Mailer,
	storage media.ObjectStorageService,
	logger *zap.Logger,
) *CharityService {
	return &CharityService{
		charityRepo:  charityRepo,
		campaignRepo: campaignRepo,
		codeGen:      codeGen,
		mailer:       mailer,
		storage:      storage,
		logger:       logger,
	}
}

// Register creates a draft charity account and issues a verification code.
// This is onboarding step one; documents and bank detail follow in step two.
func (s *CharityService) Register(ctx context.Context, input RegisterCharityInput) (*RegisterCharityResult, error) {
	s.logger.Info("Charity registration", zap.String("email", input.Email))

	if _, err := s.charityRepo.FindByEmail(ctx, input.Email); err == nil {
		s.logger.Warn("Registration with taken email", zap.String("email", input.Email))
		return nil, identity.ErrEmailTaken
	}

	charity, err := identity.NewCharity(
		input.Email,
		input.Password,
		input.CharityName,
		input.RegisteredName,
		identity.ExecutionType(input.ExecutionType),
		input.ContactNumber,
		input.Address,
		input.Description,
	)
	if err != nil {
		return nil, err
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		s.logger.Error("Failed to generate verification code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification code")
	}
	if err := charity.IssueVerificationCode(code, time.Now()); err != nil {
		return nil, err
	}

	if err := s.charityRepo.Save(ctx, charity); err != nil {
		s.logger.Error("Failed to save charity", zap.Error(err))
		return nil, err
	}

	if err := s.mailer.SendVerificationCode(ctx, charity.Email, code); err != nil {
		s.logger.Warn("Failed to send verification mail",
			zap.String("email", charity.Email),
			zap.Error(err))
	}

	s.logger.Info("Charity registered", zap.String("charity_id", charity.ID.String()))

	return &RegisterCharityResult{CharityID: charity.ID, Email: charity.Email}, nil
}

// SubmitDocuments is onboarding step two: the mandatory proof document,
// an optional logo, and the payout account. Success moves the draft charity
// into the admin review queue. Verification status stays untouched.
func (s *CharityService) SubmitDocuments(ctx context.Context, input SubmitCharityDocumentsInput) error {
	charity, err := s.charityRepo.FindByID(ctx, input.CharityID)
	if err != nil {
		return shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}

	key := media.BuildKey(media.FolderCharityDocuments, input.Document.FileName)
	location, err := s.storage.Upload(ctx, key, input.Document.Data, input.Document.ContentType)
	if err != nil {
		s.logger.Error("Proof document upload failed",
			zap.String("charity_id", charity.ID.String()),
			zap.Error(err))
		return shared.NewDomainError("UPLOAD_FAILED", "Failed to upload proof document")
	}

	if err := charity.AttachProofDocument(
		identity.DocumentType(input.DocumentType), input.Document.FileName, location); err != nil {
		return err
	}

	if input.Logo != nil {
		logoKey := media.BuildKey(media.FolderLogoImages, input.Logo.FileName)
		logoLocation, err := s.storage.Upload(ctx, logoKey, input.Logo.Data, input.Logo.ContentType)
		if err != nil || logoLocation == "" {
			s.logger.Error("Logo upload failed",
				zap.String("charity_id", charity.ID.String()),
				zap.Error(err))
			return shared.NewDomainError("UPLOAD_FAILED", "Failed to upload logo image")
		}
		charity.SetLogo(logoLocation)
	}

	if err := charity.AttachBankDetail(
		input.BankDetail.AccountHolderName,
		input.BankDetail.AccountNumber,
		input.BankDetail.BankName,
		input.BankDetail.BranchName,
		input.BankDetail.SwiftCode,
	); err != nil {
		return err
	}

	charity.SubmitForReview()

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to update charity after document submission", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to submit documents")
	}

	s.logger.Info("Charity documents submitted",
		zap.String("charity_id", charity.ID.String()),
		zap.String("status", string(charity.Status)))
	return nil
}

// VerifyEmail is onboarding step three: OTP confirmation. The verified flag
// is independent of admin approval.
func (s *CharityService) VerifyEmail(ctx context.Context, input VerifyEmailInput) error {
	charity, err := s.charityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Verification for unknown charity", zap.String("email", input.Email))
		return shared.NewDomainError("CHARITY_NOT_FOUND", "No charity account found for this email")
	}

	if err := charity.ConfirmVerification(input.Code, time.Now()); err != nil {
		return err
	}

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to update charity after verification", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify account")
	}

	s.logger.Info("Charity verified", zap.String("charity_id", charity.ID.String()))
	return nil
}

// ResendCode issues a replacement verification code, invalidating the old one
func (s *CharityService) ResendCode(ctx context.Context, input ResendCodeInput) error {
	charity, err := s.charityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("CHARITY_NOT_FOUND", "No charity account found for this email")
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		s.logger.Error("Failed to generate verification code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification code")
	}
	if err := charity.IssueVerificationCode(code, time.Now()); err != nil {
		return err
	}

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to store replacement code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to resend verification code")
	}

	if err := s.mailer.SendVerificationCode(ctx, charity.Email, code); err != nil {
		s.logger.Warn("Failed to send verification mail",
			zap.String("email", charity.Email),
			zap.Error(err))
	}

	return nil
}

// ChangePassword replaces the charity password after checking the old one
func (s *CharityService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	charity, err := s.charityRepo.FindByID(ctx, input.CharityID)
	if err != nil {
		return shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}

	if err := charity.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to update charity after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}

	s.logger.Info("Charity password changed", zap.String("charity_id", charity.ID.String()))
	return nil
}

// GetProfile returns the charity's own account view annotated with program
// statistics
func (s *CharityService) GetProfile(ctx context.Context, charityID uuid.UUID) (*CharityProfile, error) {
	charity, err := s.charityRepo.FindByID(ctx, charityID)
	if err != nil {
		return nil, shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}
	return s.buildProfile(ctx, charity)
}

// ResolveIDByEmail maps an authenticated session to its charity id without
// loading the full profile
func (s *CharityService) ResolveIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	charity, err := s.charityRepo.FindByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}
	return charity.ID, nil
}

// GetProfileByEmail resolves the charity behind an authenticated session
func (s *CharityService) GetProfileByEmail(ctx context.Context, email string) (*CharityProfile, error) {
	charity, err := s.charityRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}
	return s.buildProfile(ctx, charity)
}

func (s *CharityService) buildProfile(ctx context.Context, charity *identity.Charity) (*CharityProfile, error) {
	charityID := charity.ID

	campaigns, total, err := s.campaignRepo.FindByCharity(ctx, charityID, profileStatsLimit, 0)
	if err != nil {
		s.logger.Error("Failed to load charity programs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load profile")
	}

	raised := decimal.Zero
	active := 0
	for _, c := range campaigns {
		raised = raised.Add(c.RaisedAmount)
		if c.Status == campaign.StatusActive {
			active++
		}
	}

	profile := &CharityProfile{
		ID:             charity.ID,
		Email:          charity.Email,
		CharityName:    charity.CharityName,
		RegisteredName: charity.RegisteredName,
		ExecutionType:  string(charity.ExecutionType),
		ContactNumber:  charity.ContactNumber,
		Address:        charity.Address,
		Description:    charity.Description,
		LogoURL:        charity.LogoURL,
		Status:         string(charity.Status),
		Verified:       charity.Verification.Verified,
		CreatedAt:      charity.CreatedAt,
		TotalPrograms:  total,
		ActivePrograms: active,
		TotalRaised:    raised,
	}

	for _, doc := range charity.ProofDocuments {
		profile.ProofDocuments = append(profile.ProofDocuments, ProofDocumentInfo{
			ID:       doc.ID,
			Type:     string(doc.Type),
			FileName: doc.FileName,
			Location: doc.Location,
		})
	}
	if charity.BankDetail != nil {
		profile.BankDetail = &BankDetailInfo{
			AccountHolderName: charity.BankDetail.AccountHolderName,
			AccountNumber:     charity.BankDetail.AccountNumber,
			BankName:          charity.BankDetail.BankName,
			BranchName:        charity.BankDetail.BranchName,
			SwiftCode:         charity.BankDetail.SwiftCode,
		}
	}

	return profile, nil
}

// ListByStatus returns a page of charities in the given review state
func (s *CharityService) ListByStatus(ctx context.Context, status string, limit, offset int) (*CharityListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	charities, total, err := s.charityRepo.FindByStatus(ctx, identity.CharityStatus(status), limit, offset)
	if err != nil {
		s.logger.Error("Failed to list charities", zap.String("status", status), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list charities")
	}

	result := &CharityListResult{
		Charities: make([]CharityListItem, 0, len(charities)),
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
	for _, c := range charities {
		result.Charities = append(result.Charities, CharityListItem{
			ID:            c.ID,
			Email:         c.Email,
			CharityName:   c.CharityName,
			ExecutionType: string(c.ExecutionType),
			ContactNumber: c.ContactNumber,
			Status:        string(c.Status),
			Verified:      c.Verification.Verified,
			CreatedAt:     c.CreatedAt,
		})
	}
	return result, nil
}

// Approve activates a charity after admin review
func (s *CharityService) Approve(ctx context.Context, charityID uuid.UUID) error {
	charity, err := s.charityRepo.FindByID(ctx, charityID)
	if err != nil {
		return shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}

	charity.Approve()

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to approve charity", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to approve charity")
	}

	s.logger.Info("Charity approved", zap.String("charity_id", charityID.String()))
	return nil
}

// Reject deactivates a charity after admin review
func (s *CharityService) Reject(ctx context.Context, charityID uuid.UUID) error {
	charity, err := s.charityRepo.FindByID(ctx, charityID)
	if err != nil {
		return shared.NewDomainError("CHARITY_NOT_FOUND", "Charity account not found")
	}

	charity.Reject()

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to reject charity", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reject charity")
	}

	s.logger.Info("Charity rejected", zap.String("charity_id", charityID.String()))
	return nil
}
