package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/application/media"
	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/mail"
)

// DonorService handles donor registration, verification and profile management
type DonorService struct {
	donorRepo identity.DonorRepository
	codeGen   identity.CodeGenerator
	mailer    mail.Mailer
	storage   media.ObjectStorageService
	logger    *zap.Logger
}

// NewDonorService creates a new donor service
func NewDonorService(
	donorRepo identity.DonorRepository,
	codeGen identity.CodeGenerator,
	mailer mail.Mailer,
	storage media.ObjectStorageService,
	logger *zap.Logger,
) *DonorService {
	return &DonorService{
		donorRepo: donorRepo,
		codeGen:   codeGen,
		mailer:    mailer,
		storage:   storage,
		logger:    logger,
	}
}

// Register creates a donor account pending email verification. An existing
// unverified account with the same email is replaced by the new registration;
// a verified one blocks it.
func (s *DonorService) Register(ctx context.Context, input RegisterDonorInput) (*RegisterDonorResult, error) {
	s.logger.Info("Donor registration", zap.String("email", input.Email))

	if existing, err := s.donorRepo.FindByEmail(ctx, input.Email); err == nil {
		if existing.Verification.Verified {
			s.logger.Warn("Registration with taken email", zap.String("email", input.Email))
			return nil, identity.ErrEmailTaken
		}
		if err := s.donorRepo.Delete(ctx, existing.ID); err != nil {
			s.logger.Error("Failed to replace unverified donor", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register donor")
		}
		s.logger.Info("Replaced unverified donor account", zap.String("email", input.Email))
	}

	donor, err := identity.NewDonor(input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		s.logger.Error("Failed to generate verification code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification code")
	}
	if err := donor.IssueVerificationCode(code, time.Now()); err != nil {
		return nil, err
	}

	if err := s.donorRepo.Save(ctx, donor); err != nil {
		s.logger.Error("Failed to save donor", zap.Error(err))
		return nil, err
	}

	if err := s.mailer.SendVerificationCode(ctx, donor.Email, code); err != nil {
		s.logger.Warn("Failed to send verification mail",
			zap.String("email", donor.Email),
			zap.Error(err))
	}

	s.logger.Info("Donor registered", zap.String("donor_id", donor.ID.String()))

	return &RegisterDonorResult{DonorID: donor.ID, Email: donor.Email}, nil
}

// VerifyEmail confirms the OTP and activates the donor account
func (s *DonorService) VerifyEmail(ctx context.Context, input VerifyEmailInput) error {
	donor, err := s.donorRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Verification for unknown donor", zap.String("email", input.Email))
		return shared.NewDomainError("USER_NOT_FOUND", "No account found for this email")
	}

	if err := donor.ConfirmVerification(input.Code, time.Now()); err != nil {
		return err
	}

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		s.logger.Error("Failed to update donor after verification", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify account")
	}

	s.logger.Info("Donor verified", zap.String("donor_id", donor.ID.String()))
	return nil
}

// ResendCode issues a replacement verification code. The previous code stops
// working immediately.
func (s *DonorService) ResendCode(ctx context.Context, input ResendCodeInput) error {
	donor, err := s.donorRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "No account found for this email")
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		s.logger.Error("Failed to generate verification code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification code")
	}
	if err := donor.IssueVerificationCode(code, time.Now()); err != nil {
		return err
	}

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		s.logger.Error("Failed to store replacement code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to resend verification code")
	}

	if err := s.mailer.SendVerificationCode(ctx, donor.Email, code); err != nil {
		s.logger.Warn("Failed to send verification mail",
			zap.String("email", donor.Email),
			zap.Error(err))
	}

	return nil
}

// GetProfile returns the donor's own account view
func (s *DonorService) GetProfile(ctx context.Context, donorID uuid.UUID) (*DonorProfile, error) {
	donor, err := s.donorRepo.FindByID(ctx, donorID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}
	return toDonorProfile(donor), nil
}

// ResolveIDByEmail maps an authenticated session to its donor id
func (s *DonorService) ResolveIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	donor, err := s.donorRepo.FindByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}
	return donor.ID, nil
}

// GetProfileByEmail resolves the donor behind an authenticated session
func (s *DonorService) GetProfileByEmail(ctx context.Context, email string) (*DonorProfile, error) {
	donor, err := s.donorRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}
	return toDonorProfile(donor), nil
}

// UpdateProfile edits the donor display fields, uploading a replacement
// profile image when one is supplied
func (s *DonorService) UpdateProfile(ctx context.Context, input UpdateDonorProfileInput) (*DonorProfile, error) {
	donor, err := s.donorRepo.FindByID(ctx, input.DonorID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	var imageLocation string
	if input.ProfileImage != nil {
		key := media.BuildKey(media.FolderLogoImages, input.ProfileImage.FileName)
		location, err := s.storage.Upload(ctx, key, input.ProfileImage.Data, input.ProfileImage.ContentType)
		if err != nil || location == "" {
			s.logger.Error("Profile image upload failed",
				zap.String("donor_id", donor.ID.String()),
				zap.Error(err))
			return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to upload profile image")
		}
		imageLocation = location
	}

	if err := donor.UpdateProfile(input.FirstName, input.LastName, imageLocation); err != nil {
		return nil, err
	}

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		s.logger.Error("Failed to update donor profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	return toDonorProfile(donor), nil
}

func toDonorProfile(donor *identity.Donor) *DonorProfile {
	return &DonorProfile{
		ID:              donor.ID,
		Email:           donor.Email,
		FirstName:       donor.FirstName,
		LastName:        donor.LastName,
		ProfileImageURL: donor.ProfileImageURL,
		Verified:        donor.Verification.Verified,
		CreatedAt:       donor.CreatedAt,
	}
}
