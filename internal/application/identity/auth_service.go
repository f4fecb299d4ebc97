package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/auth"
	"github.com/daana/backend/internal/infrastructure/mail"
)

// scopeForRole maps a principal role to the space separated scope string
// carried in issued tokens
func scopeForRole(role string) string {
	switch role {
	case identity.RoleAdmin:
		return "read write delete admin"
	case identity.RoleCharity:
		return "read write charity"
	case identity.RoleDonor:
		return "read write donate"
	case identity.RoleMonitor:
		return "read monitor"
	default:
		return "read"
	}
}

// AuthService resolves principals across the donor, charity and admin
// account stores and issues JWT token pairs
type AuthService struct {
	donorRepo   identity.DonorRepository
	charityRepo identity.CharityRepository
	adminRepo   identity.AdminRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	codeGen     identity.CodeGenerator
	mailer      mail.Mailer
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	donorRepo identity.DonorRepository,
	charityRepo identity.CharityRepository,
	adminRepo identity.AdminRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	codeGen identity.CodeGenerator,
	mailer mail.Mailer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		donorRepo:   donorRepo,
		charityRepo: charityRepo,
		adminRepo:   adminRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		codeGen:     codeGen,
		mailer:      mailer,
		logger:      logger,
	}
}

// findPrincipal probes the account stores in donor, charity, admin order.
// The first email match wins; there is no fall-through to a later store.
func (s *AuthService) findPrincipal(ctx context.Context, email string) identity.Principal {
	if donor, err := s.donorRepo.FindByEmail(ctx, email); err == nil {
		return donor
	}
	if charity, err := s.charityRepo.FindByEmail(ctx, email); err == nil {
		return charity
	}
	if admin, err := s.adminRepo.FindByEmail(ctx, email); err == nil {
		return admin
	}
	return nil
}

// Authenticate resolves the email to a principal, checks credentials and
// eligibility, and issues a token pair. The credential check always runs
// before eligibility so the response never discloses account state to a
// caller without the password.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	principal := s.findPrincipal(ctx, input.Email)
	if principal == nil {
		s.logger.Warn("No account found during login", zap.String("email", input.Email))
		return nil, identity.ErrInvalidCredentials
	}

	if !principal.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt",
			zap.String("email", input.Email),
			zap.String("kind", string(principal.Kind())))
		return nil, identity.ErrInvalidCredentials
	}

	if err := principal.Eligible(); err != nil {
		s.logger.Warn("Login attempt for ineligible account",
			zap.String("email", input.Email),
			zap.String("kind", string(principal.Kind())))
		return nil, err
	}

	return s.issueTokens(principal)
}

// CharityLogin authenticates against the charity store only, with staged
// eligibility reasons for the charity portal
func (s *AuthService) CharityLogin(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Charity login attempt", zap.String("email", input.Email))

	charity, err := s.charityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Charity not found during login", zap.String("email", input.Email))
		return nil, identity.ErrInvalidCredentials
	}

	if !charity.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid charity password attempt", zap.String("email", input.Email))
		return nil, identity.ErrInvalidCredentials
	}

	if err := charity.LoginEligible(); err != nil {
		s.logger.Warn("Charity login blocked",
			zap.String("email", input.Email),
			zap.String("status", string(charity.Status)))
		return nil, err
	}

	return s.issueTokens(charity)
}

func (s *AuthService) issueTokens(principal identity.Principal) (*LoginResult, error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		Email: principal.GetEmail(),
		Role:  principal.Role(),
		Scope: scopeForRole(principal.Role()),
		Name:  principal.DisplayName(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Logged in successfully",
		zap.String("email", principal.GetEmail()),
		zap.String("role", principal.Role()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Principal: PrincipalInfo{
			ID:          principal.GetID(),
			Email:       principal.GetEmail(),
			Role:        principal.Role(),
			DisplayName: principal.DisplayName(),
			ImageURL:    principal.ImageURL(),
		},
	}, nil
}

// RefreshToken rotates a token pair using a valid refresh token. Scope and
// display name are resolved again so role or profile changes take effect.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	s.logger.Info("Token refresh attempt")

	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID); err != nil {
		// Fail open: an unreachable blacklist must not lock everyone out
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
	} else if revoked {
		s.logger.Warn("Refresh attempt with revoked token", zap.String("email", claims.Email))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	if invalidated, err := s.blacklist.IsAccountTokenInvalidated(ctx, claims.Email, claims.GetIssuedAtTime()); err != nil {
		s.logger.Error("Failed to check account invalidation", zap.Error(err))
	} else if invalidated {
		s.logger.Warn("Refresh attempt after account-wide logout", zap.String("email", claims.Email))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	principal := s.findPrincipal(ctx, claims.Email)
	if principal == nil {
		s.logger.Warn("Account not found during token refresh", zap.String("email", claims.Email))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	if err := principal.Eligible(); err != nil {
		s.logger.Warn("Token refresh for ineligible account", zap.String("email", claims.Email))
		return nil, err
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken,
		scopeForRole(principal.Role()), principal.DisplayName())
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed successfully", zap.String("email", claims.Email))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// mapTokenError maps JWT validation errors to domain errors
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrInvalidClaims):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}

// Logout revokes the presented access token, and optionally every token
// issued to the account before now
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("Logout", zap.String("email", input.Email))

	if input.TokenJTI != "" {
		ttl := time.Until(input.ExpiresAt)
		if ttl > 0 {
			if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
				s.logger.Error("Failed to blacklist token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
			}
		}
	}

	if input.AllSessions {
		// Refresh tokens live longest, so their expiration bounds the entry
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddAccountTokensToBlacklist(ctx, input.Email, ttl); err != nil {
			s.logger.Error("Failed to invalidate account tokens", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke account sessions")
		}
	}

	return nil
}

// ForgotPassword issues a password reset code to an existing charity.
// Mail delivery is best effort; a failed send never rolls back the code.
func (s *AuthService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) error {
	s.logger.Info("Password reset requested", zap.String("email", input.Email))

	charity, err := s.charityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Password reset for unknown charity", zap.String("email", input.Email))
		return shared.NewDomainError("CHARITY_NOT_FOUND", "No charity account found for this email")
	}
	if charity.Deleted {
		return identity.ErrCharityDeleted
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		s.logger.Error("Failed to generate reset code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to generate reset code")
	}

	charity.IssuePasswordResetCode(code, time.Now())
	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to store reset code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to issue reset code")
	}

	if err := s.mailer.SendPasswordResetCode(ctx, charity.Email, code); err != nil {
		s.logger.Warn("Failed to send password reset mail",
			zap.String("email", charity.Email),
			zap.Error(err))
	}

	return nil
}

// ResetPassword consumes the reset code and replaces the charity password
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	charity, err := s.charityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("CHARITY_NOT_FOUND", "No charity account found for this email")
	}

	if err := charity.ResetPassword(input.Code, input.NewPassword, time.Now()); err != nil {
		return err
	}

	if err := s.charityRepo.Update(ctx, charity); err != nil {
		s.logger.Error("Failed to update charity after password reset", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.logger.Info("Charity password reset", zap.String("email", charity.Email))
	return nil
}
