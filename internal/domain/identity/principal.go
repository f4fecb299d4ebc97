package identity

import (
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daana/backend/internal/domain/shared"
)

// Kind identifies which aggregate backs a principal
type Kind string

const (
	KindDonor   Kind = "DONOR"
	KindCharity Kind = "CHARITY"
	KindAdmin   Kind = "ADMIN"
)

// Role names carried in issued tokens
const (
	RoleDonor   = "DONOR"
	RoleCharity = "CHARITY"
	RoleAdmin   = "ADMIN"
	RoleMonitor = "MONITOR"
)

// Principal is any account that can authenticate against the platform.
// Eligible reports nil when the account may receive a token.
type Principal interface {
	GetID() uuid.UUID
	Kind() Kind
	GetEmail() string
	VerifyPassword(password string) bool
	Eligible() error
	Role() string
	DisplayName() string
	ImageURL() string
}

// Common identity errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrNotEligible        = shared.NewDomainError("USER_NOT_VERIFIED_OR_INACTIVE", "User is not verified or inactive")
	ErrEmailTaken         = shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters long")
	}
	var hasLetter, hasNumber bool
	for _, c := range password {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		case c >= '0' && c <= '9':
			hasNumber = true
		}
	}
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
