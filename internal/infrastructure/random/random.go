package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/identity"
)

const (
	otpMin   = 100000
	otpRange = 900000
)

// CryptoCodeGenerator draws six digit codes uniformly from crypto/rand
type CryptoCodeGenerator struct{}

var _ identity.CodeGenerator = (*CryptoCodeGenerator)(nil)

// NewCryptoCodeGenerator creates the default OTP code generator
func NewCryptoCodeGenerator() *CryptoCodeGenerator {
	return &CryptoCodeGenerator{}
}

// Generate returns a code in [100000, 999999]
func (g *CryptoCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// UUIDReferenceGenerator derives payment references from uuid prefixes
type UUIDReferenceGenerator struct{}

var _ donation.ReferenceGenerator = (*UUIDReferenceGenerator)(nil)

// NewUUIDReferenceGenerator creates the default payment reference generator
func NewUUIDReferenceGenerator() *UUIDReferenceGenerator {
	return &UUIDReferenceGenerator{}
}

// NewReference returns a reference of the form DON-XXXXXXXX
func (g *UUIDReferenceGenerator) NewReference() string {
	return "DON-" + strings.ToUpper(uuid.NewString()[:8])
}
