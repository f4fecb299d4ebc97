package identity

import (
	"strings"
	"time"

	"github.com/daana/backend/internal/domain/shared"
)

// AdminStatus represents the state of an administrator account
type AdminStatus string

const (
	AdminStatusActive   AdminStatus = "active"
	AdminStatusInactive AdminStatus = "inactive"
)

// Admin is a platform staff account. AccountRole distinguishes full
// administrators from read-only monitors.
type Admin struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	Name         string
	AccountRole  string
	Status       AdminStatus
}

// NewAdmin creates an active administrator account
func NewAdmin(email, password, name string) (*Admin, error) {
	return newStaffAccount(email, password, name, RoleAdmin)
}

// NewMonitor creates an active read-only monitor account
func NewMonitor(email, password, name string) (*Admin, error) {
	return newStaffAccount(email, password, name, RoleMonitor)
}

func newStaffAccount(email, password, name, role string) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &Admin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		Name:              strings.TrimSpace(name),
		AccountRole:       role,
		Status:            AdminStatusActive,
	}, nil
}

// Kind implements Principal
func (a *Admin) Kind() Kind { return KindAdmin }

// GetEmail implements Principal
func (a *Admin) GetEmail() string { return a.Email }

// VerifyPassword checks a plaintext password against the stored hash
func (a *Admin) VerifyPassword(password string) bool {
	return verifyPassword(a.PasswordHash, password)
}

// Eligible reports whether the admin may authenticate
func (a *Admin) Eligible() error {
	if a.Status != AdminStatusActive {
		return ErrNotEligible
	}
	return nil
}

// Role implements Principal
func (a *Admin) Role() string {
	if a.AccountRole == "" {
		return RoleAdmin
	}
	return a.AccountRole
}

// DisplayName implements Principal
func (a *Admin) DisplayName() string { return a.Name }

// ImageURL implements Principal
func (a *Admin) ImageURL() string { return "" }

// Deactivate disables the admin account
func (a *Admin) Deactivate() {
	a.Status = AdminStatusInactive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
