package identity

import (
	"context"

	"github.com/google/uuid"
)

// DonorRepository persists donor aggregates
type DonorRepository interface {
	Save(ctx context.Context, donor *Donor) error
	Update(ctx context.Context, donor *Donor) error
	FindByID(ctx context.Context, id uuid.UUID) (*Donor, error)
	FindByEmail(ctx context.Context, email string) (*Donor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CharityRepository persists charity aggregates with their documents and
// bank detail
type CharityRepository interface {
	Save(ctx context.Context, charity *Charity) error
	Update(ctx context.Context, charity *Charity) error
	FindByID(ctx context.Context, id uuid.UUID) (*Charity, error)
	FindByEmail(ctx context.Context, email string) (*Charity, error)
	FindByStatus(ctx context.Context, status CharityStatus, limit, offset int) ([]*Charity, int64, error)
}

// AdminRepository persists administrator accounts
type AdminRepository interface {
	Save(ctx context.Context, admin *Admin) error
	Update(ctx context.Context, admin *Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
}
