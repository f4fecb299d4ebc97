package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daana/backend/internal/domain/identity"
	"github.com/daana/backend/internal/domain/shared"
	"github.com/daana/backend/internal/infrastructure/persistence/models"
)

// GormDonorRepository implements DonorRepository using GORM
type GormDonorRepository struct {
	db *gorm.DB
}

// NewGormDonorRepository creates a new GormDonorRepository
func NewGormDonorRepository(db *gorm.DB) *GormDonorRepository {
	return &GormDonorRepository{db: db}
}

// Save creates a new donor
func (r *GormDonorRepository) Save(ctx context.Context, donor *identity.Donor) error {
	model := models.DonorModelFromDomain(donor)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return identity.ErrEmailTaken
		}
		return err
	}
	return nil
}

// Update persists changes to an existing donor
func (r *GormDonorRepository) Update(ctx context.Context, donor *identity.Donor) error {
	model := models.DonorModelFromDomain(donor)
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: false}).Save(model).Error
}

// FindByID finds a donor by its ID
func (r *GormDonorRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Donor, error) {
	var model models.DonorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a donor by email, case insensitively
func (r *GormDonorRepository) FindByEmail(ctx context.Context, email string) (*identity.Donor, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.DonorModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete removes a donor row. Soft deletion goes through Update with the
// Deleted flag; this is for purging unverified registrations.
func (r *GormDonorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DonorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDonorRepository implements DonorRepository
var _ identity.DonorRepository = (*GormDonorRepository)(nil)
