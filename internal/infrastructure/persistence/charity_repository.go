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

// GormCharityRepository implements CharityRepository using GORM
type GormCharityRepository struct {
	db *gorm.DB
}

// NewGormCharityRepository creates a new GormCharityRepository
func NewGormCharityRepository(db *gorm.DB) *GormCharityRepository {
	return &GormCharityRepository{db: db}
}

// Save creates a new charity with its documents and bank detail
func (r *GormCharityRepository) Save(ctx context.Context, charity *identity.Charity) error {
	model := models.CharityModelFromDomain(charity)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return identity.ErrEmailTaken
		}
		return err
	}
	return nil
}

// Update persists changes to an existing charity including its associations
func (r *GormCharityRepository) Update(ctx context.Context, charity *identity.Charity) error {
	model := models.CharityModelFromDomain(charity)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// FindByID finds a charity by its ID
func (r *GormCharityRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Charity, error) {
	var model models.CharityModel
	if err := r.db.WithContext(ctx).
		Preload("ProofDocuments").
		Preload("BankDetail").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a charity by email, case insensitively
func (r *GormCharityRepository) FindByEmail(ctx context.Context, email string) (*identity.Charity, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.CharityModel
	if err := r.db.WithContext(ctx).
		Preload("ProofDocuments").
		Preload("BankDetail").
		Where("LOWER(email) = LOWER(?)", email).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus lists charities in a review state, newest first
func (r *GormCharityRepository) FindByStatus(ctx context.Context, status identity.CharityStatus, limit, offset int) ([]*identity.Charity, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CharityModel{}).
		Where("status = ? AND deleted = ?", status, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var charityModels []models.CharityModel
	if err := query.
		Preload("ProofDocuments").
		Preload("BankDetail").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&charityModels).Error; err != nil {
		return nil, 0, err
	}

	charities := make([]*identity.Charity, len(charityModels))
	for i := range charityModels {
		charities[i] = charityModels[i].ToDomain()
	}
	return charities, total, nil
}

// Ensure GormCharityRepository implements CharityRepository
var _ identity.CharityRepository = (*GormCharityRepository)(nil)
