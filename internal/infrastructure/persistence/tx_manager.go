package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/donation"
)

// TxManager runs donation and campaign repository operations inside one
// database transaction. The donation engine uses it to persist a donation
// and adjust the campaign raised amount atomically.
type TxManager struct {
	db *Database
}

// NewTxManager creates a transaction manager over the shared database
func NewTxManager(db *Database) *TxManager {
	return &TxManager{db: db}
}

// InTx executes fn with transactional repository views. A returned error
// rolls the whole transaction back.
func (m *TxManager) InTx(ctx context.Context, fn func(donations donation.Repository, campaigns campaign.Repository) error) error {
	return m.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormDonationRepository(tx), NewGormCampaignRepository(tx))
	})
}
