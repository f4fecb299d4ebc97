package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository persists donation aggregates
type Repository interface {
	Save(ctx context.Context, d *Donation) error
	Update(ctx context.Context, d *Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	FindByReference(ctx context.Context, reference string) (*Donation, error)
	FindByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*Donation, int64, error)
	FindByDonor(ctx context.Context, donorID uuid.UUID, limit, offset int) ([]*Donation, int64, error)

	// CountByCampaign reports how many donations are attached regardless of
	// status, used for the soft-delete guard and dashboard annotations.
	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
	CountByCampaigns(ctx context.Context, campaignIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// Dashboard aggregation. Donations carry no charity id, so these
	// queries scope through the owning campaign.
	Count(ctx context.Context, charityID uuid.UUID) (int64, error)
	SumNetBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	CountBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (int64, error)
}
