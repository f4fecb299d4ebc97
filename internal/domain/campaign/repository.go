package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusCount is a per-status campaign tally
type StatusCount struct {
	Status Status
	Count  int64
}

// Repository persists campaign aggregates
type Repository interface {
	Save(ctx context.Context, c *Campaign) error
	Update(ctx context.Context, c *Campaign) error
	// SaveWithLock updates using the aggregate version for optimistic locking
	SaveWithLock(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	FindBySlug(ctx context.Context, slug string) (*Campaign, error)
	FindByCharity(ctx context.Context, charityID uuid.UUID, limit, offset int) ([]*Campaign, int64, error)
	FindByStatus(ctx context.Context, status Status, limit, offset int) ([]*Campaign, int64, error)

	// AddToRaisedAmount applies a single atomic increment so concurrent
	// donations never lose updates. The delta may be negative for
	// compensating reversals.
	AddToRaisedAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// Dashboard aggregation, scoped to a single charity's campaigns
	CountByStatus(ctx context.Context, charityID uuid.UUID) ([]StatusCount, error)
	SumAmounts(ctx context.Context, charityID uuid.UUID) (raised, target decimal.Decimal, err error)
	FindRecent(ctx context.Context, charityID uuid.UUID, limit int) ([]*Campaign, error)
	FindAllActive(ctx context.Context, charityID uuid.UUID) ([]*Campaign, error)
	CountCreatedBetween(ctx context.Context, charityID uuid.UUID, from, to time.Time) (int64, error)
}
