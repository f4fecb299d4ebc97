package campaign

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/daana/backend/internal/domain/campaign"
	"github.com/daana/backend/internal/domain/donation"
	"github.com/daana/backend/internal/domain/shared"
)

const (
	topProgramCount = 5
	trailingMonths  = 6
)

// DashboardService builds the statistics view for a single charity's
// programs
type DashboardService struct {
	campaignRepo campaign.Repository
	donationRepo donation.Repository
	logger       *zap.Logger
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	campaignRepo campaign.Repository,
	donationRepo donation.Repository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Build assembles the charity's full dashboard in one call. Every query
// is scoped to the given charity so one charity never sees another's
// figures.
func (s *DashboardService) Build(ctx context.Context, charityID uuid.UUID) (*DashboardResult, error) {
	result := &DashboardResult{}

	counts, err := s.campaignRepo.CountByStatus(ctx, charityID)
	if err != nil {
		s.logger.Error("Failed to count programs by status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}
	result.Programs = buildStatusBreakdown(counts)

	raised, target, err := s.campaignRepo.SumAmounts(ctx, charityID)
	if err != nil {
		s.logger.Error("Failed to sum program amounts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}
	result.TotalRaised = raised
	result.TotalTarget = target

	donationCount, err := s.donationRepo.Count(ctx, charityID)
	if err != nil {
		s.logger.Error("Failed to count donations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}
	result.TotalDonations = donationCount
	result.AverageDonation = averageDonation(raised, donationCount)

	recent, err := s.campaignRepo.FindRecent(ctx, charityID, topProgramCount)
	if err != nil {
		s.logger.Error("Failed to load recent programs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}
	for _, c := range recent {
		result.RecentPrograms = append(result.RecentPrograms, toListItem(c))
	}

	top, err := s.topPrograms(ctx, charityID)
	if err != nil {
		return nil, err
	}
	result.TopPrograms = top

	monthly, err := s.monthlySeries(ctx, charityID)
	if err != nil {
		return nil, err
	}
	result.Monthly = monthly

	return result, nil
}

// buildStatusBreakdown folds the per-status tallies into fixed buckets.
// Rejected programs carry the inactive status, so they land in Inactive.
func buildStatusBreakdown(counts []campaign.StatusCount) StatusBreakdown {
	var b StatusBreakdown
	for _, sc := range counts {
		switch sc.Status {
		case campaign.StatusDraft:
			b.Draft += sc.Count
		case campaign.StatusPending:
			b.Pending += sc.Count
		case campaign.StatusActive:
			b.Active += sc.Count
		case campaign.StatusInactive:
			b.Inactive += sc.Count
		case campaign.StatusArchived:
			b.Archived += sc.Count
		}
		b.Total += sc.Count
	}
	return b
}

// averageDonation divides total raised by donation count, zero when no
// donations exist
func averageDonation(raised decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return raised.Div(decimal.NewFromInt(count)).Round(2)
}

// topPrograms ranks the charity's active programs by completion percentage
// and annotates the leaders with their donation counts
func (s *DashboardService) topPrograms(ctx context.Context, charityID uuid.UUID) ([]TopProgram, error) {
	campaigns, err := s.campaignRepo.FindAllActive(ctx, charityID)
	if err != nil {
		s.logger.Error("Failed to load active programs", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}

	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].CompletionPercent().GreaterThan(campaigns[j].CompletionPercent())
	})
	if len(campaigns) > topProgramCount {
		campaigns = campaigns[:topProgramCount]
	}

	ids := make([]uuid.UUID, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.ID)
	}
	donationCounts, err := s.donationRepo.CountByCampaigns(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to count donations per program", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
	}

	top := make([]TopProgram, 0, len(campaigns))
	for _, c := range campaigns {
		top = append(top, TopProgram{
			ID:                c.ID,
			Title:             c.Title,
			Slug:              c.Slug,
			TargetAmount:      c.TargetAmount,
			RaisedAmount:      c.RaisedAmount,
			CompletionPercent: c.CompletionPercent(),
			DonationCount:     donationCounts[c.ID],
		})
	}
	return top, nil
}

// monthlySeries builds the trailing six month activity series, oldest month
// first. Each bucket covers [first of month, first of next month).
func (s *DashboardService) monthlySeries(ctx context.Context, charityID uuid.UUID) ([]MonthlyPoint, error) {
	now := s.now()
	series := make([]MonthlyPoint, 0, trailingMonths)

	for i := trailingMonths - 1; i >= 0; i-- {
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)

		created, err := s.campaignRepo.CountCreatedBetween(ctx, charityID, from, to)
		if err != nil {
			s.logger.Error("Failed to count programs for month", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
		}
		amount, err := s.donationRepo.SumNetBetween(ctx, charityID, from, to)
		if err != nil {
			s.logger.Error("Failed to sum donations for month", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
		}
		received, err := s.donationRepo.CountBetween(ctx, charityID, from, to)
		if err != nil {
			s.logger.Error("Failed to count donations for month", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard")
		}

		series = append(series, MonthlyPoint{
			Month:             from.Format("2006-01"),
			ProgramsCreated:   created,
			AmountRaised:      amount,
			DonationsReceived: received,
		})
	}
	return series, nil
}
