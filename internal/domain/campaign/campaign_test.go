package campaign

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCampaign(t *testing.T) *Campaign {
	t.Helper()
	c, err := NewCampaign(uuid.New(), "Clean Water for Jaffna", "Wells for ten villages", "water",
		decimal.NewFromInt(5000), nil)
	require.NoError(t, err)
	return c
}

func TestNewCampaign(t *testing.T) {
	t.Run("starts as draft with derived slug", func(t *testing.T) {
		c := newTestCampaign(t)
		assert.Equal(t, StatusDraft, c.Status)
		assert.Equal(t, "clean-water-for-jaffna", c.Slug)
		assert.True(t, c.RaisedAmount.IsZero())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewCampaign(uuid.New(), "  ", "", "", decimal.NewFromInt(100), nil)
		require.Error(t, err)
	})

	t.Run("rejects negative target", func(t *testing.T) {
		_, err := NewCampaign(uuid.New(), "Appeal", "", "", decimal.NewFromInt(-1), nil)
		require.Error(t, err)
	})
}

func TestCampaignReviewCycle(t *testing.T) {
	c := newTestCampaign(t)
	c.SubmitForReview()
	assert.Equal(t, StatusPending, c.Status)

	c.Approve()
	assert.Equal(t, StatusActive, c.Status)
	assert.NoError(t, c.AcceptsDonations())

	// any edit goes back through review
	require.NoError(t, c.Update("Clean Water for Jaffna", "expanded scope", "water", decimal.NewFromInt(8000), nil))
	assert.Equal(t, StatusPending, c.Status)
	assert.ErrorIs(t, c.AcceptsDonations(), ErrCampaignNotActive)

	c.Reject()
	assert.Equal(t, StatusInactive, c.Status)
}

func TestCampaignAcceptsDonations(t *testing.T) {
	c := newTestCampaign(t)
	c.Approve()
	c.MarkDeleted()
	assert.ErrorIs(t, c.AcceptsDonations(), ErrCampaignDeleted)
}

func TestCampaignRaisedAmount(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, c.AddToRaised(decimal.RequireFromString("97.50")))
	require.NoError(t, c.AddToRaised(decimal.RequireFromString("48.75")))
	assert.True(t, c.RaisedAmount.Equal(decimal.RequireFromString("146.25")))

	assert.Error(t, c.AddToRaised(decimal.NewFromInt(-5)))
}

func TestCampaignCompletionPercent(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, c.AddToRaised(decimal.NewFromInt(1250)))
	assert.True(t, c.CompletionPercent().Equal(decimal.NewFromInt(25)))

	zero, err := NewCampaign(uuid.New(), "Open Appeal", "", "", decimal.Zero, nil)
	require.NoError(t, err)
	assert.True(t, zero.CompletionPercent().IsZero())
}
