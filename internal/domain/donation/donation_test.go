package donation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmounts(t *testing.T) {
	cases := []struct {
		name       string
		actual     string
		wantCharge string
		wantNet    string
	}{
		{"hundred dollar donation", "100", "2.5", "97.5"},
		{"fifty dollar donation", "50", "1.25", "48.75"},
		{"rounding half up", "10.01", "0.250250", "9.76"},
		{"small amount", "1", "0.025", "0.98"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			charge, net := ComputeAmounts(decimal.RequireFromString(tc.actual))
			assert.True(t, charge.Equal(decimal.RequireFromString(tc.wantCharge)),
				"charge: got %s want %s", charge, tc.wantCharge)
			assert.True(t, net.Equal(decimal.RequireFromString(tc.wantNet)),
				"net: got %s want %s", net, tc.wantNet)
		})
	}
}

func TestNewDonation(t *testing.T) {
	campaignID := uuid.New()

	t.Run("anonymous when no donor attached", func(t *testing.T) {
		d, err := NewDonation(campaignID, nil, decimal.NewFromInt(100), "DON-1A2B3C4D", "")
		require.NoError(t, err)
		assert.True(t, d.IsAnonymous)
		assert.Equal(t, StatusPending, d.Status)
		assert.True(t, d.NetAmount.Equal(decimal.RequireFromString("97.5")))
	})

	t.Run("attributed when donor attached", func(t *testing.T) {
		donorID := uuid.New()
		d, err := NewDonation(campaignID, &donorID, decimal.NewFromInt(25), "DON-9Z8Y7X6W", "bank-payment-slip/slip.jpg")
		require.NoError(t, err)
		assert.False(t, d.IsAnonymous)
		assert.Equal(t, donorID, *d.DonorID)
	})

	t.Run("rejects non positive amounts", func(t *testing.T) {
		_, err := NewDonation(campaignID, nil, decimal.Zero, "DON-1A2B3C4D", "")
		require.Error(t, err)
		_, err = NewDonation(campaignID, nil, decimal.NewFromInt(-10), "DON-1A2B3C4D", "")
		require.Error(t, err)
	})

	t.Run("rejects malformed reference", func(t *testing.T) {
		_, err := NewDonation(campaignID, nil, decimal.NewFromInt(10), "DON-abc", "")
		require.Error(t, err)
	})
}

func TestDonationReview(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		d, err := NewDonation(uuid.New(), nil, decimal.NewFromInt(10), "DON-AAAA1111", "")
		require.NoError(t, err)
		require.NoError(t, d.Approve())
		assert.Equal(t, StatusActive, d.Status)
		assert.ErrorIs(t, d.Approve(), ErrDonationNotPending)
	})

	t.Run("reject pending keeps amounts", func(t *testing.T) {
		d, err := NewDonation(uuid.New(), nil, decimal.NewFromInt(10), "DON-BBBB2222", "")
		require.NoError(t, err)
		require.NoError(t, d.Reject())
		assert.Equal(t, StatusRejected, d.Status)
		assert.True(t, d.NetAmount.Equal(decimal.RequireFromString("9.75")))
	})
}
