package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDonor(t *testing.T) {
	t.Run("creates unverified donor", func(t *testing.T) {
		d, err := NewDonor("jane@example.com", "Passw0rd1", "Jane", "Perera")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", d.Email)
		assert.False(t, d.Verification.Verified)
		assert.True(t, d.VerifyPassword("Passw0rd1"))
		assert.Equal(t, "Jane Perera", d.DisplayName())
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewDonor("not-an-email", "Passw0rd1", "Jane", "")
		require.Error(t, err)
	})

	t.Run("rejects password without number", func(t *testing.T) {
		_, err := NewDonor("jane@example.com", "passwordonly", "Jane", "")
		require.Error(t, err)
	})
}

func TestDonorEligible(t *testing.T) {
	d, err := NewDonor("jane@example.com", "Passw0rd1", "Jane", "")
	require.NoError(t, err)

	assert.ErrorIs(t, d.Eligible(), ErrNotEligible)

	now := time.Now()
	require.NoError(t, d.IssueVerificationCode("123456", now))
	require.NoError(t, d.ConfirmVerification("123456", now.Add(time.Minute)))
	assert.NoError(t, d.Eligible())

	d.MarkDeleted()
	assert.ErrorIs(t, d.Eligible(), ErrNotEligible)
}

func TestAdminEligible(t *testing.T) {
	a, err := NewAdmin("admin@example.com", "Passw0rd1", "Site Admin")
	require.NoError(t, err)
	assert.NoError(t, a.Eligible())

	a.Deactivate()
	assert.ErrorIs(t, a.Eligible(), ErrNotEligible)
}

func TestStaffAccountRoles(t *testing.T) {
	a, err := NewAdmin("admin@example.com", "Passw0rd1", "Site Admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, a.Role())

	m, err := NewMonitor("monitor@example.com", "Passw0rd1", "Auditor")
	require.NoError(t, err)
	assert.Equal(t, RoleMonitor, m.Role())
	assert.NoError(t, m.Eligible())

	// Rows predating the role column behave as full admins
	legacy := &Admin{Email: "old@example.com"}
	assert.Equal(t, RoleAdmin, legacy.Role())
}
