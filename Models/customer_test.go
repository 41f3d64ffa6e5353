package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		points int
		tier   string
	}{
		{0, TierBronze},
		{999, TierBronze},
		{1000, TierSilver},
		{4999, TierSilver},
		{5000, TierGold},
		{9999, TierGold},
		{10000, TierPlatinum},
		{250000, TierPlatinum},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.tier, TierFor(tc.points), "points=%d", tc.points)
	}
}

func TestCustomerCreateOpensLoyaltyRecord(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Ravi", "9000000002")

	var loyalty CustomerLoyalty
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&loyalty).Error)
	assert.Equal(t, TierBronze, loyalty.Tier)
	assert.Zero(t, loyalty.AvailablePoints)
	assert.Zero(t, loyalty.LifetimePoints)
}

func TestCustomerContactNumberUnique(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "First", "9000000003")

	err := db.Create(&Customer{Name: "Second", ContactNumber: "9000000003"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestUpdateTier(t *testing.T) {
	loyalty := CustomerLoyalty{LifetimePoints: 5200, Tier: TierBronze}
	loyalty.UpdateTier()
	assert.Equal(t, TierGold, loyalty.Tier)
}
