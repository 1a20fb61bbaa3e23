package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtistBonusRoyaltyPct(t *testing.T) {
	assert.Equal(t, 0, (&ArtistProfile{Tier: ArtistTierRising}).BonusRoyaltyPct())
	assert.Equal(t, 2, (&ArtistProfile{Tier: ArtistTierHeadline}).BonusRoyaltyPct())
	assert.Equal(t, 5, (&ArtistProfile{Tier: ArtistTierLegend}).BonusRoyaltyPct())
	assert.Equal(t, 0, (&ArtistProfile{Tier: "unknown"}).BonusRoyaltyPct())
}

func TestArtistPerksGrowWithTier(t *testing.T) {
	rising := (&ArtistProfile{Tier: ArtistTierRising}).Perks()
	headline := (&ArtistProfile{Tier: ArtistTierHeadline}).Perks()
	legend := (&ArtistProfile{Tier: ArtistTierLegend}).Perks()

	assert.Contains(t, rising, "golden ticket minting")
	assert.Greater(t, len(headline), len(rising))
	assert.Greater(t, len(legend), len(headline))
	assert.Contains(t, legend, "early payout")
}

func TestArtistPerksUnknownTierFallsBack(t *testing.T) {
	assert.Equal(t,
		(&ArtistProfile{Tier: ArtistTierRising}).Perks(),
		(&ArtistProfile{Tier: "mystery"}).Perks(),
	)
}
