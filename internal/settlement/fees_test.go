package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestPrimaryTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		feeRate  string
		want     string
	}{
		{"single ticket default fee", "100.00", 1, "0.05", "105"},
		{"multiple tickets", "50.00", 4, "0.05", "210"},
		{"zero fee", "75.00", 2, "0", "150"},
		{"rounds to cents", "33.33", 3, "0.05", "104.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrimaryTotal(d(tt.price), tt.quantity, d(tt.feeRate))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestPrimaryFee(t *testing.T) {
	fee := PrimaryFee(d("100.00"), 2, d("0.05"))
	assert.True(t, fee.Equal(d("10")), "got %s", fee)
}

func TestReferralCommission(t *testing.T) {
	commission := ReferralCommission(d("210.00"), 10)
	assert.True(t, commission.Equal(d("21")), "got %s", commission)

	zero := ReferralCommission(d("210.00"), 0)
	assert.True(t, zero.IsZero())
}

func TestResaleSplitConservation(t *testing.T) {
	// The three parts must always sum back to the listing price exactly,
	// even when the percentage cuts round.
	prices := []string{"100.00", "99.99", "0.01", "123.45", "1500.00"}
	royalties := []int{0, 7, 10, 33, 95}

	for _, price := range prices {
		for _, royaltyPct := range royalties {
			fee, royalty, seller := ResaleSplit(d(price), royaltyPct)
			sum := fee.Add(royalty).Add(seller)
			assert.True(t, sum.Equal(d(price)),
				"price %s royalty %d%%: %s + %s + %s = %s", price, royaltyPct, fee, royalty, seller, sum)
		}
	}
}

func TestResaleSplitAmounts(t *testing.T) {
	fee, royalty, seller := ResaleSplit(d("200.00"), 10)

	assert.True(t, fee.Equal(d("10")), "platform fee got %s", fee)
	assert.True(t, royalty.Equal(d("20")), "royalty got %s", royalty)
	assert.True(t, seller.Equal(d("170")), "seller got %s", seller)
}

func TestGoldenSettlement(t *testing.T) {
	finalPrice, fee, royalty := GoldenSettlement(d("100.00"), d("2.5"), 15)

	assert.True(t, finalPrice.Equal(d("250")), "final price got %s", finalPrice)
	assert.True(t, fee.Equal(d("25")), "platform fee got %s", fee)
	assert.True(t, royalty.Equal(d("37.5")), "royalty got %s", royalty)
}

func TestWalletLimitOK(t *testing.T) {
	tests := []struct {
		name     string
		held     int
		quantity int
		max      int
		want     bool
	}{
		{"under cap", 1, 2, 4, true},
		{"exactly at cap", 2, 2, 4, true},
		{"over cap", 3, 2, 4, false},
		{"used tickets still count", 4, 1, 4, false},
		{"zero cap means unlimited", 100, 50, 0, true},
		{"negative cap means unlimited", 100, 50, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WalletLimitOK(tt.held, tt.quantity, tt.max))
		})
	}
}
