package settlement

import "github.com/shopspring/decimal"

// Fixed platform cut per flow. The primary-sale rate is configurable on the
// engine; resale and golden cuts are fixed by the marketplace terms.
const (
	ResaleFeePct = 5
	GoldenFeePct = 10
)

func pctOf(amount decimal.Decimal, pct int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(2)
}

// PrimaryTotal is what the buyer pays on a primary sale:
// price * quantity * (1 + feeRate).
func PrimaryTotal(price decimal.Decimal, quantity int, feeRate decimal.Decimal) decimal.Decimal {
	gross := price.Mul(decimal.NewFromInt(int64(quantity)))
	return gross.Add(gross.Mul(feeRate)).Round(2)
}

// PrimaryFee is the platform's share of a primary-sale total.
func PrimaryFee(price decimal.Decimal, quantity int, feeRate decimal.Decimal) decimal.Decimal {
	gross := price.Mul(decimal.NewFromInt(int64(quantity)))
	return gross.Mul(feeRate).Round(2)
}

// ReferralCommission is totalAmount * commissionRate / 100.
func ReferralCommission(totalAmount decimal.Decimal, ratePct int) decimal.Decimal {
	return pctOf(totalAmount, ratePct)
}

// ResaleSplit divides a resale price into the platform fee, the royalty
// owed under the event's split, and the seller remainder. The seller amount
// is computed as the exact remainder so the three parts always sum back to
// the price.
func ResaleSplit(price decimal.Decimal, royaltyPct int) (platformFee, royaltyAmount, sellerAmount decimal.Decimal) {
	platformFee = pctOf(price, ResaleFeePct)
	royaltyAmount = pctOf(price, royaltyPct)
	sellerAmount = price.Sub(platformFee).Sub(royaltyAmount)
	return
}

// GoldenSettlement computes the collectible purchase amounts:
// finalPrice = basePrice * multiplier, a 10% platform fee, and the royalty
// at the artist's total (base + bonus) percentage.
func GoldenSettlement(basePrice, multiplier decimal.Decimal, totalRoyaltyPct int) (finalPrice, platformFee, royaltyAmount decimal.Decimal) {
	finalPrice = basePrice.Mul(multiplier).Round(2)
	platformFee = pctOf(finalPrice, GoldenFeePct)
	royaltyAmount = pctOf(finalPrice, totalRoyaltyPct)
	return
}

// WalletLimitOK reports whether a buyer already holding `held` units
// (ACTIVE plus USED) may buy `quantity` more under the per-wallet cap.
// A cap of zero or less means unlimited.
func WalletLimitOK(held, quantity, maxPerWallet int) bool {
	if maxPerWallet <= 0 {
		return true
	}
	return held+quantity <= maxPerWallet
}
