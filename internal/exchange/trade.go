package exchange

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Trade is an immutable record of a single buy or sell of a stock.
type Trade struct {
	Stock     Stock
	Timestamp time.Time
	Quantity  int64
	Side      Side
	Price     decimal.Decimal
}

// NewTrade creates a validated trade. Quantity and price must be strictly
// positive and the side must be Buy or Sell; anything else fails with
// ErrInvalidInput.
func NewTrade(stock Stock, timestamp time.Time, quantity int64, side Side, price decimal.Decimal) (Trade, error) {
	if stock == nil {
		return Trade{}, fmt.Errorf("trade has no stock: %w", ErrInvalidInput)
	}
	if quantity <= 0 {
		return Trade{}, fmt.Errorf("trade quantity %d is not positive: %w", quantity, ErrInvalidInput)
	}
	if !price.IsPositive() {
		return Trade{}, fmt.Errorf("trade price %s is not positive: %w", price, ErrInvalidInput)
	}
	if side != Buy && side != Sell {
		return Trade{}, fmt.Errorf("trade side %q is not %s or %s: %w", side, Buy, Sell, ErrInvalidInput)
	}
	return Trade{
		Stock:     stock,
		Timestamp: timestamp,
		Quantity:  quantity,
		Side:      side,
		Price:     price,
	}, nil
}

// VolumeWeightedPrice calculates Σ(price×quantity)/Σ(quantity) over a
// sequence of trades. Fails with ErrNoTrades on an empty sequence.
func VolumeWeightedPrice(trades []Trade) (decimal.Decimal, error) {
	if len(trades) == 0 {
		return decimal.Zero, ErrNoTrades
	}
	var turnover, volume decimal.Decimal
	for _, t := range trades {
		qty := decimal.NewFromInt(t.Quantity)
		turnover = turnover.Add(t.Price.Mul(qty))
		volume = volume.Add(qty)
	}
	return turnover.Div(volume), nil
}
