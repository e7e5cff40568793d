package exchange

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stock is a security listed on the exchange. Implemented by CommonStock
// and PreferredStock, which differ only in their dividend formula.
type Stock interface {
	// Symbol returns the stock's ticker symbol, e.g. "TEA".
	Symbol() string

	// ParValue returns the stock's par value, in pence.
	ParValue() decimal.Decimal

	// LastDividend returns the last dividend paid, in pence.
	LastDividend() decimal.Decimal

	// DividendYield calculates the dividend yield for a given market
	// price. Fails with ErrInvalidInput if the price is not positive.
	DividendYield(price decimal.Decimal) (decimal.Decimal, error)

	// PERatio calculates the P/E ratio for a given market price.
	// Fails with ErrZeroDividend if the stock's dividend is zero.
	PERatio(price decimal.Decimal) (decimal.Decimal, error)
}

// stockBase holds the fields shared by both stock variants.
type stockBase struct {
	symbol       string
	lastDividend decimal.Decimal
	parValue     decimal.Decimal
}

func newStockBase(symbol string, lastDividend, parValue decimal.Decimal) (stockBase, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return stockBase{}, fmt.Errorf("stock symbol is empty: %w", ErrInvalidInput)
	}
	if lastDividend.IsNegative() {
		return stockBase{}, fmt.Errorf("stock %s: last dividend %s is negative: %w", symbol, lastDividend, ErrInvalidInput)
	}
	if parValue.IsNegative() {
		return stockBase{}, fmt.Errorf("stock %s: par value %s is negative: %w", symbol, parValue, ErrInvalidInput)
	}
	return stockBase{symbol: symbol, lastDividend: lastDividend, parValue: parValue}, nil
}

func (s stockBase) Symbol() string                { return s.symbol }
func (s stockBase) ParValue() decimal.Decimal     { return s.parValue }
func (s stockBase) LastDividend() decimal.Decimal { return s.lastDividend }

// peRatio is the shared P/E calculation: market price over the variant's
// own dividend.
func peRatio(symbol string, price, dividend decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("stock %s: market price %s is not positive: %w", symbol, price, ErrInvalidInput)
	}
	if dividend.IsZero() {
		return decimal.Zero, fmt.Errorf("stock %s: cannot compute P/E ratio: %w", symbol, ErrZeroDividend)
	}
	return price.Div(dividend), nil
}

// CommonStock is a common stock. Its dividend yield is based on the last
// dividend paid.
type CommonStock struct {
	stockBase
}

// NewCommonStock creates a common stock. The symbol is normalized to
// upper case; dividends and par value must be non-negative.
func NewCommonStock(symbol string, lastDividend, parValue decimal.Decimal) (*CommonStock, error) {
	base, err := newStockBase(symbol, lastDividend, parValue)
	if err != nil {
		return nil, err
	}
	return &CommonStock{stockBase: base}, nil
}

func (s *CommonStock) DividendYield(price decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("stock %s: market price %s is not positive: %w", s.symbol, price, ErrInvalidInput)
	}
	return s.lastDividend.Div(price), nil
}

func (s *CommonStock) PERatio(price decimal.Decimal) (decimal.Decimal, error) {
	return peRatio(s.symbol, price, s.lastDividend)
}

// PreferredStock is a preferred stock. Its dividend yield is based on a
// fixed percentage of the par value.
type PreferredStock struct {
	stockBase
	fixedDividend decimal.Decimal
}

// NewPreferredStock creates a preferred stock. fixedDividend is a
// fraction in [0, 1], e.g. 0.02 for a 2% fixed dividend.
func NewPreferredStock(symbol string, lastDividend, fixedDividend, parValue decimal.Decimal) (*PreferredStock, error) {
	base, err := newStockBase(symbol, lastDividend, parValue)
	if err != nil {
		return nil, err
	}
	if fixedDividend.IsNegative() || fixedDividend.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("stock %s: fixed dividend %s is outside [0, 1]: %w", base.symbol, fixedDividend, ErrInvalidInput)
	}
	return &PreferredStock{stockBase: base, fixedDividend: fixedDividend}, nil
}

// FixedDividend returns the fixed dividend fraction.
func (s *PreferredStock) FixedDividend() decimal.Decimal { return s.fixedDividend }

func (s *PreferredStock) DividendYield(price decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("stock %s: market price %s is not positive: %w", s.symbol, price, ErrInvalidInput)
	}
	return s.fixedDividend.Mul(s.parValue).Div(price), nil
}

func (s *PreferredStock) PERatio(price decimal.Decimal) (decimal.Decimal, error) {
	return peRatio(s.symbol, price, s.fixedDividend.Mul(s.parValue))
}

// ensure both variants implement the interface
var (
	_ Stock = (*CommonStock)(nil)
	_ Stock = (*PreferredStock)(nil)
)
