package exchange

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultWindow is the trailing window used for price statistics when the
// caller does not specify one.
const DefaultWindow = 15 * time.Minute

// Exchange lists stocks and records trades against them. The trade log is
// append-only; nothing is ever deleted. Safe for concurrent use: writes
// take the write lock, computations read a consistent snapshot under the
// read lock.
type Exchange struct {
	mu     sync.RWMutex
	stocks map[string]Stock
	trades []Trade

	logger *zap.Logger
	now    func() time.Time
}

// New creates an empty exchange. A nil logger disables logging.
func New(logger *zap.Logger) *Exchange {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exchange{
		stocks: make(map[string]Stock),
		logger: logger,
		now:    time.Now,
	}
}

// Register lists a stock on the exchange. Fails with ErrDuplicateSymbol
// if the symbol is already listed.
func (e *Exchange) Register(stock Stock) error {
	if stock == nil {
		return fmt.Errorf("cannot register nil stock: %w", ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	symbol := stock.Symbol()
	if _, ok := e.stocks[symbol]; ok {
		return fmt.Errorf("register %s: %w", symbol, ErrDuplicateSymbol)
	}
	e.stocks[symbol] = stock

	e.logger.Info("Registered stock", zap.String("symbol", symbol))
	return nil
}

// Stock returns the listed stock for a symbol. Fails with
// ErrUnknownSymbol if the symbol is not listed.
func (e *Exchange) Stock(symbol string) (Stock, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stock, ok := e.stocks[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("stock %s: %w", strings.ToUpper(symbol), ErrUnknownSymbol)
	}
	return stock, nil
}

// Stocks returns all listed stocks, ordered by symbol.
func (e *Exchange) Stocks() []Stock {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stocks := make([]Stock, 0, len(e.stocks))
	for _, s := range e.stocks {
		stocks = append(stocks, s)
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Symbol() < stocks[j].Symbol() })
	return stocks
}

// TradeCount returns the number of trades recorded so far.
func (e *Exchange) TradeCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.trades)
}

// RecordTrade validates and appends a trade for a listed stock. Fails
// with ErrUnknownSymbol if the symbol is not listed, or ErrInvalidInput
// for bad trade fields.
func (e *Exchange) RecordTrade(symbol string, timestamp time.Time, quantity int64, side Side, price decimal.Decimal) (Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stock, ok := e.stocks[strings.ToUpper(symbol)]
	if !ok {
		return Trade{}, fmt.Errorf("record trade for %s: %w", strings.ToUpper(symbol), ErrUnknownSymbol)
	}

	trade, err := NewTrade(stock, timestamp, quantity, side, price)
	if err != nil {
		return Trade{}, err
	}
	e.trades = append(e.trades, trade)

	e.logger.Debug("Recorded trade",
		zap.String("symbol", stock.Symbol()),
		zap.String("side", string(side)),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()),
		zap.Time("timestamp", timestamp),
	)
	return trade, nil
}

// VolumeWeightedPrice calculates the volume-weighted price of a stock
// over the trailing window ending now. A non-positive window means
// DefaultWindow. Fails with ErrNoTrades when the window holds no trades
// for the symbol.
func (e *Exchange) VolumeWeightedPrice(symbol string, window time.Duration) (decimal.Decimal, error) {
	if window <= 0 {
		window = DefaultWindow
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	symbol = strings.ToUpper(symbol)
	if _, ok := e.stocks[symbol]; !ok {
		return decimal.Zero, fmt.Errorf("volume-weighted price for %s: %w", symbol, ErrUnknownSymbol)
	}

	cutoff := e.now().Add(-window)
	trades := e.tradesForSymbol(symbol, cutoff)
	if len(trades) == 0 {
		return decimal.Zero, fmt.Errorf("volume-weighted price for %s: no trades in the last %s: %w", symbol, window, ErrNoTrades)
	}
	return VolumeWeightedPrice(trades)
}

// AllShareIndex calculates the geometric mean of the volume-weighted
// prices of all listed stocks that have ever traded. Stocks without
// trades inside the window contribute their full-history price, so a
// stock never drops out of the index once traded. Fails with ErrNoTrades
// when no stock has any trade.
func (e *Exchange) AllShareIndex(window time.Duration) (decimal.Decimal, error) {
	if window <= 0 {
		window = DefaultWindow
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	cutoff := e.now().Add(-window)

	var sumLog float64
	var n int
	for symbol := range e.stocks {
		trades := e.tradesForSymbol(symbol, cutoff)
		if len(trades) == 0 {
			// Fall back to the stock's full history.
			trades = e.tradesForSymbol(symbol, time.Time{})
		}
		if len(trades) == 0 {
			continue
		}
		price, err := VolumeWeightedPrice(trades)
		if err != nil {
			return decimal.Zero, err
		}
		sumLog += math.Log(price.InexactFloat64())
		n++
	}
	if n == 0 {
		return decimal.Zero, fmt.Errorf("all-share index: %w", ErrNoTrades)
	}

	// Geometric mean in log space; exact decimal n-th roots are not
	// available and the product overflows with many stocks.
	return decimal.NewFromFloat(math.Exp(sumLog / float64(n))), nil
}

// tradesForSymbol returns the trades for a symbol at or after the cutoff.
// A zero cutoff selects the full history. Callers must hold e.mu.
func (e *Exchange) tradesForSymbol(symbol string, cutoff time.Time) []Trade {
	var trades []Trade
	for _, t := range e.trades {
		if t.Stock.Symbol() != symbol {
			continue
		}
		if !cutoff.IsZero() && t.Timestamp.Before(cutoff) {
			continue
		}
		trades = append(trades, t)
	}
	return trades
}
