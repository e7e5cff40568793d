package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"stock-exchange-go/internal/exchange"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds the tuning knobs for the trade flow simulator.
type Config struct {
	// Rate is the number of trades generated per second.
	Rate  float64
	Burst int
	// Volatility is the relative size of a random-walk price step,
	// e.g. 0.01 for 1%.
	Volatility float64
	// MaxQuantity bounds the quantity of a generated trade.
	MaxQuantity int64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Rate:        5,
		Burst:       1,
		Volatility:  0.01,
		MaxQuantity: 1000,
	}
}

// Simulator generates a random-walk trade flow against an exchange.
// Each listed stock's price starts at its par value and drifts by a
// normal-distributed step per trade.
type Simulator struct {
	exchange *exchange.Exchange
	logger   *zap.Logger
	limiter  *rate.Limiter
	cfg      Config
	rng      *rand.Rand

	lastPrice map[string]float64
}

// New creates a simulator for the given exchange.
func New(ex *exchange.Exchange, cfg Config, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = DefaultConfig().MaxQuantity
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Simulator{
		exchange:  ex,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		lastPrice: make(map[string]float64),
	}
}

// Run generates trades until the context is cancelled. Emission is paced
// by the configured rate limiter.
func (s *Simulator) Run(ctx context.Context) error {
	s.logger.Info("Starting trade simulator",
		zap.Float64("rate", s.cfg.Rate),
		zap.Float64("volatility", s.cfg.Volatility),
	)

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.logger.Info("Stopping trade simulator")
				return nil
			}
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		if err := s.emitTrade(); err != nil {
			s.logger.Warn("Failed to record generated trade", zap.Error(err))
		}
	}
}

// emitTrade records one random trade against a randomly picked stock.
func (s *Simulator) emitTrade() error {
	stocks := s.exchange.Stocks()
	if len(stocks) == 0 {
		return fmt.Errorf("no stocks listed: %w", exchange.ErrNoTrades)
	}
	stock := stocks[s.rng.Intn(len(stocks))]

	price := s.nextPrice(stock)
	quantity := 1 + s.rng.Int63n(s.cfg.MaxQuantity)
	side := exchange.Buy
	if s.rng.Intn(2) == 1 {
		side = exchange.Sell
	}

	_, err := s.exchange.RecordTrade(stock.Symbol(), time.Now(), quantity, side, decimal.NewFromFloat(price).Round(2))
	return err
}

// nextPrice walks the stock's price by a normal-distributed step.
func (s *Simulator) nextPrice(stock exchange.Stock) float64 {
	last, ok := s.lastPrice[stock.Symbol()]
	if !ok {
		last = stock.ParValue().InexactFloat64()
		if last <= 0 {
			last = 100
		}
	}

	next := last + s.rng.NormFloat64()*s.cfg.Volatility*last
	if next <= 0 {
		next = last * 0.99
	}
	s.lastPrice[stock.Symbol()] = next
	return next
}
