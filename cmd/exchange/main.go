package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stock-exchange-go/internal/config"
	"stock-exchange-go/internal/exchange"
	"stock-exchange-go/internal/logger"
	"stock-exchange-go/internal/simulator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Build the exchange and register the configured listings
	ex := exchange.New(log.Named("exchange"))
	if err := registerListings(ex, cfg.Exchange.Listings); err != nil {
		log.Fatal("Failed to register listings", zap.Error(err))
	}
	log.Info("Listings registered", zap.Int("count", len(cfg.Exchange.Listings)))

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Run the trade simulator
	sim := simulator.New(ex, simulator.Config{
		Rate:        cfg.Simulator.Rate,
		Burst:       cfg.Simulator.Burst,
		Volatility:  cfg.Simulator.Volatility,
		MaxQuantity: cfg.Simulator.MaxQuantity,
	}, log.Named("simulator"))
	go func() {
		if err := sim.Run(ctx); err != nil {
			log.Error("Simulator stopped with error", zap.Error(err))
			cancel()
		}
	}()

	// Report prices and the index until shutdown
	window := time.Duration(cfg.Exchange.WindowMinutes) * time.Minute
	interval := time.Duration(cfg.Simulator.ReportIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Starting report loop", zap.Duration("interval", interval), zap.Duration("window", window))
	for {
		select {
		case <-ctx.Done():
			log.Info("Exchange has been shut down.")
			return
		case <-ticker.C:
			report(log, ex, window)
		}
	}
}

// registerListings builds and registers the configured stocks.
func registerListings(ex *exchange.Exchange, listings []config.Listing) error {
	for _, l := range listings {
		var (
			stock exchange.Stock
			err   error
		)
		switch strings.ToLower(l.Type) {
		case "common":
			stock, err = exchange.NewCommonStock(l.Symbol,
				decimal.NewFromFloat(l.LastDividend), decimal.NewFromFloat(l.ParValue))
		case "preferred":
			stock, err = exchange.NewPreferredStock(l.Symbol,
				decimal.NewFromFloat(l.LastDividend), decimal.NewFromFloat(l.FixedDividend),
				decimal.NewFromFloat(l.ParValue))
		default:
			return fmt.Errorf("listing %s: unknown stock type %q", l.Symbol, l.Type)
		}
		if err != nil {
			return err
		}
		if err := ex.Register(stock); err != nil {
			return err
		}
	}
	return nil
}

// report logs each listing's volume-weighted price and the index.
func report(log *zap.Logger, ex *exchange.Exchange, window time.Duration) {
	for _, stock := range ex.Stocks() {
		price, err := ex.VolumeWeightedPrice(stock.Symbol(), window)
		if err != nil {
			log.Warn("No volume-weighted price", zap.String("symbol", stock.Symbol()), zap.Error(err))
			continue
		}
		log.Info("Volume-weighted price",
			zap.String("symbol", stock.Symbol()),
			zap.String("price", price.StringFixed(2)),
		)
	}

	index, err := ex.AllShareIndex(window)
	if err != nil {
		log.Warn("No all-share index yet", zap.Error(err))
		return
	}
	log.Info("All-share index",
		zap.String("index", index.StringFixed(2)),
		zap.Int("trades", ex.TradeCount()),
	)
}
