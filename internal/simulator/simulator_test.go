package simulator

import (
	"context"
	"testing"
	"time"

	"stock-exchange-go/internal/exchange"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExchange(t *testing.T, symbols ...string) *exchange.Exchange {
	t.Helper()
	ex := exchange.New(zap.NewNop())
	for _, symbol := range symbols {
		stock, err := exchange.NewCommonStock(symbol, decimal.NewFromInt(8), decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, ex.Register(stock))
	}
	return ex
}

func TestEmitTrade(t *testing.T) {
	ex := newTestExchange(t, "TEA", "POP")
	sim := New(ex, DefaultConfig(), zap.NewNop())

	for i := 0; i < 50; i++ {
		require.NoError(t, sim.emitTrade())
	}

	assert.Equal(t, 50, ex.TradeCount())
}

func TestEmitTrade_NoStocks(t *testing.T) {
	ex := newTestExchange(t)
	sim := New(ex, DefaultConfig(), zap.NewNop())

	err := sim.emitTrade()

	assert.Error(t, err)
	assert.Equal(t, 0, ex.TradeCount())
}

func TestNextPrice_StaysPositive(t *testing.T) {
	ex := newTestExchange(t, "TEA")
	cfg := DefaultConfig()
	cfg.Volatility = 0.5 // large steps to shake the walk hard
	sim := New(ex, cfg, zap.NewNop())
	stock := ex.Stocks()[0]

	for i := 0; i < 1000; i++ {
		assert.Greater(t, sim.nextPrice(stock), 0.0)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ex := newTestExchange(t, "TEA")
	cfg := DefaultConfig()
	cfg.Rate = 1000
	sim := New(ex, cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := sim.Run(ctx)

	require.NoError(t, err)
	assert.Greater(t, ex.TradeCount(), 0)
}
