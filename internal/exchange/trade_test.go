package exchange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrade(t *testing.T) {
	stock, err := NewCommonStock("TEA", d(0), d(100))
	require.NoError(t, err)
	now := time.Now()

	trade, err := NewTrade(stock, now, 20, Buy, d(100))

	require.NoError(t, err)
	assert.Equal(t, stock, trade.Stock)
	assert.Equal(t, now, trade.Timestamp)
	assert.Equal(t, int64(20), trade.Quantity)
	assert.Equal(t, Buy, trade.Side)
	assert.True(t, trade.Price.Equal(d(100)))
}

func TestNewTrade_Invalid(t *testing.T) {
	stock, err := NewCommonStock("TEA", d(0), d(100))
	require.NoError(t, err)
	now := time.Now()

	_, err = NewTrade(nil, now, 20, Buy, d(100))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTrade(stock, now, 0, Buy, d(100))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTrade(stock, now, -5, Sell, d(100))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTrade(stock, now, 20, Buy, d(0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTrade(stock, now, 20, Side("HOLD"), d(100))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVolumeWeightedPrice(t *testing.T) {
	stock, err := NewCommonStock("TEA", d(0), d(100))
	require.NoError(t, err)
	now := time.Now()

	first, err := NewTrade(stock, now, 20, Buy, d(100))
	require.NoError(t, err)
	second, err := NewTrade(stock, now, 40, Buy, d(120))
	require.NoError(t, err)

	price, err := VolumeWeightedPrice([]Trade{first, second})

	require.NoError(t, err)
	// (100*20 + 120*40) / 60
	assert.InDelta(t, 113.3333333, price.InexactFloat64(), 1e-6)
}

func TestVolumeWeightedPrice_Empty(t *testing.T) {
	_, err := VolumeWeightedPrice(nil)

	assert.ErrorIs(t, err, ErrNoTrades)
}
