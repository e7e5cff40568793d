package exchange

import "errors"

// Error kinds surfaced by the exchange. All of them are returned to the
// caller synchronously; nothing is retried or recovered internally.
var (
	// ErrInvalidInput is returned for out-of-range constructor or
	// argument values (non-positive prices, quantities, bad sides).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateSymbol is returned when registering a symbol that is
	// already listed.
	ErrDuplicateSymbol = errors.New("symbol already registered")

	// ErrUnknownSymbol is returned when a symbol is not listed on the
	// exchange.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrNoTrades is returned when a computation has no trade history to
	// work with.
	ErrNoTrades = errors.New("no trades recorded")

	// ErrZeroDividend is returned by the P/E ratio when the stock's
	// dividend is zero.
	ErrZeroDividend = errors.New("dividend is zero")
)
