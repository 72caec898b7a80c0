package pricing

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrUnknownSymbol is returned when an oracle cannot price a symbol.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Oracle provides the current per-share price for a symbol.
// Lookups are synchronous and side-effect free; symbols are
// case-insensitive. Implementations wrap ErrUnknownSymbol for
// symbols they cannot price.
type Oracle interface {
	Price(symbol string) (decimal.Decimal, error)
}

// Static is an Oracle backed by a fixed symbol -> price table.
// Prices can be replaced between ledger operations to simulate
// market movement.
type Static struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewStatic builds a Static oracle from a price table. Symbols are
// upper-cased; non-positive prices are rejected.
func NewStatic(prices map[string]decimal.Decimal) (*Static, error) {
	s := &Static{prices: make(map[string]decimal.Decimal, len(prices))}
	for sym, p := range prices {
		if err := s.Set(sym, p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Set replaces the price for a symbol, adding it if absent.
func (s *Static) Set(symbol string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("price for %q must be positive, got %s", symbol, price)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[strings.ToUpper(symbol)] = price
	return nil
}

func (s *Static) Price(symbol string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return p, nil
}

// Fixture returns the reference oracle used by the examples and
// tests: AAPL at $150, GOOGL at $2800 and TSLA at $700.
func Fixture() *Static {
	s, err := NewStatic(map[string]decimal.Decimal{
		"AAPL":  decimal.NewFromInt(150),
		"GOOGL": decimal.NewFromInt(2800),
		"TSLA":  decimal.NewFromInt(700),
	})
	if err != nil {
		panic(err)
	}
	return s
}
