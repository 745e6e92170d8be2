// Package pricing resolves unit prices for catalog drinks. Prices are not
// part of the upstream catalog, so they come from a built-in table with a
// fixed fallback for drinks the table does not know.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"cocktailhaven/internal/domain"
)

// StoreKey is the storage key holding imported price overrides.
const StoreKey = "prices"

// DefaultPrice applies to any drink missing from the table.
var DefaultPrice = decimal.RequireFromString("5.99")

func defaults() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"11007": decimal.RequireFromString("8.99"), // Margarita
		"15346": decimal.RequireFromString("7.99"),
		"17105": decimal.RequireFromString("6.99"), // Espresso Martini
	}
}

type reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Table maps drink ids to unit prices.
type Table struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewTable returns a Table holding the built-in prices.
func NewTable() *Table {
	return &Table{prices: defaults()}
}

// Load returns the built-in table overlaid with any overrides persisted
// under StoreKey. A missing key is not an error.
func Load(ctx context.Context, store reader) (*Table, error) {
	t := NewTable()
	raw, err := store.Get(ctx, StoreKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return t, nil
		}
		return nil, err
	}
	var overrides map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, err
	}
	for id, p := range overrides {
		t.prices[id] = p
	}
	return t, nil
}

// Resolve returns the unit price for the drink id, or DefaultPrice when the
// id is unknown.
func (t *Table) Resolve(drinkID string) decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p, ok := t.prices[drinkID]; ok {
		return p
	}
	return DefaultPrice
}

// SetPrice records or replaces the price for a drink id.
func (t *Table) SetPrice(drinkID string, price decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prices[drinkID] = price
}

// Snapshot returns a copy of the current table, for persisting overrides.
func (t *Table) Snapshot() map[string]decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(t.prices))
	for id, p := range t.prices {
		out[id] = p
	}
	return out
}
