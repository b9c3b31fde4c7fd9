// Package currency maintains the registry of currencies the bank can hold
// balances in, together with their formatting metadata.
package currency

import (
	"fmt"
	"sync"
)

const (
	// DefaultCurrency is the fallback currency code.
	DefaultCurrency Code = "USD"
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

// Code is an ISO 4217 currency code (3 uppercase letters).
type Code string

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

// Registry keeps the set of supported currencies. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	currencies map[Code]Meta
}

// NewRegistry creates a registry pre-populated with the default currencies.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[Code]Meta)}
	for code, meta := range map[Code]Meta{
		"USD": {Decimals: 2, Symbol: "$"},
		"EUR": {Decimals: 2, Symbol: "€"},
		"GBP": {Decimals: 2, Symbol: "£"},
		"JPY": {Decimals: 0, Symbol: "¥"},
		"KWD": {Decimals: 3, Symbol: "د.ك"},
		"EGP": {Decimals: 2, Symbol: "£"},
		"CAD": {Decimals: 2, Symbol: "C$"},
		"AUD": {Decimals: 2, Symbol: "A$"},
		"CHF": {Decimals: 2, Symbol: "CHF"},
		"CNY": {Decimals: 2, Symbol: "¥"},
		"INR": {Decimals: 2, Symbol: "₹"},
	} {
		r.Register(code, meta)
	}
	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(code Code, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[code] = meta
}

// Get returns currency metadata for the given code.
func (r *Registry) Get(code Code) (Meta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.currencies[code]
	if !ok {
		return Meta{}, fmt.Errorf("unsupported currency: %s", code)
	}
	return meta, nil
}

// IsSupported checks if a currency code is registered.
func (r *Registry) IsSupported(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[code]
	return ok
}

// ListSupported returns all registered currency codes.
func (r *Registry) ListSupported() []Code {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]Code, 0, len(r.currencies))
	for code := range r.currencies {
		codes = append(codes, code)
	}
	return codes
}

// IsValidFormat reports whether code looks like an ISO 4217 code:
// exactly 3 ASCII letters.
func IsValidFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// Global registry instance used by the convenience functions below.
var global = NewRegistry()

// Register adds or updates a currency in the global registry.
func Register(code Code, meta Meta) { global.Register(code, meta) }

// Get returns metadata for the given code from the global registry.
func Get(code Code) (Meta, error) { return global.Get(code) }

// IsSupported checks the global registry for the given code.
func IsSupported(code Code) bool { return global.IsSupported(code) }

// ListSupported returns all codes registered in the global registry.
func ListSupported() []Code { return global.ListSupported() }
