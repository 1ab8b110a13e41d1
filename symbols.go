package numfmt

import (
	"fmt"
	"strings"
)

// Symbol identifies a role in the symbol table.
type Symbol int

const (
	SymDecimal Symbol = iota
	SymGroup
	SymPercent
	SymPlus
	SymMinus
	SymExponential
	SymPerMille
	SymInfinity
	SymNaN
	SymCurrency
	SymIntlCurrency
	SymMonetaryDecimal
	SymMonetaryGroup

	numSymbols
)

var symbolNames = [numSymbols]string{
	SymDecimal:         "decimal",
	SymGroup:           "group",
	SymPercent:         "percent",
	SymPlus:            "plus",
	SymMinus:           "minus",
	SymExponential:     "exponential",
	SymPerMille:        "permille",
	SymInfinity:        "infinity",
	SymNaN:             "nan",
	SymCurrency:        "currency",
	SymIntlCurrency:    "intl_currency",
	SymMonetaryDecimal: "monetary_decimal",
	SymMonetaryGroup:   "monetary_group",
}

func (s Symbol) valid() bool {
	return s >= 0 && s < numSymbols
}

func (s Symbol) String() string {
	if !s.valid() {
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
	return symbolNames[s]
}

// ParseSymbol resolves a symbol role from its data file key.
func ParseSymbol(name string) (Symbol, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range symbolNames {
		if candidate == key {
			return Symbol(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
}

// Symbols is a symbol table indexed by role. The zero value has every role
// empty; use RootSymbols for usable defaults.
type Symbols [numSymbols]string

// RootSymbols returns the symbol table of the root locale.
func RootSymbols() Symbols {
	return Symbols{
		SymDecimal:         ".",
		SymGroup:           ",",
		SymPercent:         "%",
		SymPlus:            "+",
		SymMinus:           "-",
		SymExponential:     "E",
		SymPerMille:        "‰",
		SymInfinity:        "∞",
		SymNaN:             "NaN",
		SymCurrency:        "¤",
		SymIntlCurrency:    "XXX",
		SymMonetaryDecimal: ".",
		SymMonetaryGroup:   ",",
	}
}

// Get returns the text for sym, or "" when sym is out of range.
func (s *Symbols) Get(sym Symbol) string {
	if s == nil || !sym.valid() {
		return ""
	}
	return s[sym]
}

// Set replaces the text for sym.
func (s *Symbols) Set(sym Symbol, value string) error {
	if s == nil {
		return ErrUnknownSymbol
	}
	if !sym.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSymbol, int(sym))
	}
	s[sym] = value
	return nil
}

// merge copies the non-empty entries of src over s.
func (s *Symbols) merge(src map[string]string) error {
	for name, value := range src {
		sym, err := ParseSymbol(name)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		s[sym] = value
	}
	return nil
}

// Map returns the table keyed by data file names, skipping empty entries.
func (s Symbols) Map() map[string]string {
	out := make(map[string]string, numSymbols)
	for i, value := range s {
		if value == "" {
			continue
		}
		out[symbolNames[i]] = value
	}
	return out
}
