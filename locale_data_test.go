package numfmt

import (
	"errors"
	"slices"
	"testing"
)

func TestBuiltinProviderLocales(t *testing.T) {
	p := BuiltinProvider()
	locales := p.Locales()
	for _, want := range []string{"root", "en", "en-GB", "de", "fr", "ja"} {
		if !slices.Contains(locales, want) {
			t.Errorf("BuiltinProvider().Locales() = %v; missing %q", locales, want)
		}
	}
	for _, locale := range locales {
		entry, _ := p.Entry(locale)
		for style, pattern := range entry.Patterns {
			if _, err := CompilePattern(pattern); err != nil {
				t.Errorf("builtin %s %s pattern %q: %v", locale, style, pattern, err)
			}
		}
	}
}

func TestStaticProviderLookup(t *testing.T) {
	p := BuiltinProvider()

	tests := []struct {
		name         string
		locale       string
		style        Style
		wantLocale   string
		wantPattern  string
		wantCurrency string
		wantDecimal  string
	}{
		{name: "exact", locale: "de", style: StyleDecimal, wantLocale: "de", wantPattern: "#,##0.###", wantCurrency: "EUR", wantDecimal: ","},
		{name: "inherits parent", locale: "de-AT", style: StyleCurrency, wantLocale: "de-AT", wantPattern: "#,##0.00\u00a0¤", wantCurrency: "EUR", wantDecimal: ","},
		{name: "region currency", locale: "en-CA", style: StyleDecimal, wantLocale: "en-CA", wantPattern: "#,##0.###", wantCurrency: "CAD", wantDecimal: "."},
		{name: "underscore form", locale: "pt_BR", style: StyleCurrency, wantLocale: "pt-BR", wantPattern: "¤\u00a0#,##0.00", wantCurrency: "BRL", wantDecimal: ","},
		{name: "root", locale: "", style: StylePercent, wantLocale: RootLocale, wantPattern: "#,##0%", wantCurrency: "XXX", wantDecimal: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := p.Lookup(tt.locale, tt.style)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.locale, err)
			}
			if data.Locale != tt.wantLocale {
				t.Errorf("Locale = %q; want %q", data.Locale, tt.wantLocale)
			}
			if data.Pattern != tt.wantPattern {
				t.Errorf("Pattern = %q; want %q", data.Pattern, tt.wantPattern)
			}
			if data.Currency != tt.wantCurrency {
				t.Errorf("Currency = %q; want %q", data.Currency, tt.wantCurrency)
			}
			if got := data.Symbols.Get(SymIntlCurrency); got != tt.wantCurrency {
				t.Errorf("intl currency symbol = %q; want %q", got, tt.wantCurrency)
			}
			if got := data.Symbols.Get(SymDecimal); got != tt.wantDecimal {
				t.Errorf("decimal symbol = %q; want %q", got, tt.wantDecimal)
			}
		})
	}

	if _, err := p.Lookup("tlh", StyleDecimal); !errors.Is(err, ErrLocaleNotFound) {
		t.Errorf("Lookup(tlh) error = %v; want ErrLocaleNotFound", err)
	}
	if _, err := p.Lookup("en", Style(99)); err == nil {
		t.Error("Lookup with an unknown style should fail")
	}
}

func TestStaticProviderExplicitParent(t *testing.T) {
	p := BuiltinProvider()
	p.Merge(map[string]LocaleEntry{
		"es-AR": {Parent: "es-MX"},
	})

	data, err := p.Lookup("es-AR", StyleDecimal)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if got := data.Symbols.Get(SymDecimal); got != "." {
		t.Errorf("decimal symbol = %q; want the es-MX value", got)
	}
	if data.Currency != "ARS" {
		t.Errorf("Currency = %q; want ARS from the region", data.Currency)
	}
}

func TestStaticProviderMerge(t *testing.T) {
	p := NewStaticProvider(map[string]LocaleEntry{
		"en": {Currency: "USD", Symbols: map[string]string{"group": ","}},
	})
	p.Merge(map[string]LocaleEntry{
		"en": {Patterns: map[string]string{"decimal": "0.00"}, Symbols: map[string]string{"decimal": "·"}},
	})

	entry, ok := p.Entry("en")
	if !ok {
		t.Fatal("expected en entry")
	}
	if entry.Currency != "USD" || entry.Symbols["group"] != "," || entry.Symbols["decimal"] != "·" || entry.Patterns["decimal"] != "0.00" {
		t.Errorf("merged entry = %+v", entry)
	}

	entry.Symbols["group"] = "mutated"
	if again, _ := p.Entry("en"); again.Symbols["group"] != "," {
		t.Error("Entry should return a copy")
	}
}

func TestStaticProviderUnknownSymbolKey(t *testing.T) {
	p := NewStaticProvider(map[string]LocaleEntry{
		"en": {Symbols: map[string]string{"thousands": " "}},
	})
	if _, err := p.Lookup("en", StyleDecimal); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Lookup error = %v; want ErrUnknownSymbol", err)
	}
}

func TestChainProviders(t *testing.T) {
	calls := 0
	fallback := LocaleDataProviderFunc(func(locale string, style Style) (LocaleData, error) {
		calls++
		data := rootLocaleData(style)
		data.Locale = locale
		data.Symbols[SymDecimal] = "!"
		return data, nil
	})
	chain := ChainProviders(NewStaticProvider(map[string]LocaleEntry{
		"en": {Symbols: map[string]string{"decimal": "."}},
	}), nil, fallback)

	data, err := chain.Lookup("en", StyleDecimal)
	if err != nil {
		t.Fatal(err)
	}
	if data.Symbols.Get(SymDecimal) != "." || calls != 0 {
		t.Errorf("first provider should answer en, got %q after %d fallback calls", data.Symbols.Get(SymDecimal), calls)
	}

	data, err = chain.Lookup("sw", StyleDecimal)
	if err != nil {
		t.Fatal(err)
	}
	if data.Symbols.Get(SymDecimal) != "!" || calls != 1 {
		t.Errorf("fallback should answer sw, got %q after %d calls", data.Symbols.Get(SymDecimal), calls)
	}

	failing := LocaleDataProviderFunc(func(string, Style) (LocaleData, error) {
		return LocaleData{}, errors.New("boom")
	})
	if _, err := ChainProviders(failing, fallback).Lookup("en", StyleDecimal); err == nil || errors.Is(err, ErrLocaleNotFound) {
		t.Errorf("a hard provider error should stop the chain, got %v", err)
	}

	empty := ChainProviders()
	if _, err := empty.Lookup("en", StyleDecimal); !errors.Is(err, ErrLocaleNotFound) {
		t.Errorf("empty chain error = %v", err)
	}
}

func TestSymbols(t *testing.T) {
	s := RootSymbols()
	if err := s.Set(SymGroup, "'"); err != nil {
		t.Fatal(err)
	}
	if s.Get(SymGroup) != "'" {
		t.Errorf("Get(SymGroup) = %q", s.Get(SymGroup))
	}
	if s.Get(Symbol(99)) != "" {
		t.Error("out of range Get should be empty")
	}

	m := s.Map()
	if m["group"] != "'" || m["intl_currency"] != "XXX" || len(m) != int(numSymbols) {
		t.Errorf("Map() = %v", m)
	}

	for i := Symbol(0); i < numSymbols; i++ {
		parsed, err := ParseSymbol(i.String())
		if err != nil || parsed != i {
			t.Errorf("ParseSymbol(%q) = %v, %v", i.String(), parsed, err)
		}
	}
}

func TestParseStyleAndRounding(t *testing.T) {
	if s, err := ParseStyle(" Currency "); err != nil || s != StyleCurrency {
		t.Errorf("ParseStyle(Currency) = %v, %v", s, err)
	}
	if _, err := ParseStyle("ordinal"); err == nil {
		t.Error("ParseStyle(ordinal) should fail")
	}
	if m, err := ParseRounding("HALF-UP"); err != nil || m != RoundHalfUp {
		t.Errorf("ParseRounding(HALF-UP) = %v, %v", m, err)
	}
	if _, err := ParseRounding("bankers"); err == nil {
		t.Error("ParseRounding(bankers) should fail")
	}
}
