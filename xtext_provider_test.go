package numfmt

import (
	"errors"
	"testing"
)

func TestXTextProviderSeparators(t *testing.T) {
	p := NewXTextProvider()

	tests := []struct {
		locale      string
		wantDecimal string
		wantGroup   string
	}{
		{locale: "en-US", wantDecimal: ".", wantGroup: ","},
		{locale: "de-DE", wantDecimal: ",", wantGroup: "."},
		{locale: "es-ES", wantDecimal: ",", wantGroup: "."},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			data, err := p.Lookup(tt.locale, StyleDecimal)
			if err != nil {
				t.Fatalf("Lookup(%s): %v", tt.locale, err)
			}
			if data.Locale != tt.locale {
				t.Errorf("Locale = %q; want %q", data.Locale, tt.locale)
			}
			if got := data.Symbols.Get(SymDecimal); got != tt.wantDecimal {
				t.Errorf("decimal = %q; want %q", got, tt.wantDecimal)
			}
			if got := data.Symbols.Get(SymGroup); got != tt.wantGroup {
				t.Errorf("group = %q; want %q", got, tt.wantGroup)
			}
			if data.Pattern != rootPatterns[StyleDecimal] {
				t.Errorf("Pattern = %q; want the root pattern", data.Pattern)
			}
		})
	}
}

func TestXTextProviderCurrency(t *testing.T) {
	p := NewXTextProvider()

	data, err := p.Lookup("en-US", StyleCurrency)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if data.Currency != "USD" || data.Symbols.Get(SymIntlCurrency) != "USD" {
		t.Errorf("currency = %q / %q; want USD", data.Currency, data.Symbols.Get(SymIntlCurrency))
	}
	if got := data.Symbols.Get(SymCurrency); got != "$" {
		t.Errorf("currency symbol = %q; want $", got)
	}
}

func TestXTextProviderRootAndErrors(t *testing.T) {
	p := NewXTextProvider()

	data, err := p.Lookup("", StylePercent)
	if err != nil {
		t.Fatalf("Lookup(root): %v", err)
	}
	if data.Locale != RootLocale || data.Pattern != "#,##0%" {
		t.Errorf("root data = %+v", data)
	}

	if _, err := p.Lookup("!!", StyleDecimal); !errors.Is(err, ErrLocaleNotFound) {
		t.Errorf("Lookup(!!) error = %v; want ErrLocaleNotFound", err)
	}
	if _, err := p.Lookup("en", Style(42)); err == nil {
		t.Error("Lookup with an unknown style should fail")
	}
}

func TestXTextProviderCachesSymbols(t *testing.T) {
	p := NewXTextProvider()
	first, err := p.Lookup("de", StyleDecimal)
	if err != nil {
		t.Fatal(err)
	}
	first.Symbols[SymGroup] = "mutated"

	second, err := p.Lookup("de", StyleDecimal)
	if err != nil {
		t.Fatal(err)
	}
	if second.Symbols.Get(SymGroup) != "." {
		t.Errorf("cached symbols leaked a caller mutation: %q", second.Symbols.Get(SymGroup))
	}
}

func TestSeparatorsFromSample(t *testing.T) {
	tests := []struct {
		sample      string
		wantGroup   string
		wantDecimal string
		wantOK      bool
	}{
		{sample: "1,234,567.5", wantGroup: ",", wantDecimal: ".", wantOK: true},
		{sample: "1.234.567,5", wantGroup: ".", wantDecimal: ",", wantOK: true},
		{sample: "1 234 567,5", wantGroup: " ", wantDecimal: ",", wantOK: true},
		{sample: "1234567", wantOK: false},
		{sample: "1,234 €", wantOK: false},
	}

	for _, tt := range tests {
		group, decimalSep, ok := separatorsFromSample(tt.sample)
		if ok != tt.wantOK {
			t.Errorf("separatorsFromSample(%q) ok = %v; want %v", tt.sample, ok, tt.wantOK)
			continue
		}
		if ok && (group != tt.wantGroup || decimalSep != tt.wantDecimal) {
			t.Errorf("separatorsFromSample(%q) = %q, %q; want %q, %q", tt.sample, group, decimalSep, tt.wantGroup, tt.wantDecimal)
		}
	}
}
