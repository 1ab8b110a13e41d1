package numfmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencySymbol resolves the display symbol of unit for locale through the
// CLDR data bundled with golang.org/x/text, falling back to English and then
// to the ISO code.
func currencySymbol(locale string, unit currency.Unit) string {
	tag := language.Make(canonicalLocale(locale))
	if symbol := extractCurrencySymbol(message.NewPrinter(tag), unit); symbol != "" && symbol != unit.String() {
		return symbol
	}
	if symbol := extractCurrencySymbol(message.NewPrinter(language.English), unit); symbol != "" {
		return symbol
	}
	return unit.String()
}

func extractCurrencySymbol(p *message.Printer, unit currency.Unit) string {
	full := p.Sprintf("%v", currency.Symbol(unit.Amount(1)))

	scale, _ := currency.Standard.Rounding(unit)
	amounts := []string{
		p.Sprintf("%v", number.Decimal(1, number.MinFractionDigits(scale), number.MaxFractionDigits(scale))),
		fmt.Sprintf("%.*f", scale, 1.0),
	}
	for _, amount := range amounts {
		if trimmed, ok := strings.CutSuffix(full, amount); ok {
			return strings.TrimSpace(trimmed)
		}
	}
	if idx := strings.LastIndex(full, " "); idx > 0 {
		return strings.TrimSpace(full[:idx])
	}
	return strings.TrimSpace(full)
}

// currencyScale returns the standard number of fraction digits for code.
func currencyScale(code string) (int, bool) {
	unit, err := currency.ParseISO(code)
	if err != nil || unit == currency.XXX {
		return 0, false
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale, true
}

// regionCurrency returns the currency used in the region of locale when the
// locale names a region explicitly.
func regionCurrency(locale string) (currency.Unit, bool) {
	tag, err := language.Parse(canonicalLocale(locale))
	if err != nil {
		return currency.Unit{}, false
	}
	if _, conf := tag.Region(); conf != language.Exact {
		return currency.Unit{}, false
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return currency.Unit{}, false
	}
	return unit, true
}

// defaultCurrency infers a currency for locale, using likely subtags when the
// region is not given.
func defaultCurrency(locale string) (currency.Unit, bool) {
	tag, err := language.Parse(canonicalLocale(locale))
	if err != nil {
		return currency.Unit{}, false
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return currency.Unit{}, false
	}
	return unit, true
}

func parseCurrencyCode(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return unit, nil
}
