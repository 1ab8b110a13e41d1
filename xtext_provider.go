package numfmt

import (
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// XTextProvider derives separators and currency data from the CLDR tables
// compiled into golang.org/x/text. Patterns are the root defaults. It serves
// any tag that golang.org/x/text/language accepts.
type XTextProvider struct {
	mu    sync.RWMutex
	cache map[string]Symbols
}

func NewXTextProvider() *XTextProvider {
	return &XTextProvider{cache: make(map[string]Symbols)}
}

func (p *XTextProvider) Lookup(locale string, style Style) (LocaleData, error) {
	if _, ok := styleNames[style]; !ok {
		return LocaleData{}, fmt.Errorf("numfmt: unknown style %d", int(style))
	}
	code := canonicalLocale(locale)
	if code == RootLocale {
		return rootLocaleData(style), nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return LocaleData{}, fmt.Errorf("%w: %q: %v", ErrLocaleNotFound, locale, err)
	}

	data := rootLocaleData(style)
	data.Locale = tag.String()
	data.Symbols = p.symbols(tag)
	if unit, ok := defaultCurrency(data.Locale); ok {
		data.Currency = unit.String()
		data.Symbols[SymIntlCurrency] = data.Currency
		data.Symbols[SymCurrency] = currencySymbol(data.Locale, unit)
	}
	return data, nil
}

func (p *XTextProvider) symbols(tag language.Tag) Symbols {
	key := tag.String()
	if p != nil {
		p.mu.RLock()
		cached, ok := p.cache[key]
		p.mu.RUnlock()
		if ok {
			return cached
		}
	}

	symbols := RootSymbols()
	printer := message.NewPrinter(tag)
	sample := printer.Sprintf("%v", number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	if group, decimalSep, ok := separatorsFromSample(sample); ok {
		symbols[SymGroup], symbols[SymMonetaryGroup] = group, group
		symbols[SymDecimal], symbols[SymMonetaryDecimal] = decimalSep, decimalSep
	}

	if p != nil {
		p.mu.Lock()
		if p.cache == nil {
			p.cache = make(map[string]Symbols)
		}
		p.cache[key] = symbols
		p.mu.Unlock()
	}
	return symbols
}

// separatorsFromSample reads the grouping and decimal separators out of a
// formatted 1234567.5: the first non-digit run is the grouping separator and
// the last one is the decimal separator.
func separatorsFromSample(sample string) (string, string, bool) {
	var runs []string
	var current []rune
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if len(current) > 0 {
				runs = append(runs, string(current))
				current = current[:0]
			}
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		return "", "", false
	}
	if len(runs) < 2 {
		return "", "", false
	}
	return runs[0], runs[len(runs)-1], true
}
