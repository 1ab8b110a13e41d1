package numfmt

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// RootLocale names the locale every lookup falls back to.
const RootLocale = "root"

//go:embed data/locales.yaml
var builtinLocalesYAML []byte

// LocaleData is what a provider resolves for one locale and style.
type LocaleData struct {
	Locale   string
	Pattern  string
	Symbols  Symbols
	Currency string
}

// LocaleDataProvider supplies default patterns and symbols. Lookup returns an
// error wrapping ErrLocaleNotFound when it holds no data for locale.
type LocaleDataProvider interface {
	Lookup(locale string, style Style) (LocaleData, error)
}

// LocaleDataProviderFunc adapts a function to LocaleDataProvider.
type LocaleDataProviderFunc func(locale string, style Style) (LocaleData, error)

func (fn LocaleDataProviderFunc) Lookup(locale string, style Style) (LocaleData, error) {
	return fn(locale, style)
}

// LocaleEntry is the data file form of one locale. Missing fields inherit
// from the parent chain.
type LocaleEntry struct {
	Parent   string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Currency string            `json:"currency,omitempty" yaml:"currency,omitempty"`
	Patterns map[string]string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Symbols  map[string]string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// LocaleDataFile is the top level document of a locale data file.
type LocaleDataFile struct {
	Locales map[string]LocaleEntry `json:"locales" yaml:"locales"`
}

var patternDecimalDefault = "#." + strings.Repeat("#", maxFractionDigitsLimit)

var rootPatterns = map[Style]string{
	StyleDecimal:        "#,##0.###",
	StyleCurrency:       "¤ #,##0.00",
	StylePercent:        "#,##0%",
	StyleScientific:     "#E0",
	StylePatternDecimal: patternDecimalDefault,
}

func rootLocaleData(style Style) LocaleData {
	return LocaleData{
		Locale:   RootLocale,
		Pattern:  rootPatterns[style],
		Symbols:  RootSymbols(),
		Currency: "XXX",
	}
}

// StaticProvider serves locale data from an in-memory table, resolving
// missing fields through the locale parent chain.
type StaticProvider struct {
	mu      sync.RWMutex
	entries map[string]LocaleEntry
}

// NewStaticProvider builds a provider from entries keyed by locale.
func NewStaticProvider(entries map[string]LocaleEntry) *StaticProvider {
	p := &StaticProvider{entries: make(map[string]LocaleEntry, len(entries))}
	p.Merge(entries)
	return p
}

var (
	builtinOnce    sync.Once
	builtinEntries map[string]LocaleEntry
	builtinErr     error
)

func loadBuiltinEntries() (map[string]LocaleEntry, error) {
	builtinOnce.Do(func() {
		var file LocaleDataFile
		if err := yaml.Unmarshal(builtinLocalesYAML, &file); err != nil {
			builtinErr = fmt.Errorf("parse builtin locale data: %w", err)
			return
		}
		builtinEntries = file.Locales
	})
	return builtinEntries, builtinErr
}

// BuiltinProvider returns a new provider seeded with the embedded locale data.
func BuiltinProvider() *StaticProvider {
	entries, err := loadBuiltinEntries()
	if err != nil {
		return NewStaticProvider(nil)
	}
	return NewStaticProvider(entries)
}

// DefaultProvider serves the embedded data and derives anything else from
// the CLDR tables in golang.org/x/text.
func DefaultProvider() LocaleDataProvider {
	return ChainProviders(BuiltinProvider(), NewXTextProvider())
}

// Merge overlays entries on the provider. Patterns and symbols merge key by
// key; scalar fields are replaced when set.
func (p *StaticProvider) Merge(entries map[string]LocaleEntry) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.entries == nil {
		p.entries = make(map[string]LocaleEntry, len(entries))
	}
	for locale, entry := range entries {
		key := canonicalLocale(locale)
		p.entries[key] = mergeLocaleEntry(p.entries[key], entry)
	}
}

func mergeLocaleEntry(dest, source LocaleEntry) LocaleEntry {
	if source.Parent != "" {
		dest.Parent = source.Parent
	}
	if source.Currency != "" {
		dest.Currency = source.Currency
	}
	if len(source.Patterns) > 0 {
		merged := make(map[string]string, len(dest.Patterns)+len(source.Patterns))
		maps.Copy(merged, dest.Patterns)
		maps.Copy(merged, source.Patterns)
		dest.Patterns = merged
	}
	if len(source.Symbols) > 0 {
		merged := make(map[string]string, len(dest.Symbols)+len(source.Symbols))
		maps.Copy(merged, dest.Symbols)
		maps.Copy(merged, source.Symbols)
		dest.Symbols = merged
	}
	return dest
}

// Locales lists the locales with an entry, sorted.
func (p *StaticProvider) Locales() []string {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.entries))
	for locale := range p.entries {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Entry returns a copy of the raw entry for locale.
func (p *StaticProvider) Entry(locale string) (LocaleEntry, bool) {
	if p == nil {
		return LocaleEntry{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.entries[canonicalLocale(locale)]
	return mergeLocaleEntry(LocaleEntry{}, entry), ok
}

// chain returns locale and its parents, most specific first, honoring
// explicit parent fields. The root locale is excluded.
func (p *StaticProvider) chain(locale string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(code string) bool {
		if code == "" || code == RootLocale {
			return false
		}
		if _, ok := seen[code]; ok {
			return false
		}
		seen[code] = struct{}{}
		out = append(out, code)
		return true
	}

	current := canonicalLocale(locale)
	for add(current) {
		if entry, ok := p.entries[current]; ok && entry.Parent != "" {
			current = canonicalLocale(entry.Parent)
			continue
		}
		parents := localeParentChain(current)
		for _, parent := range parents {
			add(parent)
		}
		break
	}
	return out
}

func (p *StaticProvider) Lookup(locale string, style Style) (LocaleData, error) {
	if p == nil {
		return LocaleData{}, ErrLocaleNotFound
	}
	if _, ok := styleNames[style]; !ok {
		return LocaleData{}, fmt.Errorf("numfmt: unknown style %d", int(style))
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	requested := canonicalLocale(locale)
	chain := p.chain(requested)
	found := false
	for _, code := range chain {
		if _, ok := p.entries[code]; ok {
			found = true
			break
		}
	}
	if !found && requested != RootLocale {
		return LocaleData{}, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
	}

	data := rootLocaleData(style)
	data.Locale = requested

	levels := append([]string{RootLocale}, reverseStrings(chain)...)
	currencyLevel, symbolLevel := 0, 0
	for level, code := range levels {
		entry, ok := p.entries[code]
		if !ok {
			continue
		}
		if pattern, ok := entry.Patterns[style.String()]; ok && pattern != "" {
			data.Pattern = pattern
		}
		if err := data.Symbols.merge(entry.Symbols); err != nil {
			return LocaleData{}, fmt.Errorf("locale %q: %w", code, err)
		}
		if entry.Symbols[SymCurrency.String()] != "" {
			symbolLevel = level
		}
		if entry.Currency != "" {
			data.Currency = strings.ToUpper(entry.Currency)
			currencyLevel = level
		}
	}

	exact := len(levels) - 1
	if currencyLevel < exact {
		if unit, ok := regionCurrency(requested); ok && unit.String() != data.Currency {
			data.Currency = unit.String()
			currencyLevel = exact + 1
		}
	}
	data.Symbols[SymIntlCurrency] = data.Currency
	if symbolLevel < currencyLevel {
		data.Symbols[SymCurrency] = symbolForCode(requested, data.Currency)
	}
	return data, nil
}

func symbolForCode(locale, code string) string {
	unit, err := parseCurrencyCode(code)
	if err != nil {
		return code
	}
	return currencySymbol(locale, unit)
}

func reverseStrings(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

type providerChain []LocaleDataProvider

// ChainProviders tries each provider in order and returns the first result
// that is not ErrLocaleNotFound.
func ChainProviders(providers ...LocaleDataProvider) LocaleDataProvider {
	flattened := make(providerChain, 0, len(providers))
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		if chain, ok := provider.(providerChain); ok {
			flattened = append(flattened, chain...)
			continue
		}
		flattened = append(flattened, provider)
	}
	return flattened
}

func (c providerChain) Lookup(locale string, style Style) (LocaleData, error) {
	for _, provider := range c {
		data, err := provider.Lookup(locale, style)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrLocaleNotFound) {
			return LocaleData{}, err
		}
	}
	return LocaleData{}, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
}
