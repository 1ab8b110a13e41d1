package numfmt

import (
	"errors"
	"fmt"
)

// Formatter renders and parses numbers for one locale and style. A Formatter
// carries mutable state and is not safe for concurrent use; use Clone or a
// Registry to hand out independent instances.
type Formatter struct {
	locale       string
	style        Style
	pattern      *Pattern
	symbols      Symbols
	rounding     Rounding
	multiplier   int32
	parseIntOnly bool
	lenient      bool
}

type formatterConfig struct {
	provider LocaleDataProvider
	pattern  string
	rounding Rounding
	lenient  bool
}

// FormatterOption configures New.
type FormatterOption func(*formatterConfig)

// WithLocaleData injects the provider used to resolve default patterns and symbols.
func WithLocaleData(provider LocaleDataProvider) FormatterOption {
	return func(c *formatterConfig) {
		if provider != nil {
			c.provider = provider
		}
	}
}

// WithPattern replaces the locale default pattern.
func WithPattern(pattern string) FormatterOption {
	return func(c *formatterConfig) {
		c.pattern = pattern
	}
}

// WithRounding sets the initial rounding mode. Unknown modes fall back to half even.
func WithRounding(mode Rounding) FormatterOption {
	return func(c *formatterConfig) {
		c.rounding = coerceRounding(int64(mode))
	}
}

// WithLenientParse starts the formatter in lenient parse mode.
func WithLenientParse(enabled bool) FormatterOption {
	return func(c *formatterConfig) {
		c.lenient = enabled
	}
}

// New builds a formatter for locale and style. Unknown locales resolve to the
// root locale. An error is returned only for an unknown style or an invalid
// WithPattern value.
func New(locale string, style Style, opts ...FormatterOption) (*Formatter, error) {
	if _, ok := styleNames[style]; !ok {
		return nil, fmt.Errorf("numfmt: unknown style %d", int(style))
	}

	cfg := formatterConfig{rounding: RoundHalfEven}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.provider == nil {
		cfg.provider = DefaultProvider()
	}

	data := resolveLocaleData(cfg.provider, locale, style)
	src := data.Pattern
	if cfg.pattern != "" {
		src = cfg.pattern
	}
	pattern, err := CompilePattern(src)
	if err != nil {
		return nil, err
	}

	f := &Formatter{
		locale:     data.Locale,
		style:      style,
		pattern:    pattern,
		symbols:    data.Symbols,
		rounding:   cfg.rounding,
		multiplier: 1,
		lenient:    cfg.lenient,
	}
	if style == StyleCurrency && cfg.pattern == "" {
		f.applyCurrencyScale(data.Currency)
	}
	return f, nil
}

// resolveLocaleData asks the provider for locale, then for the root locale,
// and finally falls back to the built-in root data.
func resolveLocaleData(provider LocaleDataProvider, locale string, style Style) LocaleData {
	data, err := provider.Lookup(locale, style)
	if err == nil {
		return data
	}
	if errors.Is(err, ErrLocaleNotFound) {
		if data, err = provider.Lookup(RootLocale, style); err == nil {
			return data
		}
	}
	return rootLocaleData(style)
}

// Locale returns the locale whose data the formatter was built from.
func (f *Formatter) Locale() string {
	if f == nil {
		return ""
	}
	return f.locale
}

func (f *Formatter) Style() Style {
	if f == nil {
		return StyleDecimal
	}
	return f.style
}

// Clone returns an independent copy of f.
func (f *Formatter) Clone() *Formatter {
	if f == nil {
		return nil
	}
	c := *f
	c.pattern = f.pattern.clone()
	return &c
}

// Pattern returns the canonical pattern string.
func (f *Formatter) Pattern() string {
	if f == nil {
		return ""
	}
	return f.pattern.String()
}

// SetPattern replaces the pattern. An invalid pattern is rejected and the
// current pattern is kept. Grouping sizes carry over when the new pattern
// does not define any.
func (f *Formatter) SetPattern(src string) error {
	if f == nil {
		return ErrInvalidPattern
	}
	p, err := CompilePattern(src)
	if err != nil {
		return err
	}
	if !p.digits.groupingUsed {
		p.digits.grouping = f.pattern.digits.grouping
		p.digits.secondary = f.pattern.digits.secondary
	}
	f.pattern = p
	return nil
}

// Symbol returns the text currently used for sym.
func (f *Formatter) Symbol(sym Symbol) (string, error) {
	if f == nil || !sym.valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownSymbol, int(sym))
	}
	return f.symbols[sym], nil
}

// SetSymbol overrides the text for sym. The pattern is not touched; role
// characters pick up the new text on the next format or parse.
func (f *Formatter) SetSymbol(sym Symbol, value string) error {
	if f == nil {
		return ErrUnknownSymbol
	}
	return f.symbols.Set(sym, value)
}

// Symbols returns a copy of the current symbol table.
func (f *Formatter) Symbols() Symbols {
	if f == nil {
		return Symbols{}
	}
	return f.symbols
}

// Attribute reads a numeric attribute.
func (f *Formatter) Attribute(attr Attribute) (int64, error) {
	if f == nil {
		return 0, ErrUnknownAttribute
	}
	run := f.pattern.digits
	switch attr {
	case ParseIntOnly:
		return boolAttr(f.parseIntOnly), nil
	case GroupingUsed:
		return boolAttr(run.groupingUsed), nil
	case DecimalAlwaysShown:
		return boolAttr(run.decimalShown), nil
	case MaxIntegerDigits:
		return int64(run.maxInt), nil
	case MinIntegerDigits, IntegerDigits:
		return int64(run.minInt), nil
	case MaxFractionDigits:
		return int64(run.maxFrac), nil
	case MinFractionDigits, FractionDigits:
		return int64(run.minFrac), nil
	case Multiplier:
		return int64(f.multiplier), nil
	case GroupingSize:
		return int64(run.grouping), nil
	case RoundingMode:
		return int64(f.rounding), nil
	case SecondaryGroupingSize:
		return int64(run.secondary), nil
	case LenientParse:
		return boolAttr(f.lenient), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownAttribute, int(attr))
}

// SetAttribute writes a numeric attribute. Out of range values are coerced,
// never rejected; only an unknown attribute fails.
func (f *Formatter) SetAttribute(attr Attribute, value int64) error {
	if f == nil {
		return ErrUnknownAttribute
	}
	run := &f.pattern.digits
	switch attr {
	case ParseIntOnly:
		f.parseIntOnly = value != 0
	case GroupingUsed:
		run.groupingUsed = value != 0
		if !run.groupingUsed {
			run.lead = false
		} else if run.grouping == 0 {
			run.grouping = 3
		}
	case DecimalAlwaysShown:
		run.decimalShown = value != 0
	case MaxIntegerDigits:
		n := clampDigits(value, maxIntegerDigitsLimit)
		run.maxInt = n
		run.minInt = min(run.minInt, n)
	case MinIntegerDigits:
		n := clampDigits(value, maxIntegerDigitsLimit)
		run.minInt = n
		run.maxInt = max(run.maxInt, n)
		run.lead = true
	case IntegerDigits:
		n := clampDigits(value, maxIntegerDigitsLimit)
		run.minInt, run.maxInt = n, n
		run.lead = true
	case MaxFractionDigits:
		n := clampDigits(value, maxFractionDigitsLimit)
		run.maxFrac = n
		run.minFrac = min(run.minFrac, n)
	case MinFractionDigits:
		n := clampDigits(value, maxFractionDigitsLimit)
		run.minFrac = n
		run.maxFrac = max(run.maxFrac, n)
	case FractionDigits:
		n := clampDigits(value, maxFractionDigitsLimit)
		run.minFrac, run.maxFrac = n, n
	case Multiplier:
		f.multiplier = coerceMultiplier(value)
	case GroupingSize:
		run.grouping = wrapInt32(value)
	case RoundingMode:
		f.rounding = coerceRounding(value)
	case SecondaryGroupingSize:
		run.secondary = wrapInt32(value)
	case LenientParse:
		f.lenient = value != 0
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAttribute, int(attr))
	}
	return nil
}

// TextAttribute reads an affix with role characters resolved through the
// current symbols, or the currency code.
func (f *Formatter) TextAttribute(attr TextAttribute) (string, error) {
	if f == nil {
		return "", ErrUnknownAttribute
	}
	negPrefix, negSuffix := f.pattern.negativeAffixes()
	switch attr {
	case PositivePrefix:
		return f.renderAffix(f.pattern.posPrefix), nil
	case PositiveSuffix:
		return f.renderAffix(f.pattern.posSuffix), nil
	case NegativePrefix:
		return f.renderAffix(negPrefix), nil
	case NegativeSuffix:
		return f.renderAffix(negSuffix), nil
	case CurrencyCode:
		return f.symbols[SymIntlCurrency], nil
	}
	return "", fmt.Errorf("%w: text attribute %d", ErrUnknownAttribute, int(attr))
}

// SetTextAttribute writes an affix as literal text, or sets the currency code.
// Writing a positive affix while the negative subpattern is implicit first
// pins the negative subpattern to its current form.
func (f *Formatter) SetTextAttribute(attr TextAttribute, value string) error {
	if f == nil {
		return ErrUnknownAttribute
	}
	p := f.pattern
	switch attr {
	case PositivePrefix:
		p.materializeNegative()
		p.posPrefix = literalAffix(value)
	case PositiveSuffix:
		p.materializeNegative()
		p.posSuffix = literalAffix(value)
	case NegativePrefix:
		p.materializeNegative()
		p.negPrefix = literalAffix(value)
	case NegativeSuffix:
		p.materializeNegative()
		p.negSuffix = literalAffix(value)
	case CurrencyCode:
		return f.setCurrency(value)
	default:
		return fmt.Errorf("%w: text attribute %d", ErrUnknownAttribute, int(attr))
	}
	p.collapseNegative()
	return nil
}

func (f *Formatter) setCurrency(code string) error {
	unit, err := parseCurrencyCode(code)
	if err != nil {
		return err
	}
	f.symbols[SymIntlCurrency] = unit.String()
	f.symbols[SymCurrency] = currencySymbol(f.locale, unit)
	if f.style == StyleCurrency {
		f.applyCurrencyScale(unit.String())
	}
	return nil
}

// applyCurrencyScale sets the fraction digits to the standard scale of code.
func (f *Formatter) applyCurrencyScale(code string) {
	scale, ok := currencyScale(code)
	if !ok {
		return
	}
	f.pattern.digits.minFrac = scale
	f.pattern.digits.maxFrac = scale
}
