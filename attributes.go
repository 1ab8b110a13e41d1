package numfmt

import (
	"fmt"
	"strings"
)

// Style selects the default pattern a formatter starts from.
type Style int

const (
	StyleDecimal Style = iota
	StyleCurrency
	StylePercent
	StyleScientific
	StylePatternDecimal
)

var styleNames = map[Style]string{
	StyleDecimal:        "decimal",
	StyleCurrency:       "currency",
	StylePercent:        "percent",
	StyleScientific:     "scientific",
	StylePatternDecimal: "pattern",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle resolves a style from its name.
func ParseStyle(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for style, candidate := range styleNames {
		if candidate == key {
			return style, nil
		}
	}
	return 0, fmt.Errorf("numfmt: unknown style %q", name)
}

// Attribute names a numeric formatter attribute.
type Attribute int

const (
	ParseIntOnly Attribute = iota
	GroupingUsed
	DecimalAlwaysShown
	MaxIntegerDigits
	MinIntegerDigits
	IntegerDigits
	MaxFractionDigits
	MinFractionDigits
	FractionDigits
	Multiplier
	GroupingSize
	RoundingMode
	SecondaryGroupingSize
	LenientParse

	numAttributes
)

// TextAttribute names a textual formatter attribute.
type TextAttribute int

const (
	PositivePrefix TextAttribute = iota
	PositiveSuffix
	NegativePrefix
	NegativeSuffix
	CurrencyCode

	numTextAttributes
)

// Rounding values match the ICU ordinals.
type Rounding int

const (
	RoundCeiling Rounding = iota
	RoundFloor
	RoundDown
	RoundUp
	RoundHalfEven
	RoundHalfDown
	RoundHalfUp
)

var roundingNames = map[Rounding]string{
	RoundCeiling:  "ceiling",
	RoundFloor:    "floor",
	RoundDown:     "down",
	RoundUp:       "up",
	RoundHalfEven: "half_even",
	RoundHalfDown: "half_down",
	RoundHalfUp:   "half_up",
}

func (m Rounding) String() string {
	if name, ok := roundingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Rounding(%d)", int(m))
}

// ParseRounding resolves a rounding mode name such as "half_up" or "HALF-UP".
func ParseRounding(name string) (Rounding, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for mode, candidate := range roundingNames {
		if candidate == key {
			return mode, nil
		}
	}
	return RoundHalfEven, fmt.Errorf("numfmt: unknown rounding mode %q", name)
}

const (
	maxIntegerDigitsLimit  = 309
	maxFractionDigitsLimit = 340
)

// wrapInt32 stores v the way a 32-bit attribute slot would, after clamping
// negative inputs to zero.
func wrapInt32(v int64) int32 {
	if v < 0 {
		return 0
	}
	return int32(v)
}

func clampDigits(v int64, limit int) int {
	switch {
	case v < 0:
		return 0
	case v > int64(limit):
		return limit
	}
	return int(v)
}

func coerceRounding(v int64) Rounding {
	mode := Rounding(v)
	if _, ok := roundingNames[mode]; !ok || v != int64(mode) {
		return RoundHalfEven
	}
	return mode
}

func coerceMultiplier(v int64) int32 {
	m := int32(v)
	if m == 0 {
		return 1
	}
	return m
}

func boolAttr(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
