package numfmt

import (
	"fmt"
	"math"
	"strconv"
)

// FuncMap exposes template helpers bound to locale:
//
//	format_number, format_percent, format_scientific: value -> string
//	format_currency: code, value -> string ("" keeps the locale currency)
//	parse_number: string -> float64
func (r *Registry) FuncMap(locale string) map[string]any {
	styled := func(style Style) func(any) (string, error) {
		return func(v any) (string, error) {
			return r.Format(locale, style, v)
		}
	}
	return map[string]any{
		"format_number":     styled(StyleDecimal),
		"format_percent":    styled(StylePercent),
		"format_scientific": styled(StyleScientific),
		"format_currency": func(code string, v any) (string, error) {
			f, err := r.Formatter(locale, StyleCurrency)
			if err != nil {
				return "", err
			}
			if code != "" {
				if err := f.SetTextAttribute(CurrencyCode, code); err != nil {
					return "", err
				}
			}
			return formatValue(f, v)
		},
		"parse_number": func(text string) (float64, error) {
			v, _, err := r.Parse(locale, StyleDecimal, text)
			return v, err
		},
	}
}

func formatValue(f *Formatter, v any) (string, error) {
	switch n := v.(type) {
	case int:
		return f.FormatInt(int64(n)), nil
	case int8:
		return f.FormatInt(int64(n)), nil
	case int16:
		return f.FormatInt(int64(n)), nil
	case int32:
		return f.FormatInt(int64(n)), nil
	case int64:
		return f.FormatInt(n), nil
	case uint:
		return f.FormatDecimal(strconv.FormatUint(uint64(n), 10))
	case uint8:
		return f.FormatInt(int64(n)), nil
	case uint16:
		return f.FormatInt(int64(n)), nil
	case uint32:
		return f.FormatInt(int64(n)), nil
	case uint64:
		if n <= math.MaxInt64 {
			return f.FormatInt(int64(n)), nil
		}
		return f.FormatDecimal(strconv.FormatUint(n, 10))
	case float32:
		return f.FormatDecimal(strconv.FormatFloat(float64(n), 'g', -1, 32))
	case float64:
		return f.FormatFloat(n), nil
	case string:
		return f.FormatDecimal(n)
	case nil:
		return "", fmt.Errorf("%w: nil value", ErrInvalidNumber)
	}
	return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidNumber, v)
}
