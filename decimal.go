package numfmt

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// decimal is an exact base-10 value equal to 0.digits × 10^exp.
// digits holds ASCII digits without leading or trailing zeros; zero has no digits.
type decimal struct {
	neg    bool
	inf    bool
	nan    bool
	digits []byte
	exp    int
}

func decimalFromFloat(v float64) decimal {
	switch {
	case math.IsNaN(v):
		return decimal{nan: true}
	case math.IsInf(v, 0):
		return decimal{inf: true, neg: v < 0}
	}

	d := decimal{neg: v < 0}
	repr := strconv.FormatFloat(math.Abs(v), 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(repr, "e")
	e, _ := strconv.Atoi(exponent)
	d.digits = []byte(strings.Replace(mantissa, ".", "", 1))
	d.exp = e + 1
	d.normalize()
	return d
}

func decimalFromInt(v int64) decimal {
	d := decimal{neg: v < 0}
	mag := uint64(v)
	if v < 0 {
		mag = uint64(-(v + 1)) + 1
	}
	d.digits = []byte(strconv.FormatUint(mag, 10))
	d.exp = len(d.digits)
	d.normalize()
	return d
}

// parseDecimal reads plain decimal text such as "-12.50", "1e-3" or "NaN".
func parseDecimal(s string) (decimal, error) {
	text := strings.TrimSpace(s)
	var d decimal

	if text == "" {
		return d, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}
	switch text[0] {
	case '-':
		d.neg = true
		text = text[1:]
	case '+':
		text = text[1:]
	}

	switch strings.ToLower(text) {
	case "nan":
		return decimal{nan: true}, nil
	case "inf", "infinity":
		d.inf = true
		return d, nil
	}

	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(text), "e")
	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if intPart == "" && fracPart == "" {
		return d, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return d, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	e := 0
	if hasExp {
		parsed, err := strconv.Atoi(exponent)
		if err != nil {
			return d, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
		e = parsed
	}

	d.digits = []byte(intPart + fracPart)
	d.exp = len(intPart) + e
	d.normalize()
	return d, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (d *decimal) isZero() bool {
	return !d.inf && !d.nan && len(d.digits) == 0
}

func (d *decimal) normalize() {
	lead := 0
	for lead < len(d.digits) && d.digits[lead] == '0' {
		lead++
	}
	d.digits = d.digits[lead:]
	d.exp -= lead

	end := len(d.digits)
	for end > 0 && d.digits[end-1] == '0' {
		end--
	}
	d.digits = d.digits[:end]

	if len(d.digits) == 0 {
		d.exp = 0
	}
}

// mul scales d by an integer factor. Powers of ten only move the exponent.
func (d *decimal) mul(factor int64) {
	if factor == 1 || d.nan {
		return
	}
	if factor < 0 {
		d.neg = !d.neg
		factor = -factor
	}
	if d.inf || len(d.digits) == 0 {
		return
	}
	if shift, ok := powerOfTen(factor); ok {
		d.exp += shift
		return
	}

	n, _ := new(big.Int).SetString(string(d.digits), 10)
	n.Mul(n, big.NewInt(factor))
	product := n.String()
	d.exp += len(product) - len(d.digits)
	d.digits = []byte(product)
	d.normalize()
}

func powerOfTen(v int64) (int, bool) {
	if v <= 0 {
		return 0, false
	}
	shift := 0
	for v%10 == 0 {
		v /= 10
		shift++
	}
	return shift, v == 1
}

// roundFraction rounds to at most places fraction digits.
func (d *decimal) roundFraction(places int, mode Rounding) {
	d.roundDigits(d.exp+places, mode)
}

// roundDigits keeps the n most significant digits, rounding the rest away
// according to mode. n may be zero or negative when the value is smaller than
// the rounding unit.
func (d *decimal) roundDigits(n int, mode Rounding) {
	if d.inf || d.nan || n >= len(d.digits) {
		return
	}

	cmp := -1
	if n >= 0 {
		rest := d.digits[n:]
		switch {
		case rest[0] > '5':
			cmp = 1
		case rest[0] == '5' && len(rest) > 1:
			cmp = 1
		case rest[0] == '5':
			cmp = 0
		}
	}
	odd := n > 0 && (d.digits[n-1]-'0')%2 == 1

	var inc bool
	switch mode {
	case RoundDown:
	case RoundUp:
		inc = true
	case RoundCeiling:
		inc = !d.neg
	case RoundFloor:
		inc = d.neg
	case RoundHalfUp:
		inc = cmp >= 0
	case RoundHalfDown:
		inc = cmp > 0
	default:
		inc = cmp > 0 || (cmp == 0 && odd)
	}

	if n <= 0 {
		if inc {
			d.exp = d.exp - n + 1
			d.digits = []byte{'1'}
		} else {
			d.digits = nil
			d.exp = 0
		}
		return
	}

	d.digits = d.digits[:n]
	if inc {
		i := n - 1
		for ; i >= 0 && d.digits[i] == '9'; i-- {
			d.digits[i] = '0'
		}
		if i < 0 {
			d.digits = append([]byte{'1'}, d.digits...)
			d.exp++
		} else {
			d.digits[i]++
		}
	}
	d.normalize()
}

// integerDigits returns the digits left of the decimal point, without padding.
func (d *decimal) integerDigits() string {
	if d.exp <= 0 {
		return ""
	}
	if d.exp >= len(d.digits) {
		return string(d.digits) + strings.Repeat("0", d.exp-len(d.digits))
	}
	return string(d.digits[:d.exp])
}

// fractionDigits returns the digits right of the decimal point without trailing zeros.
func (d *decimal) fractionDigits() string {
	if d.exp >= len(d.digits) {
		return ""
	}
	if d.exp < 0 {
		return strings.Repeat("0", -d.exp) + string(d.digits)
	}
	return string(d.digits[d.exp:])
}

func (d decimal) clone() decimal {
	d.digits = append([]byte(nil), d.digits...)
	return d
}
