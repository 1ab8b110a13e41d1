package numfmt

import (
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// parseResult is the outcome of matching one subpattern.
type parseResult struct {
	neg      bool
	intPart  string
	fracPart string
	divisor  int64
	end      int
	currency string
}

// ParseFloat parses s starting at byte offset pos. It returns the value and
// the offset just past the consumed text. Trailing text that does not belong
// to the number is left unconsumed; compare the returned offset with len(s)
// to detect it. On failure the returned offset equals pos.
func (f *Formatter) ParseFloat(s string, pos int) (float64, int, error) {
	if f == nil {
		return 0, pos, ErrParse
	}
	res, err := f.parse(s, pos)
	if err != nil {
		return 0, pos, err
	}
	return res.float(), res.end, nil
}

// ParseInt is like ParseFloat but truncates the fraction. The fraction digits
// are still consumed. A magnitude outside the int64 range yields ErrOverflow
// together with the advanced offset.
func (f *Formatter) ParseInt(s string, pos int) (int64, int, error) {
	if f == nil {
		return 0, pos, ErrParse
	}
	res, err := f.parse(s, pos)
	if err != nil {
		return 0, pos, err
	}
	v, ok := res.int64()
	if !ok {
		return 0, res.end, ErrOverflow
	}
	return v, res.end, nil
}

// ParseCurrency is like ParseFloat and also reports the ISO code of the
// currency that was matched. When the pattern has no currency sign the
// formatter's own currency is reported.
func (f *Formatter) ParseCurrency(s string, pos int) (float64, string, int, error) {
	if f == nil {
		return 0, "", pos, ErrParse
	}
	res, err := f.parse(s, pos)
	if err != nil {
		return 0, "", pos, err
	}
	code := res.currency
	if code == "" {
		code = f.symbols[SymIntlCurrency]
	}
	return res.float(), code, res.end, nil
}

func (f *Formatter) parse(s string, pos int) (parseResult, error) {
	if pos < 0 || pos > len(s) {
		return parseResult{}, ErrParse
	}

	p := f.pattern
	negPrefix, negSuffix := p.negativeAffixes()
	best, ok := f.parseBranch(s, pos, p.posPrefix, p.posSuffix, false)
	if neg, negOK := f.parseBranch(s, pos, negPrefix, negSuffix, true); negOK {
		if !ok || neg.end > best.end {
			best, ok = neg, true
		}
	}
	if !ok {
		return parseResult{}, ErrParse
	}
	return best, nil
}

func (f *Formatter) parseBranch(s string, pos int, prefix, suffix affix, neg bool) (parseResult, bool) {
	res := parseResult{neg: neg, divisor: int64(f.multiplier)}

	cur, ok := f.matchAffix(s, pos, prefix, &res)
	if !ok {
		return res, false
	}
	if prefix.endsWith(tokCurrency) && strings.HasPrefix(s[cur:], currencySpace) {
		cur += len(currencySpace)
	}
	cur, ok = f.scanDigits(s, cur, &res)
	if !ok {
		return res, false
	}
	if suffix.startsWith(tokCurrency) && strings.HasPrefix(s[cur:], currencySpace) {
		cur += len(currencySpace)
	}
	cur, ok = f.matchAffix(s, cur, suffix, &res)
	if !ok {
		return res, false
	}

	switch {
	case prefix.has(tokPercent) || suffix.has(tokPercent):
		res.divisor *= 100
	case prefix.has(tokPerMille) || suffix.has(tokPerMille):
		res.divisor *= 1000
	}
	res.end = cur
	return res, true
}

func (f *Formatter) matchAffix(s string, pos int, a affix, res *parseResult) (int, bool) {
	for _, tok := range a {
		if tok.kind == tokCurrency {
			next, code, ok := f.matchCurrency(s, pos)
			if !ok {
				return pos, false
			}
			pos, res.currency = next, code
			continue
		}
		text := f.tokenText(tok)
		if !strings.HasPrefix(s[pos:], text) {
			return pos, false
		}
		pos += len(text)
	}
	return pos, true
}

// matchCurrency accepts the local symbol, the formatter's ISO code, or any
// other ISO 4217 code, preferring the longest match.
func (f *Formatter) matchCurrency(s string, pos int) (int, string, bool) {
	symbol, intl := f.symbols[SymCurrency], f.symbols[SymIntlCurrency]
	rest := s[pos:]

	candidates := []struct{ text, code string }{{intl, intl}, {symbol, intl}}
	if len(symbol) > len(intl) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, c := range candidates {
		if c.text != "" && strings.HasPrefix(rest, c.text) {
			return pos + len(c.text), c.code, true
		}
	}

	if len(rest) >= 3 && isUpperASCII(rest[:3]) {
		if unit, err := currency.ParseISO(rest[:3]); err == nil {
			return pos + 3, unit.String(), true
		}
	}
	return pos, "", false
}

func isUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanDigits consumes the digit run. Grouping separators are recognized only
// when the pattern uses grouping and a digit follows them.
func (f *Formatter) scanDigits(s string, pos int, res *parseResult) (int, bool) {
	decimalSym, groupSym := f.separators()
	grouping := f.pattern.digits.primaryGroup() > 0 && groupSym != ""

	var intB, fracB strings.Builder
	var groups []int
	current := 0
	inFrac := false

	for pos < len(s) {
		c := s[pos]
		if isASCIIDigit(c) {
			if inFrac {
				fracB.WriteByte(c)
			} else {
				intB.WriteByte(c)
				current++
			}
			pos++
			continue
		}
		if !inFrac && grouping && intB.Len() > 0 && strings.HasPrefix(s[pos:], groupSym) {
			next := pos + len(groupSym)
			if f.lenient {
				for strings.HasPrefix(s[next:], groupSym) {
					next += len(groupSym)
				}
			}
			if next < len(s) && isASCIIDigit(s[next]) {
				groups = append(groups, current)
				current = 0
				pos = next
				continue
			}
			break
		}
		if !inFrac && decimalSym != "" && strings.HasPrefix(s[pos:], decimalSym) {
			if f.parseIntOnly {
				break
			}
			inFrac = true
			pos += len(decimalSym)
			continue
		}
		break
	}

	if intB.Len()+fracB.Len() == 0 {
		return pos, false
	}
	if len(groups) > 0 && !f.lenient && !f.validGroups(append(groups, current)) {
		return pos, false
	}
	res.intPart, res.fracPart = intB.String(), fracB.String()
	return pos, true
}

// validGroups checks group sizes from left to right against the pattern: the
// rightmost group has the primary size, inner groups the secondary size, and
// the leading group at most the secondary size.
func (f *Formatter) validGroups(groups []int) bool {
	primary := f.pattern.digits.primaryGroup()
	secondary := f.pattern.digits.secondaryGroup()
	last := len(groups) - 1
	if groups[last] != primary {
		return false
	}
	for i := 1; i < last; i++ {
		if groups[i] != secondary {
			return false
		}
	}
	return groups[0] >= 1 && groups[0] <= secondary
}

func (r parseResult) float() float64 {
	intPart := r.intPart
	if intPart == "" {
		intPart = "0"
	}
	text := intPart
	if r.fracPart != "" {
		text += "." + r.fracPart
	}
	if r.neg {
		text = "-" + text
	}

	shift, pow10 := powerOfTen(r.divisor)
	if pow10 && shift > 0 {
		text += "e-" + strconv.Itoa(shift)
	}
	v, _ := strconv.ParseFloat(text, 64)
	if !pow10 {
		v /= float64(r.divisor)
	}
	return v
}

func (r parseResult) int64() (int64, bool) {
	num, ok := new(big.Int).SetString(r.intPart+r.fracPart+"0", 10)
	if !ok {
		return 0, false
	}
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(r.fracPart)+1)), nil)
	divisor := r.divisor
	if divisor < 0 {
		num.Neg(num)
		divisor = -divisor
	}
	den.Mul(den, big.NewInt(divisor))
	num.Quo(num, den)
	if r.neg {
		num.Neg(num)
	}
	if !num.IsInt64() {
		return 0, false
	}
	return num.Int64(), true
}
