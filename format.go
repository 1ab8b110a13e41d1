package numfmt

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// currencySpace separates a currency sign from adjacent digits when the sign
// ends in a letter or digit, as in "USD\u00a01.00".
const currencySpace = "\u00a0"

// FormatFloat renders v with the current pattern, attributes and symbols.
func (f *Formatter) FormatFloat(v float64) string {
	if f == nil {
		return ""
	}
	return f.format(decimalFromFloat(v))
}

// FormatInt renders v exactly, without a float conversion.
func (f *Formatter) FormatInt(v int64) string {
	if f == nil {
		return ""
	}
	return f.format(decimalFromInt(v))
}

// FormatDecimal renders decimal text such as "1234.5678" or "-1e-3" without
// losing precision to float64.
func (f *Formatter) FormatDecimal(s string) (string, error) {
	if f == nil {
		return "", ErrInvalidNumber
	}
	d, err := parseDecimal(s)
	if err != nil {
		return "", err
	}
	return f.format(d), nil
}

func (f *Formatter) format(d decimal) string {
	p := f.pattern
	prefix, suffix := p.posPrefix, p.posSuffix
	if d.neg && !d.nan {
		prefix, suffix = p.negativeAffixes()
	}

	var body string
	switch {
	case d.nan:
		body = f.symbols[SymNaN]
	case d.inf:
		body = f.symbols[SymInfinity]
	default:
		d = d.clone()
		d.mul(f.effectiveMultiplier())
		if p.digits.exponent {
			body = f.formatScientific(&d)
		} else {
			body = f.formatFixed(&d)
		}
	}
	pre, post := f.renderAffix(prefix), f.renderAffix(suffix)
	if prefix.endsWith(tokCurrency) {
		sign, _ := utf8.DecodeLastRuneInString(pre)
		digit, _ := utf8.DecodeRuneInString(body)
		if needsCurrencySpace(sign, digit) {
			pre += currencySpace
		}
	}
	if suffix.startsWith(tokCurrency) {
		sign, _ := utf8.DecodeRuneInString(post)
		digit, _ := utf8.DecodeLastRuneInString(body)
		if needsCurrencySpace(sign, digit) {
			post = currencySpace + post
		}
	}
	return pre + body + post
}

func needsCurrencySpace(sign, digit rune) bool {
	if sign == utf8.RuneError || !unicode.IsDigit(digit) {
		return false
	}
	return !unicode.IsSymbol(sign) && !unicode.In(sign, unicode.Z)
}

func (f *Formatter) effectiveMultiplier() int64 {
	m := int64(f.multiplier)
	switch {
	case f.pattern.hasRole(tokPercent):
		m *= 100
	case f.pattern.hasRole(tokPerMille):
		m *= 1000
	}
	return m
}

// separators returns the decimal and grouping symbols, switching to the
// monetary pair when the pattern carries a currency sign.
func (f *Formatter) separators() (string, string) {
	if f.pattern.hasRole(tokCurrency) {
		return f.symbols[SymMonetaryDecimal], f.symbols[SymMonetaryGroup]
	}
	return f.symbols[SymDecimal], f.symbols[SymGroup]
}

func (f *Formatter) formatFixed(d *decimal) string {
	run := f.pattern.digits
	d.roundFraction(run.maxFrac, f.rounding)

	intPart := d.integerDigits()
	if len(intPart) > run.maxInt {
		intPart = strings.TrimLeft(intPart[len(intPart)-run.maxInt:], "0")
	}
	if len(intPart) < run.minInt {
		intPart = strings.Repeat("0", run.minInt-len(intPart)) + intPart
	}
	frac := d.fractionDigits()
	if len(frac) < run.minFrac {
		frac += strings.Repeat("0", run.minFrac-len(frac))
	}
	if intPart == "" && frac == "" {
		intPart = "0"
	}

	decimalSym, groupSym := f.separators()
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		b.WriteByte(intPart[i])
		if pos := len(intPart) - i - 1; pos > 0 && run.isGroupBoundary(pos) {
			b.WriteString(groupSym)
		}
	}
	if frac != "" || run.decimalShown {
		b.WriteString(decimalSym)
	}
	b.WriteString(frac)
	return b.String()
}

func (f *Formatter) formatScientific(d *decimal) string {
	run := f.pattern.digits
	intCount := max(run.minInt, 1)
	minSig := intCount + run.minFrac

	// Without required integer digits, "#E0" keeps every significant digit
	// and "#.##E0" keeps maxFrac+1 of them.
	switch {
	case run.minInt == 0 && run.maxFrac == 0:
	case run.minInt == 0 && run.minFrac == 0:
		d.roundDigits(run.maxFrac+1, f.rounding)
	default:
		d.roundDigits(intCount+run.maxFrac, f.rounding)
	}

	exp := 0
	if !d.isZero() {
		if run.engineering() {
			m := run.maxInt
			intCount = ((d.exp-1)%m+m)%m + 1
		}
		exp = d.exp - intCount
	}

	digits := string(d.digits)
	var intPart, frac string
	if len(digits) >= intCount {
		intPart, frac = digits[:intCount], digits[intCount:]
	} else {
		intPart = digits + strings.Repeat("0", intCount-len(digits))
	}
	if need := minSig - intCount; len(frac) < need {
		frac += strings.Repeat("0", need-len(frac))
	}

	decimalSym, _ := f.separators()
	var b strings.Builder
	b.WriteString(intPart)
	if frac != "" || run.decimalShown {
		b.WriteString(decimalSym)
	}
	b.WriteString(frac)

	b.WriteString(f.symbols[SymExponential])
	switch {
	case exp < 0:
		b.WriteString(f.symbols[SymMinus])
		exp = -exp
	case run.expSign:
		b.WriteString(f.symbols[SymPlus])
	}
	expDigits := strconv.Itoa(exp)
	if len(expDigits) < run.minExp {
		expDigits = strings.Repeat("0", run.minExp-len(expDigits)) + expDigits
	}
	b.WriteString(expDigits)
	return b.String()
}

// renderAffix substitutes role tokens with the current symbols.
func (f *Formatter) renderAffix(a affix) string {
	var b strings.Builder
	for _, tok := range a {
		b.WriteString(f.tokenText(tok))
	}
	return b.String()
}

func (f *Formatter) tokenText(tok affixToken) string {
	switch tok.kind {
	case tokPlus:
		return f.symbols[SymPlus]
	case tokMinus:
		return f.symbols[SymMinus]
	case tokPercent:
		return f.symbols[SymPercent]
	case tokPerMille:
		return f.symbols[SymPerMille]
	case tokCurrency:
		if tok.count > 1 {
			return f.symbols[SymIntlCurrency]
		}
		return f.symbols[SymCurrency]
	}
	return tok.text
}
