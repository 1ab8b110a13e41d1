package numfmt

import (
	"strings"
)

// specialPatternRunes must be quoted when they appear as literal affix text.
const specialPatternRunes = "#0123456789,.;%‰¤+-*@"

// String renders the pattern in canonical form.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	digits := p.digits.String()

	var b strings.Builder
	b.WriteString(p.posPrefix.String())
	b.WriteString(digits)
	b.WriteString(p.posSuffix.String())
	if p.explicitNeg {
		b.WriteByte(';')
		b.WriteString(p.negPrefix.String())
		b.WriteString(digits)
		b.WriteString(p.negSuffix.String())
	}
	return b.String()
}

func (a affix) String() string {
	var b strings.Builder
	for _, tok := range a {
		switch tok.kind {
		case tokLiteral:
			writeQuotedLiteral(&b, tok.text)
		case tokPlus:
			b.WriteByte('+')
		case tokMinus:
			b.WriteByte('-')
		case tokPercent:
			b.WriteByte('%')
		case tokPerMille:
			b.WriteString("‰")
		case tokCurrency:
			b.WriteString(strings.Repeat("¤", tok.count))
		}
	}
	return b.String()
}

// writeQuotedLiteral quotes runs of special characters and leaves ordinary
// characters bare. Apostrophes are doubled inside and outside quotes.
func writeQuotedLiteral(b *strings.Builder, text string) {
	open := false
	for _, r := range text {
		switch {
		case r == '\'':
			b.WriteString("''")
		case strings.ContainsRune(specialPatternRunes, r):
			if !open {
				b.WriteByte('\'')
				open = true
			}
			b.WriteRune(r)
		default:
			if open {
				b.WriteByte('\'')
				open = false
			}
			b.WriteRune(r)
		}
	}
	if open {
		b.WriteByte('\'')
	}
}

// integerWidth is the number of integer placeholders shown in the pattern.
func (d digitRun) integerWidth() int {
	width := d.minInt
	if d.lead {
		width++
	}
	if primary := d.primaryGroup(); primary > 0 {
		span := primary + 1
		if secondary := d.secondaryGroup(); secondary != primary {
			span += secondary
		}
		width = max(width, span)
	}
	if d.exponent {
		width = max(width, d.maxInt)
	}
	return width
}

// isGroupBoundary reports whether a separator sits left of the digit at
// position pos, counted from 1 at the decimal point.
func (d digitRun) isGroupBoundary(pos int) bool {
	primary := d.primaryGroup()
	if primary == 0 || pos <= primary {
		return pos == primary && primary > 0
	}
	return (pos-primary)%d.secondaryGroup() == 0
}

func (d digitRun) String() string {
	var b strings.Builder
	width := d.integerWidth()
	for i := width; i > 0; i-- {
		if i > d.minInt {
			b.WriteByte('#')
		} else {
			b.WriteByte('0')
		}
		if i > 1 && d.isGroupBoundary(i-1) {
			b.WriteByte(',')
		}
	}

	if d.maxFrac > 0 || d.decimalShown {
		b.WriteByte('.')
	}
	b.WriteString(strings.Repeat("0", d.minFrac))
	b.WriteString(strings.Repeat("#", d.maxFrac-d.minFrac))

	if d.exponent {
		b.WriteByte('E')
		if d.expSign {
			b.WriteByte('+')
		}
		b.WriteString(strings.Repeat("0", d.minExp))
	}
	return b.String()
}
