package numfmt

import (
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokPlus
	tokMinus
	tokPercent
	tokPerMille
	tokCurrency
)

// affixToken is either literal text or a role resolved through the symbol table.
type affixToken struct {
	kind  tokenKind
	text  string
	count int
}

type affix []affixToken

func literalAffix(text string) affix {
	if text == "" {
		return nil
	}
	return affix{{kind: tokLiteral, text: text}}
}

func (a affix) appendToken(tok affixToken) affix {
	if tok.kind == tokLiteral {
		if tok.text == "" {
			return a
		}
		if n := len(a); n > 0 && a[n-1].kind == tokLiteral {
			out := append(affix(nil), a...)
			out[n-1].text += tok.text
			return out
		}
	}
	return append(a, tok)
}

func (a affix) concat(b affix) affix {
	out := append(affix(nil), a...)
	for _, tok := range b {
		out = out.appendToken(tok)
	}
	return out
}

func (a affix) equal(b affix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (a affix) startsWith(kind tokenKind) bool {
	return len(a) > 0 && a[0].kind == kind
}

func (a affix) endsWith(kind tokenKind) bool {
	return len(a) > 0 && a[len(a)-1].kind == kind
}

func (a affix) has(kind tokenKind) bool {
	for _, tok := range a {
		if tok.kind == kind {
			return true
		}
	}
	return false
}

// digitRun describes the digits between prefix and suffix.
type digitRun struct {
	minInt       int
	maxInt       int
	minFrac      int
	maxFrac      int
	grouping     int32
	secondary    int32
	groupingUsed bool
	decimalShown bool
	// lead displays one optional '#' ahead of the required integer digits.
	lead     bool
	exponent bool
	minExp   int
	expSign  bool
}

// primaryGroup returns the effective primary grouping size, or 0 when
// grouping does not apply.
func (d digitRun) primaryGroup() int {
	if !d.groupingUsed || d.grouping <= 0 || d.grouping > maxIntegerDigitsLimit {
		return 0
	}
	return int(d.grouping)
}

// secondaryGroup returns the size of the groups left of the primary one.
func (d digitRun) secondaryGroup() int {
	primary := d.primaryGroup()
	if primary == 0 {
		return 0
	}
	if d.secondary <= 0 || d.secondary > maxIntegerDigitsLimit {
		return primary
	}
	return int(d.secondary)
}

// engineering reports whether the exponent is kept a multiple of maxInt.
func (d digitRun) engineering() bool {
	return d.exponent && d.maxInt > d.minInt && d.maxInt > 1
}

// Pattern is a compiled number pattern. The digit run is shared by both
// subpatterns; an implicit negative subpattern is the minus role followed by
// the positive prefix, with the positive suffix.
type Pattern struct {
	posPrefix   affix
	posSuffix   affix
	negPrefix   affix
	negSuffix   affix
	explicitNeg bool
	digits      digitRun
}

// CompilePattern parses an ICU style decimal pattern.
func CompilePattern(src string) (*Pattern, error) {
	s := &patternScanner{src: src}
	p := &Pattern{}

	prefix, err := s.affix(true)
	if err != nil {
		return nil, err
	}
	digits, err := s.digitRun()
	if err != nil {
		return nil, err
	}
	suffix, err := s.affix(false)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoles(prefix, suffix); err != nil {
		return nil, err
	}
	p.posPrefix, p.posSuffix, p.digits = prefix, suffix, digits

	if s.peek() == ';' {
		s.pos++
		start := s.pos
		negPrefix, err := s.affix(true)
		if err != nil {
			return nil, err
		}
		if _, err := s.digitRun(); err != nil {
			return nil, err
		}
		negSuffix, err := s.affix(false)
		if err != nil {
			return nil, err
		}
		if s.peek() == ';' {
			return nil, s.fail("more than one subpattern separator")
		}
		if err := s.checkRolesFrom(start, negPrefix, negSuffix); err != nil {
			return nil, err
		}
		p.negPrefix, p.negSuffix, p.explicitNeg = negPrefix, negSuffix, true
		p.collapseNegative()
	}

	return p, nil
}

// MustCompilePattern is like CompilePattern but panics on error. It is meant
// for package level pattern constants.
func MustCompilePattern(src string) *Pattern {
	p, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

// derivedNegative returns the affixes used when the negative subpattern is implicit.
func (p *Pattern) derivedNegative() (affix, affix) {
	prefix := affix{{kind: tokMinus}}.concat(p.posPrefix)
	return prefix, append(affix(nil), p.posSuffix...)
}

func (p *Pattern) negativeAffixes() (affix, affix) {
	if p.explicitNeg {
		return p.negPrefix, p.negSuffix
	}
	return p.derivedNegative()
}

// materializeNegative turns an implicit negative subpattern into an explicit one.
func (p *Pattern) materializeNegative() {
	if p.explicitNeg {
		return
	}
	p.negPrefix, p.negSuffix = p.derivedNegative()
	p.explicitNeg = true
}

func (p *Pattern) collapseNegative() {
	if !p.explicitNeg {
		return
	}
	prefix, suffix := p.derivedNegative()
	if prefix.equal(p.negPrefix) && suffix.equal(p.negSuffix) {
		p.negPrefix, p.negSuffix, p.explicitNeg = nil, nil, false
	}
}

func (p *Pattern) hasRole(kind tokenKind) bool {
	if p.posPrefix.has(kind) || p.posSuffix.has(kind) {
		return true
	}
	return p.explicitNeg && (p.negPrefix.has(kind) || p.negSuffix.has(kind))
}

// Equal reports whether two compiled patterns describe the same formatting.
func (p *Pattern) Equal(q *Pattern) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.digits == q.digits &&
		p.explicitNeg == q.explicitNeg &&
		p.posPrefix.equal(q.posPrefix) &&
		p.posSuffix.equal(q.posSuffix) &&
		p.negPrefix.equal(q.negPrefix) &&
		p.negSuffix.equal(q.negSuffix)
}

func (p *Pattern) clone() *Pattern {
	if p == nil {
		return nil
	}
	c := *p
	c.posPrefix = append(affix(nil), p.posPrefix...)
	c.posSuffix = append(affix(nil), p.posSuffix...)
	c.negPrefix = append(affix(nil), p.negPrefix...)
	c.negSuffix = append(affix(nil), p.negSuffix...)
	return &c
}

type patternScanner struct {
	src string
	pos int
}

func (s *patternScanner) fail(reason string) error {
	return &PatternError{Pattern: s.src, Offset: s.pos, Reason: reason}
}

func (s *patternScanner) peek() rune {
	if s.pos >= len(s.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

func isDigitRunStart(r rune) bool {
	return r == '#' || r == ',' || r == '.' || (r >= '0' && r <= '9')
}

// affix reads prefix or suffix tokens up to the digit run (prefix), or up to
// the subpattern separator (suffix).
func (s *patternScanner) affix(prefix bool) (affix, error) {
	var out affix
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if isDigitRunStart(r) {
			if prefix {
				return out, nil
			}
			return nil, s.fail("digit pattern character outside the digit run")
		}

		switch r {
		case ';':
			if prefix {
				return nil, s.fail("missing digits")
			}
			return out, nil
		case '\'':
			text, err := s.quoted()
			if err != nil {
				return nil, err
			}
			out = out.appendToken(affixToken{kind: tokLiteral, text: text})
			continue
		case '+':
			out = out.appendToken(affixToken{kind: tokPlus})
		case '-':
			out = out.appendToken(affixToken{kind: tokMinus})
		case '%':
			out = out.appendToken(affixToken{kind: tokPercent})
		case '‰':
			out = out.appendToken(affixToken{kind: tokPerMille})
		case '¤':
			count := 0
			for strings.HasPrefix(s.src[s.pos:], "¤") {
				s.pos += len("¤")
				count++
			}
			out = out.appendToken(affixToken{kind: tokCurrency, count: count})
			continue
		case '*':
			return nil, s.fail("padding is not supported")
		case '@':
			return nil, s.fail("significant digit patterns are not supported")
		default:
			out = out.appendToken(affixToken{kind: tokLiteral, text: string(r)})
		}
		s.pos += size
	}
	if prefix {
		return nil, s.fail("missing digits")
	}
	return out, nil
}

// quoted reads a quoted literal starting at an apostrophe. A doubled
// apostrophe is a literal apostrophe both inside and outside quotes.
func (s *patternScanner) quoted() (string, error) {
	start := s.pos
	s.pos++
	if strings.HasPrefix(s.src[s.pos:], "'") {
		s.pos++
		return "'", nil
	}

	var b strings.Builder
	for s.pos < len(s.src) {
		if s.src[s.pos] == '\'' {
			if strings.HasPrefix(s.src[s.pos+1:], "'") {
				b.WriteByte('\'')
				s.pos += 2
				continue
			}
			s.pos++
			return b.String(), nil
		}
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		b.WriteRune(r)
		s.pos += size
	}
	s.pos = start
	return "", s.fail("unterminated quote")
}

func (s *patternScanner) digitRun() (digitRun, error) {
	var (
		run                      digitRun
		intHash, intZero         int
		fracZero, fracHash       int
		inFrac, sawComma         bool
		sinceComma, betweenComma int
		prev                     byte
	)

loop:
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '#':
			if inFrac {
				fracHash++
			} else {
				if intZero > 0 {
					return run, s.fail("'#' after '0' in the integer part")
				}
				intHash++
				sinceComma++
			}
		case c == '0':
			if inFrac {
				if fracHash > 0 {
					return run, s.fail("'0' after '#' in the fraction")
				}
				fracZero++
			} else {
				intZero++
				sinceComma++
			}
		case c >= '1' && c <= '9':
			return run, s.fail("rounding increments are not supported")
		case c == ',':
			if inFrac {
				return run, s.fail("grouping separator in the fraction")
			}
			if prev == ',' {
				return run, s.fail("consecutive grouping separators")
			}
			if sawComma {
				betweenComma = sinceComma
			}
			sawComma = true
			sinceComma = 0
		case c == '.':
			if inFrac {
				return run, s.fail("more than one decimal separator")
			}
			if prev == ',' {
				return run, s.fail("grouping separator before the decimal separator")
			}
			inFrac = true
		case c == 'E':
			if !s.exponentAhead() {
				break loop
			}
			if prev == ',' {
				return run, s.fail("grouping separator at the end of the integer part")
			}
			if sawComma {
				return run, s.fail("grouping is not allowed with an exponent")
			}
			s.pos++
			if s.peek() == '+' {
				run.expSign = true
				s.pos++
			}
			for s.pos < len(s.src) && s.src[s.pos] == '0' {
				run.minExp++
				s.pos++
			}
			run.exponent = true
			break loop
		default:
			break loop
		}
		prev = c
		s.pos++
	}

	if prev == ',' {
		return run, s.fail("grouping separator at the end of the integer part")
	}
	if intHash+intZero+fracZero+fracHash == 0 {
		return run, s.fail("missing digits")
	}

	run.minInt = intZero
	run.maxInt = maxIntegerDigitsLimit
	if run.exponent {
		run.maxInt = intHash + intZero
	}
	run.minFrac = fracZero
	run.maxFrac = fracZero + fracHash
	run.decimalShown = inFrac && run.maxFrac == 0
	run.lead = intHash > 0
	if sawComma {
		run.groupingUsed = true
		run.grouping = int32(sinceComma)
		if betweenComma > 0 && betweenComma != sinceComma {
			run.secondary = int32(betweenComma)
		}
	}
	return run, nil
}

func (s *patternScanner) exponentAhead() bool {
	rest := s.src[s.pos+1:]
	rest = strings.TrimPrefix(rest, "+")
	return strings.HasPrefix(rest, "0")
}

func (s *patternScanner) checkRoles(prefix, suffix affix) error {
	return s.checkRolesFrom(0, prefix, suffix)
}

func (s *patternScanner) checkRolesFrom(start int, prefix, suffix affix) error {
	var percent, currency int
	for _, a := range []affix{prefix, suffix} {
		for _, tok := range a {
			switch tok.kind {
			case tokPercent, tokPerMille:
				percent++
			case tokCurrency:
				currency++
			}
		}
	}
	if percent > 1 {
		return &PatternError{Pattern: s.src, Offset: start, Reason: "more than one percent or permille sign"}
	}
	if currency > 1 {
		return &PatternError{Pattern: s.src, Offset: start, Reason: "more than one currency sign"}
	}
	return nil
}
