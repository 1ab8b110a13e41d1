package numfmt

import (
	"errors"
	"testing"
)

func TestCompilePatternCanonical(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "decimal default", pattern: "#,##0.###", want: "#,##0.###"},
		{name: "extra hashes dropped", pattern: "####00.00##", want: "#00.00##"},
		{name: "plain zeros", pattern: "0.00", want: "0.00"},
		{name: "indian grouping", pattern: "#,##,##0.00", want: "#,##,##0.00"},
		{name: "equal groups collapse", pattern: "#,###,##0", want: "#,##0"},
		{name: "redundant negative collapses", pattern: "#,##0.###;-#,##0.###", want: "#,##0.###"},
		{name: "explicit negative keeps digits of positive", pattern: "(#,##0.###)};{#", want: "(#,##0.###)};{#,##0.###"},
		{name: "accounting", pattern: "#,##0.00;(#,##0.00)", want: "#,##0.00;(#,##0.00)"},
		{name: "scientific", pattern: "0.###E0", want: "0.###E0"},
		{name: "engineering with sign", pattern: "##0.##E+00", want: "##0.##E+00"},
		{name: "quoted special", pattern: "'#'0", want: "'#'0"},
		{name: "apostrophe literal", pattern: "0 'o''clock'", want: "0 o''clock"},
		{name: "special run shares quotes", pattern: "'-¤'0", want: "'-¤'0"},
		{name: "apostrophe inside quoted run", pattern: "'-''¤'0", want: "'-''¤'0"},
		{name: "quoted at sign stays quoted", pattern: "'@'0", want: "'@'0"},
		{name: "currency", pattern: "¤#,##0.00", want: "¤#,##0.00"},
		{name: "intl currency", pattern: "¤¤ 0.00", want: "¤¤ 0.00"},
		{name: "percent", pattern: "0%", want: "0%"},
		{name: "permille", pattern: "0.0‰", want: "0.0‰"},
		{name: "decimal always shown", pattern: "#.", want: "#."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern)
			if err != nil {
				t.Fatalf("CompilePattern(%q) error: %v", tt.pattern, err)
			}
			got := p.String()
			if got != tt.want {
				t.Errorf("CompilePattern(%q).String() = %q; want %q", tt.pattern, got, tt.want)
			}

			again, err := CompilePattern(got)
			if err != nil {
				t.Fatalf("CompilePattern(%q) error on canonical form: %v", got, err)
			}
			if again.String() != got {
				t.Errorf("canonical form not stable: %q -> %q", got, again.String())
			}
			if !again.Equal(p) {
				t.Errorf("recompiled %q is not Equal to the original", got)
			}
		})
	}
}

func TestCompilePatternErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		offset  int
	}{
		{name: "empty", pattern: "", offset: 0},
		{name: "no digits", pattern: "abc", offset: 3},
		{name: "two decimal separators", pattern: "0.0.0", offset: 3},
		{name: "hash after zero", pattern: "#0#", offset: 2},
		{name: "zero after hash in fraction", pattern: "0.#0", offset: 3},
		{name: "comma before decimal", pattern: "0,.0", offset: 2},
		{name: "trailing comma", pattern: "#,##0,", offset: 6},
		{name: "consecutive commas", pattern: "0,,0", offset: 2},
		{name: "comma in fraction", pattern: "0,0.0,0", offset: 5},
		{name: "padding", pattern: "0*x", offset: 1},
		{name: "significant digits", pattern: "@@", offset: 0},
		{name: "rounding increment", pattern: "1.5", offset: 0},
		{name: "increment digit before suffix", pattern: "#9gt", offset: 1},
		{name: "second separator", pattern: "0;0;0", offset: 3},
		{name: "unterminated quote", pattern: "'abc", offset: 0},
		{name: "exponent with grouping", pattern: "#,##0E0", offset: 5},
		{name: "two percent signs", pattern: "%0%", offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePattern(tt.pattern)
			if err == nil {
				t.Fatalf("CompilePattern(%q) = %q; want error", tt.pattern, p.String())
			}
			if !errors.Is(err, ErrInvalidPattern) {
				t.Fatalf("CompilePattern(%q) error %v does not wrap ErrInvalidPattern", tt.pattern, err)
			}
			var perr *PatternError
			if !errors.As(err, &perr) {
				t.Fatalf("CompilePattern(%q) error %T is not a *PatternError", tt.pattern, err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("CompilePattern(%q) offset = %d; want %d (%s)", tt.pattern, perr.Offset, tt.offset, perr.Reason)
			}
			if perr.Pattern != tt.pattern {
				t.Errorf("PatternError.Pattern = %q; want %q", perr.Pattern, tt.pattern)
			}
		})
	}
}

func TestMustCompilePatternPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompilePattern to panic")
		}
	}()
	MustCompilePattern("0.0.0")
}

func TestPatternEqual(t *testing.T) {
	a := MustCompilePattern("#,##0.00")
	b := MustCompilePattern("#,##0.00;-#,##0.00")
	c := MustCompilePattern("#,##0.00;(#,##0.00)")

	if !a.Equal(b) {
		t.Errorf("%q should equal %q", a, b)
	}
	if a.Equal(c) {
		t.Errorf("%q should not equal %q", a, c)
	}
	var nilPattern *Pattern
	if nilPattern.Equal(a) || !nilPattern.Equal(nil) {
		t.Error("nil pattern equality is wrong")
	}
}

func TestPatternDigitRun(t *testing.T) {
	p := MustCompilePattern("#,##,##0.00#")
	run := p.digits
	if run.minInt != 1 || run.maxInt != maxIntegerDigitsLimit {
		t.Errorf("integer digits = %d..%d; want 1..%d", run.minInt, run.maxInt, maxIntegerDigitsLimit)
	}
	if run.minFrac != 2 || run.maxFrac != 3 {
		t.Errorf("fraction digits = %d..%d; want 2..3", run.minFrac, run.maxFrac)
	}
	if run.primaryGroup() != 3 || run.secondaryGroup() != 2 {
		t.Errorf("grouping = %d/%d; want 3/2", run.primaryGroup(), run.secondaryGroup())
	}

	sci := MustCompilePattern("##0.0E+00").digits
	if !sci.exponent || !sci.expSign || sci.minExp != 2 || !sci.engineering() {
		t.Errorf("scientific digit run = %+v", sci)
	}
}
