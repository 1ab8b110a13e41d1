package main

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	numfmt "github.com/goliatone/go-numfmt"
	cldr "golang.org/x/text/unicode/cldr"
)

const sampleLDML = `<ldml>
  <identity><language type="de"/></identity>
  <numbers>
    <symbols numberSystem="arab">
      <decimal>٫</decimal>
    </symbols>
    <symbols numberSystem="latn">
      <decimal>,</decimal>
      <group>.</group>
      <percentSign>%</percentSign>
      <minusSign>-</minusSign>
      <exponential>E</exponential>
    </symbols>
    <decimalFormats numberSystem="latn">
      <decimalFormatLength>
        <decimalFormat><pattern>#,##0.###</pattern></decimalFormat>
      </decimalFormatLength>
      <decimalFormatLength type="short">
        <decimalFormat><pattern type="1000" count="one">0</pattern></decimalFormat>
      </decimalFormatLength>
    </decimalFormats>
    <percentFormats numberSystem="latn">
      <percentFormatLength>
        <percentFormat><pattern>#,##0 %</pattern></percentFormat>
      </percentFormatLength>
    </percentFormats>
    <currencyFormats numberSystem="latn">
      <currencyFormatLength>
        <currencyFormat type="standard">
          <pattern>#,##0.00 ¤</pattern>
          <pattern alt="noCurrency">#,##0.00</pattern>
        </currencyFormat>
        <currencyFormat type="accounting">
          <pattern>#,##0.00 ¤;(#,##0.00 ¤)</pattern>
        </currencyFormat>
      </currencyFormatLength>
    </currencyFormats>
  </numbers>
</ldml>`

func decodeSample(t *testing.T) *cldr.LDML {
	t.Helper()
	var ldml cldr.LDML
	if err := xml.Unmarshal([]byte(sampleLDML), &ldml); err != nil {
		t.Fatalf("xml.Unmarshal: %v", err)
	}
	return &ldml
}

func TestExtractPatterns(t *testing.T) {
	patterns := extractPatterns(decodeSample(t))

	expected := map[string]string{
		"decimal":  "#,##0.###",
		"percent":  "#,##0 %",
		"currency": "#,##0.00 ¤",
	}
	if len(patterns) != len(expected) {
		t.Fatalf("patterns = %v", patterns)
	}
	for style, want := range expected {
		if patterns[style] != want {
			t.Errorf("patterns[%s] = %q, want %q", style, patterns[style], want)
		}
	}
}

func TestExtractSymbols(t *testing.T) {
	symbols := extractSymbols(decodeSample(t))

	expected := map[string]string{
		"decimal":     ",",
		"group":       ".",
		"percent":     "%",
		"minus":       "-",
		"exponential": "E",
	}
	if len(symbols) != len(expected) {
		t.Fatalf("symbols = %v", symbols)
	}
	for name, want := range expected {
		if symbols[name] != want {
			t.Errorf("symbols[%s] = %q, want %q", name, symbols[name], want)
		}
	}
}

func TestLocaleSpecs(t *testing.T) {
	spec, err := parseLocaleSpec(" pt_BR ")
	if err != nil {
		t.Fatalf("parseLocaleSpec: %v", err)
	}
	if err := normalizeLocaleSpec(&spec); err != nil {
		t.Fatalf("normalizeLocaleSpec: %v", err)
	}
	if spec.Locale != "pt-BR" || spec.Territory != "BR" {
		t.Fatalf("spec = %+v", spec)
	}

	spec, err = parseLocaleSpec("de:at")
	if err != nil {
		t.Fatalf("parseLocaleSpec: %v", err)
	}
	if spec.Locale != "de" || spec.Territory != "AT" {
		t.Fatalf("spec = %+v", spec)
	}

	spec = localeSpec{Locale: "fr"}
	if err := normalizeLocaleSpec(&spec); err != nil {
		t.Fatalf("normalizeLocaleSpec: %v", err)
	}
	if spec.Territory != "" {
		t.Fatalf("a bare language should not infer a territory, got %q", spec.Territory)
	}

	if _, err := parseLocaleSpec(":US"); err == nil {
		t.Fatal("expected error for a spec without locale")
	}
}

func TestRenderDataLoads(t *testing.T) {
	entry := buildEntry(decodeSample(t), localeSpec{Locale: "de", Territory: "CH"})
	if entry.Currency != "CHF" {
		t.Fatalf("Currency = %q", entry.Currency)
	}

	source, err := renderData(numfmt.LocaleDataFile{Locales: map[string]numfmt.LocaleEntry{"de-CH": entry}})
	if err != nil {
		t.Fatalf("renderData: %v", err)
	}

	path := filepath.Join(t.TempDir(), "locales.yaml")
	if err := os.WriteFile(path, source, 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := numfmt.LoadLocaleDataFile(path)
	if err != nil {
		t.Fatalf("LoadLocaleDataFile: %v", err)
	}

	f, err := numfmt.New("de-CH", numfmt.StyleDecimal, numfmt.WithLocaleData(numfmt.NewStaticProvider(entries)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f.FormatFloat(1234.5); got != "1.234,5" {
		t.Fatalf("FormatFloat = %q", got)
	}
}
