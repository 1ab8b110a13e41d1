package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	numfmt "github.com/goliatone/go-numfmt"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

type localeSpec struct {
	Locale    string
	Territory string
}

type generatorConfig struct {
	out      string
	cldrPath string
	locales  []localeSpec
}

var emptyRegion language.Region

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "numfmt-data: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	flag.StringVar(&cfg.out, "out", "locales.generated.yaml", "path to the generated locale data file")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects a main/ subdirectory)")
	flag.Var(&localeList, "locale", "locale to generate (optionally include territory using locale:REGION). Repeat flag to add more.")

	flag.Parse()

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}

	for _, spec := range localeList.items {
		parsed, err := parseLocaleSpec(spec)
		if err != nil {
			return generatorConfig{}, err
		}
		cfg.locales = append(cfg.locales, parsed)
	}

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	file := numfmt.LocaleDataFile{Locales: make(map[string]numfmt.LocaleEntry, len(cfg.locales))}
	for _, spec := range cfg.locales {
		if err := normalizeLocaleSpec(&spec); err != nil {
			return err
		}

		ldml := findLDML(data, spec.Locale)
		if ldml == nil {
			return fmt.Errorf("build entry for %s: missing LDML data", spec.Locale)
		}
		file.Locales[spec.Locale] = buildEntry(ldml, spec)
	}

	source, err := renderData(file)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.out, source, 0o644); err != nil {
		return err
	}

	// Fail if the generated file does not pass the runtime validation.
	if _, err := numfmt.LoadLocaleDataFile(cfg.out); err != nil {
		return fmt.Errorf("generated data is invalid: %w", err)
	}
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func parseLocaleSpec(input string) (localeSpec, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return localeSpec{}, errors.New("empty locale value")
	}

	spec := localeSpec{}
	if strings.Contains(input, ":") {
		parts := strings.SplitN(input, ":", 2)
		spec.Locale = strings.TrimSpace(parts[0])
		spec.Territory = strings.ToUpper(strings.TrimSpace(parts[1]))
	} else {
		spec.Locale = input
	}

	if spec.Locale == "" {
		return localeSpec{}, fmt.Errorf("invalid locale spec %q", input)
	}
	return spec, nil
}

func normalizeLocaleSpec(spec *localeSpec) error {
	if spec == nil {
		return errors.New("nil locale spec")
	}

	spec.Locale = strings.ReplaceAll(strings.TrimSpace(spec.Locale), "_", "-")
	if spec.Locale == "" {
		return errors.New("empty locale identifier")
	}

	if spec.Territory != "" {
		spec.Territory = strings.ToUpper(spec.Territory)
		return nil
	}

	// Attempt to derive territory from locale region.
	if tag, err := language.Parse(spec.Locale); err == nil {
		if region, conf := tag.Region(); region != emptyRegion && conf == language.Exact {
			spec.Territory = strings.ToUpper(region.String())
			return nil
		}
	}

	spec.Territory = ""
	return nil
}

func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	for {
		if candidate == "" {
			break
		}
		if ldml := data.RawLDML(candidate); ldml != nil {
			return ldml
		}
		if idx := strings.LastIndex(candidate, "_"); idx >= 0 {
			candidate = candidate[:idx]
			continue
		}
		break
	}
	return data.RawLDML("root")
}

func buildEntry(ldml *cldr.LDML, spec localeSpec) numfmt.LocaleEntry {
	entry := numfmt.LocaleEntry{
		Patterns: extractPatterns(ldml),
		Symbols:  extractSymbols(ldml),
	}
	if spec.Territory != "" {
		if region, err := language.ParseRegion(spec.Territory); err == nil {
			if unit, ok := currency.FromRegion(region); ok {
				entry.Currency = unit.String()
			}
		}
	}
	if len(entry.Patterns) == 0 {
		entry.Patterns = nil
	}
	if len(entry.Symbols) == 0 {
		entry.Symbols = nil
	}
	return entry
}

func latin(numberSystem string) bool {
	return numberSystem == "" || numberSystem == "latn"
}

func defaultVariant(c cldr.Common) bool {
	return c.Alt == "" && (c.Type == "" || c.Type == "standard")
}

// extractPatterns reads the default-length latn patterns for every style the
// data file format knows about.
func extractPatterns(ldml *cldr.LDML) map[string]string {
	patterns := make(map[string]string)
	if ldml == nil || ldml.Numbers == nil {
		return patterns
	}
	numbers := ldml.Numbers

	for _, set := range numbers.DecimalFormats {
		if !latin(set.NumberSystem) {
			continue
		}
		for _, length := range set.DecimalFormatLength {
			if length.Type != "" {
				continue
			}
			for _, f := range length.DecimalFormat {
				if pattern := firstData(f.Pattern); pattern != "" {
					patterns[numfmt.StyleDecimal.String()] = pattern
				}
			}
		}
	}

	for _, set := range numbers.CurrencyFormats {
		if !latin(set.NumberSystem) {
			continue
		}
		for _, length := range set.CurrencyFormatLength {
			if length.Type != "" {
				continue
			}
			for _, f := range length.CurrencyFormat {
				if !defaultVariant(f.Common) {
					continue
				}
				if pattern := firstData(f.Pattern); pattern != "" {
					patterns[numfmt.StyleCurrency.String()] = pattern
				}
			}
		}
	}

	for _, set := range numbers.PercentFormats {
		if !latin(set.NumberSystem) {
			continue
		}
		for _, length := range set.PercentFormatLength {
			if length.Type != "" {
				continue
			}
			for _, f := range length.PercentFormat {
				if pattern := firstData(f.Pattern); pattern != "" {
					patterns[numfmt.StylePercent.String()] = pattern
				}
			}
		}
	}

	for _, set := range numbers.ScientificFormats {
		if !latin(set.NumberSystem) {
			continue
		}
		for _, length := range set.ScientificFormatLength {
			if length.Type != "" {
				continue
			}
			for _, f := range length.ScientificFormat {
				if pattern := firstData(f.Pattern); pattern != "" {
					patterns[numfmt.StyleScientific.String()] = pattern
				}
			}
		}
	}

	for style, pattern := range patterns {
		if _, err := numfmt.CompilePattern(pattern); err != nil {
			delete(patterns, style)
		}
	}
	return patterns
}

// extractSymbols maps the latn symbol set onto the data file symbol names.
func extractSymbols(ldml *cldr.LDML) map[string]string {
	symbols := make(map[string]string)
	if ldml == nil || ldml.Numbers == nil {
		return symbols
	}

	for _, set := range ldml.Numbers.Symbols {
		if !latin(set.NumberSystem) {
			continue
		}
		fields := []struct {
			sym  numfmt.Symbol
			list any
		}{
			{numfmt.SymDecimal, set.Decimal},
			{numfmt.SymGroup, set.Group},
			{numfmt.SymPercent, set.PercentSign},
			{numfmt.SymPlus, set.PlusSign},
			{numfmt.SymMinus, set.MinusSign},
			{numfmt.SymExponential, set.Exponential},
			{numfmt.SymPerMille, set.PerMille},
			{numfmt.SymInfinity, set.Infinity},
			{numfmt.SymNaN, set.Nan},
			{numfmt.SymMonetaryDecimal, set.CurrencyDecimal},
			{numfmt.SymMonetaryGroup, set.CurrencyGroup},
		}
		for _, field := range fields {
			if value := firstData(field.list); value != "" {
				symbols[field.sym.String()] = value
			}
		}
	}
	return symbols
}

type dataElement interface {
	Data() string
}

var commonType = reflect.TypeOf(cldr.Common{})

// firstData returns the text of the first non-alternate element in a CLDR
// element slice. The element types are anonymous structs, so the slice is
// walked through reflection.
func firstData(list any) string {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice {
		return ""
	}
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() != reflect.Pointer || elem.IsNil() {
			continue
		}
		if common := commonOf(elem.Elem()); common != nil && common.Alt != "" {
			continue
		}
		if d, ok := elem.Interface().(dataElement); ok {
			if data := d.Data(); data != "" {
				return data
			}
		}
	}
	return ""
}

func commonOf(v reflect.Value) *cldr.Common {
	if v.Type() == commonType {
		return v.Addr().Interface().(*cldr.Common)
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	field := v.FieldByName("Common")
	if !field.IsValid() || field.Type() != commonType {
		return nil
	}
	return field.Addr().Interface().(*cldr.Common)
}

func renderData(file numfmt.LocaleDataFile) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Code generated by numfmt-data. DO NOT EDIT.\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encode locale data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
