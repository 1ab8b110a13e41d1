package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	numfmt "github.com/goliatone/go-numfmt"
)

type cliConfig struct {
	locale      string
	style       string
	pattern     string
	parse       bool
	integer     bool
	lenient     bool
	rounding    string
	fraction    int
	showPattern bool
	dataFiles   []string
	args        []string
}

type pathFlag struct {
	items []string
}

func (f *pathFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *pathFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		reportError(err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "numfmt: %v\n", err)
	os.Exit(1)
}

func parseFlags(fs *flag.FlagSet, argv []string) (cliConfig, error) {
	var cfg cliConfig
	var data pathFlag

	fs.StringVar(&cfg.locale, "locale", "en-US", "locale whose symbols and default pattern are used")
	fs.StringVar(&cfg.style, "style", "decimal", "decimal, currency, percent, scientific or pattern")
	fs.StringVar(&cfg.pattern, "pattern", "", "pattern overriding the locale default")
	fs.BoolVar(&cfg.parse, "parse", false, "parse the arguments instead of formatting them")
	fs.BoolVar(&cfg.integer, "int", false, "parse as a 64-bit integer")
	fs.BoolVar(&cfg.lenient, "lenient", false, "accept loose grouping when parsing")
	fs.StringVar(&cfg.rounding, "rounding", "half_even", "rounding mode (ceiling, floor, down, up, half_even, half_down, half_up)")
	fs.IntVar(&cfg.fraction, "fraction", -1, "fix the number of fraction digits")
	fs.BoolVar(&cfg.showPattern, "show-pattern", false, "print the canonical pattern before the results")
	fs.Var(&data, "data", "locale data file (JSON or YAML). Repeat flag to add more.")

	if err := fs.Parse(argv); err != nil {
		return cliConfig{}, err
	}

	cfg.dataFiles = data.items
	cfg.args = fs.Args()
	if len(cfg.args) == 0 && !cfg.showPattern {
		return cliConfig{}, errors.New("at least one value is required")
	}
	return cfg, nil
}

func buildFormatter(cfg cliConfig) (*numfmt.Formatter, error) {
	style, err := numfmt.ParseStyle(cfg.style)
	if err != nil {
		return nil, err
	}
	mode, err := numfmt.ParseRounding(cfg.rounding)
	if err != nil {
		return nil, err
	}

	var opts []numfmt.Option
	for _, path := range cfg.dataFiles {
		opts = append(opts, numfmt.WithLocaleDataFile(path))
	}
	conf, err := numfmt.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	fopts := []numfmt.FormatterOption{
		numfmt.WithRounding(mode),
		numfmt.WithLenientParse(cfg.lenient),
	}
	if cfg.pattern != "" {
		fopts = append(fopts, numfmt.WithPattern(cfg.pattern))
	}
	f, err := conf.Formatter(cfg.locale, style, fopts...)
	if err != nil {
		return nil, err
	}

	if cfg.fraction >= 0 {
		if err := f.SetAttribute(numfmt.FractionDigits, int64(cfg.fraction)); err != nil {
			return nil, err
		}
	}
	if cfg.integer {
		if err := f.SetAttribute(numfmt.ParseIntOnly, 1); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func run(cfg cliConfig, out io.Writer) error {
	f, err := buildFormatter(cfg)
	if err != nil {
		return err
	}

	if cfg.showPattern {
		fmt.Fprintln(out, f.Pattern())
	}

	var errs []error
	for _, arg := range cfg.args {
		line, err := handle(f, cfg, arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", arg, err))
			continue
		}
		fmt.Fprintln(out, line)
	}
	return errors.Join(errs...)
}

func handle(f *numfmt.Formatter, cfg cliConfig, arg string) (string, error) {
	if !cfg.parse {
		return f.FormatDecimal(arg)
	}

	if cfg.integer {
		v, pos, err := f.ParseInt(arg, 0)
		if err != nil {
			return "", err
		}
		return withRemainder(fmt.Sprintf("%d", v), arg, pos), nil
	}

	v, pos, err := f.ParseFloat(arg, 0)
	if err != nil {
		return "", err
	}
	return withRemainder(fmt.Sprintf("%v", v), arg, pos), nil
}

// withRemainder appends the unparsed tail so partial parses are visible.
func withRemainder(value, arg string, pos int) string {
	if pos >= len(arg) {
		return value
	}
	return fmt.Sprintf("%s\t(stopped at byte %d, rest %q)", value, pos, arg[pos:])
}
