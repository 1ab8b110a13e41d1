package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	numfmt "github.com/goliatone/go-numfmt"
)

const (
	serverName       = "NumfmtMCP"
	formatNumberName = "format_number"
	parseNumberName  = "parse_number"
)

const formatNumberDescription = `Formats a decimal value with a locale and an optional ICU style number pattern.

Styles: decimal, currency, percent, scientific, pattern. Percent multiplies by 100.
Patterns use 0 # , . ; % ‰ ¤ E and quoted literals, e.g. "#,##0.00;(#,##0.00)".`

const parseNumberDescription = `Parses a localized number from the start of text.

Returns the value and the byte position where parsing stopped. Trailing text is
not an error; the position tells how much was consumed.`

type formatNumberParams struct {
	Value    string `json:"value" jsonschema:"decimal value such as 1234.5 or -0.25"`
	Locale   string `json:"locale,omitempty" jsonschema:"BCP 47 locale, defaults to the server locale"`
	Style    string `json:"style,omitempty" jsonschema:"decimal, currency, percent, scientific or pattern"`
	Pattern  string `json:"pattern,omitempty" jsonschema:"pattern overriding the locale default"`
	Currency string `json:"currency,omitempty" jsonschema:"ISO 4217 code for currency patterns"`
	Rounding string `json:"rounding,omitempty" jsonschema:"ceiling, floor, down, up, half_even, half_down or half_up"`
}

type parseNumberParams struct {
	Text    string `json:"text" jsonschema:"localized number text"`
	Locale  string `json:"locale,omitempty" jsonschema:"BCP 47 locale, defaults to the server locale"`
	Style   string `json:"style,omitempty" jsonschema:"decimal, currency, percent, scientific or pattern"`
	Pattern string `json:"pattern,omitempty" jsonschema:"pattern overriding the locale default"`
	Integer bool   `json:"integer,omitempty" jsonschema:"parse as a 64-bit integer"`
	Lenient bool   `json:"lenient,omitempty" jsonschema:"accept loose grouping"`
}

type tools struct {
	registry *numfmt.Registry
}

func (tl tools) formatter(locale, styleName, pattern string) (*numfmt.Formatter, error) {
	style := numfmt.StyleDecimal
	if styleName != "" {
		parsed, err := numfmt.ParseStyle(styleName)
		if err != nil {
			return nil, err
		}
		style = parsed
	}
	f, err := tl.registry.Formatter(locale, style)
	if err != nil {
		return nil, err
	}
	if pattern != "" {
		if err := f.SetPattern(pattern); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (tl tools) formatNumber(ctx context.Context, req *mcp.CallToolRequest, args formatNumberParams) (*mcp.CallToolResult, any, error) {
	f, err := tl.formatter(args.Locale, args.Style, args.Pattern)
	if err != nil {
		return nil, nil, err
	}
	if args.Currency != "" {
		if err := f.SetTextAttribute(numfmt.CurrencyCode, args.Currency); err != nil {
			return nil, nil, err
		}
	}
	if args.Rounding != "" {
		mode, err := numfmt.ParseRounding(args.Rounding)
		if err != nil {
			return nil, nil, err
		}
		if err := f.SetAttribute(numfmt.RoundingMode, int64(mode)); err != nil {
			return nil, nil, err
		}
	}

	out, err := f.FormatDecimal(args.Value)
	if err != nil {
		return nil, nil, err
	}
	return textResult(out), nil, nil
}

func (tl tools) parseNumber(ctx context.Context, req *mcp.CallToolRequest, args parseNumberParams) (*mcp.CallToolResult, any, error) {
	f, err := tl.formatter(args.Locale, args.Style, args.Pattern)
	if err != nil {
		return nil, nil, err
	}
	if args.Lenient {
		if err := f.SetAttribute(numfmt.LenientParse, 1); err != nil {
			return nil, nil, err
		}
	}

	if args.Integer {
		v, pos, err := f.ParseInt(args.Text, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %q: %w", args.Text, err)
		}
		return textResult(fmt.Sprintf("value=%d position=%d", v, pos)), nil, nil
	}

	v, pos, err := f.ParseFloat(args.Text, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %q: %w", args.Text, err)
	}
	return textResult(fmt.Sprintf("value=%v position=%d", v, pos)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func newMCPServer(registry *numfmt.Registry) *mcp.Server {
	tl := tools{registry: registry}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: formatNumberName, Description: formatNumberDescription}, tl.formatNumber)
	mcp.AddTool(server, &mcp.Tool{Name: parseNumberName, Description: parseNumberDescription}, tl.parseNumber)
	return server
}

type pathFlag []string

func (f *pathFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *pathFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	var (
		locale string
		data   pathFlag
	)
	flag.StringVar(&locale, "locale", "en-US", "default locale for tool calls without one")
	flag.Var(&data, "data", "locale data file (JSON or YAML). Repeat flag to add more.")
	flag.Parse()

	opts := []numfmt.Option{numfmt.WithDefaultLocale(locale)}
	for _, path := range data {
		opts = append(opts, numfmt.WithLocaleDataFile(path))
	}
	cfg, err := numfmt.NewConfig(opts...)
	if err != nil {
		reportError(err)
	}

	if err := newMCPServer(cfg.Registry()).Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "numfmt-mcp: %v\n", err)
	os.Exit(1)
}
