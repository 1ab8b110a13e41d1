package main

import (
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	numfmt "github.com/goliatone/go-numfmt"
)

func startTestServer(t *testing.T) *mcp.ClientSession {
	t.Helper()

	cfg, err := numfmt.NewConfig(numfmt.WithDefaultLocale("en-US"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	t1, t2 := mcp.NewInMemoryTransports()
	server := newMCPServer(cfg.Registry())
	client := mcp.NewClient(&mcp.Implementation{Name: "test client"}, nil)

	serverSession, err := server.Connect(t.Context(), t1, nil)
	if err != nil {
		t.Fatalf("Failed to connect server: %v", err)
	}
	clientSession, err := client.Connect(t.Context(), t2, nil)
	if err != nil {
		t.Fatalf("Failed to connect client: %v", err)
	}

	t.Cleanup(func() {
		if err := clientSession.Close(); err != nil {
			t.Fatalf("Failed to close client session: %v", err)
		}
		if err := serverSession.Wait(); err != nil {
			t.Fatalf("Server session failed: %v", err)
		}
	})

	return clientSession
}

func callTool(t *testing.T, client *mcp.ClientSession, params *mcp.CallToolParams) *mcp.CallToolResult {
	t.Helper()
	res, err := client.CallTool(t.Context(), params)
	if err != nil {
		t.Fatalf("client.CallTool failed: %v", err)
	}
	return res
}

func expectTextContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("Incorrect number of content blocks:\n- want: 1\n-  got: %d", len(res.Content))
	}
	textContent, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Incorrect content block type:\n- want: *mcp.TextContent\n-  got: %T", res.Content[0])
	}
	return textContent.Text
}

func TestFormatNumberTool(t *testing.T) {
	client := startTestServer(t)

	tests := []struct {
		name string
		args formatNumberParams
		want string
	}{
		{
			name: "default locale decimal",
			args: formatNumberParams{Value: "1234567.891"},
			want: "1,234,567.891",
		},
		{
			name: "german decimal",
			args: formatNumberParams{Value: "1234.5", Locale: "de"},
			want: "1.234,5",
		},
		{
			name: "custom pattern",
			args: formatNumberParams{Value: "-1234.5", Pattern: "#,##0.00;(#,##0.00)"},
			want: "(1,234.50)",
		},
		{
			name: "currency",
			args: formatNumberParams{Value: "1234.5", Style: "currency"},
			want: "$1,234.50",
		},
		{
			name: "percent",
			args: formatNumberParams{Value: "0.5", Style: "percent"},
			want: "50%",
		},
		{
			name: "rounding",
			args: formatNumberParams{Value: "1.5", Pattern: "0", Rounding: "down"},
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, client, &mcp.CallToolParams{Name: formatNumberName, Arguments: tt.args})
			if res.IsError {
				t.Fatalf("Expected tool call to succeed, but it failed. Full result: %#v", res)
			}
			if got := expectTextContent(t, res); got != tt.want {
				t.Errorf("format_number(%+v) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestFormatNumberToolErrors(t *testing.T) {
	client := startTestServer(t)

	tests := []struct {
		name string
		args formatNumberParams
	}{
		{name: "bad value", args: formatNumberParams{Value: "12abc"}},
		{name: "bad pattern", args: formatNumberParams{Value: "1", Pattern: "0.0.0"}},
		{name: "bad style", args: formatNumberParams{Value: "1", Style: "ordinal"}},
		{name: "bad currency", args: formatNumberParams{Value: "1", Style: "currency", Currency: "US"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, client, &mcp.CallToolParams{Name: formatNumberName, Arguments: tt.args})
			if !res.IsError {
				t.Fatalf("expected an error, got %q", expectTextContent(t, res))
			}
		})
	}
}

func TestParseNumberTool(t *testing.T) {
	client := startTestServer(t)

	tests := []struct {
		name string
		args parseNumberParams
		want string
	}{
		{
			name: "grouped",
			args: parseNumberParams{Text: "1,234.5"},
			want: "value=1234.5 position=7",
		},
		{
			name: "partial",
			args: parseNumberParams{Text: "12345 apples"},
			want: "value=12345 position=5",
		},
		{
			name: "integer",
			args: parseNumberParams{Text: "-42", Integer: true},
			want: "value=-42 position=3",
		},
		{
			name: "percent",
			args: parseNumberParams{Text: "5%", Style: "percent"},
			want: "value=0.05 position=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, client, &mcp.CallToolParams{Name: parseNumberName, Arguments: tt.args})
			if res.IsError {
				t.Fatalf("Expected tool call to succeed, but it failed. Full result: %#v", res)
			}
			if got := expectTextContent(t, res); got != tt.want {
				t.Errorf("parse_number(%+v) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseNumberToolError(t *testing.T) {
	client := startTestServer(t)

	res := callTool(t, client, &mcp.CallToolParams{
		Name:      parseNumberName,
		Arguments: parseNumberParams{Text: "abc"},
	})
	if !res.IsError {
		t.Fatal("expected an error, but got none")
	}
	if text := expectTextContent(t, res); !strings.Contains(text, "parse failure") {
		t.Errorf("error text = %q; want it to mention the parse failure", text)
	}
}
