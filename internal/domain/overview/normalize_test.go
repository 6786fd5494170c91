package overview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSearchResults(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   SearchResults
		wantOK bool
	}{
		{name: "absent", raw: "", wantOK: false},
		{name: "null", raw: "null", wantOK: false},
		{name: "empty string", raw: `""`, wantOK: false},
		{name: "false", raw: "false", wantOK: false},
		{name: "zero", raw: "0", wantOK: false},
		{
			name:   "json encoded string",
			raw:    `"{\"title\":\"Acme VAT\",\"items\":[1,2]}"`,
			want:   Parsed{JSON: json.RawMessage(`{"title":"Acme VAT","items":[1,2]}`)},
			wantOK: true,
		},
		{
			name:   "plain string kept verbatim",
			raw:    `"Acme helps founders file VAT returns"`,
			want:   Raw{Text: "Acme helps founders file VAT returns"},
			wantOK: true,
		},
		{
			name:   "structured object",
			raw:    ` {"results":[{"title":"a"}]} `,
			want:   Parsed{JSON: json.RawMessage(`{"results":[{"title":"a"}]}`)},
			wantOK: true,
		},
		{
			name:   "array",
			raw:    `[1,2,3]`,
			want:   Parsed{JSON: json.RawMessage(`[1,2,3]`)},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := normalizeSearchResults(json.RawMessage(tt.raw))
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		results SearchResults
		want    string
	}{
		{
			name:    "parsed is pretty printed in source order",
			results: Parsed{JSON: json.RawMessage(`{"z":1,"a":["x"]}`)},
			want:    "{\n  \"z\": 1,\n  \"a\": [\n    \"x\"\n  ]\n}",
		},
		{
			name:    "raw is unchanged",
			results: Raw{Text: "not json {"},
			want:    "not json {",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, render(tt.results))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()
	prompt := buildPrompt("https://acme.example", Raw{Text: "raw context"}, 200)
	require.Contains(t, prompt, "content from https://acme.example, write")
	require.Contains(t, prompt, "keep it under 200 words")
	require.Contains(t, prompt, "- Target audience or use cases")
	require.True(t, len(prompt) > len("raw context"))
	require.Equal(t, "raw context", prompt[len(prompt)-len("raw context"):])
}
