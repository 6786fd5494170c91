package overview

import (
	"encoding/json"

	"github.com/yanqian/vat-directory/pkg/metrics"
)

// Config configures the overview generator.
type Config struct {
	Model       string
	Temperature float32
	MaxWords    int
}

// Request is the payload accepted by the generate endpoint. SearchResults
// may be a JSON encoded string or any structured JSON value.
type Request struct {
	URL           string          `json:"url"`
	SearchResults json.RawMessage `json:"searchResults"`
}

// Response carries the generated markdown overview.
type Response struct {
	Overview   string              `json:"overview"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// SearchResults is either Parsed or Raw.
type SearchResults interface {
	isSearchResults()
}

// Parsed holds search results that are valid JSON.
type Parsed struct {
	JSON json.RawMessage
}

// Raw holds a string payload that did not decode as JSON. It is kept verbatim.
type Raw struct {
	Text string
}

func (Parsed) isSearchResults() {}
func (Raw) isSearchResults()    {}
