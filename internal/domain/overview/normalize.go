package overview

import (
	"bytes"
	"encoding/json"
)

// normalizeSearchResults converts the request payload into the tagged union.
// It reports false when the payload is missing or falsy (null, "", false, 0).
func normalizeSearchResults(raw json.RawMessage) (SearchResults, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, false
	}
	switch v := value.(type) {
	case nil:
		return nil, false
	case bool:
		if !v {
			return nil, false
		}
	case float64:
		if v == 0 {
			return nil, false
		}
	case string:
		if v == "" {
			return nil, false
		}
		if json.Valid([]byte(v)) {
			return Parsed{JSON: json.RawMessage(v)}, true
		}
		return Raw{Text: v}, true
	}
	return Parsed{JSON: append(json.RawMessage(nil), trimmed...)}, true
}

// render produces the prompt representation of the search results.
func render(results SearchResults) string {
	switch r := results.(type) {
	case Parsed:
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimSpace(r.JSON), "", "  "); err != nil {
			return string(r.JSON)
		}
		return buf.String()
	case Raw:
		return r.Text
	default:
		return ""
	}
}
