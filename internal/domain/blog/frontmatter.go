package blog

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Only YAML blocks between --- lines count as frontmatter; yaml.v3 keeps dates typed.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// splitFrontmatter separates a leading YAML block from the markdown body.
// Documents without a block, or with an unterminated one, return empty data
// and the whole document as body. Invalid YAML is reported with the document
// kept intact.
func splitFrontmatter(raw []byte) (map[string]any, string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	data := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &data, yamlFormat)
	if err != nil {
		return map[string]any{}, string(raw), fmt.Errorf("parse frontmatter: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, string(body), nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
