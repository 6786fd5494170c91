package tokens

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates how many tokens a prompt will consume.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// NewCounter loads the named BPE encoding. When the encoding cannot be
// loaded the counter falls back to a character based estimate.
func NewCounter(encoding string, logger *slog.Logger) *Counter {
	if strings.TrimSpace(encoding) == "" {
		return &Counter{}
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		if logger != nil {
			logger.Warn("token encoding unavailable, using estimate", "encoding", encoding, "error", err)
		}
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c == nil || c.enc == nil {
		return estimate(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// estimate uses the common four characters per token rule of thumb.
func estimate(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}
