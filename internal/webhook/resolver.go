package webhook

import (
	"encoding/json"
	"strings"
)

// candidateKeys is the content-key priority at every level of the search.
// Order matters and is part of the backend contract.
var candidateKeys = []string{"output", "response", "text", "message", "content"}

// Resolve extracts the best available assistant text from a raw response
// body. The backend is a low-control automation platform that may return a
// single JSON document, a JSON array, newline-delimited JSON, or bare text,
// so every parse failure degrades to a less structured strategy instead of
// propagating. Resolve never fails; an empty result means the caller should
// substitute its canned unavailability message.
func Resolve(raw string) string {
	trimmed := strings.TrimLeft(strings.TrimPrefix(raw, "\uFEFF"), " \t\r\n")

	// Whole-document JSON first: the most structured signal wins.
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var doc interface{}
		if err := json.Unmarshal([]byte(trimmed), &doc); err == nil {
			if content := extractContent(doc); content != "" {
				return content
			}
		}
	}

	// Newline-delimited JSON: each line parsed independently, content
	// concatenated in line order.
	if lines := splitLines(trimmed); len(lines) > 1 {
		if content := resolveLines(lines); content != "" {
			return content
		}
	}

	// Nothing structured recovered; show the body as-is.
	return raw
}

// itemLine is the shape the backend streams when it emits partial output.
type itemLine struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func resolveLines(lines []string) string {
	var b strings.Builder

	for _, line := range lines {
		var doc interface{}
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			// An unparseable line only counts when nothing structured has
			// been accumulated yet.
			if b.Len() == 0 {
				b.WriteString(line)
			}
			continue
		}

		var item itemLine
		if err := json.Unmarshal([]byte(line), &item); err == nil && item.Type == "item" {
			b.WriteString(item.Content)
			continue
		}

		if content := extractContent(doc); content != "" {
			b.WriteString(content)
		}
	}

	return b.String()
}

// extractContent walks a decoded JSON value depth-first looking for the
// highest-priority content string. Arrays prefer an "output" string on each
// element before falling back to the generic per-key search; objects check
// the candidate keys in order and then unwrap a json/data envelope.
func extractContent(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val

	case []interface{}:
		// Fast path: first element carrying an output string wins.
		for _, elem := range val {
			if obj, ok := elem.(map[string]interface{}); ok {
				if s, ok := obj["output"].(string); ok && s != "" {
					return s
				}
			}
		}
		for _, elem := range val {
			if content := extractContent(elem); content != "" {
				return content
			}
		}

	case map[string]interface{}:
		for _, key := range candidateKeys {
			child, ok := val[key]
			if !ok {
				continue
			}
			if s, ok := child.(string); ok {
				if s != "" {
					return s
				}
				continue
			}
			if content := extractContent(child); content != "" {
				return content
			}
		}
		// Envelope unwrap for wrapped payloads like {"json": {...}}.
		for _, key := range []string{"json", "data"} {
			if child, ok := val[key]; ok {
				if content := extractContent(child); content != "" {
					return content
				}
			}
		}
	}

	return ""
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
