package codec

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// Encode turns value into a fragment that can sit inside a double quoted
// shortcode attribute. Plain strings are only entity-escaped; everything else
// is JSON encoded first.
func Encode(value any) (string, error) {
	if s, ok := value.(string); ok && !looksEncoded(s) {
		return html.EscapeString(s), nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingAttribute, err)
	}

	return html.EscapeString(string(raw)), nil
}

// Decode is the inverse of Encode. Fragments that do not hold a JSON object,
// array or quoted string decode to their unescaped text.
func Decode(fragment string) (any, error) {
	text := html.UnescapeString(fragment)
	if !looksEncoded(text) {
		return text, nil
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingAttribute, err)
	}

	return value, nil
}

// DecodeAtts decodes every attribute of a shortcode. Attributes that fail to
// decode are kept as their unescaped text.
func DecodeAtts(atts map[string]string) map[string]any {
	decoded := make(map[string]any, len(atts))
	for name, fragment := range atts {
		value, err := Decode(fragment)
		if err != nil {
			decoded[name] = html.UnescapeString(fragment)
			continue
		}
		decoded[name] = value
	}

	return decoded
}

func looksEncoded(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 2 {
		return false
	}

	first, last := t[0], t[len(t)-1]
	return (first == '{' && last == '}') ||
		(first == '[' && last == ']') ||
		(first == '"' && last == '"')
}
