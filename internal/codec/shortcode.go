package codec

import "regexp"

// Shortcode is one opening tag found in a document body.
type Shortcode struct {
	Tag   string
	Atts  map[string]string
	Start int
	End   int
}

var (
	shortcodePattern = regexp.MustCompile(`\[([A-Za-z][\w-]*)((?:\s+[\w-]+="[^"]*")*)\s*/?\]`)
	attributePattern = regexp.MustCompile(`([\w-]+)="([^"]*)"`)
)

// ParseShortcodes returns the opening tags of text in document order with
// their raw (still encoded) attributes. Closing tags are skipped.
func ParseShortcodes(text string) []Shortcode {
	matches := shortcodePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	shortcodes := make([]Shortcode, 0, len(matches))
	for _, m := range matches {
		sc := Shortcode{
			Tag:   text[m[2]:m[3]],
			Atts:  make(map[string]string),
			Start: m[0],
			End:   m[1],
		}
		for _, a := range attributePattern.FindAllStringSubmatch(text[m[4]:m[5]], -1) {
			sc.Atts[a[1]] = a[2]
		}
		shortcodes = append(shortcodes, sc)
	}

	return shortcodes
}
