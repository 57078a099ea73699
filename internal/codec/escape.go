package codec

import "strings"

// Escape multiplies every backslash of text by factor.
//
// The factor has to match what the host strips on its way to storage: with
// a host that unslashes twice, a factor of 5 brings every backslash back to
// a single one. factor < 2 returns text unchanged.
func Escape(text string, factor int) string {
	if factor < 2 || !strings.Contains(text, `\`) {
		return text
	}

	return strings.ReplaceAll(text, `\`, strings.Repeat(`\`, factor))
}

// Unslash performs one round of slash stripping: a backslash escapes the
// character after it, so `\\` becomes `\` and `\x` becomes `x`. A lone
// trailing backslash is dropped.
func Unslash(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteByte(c)
	}

	return b.String()
}

// UnslashN applies Unslash rounds times.
func UnslashN(text string, rounds int) string {
	for range rounds {
		text = Unslash(text)
	}
	return text
}
