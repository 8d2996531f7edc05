package filter

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Highlight wraps the first case-insensitive occurrence of search in text
// with mark. The search term is matched literally. Text without a match, or
// an empty search, is returned unchanged.
func Highlight(text, search string, mark func(string) string) string {
	start, end, ok := Locate(text, search)
	if !ok {
		return text
	}
	return text[:start] + mark(text[start:end]) + text[end:]
}

// Locate returns the byte range of the first case-insensitive occurrence of
// search in text.
func Locate(text, search string) (start, end int, ok bool) {
	if search == "" || text == "" {
		return 0, 0, false
	}
	fold := cases.Fold()
	want := fold.String(search)
	if !strings.Contains(fold.String(text), want) {
		return 0, 0, false
	}

	// Folding can change byte lengths, and one rune may fold to several
	// (ß to ss), so a match can begin inside the fold of its first rune.
	// Grow a window rune by rune from each start position until its folded
	// form holds the term at an offset within that first rune.
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		lead := len(fold.String(text[i : i+size]))
		for j := i; j < len(text); {
			_, n := utf8.DecodeRuneInString(text[j:])
			j += n
			got := fold.String(text[i:j])
			if at := strings.Index(got, want); at >= 0 && at < lead {
				return i, j, true
			}
			if len(got) >= lead+len(want) {
				break
			}
		}
		i += size
	}
	return 0, 0, false
}
