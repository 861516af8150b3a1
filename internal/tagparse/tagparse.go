// Package tagparse scans free-form capture text for /tag tokens referencing
// known categories and projects. It produces presentation spans only; it
// never mutates state.
package tagparse

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is one run of text. Tag spans cover a full "/name" token; Known
// distinguishes tokens matching a known tag from fallback "/word" tokens.
type Span struct {
	Text  string
	Tag   bool
	Known bool
}

// Parse splits text into plain and tag spans. At every slash the known tags
// are tried longest-first, so a multi-word project name is matched whole
// rather than losing to a shorter tag that prefixes it. A slash followed by
// a run of non-whitespace that matches no known tag still becomes a
// (fallback) tag span.
func Parse(text string, tags []string) []Span {
	byLength := sortedByLength(tags)

	var spans []Span
	plain := strings.Builder{}
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		if text[i] != '/' {
			_, size := utf8.DecodeRuneInString(text[i:])
			plain.WriteString(text[i : i+size])
			i += size
			continue
		}

		if tag, ok := matchTag(text[i+1:], byLength); ok {
			flush()
			spans = append(spans, Span{Text: "/" + tag, Tag: true, Known: true})
			i += 1 + len(tag)
			continue
		}

		if word := leadingWord(text[i+1:]); word != "" {
			flush()
			spans = append(spans, Span{Text: "/" + word, Tag: true})
			i += 1 + len(word)
			continue
		}

		plain.WriteByte('/')
		i++
	}
	flush()
	return spans
}

// BackwardDelete applies a single backward-delete at the given rune cursor.
// When the cursor sits immediately after a complete known /tag token the
// whole token is removed atomically; otherwise one rune is removed. Returns
// the new text and cursor.
func BackwardDelete(text string, cursor int, tags []string) (string, int) {
	runes := []rune(text)
	if cursor <= 0 || cursor > len(runes) {
		return text, cursor
	}

	head := string(runes[:cursor])
	for _, tag := range sortedByLength(tags) {
		token := "/" + tag
		if strings.HasSuffix(head, token) {
			start := cursor - utf8.RuneCountInString(token)
			return string(runes[:start]) + string(runes[cursor:]), start
		}
	}

	return string(runes[:cursor-1]) + string(runes[cursor:]), cursor - 1
}

// CurrentToken returns the partial "/prefix" token the rune cursor sits in,
// for autocompletion. ok is false when the cursor is not inside a slash
// token.
func CurrentToken(text string, cursor int) (prefix string, start int, ok bool) {
	runes := []rune(text)
	if cursor < 0 || cursor > len(runes) {
		return "", 0, false
	}
	// Scan back to the nearest slash on the same line. Spaces do not end
	// the token because known tags may contain spaces ("Korea Trip").
	for i := cursor - 1; i >= 0; i-- {
		if runes[i] == '/' {
			return string(runes[i+1 : cursor]), i, true
		}
		if runes[i] == '\n' {
			break
		}
	}
	return "", 0, false
}

// Suggest returns the known tags matching a partial token prefix,
// case-insensitively, preserving tag order.
func Suggest(prefix string, tags []string) []string {
	if prefix == "" {
		return append([]string{}, tags...)
	}
	lower := strings.ToLower(prefix)
	var out []string
	for _, tag := range tags {
		if strings.HasPrefix(strings.ToLower(tag), lower) {
			out = append(out, tag)
		}
	}
	return out
}

func matchTag(rest string, byLength []string) (string, bool) {
	for _, tag := range byLength {
		if strings.HasPrefix(rest, tag) {
			return tag, true
		}
	}
	return "", false
}

// leadingWord returns the run of non-whitespace characters at the start of
// s.
func leadingWord(s string) string {
	end := len(s)
	for i, r := range s {
		if unicode.IsSpace(r) {
			end = i
			break
		}
	}
	return s[:end]
}

func sortedByLength(tags []string) []string {
	sorted := append([]string{}, tags...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return len(sorted[a]) > len(sorted[b])
	})
	return sorted
}
