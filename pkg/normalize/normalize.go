// Package normalize provides pure text helpers for the extraction
// pipeline: evidence-line cleanup and evidence-locator construction.
// All functions are stateless and safe for concurrent use.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// enumPrefix matches a leading "1. " style enumeration prefix on an
// evidence line.
var enumPrefix = regexp.MustCompile(`^\s*\d+\.\s*`)

// quoteRunes are the quotation characters stripped from the very start
// and end of an evidence line, one each at most.
const quoteRunes = `'"“”`

// CleanEvidenceLine normalizes a single evidence line returned by a
// backend: the enumeration prefix is dropped, non-breaking spaces become
// ordinary spaces, one surrounding quote pair is removed and whitespace
// is trimmed. Cleaning an already-clean line is a no-op.
func CleanEvidenceLine(line string) string {
	cleaned := enumPrefix.ReplaceAllString(line, "")

	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ")

	if r := firstRune(cleaned); r != 0 && strings.ContainsRune(quoteRunes, r) {
		cleaned = cleaned[len(string(r)):]
	}
	if r := lastRune(cleaned); r != 0 && strings.ContainsRune(quoteRunes, r) {
		cleaned = cleaned[:len(cleaned)-len(string(r))]
	}

	return strings.TrimSpace(cleaned)
}

// Locator builds an evidence locator: the source URL with a text-anchor
// fragment pointing at the evidence passage. Returns "" when the URL is
// empty.
func Locator(url, evidence string) string {
	if url == "" {
		return ""
	}
	return url + "#:~:text=" + EncodeFragment(evidence)
}

// EncodeFragment prepares evidence text for use in a text-anchor
// fragment. Unicode is NFKC-normalized, dash variants fold to the ASCII
// hyphen, the result is percent-encoded, the quote/ellipsis separator
// patterns produced by multi-sentence evidence become a single "&text="
// join marker, and remaining hyphens are encoded explicitly so they
// survive fragment parsing.
func EncodeFragment(text string) string {
	text = norm.NFKC.String(text)

	// Dash variants to ASCII hyphen
	text = strings.NewReplacer("–", "-", "—", "-", "‑", "-").Replace(text)

	text = percentEncode(text)

	for _, sep := range []string{"%27%27...%27", "%22%22...%22", "%22...%22", "%27...%27", "..."} {
		text = strings.ReplaceAll(text, sep, "&text=")
	}

	return strings.ReplaceAll(text, "-", "%2D")
}

// percentEncode encodes every byte except RFC 3986 unreserved
// characters and the percent sign itself.
func percentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == '%' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
