// Package cases defines the source-document model consumed by the
// extraction pipeline. A Case is produced by the external document
// acquisition collaborator (or re-listed from a prior snapshot) and is
// immutable once created.
package cases

import (
	"regexp"
	"strings"
)

// Case is a single judgment document with its identity metadata and,
// when freshly acquired, the full judgment text.
type Case struct {
	// Title is the case name as published.
	Title string `yaml:"title" json:"title"`

	// UniqueKey deterministically identifies the case within and across
	// snapshots. See Key.
	UniqueKey string `yaml:"unique_key,omitempty" json:"unique_key,omitempty"`

	// URL is where the judgment can be read. Used for evidence locators.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Citation is the legal citation, e.g. "[2024] SGHCF 12".
	Citation string `yaml:"citation" json:"citation"`

	// JudgmentDate is the decision date as published.
	JudgmentDate string `yaml:"judgment_date" json:"judgment_date"`

	// Text is the full judgment text. Empty for cases re-listed from a
	// prior snapshot; such cases cannot be re-extracted.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}

// bracketedYear matches the leading "[2024] " style citation year.
var bracketedYear = regexp.MustCompile(`\[\d{4}\]\s*`)

// Key builds the deterministic unique key for a case: the title joined
// with the citation stripped of its bracketed year. Identical across
// runs for the same judgment regardless of acquisition order.
func Key(title, citation string) string {
	clean := bracketedYear.ReplaceAllString(citation, "")
	return strings.TrimSpace(title + " " + clean)
}

// WithKey returns a copy of the case with UniqueKey populated from its
// title and citation when not already set.
func (c Case) WithKey() Case {
	if c.UniqueKey == "" {
		c.UniqueKey = Key(c.Title, c.Citation)
	}
	return c
}

// Extractable reports whether the case carries judgment text and can be
// run through the extraction backends.
func (c Case) Extractable() bool {
	return strings.TrimSpace(c.Text) != ""
}
