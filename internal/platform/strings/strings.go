// Package strings provides text helpers for interactive input and source cells
package strings

import (
	std "strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// chains are stateful so each caller borrows its own
var canonPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // zero-width and BOM
			width.Fold,
		)
	},
}

// Canon repairs UTF-8, applies NFKC, strips format characters, folds fullwidth
// forms and collapses runs of whitespace to a single space
func Canon(s string) string {
	if s == "" {
		return ""
	}
	s = std.ToValidUTF8(s, "")
	tr := canonPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	canonPool.Put(tr)
	if err != nil {
		out = s
	}
	return std.Join(std.Fields(out), " ")
}

// Title canonicalizes s and title-cases every word ("new york city" -> "New York City")
func Title(s string) string {
	return cases.Title(language.English).String(Canon(s))
}

// EqualFold compares two strings after canonicalization using Unicode case folding
func EqualFold(a, b string) bool {
	return cases.Fold().String(Canon(a)) == cases.Fold().String(Canon(b))
}

// Blank reports whether s has no non-whitespace content
func Blank(s string) bool { return std.TrimSpace(s) == "" }

// Ptr returns a pointer to s, or nil if s is blank
func Ptr(s string) *string {
	if Blank(s) {
		return nil
	}
	return &s
}
