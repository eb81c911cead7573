// Package slug derives URL-safe campaign identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackPrefix starts every generated slug.
const FallbackPrefix = "campaign-"

var (
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Make normalizes candidate into a slug: lower case, runs of anything other
// than a-z and 0-9 become a single hyphen, no hyphen at either end. A blank
// candidate, or one with nothing left after normalizing, yields Fallback().
// Make(Make(s)) == Make(s).
func Make(candidate string) string {
	if strings.TrimSpace(candidate) == "" {
		return Fallback()
	}
	s := normalize(candidate)
	if s == "" {
		return Fallback()
	}
	return s
}

// Fallback returns "campaign-" followed by 8 random hex characters.
func Fallback() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return FallbackPrefix + id[:8]
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}

func normalize(s string) string {
	// "Ação" -> "Acao" before lower-casing, so accented letters survive.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
