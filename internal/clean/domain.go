package clean

import (
	"regexp"
	"strings"
)

// hostPattern validates a cleaned domain: dot-separated alphanumeric
// labels with internal hyphens, ending in a TLD of at least two letters.
var hostPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*(?:\.[a-z0-9]+(?:-[a-z0-9]+)*)*\.[a-z]{2,}$`)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9 ]`)

// CleanDomain normalizes a free-text domain to lowercase host.tld form:
// scheme and "www." prefixes stripped, embedded whitespace removed, path
// suffix cut, ".com" appended when no dot survives. Values that still fail
// host validation are dropped ("") rather than guessed at. Idempotent on
// already-valid domains.
func CleanDomain(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.Join(strings.Fields(s), "")

	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}

	if !strings.ContainsRune(s, '.') {
		s += ".com"
	}

	if !hostPattern.MatchString(s) {
		return ""
	}
	return s
}

// FallbackDomain synthesizes a deterministic domain from a company name:
// lowercase, special characters stripped, whitespace runs collapsed to
// single hyphens, ".com" appended. Enriched records must never leave the
// pipeline with an empty domain, so names that reduce to nothing get a
// sentinel value.
func FallbackDomain(companyName string) string {
	slug := strings.ToLower(strings.TrimSpace(companyName))
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		return "unknown-company.com"
	}
	return slug + ".com"
}
