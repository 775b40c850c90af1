package clean

import (
	"regexp"
	"strconv"
	"strings"
)

// Extraction patterns for free-text employee counts, tried in this exact
// order. The first match wins, so ambiguous strings resolve by position in
// the list rather than by specificity.
var (
	reBareCount = regexp.MustCompile(`^(\d+)\+?$`)
	reGreater   = regexp.MustCompile(`^>(\d+)(k?)$`)
	reApprox    = regexp.MustCompile(`^~(\d+)$`)
	reRange     = regexp.MustCompile(`^(\d+)-(\d+)$`)
	reGrouped   = regexp.MustCompile(`^(\d{1,3}),(\d{3})$`)
	reThousands = regexp.MustCompile(`(\d+)k`)
	reAnyDigits = regexp.MustCompile(`(\d+)`)
)

// ClassifyEmployeeSize maps a free-text employee-count expression
// ("100000+", "> 10000", "~67000", "12,500", "11") to one of the eight
// canonical buckets. Returns "" when no count can be extracted; that is a
// missing field, not an error.
func ClassifyEmployeeSize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	// Embedded whitespace carries no meaning in any supported form.
	s = strings.Join(strings.Fields(s), "")
	plain := strings.ReplaceAll(s, ",", "")

	if m := reBareCount.FindStringSubmatch(plain); m != nil {
		return bucketFor(mustAtoi(m[1]))
	}
	if m := reGreater.FindStringSubmatch(plain); m != nil {
		n := mustAtoi(m[1])
		if m[2] == "k" {
			n *= 1000
		}
		return bucketFor(n)
	}
	if m := reApprox.FindStringSubmatch(plain); m != nil {
		return bucketFor(mustAtoi(m[1]))
	}
	if m := reRange.FindStringSubmatch(plain); m != nil {
		// Ranges classify by their upper bound.
		return bucketFor(mustAtoi(m[2]))
	}
	if m := reGrouped.FindStringSubmatch(s); m != nil {
		return bucketFor(mustAtoi(m[1])*1000 + mustAtoi(m[2]))
	}
	if m := reThousands.FindStringSubmatch(plain); m != nil {
		return bucketFor(mustAtoi(m[1]) * 1000)
	}
	if m := reAnyDigits.FindStringSubmatch(plain); m != nil {
		return bucketFor(mustAtoi(m[1]))
	}
	return ""
}

// bucketFor maps an extracted count to its bucket by inclusive upper
// bounds. Total over non-negative counts.
func bucketFor(n int) string {
	switch {
	case n <= 10:
		return "1-10"
	case n <= 50:
		return "11-50"
	case n <= 200:
		return "51-200"
	case n <= 500:
		return "201-500"
	case n <= 1000:
		return "501-1 000"
	case n <= 5000:
		return "1 001-5 000"
	case n <= 10000:
		return "5 001-10 000"
	default:
		return "10 000+"
	}
}

// mustAtoi converts digit-only regex captures. Overflow-length captures
// saturate to the top bucket rather than failing the row.
func mustAtoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 10001
	}
	return n
}
