package ingest

import (
	"strconv"
	"strings"
)

var severityValues = map[string]string{
	"critical":      SeverityCritical,
	"high":          SeverityHigh,
	"medium":        SeverityMedium,
	"low":           SeverityLow,
	"info":          SeverityInfo,
	"informational": SeverityInfo,
}

// NormalizeSeverity maps a free-text severity onto the canonical enumeration
// using an exact lowercase match, falling back to the source's documented
// default when unrecognized.
func NormalizeSeverity(value, fallback string) string {
	if canonical, ok := severityValues[strings.ToLower(strings.TrimSpace(value))]; ok {
		return canonical
	}
	return fallback
}

// statusKeywords are checked in order; the first substring hit wins.
var statusKeywords = []struct {
	keyword string
	status  string
}{
	{"false positive", StatusFalsePositive},
	{"fp", StatusFalsePositive},
	{"progress", StatusInProgress},
	{"assigned", StatusInProgress},
	{"working", StatusInProgress},
	{"investigat", StatusInProgress},
	{"resolved", StatusResolved},
	{"remediated", StatusResolved},
	{"fixed", StatusResolved},
	{"closed", StatusClosed},
	{"suppressed", StatusClosed},
	{"archived", StatusClosed},
}

// NormalizeStatus maps free-text status onto the canonical enumeration via
// substring keyword matching. Unmatched input defaults to OPEN.
func NormalizeStatus(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	for _, entry := range statusKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.status
		}
	}
	return StatusOpen
}

// ParseInt parses a count-like field, returning the fallback instead of an
// error on malformed input.
func ParseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// ParseFloat parses a score-like field, returning the fallback instead of an
// error on malformed input.
func ParseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

var truthyValues = map[string]bool{
	"yes":            true,
	"y":              true,
	"1":              true,
	"true":           true,
	"false positive": true,
	"fp":             true,
}

// ParseBool normalizes boolean-like vendor fields via an explicit
// allow-list; anything not on the list is false.
func ParseBool(value string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(value))]
}

// SynthesizeID derives a deterministic identifier from identity fields and
// the row's ordinal position. The ordinal keeps unrelated rows with blank
// identity fields from colliding. The 32-bit rolling hash is adequate for
// low-collision bucketing only, not for security-sensitive identity.
func SynthesizeID(parts []string, ordinal int) string {
	joined := strings.Join(parts, "|") + "|" + strconv.Itoa(ordinal)

	var h uint32
	for _, ch := range joined {
		h = h*31 + uint32(ch)
	}

	return strconv.FormatUint(uint64(h), 36)
}
