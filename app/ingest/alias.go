package ingest

import (
	"strings"
)

// ResolveIndex finds the header position for a canonical field given its
// ordered alias list. Matching is case-insensitive: for each alias an exact
// header match is preferred, then a substring match (header contains alias),
// which tolerates vendor header drift without a schema per vendor. Aliases
// are tried in the caller-supplied priority order and the first hit across
// all aliases wins, so alias lists must be ordered from most specific to
// least specific: a short alias can still false-positive on a longer header
// that merely contains it.
func ResolveIndex(headers []string, aliases []string) (int, bool) {
	for _, alias := range aliases {
		alias = strings.ToLower(alias)

		for i, header := range headers {
			if strings.ToLower(header) == alias {
				return i, true
			}
		}
		for i, header := range headers {
			if strings.Contains(strings.ToLower(header), alias) {
				return i, true
			}
		}
	}
	return 0, false
}
