package ingest

import (
	"strings"
)

// SplitFields splits one physical CSV line into fields, honoring
// double-quoted fields (a comma inside quotes is not a separator) and
// stripping one layer of surrounding quotes. Unterminated quotes are
// tolerated: the quoted state simply persists to the end of the line.
// A trailing comma yields a trailing empty field. Multi-line quoted
// fields are not supported; each physical line is one row.
func SplitFields(line string) []string {
	return splitFields(line, false)
}

// SplitFieldsNested additionally tracks bracket and brace nesting depth so
// embedded JSON-like values containing commas survive as one field.
func SplitFieldsNested(line string) []string {
	return splitFields(line, true)
}

func splitFields(line string, nested bool) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	depth := 0

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case nested && !inQuotes && (ch == '[' || ch == '{'):
			depth++
			current.WriteRune(ch)
		case nested && !inQuotes && (ch == ']' || ch == '}'):
			if depth > 0 {
				depth--
			}
			current.WriteRune(ch)
		case ch == ',' && !inQuotes && depth == 0:
			fields = append(fields, unquote(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, unquote(current.String()))

	return fields
}

// unquote trims whitespace and strips one layer of surrounding quotes,
// collapsing doubled quotes inside a quoted field.
func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		field = field[1 : len(field)-1]
		field = strings.ReplaceAll(field, `""`, `"`)
	}
	return field
}

// SplitLines splits raw file content into physical lines, dropping blank
// lines and tolerating CRLF endings.
func SplitLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
