package rss

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

var (
	cveRe  = regexp.MustCompile(`(?i)CVE-\d{4}-\d{4,}`)
	cvssRe = regexp.MustCompile(`(?i)cvss(?:\s*v?\d(?:\.\d)?)?[\s:]*(?:(?:base\s+)?score\s*(?:of)?)?[\s:]*(\d{1,2}(?:\.\d+)?)`)

	// Phrase patterns that usually precede a product name in advisory prose.
	productPhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)affect(?:s|ing|ed)\s+([A-Za-z][A-Za-z0-9 ._\-]{1,40}?)(?:\s+(?:version|prior|before|up to)|[.,;:)]|$)`),
		regexp.MustCompile(`(?i)(?:vulnerability|flaw|bug)\s+in\s+([A-Za-z][A-Za-z0-9 ._\-]{1,40}?)(?:\s+(?:version|prior|before)|[.,;:)]|$)`),
		regexp.MustCompile(`(?i)for\s+([A-Z][A-Za-z0-9._\-]{1,30})\s+version`),
	}
)

const maxProductNameLen = 40

// Classifier derives severity, tags, CVEs, products and a CVSS score from
// an item's title and description. The rule data is injected at
// construction, never read from globals.
type Classifier struct {
	rules *rules.Set
}

func NewClassifier(rs *rules.Set) *Classifier {
	return &Classifier{rules: rs}
}

func (c *Classifier) Run(item Item) Classification {
	text := item.Title + " " + item.Description
	lower := strings.ToLower(text)

	result := Classification{
		CVEs:      extractCVEs(text),
		CVSSScore: extractCVSS(text),
		Products:  c.extractProducts(text, lower),
		Tags:      c.deriveTags(lower),
	}
	result.Severity = c.classifySeverity(lower, result)

	return result
}

// extractCVEs scans for CVE identifiers, uppercased and de-duplicated in
// first-seen order.
func extractCVEs(text string) []string {
	matches := cveRe.FindAllString(text, -1)

	seen := make(map[string]bool)
	cves := make([]string, 0, len(matches))
	for _, match := range matches {
		cve := strings.ToUpper(match)
		if !seen[cve] {
			seen[cve] = true
			cves = append(cves, cve)
		}
	}

	return cves
}

// extractCVSS finds the first numeric score following a CVSS label.
// Scores outside the 0-10 scale are ignored.
func extractCVSS(text string) *float64 {
	for _, match := range cvssRe.FindAllStringSubmatch(text, -1) {
		score, err := strconv.ParseFloat(match[1], 64)
		if err != nil || score < 0 || score > 10 {
			continue
		}
		return &score
	}
	return nil
}

// extractProducts unions phrase-pattern captures with hits from the known
// product vocabulary. Captures longer than maxProductNameLen are discarded
// so a greedy match never swallows a whole sentence.
func (c *Classifier) extractProducts(text, lower string) []string {
	seen := make(map[string]bool)
	var products []string

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > maxProductNameLen {
			return
		}
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			products = append(products, name)
		}
	}

	for _, re := range productPhraseRes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			add(match[1])
		}
	}

	for _, product := range c.rules.ProductVocabulary {
		if strings.Contains(lower, strings.ToLower(product)) {
			add(product)
		}
	}

	return products
}

// deriveTags evaluates every keyword rule independently, so an item can
// carry multiple tags.
func (c *Classifier) deriveTags(lower string) []string {
	seen := make(map[string]bool)
	var tags []string

	for _, rule := range c.rules.Tags {
		if containsKeyword(lower, rule.Keyword) && !seen[rule.Tag] {
			seen[rule.Tag] = true
			tags = append(tags, rule.Tag)
		}
	}

	return tags
}

// containsKeyword reports whether keyword occurs in text on word boundaries.
// Plain substring matching would let short keywords like "apt" fire inside
// "laptop" or "adapter".
func containsKeyword(text, keyword string) bool {
	for start := 0; ; start++ {
		i := strings.Index(text[start:], keyword)
		if i < 0 {
			return false
		}
		start += i
		end := start + len(keyword)
		if (start == 0 || !isWordChar(text[start-1])) && (end == len(text) || !isWordChar(text[end])) {
			return true
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// classifySeverity walks the decision chain in priority order: CVSS
// thresholds, then forcing tags, then CVE count, then keyword buckets.
func (c *Classifier) classifySeverity(lower string, result Classification) string {
	if result.CVSSScore != nil {
		score := *result.CVSSScore
		switch {
		case score >= 9:
			return ingest.SeverityCritical
		case score >= 7:
			return ingest.SeverityHigh
		case score >= 4:
			return ingest.SeverityMedium
		case score >= 0.1:
			return ingest.SeverityLow
		}
	}

	for _, tag := range result.Tags {
		if tag == "Zero-Day" || tag == "APT" || tag == "Ransomware" {
			return ingest.SeverityCritical
		}
	}

	if len(result.CVEs) >= 3 {
		return ingest.SeverityHigh
	}
	if len(result.CVEs) >= 1 {
		return ingest.SeverityMedium
	}

	buckets := []struct {
		severity string
		keywords []string
	}{
		{ingest.SeverityCritical, c.rules.SeverityKeywords.Critical},
		{ingest.SeverityHigh, c.rules.SeverityKeywords.High},
		{ingest.SeverityMedium, c.rules.SeverityKeywords.Medium},
		{ingest.SeverityLow, c.rules.SeverityKeywords.Low},
	}
	for _, bucket := range buckets {
		for _, keyword := range bucket.keywords {
			if containsKeyword(lower, keyword) {
				return bucket.severity
			}
		}
	}

	return ingest.SeverityInfo
}
