package rules

// AliasTable maps a canonical field name to an ordered list of acceptable
// header spellings. Aliases are matched case-insensitively as substrings,
// in priority order, so callers must list the most specific spelling first.
type AliasTable map[string][]string

// TagRule maps a keyword found in item text to a derived tag.
type TagRule struct {
	Keyword string `yaml:"keyword"`
	Tag     string `yaml:"tag"`
}

// SeverityKeywords holds the keyword buckets for the classifier fallback,
// checked in critical, high, medium, low order.
type SeverityKeywords struct {
	Critical []string `yaml:"critical"`
	High     []string `yaml:"high"`
	Medium   []string `yaml:"medium"`
	Low      []string `yaml:"low"`
}

// Set is the full immutable rule set consumed by the importers and the
// feed classifier. Built-in defaults can be partially overridden from a
// YAML file without code changes.
type Set struct {
	Falcon            AliasTable       `yaml:"falcon"`
	SecurityHub       AliasTable       `yaml:"security_hub"`
	Advisory          AliasTable       `yaml:"advisory"`
	ScorecardIssue    AliasTable       `yaml:"scorecard_issue"`
	ScorecardRating   AliasTable       `yaml:"scorecard_rating"`
	Tags              []TagRule        `yaml:"tags"`
	SeverityKeywords  SeverityKeywords `yaml:"severity_keywords"`
	ProductVocabulary []string         `yaml:"product_vocabulary"`
}
