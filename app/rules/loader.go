package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the built-in defaults, with any sections present in the
// optional override file replacing their built-in counterparts wholesale.
// An empty path loads defaults only.
func Load(path string) (*Set, error) {
	set := Defaults()

	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	merge(set, &override)

	if err := validate(set); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	return set, nil
}

// merge replaces whole sections. Per-entry merging would make it impossible
// to remove a default alias from an override file.
func merge(set, override *Set) {
	if len(override.Falcon) > 0 {
		set.Falcon = override.Falcon
	}
	if len(override.SecurityHub) > 0 {
		set.SecurityHub = override.SecurityHub
	}
	if len(override.Advisory) > 0 {
		set.Advisory = override.Advisory
	}
	if len(override.ScorecardIssue) > 0 {
		set.ScorecardIssue = override.ScorecardIssue
	}
	if len(override.ScorecardRating) > 0 {
		set.ScorecardRating = override.ScorecardRating
	}
	if len(override.Tags) > 0 {
		set.Tags = override.Tags
	}
	if len(override.SeverityKeywords.Critical) > 0 || len(override.SeverityKeywords.High) > 0 ||
		len(override.SeverityKeywords.Medium) > 0 || len(override.SeverityKeywords.Low) > 0 {
		set.SeverityKeywords = override.SeverityKeywords
	}
	if len(override.ProductVocabulary) > 0 {
		set.ProductVocabulary = override.ProductVocabulary
	}
}

func validate(set *Set) error {
	tables := map[string]AliasTable{
		"falcon":           set.Falcon,
		"security_hub":     set.SecurityHub,
		"advisory":         set.Advisory,
		"scorecard_issue":  set.ScorecardIssue,
		"scorecard_rating": set.ScorecardRating,
	}

	for name, table := range tables {
		for field, aliases := range table {
			if len(aliases) == 0 {
				return fmt.Errorf("alias table %s: field %s has no aliases", name, field)
			}
			for _, alias := range aliases {
				if alias == "" {
					return fmt.Errorf("alias table %s: field %s has an empty alias", name, field)
				}
			}
		}
	}

	for i, rule := range set.Tags {
		if rule.Keyword == "" || rule.Tag == "" {
			return fmt.Errorf("tag rule at index %d must have both keyword and tag", i)
		}
	}

	return nil
}
