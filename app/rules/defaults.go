package rules

// Defaults returns the built-in rule set. Vendor header drift is handled by
// editing this data (or overriding it via the rules file), not code.
func Defaults() *Set {
	return &Set{
		Falcon: AliasTable{
			"id":          {"detect id", "detection id", "composite id", "id"},
			"hostname":    {"hostname", "host name", "host", "computer name"},
			"username":    {"username", "user name", "user"},
			"tactic":      {"tactic"},
			"technique":   {"technique"},
			"severity":    {"max severity", "severity"},
			"status":      {"status", "state"},
			"description": {"detect description", "description"},
			"detected_at": {"detect date", "detect time", "first behavior", "timestamp", "date"},
		},
		SecurityHub: AliasTable{
			"id":                {"finding id", "finding arn", "arn", "id"},
			"title":             {"title", "finding title"},
			"severity":          {"severity label", "severity"},
			"status":            {"workflow status", "workflow state", "status"},
			"resource_type":     {"resource type"},
			"resource_id":       {"resource id", "resource"},
			"region":            {"region"},
			"account_id":        {"aws account", "account id", "account"},
			"compliance_status": {"compliance status", "compliance"},
			"description":       {"description"},
		},
		Advisory: AliasTable{
			"id":           {"advisory id", "bulletin id", "id"},
			"title":        {"title", "subject", "name"},
			"source":       {"source", "vendor", "origin"},
			"severity":     {"severity", "priority", "risk"},
			"status":       {"status", "state"},
			"url":          {"url", "link", "reference"},
			"description":  {"description", "summary", "details"},
			"cves":         {"cve ids", "cves", "cve"},
			"published_on": {"published date", "published", "release date", "date"},
		},
		ScorecardIssue: AliasTable{
			"id":         {"issue id", "id"},
			"factor":     {"factor name", "factor"},
			"issue_type": {"issue type", "issue type title", "type"},
			"severity":   {"issue severity", "severity"},
			"status":     {"issue status", "status"},
			"count":      {"issue count", "count", "total"},
		},
		ScorecardRating: AliasTable{
			"factor":      {"factor name", "factor"},
			"grade":       {"grade", "letter grade"},
			"score":       {"score", "factor score"},
			"reported_on": {"report date", "date generated", "generated", "date"},
		},
		Tags: []TagRule{
			{Keyword: "zero-day", Tag: "Zero-Day"},
			{Keyword: "zero day", Tag: "Zero-Day"},
			{Keyword: "0-day", Tag: "Zero-Day"},
			{Keyword: "ransomware", Tag: "Ransomware"},
			{Keyword: "phishing", Tag: "Phishing"},
			{Keyword: "apt", Tag: "APT"},
			{Keyword: "malware", Tag: "Malware"},
			{Keyword: "botnet", Tag: "Botnet"},
			{Keyword: "ddos", Tag: "DDoS"},
			{Keyword: "supply chain", Tag: "Supply-Chain"},
			{Keyword: "data breach", Tag: "Data-Breach"},
			{Keyword: "exploit", Tag: "Exploit"},
			{Keyword: "patch", Tag: "Patch"},
			{Keyword: "vulnerability", Tag: "Vulnerability"},
		},
		SeverityKeywords: SeverityKeywords{
			Critical: []string{"critical", "actively exploited", "emergency", "urgent"},
			High:     []string{"high severity", "severe", "dangerous", "remote code execution", "rce"},
			Medium:   []string{"medium severity", "moderate", "elevated"},
			Low:      []string{"low severity", "minor", "informational"},
		},
		ProductVocabulary: []string{
			"Windows", "Linux", "macOS", "Android", "iOS",
			"Chrome", "Firefox", "Edge", "Safari",
			"Microsoft Exchange", "Microsoft Office", "SharePoint", "Outlook",
			"VMware", "Citrix", "Fortinet", "FortiGate", "Cisco", "Palo Alto",
			"Apache", "Nginx", "OpenSSL", "OpenSSH", "WordPress", "Jenkins",
			"Kubernetes", "Docker", "GitLab", "Confluence", "Jira",
			"Oracle", "MySQL", "PostgreSQL", "MongoDB", "Redis",
			"Adobe Acrobat", "Java", "Log4j",
		},
	}
}
