package types

// MatchStatus classifies a file path after rule evaluation.
type MatchStatus string

const (
	StatusMatched  MatchStatus = "matched"
	StatusExcluded MatchStatus = "excluded"
	StatusSkipped  MatchStatus = "skipped"
)

// RuleMatch records one rule that matched a path, along with any variables
// the pattern produced (named capture groups, relative_path, etc.).
type RuleMatch struct {
	Rule      string
	Variables map[string]string
}

// MatchResult is the classification of a single file path. A path is either
// excluded (no rules evaluated), matched by one or more rules in definition
// order, or skipped.
type MatchResult struct {
	Path    string
	Status  MatchStatus
	Matches []RuleMatch
}

// RuleNames returns the names of the matching rules in definition order.
func (r MatchResult) RuleNames() []string {
	names := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		names = append(names, m.Rule)
	}
	return names
}
