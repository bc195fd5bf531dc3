package types

// PatternType identifies how a rule's pattern string is interpreted.
type PatternType string

const (
	PatternTypePrefix PatternType = "prefix" // literal string prefix match
	PatternTypeGlob   PatternType = "glob"   // shell-style wildcard match
	PatternTypeRegex  PatternType = "regex"  // regular expression match
)

// IsValid reports whether the pattern type is one of the supported kinds.
func (p PatternType) IsValid() bool {
	return p == PatternTypePrefix || p == PatternTypeGlob || p == PatternTypeRegex
}

func (p PatternType) String() string {
	return string(p)
}

// SourcePattern describes which source-repository files a rule applies to.
type SourcePattern struct {
	Type    PatternType `yaml:"type" json:"type"`
	Pattern string      `yaml:"pattern" json:"pattern"`
	// Optional regex patterns that suppress a match for this rule only.
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty" json:"exclude_patterns,omitempty"`
}

// CommitStrategyType identifies how matched files land in a target repo.
type CommitStrategyType string

const (
	CommitStrategyDirect      CommitStrategyType = "direct"
	CommitStrategyPullRequest CommitStrategyType = "pull_request"
)

// IsValid reports whether the commit strategy type is supported.
func (c CommitStrategyType) IsValid() bool {
	return c == CommitStrategyDirect || c == CommitStrategyPullRequest
}

// CommitStrategy configures how copied files are committed to a target.
// Only Type is validated; the message fields are free-form templates.
type CommitStrategy struct {
	Type          CommitStrategyType `yaml:"type,omitempty" json:"type,omitempty"`
	CommitMessage string             `yaml:"commit_message,omitempty" json:"commit_message,omitempty"`
	PRTitle       string             `yaml:"pr_title,omitempty" json:"pr_title,omitempty"`
	PRBody        string             `yaml:"pr_body,omitempty" json:"pr_body,omitempty"`
	AutoMerge     bool               `yaml:"auto_merge,omitempty" json:"auto_merge,omitempty"`
}

// Target is one destination for files matched by a rule.
type Target struct {
	Repo           string          `yaml:"repo" json:"repo"`
	Branch         string          `yaml:"branch,omitempty" json:"branch,omitempty"`
	PathTransform  string          `yaml:"path_transform,omitempty" json:"path_transform,omitempty"`
	CommitStrategy *CommitStrategy `yaml:"commit_strategy,omitempty" json:"commit_strategy,omitempty"`
}

// Rule maps a source file pattern to one or more destination targets.
type Rule struct {
	Name          string        `yaml:"name" json:"name"`
	SourcePattern SourcePattern `yaml:"source_pattern" json:"source_pattern"`
	Targets       []Target      `yaml:"targets" json:"targets"`
}
