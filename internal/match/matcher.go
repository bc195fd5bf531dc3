// Package match classifies file paths against copy rules. Exclusion
// patterns are checked before any rule; rules are then evaluated
// independently, so a path can match any number of rules.
package match

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"copycheck/internal/errors"
	"copycheck/internal/log"
	"copycheck/pkg/types"
)

// compiledRule pairs a rule with its compiled matcher.
type compiledRule struct {
	rule     types.Rule
	glob     glob.Glob
	regex    *regexp.Regexp
	excludes []*regexp.Regexp
}

// Matcher classifies paths against a fixed rule set and a global set of
// exclusion regexes. Exclusions match anywhere in the path, not anchored.
type Matcher struct {
	rules      []compiledRule
	exclusions []*regexp.Regexp
}

// New compiles a matcher from rules and global exclusion patterns.
// A rule with an invalid type or uncompilable pattern is an error; run the
// validator first for a full report.
func New(rules []types.Rule, exclusions []string) (*Matcher, error) {
	m := &Matcher{}

	for _, pattern := range exclusions {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid exclusion pattern %q", pattern)
		}
		m.exclusions = append(m.exclusions, re)
	}

	for _, rule := range rules {
		cr := compiledRule{rule: rule}

		switch rule.SourcePattern.Type {
		case types.PatternTypePrefix:
			// Nothing to compile; prefix rules match literally.
		case types.PatternTypeGlob:
			g, err := glob.Compile(rule.SourcePattern.Pattern)
			if err != nil {
				return nil, errors.NewRuleError("invalid glob pattern", rule.Name, errors.InvalidPattern, err)
			}
			cr.glob = g
		case types.PatternTypeRegex:
			// Anchored at the start only, so patterns behave like a match
			// from the beginning of the path without requiring a trailing $.
			re, err := regexp.Compile(`\A(?:` + rule.SourcePattern.Pattern + `)`)
			if err != nil {
				return nil, errors.NewRuleError("invalid regex pattern", rule.Name, errors.InvalidPattern, err)
			}
			cr.regex = re
		default:
			return nil, errors.NewRuleError("invalid pattern type", rule.Name, errors.InvalidRule,
				errors.Newf("unknown type %q", rule.SourcePattern.Type))
		}

		for _, pattern := range rule.SourcePattern.ExcludePatterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				// Validation reports these; the matcher just ignores them.
				log.Debug("skipping invalid exclude pattern %q on rule %s: %v", pattern, rule.Name, err)
				continue
			}
			cr.excludes = append(cr.excludes, re)
		}

		m.rules = append(m.rules, cr)
	}

	return m, nil
}

// Classify determines whether a path is excluded, matched, or skipped.
// Exclusion takes precedence over all rule matches; otherwise every rule is
// evaluated and the matches are reported in rule definition order.
func (m *Matcher) Classify(path string) types.MatchResult {
	result := types.MatchResult{Path: path, Status: types.StatusSkipped}

	for _, re := range m.exclusions {
		if re.MatchString(path) {
			result.Status = types.StatusExcluded
			return result
		}
	}

	for _, cr := range m.rules {
		variables, ok := cr.match(path)
		if !ok {
			continue
		}
		if cr.excluded(path) {
			continue
		}
		result.Matches = append(result.Matches, types.RuleMatch{
			Rule:      cr.rule.Name,
			Variables: variables,
		})
	}

	if len(result.Matches) > 0 {
		result.Status = types.StatusMatched
	}
	return result
}

// ClassifyAll classifies paths in order.
func (m *Matcher) ClassifyAll(paths []string) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, m.Classify(path))
	}
	return results
}

// Rules returns the matcher's rule set in definition order.
func (m *Matcher) Rules() []types.Rule {
	rules := make([]types.Rule, 0, len(m.rules))
	for _, cr := range m.rules {
		rules = append(rules, cr.rule)
	}
	return rules
}

// match evaluates the rule's source pattern and returns the variables the
// pattern produced.
func (cr *compiledRule) match(path string) (map[string]string, bool) {
	switch cr.rule.SourcePattern.Type {
	case types.PatternTypePrefix:
		return matchPrefix(path, cr.rule.SourcePattern.Pattern)
	case types.PatternTypeGlob:
		if !cr.glob.Match(path) {
			return nil, false
		}
		return map[string]string{"matched_pattern": cr.rule.SourcePattern.Pattern}, true
	case types.PatternTypeRegex:
		return matchRegex(path, cr.regex)
	}
	return nil, false
}

// matchPrefix matches the literal pattern string against the start of the
// path and derives the relative path after the prefix.
func matchPrefix(path, pattern string) (map[string]string, bool) {
	if !strings.HasPrefix(path, pattern) {
		return nil, false
	}

	prefix := strings.TrimSuffix(pattern, "/")
	relative := strings.TrimPrefix(path, prefix)
	relative = strings.TrimPrefix(relative, "/")

	return map[string]string{
		"matched_prefix": prefix,
		"relative_path":  relative,
	}, true
}

// matchRegex matches the compiled pattern and extracts named capture groups.
func matchRegex(path string, re *regexp.Regexp) (map[string]string, bool) {
	submatch := re.FindStringSubmatch(path)
	if submatch == nil {
		return nil, false
	}

	variables := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i > 0 && i < len(submatch) && name != "" {
			variables[name] = submatch[i]
		}
	}
	return variables, true
}

// excluded checks the rule's own exclusion patterns.
func (cr *compiledRule) excluded(path string) bool {
	for _, re := range cr.excludes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
