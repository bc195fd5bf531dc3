// Package validate checks copy-rule configuration documents for structural
// and semantic problems. It works on the raw parsed document rather than the
// typed config so that shape problems are reported instead of masked.
package validate

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"

	"copycheck/pkg/types"
)

// namedGroupPattern detects (?P<name> capture syntax in a pattern string.
// The heuristic is deliberately this narrow: other regex metacharacters
// misused in a prefix pattern are not flagged.
var namedGroupPattern = regexp.MustCompile(`\(\?P<\w+>`)

// transformVarPattern finds ${variable} references in a path transform.
var transformVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Built-in transform variables available to every pattern type.
var builtinTransformVars = map[string]bool{
	"path":     true,
	"filename": true,
	"dir":      true,
	"ext":      true,
}

// Summary describes a structurally sound document for display purposes.
type Summary struct {
	SourceRepo   string
	SourceBranch string
	RuleNames    []string
}

// Document validates a raw configuration mapping and returns the accumulated
// report. When the required top-level keys are present it also returns a
// display summary; top-level failures short-circuit and no rule-level checks
// run. Rule-level findings never short-circuit the run: every rule and target
// contributes to the final report.
func Document(doc map[string]interface{}) (*Report, *Summary) {
	report := NewReport()

	if _, ok := doc["source_repo"]; !ok {
		report.Issuef("Missing required field: source_repo")
	}
	if _, ok := doc["copy_rules"]; !ok {
		report.Issuef("Missing required field: copy_rules")
	}
	if !report.OK() {
		return report, nil
	}

	summary := &Summary{
		SourceRepo:   stringValue(doc["source_repo"]),
		SourceBranch: stringValue(doc["source_branch"]),
	}
	if summary.SourceBranch == "" {
		summary.SourceBranch = "main"
	}

	rules, ok := doc["copy_rules"].([]interface{})
	if !ok {
		report.Issuef("copy_rules must be a list")
		return report, summary
	}

	for i, rawRule := range rules {
		name := checkRule(report, i+1, rawRule)
		summary.RuleNames = append(summary.RuleNames, name)
	}

	return report, summary
}

// checkRule validates a single rule and returns its display name. Rules are
// 1-indexed for display; unnamed rules show as "Rule N".
func checkRule(report *Report, index int, rawRule interface{}) string {
	name := fmt.Sprintf("Rule %d", index)

	rule, ok := rawRule.(map[string]interface{})
	if !ok {
		report.Issuef("Rule %d: Must be a mapping", index)
		return name
	}
	if n := stringValue(rule["name"]); n != "" {
		name = n
	}

	if _, ok := rule["source_pattern"]; !ok {
		report.Issuef("Rule '%s': Missing source_pattern", name)
		return name
	}
	if _, ok := rule["targets"]; !ok {
		report.Issuef("Rule '%s': Missing targets", name)
		return name
	}

	pattern, ok := rule["source_pattern"].(map[string]interface{})
	if !ok {
		report.Issuef("Rule '%s': source_pattern must be a mapping", name)
		return name
	}

	patternType := checkSourcePattern(report, name, pattern)
	checkTargets(report, name, patternType, pattern, rule["targets"])
	return name
}

// checkSourcePattern validates the type/pattern pair of a rule and returns
// the declared pattern type for use by target-level checks.
func checkSourcePattern(report *Report, name string, pattern map[string]interface{}) types.PatternType {
	patternType := types.PatternType(stringValue(pattern["type"]))
	patternStr := stringValue(pattern["pattern"])

	if patternType == "" {
		report.Issuef("Rule '%s': Missing pattern type", name)
	} else if !patternType.IsValid() {
		report.Issuef("Rule '%s': Invalid pattern type '%s' (must be prefix, glob, or regex)", name, patternType)
	}

	if patternStr == "" {
		report.Issuef("Rule '%s': Missing pattern string", name)
	} else {
		if patternType == types.PatternTypePrefix && namedGroupPattern.MatchString(patternStr) {
			report.Issuef("Rule '%s': Pattern type is 'prefix' but pattern contains regex syntax '(?P<...>)'", name)
			report.Warnf("Rule '%s': Should use type: 'regex' instead of 'prefix'", name)
		}

		if patternType == types.PatternTypeRegex {
			if _, err := regexp.Compile(patternStr); err != nil {
				report.Issuef("Rule '%s': Invalid regex pattern: %v", name, err)
			}
		}
		if patternType == types.PatternTypeGlob {
			if _, err := glob.Compile(patternStr); err != nil {
				report.Issuef("Rule '%s': Invalid glob pattern: %v", name, err)
			}
		}
	}

	checkExcludePatterns(report, name, pattern["exclude_patterns"])
	return patternType
}

// checkExcludePatterns validates the optional per-rule exclusion regexes.
func checkExcludePatterns(report *Report, name string, raw interface{}) {
	if raw == nil {
		return
	}
	excludes, ok := raw.([]interface{})
	if !ok {
		report.Issuef("Rule '%s': exclude_patterns must be a list", name)
		return
	}
	for i, rawExclude := range excludes {
		exclude := stringValue(rawExclude)
		if exclude == "" {
			report.Issuef("Rule '%s': exclude_patterns[%d] is empty", name, i)
			continue
		}
		if _, err := regexp.Compile(exclude); err != nil {
			report.Issuef("Rule '%s': exclude_patterns[%d] is not a valid regex: %v", name, i, err)
		}
	}
}

// checkTargets validates a rule's target list.
func checkTargets(report *Report, name string, patternType types.PatternType, pattern map[string]interface{}, rawTargets interface{}) {
	targets, ok := rawTargets.([]interface{})
	if !ok {
		report.Issuef("Rule '%s': targets must be a list", name)
		return
	}

	if len(targets) == 0 {
		report.Warnf("Rule '%s': No targets defined", name)
	}

	for j, rawTarget := range targets {
		checkTarget(report, name, patternType, pattern, j+1, rawTarget)
	}
}

// checkTarget validates one target. Targets are 1-indexed for display.
func checkTarget(report *Report, name string, patternType types.PatternType, pattern map[string]interface{}, index int, rawTarget interface{}) {
	target, ok := rawTarget.(map[string]interface{})
	if !ok {
		report.Issuef("Rule '%s', Target %d: Must be a mapping", name, index)
		return
	}

	if _, ok := target["repo"]; !ok {
		report.Issuef("Rule '%s', Target %d: Missing 'repo' field", name, index)
	}
	if _, ok := target["branch"]; !ok {
		report.Warnf("Rule '%s', Target %d: Missing 'branch' field (will use default)", name, index)
	}
	if _, ok := target["path_transform"]; !ok {
		report.Warnf("Rule '%s', Target %d: Missing 'path_transform' field", name, index)
	} else {
		checkTransformVars(report, name, patternType, pattern, index, stringValue(target["path_transform"]))
	}

	if rawStrategy, ok := target["commit_strategy"]; ok {
		strategy, ok := rawStrategy.(map[string]interface{})
		if !ok {
			report.Issuef("Rule '%s', Target %d: commit_strategy must be a mapping", name, index)
			return
		}
		strategyType := types.CommitStrategyType(stringValue(strategy["type"]))
		if strategyType != "" && !strategyType.IsValid() {
			report.Issuef("Rule '%s', Target %d: Invalid commit_strategy type '%s'", name, index, strategyType)
		}
	}
}

// checkTransformVars warns when a path_transform references variables the
// rule's pattern can never produce.
func checkTransformVars(report *Report, name string, patternType types.PatternType, pattern map[string]interface{}, index int, transform string) {
	if transform == "" {
		return
	}

	available := availableVars(patternType, stringValue(pattern["pattern"]))
	if available == nil {
		return
	}
	for _, m := range transformVarPattern.FindAllStringSubmatch(transform, -1) {
		if !available[m[1]] {
			report.Warnf("Rule '%s', Target %d: path_transform references unknown variable '${%s}'", name, index, m[1])
		}
	}
}

// availableVars returns the transform variables a pattern can produce:
// the built-ins plus type-specific extras and, for regex patterns, the
// named capture groups.
func availableVars(patternType types.PatternType, patternStr string) map[string]bool {
	available := make(map[string]bool, len(builtinTransformVars)+2)
	for v := range builtinTransformVars {
		available[v] = true
	}

	switch patternType {
	case types.PatternTypePrefix:
		available["matched_prefix"] = true
		available["relative_path"] = true
	case types.PatternTypeGlob:
		available["matched_pattern"] = true
	case types.PatternTypeRegex:
		re, err := regexp.Compile(patternStr)
		if err != nil {
			// Compile failure is already an issue; skip the variable check.
			return nil
		}
		for _, group := range re.SubexpNames() {
			if group != "" {
				available[group] = true
			}
		}
	}
	return available
}

// stringValue returns v as a string when it is one, else "".
func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}
