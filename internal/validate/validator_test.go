package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"copycheck/internal/validate"
)

// parseDoc unmarshals a YAML string into the raw mapping form the validator
// consumes.
func parseDoc(t *testing.T, content string) map[string]interface{} {
	t.Helper()
	var doc interface{}
	require.NoError(t, yaml.Unmarshal([]byte(content), &doc))
	root, ok := doc.(map[string]interface{})
	require.True(t, ok, "fixture must be a mapping")
	return root
}

const validConfigYAML = `
source_repo: "owner/source-repo"
source_branch: "main"
copy_rules:
  - name: "client-code"
    source_pattern:
      type: "prefix"
      pattern: "mflix/client/"
    targets:
      - repo: "owner/target-repo"
        branch: "main"
        path_transform: "examples/${relative_path}"
`

func TestDocumentValid(t *testing.T) {
	report, summary := validate.Document(parseDoc(t, validConfigYAML))

	require.NotNil(t, summary)
	assert.True(t, report.OK())
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "owner/source-repo", summary.SourceRepo)
	assert.Equal(t, "main", summary.SourceBranch)
	assert.Equal(t, []string{"client-code"}, summary.RuleNames)
}

func TestDocumentMissingRequiredFields(t *testing.T) {
	t.Run("missing source_repo", func(t *testing.T) {
		doc := parseDoc(t, `
copy_rules:
  - name: "r"
`)
		report, summary := validate.Document(doc)

		assert.False(t, report.OK())
		assert.Nil(t, summary, "no rule-level checks should run")
		assert.Equal(t, []string{"Missing required field: source_repo"}, report.Issues)
	})

	t.Run("missing copy_rules", func(t *testing.T) {
		doc := parseDoc(t, `source_repo: "owner/repo"`)
		report, summary := validate.Document(doc)

		assert.False(t, report.OK())
		assert.Nil(t, summary)
		assert.Equal(t, []string{"Missing required field: copy_rules"}, report.Issues)
	})

	t.Run("missing both", func(t *testing.T) {
		doc := parseDoc(t, `other: true`)
		report, summary := validate.Document(doc)

		assert.Nil(t, summary)
		assert.Equal(t, []string{
			"Missing required field: source_repo",
			"Missing required field: copy_rules",
		}, report.Issues)
	})
}

func TestDocumentDefaultBranch(t *testing.T) {
	doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules: []
`)
	report, summary := validate.Document(doc)

	require.NotNil(t, summary)
	assert.True(t, report.OK())
	assert.Equal(t, "main", summary.SourceBranch)
}

func TestDocumentRuleStructure(t *testing.T) {
	t.Run("missing source_pattern skips remaining checks", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "broken"
    targets: []
`)
		report, _ := validate.Document(doc)

		assert.Equal(t, []string{"Rule 'broken': Missing source_pattern"}, report.Issues)
		// targets never inspected, so no empty-targets warning
		assert.Empty(t, report.Warnings)
	})

	t.Run("missing targets", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "broken"
    source_pattern:
      type: "prefix"
      pattern: "x/"
`)
		report, _ := validate.Document(doc)
		assert.Equal(t, []string{"Rule 'broken': Missing targets"}, report.Issues)
	})

	t.Run("source_pattern not a mapping", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "broken"
    source_pattern: "just-a-string"
    targets: []
`)
		report, _ := validate.Document(doc)
		assert.Equal(t, []string{"Rule 'broken': source_pattern must be a mapping"}, report.Issues)
	})

	t.Run("unnamed rules display by index", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - source_pattern:
      type: "prefix"
      pattern: "a/"
  - targets: []
`)
		report, summary := validate.Document(doc)

		assert.Equal(t, []string{"Rule 1", "Rule 2"}, summary.RuleNames)
		assert.Contains(t, report.Issues, "Rule 'Rule 1': Missing targets")
		assert.Contains(t, report.Issues, "Rule 'Rule 2': Missing source_pattern")
	})

	t.Run("copy_rules not a list", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules: "nope"
`)
		report, _ := validate.Document(doc)
		assert.Equal(t, []string{"copy_rules must be a list"}, report.Issues)
	})
}

func TestDocumentPatternChecks(t *testing.T) {
	t.Run("invalid pattern type", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "suffix"
      pattern: "x"
    targets: []
`)
		report, _ := validate.Document(doc)
		assert.Contains(t, report.Issues,
			"Rule 'r': Invalid pattern type 'suffix' (must be prefix, glob, or regex)")
	})

	t.Run("missing pattern type and string", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern: {}
    targets: []
`)
		report, _ := validate.Document(doc)
		assert.Contains(t, report.Issues, "Rule 'r': Missing pattern type")
		assert.Contains(t, report.Issues, "Rule 'r': Missing pattern string")
	})

	t.Run("prefix pattern with named capture syntax", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "mismatched"
    source_pattern:
      type: "prefix"
      pattern: "^mflix/server/(?P<file>.+)$"
    targets: []
`)
		report, _ := validate.Document(doc)

		assert.Contains(t, report.Issues,
			"Rule 'mismatched': Pattern type is 'prefix' but pattern contains regex syntax '(?P<...>)'")
		assert.Contains(t, report.Warnings,
			"Rule 'mismatched': Should use type: 'regex' instead of 'prefix'")
	})

	t.Run("prefix pattern with plain metacharacters is not flagged", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/*.go"
    targets: []
`)
		report, _ := validate.Document(doc)
		assert.Empty(t, report.Issues)
	})

	t.Run("invalid regex records one issue and checking continues", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "bad-regex"
    source_pattern:
      type: "regex"
      pattern: "("
    targets: []
  - name: "good"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
    targets:
      - repo: "owner/t"
        branch: "main"
        path_transform: "x/${relative_path}"
`)
		report, summary := validate.Document(doc)

		require.Len(t, report.Issues, 1)
		assert.Contains(t, report.Issues[0], "Rule 'bad-regex': Invalid regex pattern:")
		assert.Equal(t, []string{"bad-regex", "good"}, summary.RuleNames)
	})

	t.Run("invalid glob is an issue", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "bad-glob"
    source_pattern:
      type: "glob"
      pattern: "mflix/[py"
    targets: []
`)
		report, _ := validate.Document(doc)
		require.Len(t, report.Issues, 1)
		assert.Contains(t, report.Issues[0], "Rule 'bad-glob': Invalid glob pattern:")
	})

	t.Run("exclude patterns must compile", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
      exclude_patterns:
        - "\\.env$"
        - "("
        - ""
    targets: []
`)
		report, _ := validate.Document(doc)

		require.Len(t, report.Issues, 2)
		assert.Contains(t, report.Issues[0], "exclude_patterns[1] is not a valid regex")
		assert.Contains(t, report.Issues[1], "exclude_patterns[2] is empty")
	})
}

func TestDocumentTargetChecks(t *testing.T) {
	t.Run("empty targets is a warning only", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
    targets: []
`)
		report, _ := validate.Document(doc)

		assert.True(t, report.OK())
		assert.Equal(t, []string{"Rule 'r': No targets defined"}, report.Warnings)
	})

	t.Run("targets not a list", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
    targets: "oops"
`)
		report, _ := validate.Document(doc)
		assert.Equal(t, []string{"Rule 'r': targets must be a list"}, report.Issues)
	})

	t.Run("target field checks", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
    targets:
      - branch: "main"
      - "not-a-mapping"
`)
		report, _ := validate.Document(doc)

		assert.Contains(t, report.Issues, "Rule 'r', Target 1: Missing 'repo' field")
		assert.Contains(t, report.Issues, "Rule 'r', Target 2: Must be a mapping")
		assert.Contains(t, report.Warnings, "Rule 'r', Target 1: Missing 'path_transform' field")
		assert.NotContains(t, report.Warnings, "Rule 'r', Target 1: Missing 'branch' field (will use default)")
	})

	t.Run("missing branch and path_transform are warnings", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
    targets:
      - repo: "owner/t"
`)
		report, _ := validate.Document(doc)

		assert.True(t, report.OK())
		assert.Contains(t, report.Warnings, "Rule 'r', Target 1: Missing 'branch' field (will use default)")
		assert.Contains(t, report.Warnings, "Rule 'r', Target 1: Missing 'path_transform' field")
	})

	t.Run("commit strategy", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "prefix"
      pattern: "mflix/"
    targets:
      - repo: "owner/a"
        branch: "main"
        path_transform: "${path}"
        commit_strategy:
          type: "pull_request"
      - repo: "owner/b"
        branch: "main"
        path_transform: "${path}"
        commit_strategy:
          type: "rebase"
      - repo: "owner/c"
        branch: "main"
        path_transform: "${path}"
        commit_strategy: "direct"
`)
		report, _ := validate.Document(doc)

		assert.Contains(t, report.Issues, "Rule 'r', Target 2: Invalid commit_strategy type 'rebase'")
		assert.Contains(t, report.Issues, "Rule 'r', Target 3: commit_strategy must be a mapping")
		assert.NotContains(t, report.Issues, "Rule 'r', Target 1: Invalid commit_strategy type 'pull_request'")
	})
}

func TestDocumentTransformVariables(t *testing.T) {
	t.Run("regex named groups are known", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "regex"
      pattern: "^mflix/server/(?P<file>.+)$"
    targets:
      - repo: "owner/t"
        branch: "main"
        path_transform: "server/${file}"
`)
		report, _ := validate.Document(doc)
		assert.Empty(t, report.Warnings)
	})

	t.Run("unknown variable warns", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "glob"
      pattern: "mflix/*.md"
    targets:
      - repo: "owner/t"
        branch: "main"
        path_transform: "docs/${relative_path}"
`)
		report, _ := validate.Document(doc)

		assert.True(t, report.OK())
		assert.Contains(t, report.Warnings,
			"Rule 'r', Target 1: path_transform references unknown variable '${relative_path}'")
	})

	t.Run("builtins always available", func(t *testing.T) {
		doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "r"
    source_pattern:
      type: "glob"
      pattern: "mflix/*.md"
    targets:
      - repo: "owner/t"
        branch: "main"
        path_transform: "docs/${dir}/${filename}"
`)
		report, _ := validate.Document(doc)
		assert.Empty(t, report.Warnings)
	})
}

func TestDocumentIdempotent(t *testing.T) {
	doc := parseDoc(t, `
source_repo: "owner/repo"
copy_rules:
  - name: "bad"
    source_pattern:
      type: "prefix"
      pattern: "(?P<x>a)"
    targets: []
`)

	first, _ := validate.Document(doc)
	second, _ := validate.Document(doc)

	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.OK(), second.OK())
}
