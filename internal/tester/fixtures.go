package tester

import "copycheck/pkg/types"

// DefaultFiles returns the built-in candidate paths: files commonly present
// in the mflix sample-app tree, in report order.
func DefaultFiles() []string {
	return []string{
		"mflix/client/src/App.tsx",
		"mflix/client/src/components/Header.tsx",
		"mflix/client/package.json",
		"mflix/client/.gitignore",
		"mflix/client/README.md",
		"mflix/server/java-spring/src/main/java/Main.java",
		"mflix/server/java-spring/pom.xml",
		"mflix/server/java-spring/.env",
		"mflix/server/js-express/src/index.js",
		"mflix/server/js-express/package.json",
		"mflix/server/python-fastapi/main.py",
		"mflix/server/python-fastapi/requirements.txt",
		"mflix/README-JAVA-SPRING.md",
		"mflix/README-JAVASCRIPT-EXPRESS.md",
		"mflix/README-PYTHON-FASTAPI.md",
		"mflix/.gitignore-java",
		"mflix/.gitignore-js",
		"mflix/.gitignore-python",
		"mflix/docker-compose.yml",
		"mflix/package.json",
		"mflix/README.md",
		"other/file.txt",
	}
}

// DefaultRules returns the built-in rule set, in definition order.
func DefaultRules() []types.Rule {
	return []types.Rule{
		rule("mflix-client-to-java", types.PatternTypePrefix, "mflix/client/"),
		rule("java-server", types.PatternTypeRegex, `^mflix/server/java-spring/(?P<file>.+)$`),
		rule("mflix-java-readme", types.PatternTypeGlob, "mflix/README-JAVA-SPRING.md"),
		rule("mflix-java-gitignore", types.PatternTypeGlob, "mflix/.gitignore-java"),
		rule("mflix-client-to-js", types.PatternTypePrefix, "mflix/client/"),
		rule("mflix-express-server", types.PatternTypeRegex, `^mflix/server/js-express/(?P<file>.+)$`),
		rule("mflix-js-readme", types.PatternTypeGlob, "mflix/README-JAVASCRIPT-EXPRESS.md"),
		rule("mflix-js-gitignore", types.PatternTypeGlob, "mflix/.gitignore-js"),
		rule("mflix-client-to-python", types.PatternTypePrefix, "mflix/client/"),
		rule("mflix-python-server", types.PatternTypeRegex, `^mflix/server/python-fastapi/(?P<file>.+)$`),
		rule("mflix-python-readme", types.PatternTypeGlob, "mflix/README-PYTHON-FASTAPI.md"),
		rule("mflix-python-gitignore", types.PatternTypeGlob, "mflix/.gitignore-python"),
	}
}

// DefaultExclusions returns the built-in exclusion regexes. A path matching
// any of them is never evaluated against the rules.
func DefaultExclusions() []string {
	return []string{
		`\.gitignore$`,
		`README\.md$`,
		`\.env$`,
	}
}

func rule(name string, patternType types.PatternType, pattern string) types.Rule {
	return types.Rule{
		Name: name,
		SourcePattern: types.SourcePattern{
			Type:    patternType,
			Pattern: pattern,
		},
	}
}
