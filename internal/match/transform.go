package match

import (
	"fmt"
	"regexp"
	"strings"

	"copycheck/internal/errors"
)

var unreplacedVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Transform renders a path_transform template for a matched source path.
// Pattern variables take effect alongside the built-ins ${path}, ${filename},
// ${dir} and ${ext}. A template that still references unknown variables after
// substitution is an error naming them.
func Transform(sourcePath, template string, variables map[string]string) (string, error) {
	vars := make(map[string]string, len(variables)+4)
	for k, v := range variables {
		vars[k] = v
	}
	addBuiltins(vars, sourcePath)

	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, fmt.Sprintf("${%s}", key), value)
	}

	if unreplaced := unreplacedVars(result); len(unreplaced) > 0 {
		return "", errors.Newf("unreplaced variables in template: %v", unreplaced)
	}
	return result, nil
}

// addBuiltins derives ${path}, ${filename}, ${dir} and ${ext} from the
// source path. Paths use forward slashes regardless of host OS.
func addBuiltins(vars map[string]string, sourcePath string) {
	vars["path"] = sourcePath

	filename := sourcePath
	dir := ""
	if idx := strings.LastIndex(sourcePath, "/"); idx >= 0 {
		filename = sourcePath[idx+1:]
		dir = sourcePath[:idx]
	}
	vars["filename"] = filename
	vars["dir"] = dir

	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx+1:]
	}
	vars["ext"] = ext
}

func unreplacedVars(s string) []string {
	var unreplaced []string
	for _, m := range unreplacedVarPattern.FindAllStringSubmatch(s, -1) {
		unreplaced = append(unreplaced, m[1])
	}
	return unreplaced
}
