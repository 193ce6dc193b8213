package build

import (
	"path/filepath"
	"strings"
)

// ShouldExclude reports whether the (slash-relative) path matches any
// exclusion pattern.
//
// Pattern forms:
//   - "*.ext" matches a filename suffix
//   - any other pattern containing a wildcard matches the filename by glob
//   - a plain pattern matches by substring anywhere in the path, which is
//     how whole directories are excluded
func ShouldExclude(path string, patterns []string) bool {
	name := filepath.Base(path)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		switch {
		case strings.HasPrefix(pat, "*."):
			if strings.HasSuffix(name, pat[1:]) {
				return true
			}
		case strings.ContainsAny(pat, "*?["):
			if ok, err := filepath.Match(pat, name); err == nil && ok {
				return true
			}
		default:
			if strings.Contains(path, pat) {
				return true
			}
		}
	}
	return false
}
