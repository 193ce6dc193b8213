package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldExclude(t *testing.T) {
	patterns := []string{"*.yaml", "pixi.*", "node_modules", ".git"}

	cases := []struct {
		path string
		want bool
	}{
		{"events.yaml", true},            // extension pattern
		{"content/team.yaml", true},      // extension pattern, nested
		{"pixi.toml", true},              // glob on filename
		{"pixi.lock", true},              // glob on filename
		{"js/node_modules/x/y.js", true}, // substring matches directories
		{".git/config", true},
		{"index.html", false},
		{"assets/style.css", false},
		{"events.yml", false}, // *.yaml does not match .yml
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldExclude(tc.path, patterns), "path %q", tc.path)
	}
}

func TestShouldExcludeEmptyPatterns(t *testing.T) {
	assert.False(t, ShouldExclude("anything.txt", nil))
	assert.False(t, ShouldExclude("anything.txt", []string{""}))
}
