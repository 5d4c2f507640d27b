// Package pattern compiles file-name wildcards for search.
//
// Only two wildcards exist: "*" matches zero or more characters and "?"
// matches exactly one. Every other character, including glob and regex
// metacharacters such as ".", "[" and "{", matches itself. Matching is
// case-insensitive and always covers the whole name.
package pattern

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher is a compiled name pattern. It is stateless and safe for
// concurrent use.
type Matcher struct {
	raw      string
	compiled glob.Glob
}

// Compile builds a Matcher from a wildcard pattern.
func Compile(s string) (*Matcher, error) {
	if s == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	g, err := glob.Compile(quote(strings.ToLower(s)))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
	}
	return &Matcher{raw: s, compiled: g}, nil
}

// quote escapes every glob metacharacter except the two wildcards.
func quote(s string) string {
	var sb strings.Builder
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '*' && s[i] != '?' {
			continue
		}
		sb.WriteString(glob.QuoteMeta(s[start:i]))
		sb.WriteByte(s[i])
		start = i + 1
	}
	sb.WriteString(glob.QuoteMeta(s[start:]))
	return sb.String()
}

// Matches reports whether name matches the whole pattern.
func (m *Matcher) Matches(name string) bool {
	return m.compiled.Match(strings.ToLower(name))
}

// String returns the pattern as given.
func (m *Matcher) String() string {
	return m.raw
}

// Match compiles pattern and tests name in one step. An invalid pattern
// matches nothing.
func Match(pattern, name string) bool {
	m, err := Compile(pattern)
	if err != nil {
		return false
	}
	return m.Matches(name)
}
