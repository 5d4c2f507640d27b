package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*.txt", "report.txt", true},
		{"*.TXT", "report.txt", true},
		{"*.txt", "REPORT.TXT", true},
		{"?.txt", "a.txt", true},
		{"?.txt", "ab.txt", false},
		{"?.txt", ".txt", false},
		{"*", "anything", true},
		{"*", "", true},
		{"report*", "report.txt", true},
		{"*port*", "report.txt", true},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXbYY", false},

		// Whole-name anchoring.
		{"report", "report.txt", false},
		{"txt", "report.txt", false},
		{"*.txt", "report.txt.bak", false},

		// Literal metacharacters.
		{"file.txt", "file.txt", true},
		{"file.txt", "fileXtxt", false},
		{"[ab].txt", "a.txt", false},
		{"[ab].txt", "[ab].txt", true},
		{"{a,b}.txt", "a.txt", false},
		{"{a,b}.txt", "{a,b}.txt", true},
		{`back\slash`, `back\slash`, true},
		{"a+b(c)$.txt", "a+b(c)$.txt", true},
		{"^start", "^start", true},

		// Multi-byte names.
		{"?.md", "é.md", true},
		{"ÉTÉ*", "été.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.name))
		})
	}
}

func TestCompile(t *testing.T) {
	m, err := Compile("*.Go")
	require.NoError(t, err)
	assert.Equal(t, "*.Go", m.String())
	assert.True(t, m.Matches("main.go"))
	assert.False(t, m.Matches("main.go.orig"))

	_, err = Compile("")
	assert.Error(t, err)
	assert.False(t, Match("", "x"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `\[x\]*`, quote("[x]*"))
	assert.Equal(t, `a?b`, quote("a?b"))
}
