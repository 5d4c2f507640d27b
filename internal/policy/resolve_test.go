package policy

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveFixture lays out:
//
//	root/system/x.txt      (restricted)
//	root/systemx/a.txt     (sibling sharing the prefix string)
//	root/public/readme.txt
type resolveFixture struct {
	root       string
	restricted string
	policy     *Policy
}

func newResolveFixture(t *testing.T) *resolveFixture {
	t.Helper()
	root := canonicalTempDir(t)
	restricted := filepath.Join(root, "system")

	for _, f := range []string{
		filepath.Join(restricted, "x.txt"),
		filepath.Join(root, "systemx", "a.txt"),
		filepath.Join(root, "public", "readme.txt"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, os.WriteFile(f, []byte("data"), 0o644))
	}

	p, err := New(Options{
		AllowedExtensions:  []string{".txt"},
		RestrictedPrefixes: []string{restricted},
		MaxFileSizeBytes:   1024,
		BaseDir:            root,
	})
	require.NoError(t, err)
	return &resolveFixture{root: root, restricted: restricted, policy: p}
}

func TestResolve_DeniesEverySpelling(t *testing.T) {
	fx := newResolveFixture(t)
	sep := string(filepath.Separator)

	spellings := map[string]string{
		"absolute":           filepath.Join(fx.restricted, "x.txt"),
		"prefix itself":      fx.restricted,
		"trailing separator": fx.restricted + sep,
		"dot-dot round trip": fx.restricted + sep + ".." + sep + "system" + sep + "x.txt",
		"dot-dot from sibling": filepath.Join(fx.root, "public") + sep + ".." + sep + "system" + sep + "x.txt",
		"relative":           "system" + sep + "x.txt",
		"relative with dots": "." + sep + "public" + sep + ".." + sep + "system" + sep + "." + sep + "x.txt",
		"upper case":         filepath.Join(fx.root, "SYSTEM", "x.txt"),
		"mixed case relative": "SyStEm" + sep + "X.TXT",
		"missing file":       filepath.Join(fx.restricted, "nope.txt"),
	}
	if runtime.GOOS != "windows" {
		spellings["backslash separators"] = `system\x.txt`
		spellings["mixed separators"] = `public/..\system/x.txt`
	}

	for name, raw := range spellings {
		t.Run(name, func(t *testing.T) {
			_, err := fx.policy.Resolve(raw)
			require.Error(t, err)
			assert.Equal(t, KindAccessDenied, KindOf(err))
			assert.Equal(t, "Access denied: Path is in restricted directory: "+fx.restricted, err.Error())
		})
	}
}

func TestResolve_SymlinkEscape(t *testing.T) {
	skipWithoutSymlinks(t)
	fx := newResolveFixture(t)

	link := filepath.Join(fx.root, "public", "link")
	require.NoError(t, os.Symlink(fx.restricted, link))
	fileLink := filepath.Join(fx.root, "public", "file-link.txt")
	require.NoError(t, os.Symlink(filepath.Join(fx.restricted, "x.txt"), fileLink))

	for _, raw := range []string{
		link,
		filepath.Join(link, "x.txt"),
		filepath.Join(link, "does", "not", "exist.txt"),
		fileLink,
		"public/link/x.txt",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := fx.policy.Resolve(raw)
			require.Error(t, err)
			assert.Equal(t, KindAccessDenied, KindOf(err))
		})
	}
}

func TestResolve_Allowed(t *testing.T) {
	fx := newResolveFixture(t)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"sibling sharing prefix", filepath.Join(fx.root, "systemx", "a.txt"), filepath.Join(fx.root, "systemx", "a.txt")},
		{"relative", "public/readme.txt", filepath.Join(fx.root, "public", "readme.txt")},
		{"dot-dot inside allowed", "public/../public/readme.txt", filepath.Join(fx.root, "public", "readme.txt")},
		{"missing file", "public/missing.txt", filepath.Join(fx.root, "public", "missing.txt")},
		{"root itself", fx.root, fx.root},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fx.policy.Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestResolve_FollowsSymlinkToCanonical(t *testing.T) {
	skipWithoutSymlinks(t)
	fx := newResolveFixture(t)

	link := filepath.Join(fx.root, "alias")
	require.NoError(t, os.Symlink(filepath.Join(fx.root, "public"), link))

	got, err := fx.policy.Resolve(filepath.Join(link, "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.root, "public", "readme.txt"), got.String())
}

func TestResolve_InvalidPath(t *testing.T) {
	fx := newResolveFixture(t)

	tests := []struct {
		name string
		raw  string
		msg  string
	}{
		{"empty", "", "Invalid path: path is empty"},
		{"blank", "   ", "Invalid path: path is empty"},
		{"nul byte", "public/readme.txt\x00.png", "Invalid path: path contains NUL byte"},
		{"control char", "public/read\nme.txt", "Invalid path: path contains control characters"},
		{"too long", strings.Repeat("a", maxPathLength+1), "Invalid path: path is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.policy.Resolve(tt.raw)
			require.Error(t, err)
			assert.Equal(t, KindInvalidPath, KindOf(err))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestResolve_RootPrefixDeniesAll(t *testing.T) {
	root := canonicalTempDir(t)
	p, err := New(Options{
		AllowedExtensions:  []string{".txt"},
		RestrictedPrefixes: []string{string(filepath.Separator)},
		MaxFileSizeBytes:   1,
		BaseDir:            root,
	})
	if runtime.GOOS == "windows" {
		t.Skip("a bare separator is not an absolute path on windows")
	}
	require.NoError(t, err)

	_, err = p.Resolve("anything.txt")
	assert.Equal(t, KindAccessDenied, KindOf(err))
}

func TestResolve_RestrictedPrefixBehindSymlink(t *testing.T) {
	skipWithoutSymlinks(t)
	root := canonicalTempDir(t)
	realDir := filepath.Join(root, "real")
	require.NoError(t, os.MkdirAll(realDir, 0o755))
	alias := filepath.Join(root, "alias")
	require.NoError(t, os.Symlink(realDir, alias))

	// The prefix is configured through the link; the canonical spelling must
	// be denied too.
	p, err := New(Options{
		AllowedExtensions:  []string{".txt"},
		RestrictedPrefixes: []string{alias},
		MaxFileSizeBytes:   1,
		BaseDir:            root,
	})
	require.NoError(t, err)

	_, err = p.Resolve(filepath.Join(realDir, "f.txt"))
	require.Error(t, err)
	assert.Equal(t, "Access denied: Path is in restricted directory: "+alias, err.Error())
}
