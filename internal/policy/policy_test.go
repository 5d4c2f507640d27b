package policy

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonicalTempDir returns a temp dir with symlinks resolved, so expectations
// hold on hosts where the temp dir itself sits behind a link.
func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{
			name:    "empty allowlist",
			opts:    Options{MaxFileSizeBytes: 10},
			wantErr: "allowed extensions must not be empty",
		},
		{
			name:    "blank extension",
			opts:    Options{AllowedExtensions: []string{" "}, MaxFileSizeBytes: 10},
			wantErr: "empty extension",
		},
		{
			name:    "zero size",
			opts:    Options{AllowedExtensions: []string{".txt"}},
			wantErr: "max file size must be positive",
		},
		{
			name: "relative restricted prefix",
			opts: Options{
				AllowedExtensions:  []string{".txt"},
				MaxFileSizeBytes:   10,
				RestrictedPrefixes: []string{"relative/dir"},
			},
			wantErr: "must be absolute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_NormalizesExtensions(t *testing.T) {
	p, err := New(Options{
		AllowedExtensions: []string{"TXT", ".Md", NoExtension, ".txt"},
		MaxFileSizeBytes:  1,
		BaseDir:           canonicalTempDir(t),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".", ".md", ".txt"}, p.AllowedExtensions())
}

func TestNew_CategoryToggles(t *testing.T) {
	p, err := New(Options{
		AllowedExtensions:     []string{".txt"},
		MaxFileSizeBytes:      1,
		EnableImages:          true,
		EnableGenericBinaries: false,
		BaseDir:               canonicalTempDir(t),
	})
	require.NoError(t, err)
	assert.True(t, p.CategoryEnabled(CategoryText))
	assert.True(t, p.CategoryEnabled(CategoryImage))
	assert.False(t, p.CategoryEnabled(CategoryManagedBinary))
	assert.False(t, p.CategoryEnabled(CategoryGenericBinary))

	snap := p.Snapshot()
	assert.Equal(t, true, snap.Categories["image"])
	assert.Equal(t, false, snap.Categories["generic binary"])
}

func TestCheckSize_Boundary(t *testing.T) {
	p, err := New(Options{AllowedExtensions: []string{".txt"}, MaxFileSizeBytes: 100, BaseDir: canonicalTempDir(t)})
	require.NoError(t, err)

	assert.NoError(t, p.CheckSize(100))
	err = p.CheckSize(101)
	require.Error(t, err)
	assert.Equal(t, KindTooLarge, KindOf(err))
	assert.Equal(t, "File too large: 101 bytes (max: 100)", err.Error())
}

func TestHasPathPrefix(t *testing.T) {
	sep := string(filepath.Separator)
	a := sep + "a"
	ab := a + sep + "b"

	assert.True(t, hasPathPrefix(ab, ab))
	assert.True(t, hasPathPrefix(ab+sep+"c", ab))
	assert.False(t, hasPathPrefix(ab+"c", ab), "prefix must stop on a segment boundary")
	assert.False(t, hasPathPrefix(a, ab))
	assert.True(t, hasPathPrefix(ab, sep), "root prefix matches everything")
}

func TestStore_Publish(t *testing.T) {
	base := canonicalTempDir(t)
	first, err := New(Options{AllowedExtensions: []string{".txt"}, MaxFileSizeBytes: 1, BaseDir: base})
	require.NoError(t, err)
	second, err := New(Options{AllowedExtensions: []string{".md"}, MaxFileSizeBytes: 2, BaseDir: base})
	require.NoError(t, err)

	store := NewStore(first)
	assert.Same(t, first, store.Current())

	store.Publish(nil)
	assert.Same(t, first, store.Current(), "nil publish is ignored")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cur := store.Current()
				// Every snapshot is internally consistent.
				if cur.MaxFileSizeBytes() == 1 {
					assert.Equal(t, []string{".txt"}, cur.AllowedExtensions())
				} else {
					assert.Equal(t, []string{".md"}, cur.AllowedExtensions())
				}
			}
		}()
	}
	store.Publish(second)
	wg.Wait()
	assert.Same(t, second, store.Current())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(os.ErrClosed))
	assert.Equal(t, KindAccessDenied, KindOf(accessDenied("/x")))
	assert.True(t, KindAccessDenied.IsPolicy())
	assert.False(t, KindNotFound.IsPolicy())
	assert.Equal(t, "ExtensionNotAllowed", KindExtensionNotAllowed.String())
}

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
}
