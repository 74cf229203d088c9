package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTempStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "temp_uploads")

	store, err := NewTempStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directory is fine
	_, err = NewTempStore(dir)
	require.NoError(t, err)
}

func TestNewTempStore_EmptyDir(t *testing.T) {
	_, err := NewTempStore("")
	assert.Error(t, err)
}

func TestTempStore_SaveWritesBytesVerbatim(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	require.NoError(t, err)

	content := []byte{0x00, 0xff, 'n', 'o', 't', ' ', 'a', 'n', ' ', 'i', 'm', 'a', 'g', 'e'}
	path, err := store.Save("img1.jpg", bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, store.Dir(), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_img1.jpg"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestTempStore_SaveSameNameDoesNotCollide(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	require.NoError(t, err)

	const workers = 16
	paths := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := store.Save("img1.jpg", bytes.NewReader([]byte{byte(i)}))
			assert.NoError(t, err)
			paths[i] = p
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i, p := range paths {
		require.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true

		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, got, "content of %s was overwritten", p)
	}
}

func TestTempStore_SaveStripsDirectories(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name       string
		wantSuffix string
	}{
		{"../../etc/passwd", "_passwd"},
		{`C:\Users\me\face.png`, "_face.png"},
		{"", "_upload"},
		{"..", "_upload"},
		{"/", "_upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := store.Save(tt.name, strings.NewReader("x"))
			require.NoError(t, err)
			assert.Equal(t, store.Dir(), filepath.Dir(path))
			assert.True(t, strings.HasSuffix(path, tt.wantSuffix), "path %s", path)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestTempStore_SaveRemovesPartialFile(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("img1.jpg", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTempStore_Remove(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	require.NoError(t, err)

	p1, err := store.Save("a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	p2, err := store.Save("b.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(p1, "", p2))

	_, err = os.Stat(p1)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(p2)
	assert.True(t, os.IsNotExist(err))
}

func TestTempStore_RemoveReportsEveryFailure(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	require.NoError(t, err)

	missing := filepath.Join(store.Dir(), "gone.jpg")
	outside := filepath.Join(t.TempDir(), "other.jpg")

	err = store.Remove(missing, outside)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, errors.Is(err, ErrOutsideStore))
}
