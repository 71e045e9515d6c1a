package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "a/b.mp3", ReplaceExt("a/b.webm", ".mp3"))
	assert.Equal(t, "a/b.mp3", ReplaceExt("a/b.webm", "mp3"))
	assert.Equal(t, "a/b.mp3", ReplaceExt("a/b", ".mp3"))
	assert.Equal(t, "a/b", ReplaceExt("a/b.mp3", ""))
	assert.Equal(t, "", ReplaceExt("", ".mp3"))
}

func TestFindByExt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.mp3"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "other.MP3"), []byte("x"), 0644))

	found, err := FindByExt(dir, "mp3")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = FindByExt(dir, ".txt")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
