package filestorage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredName(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ls.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }

	a, err := ls.StoredName("notes.pdf")
	require.NoError(t, err)
	b, err := ls.StoredName("notes.pdf")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^20240309_140507_[0-9a-f]{8}_notes\.pdf$`), a)
	assert.NotEqual(t, a, b)

	_, err = ls.StoredName("../notes.pdf")
	assert.Error(t, err)
	_, err = ls.StoredName("")
	assert.Error(t, err)
}

func TestStageCommit(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	require.NoError(t, err)

	staged, err := ls.Stage(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), staged.Size)

	path, err := ls.Commit(staged, "final.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "final.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging file should be gone after commit")
}

func TestCommitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.txt"), []byte("original"), 0o644))

	staged, err := ls.Stage(strings.NewReader("intruder"))
	require.NoError(t, err)

	_, err = ls.Commit(staged, "taken.txt")
	assert.ErrorIs(t, err, ErrPathExists)

	content, err := os.ReadFile(filepath.Join(dir, "taken.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	ls.Discard(staged)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCommitFallsBackToRenameWithoutHardLinks(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ls.link = func(oldname, newname string) error {
		return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: errors.New("operation not supported")}
	}

	staged, err := ls.Stage(strings.NewReader("hello"))
	require.NoError(t, err)

	path, err := ls.Commit(staged, "final.txt")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.txt"), []byte("original"), 0o644))
	staged, err = ls.Stage(strings.NewReader("intruder"))
	require.NoError(t, err)

	_, err = ls.Commit(staged, "taken.txt")
	assert.ErrorIs(t, err, ErrPathExists)

	content, err = os.ReadFile(filepath.Join(dir, "taken.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	ls.Discard(staged)
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
