package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/pkg/logger"
)

const (
	stagingPrefix   = ".staging-"
	timestampLayout = "20060102_150405"
)

// ErrPathExists is returned by Commit when the final name is already taken
var ErrPathExists = errors.New("storage path already exists")

// StagedFile is an upload written to the storage directory under a temporary
// name. It becomes visible only once committed.
type StagedFile struct {
	path string
	Size int64
}

// LocalStorage saves uploads to a directory on the local filesystem.
type LocalStorage struct {
	basePath string
	now      func() time.Time
	link     func(oldname, newname string) error
	log      zerolog.Logger
}

// NewLocalStorage creates a new LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		now:      time.Now,
		link:     os.Link,
		log:      logger.WithField("component", "filestorage"),
	}, nil
}

// BasePath returns the storage directory
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// StoredName builds the on-disk name for an already sanitized file name:
// <YYYYMMDD_HHMMSS>_<8 hex>_<name>.
func (ls *LocalStorage) StoredName(sanitized string) (string, error) {
	if sanitized == "" || sanitized != filepath.Base(sanitized) {
		return "", fmt.Errorf("invalid stored file name %q", sanitized)
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s", ls.now().Format(timestampLayout), suffix, sanitized), nil
}

// PathFor returns the path a stored name will have once committed
func (ls *LocalStorage) PathFor(storedName string) string {
	return filepath.Join(ls.basePath, filepath.Base(storedName))
}

// Stage streams src into a new temporary file inside the storage directory.
func (ls *LocalStorage) Stage(src io.Reader) (*StagedFile, error) {
	tmpPath := filepath.Join(ls.basePath, stagingPrefix+uuid.NewString())

	dst, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		ls.log.Error().Err(err).Str("path", tmpPath).Msg("Failed to create staging file")
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	size, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		ls.log.Error().Err(err).Str("path", tmpPath).Msg("Failed to write uploaded file content")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	return &StagedFile{path: tmpPath, Size: size}, nil
}

// Commit moves a staged file to its final name. It does not replace an
// existing file (see renameIfAbsent for the one window where it can): a taken
// name yields ErrPathExists and the staged file stays in place for the caller
// to discard.
func (ls *LocalStorage) Commit(staged *StagedFile, storedName string) (string, error) {
	finalPath := ls.PathFor(storedName)

	err := ls.link(staged.path, finalPath)
	switch {
	case err == nil:
		if err := os.Remove(staged.path); err != nil {
			ls.log.Warn().Err(err).Str("path", staged.path).Msg("Failed to remove staging link after commit")
		}
	case errors.Is(err, os.ErrExist):
		return "", ErrPathExists
	default:
		ls.log.Warn().Err(err).Str("path", finalPath).Msg("Hard link unavailable, committing with rename")
		if err := ls.renameIfAbsent(staged.path, finalPath); err != nil {
			return "", err
		}
	}

	ls.log.Info().Str("path", finalPath).Int64("size", staged.Size).Msg("File saved successfully")
	return finalPath, nil
}

// renameIfAbsent is the commit path for filesystems without hard links.
// A file created at finalPath between the Lstat and the Rename is replaced.
func (ls *LocalStorage) renameIfAbsent(stagedPath, finalPath string) error {
	if _, err := os.Lstat(finalPath); err == nil {
		return ErrPathExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check commit target: %w", err)
	}

	if err := os.Rename(stagedPath, finalPath); err != nil {
		return fmt.Errorf("failed to commit file: %w", err)
	}
	return nil
}

// Discard removes a staged file that will not be committed
func (ls *LocalStorage) Discard(staged *StagedFile) {
	if staged == nil {
		return
	}
	if err := os.Remove(staged.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		ls.log.Warn().Err(err).Str("path", staged.path).Msg("Failed to discard staged file")
	}
}
