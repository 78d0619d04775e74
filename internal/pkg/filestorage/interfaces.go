package filestorage

import "io"

// FileStorage defines the interface for the two-phase upload flow
type FileStorage interface {
	// StoredName builds the final on-disk name for a sanitized file name
	StoredName(sanitized string) (string, error)

	// PathFor returns the full path a stored name will have once committed
	PathFor(storedName string) string

	// Stage writes the content under a temporary name
	Stage(src io.Reader) (*StagedFile, error)

	// Commit moves a staged file to its final name without replacing anything
	Commit(staged *StagedFile, storedName string) (string, error)

	// Discard removes a staged file that will not be committed
	Discard(staged *StagedFile)
}

var _ FileStorage = (*LocalStorage)(nil)
