package repositories

import (
	"github.com/yigit/studybuddy/internal/db"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/logger"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudyRequestRepository *StudyRequestRepository
	NoteRepository         *NoteRepository
	TimetableRepository    *TimetableRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Database) *Repositories {
	sb := database.Builder()
	return &Repositories{
		UserRepository:         NewUserRepository(database.SQL, sb),
		StudyRequestRepository: NewStudyRequestRepository(database.SQL, sb),
		NoteRepository:         NewNoteRepository(database.SQL, sb),
		TimetableRepository:    NewTimetableRepository(database.SQL, sb),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// storageFailure logs err and hides it behind ErrStorageUnavailable
func storageFailure(op string, err error) error {
	logger.Error().Err(err).Str("op", op).Msg("Storage operation failed")
	return apperrors.NewStorageError(err)
}
