package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/studybuddy/internal/app/models"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/dberrors"
)

// MsgUserExists is returned to clients when registration hits a unique column
const MsgUserExists = "Username or email already exists"

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB, sb squirrel.StatementBuilderType) *UserRepository {
	return &UserRepository{db: db, sb: sb}
}

var userColumns = []string{
	"id", "username", "email", "password", "full_name", "registration_number",
	"program", "year", "preferred_location", "subjects", "study_topics", "created_at",
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user     models.User
		subjects string
	)
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FullName, &user.RegistrationNumber,
		&user.Program, &user.Year, &user.PreferredLocation, &subjects, &user.StudyTopics, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if subjects != "" {
		if err := json.Unmarshal([]byte(subjects), &user.Subjects); err != nil {
			return nil, fmt.Errorf("decode subjects of user %d: %w", user.ID, err)
		}
	}
	return &user, nil
}

// Create inserts a user and returns its id. A duplicate username, email or
// registration number yields an apperrors.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	subjects := user.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	subjectsJSON, err := json.Marshal(subjects)
	if err != nil {
		return 0, fmt.Errorf("encode subjects: %w", err)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("users").
		Columns(userColumns[1:]...).
		Values(
			user.Username, user.Email, user.Password, user.FullName, user.RegistrationNumber,
			user.Program, user.Year, user.PreferredLocation, string(subjectsJSON), user.StudyTopics, user.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewCustomError(apperrors.ErrConflict, MsgUserExists).
				WithField(dberrors.ConflictingColumn(err))
		}
		return 0, storageFailure("users.create", err)
	}

	user.ID = id
	return id, nil
}

// GetByID fetches a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "users.get_by_id", squirrel.Eq{"id": id})
}

// GetByUsername fetches a user by unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "users.get_by_username", squirrel.Eq{"username": username})
}

func (r *UserRepository) getOne(ctx context.Context, op string, where squirrel.Eq) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storageFailure(op, err)
	}
	return user, nil
}
