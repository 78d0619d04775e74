package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/studybuddy/internal/app/models"
)

// StudyRequestRepository handles database operations for study requests
type StudyRequestRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewStudyRequestRepository creates a new StudyRequestRepository
func NewStudyRequestRepository(db *sql.DB, sb squirrel.StatementBuilderType) *StudyRequestRepository {
	return &StudyRequestRepository{db: db, sb: sb}
}

// Create inserts a study request and returns its id
func (r *StudyRequestRepository) Create(ctx context.Context, req *models.StudyRequest) (int64, error) {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("study_requests").
		Columns("user_id", "subject", "topic", "location", "description", "is_active", "created_at").
		Values(req.UserID, req.Subject, req.Topic, req.Location, req.Description, req.IsActive, req.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create study request query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, storageFailure("study_requests.create", err)
	}

	req.ID = id
	return id, nil
}

// ListActiveExcludingUser returns every active request not owned by userID,
// newest first, with the owner's name, program and year.
func (r *StudyRequestRepository) ListActiveExcludingUser(ctx context.Context, userID int64) ([]*models.StudyRequestDetails, error) {
	query, args, err := r.sb.Select(
		"sr.id", "sr.user_id", "sr.subject", "sr.topic", "sr.location", "sr.description",
		"sr.is_active", "sr.created_at", "u.full_name", "u.program", "u.year",
	).
		From("study_requests sr").
		Join("users u ON sr.user_id = u.id").
		Where(squirrel.Eq{"sr.is_active": true}).
		Where(squirrel.NotEq{"sr.user_id": userID}).
		OrderBy("sr.created_at DESC", "sr.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list study requests query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageFailure("study_requests.list_active", err)
	}
	defer rows.Close()

	var out []*models.StudyRequestDetails
	for rows.Next() {
		var d models.StudyRequestDetails
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Subject, &d.Topic, &d.Location, &d.Description,
			&d.IsActive, &d.CreatedAt, &d.FullName, &d.Program, &d.Year,
		); err != nil {
			return nil, storageFailure("study_requests.list_active", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageFailure("study_requests.list_active", err)
	}
	return out, nil
}

// ListByUser returns every request owned by userID, newest first
func (r *StudyRequestRepository) ListByUser(ctx context.Context, userID int64) ([]*models.StudyRequest, error) {
	query, args, err := r.sb.Select(
		"id", "user_id", "subject", "topic", "location", "description", "is_active", "created_at",
	).
		From("study_requests").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list own study requests query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageFailure("study_requests.list_by_user", err)
	}
	defer rows.Close()

	var out []*models.StudyRequest
	for rows.Next() {
		var sr models.StudyRequest
		if err := rows.Scan(
			&sr.ID, &sr.UserID, &sr.Subject, &sr.Topic, &sr.Location, &sr.Description, &sr.IsActive, &sr.CreatedAt,
		); err != nil {
			return nil, storageFailure("study_requests.list_by_user", err)
		}
		out = append(out, &sr)
	}
	if err := rows.Err(); err != nil {
		return nil, storageFailure("study_requests.list_by_user", err)
	}
	return out, nil
}
