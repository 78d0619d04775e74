package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/studybuddy/internal/app/models"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/dberrors"
	"github.com/yigit/studybuddy/internal/pkg/helpers"
)

// NoteRepository handles database operations for notes
type NoteRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *sql.DB, sb squirrel.StatementBuilderType) *NoteRepository {
	return &NoteRepository{db: db, sb: sb}
}

// selectNoteDetailsQuery selects notes joined with the uploader's name
func (r *NoteRepository) selectNoteDetailsQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"n.id", "n.title", "n.subject", "n.description", "n.filename", "n.file_path",
		"n.uploaded_by", "n.downloads", "n.likes", "n.created_at", "u.full_name AS uploader_name",
	).
		From("notes n").
		Join("users u ON n.uploaded_by = u.id")
}

func scanNoteDetails(row rowScanner) (*models.NoteDetails, error) {
	var n models.NoteDetails
	err := row.Scan(
		&n.ID, &n.Title, &n.Subject, &n.Description, &n.Filename, &n.FilePath,
		&n.UploadedBy, &n.Downloads, &n.Likes, &n.CreatedAt, &n.UploaderName,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a note row and returns its id
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("notes").
		Columns("title", "subject", "description", "filename", "file_path", "uploaded_by", "created_at").
		Values(note.Title, note.Subject, note.Description, note.Filename, note.FilePath, note.UploadedBy, note.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create note query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, storageFailure("notes.create", err)
	}

	note.ID = id
	return id, nil
}

// Delete removes a note row. Only used to undo a Create whose file could not be committed.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("notes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete note query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storageFailure("notes.delete", err)
	}
	return nil
}

// GetByID fetches one note with its uploader's name
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.NoteDetails, error) {
	query, args, err := r.selectNoteDetailsQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get note query: %w", err)
	}

	note, err := scanNoteDetails(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, storageFailure("notes.get_by_id", err)
	}
	return note, nil
}

// ListAll returns every note, newest first
func (r *NoteRepository) ListAll(ctx context.Context) ([]*models.NoteDetails, error) {
	return r.list(ctx, r.selectNoteDetailsQuery().OrderBy("n.created_at DESC", "n.id DESC"))
}

// List returns one page of notes, newest first
func (r *NoteRepository) List(ctx context.Context, page, size int) ([]*models.NoteDetails, dto.PaginationInfo, error) {
	countQuery, countArgs, err := r.sb.Select("count(*)").From("notes").ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("build count notes query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, storageFailure("notes.count", err)
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	if total == 0 {
		return []*models.NoteDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	notes, err := r.list(ctx, r.selectNoteDetailsQuery().
		OrderBy("n.created_at DESC", "n.id DESC").
		Limit(limit).
		Offset(offset))
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return notes, pagination, nil
}

func (r *NoteRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.NoteDetails, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notes query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageFailure("notes.list", err)
	}
	defer rows.Close()

	notes := []*models.NoteDetails{}
	for rows.Next() {
		n, err := scanNoteDetails(rows)
		if err != nil {
			return nil, storageFailure("notes.list", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageFailure("notes.list", err)
	}
	return notes, nil
}
