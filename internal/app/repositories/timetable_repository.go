package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/studybuddy/internal/app/models"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/dberrors"
)

// TimetableRepository handles database operations for timetables
type TimetableRepository struct {
	db  *sql.DB
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewTimetableRepository creates a new TimetableRepository
func NewTimetableRepository(db *sql.DB, sb squirrel.StatementBuilderType) *TimetableRepository {
	return &TimetableRepository{db: db, sb: sb, now: time.Now}
}

// Upsert stores schedule as the user's timetable. It updates the existing
// row if there is one and inserts otherwise; each statement commits on its own.
func (r *TimetableRepository) Upsert(ctx context.Context, userID int64, schedule string) error {
	now := r.now().UTC()

	query, args, err := r.sb.Update("timetables").
		Set("schedule_data", schedule).
		Set("updated_at", now).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update timetable query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storageFailure("timetables.update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageFailure("timetables.update", err)
	}
	if affected > 0 {
		return nil
	}

	query, args, err = r.sb.Insert("timetables").
		Columns("user_id", "schedule_data", "created_at", "updated_at").
		Values(userID, schedule, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert timetable query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storageFailure("timetables.insert", err)
	}
	return nil
}

// GetByUserID returns the user's timetable or apperrors.ErrTimetableNotFound
func (r *TimetableRepository) GetByUserID(ctx context.Context, userID int64) (*models.Timetable, error) {
	query, args, err := r.sb.Select("id", "user_id", "schedule_data", "created_at", "updated_at").
		From("timetables").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get timetable query: %w", err)
	}

	var t models.Timetable
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.UserID, &t.ScheduleData, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrTimetableNotFound
		}
		return nil, storageFailure("timetables.get_by_user", err)
	}
	return &t, nil
}

// CountByUserID returns how many timetable rows the user has
func (r *TimetableRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	query, args, err := r.sb.Select("count(*)").From("timetables").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count timetable query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageFailure("timetables.count", err)
	}
	return n, nil
}
