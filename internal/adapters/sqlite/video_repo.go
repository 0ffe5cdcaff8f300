package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

// VideoRepository implements secondary.VideoRepository with SQLite.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new SQLite video repository.
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func scanVideo(scanner interface {
	Scan(dest ...any) error
}) (*secondary.VideoRecord, error) {
	var lessonID sql.NullString
	record := &secondary.VideoRecord{}
	err := scanner.Scan(&record.ID, &lessonID, &record.Path, &record.Archived)
	if err != nil {
		return nil, err
	}
	record.LessonID = lessonID.String
	return record, nil
}

// Create persists a new video.
func (r *VideoRepository) Create(ctx context.Context, video *secondary.VideoRecord) error {
	var lessonID sql.NullString
	if video.LessonID != "" {
		lessonID = sql.NullString{String: video.LessonID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO videos (id, lesson_id, path, archived) VALUES (?, ?, ?, ?)",
		video.ID, lessonID, video.Path, video.Archived,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// GetByID retrieves a video by its ID.
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*secondary.VideoRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, lesson_id, path, archived FROM videos WHERE id = ?", id,
	)
	record, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("video", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return record, nil
}

// List retrieves videos matching the given filters.
func (r *VideoRepository) List(ctx context.Context, filters secondary.VideoFilters) ([]*secondary.VideoRecord, error) {
	query := "SELECT id, lesson_id, path, archived FROM videos WHERE 1=1"
	args := []any{}

	if filters.LessonID != "" {
		query += " AND lesson_id = ?"
		args = append(args, filters.LessonID)
	}
	if filters.StandaloneOnly {
		query += " AND lesson_id IS NULL"
	}
	if !filters.IncludeArchived {
		query += " AND archived = 0"
	}
	query += " ORDER BY path ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*secondary.VideoRecord
	for rows.Next() {
		record, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, record)
	}
	return videos, rows.Err()
}

// SetArchived updates the archived flag.
func (r *VideoRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE videos SET archived = ? WHERE id = ?", archived, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update video archive status: %w", err)
	}
	return requireRow(result, "video", id)
}

// Ensure VideoRepository implements the interface
var _ secondary.VideoRepository = (*VideoRepository)(nil)
