package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

// LessonRepository implements secondary.LessonRepository with SQLite.
type LessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new SQLite lesson repository.
func NewLessonRepository(db *sql.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

const lessonSelectCols = "id, section_id, path, lesson_number"

func scanLesson(scanner interface {
	Scan(dest ...any) error
}) (*secondary.LessonRecord, error) {
	record := &secondary.LessonRecord{}
	err := scanner.Scan(&record.ID, &record.SectionID, &record.Path, &record.LessonNumber)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CreateBatch bulk-inserts lessons under a section.
func (r *LessonRepository) CreateBatch(ctx context.Context, sectionID string, seeds []secondary.LessonSeed) ([]*secondary.LessonRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin lesson creation: %w", err)
	}
	defer tx.Rollback()

	var sectionCount int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections WHERE id = ?", sectionID).Scan(&sectionCount); err != nil {
		return nil, fmt.Errorf("failed to check section existence: %w", err)
	}
	if sectionCount == 0 {
		return nil, errs.NotFoundID("section", sectionID)
	}

	created := make([]*secondary.LessonRecord, 0, len(seeds))
	for _, seed := range seeds {
		record := &secondary.LessonRecord{
			ID:           ident.NewID(),
			SectionID:    sectionID,
			Path:         seed.Path,
			LessonNumber: seed.Number,
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO lessons (id, section_id, path, lesson_number) VALUES (?, ?, ?, ?)",
			record.ID, record.SectionID, record.Path, record.LessonNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create lesson: %w", err)
		}
		created = append(created, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit lesson creation: %w", err)
	}
	return created, nil
}

// GetByID retrieves a lesson by its ID.
func (r *LessonRepository) GetByID(ctx context.Context, id string) (*secondary.LessonRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+lessonSelectCols+" FROM lessons WHERE id = ?", id,
	)
	record, err := scanLesson(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("lesson", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return record, nil
}

// ListBySection retrieves a section's lessons ordered by lesson number.
func (r *LessonRepository) ListBySection(ctx context.Context, sectionID string) ([]*secondary.LessonRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+lessonSelectCols+" FROM lessons WHERE section_id = ? ORDER BY lesson_number ASC",
		sectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*secondary.LessonRecord
	for rows.Next() {
		record, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, record)
	}
	return lessons, rows.Err()
}

// Update overwrites path, section and lesson number with the caller's
// authoritative values.
func (r *LessonRepository) Update(ctx context.Context, lesson *secondary.LessonRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE lessons SET path = ?, section_id = ?, lesson_number = ? WHERE id = ?",
		lesson.Path, lesson.SectionID, lesson.LessonNumber, lesson.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return requireRow(result, "lesson", lesson.ID)
}

// Delete removes a lesson; bound videos and their clips cascade.
func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return requireRow(result, "lesson", id)
}

// Ensure LessonRepository implements the interface
var _ secondary.LessonRepository = (*LessonRepository)(nil)
