package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cutroom/internal/core/order"
	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

// ClipSectionRepository implements secondary.ClipSectionRepository with SQLite.
//
// Clip sections and unsectioned clips share one order-key space per video,
// so an insertion point can reference either kind of neighbor.
type ClipSectionRepository struct {
	db *sql.DB
}

// NewClipSectionRepository creates a new SQLite clip section repository.
func NewClipSectionRepository(db *sql.DB) *ClipSectionRepository {
	return &ClipSectionRepository{db: db}
}

const clipSectionSelectCols = "id, video_id, name, ord, archived"

func scanClipSection(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ClipSectionRecord, error) {
	record := &secondary.ClipSectionRecord{}
	err := scanner.Scan(&record.ID, &record.VideoID, &record.Name, &record.Ord, &record.Archived)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// timelineKeysQuery selects the order keys of a video's timeline items:
// clip sections plus unsectioned clips.
const timelineKeysQuery = `
	SELECT ord FROM clip_sections WHERE video_id = ?
	UNION ALL
	SELECT ord FROM clips WHERE video_id = ? AND clip_section_id IS NULL
`

// Create persists a clip section at a caller-supplied order key.
func (r *ClipSectionRepository) Create(ctx context.Context, section *secondary.ClipSectionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clip_sections (id, video_id, name, ord, archived) VALUES (?, ?, ?, ?, ?)",
		section.ID, section.VideoID, section.Name, section.Ord, section.Archived,
	)
	if err != nil {
		return fmt.Errorf("failed to create clip section: %w", err)
	}
	return nil
}

// CreateAtInsertionPoint persists a clip section with its order key computed
// from a fresh neighbor read inside the insert transaction. Two concurrent
// inserts at the same point serialize on the transaction and each sees the
// other's key, so collisions resolve themselves.
func (r *ClipSectionRepository) CreateAtInsertionPoint(ctx context.Context, section *secondary.ClipSectionRecord, point timeline.InsertionPoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clip section creation: %w", err)
	}
	defer tx.Rollback()

	switch point.Type {
	case timeline.InsertAtStart:
		var minOrd sql.NullString
		err = tx.QueryRowContext(ctx,
			"SELECT MIN(ord) FROM ("+timelineKeysQuery+")",
			section.VideoID, section.VideoID,
		).Scan(&minOrd)
		if err != nil {
			return fmt.Errorf("failed to read timeline order keys: %w", err)
		}
		if minOrd.Valid {
			section.Ord = order.Before(minOrd.String)
		} else {
			section.Ord = order.Initial()
		}

	case timeline.InsertAfterClip:
		var clipOrd string
		err = tx.QueryRowContext(ctx,
			"SELECT ord FROM clips WHERE id = ? AND video_id = ?",
			point.ClipID, section.VideoID,
		).Scan(&clipOrd)
		if err == sql.ErrNoRows {
			return errs.NotFound("clip", map[string]string{"id": point.ClipID, "videoId": section.VideoID})
		}
		if err != nil {
			return fmt.Errorf("failed to read insertion clip: %w", err)
		}

		var nextOrd sql.NullString
		err = tx.QueryRowContext(ctx,
			"SELECT MIN(ord) FROM ("+timelineKeysQuery+") WHERE ord > ?",
			section.VideoID, section.VideoID, clipOrd,
		).Scan(&nextOrd)
		if err != nil {
			return fmt.Errorf("failed to read next sibling: %w", err)
		}
		if nextOrd.Valid {
			section.Ord = order.Between(clipOrd, nextOrd.String)
		} else {
			section.Ord = order.After(clipOrd)
		}

	default:
		return fmt.Errorf("unsupported insertion point type %q", point.Type)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO clip_sections (id, video_id, name, ord, archived) VALUES (?, ?, ?, ?, 0)",
		section.ID, section.VideoID, section.Name, section.Ord,
	)
	if err != nil {
		return fmt.Errorf("failed to create clip section: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clip section creation: %w", err)
	}
	return nil
}

// Reorder swaps the section's order key with its nearest non-archived
// sibling section. At a boundary there is no neighbor and the call is a
// successful no-op.
func (r *ClipSectionRepository) Reorder(ctx context.Context, id string, dir timeline.Direction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	var videoID, ord string
	err = tx.QueryRowContext(ctx,
		"SELECT video_id, ord FROM clip_sections WHERE id = ?", id,
	).Scan(&videoID, &ord)
	if err == sql.ErrNoRows {
		return errs.NotFoundID("clip section", id)
	}
	if err != nil {
		return fmt.Errorf("failed to read clip section: %w", err)
	}

	var neighborQuery string
	switch dir {
	case timeline.DirectionUp:
		neighborQuery = "SELECT id, ord FROM clip_sections WHERE video_id = ? AND archived = 0 AND ord < ? ORDER BY ord DESC LIMIT 1"
	case timeline.DirectionDown:
		neighborQuery = "SELECT id, ord FROM clip_sections WHERE video_id = ? AND archived = 0 AND ord > ? ORDER BY ord ASC LIMIT 1"
	default:
		return fmt.Errorf("unsupported reorder direction %q", dir)
	}

	var neighborID, neighborOrd string
	err = tx.QueryRowContext(ctx, neighborQuery, videoID, ord).Scan(&neighborID, &neighborOrd)
	if err == sql.ErrNoRows {
		// Already at the boundary.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read neighbor section: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE clip_sections SET ord = ? WHERE id = ?", neighborOrd, id); err != nil {
		return fmt.Errorf("failed to reorder clip section: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE clip_sections SET ord = ? WHERE id = ?", ord, neighborID); err != nil {
		return fmt.Errorf("failed to reorder neighbor section: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// SetArchived soft-deletes or restores a clip section.
func (r *ClipSectionRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clip_sections SET archived = ? WHERE id = ?", archived, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update clip section archive status: %w", err)
	}
	return requireRow(result, "clip section", id)
}

// GetByID retrieves a clip section by its ID.
func (r *ClipSectionRepository) GetByID(ctx context.Context, id string) (*secondary.ClipSectionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clipSectionSelectCols+" FROM clip_sections WHERE id = ?", id,
	)
	record, err := scanClipSection(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("clip section", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clip section: %w", err)
	}
	return record, nil
}

// ListByVideo retrieves a video's clip sections in timeline order.
func (r *ClipSectionRepository) ListByVideo(ctx context.Context, videoID string, includeArchived bool) ([]*secondary.ClipSectionRecord, error) {
	query := "SELECT " + clipSectionSelectCols + " FROM clip_sections WHERE video_id = ?"
	if !includeArchived {
		query += " AND archived = 0"
	}
	query += " ORDER BY ord ASC"

	rows, err := r.db.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clip sections: %w", err)
	}
	defer rows.Close()

	var sections []*secondary.ClipSectionRecord
	for rows.Next() {
		record, err := scanClipSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clip section: %w", err)
		}
		sections = append(sections, record)
	}
	return sections, rows.Err()
}

// Ensure ClipSectionRepository implements the interface
var _ secondary.ClipSectionRepository = (*ClipSectionRepository)(nil)
