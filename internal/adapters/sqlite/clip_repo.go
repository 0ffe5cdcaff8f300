package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/cutroom/internal/core/order"
	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

// ClipRepository implements secondary.ClipRepository with SQLite.
type ClipRepository struct {
	db *sql.DB
}

// NewClipRepository creates a new SQLite clip repository.
func NewClipRepository(db *sql.DB) *ClipRepository {
	return &ClipRepository{db: db}
}

const clipSelectCols = "id, video_id, clip_section_id, video_filename, source_start_time, source_end_time, beat_type, text, transcribed_at, ord"

func scanClip(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ClipRecord, error) {
	var sectionID, text, transcribedAt sql.NullString
	record := &secondary.ClipRecord{}
	err := scanner.Scan(
		&record.ID, &record.VideoID, &sectionID, &record.VideoFilename,
		&record.SourceStartTime, &record.SourceEndTime, &record.BeatType,
		&text, &transcribedAt, &record.Ord,
	)
	if err != nil {
		return nil, err
	}
	record.ClipSectionID = sectionID.String
	record.Text = text.String
	record.TranscribedAt = transcribedAt.String
	return record, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// AppendBatch persists clips at the end of the video's timeline. Order keys
// continue past the current maximum over sections and unsectioned clips,
// read fresh inside the insert transaction.
func (r *ClipRepository) AppendBatch(ctx context.Context, videoID string, clips []*secondary.ClipRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clip creation: %w", err)
	}
	defer tx.Rollback()

	var videoCount int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos WHERE id = ?", videoID).Scan(&videoCount); err != nil {
		return fmt.Errorf("failed to check video existence: %w", err)
	}
	if videoCount == 0 {
		return errs.NotFoundID("video", videoID)
	}

	var maxOrd sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT MAX(ord) FROM ("+timelineKeysQuery+")",
		videoID, videoID,
	).Scan(&maxOrd)
	if err != nil {
		return fmt.Errorf("failed to read timeline order keys: %w", err)
	}

	key := maxOrd.String
	for _, clip := range clips {
		if !timeline.ValidClipSpan(clip.SourceStartTime, clip.SourceEndTime) {
			return fmt.Errorf("clip span [%v, %v) is not well-formed", clip.SourceStartTime, clip.SourceEndTime)
		}
		key = order.After(key)
		clip.VideoID = videoID
		clip.Ord = key

		_, err := tx.ExecContext(ctx,
			`INSERT INTO clips (id, video_id, clip_section_id, video_filename, source_start_time, source_end_time, beat_type, text, transcribed_at, ord)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			clip.ID, clip.VideoID, nullable(clip.ClipSectionID), clip.VideoFilename,
			clip.SourceStartTime, clip.SourceEndTime, clip.BeatType,
			nullable(clip.Text), nullable(clip.TranscribedAt), clip.Ord,
		)
		if err != nil {
			return fmt.Errorf("failed to create clip: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clip creation: %w", err)
	}
	return nil
}

// GetByID retrieves a clip by its ID.
func (r *ClipRepository) GetByID(ctx context.Context, id string) (*secondary.ClipRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clipSelectCols+" FROM clips WHERE id = ?", id,
	)
	record, err := scanClip(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("clip", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clip: %w", err)
	}
	return record, nil
}

// ListByIDs retrieves clips by id in timeline order. Unknown ids are
// silently absent from the result; callers that care compare lengths.
func (r *ClipRepository) ListByIDs(ctx context.Context, ids []string) ([]*secondary.ClipRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clipSelectCols+" FROM clips WHERE id IN ("+placeholders+") ORDER BY ord ASC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clips: %w", err)
	}
	defer rows.Close()

	return collectClips(rows)
}

// ListByVideo retrieves a video's clips in timeline order. Clips inside
// archived sections are excluded unless includeArchived is set.
func (r *ClipRepository) ListByVideo(ctx context.Context, videoID string, includeArchived bool) ([]*secondary.ClipRecord, error) {
	query := `SELECT c.id, c.video_id, c.clip_section_id, c.video_filename, c.source_start_time, c.source_end_time, c.beat_type, c.text, c.transcribed_at, c.ord
		FROM clips c
		LEFT JOIN clip_sections cs ON c.clip_section_id = cs.id
		WHERE c.video_id = ?`
	if !includeArchived {
		query += " AND COALESCE(cs.archived, 0) = 0"
	}
	query += " ORDER BY c.ord ASC"

	rows, err := r.db.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clips: %w", err)
	}
	defer rows.Close()

	return collectClips(rows)
}

func collectClips(rows *sql.Rows) ([]*secondary.ClipRecord, error) {
	var clips []*secondary.ClipRecord
	for rows.Next() {
		record, err := scanClip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clip: %w", err)
		}
		clips = append(clips, record)
	}
	return clips, rows.Err()
}

// Update applies a partial update; nil fields are left unchanged. When either
// end of the span changes, the resulting span is validated against a fresh
// read of the untouched end.
func (r *ClipRepository) Update(ctx context.Context, id string, update secondary.ClipUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clip update: %w", err)
	}
	defer tx.Rollback()

	var start, end float64
	err = tx.QueryRowContext(ctx,
		"SELECT source_start_time, source_end_time FROM clips WHERE id = ?", id,
	).Scan(&start, &end)
	if err == sql.ErrNoRows {
		return errs.NotFoundID("clip", id)
	}
	if err != nil {
		return fmt.Errorf("failed to read clip: %w", err)
	}

	if update.SourceStartTime != nil {
		start = *update.SourceStartTime
	}
	if update.SourceEndTime != nil {
		end = *update.SourceEndTime
	}
	if update.SourceStartTime != nil || update.SourceEndTime != nil {
		if !timeline.ValidClipSpan(start, end) {
			return fmt.Errorf("clip span [%v, %v) is not well-formed", start, end)
		}
	}

	var sets []string
	var args []any
	if update.BeatType != nil {
		sets = append(sets, "beat_type = ?")
		args = append(args, *update.BeatType)
	}
	if update.ClipSectionID != nil {
		sets = append(sets, "clip_section_id = ?")
		args = append(args, nullable(*update.ClipSectionID))
	}
	if update.SourceStartTime != nil {
		sets = append(sets, "source_start_time = ?")
		args = append(args, *update.SourceStartTime)
	}
	if update.SourceEndTime != nil {
		sets = append(sets, "source_end_time = ?")
		args = append(args, *update.SourceEndTime)
	}
	if update.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, nullable(*update.Text))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err = tx.ExecContext(ctx,
		"UPDATE clips SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update clip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clip update: %w", err)
	}
	return nil
}

// SetTranscription writes back transcription text and timestamp.
func (r *ClipRepository) SetTranscription(ctx context.Context, id, text, transcribedAt string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clips SET text = ?, transcribed_at = ? WHERE id = ?",
		text, transcribedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set transcription: %w", err)
	}
	return requireRow(result, "clip", id)
}

// Ensure ClipRepository implements the interface
var _ secondary.ClipRepository = (*ClipRepository)(nil)
