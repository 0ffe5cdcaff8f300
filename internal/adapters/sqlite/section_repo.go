package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/core/order"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

// SectionRepository implements secondary.SectionRepository with SQLite.
type SectionRepository struct {
	db *sql.DB
}

// NewSectionRepository creates a new SQLite section repository.
func NewSectionRepository(db *sql.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// CreateBatch bulk-inserts sections under a version. Order keys continue
// from the version's current maximum, read fresh inside the transaction.
func (r *SectionRepository) CreateBatch(ctx context.Context, repoVersionID string, seeds []secondary.SectionSeed) ([]*secondary.SectionRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin section creation: %w", err)
	}
	defer tx.Rollback()

	var versionCount int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM repo_versions WHERE id = ?", repoVersionID).Scan(&versionCount); err != nil {
		return nil, fmt.Errorf("failed to check version existence: %w", err)
	}
	if versionCount == 0 {
		return nil, errs.NotFoundID("repo version", repoVersionID)
	}

	var maxOrd sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT MAX(ord) FROM sections WHERE repo_version_id = ?", repoVersionID,
	).Scan(&maxOrd)
	if err != nil {
		return nil, fmt.Errorf("failed to read section order keys: %w", err)
	}

	key := maxOrd.String
	created := make([]*secondary.SectionRecord, 0, len(seeds))
	for _, seed := range seeds {
		key = order.After(key)
		record := &secondary.SectionRecord{
			ID:            ident.NewID(),
			RepoVersionID: repoVersionID,
			Title:         seed.Title,
			Ord:           key,
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO sections (id, repo_version_id, title, ord) VALUES (?, ?, ?, ?)",
			record.ID, record.RepoVersionID, record.Title, record.Ord,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create section: %w", err)
		}

		for _, lesson := range seed.Lessons {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO lessons (id, section_id, path, lesson_number) VALUES (?, ?, ?, ?)",
				ident.NewID(), record.ID, lesson.Path, lesson.Number,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create lesson: %w", err)
			}
		}
		created = append(created, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit section creation: %w", err)
	}
	return created, nil
}

// GetByID retrieves a section by its ID.
func (r *SectionRepository) GetByID(ctx context.Context, id string) (*secondary.SectionRecord, error) {
	record := &secondary.SectionRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, repo_version_id, title, ord FROM sections WHERE id = ?", id,
	).Scan(&record.ID, &record.RepoVersionID, &record.Title, &record.Ord)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("section", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return record, nil
}

// ListByVersion retrieves a version's sections in order.
func (r *SectionRepository) ListByVersion(ctx context.Context, repoVersionID string) ([]*secondary.SectionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, repo_version_id, title, ord FROM sections WHERE repo_version_id = ? ORDER BY ord ASC",
		repoVersionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []*secondary.SectionRecord
	for rows.Next() {
		record := &secondary.SectionRecord{}
		if err := rows.Scan(&record.ID, &record.RepoVersionID, &record.Title, &record.Ord); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, record)
	}
	return sections, rows.Err()
}

// Ensure SectionRepository implements the interface
var _ secondary.SectionRepository = (*SectionRepository)(nil)
