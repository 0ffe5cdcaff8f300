package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/core/verchain"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

// VersionRepository implements secondary.VersionRepository with SQLite.
type VersionRepository struct {
	db *sql.DB
}

// NewVersionRepository creates a new SQLite version repository.
func NewVersionRepository(db *sql.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

const versionSelectCols = "id, repo_id, name, seq, created_at"

func scanVersion(scanner interface {
	Scan(dest ...any) error
}) (*secondary.VersionRecord, error) {
	record := &secondary.VersionRecord{}
	err := scanner.Scan(&record.ID, &record.RepoID, &record.Name, &record.Seq, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create appends a version to the repo's chain. The sequence number is
// assigned from a fresh read inside the insert transaction, so the chain
// stays strictly ordered even when two callers append concurrently.
func (r *VersionRepository) Create(ctx context.Context, version *secondary.VersionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin version creation: %w", err)
	}
	defer tx.Rollback()

	if err := insertVersion(ctx, tx, version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit version creation: %w", err)
	}
	return nil
}

// insertVersion assigns the next seq for the repo and inserts the row,
// filling version.Seq and CreatedAt.
func insertVersion(ctx context.Context, tx *sql.Tx, version *secondary.VersionRecord) error {
	var repoCount int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM repos WHERE id = ?", version.RepoID).Scan(&repoCount); err != nil {
		return fmt.Errorf("failed to check repo existence: %w", err)
	}
	if repoCount == 0 {
		return errs.NotFoundID("repo", version.RepoID)
	}

	err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM repo_versions WHERE repo_id = ?",
		version.RepoID,
	).Scan(&version.Seq)
	if err != nil {
		return fmt.Errorf("failed to assign version seq: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO repo_versions (id, repo_id, name, seq) VALUES (?, ?, ?, ?)",
		version.ID, version.RepoID, version.Name, version.Seq,
	)
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		"SELECT created_at FROM repo_versions WHERE id = ?", version.ID,
	).Scan(&version.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read version timestamp: %w", err)
	}
	return nil
}

// GetByID retrieves a version by its ID.
func (r *VersionRepository) GetByID(ctx context.Context, id string) (*secondary.VersionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+versionSelectCols+" FROM repo_versions WHERE id = ?", id,
	)
	record, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("repo version", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return record, nil
}

// GetLatest retrieves the repo's latest version (greatest seq).
func (r *VersionRepository) GetLatest(ctx context.Context, repoID string) (*secondary.VersionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+versionSelectCols+" FROM repo_versions WHERE repo_id = ? ORDER BY seq DESC LIMIT 1",
		repoID,
	)
	record, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("repo version", map[string]string{"repoId": repoID})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest version: %w", err)
	}
	return record, nil
}

// ListByRepo retrieves all versions of a repo in chain order.
func (r *VersionRepository) ListByRepo(ctx context.Context, repoID string) ([]*secondary.VersionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+versionSelectCols+" FROM repo_versions WHERE repo_id = ? ORDER BY seq ASC",
		repoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []*secondary.VersionRecord
	for rows.Next() {
		record, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, record)
	}
	return versions, rows.Err()
}

// Rename updates the version name.
func (r *VersionRepository) Rename(ctx context.Context, id, name string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE repo_versions SET name = ? WHERE id = ?", name, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename version: %w", err)
	}
	return requireRow(result, "repo version", id)
}

// CopyStructure branches a new version by deep-copying the source version's
// sections and lessons with fresh ids. The whole operation is one
// transaction: the "source is latest" guard is evaluated against a fresh
// read, and a failed guard performs zero writes.
func (r *VersionRepository) CopyStructure(ctx context.Context, sourceVersionID string, newVersion *secondary.VersionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin structure copy: %w", err)
	}
	defer tx.Rollback()

	source, err := chainViewTx(ctx, tx, sourceVersionID)
	if err != nil {
		return err
	}
	if err := verchain.CanCopyStructure(source); err != nil {
		return err
	}

	if err := insertVersion(ctx, tx, newVersion); err != nil {
		return err
	}

	sectionRows, err := tx.QueryContext(ctx,
		"SELECT id, title, ord FROM sections WHERE repo_version_id = ? ORDER BY ord ASC",
		sourceVersionID,
	)
	if err != nil {
		return fmt.Errorf("failed to read source sections: %w", err)
	}
	defer sectionRows.Close()

	type sourceSection struct {
		id    string
		title string
		ord   string
	}
	var sources []sourceSection
	for sectionRows.Next() {
		var s sourceSection
		if err := sectionRows.Scan(&s.id, &s.title, &s.ord); err != nil {
			return fmt.Errorf("failed to scan source section: %w", err)
		}
		sources = append(sources, s)
	}
	if err := sectionRows.Err(); err != nil {
		return fmt.Errorf("failed to read source sections: %w", err)
	}

	for _, src := range sources {
		newSectionID := ident.NewID()
		_, err := tx.ExecContext(ctx,
			"INSERT INTO sections (id, repo_version_id, title, ord) VALUES (?, ?, ?, ?)",
			newSectionID, newVersion.ID, src.title, src.ord,
		)
		if err != nil {
			return fmt.Errorf("failed to copy section: %w", err)
		}

		// Lesson ids are regenerated row by row; path and lesson_number
		// carry over untouched.
		lessonRows, err := tx.QueryContext(ctx,
			"SELECT path, lesson_number FROM lessons WHERE section_id = ? ORDER BY lesson_number ASC",
			src.id,
		)
		if err != nil {
			return fmt.Errorf("failed to read source lessons: %w", err)
		}

		type sourceLesson struct {
			path   string
			number int
		}
		var lessons []sourceLesson
		for lessonRows.Next() {
			var l sourceLesson
			if err := lessonRows.Scan(&l.path, &l.number); err != nil {
				lessonRows.Close()
				return fmt.Errorf("failed to scan source lesson: %w", err)
			}
			lessons = append(lessons, l)
		}
		if err := lessonRows.Err(); err != nil {
			lessonRows.Close()
			return fmt.Errorf("failed to read source lessons: %w", err)
		}
		lessonRows.Close()

		for _, l := range lessons {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO lessons (id, section_id, path, lesson_number) VALUES (?, ?, ?, ?)",
				ident.NewID(), newSectionID, l.path, l.number,
			)
			if err != nil {
				return fmt.Errorf("failed to copy lesson: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit structure copy: %w", err)
	}
	return nil
}

// Delete removes a version and returns the new latest. Guards run against a
// fresh read inside the delete transaction; cascades are handled by foreign
// keys.
func (r *VersionRepository) Delete(ctx context.Context, id string) (*secondary.VersionRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin version delete: %w", err)
	}
	defer tx.Rollback()

	view, err := chainViewTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := verchain.CanDeleteVersion(view); err != nil {
		return nil, err
	}

	var repoID string
	if err := tx.QueryRowContext(ctx, "SELECT repo_id FROM repo_versions WHERE id = ?", id).Scan(&repoID); err != nil {
		return nil, fmt.Errorf("failed to read version repo: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM repo_versions WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete version: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		"SELECT "+versionSelectCols+" FROM repo_versions WHERE repo_id = ? ORDER BY seq DESC LIMIT 1",
		repoID,
	)
	newLatest, err := scanVersion(row)
	if err == sql.ErrNoRows {
		newLatest = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read new latest version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit version delete: %w", err)
	}
	return newLatest, nil
}

// chainViewTx loads the guard snapshot for a version inside a transaction.
func chainViewTx(ctx context.Context, tx *sql.Tx, versionID string) (verchain.ChainView, error) {
	var view verchain.ChainView
	var repoID string

	err := tx.QueryRowContext(ctx,
		"SELECT id, repo_id, seq FROM repo_versions WHERE id = ?", versionID,
	).Scan(&view.VersionID, &repoID, &view.VersionSeq)
	if err == sql.ErrNoRows {
		return view, errs.NotFoundID("repo version", versionID)
	}
	if err != nil {
		return view, fmt.Errorf("failed to read version: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0), COUNT(*) FROM repo_versions WHERE repo_id = ?", repoID,
	).Scan(&view.LatestSeq, &view.VersionCount)
	if err != nil {
		return view, fmt.Errorf("failed to read version chain: %w", err)
	}
	return view, nil
}

// Ensure VersionRepository implements the interface
var _ secondary.VersionRepository = (*VersionRepository)(nil)
