// Package sqlite contains SQLite implementations of repository interfaces.
//
// Invariant-bearing mutations (structure copies, chain deletes, order-key
// insertions) run inside a single transaction and re-check their
// preconditions against fresh reads, so concurrent callers cannot both
// observe a stale "I am latest" or hand in precomputed order keys.
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

// RepoRepository implements secondary.RepoRepository with SQLite.
type RepoRepository struct {
	db *sql.DB
}

// NewRepoRepository creates a new SQLite repo repository.
func NewRepoRepository(db *sql.DB) *RepoRepository {
	return &RepoRepository{db: db}
}

const repoSelectCols = "id, name, file_path, archived, created_at, updated_at"

// scanRepo scans a repo row into a RepoRecord.
func scanRepo(scanner interface {
	Scan(dest ...any) error
}) (*secondary.RepoRecord, error) {
	record := &secondary.RepoRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &record.FilePath, &record.Archived,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CreateWithStructure persists a repo, its first version, and the parsed
// structure in one transaction.
func (r *RepoRepository) CreateWithStructure(ctx context.Context, repo *secondary.RepoRecord, version *secondary.VersionRecord, sections []secondary.SectionSeed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin repo creation: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO repos (id, name, file_path) VALUES (?, ?, ?)",
		repo.ID, repo.Name, repo.FilePath,
	)
	if err != nil {
		return fmt.Errorf("failed to create repo: %w", err)
	}

	version.RepoID = repo.ID
	version.Seq = 1
	_, err = tx.ExecContext(ctx,
		"INSERT INTO repo_versions (id, repo_id, name, seq) VALUES (?, ?, ?, ?)",
		version.ID, version.RepoID, version.Name, version.Seq,
	)
	if err != nil {
		return fmt.Errorf("failed to create first version: %w", err)
	}

	if _, err := insertSectionSeeds(ctx, tx, version.ID, sections); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit repo creation: %w", err)
	}
	return nil
}

// insertSectionSeeds bulk-inserts sections with their lessons, generating
// ids and an ascending order-key chain. Shared with the version copy path.
func insertSectionSeeds(ctx context.Context, tx *sql.Tx, versionID string, sections []secondary.SectionSeed) ([]*secondary.SectionRecord, error) {
	created := make([]*secondary.SectionRecord, 0, len(sections))
	key := ""
	for _, seed := range sections {
		key = order.After(key)
		record := &secondary.SectionRecord{
			ID:            ident.NewID(),
			RepoVersionID: versionID,
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
	return created, nil
}

// GetByID retrieves a repo by its ID.
func (r *RepoRepository) GetByID(ctx context.Context, id string) (*secondary.RepoRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+repoSelectCols+" FROM repos WHERE id = ?", id,
	)

	record, err := scanRepo(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundID("repo", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get repo: %w", err)
	}
	return record, nil
}

// List retrieves repos matching the given filters.
func (r *RepoRepository) List(ctx context.Context, filters secondary.RepoFilters) ([]*secondary.RepoRecord, error) {
	query := "SELECT " + repoSelectCols + " FROM repos WHERE 1=1"
	args := []any{}

	if filters.FilePath != "" {
		query += " AND file_path = ?"
		args = append(args, filters.FilePath)
	}
	if !filters.IncludeArchived {
		query += " AND archived = 0"
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list repos: %w", err)
	}
	defer rows.Close()

	var repos []*secondary.RepoRecord
	for rows.Next() {
		record, err := scanRepo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repo: %w", err)
		}
		repos = append(repos, record)
	}
	return repos, rows.Err()
}

// Rename updates the repo name.
func (r *RepoRepository) Rename(ctx context.Context, id, name string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE repos SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		name, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename repo: %w", err)
	}
	return requireRow(result, "repo", id)
}

// SetArchived updates the archived flag.
func (r *RepoRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE repos SET archived = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		archived, id,
	)
	if err != nil {
		return fmt.Errorf("failed to archive repo: %w", err)
	}
	return requireRow(result, "repo", id)
}

// UpdateFilePath updates the repo's file path. The ambiguity count runs in
// the same transaction as the update: if more than one repo shares the
// target repo's current path, the operator's intent cannot be resolved and
// nothing is written.
func (r *RepoRepository) UpdateFilePath(ctx context.Context, id, filePath string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin path update: %w", err)
	}
	defer tx.Rollback()

	var currentPath string
	err = tx.QueryRowContext(ctx, "SELECT file_path FROM repos WHERE id = ?", id).Scan(&currentPath)
	if err == sql.ErrNoRows {
		return errs.NotFoundID("repo", id)
	}
	if err != nil {
		return fmt.Errorf("failed to read repo path: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM repos WHERE file_path = ?", currentPath).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count repos sharing path: %w", err)
	}
	if count > 1 {
		return errs.AmbiguousRepoUpdate(currentPath, count)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE repos SET file_path = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		filePath, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update repo path: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit path update: %w", err)
	}
	return nil
}

// Delete removes a repo; versions and structure go with it via foreign keys.
func (r *RepoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM repos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete repo: %w", err)
	}
	return requireRow(result, "repo", id)
}

// requireRow converts a zero-rows-affected result into a NotFound failure.
func requireRow(result sql.Result, entityKind, id string) error {
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errs.NotFoundID(entityKind, id)
	}
	return nil
}

// Ensure RepoRepository implements the interface
var _ secondary.RepoRepository = (*RepoRepository)(nil)
