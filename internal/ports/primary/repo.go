// Package primary defines the primary ports (driving interfaces) for the engine.
// Callers — CLI commands today, HTTP handlers elsewhere — depend only on
// these interfaces and the request/response types they carry.
package primary

import "context"

// RepoService manages repos and their linear version history.
type RepoService interface {
	// CreateRepo creates a repo from a course directory: the path is
	// validated against the filesystem, the tree is parsed, and the repo,
	// its first version and the structure are created together.
	CreateRepo(ctx context.Context, req CreateRepoRequest) (*CreateRepoResponse, error)

	// GetRepo retrieves a repo with its version chain.
	GetRepo(ctx context.Context, repoID string) (*Repo, error)

	// ListRepos lists repos.
	ListRepos(ctx context.Context, includeArchived bool) ([]*Repo, error)

	// CreateVersion appends an empty version to the repo's chain.
	CreateVersion(ctx context.Context, repoID, name string) (*RepoVersion, error)

	// CopyVersionStructure branches a new version by deep-copying the
	// source version's structure. The source must be the repo's latest
	// version.
	CopyVersionStructure(ctx context.Context, sourceVersionID, repoID, newVersionName string) (*RepoVersion, error)

	// DeleteRepoVersion deletes the repo's latest version and returns the
	// new latest. The sole remaining version cannot be deleted.
	DeleteRepoVersion(ctx context.Context, versionID string) (*RepoVersion, error)

	// RenameRepo updates the repo name. Idempotent.
	RenameRepo(ctx context.Context, repoID, name string) error

	// RenameVersion updates a version name. Idempotent.
	RenameVersion(ctx context.Context, versionID, name string) error

	// ArchiveRepo sets the repo's archived flag. Idempotent.
	ArchiveRepo(ctx context.Context, repoID string, archived bool) error

	// UpdateRepoFilePath points the repo at a new course directory. Fails
	// when several repos share the repo's current path, since the update
	// cannot disambiguate which row the operator meant.
	UpdateRepoFilePath(ctx context.Context, repoID, filePath string) error

	// DeleteRepo removes a repo and everything beneath it.
	DeleteRepo(ctx context.Context, repoID string) error
}

// CreateRepoRequest carries the inputs for repo creation.
type CreateRepoRequest struct {
	FilePath string
	Name     string
}

// CreateRepoResponse carries the created repo and its first version.
type CreateRepoResponse struct {
	Repo         *Repo
	FirstVersion *RepoVersion
}

// Repo is a top-level tracked content source.
type Repo struct {
	ID        string
	Name      string
	FilePath  string
	Archived  bool
	CreatedAt string
	UpdatedAt string
	Versions  []*RepoVersion
}

// RepoVersion is one snapshot in a repo's linear version history.
type RepoVersion struct {
	ID        string
	RepoID    string
	Name      string
	Seq       int
	CreatedAt string
}
