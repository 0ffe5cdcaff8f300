package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/core/verchain"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/ports/secondary"
)

// RepoService implements primary.RepoService.
type RepoService struct {
	repos     secondary.RepoRepository
	versions  secondary.VersionRepository
	workspace secondary.Workspace
	logger    *slog.Logger
}

// NewRepoService creates a repo service.
func NewRepoService(
	repos secondary.RepoRepository,
	versions secondary.VersionRepository,
	workspace secondary.Workspace,
	logger *slog.Logger,
) *RepoService {
	return &RepoService{repos: repos, versions: versions, workspace: workspace, logger: logger}
}

// CreateRepo validates the course directory, parses its structure and
// creates the repo together with its first version.
func (s *RepoService) CreateRepo(ctx context.Context, req primary.CreateRepoRequest) (*primary.CreateRepoResponse, error) {
	if !s.workspace.Exists(req.FilePath) {
		return nil, errs.NotFound("course directory", map[string]string{"path": req.FilePath})
	}

	parsed, err := s.workspace.ParseRepo(req.FilePath)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "parse repo", err)
	}

	name := req.Name
	if name == "" {
		name = filepath.Base(strings.TrimRight(req.FilePath, "/"))
	}

	repo := &secondary.RepoRecord{ID: ident.NewID(), Name: name, FilePath: req.FilePath}
	version := &secondary.VersionRecord{ID: ident.NewID(), Name: "v1"}
	seeds := make([]secondary.SectionSeed, len(parsed))
	for i, section := range parsed {
		seed := secondary.SectionSeed{Title: section.Title}
		for _, lesson := range section.Lessons {
			seed.Lessons = append(seed.Lessons, secondary.LessonSeed{Path: lesson.Path, Number: lesson.Number})
		}
		seeds[i] = seed
	}

	if err := s.repos.CreateWithStructure(ctx, repo, version, seeds); err != nil {
		return nil, wrapUnexpected(s.logger, "create repo", err)
	}

	s.logger.Info("repo created", "repoId", repo.ID, "path", repo.FilePath, "sections", len(seeds))

	created, err := s.GetRepo(ctx, repo.ID)
	if err != nil {
		return nil, err
	}
	return &primary.CreateRepoResponse{
		Repo:         created,
		FirstVersion: created.Versions[0],
	}, nil
}

// GetRepo retrieves a repo with its version chain.
func (s *RepoService) GetRepo(ctx context.Context, repoID string) (*primary.Repo, error) {
	record, err := s.repos.GetByID(ctx, repoID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "get repo", err)
	}
	chain, err := s.versions.ListByRepo(ctx, repoID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list versions", err)
	}

	repo := toRepo(record)
	for _, v := range chain {
		repo.Versions = append(repo.Versions, toVersion(v))
	}
	return repo, nil
}

// ListRepos lists repos.
func (s *RepoService) ListRepos(ctx context.Context, includeArchived bool) ([]*primary.Repo, error) {
	records, err := s.repos.List(ctx, secondary.RepoFilters{IncludeArchived: includeArchived})
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list repos", err)
	}

	repos := make([]*primary.Repo, len(records))
	for i, r := range records {
		repos[i] = toRepo(r)
	}
	return repos, nil
}

// CreateVersion appends an empty version to the repo's chain.
func (s *RepoService) CreateVersion(ctx context.Context, repoID, name string) (*primary.RepoVersion, error) {
	version := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: name}
	if err := s.versions.Create(ctx, version); err != nil {
		return nil, wrapUnexpected(s.logger, "create version", err)
	}
	return toVersion(version), nil
}

// CopyVersionStructure branches a new version by deep-copying the source
// version's structure. The latest-version guard is evaluated here on a
// pre-read and re-checked inside the copy transaction, which stays
// authoritative.
func (s *RepoService) CopyVersionStructure(ctx context.Context, sourceVersionID, repoID, newVersionName string) (*primary.RepoVersion, error) {
	source, err := s.versions.GetByID(ctx, sourceVersionID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "get source version", err)
	}
	latest, err := s.versions.GetLatest(ctx, repoID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "get latest version", err)
	}
	if err := verchain.CanCopyStructure(verchain.ChainView{
		VersionID:  source.ID,
		VersionSeq: source.Seq,
		LatestSeq:  latest.Seq,
	}); err != nil {
		return nil, err
	}

	newVersion := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: newVersionName}
	if err := s.versions.CopyStructure(ctx, sourceVersionID, newVersion); err != nil {
		return nil, wrapUnexpected(s.logger, "copy version structure", err)
	}

	s.logger.Info("version branched", "sourceVersionId", sourceVersionID, "newVersionId", newVersion.ID)
	return toVersion(newVersion), nil
}

// DeleteRepoVersion deletes the repo's latest version and returns the new
// latest.
func (s *RepoService) DeleteRepoVersion(ctx context.Context, versionID string) (*primary.RepoVersion, error) {
	newLatest, err := s.versions.Delete(ctx, versionID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "delete version", err)
	}
	if newLatest == nil {
		return nil, nil
	}
	return toVersion(newLatest), nil
}

// RenameRepo updates the repo name.
func (s *RepoService) RenameRepo(ctx context.Context, repoID, name string) error {
	return wrapUnexpected(s.logger, "rename repo", s.repos.Rename(ctx, repoID, name))
}

// RenameVersion updates a version name.
func (s *RepoService) RenameVersion(ctx context.Context, versionID, name string) error {
	return wrapUnexpected(s.logger, "rename version", s.versions.Rename(ctx, versionID, name))
}

// ArchiveRepo sets the repo's archived flag.
func (s *RepoService) ArchiveRepo(ctx context.Context, repoID string, archived bool) error {
	return wrapUnexpected(s.logger, "archive repo", s.repos.SetArchived(ctx, repoID, archived))
}

// UpdateRepoFilePath points the repo at a new course directory.
func (s *RepoService) UpdateRepoFilePath(ctx context.Context, repoID, filePath string) error {
	return wrapUnexpected(s.logger, "update repo path", s.repos.UpdateFilePath(ctx, repoID, filePath))
}

// DeleteRepo removes a repo and everything beneath it.
func (s *RepoService) DeleteRepo(ctx context.Context, repoID string) error {
	return wrapUnexpected(s.logger, "delete repo", s.repos.Delete(ctx, repoID))
}

func toRepo(r *secondary.RepoRecord) *primary.Repo {
	return &primary.Repo{
		ID:        r.ID,
		Name:      r.Name,
		FilePath:  r.FilePath,
		Archived:  r.Archived,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toVersion(v *secondary.VersionRecord) *primary.RepoVersion {
	return &primary.RepoVersion{
		ID:        v.ID,
		RepoID:    v.RepoID,
		Name:      v.Name,
		Seq:       v.Seq,
		CreatedAt: v.CreatedAt,
	}
}

// Ensure RepoService implements the interface
var _ primary.RepoService = (*RepoService)(nil)
