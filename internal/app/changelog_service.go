package app

import (
	"context"
	"log/slog"

	"github.com/example/cutroom/internal/core/changelog"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/ports/secondary"
)

// ChangelogService implements primary.ChangelogService by loading version
// snapshots and delegating the diff to the pure changelog projector.
type ChangelogService struct {
	versions secondary.VersionRepository
	sections secondary.SectionRepository
	lessons  secondary.LessonRepository
	logger   *slog.Logger
}

// NewChangelogService creates a changelog service.
func NewChangelogService(
	versions secondary.VersionRepository,
	sections secondary.SectionRepository,
	lessons secondary.LessonRepository,
	logger *slog.Logger,
) *ChangelogService {
	return &ChangelogService{versions: versions, sections: sections, lessons: lessons, logger: logger}
}

// RepoChangelog returns the changes between each pair of consecutive
// versions, oldest to newest.
func (s *ChangelogService) RepoChangelog(ctx context.Context, repoID string) ([]changelog.Entry, error) {
	chain, err := s.versions.ListByRepo(ctx, repoID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list versions", err)
	}

	snapshots := make([]changelog.Snapshot, len(chain))
	for i, version := range chain {
		snapshot, err := s.loadSnapshot(ctx, version)
		if err != nil {
			return nil, err
		}
		snapshots[i] = snapshot
	}
	return changelog.Project(snapshots), nil
}

func (s *ChangelogService) loadSnapshot(ctx context.Context, version *secondary.VersionRecord) (changelog.Snapshot, error) {
	snapshot := changelog.Snapshot{
		VersionID:   version.ID,
		VersionName: version.Name,
		Seq:         version.Seq,
	}

	sections, err := s.sections.ListByVersion(ctx, version.ID)
	if err != nil {
		return snapshot, wrapUnexpected(s.logger, "list sections", err)
	}
	for _, sec := range sections {
		section := changelog.Section{Title: sec.Title, Ord: sec.Ord}
		lessons, err := s.lessons.ListBySection(ctx, sec.ID)
		if err != nil {
			return snapshot, wrapUnexpected(s.logger, "list lessons", err)
		}
		for _, l := range lessons {
			section.Lessons = append(section.Lessons, changelog.Lesson{Path: l.Path, Number: l.LessonNumber})
		}
		snapshot.Sections = append(snapshot.Sections, section)
	}
	return snapshot, nil
}

// Ensure ChangelogService implements the interface
var _ primary.ChangelogService = (*ChangelogService)(nil)
