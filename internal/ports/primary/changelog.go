package primary

import (
	"context"

	"github.com/example/cutroom/internal/core/changelog"
)

// ChangelogService derives human-readable diffs between version snapshots.
type ChangelogService interface {
	// RepoChangelog returns the changes between each pair of consecutive
	// versions, oldest to newest.
	RepoChangelog(ctx context.Context, repoID string) ([]changelog.Entry, error)
}
