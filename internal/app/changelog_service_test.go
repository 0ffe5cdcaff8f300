package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cutroom/internal/ports/secondary"
)

func TestRepoChangelogProjectsSnapshots(t *testing.T) {
	versions := &mockVersionRepo{
		listByRepo: func(ctx context.Context, repoID string) ([]*secondary.VersionRecord, error) {
			return []*secondary.VersionRecord{
				{ID: "v1-id", Name: "v1", Seq: 1},
				{ID: "v2-id", Name: "v2", Seq: 2},
			}, nil
		},
	}
	sections := &mockSectionRepo{
		listByVersion: func(ctx context.Context, repoVersionID string) ([]*secondary.SectionRecord, error) {
			switch repoVersionID {
			case "v1-id":
				return []*secondary.SectionRecord{{ID: "s1", Title: "Getting Started", Ord: "n"}}, nil
			default:
				return []*secondary.SectionRecord{
					{ID: "s2", Title: "Getting Started", Ord: "n"},
					{ID: "s3", Title: "Advanced Topics", Ord: "u"},
				}, nil
			}
		},
	}
	lessons := &mockLessonRepo{
		listBySection: func(ctx context.Context, sectionID string) ([]*secondary.LessonRecord, error) {
			switch sectionID {
			case "s1":
				return []*secondary.LessonRecord{{ID: "l1", Path: "3-intro", LessonNumber: 3}}, nil
			case "s2":
				return []*secondary.LessonRecord{{ID: "l2", Path: "3-intro-revised", LessonNumber: 3}}, nil
			default:
				return nil, nil
			}
		},
	}
	svc := NewChangelogService(versions, sections, lessons, testLogger())

	entries, err := svc.RepoChangelog(context.Background(), "repo-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "v1", entries[0].FromVersion)
	assert.Equal(t, "v2", entries[0].ToVersion)
	assert.Contains(t, entries[0].Changes, `section added: "Advanced Topics"`)
	assert.Contains(t, entries[0].Changes, `lesson renamed: "3-intro" → "3-intro-revised" (section "Getting Started")`)
}

func TestRepoChangelogSingleVersion(t *testing.T) {
	versions := &mockVersionRepo{
		listByRepo: func(ctx context.Context, repoID string) ([]*secondary.VersionRecord, error) {
			return []*secondary.VersionRecord{{ID: "v1-id", Name: "v1", Seq: 1}}, nil
		},
	}
	sections := &mockSectionRepo{
		listByVersion: func(ctx context.Context, repoVersionID string) ([]*secondary.SectionRecord, error) {
			return nil, nil
		},
	}
	svc := NewChangelogService(versions, sections, &mockLessonRepo{}, testLogger())

	entries, err := svc.RepoChangelog(context.Background(), "repo-1")
	require.NoError(t, err)
	assert.Empty(t, entries, "a single version has no pairs to diff")
}
