package sqlite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/db"
	"github.com/example/cutroom/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the full schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return database
}

// createTestRepo seeds a repo with one version and the given structure,
// returning the repo and version ids.
func createTestRepo(t *testing.T, database *sql.DB, filePath string, sections []secondary.SectionSeed) (string, string) {
	t.Helper()

	repo := &secondary.RepoRecord{ID: ident.NewID(), Name: "test-repo", FilePath: filePath}
	version := &secondary.VersionRecord{ID: ident.NewID(), Name: "v1"}
	if err := NewRepoRepository(database).CreateWithStructure(context.Background(), repo, version, sections); err != nil {
		t.Fatalf("failed to seed repo: %v", err)
	}
	return repo.ID, version.ID
}

// createTestVideo seeds a standalone video and returns its id.
func createTestVideo(t *testing.T, database *sql.DB) string {
	t.Helper()

	video := &secondary.VideoRecord{ID: ident.NewID(), Path: "recordings/take-1.mp4"}
	if err := NewVideoRepository(database).Create(context.Background(), video); err != nil {
		t.Fatalf("failed to seed video: %v", err)
	}
	return video.ID
}

// appendTestClips appends clips with one-second spans and returns them in
// timeline order.
func appendTestClips(t *testing.T, database *sql.DB, videoID string, count int) []*secondary.ClipRecord {
	t.Helper()

	clips := make([]*secondary.ClipRecord, count)
	for i := range clips {
		clips[i] = &secondary.ClipRecord{
			ID:              ident.NewID(),
			VideoFilename:   "take-1.mp4",
			SourceStartTime: float64(i),
			SourceEndTime:   float64(i) + 1,
			BeatType:        "talking-head",
		}
	}
	if err := NewClipRepository(database).AppendBatch(context.Background(), videoID, clips); err != nil {
		t.Fatalf("failed to seed clips: %v", err)
	}
	return clips
}

// structureSeed is the two-section fixture used across repo and version tests.
func structureSeed() []secondary.SectionSeed {
	return []secondary.SectionSeed{
		{
			Title: "Getting Started",
			Lessons: []secondary.LessonSeed{
				{Path: "1-intro", Number: 1},
				{Path: "2-setup", Number: 2},
			},
		},
		{
			Title: "Advanced Topics",
			Lessons: []secondary.LessonSeed{
				{Path: "3-internals", Number: 3},
			},
		},
	}
}
