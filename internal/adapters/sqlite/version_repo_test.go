package sqlite

import (
	"context"
	"sort"
	"testing"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

func TestCreateVersionAssignsSequentialSeq(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	versions := NewVersionRepository(database)

	repoID, _ := createTestRepo(t, database, "/courses/go-basics", nil)

	v2 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v2"}
	if err := versions.Create(ctx, v2); err != nil {
		t.Fatalf("failed to create version: %v", err)
	}
	if v2.Seq != 2 {
		t.Errorf("expected seq 2, got %d", v2.Seq)
	}
	if v2.CreatedAt == "" {
		t.Error("expected created_at to be filled in")
	}

	v3 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v3"}
	if err := versions.Create(ctx, v3); err != nil {
		t.Fatalf("failed to create version: %v", err)
	}
	if v3.Seq != 3 {
		t.Errorf("expected seq 3, got %d", v3.Seq)
	}

	latest, err := versions.GetLatest(ctx, repoID)
	if err != nil {
		t.Fatalf("failed to get latest: %v", err)
	}
	if latest.ID != v3.ID {
		t.Errorf("expected %s as latest, got %s", v3.ID, latest.ID)
	}

	chain, err := versions.ListByRepo(ctx, repoID)
	if err != nil {
		t.Fatalf("failed to list versions: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(chain))
	}
	for i, v := range chain {
		if v.Seq != i+1 {
			t.Errorf("expected seq %d at position %d, got %d", i+1, i, v.Seq)
		}
	}
}

func TestCreateVersionMissingRepo(t *testing.T) {
	database := setupTestDB(t)

	v := &secondary.VersionRecord{ID: ident.NewID(), RepoID: "missing", Name: "v1"}
	err := NewVersionRepository(database).Create(context.Background(), v)
	if !errs.IsNotFound(err) {
		t.Errorf("expected not-found failure, got %v", err)
	}
}

func TestRenameVersion(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	versions := NewVersionRepository(database)

	_, versionID := createTestRepo(t, database, "/courses/go-basics", nil)

	if err := versions.Rename(ctx, versionID, "first-draft"); err != nil {
		t.Fatalf("failed to rename version: %v", err)
	}
	v, err := versions.GetByID(ctx, versionID)
	if err != nil {
		t.Fatalf("failed to get version: %v", err)
	}
	if v.Name != "first-draft" {
		t.Errorf("expected renamed version, got %q", v.Name)
	}
}

func TestCopyStructureDeepCopies(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	versions := NewVersionRepository(database)
	sections := NewSectionRepository(database)
	lessons := NewLessonRepository(database)

	repoID, v1ID := createTestRepo(t, database, "/courses/go-basics", structureSeed())

	v2 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v2"}
	if err := versions.CopyStructure(ctx, v1ID, v2); err != nil {
		t.Fatalf("failed to copy structure: %v", err)
	}
	if v2.Seq != 2 {
		t.Errorf("expected seq 2, got %d", v2.Seq)
	}

	sourceSections, err := sections.ListByVersion(ctx, v1ID)
	if err != nil {
		t.Fatalf("failed to list source sections: %v", err)
	}
	copiedSections, err := sections.ListByVersion(ctx, v2.ID)
	if err != nil {
		t.Fatalf("failed to list copied sections: %v", err)
	}
	if len(copiedSections) != len(sourceSections) {
		t.Fatalf("expected %d sections, got %d", len(sourceSections), len(copiedSections))
	}

	seenIDs := map[string]bool{}
	for _, s := range sourceSections {
		seenIDs[s.ID] = true
	}
	for i, copied := range copiedSections {
		src := sourceSections[i]
		if seenIDs[copied.ID] {
			t.Errorf("copied section %d reuses source id %s", i, copied.ID)
		}
		if copied.Title != src.Title || copied.Ord != src.Ord {
			t.Errorf("copied section %d differs from source: %+v vs %+v", i, copied, src)
		}

		srcLessons, err := lessons.ListBySection(ctx, src.ID)
		if err != nil {
			t.Fatalf("failed to list source lessons: %v", err)
		}
		copiedLessons, err := lessons.ListBySection(ctx, copied.ID)
		if err != nil {
			t.Fatalf("failed to list copied lessons: %v", err)
		}
		if len(copiedLessons) != len(srcLessons) {
			t.Fatalf("section %d: expected %d lessons, got %d", i, len(srcLessons), len(copiedLessons))
		}
		for j, cl := range copiedLessons {
			sl := srcLessons[j]
			if cl.ID == sl.ID {
				t.Errorf("copied lesson reuses source id %s", cl.ID)
			}
			if cl.Path != sl.Path || cl.LessonNumber != sl.LessonNumber {
				t.Errorf("copied lesson differs from source: %+v vs %+v", cl, sl)
			}
		}
	}
}

func TestCopyStructureFromNonLatestWritesNothing(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	versions := NewVersionRepository(database)

	repoID, v1ID := createTestRepo(t, database, "/courses/go-basics", structureSeed())

	v2 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v2"}
	if err := versions.CopyStructure(ctx, v1ID, v2); err != nil {
		t.Fatalf("failed to copy structure: %v", err)
	}

	// v1 is now stale; branching from it must fail without side effects.
	v3 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v3"}
	err := versions.CopyStructure(ctx, v1ID, v3)
	if errs.CodeOf(err) != errs.CodeNotLatestVersion {
		t.Fatalf("expected not-latest failure, got %v", err)
	}

	chain, err := versions.ListByRepo(ctx, repoID)
	if err != nil {
		t.Fatalf("failed to list versions: %v", err)
	}
	if len(chain) != 2 {
		t.Errorf("expected failed copy to write nothing, chain has %d versions", len(chain))
	}
}

func TestDeleteVersionGuards(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	versions := NewVersionRepository(database)

	repoID, v1ID := createTestRepo(t, database, "/courses/go-basics", nil)

	if _, err := versions.Delete(ctx, v1ID); errs.CodeOf(err) != errs.CodeCannotDeleteOnlyVersion {
		t.Errorf("expected only-version failure, got %v", err)
	}

	v2 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v2"}
	if err := versions.Create(ctx, v2); err != nil {
		t.Fatalf("failed to create version: %v", err)
	}

	if _, err := versions.Delete(ctx, v1ID); errs.CodeOf(err) != errs.CodeCannotDeleteNonLatestVersion {
		t.Errorf("expected non-latest failure, got %v", err)
	}
}

func TestDeleteLatestVersionReturnsNewLatest(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	versions := NewVersionRepository(database)

	repoID, v1ID := createTestRepo(t, database, "/courses/go-basics", nil)

	v2 := &secondary.VersionRecord{ID: ident.NewID(), RepoID: repoID, Name: "v2"}
	if err := versions.Create(ctx, v2); err != nil {
		t.Fatalf("failed to create version: %v", err)
	}

	newLatest, err := versions.Delete(ctx, v2.ID)
	if err != nil {
		t.Fatalf("failed to delete version: %v", err)
	}
	if newLatest == nil || newLatest.ID != v1ID {
		t.Fatalf("expected %s as new latest, got %+v", v1ID, newLatest)
	}

	// Deleting and recreating walks seq back up through the same numbers.
	chain, err := versions.ListByRepo(ctx, repoID)
	if err != nil {
		t.Fatalf("failed to list versions: %v", err)
	}
	seqs := make([]int, len(chain))
	for i, v := range chain {
		seqs[i] = v.Seq
	}
	if !sort.IntsAreSorted(seqs) || len(seqs) != 1 {
		t.Errorf("unexpected chain after delete: %v", seqs)
	}
}
