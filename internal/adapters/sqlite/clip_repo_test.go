package sqlite

import (
	"context"
	"testing"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

func TestAppendBatchOrdersAfterExistingItems(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)

	videoID := createTestVideo(t, database)
	first := appendTestClips(t, database, videoID, 2)

	section := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Tail"}
	err := NewClipSectionRepository(database).CreateAtInsertionPoint(ctx, section, timeline.InsertionPoint{
		Type:   timeline.InsertAfterClip,
		ClipID: first[1].ID,
	})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}

	// New clips land after the section, not just after the last clip.
	more := appendTestClips(t, database, videoID, 1)
	if more[0].Ord <= section.Ord {
		t.Errorf("expected appended clip past the section, got %q <= %q", more[0].Ord, section.Ord)
	}

	listed, err := clips.ListByVideo(ctx, videoID, false)
	if err != nil {
		t.Fatalf("failed to list clips: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 clips, got %d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i-1].Ord >= listed[i].Ord {
			t.Errorf("clips out of order at %d: %q >= %q", i, listed[i-1].Ord, listed[i].Ord)
		}
	}
}

func TestAppendBatchMissingVideo(t *testing.T) {
	database := setupTestDB(t)

	clip := &secondary.ClipRecord{ID: ident.NewID(), VideoFilename: "take-1.mp4", SourceStartTime: 0, SourceEndTime: 1}
	err := NewClipRepository(database).AppendBatch(context.Background(), "missing", []*secondary.ClipRecord{clip})
	if !errs.IsNotFound(err) {
		t.Errorf("expected not-found failure, got %v", err)
	}
}

func TestAppendBatchRejectsEmptySpan(t *testing.T) {
	database := setupTestDB(t)

	videoID := createTestVideo(t, database)
	clip := &secondary.ClipRecord{ID: ident.NewID(), VideoFilename: "take-1.mp4", SourceStartTime: 5, SourceEndTime: 5}
	err := NewClipRepository(database).AppendBatch(context.Background(), videoID, []*secondary.ClipRecord{clip})
	if err == nil {
		t.Error("expected failure for empty span")
	}
}

func TestListClipsByIDs(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)

	videoID := createTestVideo(t, database)
	seeded := appendTestClips(t, database, videoID, 3)

	// Request out of order; results come back in timeline order.
	listed, err := clips.ListByIDs(ctx, []string{seeded[2].ID, seeded[0].ID})
	if err != nil {
		t.Fatalf("failed to list clips: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(listed))
	}
	if listed[0].ID != seeded[0].ID || listed[1].ID != seeded[2].ID {
		t.Errorf("expected timeline order, got %s, %s", listed[0].ID, listed[1].ID)
	}

	empty, err := clips.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("failed to list with no ids: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty result, got %d clips", len(empty))
	}
}

func TestListClipsByVideoHidesArchivedSections(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)
	sections := NewClipSectionRepository(database)

	videoID := createTestVideo(t, database)
	seeded := appendTestClips(t, database, videoID, 2)

	section := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Cut material"}
	err := sections.CreateAtInsertionPoint(ctx, section, timeline.InsertionPoint{Type: timeline.InsertAtStart})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}
	sectionID := section.ID
	if err := clips.Update(ctx, seeded[0].ID, secondary.ClipUpdate{ClipSectionID: &sectionID}); err != nil {
		t.Fatalf("failed to move clip into section: %v", err)
	}
	if err := sections.SetArchived(ctx, sectionID, true); err != nil {
		t.Fatalf("failed to archive section: %v", err)
	}

	visible, err := clips.ListByVideo(ctx, videoID, false)
	if err != nil {
		t.Fatalf("failed to list clips: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != seeded[1].ID {
		t.Errorf("expected only the unsectioned clip, got %+v", visible)
	}

	all, err := clips.ListByVideo(ctx, videoID, true)
	if err != nil {
		t.Fatalf("failed to list clips: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both clips with includeArchived, got %d", len(all))
	}
}

func TestUpdateClipPartial(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)

	videoID := createTestVideo(t, database)
	seeded := appendTestClips(t, database, videoID, 1)

	beat := "screencast"
	if err := clips.Update(ctx, seeded[0].ID, secondary.ClipUpdate{BeatType: &beat}); err != nil {
		t.Fatalf("failed to update clip: %v", err)
	}

	got, err := clips.GetByID(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("failed to get clip: %v", err)
	}
	if got.BeatType != "screencast" {
		t.Errorf("expected beat type updated, got %q", got.BeatType)
	}
	if got.SourceStartTime != seeded[0].SourceStartTime || got.SourceEndTime != seeded[0].SourceEndTime {
		t.Errorf("expected span untouched, got [%v, %v)", got.SourceStartTime, got.SourceEndTime)
	}
}

func TestUpdateClipRejectsInvertedSpan(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)

	videoID := createTestVideo(t, database)
	seeded := appendTestClips(t, database, videoID, 1)

	// seeded[0] spans [0, 1); moving start past the untouched end must fail.
	start := 2.0
	err := clips.Update(ctx, seeded[0].ID, secondary.ClipUpdate{SourceStartTime: &start})
	if err == nil {
		t.Fatal("expected failure for inverted span")
	}

	got, err := clips.GetByID(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("failed to get clip: %v", err)
	}
	if got.SourceStartTime != 0 {
		t.Errorf("expected start unchanged, got %v", got.SourceStartTime)
	}
}

func TestUpdateClipNoFields(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)

	videoID := createTestVideo(t, database)
	seeded := appendTestClips(t, database, videoID, 1)

	if err := clips.Update(ctx, seeded[0].ID, secondary.ClipUpdate{}); err != nil {
		t.Errorf("expected empty update to be a no-op, got %v", err)
	}
}

func TestSetTranscription(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	clips := NewClipRepository(database)

	videoID := createTestVideo(t, database)
	seeded := appendTestClips(t, database, videoID, 1)

	err := clips.SetTranscription(ctx, seeded[0].ID, "welcome back", "2026-09-01T10:00:00Z")
	if err != nil {
		t.Fatalf("failed to set transcription: %v", err)
	}

	got, err := clips.GetByID(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("failed to get clip: %v", err)
	}
	if got.Text != "welcome back" || got.TranscribedAt == "" {
		t.Errorf("expected transcription written back, got %+v", got)
	}

	if err := clips.SetTranscription(ctx, "missing", "x", "2026-09-01T10:00:00Z"); !errs.IsNotFound(err) {
		t.Errorf("expected not-found failure, got %v", err)
	}
}
