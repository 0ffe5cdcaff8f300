package sqlite

import (
	"context"
	"testing"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

func TestCreateClipSectionAtStart(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	sections := NewClipSectionRepository(database)

	videoID := createTestVideo(t, database)
	clips := appendTestClips(t, database, videoID, 2)

	section := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Intro"}
	err := sections.CreateAtInsertionPoint(ctx, section, timeline.InsertionPoint{Type: timeline.InsertAtStart})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}
	if section.Ord >= clips[0].Ord {
		t.Errorf("expected section before first clip, got %q >= %q", section.Ord, clips[0].Ord)
	}
}

func TestCreateClipSectionAtStartOfEmptyTimeline(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	videoID := createTestVideo(t, database)

	section := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Intro"}
	err := NewClipSectionRepository(database).CreateAtInsertionPoint(ctx, section, timeline.InsertionPoint{Type: timeline.InsertAtStart})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}
	if section.Ord == "" {
		t.Error("expected an order key on an empty timeline")
	}
}

func TestCreateClipSectionAfterClip(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	sections := NewClipSectionRepository(database)

	videoID := createTestVideo(t, database)
	clips := appendTestClips(t, database, videoID, 2)

	first := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Part One"}
	err := sections.CreateAtInsertionPoint(ctx, first, timeline.InsertionPoint{
		Type:   timeline.InsertAfterClip,
		ClipID: clips[0].ID,
	})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}
	if first.Ord <= clips[0].Ord || first.Ord >= clips[1].Ord {
		t.Errorf("expected %q strictly between %q and %q", first.Ord, clips[0].Ord, clips[1].Ord)
	}

	// A second insert at the same point lands between the clip and the
	// section just created, without touching either.
	second := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Part One Revised"}
	err = sections.CreateAtInsertionPoint(ctx, second, timeline.InsertionPoint{
		Type:   timeline.InsertAfterClip,
		ClipID: clips[0].ID,
	})
	if err != nil {
		t.Fatalf("failed to insert second section: %v", err)
	}
	if second.Ord <= clips[0].Ord || second.Ord >= first.Ord {
		t.Errorf("expected %q strictly between %q and %q", second.Ord, clips[0].Ord, first.Ord)
	}
}

func TestCreateClipSectionAfterLastClip(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	videoID := createTestVideo(t, database)
	clips := appendTestClips(t, database, videoID, 1)

	section := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Outro"}
	err := NewClipSectionRepository(database).CreateAtInsertionPoint(ctx, section, timeline.InsertionPoint{
		Type:   timeline.InsertAfterClip,
		ClipID: clips[0].ID,
	})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}
	if section.Ord <= clips[0].Ord {
		t.Errorf("expected section past the end, got %q <= %q", section.Ord, clips[0].Ord)
	}
}

func TestCreateClipSectionAfterForeignClip(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	videoID := createTestVideo(t, database)
	otherVideoID := createTestVideo(t, database)
	otherClips := appendTestClips(t, database, otherVideoID, 1)

	section := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Intro"}
	err := NewClipSectionRepository(database).CreateAtInsertionPoint(ctx, section, timeline.InsertionPoint{
		Type:   timeline.InsertAfterClip,
		ClipID: otherClips[0].ID,
	})
	if !errs.IsNotFound(err) {
		t.Errorf("expected not-found failure for foreign clip, got %v", err)
	}
}

func TestReorderClipSection(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	sections := NewClipSectionRepository(database)

	videoID := createTestVideo(t, database)
	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		s := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: name}
		err := sections.CreateAtInsertionPoint(ctx, s, timeline.InsertionPoint{Type: timeline.InsertAtStart})
		if err != nil {
			t.Fatalf("failed to insert section %s: %v", name, err)
		}
		ids = append(ids, s.ID)
	}
	// Each insert went to the start, so timeline order is C, B, A.

	if err := sections.Reorder(ctx, ids[1], timeline.DirectionUp); err != nil {
		t.Fatalf("failed to reorder: %v", err)
	}
	listed, err := sections.ListByVideo(ctx, videoID, false)
	if err != nil {
		t.Fatalf("failed to list sections: %v", err)
	}
	got := []string{listed[0].Name, listed[1].Name, listed[2].Name}
	want := []string{"B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v after move up, got %v", want, got)
		}
	}
}

func TestReorderClipSectionAtBoundary(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	sections := NewClipSectionRepository(database)

	videoID := createTestVideo(t, database)
	s := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Only"}
	err := sections.CreateAtInsertionPoint(ctx, s, timeline.InsertionPoint{Type: timeline.InsertAtStart})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}

	if err := sections.Reorder(ctx, s.ID, timeline.DirectionUp); err != nil {
		t.Errorf("expected boundary move up to be a no-op, got %v", err)
	}
	if err := sections.Reorder(ctx, s.ID, timeline.DirectionDown); err != nil {
		t.Errorf("expected boundary move down to be a no-op, got %v", err)
	}

	got, err := sections.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("failed to get section: %v", err)
	}
	if got.Ord != s.Ord {
		t.Errorf("expected order key unchanged, got %q", got.Ord)
	}
}

func TestArchiveClipSection(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	sections := NewClipSectionRepository(database)

	videoID := createTestVideo(t, database)
	s := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: "Bloopers"}
	err := sections.CreateAtInsertionPoint(ctx, s, timeline.InsertionPoint{Type: timeline.InsertAtStart})
	if err != nil {
		t.Fatalf("failed to insert section: %v", err)
	}

	if err := sections.SetArchived(ctx, s.ID, true); err != nil {
		t.Fatalf("failed to archive section: %v", err)
	}

	visible, err := sections.ListByVideo(ctx, videoID, false)
	if err != nil {
		t.Fatalf("failed to list sections: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("expected archived section hidden, got %+v", visible)
	}

	all, err := sections.ListByVideo(ctx, videoID, true)
	if err != nil {
		t.Fatalf("failed to list sections: %v", err)
	}
	if len(all) != 1 || !all[0].Archived {
		t.Errorf("expected archived section listed with includeArchived, got %+v", all)
	}
}
