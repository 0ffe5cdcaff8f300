package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/errs"
	"github.com/example/cutroom/internal/ports/secondary"
)

func TestUpdateVideoArchiveStatusRejectsLessonVideo(t *testing.T) {
	archived := false
	videos := &mockVideoRepo{
		getByID: func(ctx context.Context, id string) (*secondary.VideoRecord, error) {
			return &secondary.VideoRecord{ID: id, LessonID: "lesson-1", Path: "recordings/intro.mp4"}, nil
		},
		setArchived: func(ctx context.Context, id string, a bool) error {
			archived = true
			return nil
		},
	}
	svc := NewClipService(videos, &mockClipSectionRepo{}, &mockClipRepo{}, &mockRenderTool{}, testLogger())

	err := svc.UpdateVideoArchiveStatus(context.Background(), "video-1", true)
	assert.Equal(t, errs.CodeCannotArchiveLessonVideo, errs.CodeOf(err))
	assert.False(t, archived, "the flag must be untouched on failure")
}

func TestUpdateVideoArchiveStatusStandalone(t *testing.T) {
	var got bool
	videos := &mockVideoRepo{
		getByID: func(ctx context.Context, id string) (*secondary.VideoRecord, error) {
			return &secondary.VideoRecord{ID: id, Path: "recordings/take.mp4"}, nil
		},
		setArchived: func(ctx context.Context, id string, a bool) error {
			got = a
			return nil
		},
	}
	svc := NewClipService(videos, &mockClipSectionRepo{}, &mockClipRepo{}, &mockRenderTool{}, testLogger())

	require.NoError(t, svc.UpdateVideoArchiveStatus(context.Background(), "video-1", true))
	assert.True(t, got)
}

func TestCreateClipSectionRejectsMalformedOrderKey(t *testing.T) {
	// A key that is empty, ends in the lowest digit, or uses characters
	// outside a-z would break every later neighbor computation on the
	// timeline, so it must never reach the store.
	svc := NewClipService(&mockVideoRepo{}, &mockClipSectionRepo{}, &mockClipRepo{}, &mockRenderTool{}, testLogger())

	for _, ord := range []string{"", "a", "secta", "N1"} {
		_, err := svc.CreateClipSection(context.Background(), "video-1", "Part One", ord)
		require.Error(t, err, "ord %q must be rejected", ord)
	}
}

func TestCreateClipSectionStoresWellFormedOrderKey(t *testing.T) {
	var stored *secondary.ClipSectionRecord
	sections := &mockClipSectionRepo{
		create: func(ctx context.Context, section *secondary.ClipSectionRecord) error {
			stored = section
			return nil
		},
	}
	svc := NewClipService(&mockVideoRepo{}, sections, &mockClipRepo{}, &mockRenderTool{}, testLogger())

	created, err := svc.CreateClipSection(context.Background(), "video-1", "Part One", "n")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "n", created.Ord)
	assert.Equal(t, "video-1", stored.VideoID)
}

func TestCreateClipSectionAtInsertionPoint(t *testing.T) {
	sections := &mockClipSectionRepo{
		createAtInsertionPoint: func(ctx context.Context, section *secondary.ClipSectionRecord, point timeline.InsertionPoint) error {
			assert.Equal(t, timeline.InsertAfterClip, point.Type)
			assert.Equal(t, "clip-1", point.ClipID)
			section.Ord = "nn"
			return nil
		},
	}
	svc := NewClipService(&mockVideoRepo{}, sections, &mockClipRepo{}, &mockRenderTool{}, testLogger())

	created, err := svc.CreateClipSectionAtInsertionPoint(context.Background(), "video-1", "Part One", timeline.InsertionPoint{
		Type:   timeline.InsertAfterClip,
		ClipID: "clip-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "nn", created.Ord)
	assert.NotEmpty(t, created.ID)
}

func TestIngestCaptureAppendsClips(t *testing.T) {
	tool := &mockRenderTool{
		ingestCapture: func(ctx context.Context) ([]secondary.CapturedClip, error) {
			return []secondary.CapturedClip{
				{VideoFilename: "obs-001.mp4", SourceStartTime: 0, SourceEndTime: 4.5},
				{VideoFilename: "obs-002.mp4", SourceStartTime: 1, SourceEndTime: 3},
			}, nil
		},
	}
	var appended []*secondary.ClipRecord
	clips := &mockClipRepo{
		appendBatch: func(ctx context.Context, videoID string, records []*secondary.ClipRecord) error {
			assert.Equal(t, "video-1", videoID)
			appended = records
			return nil
		},
	}
	svc := NewClipService(&mockVideoRepo{}, &mockClipSectionRepo{}, clips, tool, testLogger())

	created, err := svc.IngestCapture(context.Background(), "video-1")
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Len(t, appended, 2)
	assert.Equal(t, "obs-001.mp4", appended[0].VideoFilename)
	assert.Equal(t, 4.5, appended[0].SourceEndTime)
}

func TestIngestCaptureNothingNew(t *testing.T) {
	tool := &mockRenderTool{
		ingestCapture: func(ctx context.Context) ([]secondary.CapturedClip, error) { return nil, nil },
	}
	svc := NewClipService(&mockVideoRepo{}, &mockClipSectionRepo{}, &mockClipRepo{}, tool, testLogger())

	created, err := svc.IngestCapture(context.Background(), "video-1")
	require.NoError(t, err)
	assert.Empty(t, created)
}
