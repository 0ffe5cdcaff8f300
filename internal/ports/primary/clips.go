package primary

import (
	"context"

	"github.com/example/cutroom/internal/core/timeline"
)

// ClipService manages videos and their clip timelines.
type ClipService interface {
	// CreateVideo registers a video. An empty lessonID creates a
	// standalone video whose files live under a video-scoped directory.
	CreateVideo(ctx context.Context, req CreateVideoRequest) (*Video, error)

	// ListVideos lists videos.
	ListVideos(ctx context.Context, filters VideoFilters) ([]*Video, error)

	// UpdateVideoArchiveStatus sets a video's archived flag. Fails for
	// lesson-bound videos, which cannot be archived independently.
	UpdateVideoArchiveStatus(ctx context.Context, videoID string, archived bool) error

	// CreateClipSection creates a clip section at a caller-supplied order key.
	CreateClipSection(ctx context.Context, videoID, name, ord string) (*ClipSection, error)

	// CreateClipSectionAtInsertionPoint creates a clip section positioned
	// relative to the timeline: at the start, or directly after a clip.
	CreateClipSectionAtInsertionPoint(ctx context.Context, videoID, name string, point timeline.InsertionPoint) (*ClipSection, error)

	// ReorderClipSection swaps a section with its neighbor in the given
	// direction. Boundary positions are successful no-ops.
	ReorderClipSection(ctx context.Context, sectionID string, dir timeline.Direction) error

	// ArchiveClipSection soft-deletes a clip section; its clips are
	// retained for undo but excluded from export.
	ArchiveClipSection(ctx context.Context, sectionID string) error

	// UnarchiveClipSection restores an archived clip section.
	UnarchiveClipSection(ctx context.Context, sectionID string) error

	// AppendClips appends freshly captured clips to the end of the
	// video's timeline.
	AppendClips(ctx context.Context, videoID string, clips []ClipInput) ([]*Clip, error)

	// UpdateClip applies a partial update to a clip.
	UpdateClip(ctx context.Context, req UpdateClipRequest) (*Clip, error)

	// IngestCapture pulls newly captured clips from the external tool and
	// appends them to the video's timeline.
	IngestCapture(ctx context.Context, videoID string) ([]*Clip, error)

	// GetTimeline retrieves a video's sections and clips in timeline order.
	GetTimeline(ctx context.Context, videoID string) (*Timeline, error)
}

// CreateVideoRequest carries the inputs for video creation.
type CreateVideoRequest struct {
	LessonID string // empty for a standalone video
	Path     string
}

// VideoFilters contains filter options for listing videos.
type VideoFilters struct {
	LessonID        string
	StandaloneOnly  bool
	IncludeArchived bool
}

// Video is a recorded video with a clip timeline.
type Video struct {
	ID       string
	LessonID string
	Path     string
	Archived bool
}

// ClipSection is a named, ordered grouping of clips within a video timeline.
type ClipSection struct {
	ID       string
	VideoID  string
	Name     string
	Ord      string
	Archived bool
}

// ClipInput is the input for appending a clip.
type ClipInput struct {
	VideoFilename   string
	SourceStartTime float64
	SourceEndTime   float64
	BeatType        string
}

// UpdateClipRequest carries a partial clip update; nil fields are unchanged.
type UpdateClipRequest struct {
	ClipID          string
	BeatType        *string
	ClipSectionID   *string
	SourceStartTime *float64
	SourceEndTime   *float64
	Text            *string
}

// Clip is one cut of source footage on a video's timeline.
type Clip struct {
	ID              string
	VideoID         string
	ClipSectionID   string
	VideoFilename   string
	SourceStartTime float64
	SourceEndTime   float64
	BeatType        string
	Text            string
	TranscribedAt   string
	Ord             string
}

// Timeline is a video's ordered sections and clips.
type Timeline struct {
	Video    *Video
	Sections []*ClipSection
	Clips    []*Clip
}
