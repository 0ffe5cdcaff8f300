package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/cutroom/internal/core/ident"
	"github.com/example/cutroom/internal/core/order"
	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/ports/secondary"
)

// ClipService implements primary.ClipService.
type ClipService struct {
	videos       secondary.VideoRepository
	clipSections secondary.ClipSectionRepository
	clips        secondary.ClipRepository
	renderTool   secondary.RenderTool
	logger       *slog.Logger
}

// NewClipService creates a clip service.
func NewClipService(
	videos secondary.VideoRepository,
	clipSections secondary.ClipSectionRepository,
	clips secondary.ClipRepository,
	renderTool secondary.RenderTool,
	logger *slog.Logger,
) *ClipService {
	return &ClipService{
		videos:       videos,
		clipSections: clipSections,
		clips:        clips,
		renderTool:   renderTool,
		logger:       logger,
	}
}

// CreateVideo registers a video.
func (s *ClipService) CreateVideo(ctx context.Context, req primary.CreateVideoRequest) (*primary.Video, error) {
	record := &secondary.VideoRecord{ID: ident.NewID(), LessonID: req.LessonID, Path: req.Path}
	if err := s.videos.Create(ctx, record); err != nil {
		return nil, wrapUnexpected(s.logger, "create video", err)
	}
	return toVideo(record), nil
}

// ListVideos lists videos.
func (s *ClipService) ListVideos(ctx context.Context, filters primary.VideoFilters) ([]*primary.Video, error) {
	records, err := s.videos.List(ctx, secondary.VideoFilters{
		LessonID:        filters.LessonID,
		StandaloneOnly:  filters.StandaloneOnly,
		IncludeArchived: filters.IncludeArchived,
	})
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list videos", err)
	}

	videos := make([]*primary.Video, len(records))
	for i, r := range records {
		videos[i] = toVideo(r)
	}
	return videos, nil
}

// UpdateVideoArchiveStatus sets a video's archived flag. Lesson-bound videos
// cannot be archived independently; the flag is untouched on failure.
func (s *ClipService) UpdateVideoArchiveStatus(ctx context.Context, videoID string, archived bool) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return wrapUnexpected(s.logger, "get video", err)
	}
	if err := timeline.CanArchiveVideo(video.ID, video.LessonID); err != nil {
		return err
	}
	return wrapUnexpected(s.logger, "archive video", s.videos.SetArchived(ctx, videoID, archived))
}

// CreateClipSection creates a clip section at a caller-supplied order key.
// The key is validated here: a malformed key stored once would poison every
// later neighbor computation on the video's timeline.
func (s *ClipService) CreateClipSection(ctx context.Context, videoID, name, ord string) (*primary.ClipSection, error) {
	if !order.IsValid(ord) {
		return nil, fmt.Errorf("order key %q is not well-formed", ord)
	}
	record := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: name, Ord: ord}
	if err := s.clipSections.Create(ctx, record); err != nil {
		return nil, wrapUnexpected(s.logger, "create clip section", err)
	}
	return toClipSection(record), nil
}

// CreateClipSectionAtInsertionPoint creates a clip section positioned
// relative to the timeline. The order key is generated inside the insert
// transaction.
func (s *ClipService) CreateClipSectionAtInsertionPoint(ctx context.Context, videoID, name string, point timeline.InsertionPoint) (*primary.ClipSection, error) {
	record := &secondary.ClipSectionRecord{ID: ident.NewID(), VideoID: videoID, Name: name}
	if err := s.clipSections.CreateAtInsertionPoint(ctx, record, point); err != nil {
		return nil, wrapUnexpected(s.logger, "insert clip section", err)
	}
	return toClipSection(record), nil
}

// ReorderClipSection swaps a section with its neighbor.
func (s *ClipService) ReorderClipSection(ctx context.Context, sectionID string, dir timeline.Direction) error {
	return wrapUnexpected(s.logger, "reorder clip section", s.clipSections.Reorder(ctx, sectionID, dir))
}

// ArchiveClipSection soft-deletes a clip section.
func (s *ClipService) ArchiveClipSection(ctx context.Context, sectionID string) error {
	return wrapUnexpected(s.logger, "archive clip section", s.clipSections.SetArchived(ctx, sectionID, true))
}

// UnarchiveClipSection restores an archived clip section.
func (s *ClipService) UnarchiveClipSection(ctx context.Context, sectionID string) error {
	return wrapUnexpected(s.logger, "unarchive clip section", s.clipSections.SetArchived(ctx, sectionID, false))
}

// AppendClips appends clips to the end of the video's timeline.
func (s *ClipService) AppendClips(ctx context.Context, videoID string, inputs []primary.ClipInput) ([]*primary.Clip, error) {
	records := make([]*secondary.ClipRecord, len(inputs))
	for i, input := range inputs {
		records[i] = &secondary.ClipRecord{
			ID:              ident.NewID(),
			VideoFilename:   input.VideoFilename,
			SourceStartTime: input.SourceStartTime,
			SourceEndTime:   input.SourceEndTime,
			BeatType:        input.BeatType,
		}
	}
	if err := s.clips.AppendBatch(ctx, videoID, records); err != nil {
		return nil, wrapUnexpected(s.logger, "append clips", err)
	}

	clips := make([]*primary.Clip, len(records))
	for i, r := range records {
		clips[i] = toClip(r)
	}
	return clips, nil
}

// UpdateClip applies a partial update to a clip.
func (s *ClipService) UpdateClip(ctx context.Context, req primary.UpdateClipRequest) (*primary.Clip, error) {
	update := secondary.ClipUpdate{
		BeatType:        req.BeatType,
		ClipSectionID:   req.ClipSectionID,
		SourceStartTime: req.SourceStartTime,
		SourceEndTime:   req.SourceEndTime,
		Text:            req.Text,
	}
	if err := s.clips.Update(ctx, req.ClipID, update); err != nil {
		return nil, wrapUnexpected(s.logger, "update clip", err)
	}

	record, err := s.clips.GetByID(ctx, req.ClipID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "get clip", err)
	}
	return toClip(record), nil
}

// IngestCapture pulls newly captured clips from the external tool and
// appends them to the video's timeline.
func (s *ClipService) IngestCapture(ctx context.Context, videoID string) ([]*primary.Clip, error) {
	captured, err := s.renderTool.IngestCapture(ctx)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "ingest capture", err)
	}
	if len(captured) == 0 {
		return nil, nil
	}

	inputs := make([]primary.ClipInput, len(captured))
	for i, c := range captured {
		inputs[i] = primary.ClipInput{
			VideoFilename:   c.VideoFilename,
			SourceStartTime: c.SourceStartTime,
			SourceEndTime:   c.SourceEndTime,
		}
	}

	s.logger.Info("captured clips ingested", "videoId", videoID, "count", len(inputs))
	return s.AppendClips(ctx, videoID, inputs)
}

// GetTimeline retrieves a video's sections and clips in timeline order.
func (s *ClipService) GetTimeline(ctx context.Context, videoID string) (*primary.Timeline, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "get video", err)
	}
	sections, err := s.clipSections.ListByVideo(ctx, videoID, true)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list clip sections", err)
	}
	clips, err := s.clips.ListByVideo(ctx, videoID, true)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list clips", err)
	}

	result := &primary.Timeline{Video: toVideo(video)}
	for _, sec := range sections {
		result.Sections = append(result.Sections, toClipSection(sec))
	}
	for _, c := range clips {
		result.Clips = append(result.Clips, toClip(c))
	}
	return result, nil
}

func toVideo(v *secondary.VideoRecord) *primary.Video {
	return &primary.Video{ID: v.ID, LessonID: v.LessonID, Path: v.Path, Archived: v.Archived}
}

func toClipSection(c *secondary.ClipSectionRecord) *primary.ClipSection {
	return &primary.ClipSection{ID: c.ID, VideoID: c.VideoID, Name: c.Name, Ord: c.Ord, Archived: c.Archived}
}

func toClip(c *secondary.ClipRecord) *primary.Clip {
	return &primary.Clip{
		ID:              c.ID,
		VideoID:         c.VideoID,
		ClipSectionID:   c.ClipSectionID,
		VideoFilename:   c.VideoFilename,
		SourceStartTime: c.SourceStartTime,
		SourceEndTime:   c.SourceEndTime,
		BeatType:        c.BeatType,
		Text:            c.Text,
		TranscribedAt:   c.TranscribedAt,
		Ord:             c.Ord,
	}
}

// Ensure ClipService implements the interface
var _ primary.ClipService = (*ClipService)(nil)
