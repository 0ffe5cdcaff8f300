package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/example/cutroom/internal/core/exportplan"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/ports/secondary"
)

// ExportService implements primary.ExportService.
//
// Exports read the clip state first, release the store, then call the tool.
// Render results are never written back; transcription results are written
// in a second pass after the tool returns.
type ExportService struct {
	videos        secondary.VideoRepository
	clips         secondary.ClipRepository
	renderTool    secondary.RenderTool
	transcription secondary.TranscriptionTool
	logger        *slog.Logger
	now           func() time.Time
}

// NewExportService creates an export service.
func NewExportService(
	videos secondary.VideoRepository,
	clips secondary.ClipRepository,
	renderTool secondary.RenderTool,
	transcription secondary.TranscriptionTool,
	logger *slog.Logger,
) *ExportService {
	return &ExportService{
		videos:        videos,
		clips:         clips,
		renderTool:    renderTool,
		transcription: transcription,
		logger:        logger,
		now:           time.Now,
	}
}

// ExportVideoClips renders an ordered clip selection. An empty ClipIDs
// exports the video's whole visible timeline.
func (s *ExportService) ExportVideoClips(ctx context.Context, req primary.ExportRequest) (*primary.ExportResult, error) {
	records, err := s.selectClips(ctx, req.VideoID, req.ClipIDs)
	if err != nil {
		return nil, err
	}

	planned := make([]exportplan.Clip, len(records))
	for i, r := range records {
		planned[i] = exportplan.Clip{
			InputVideo: r.VideoFilename,
			Start:      r.SourceStartTime,
			End:        r.SourceEndTime,
			BeatType:   r.BeatType,
		}
	}

	request := secondary.RenderRequest{ShortsDirectoryOutputName: req.ShortsDirectoryOutputName}
	for _, d := range exportplan.Build(planned) {
		request.Clips = append(request.Clips, secondary.RenderClip{
			InputVideo: d.InputVideo,
			StartTime:  d.StartTime,
			Duration:   d.Duration,
			BeatType:   d.BeatType,
		})
	}

	result, err := s.renderTool.Render(ctx, request)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "render", err)
	}

	s.logger.Info("export rendered", "videoId", req.VideoID, "clips", len(records), "output", result.OutputPath)
	return &primary.ExportResult{
		OutputPath: result.OutputPath,
		Warnings:   result.Warnings,
		ClipCount:  len(records),
	}, nil
}

// TranscribeClips transcribes the given clips and writes the text back per
// clip. Clips the tool did not return are skipped, not failed.
func (s *ExportService) TranscribeClips(ctx context.Context, clipIDs []string) (*primary.TranscribeResult, error) {
	records, err := s.clips.ListByIDs(ctx, clipIDs)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list clips", err)
	}

	spans := make([]secondary.ClipSpan, len(records))
	for i, r := range records {
		spans[i] = secondary.ClipSpan{
			ClipID:     r.ID,
			InputVideo: r.VideoFilename,
			StartTime:  r.SourceStartTime,
			Duration:   r.SourceEndTime - r.SourceStartTime,
		}
	}

	segments, err := s.transcription.Transcribe(ctx, spans)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "transcribe", err)
	}

	transcribedAt := s.now().UTC().Format(time.RFC3339)
	result := &primary.TranscribeResult{}
	for _, r := range records {
		texts, ok := segments[r.ID]
		if !ok {
			s.logger.Warn("clip absent from transcription response, leaving unmodified", "clipId", r.ID)
			result.Skipped = append(result.Skipped, r.ID)
			continue
		}
		text := strings.Join(texts, " ")
		if err := s.clips.SetTranscription(ctx, r.ID, text, transcribedAt); err != nil {
			return nil, wrapUnexpected(s.logger, "write transcription", err)
		}
		result.Transcribed = append(result.Transcribed, r.ID)
	}
	return result, nil
}

// FirstFrame extracts a still frame from the video's source file.
func (s *ExportService) FirstFrame(ctx context.Context, videoID string, seekTo float64) (string, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return "", wrapUnexpected(s.logger, "get video", err)
	}

	path, err := s.renderTool.FirstFrame(ctx, video.Path, seekTo)
	if err != nil {
		return "", wrapUnexpected(s.logger, "first frame", err)
	}
	return path, nil
}

// selectClips resolves the export selection: explicit ids in timeline order,
// or the video's whole visible timeline.
func (s *ExportService) selectClips(ctx context.Context, videoID string, clipIDs []string) ([]*secondary.ClipRecord, error) {
	if len(clipIDs) > 0 {
		records, err := s.clips.ListByIDs(ctx, clipIDs)
		if err != nil {
			return nil, wrapUnexpected(s.logger, "list clips", err)
		}
		return records, nil
	}

	records, err := s.clips.ListByVideo(ctx, videoID, false)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list clips", err)
	}
	return records, nil
}

// Ensure ExportService implements the interface
var _ primary.ExportService = (*ExportService)(nil)
