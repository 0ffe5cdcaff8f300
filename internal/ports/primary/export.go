package primary

import "context"

// ExportService hands clip selections to the external render/transcribe tool.
type ExportService interface {
	// ExportVideoClips renders an ordered clip selection. The tool's
	// result is returned unmodified; a tool failure surfaces whole, with
	// no partial application.
	ExportVideoClips(ctx context.Context, req ExportRequest) (*ExportResult, error)

	// TranscribeClips transcribes the given clips and writes the text
	// back per clip. Clips the tool did not return are left unmodified.
	TranscribeClips(ctx context.Context, clipIDs []string) (*TranscribeResult, error)

	// FirstFrame extracts a still frame from a video and returns the
	// image path.
	FirstFrame(ctx context.Context, videoID string, seekTo float64) (string, error)
}

// ExportRequest carries an ordered clip selection for rendering.
type ExportRequest struct {
	VideoID                   string
	ClipIDs                   []string // empty exports the whole timeline
	ShortsDirectoryOutputName string
}

// ExportResult is the render tool's result, passed through unmodified.
type ExportResult struct {
	OutputPath string
	Warnings   []string
	ClipCount  int
}

// TranscribeResult summarizes a transcription run.
type TranscribeResult struct {
	Transcribed []string // clip ids written back
	Skipped     []string // clip ids absent from the tool response
}
