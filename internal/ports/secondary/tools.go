package secondary

import "context"

// Workspace defines the secondary port for filesystem checks and repo parsing.
type Workspace interface {
	// Exists reports whether a path exists on the filesystem.
	Exists(path string) bool

	// ParseRepo reads a course directory tree into sections with lessons,
	// consumed once at repo-creation time.
	ParseRepo(path string) ([]ParsedSection, error)
}

// ParsedSection is a section discovered by the repo parser.
type ParsedSection struct {
	Title   string
	Lessons []ParsedLesson
}

// ParsedLesson is a lesson discovered by the repo parser.
type ParsedLesson struct {
	Path   string
	Number int
}

// RenderTool defines the secondary port for the external video tool.
// Calls may be slow; implementations bound them with a timeout. No database
// transaction may be held across these calls.
type RenderTool interface {
	// Render sends the ordered clip descriptors to the tool and returns
	// its result unmodified.
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)

	// FirstFrame extracts a still frame from a video file and returns the
	// image path.
	FirstFrame(ctx context.Context, inputVideo string, seekTo float64) (string, error)

	// IngestCapture pulls newly captured clip descriptors from the tool's
	// OBS-capture ingestion.
	IngestCapture(ctx context.Context) ([]CapturedClip, error)
}

// RenderRequest is the ordered render request sent to the tool.
type RenderRequest struct {
	Clips                     []RenderClip `json:"clips"`
	ShortsDirectoryOutputName string       `json:"shortsDirectoryOutputName,omitempty"`
}

// RenderClip is one ordered entry of a render request.
type RenderClip struct {
	InputVideo string  `json:"inputVideo"`
	StartTime  float64 `json:"startTime"`
	Duration   float64 `json:"duration"`
	BeatType   string  `json:"beatType"`
}

// RenderResult is the tool's render response, passed through unmodified.
type RenderResult struct {
	OutputPath string   `json:"outputPath"`
	Warnings   []string `json:"warnings,omitempty"`
}

// CapturedClip is a freshly captured clip descriptor from the tool.
type CapturedClip struct {
	VideoFilename   string  `json:"videoFilename"`
	SourceStartTime float64 `json:"sourceStartTime"`
	SourceEndTime   float64 `json:"sourceEndTime"`
}

// TranscriptionTool defines the secondary port for span transcription.
type TranscriptionTool interface {
	// Transcribe returns, per clip id, the ordered text segments for the
	// given spans. Clip ids absent from the result were not transcribed.
	Transcribe(ctx context.Context, spans []ClipSpan) (map[string][]string, error)
}

// ClipSpan is a transcription request entry keyed by clip id.
type ClipSpan struct {
	ClipID     string  `json:"clipId"`
	InputVideo string  `json:"inputVideo"`
	StartTime  float64 `json:"startTime"`
	Duration   float64 `json:"duration"`
}
