package toolcli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/cutroom/internal/ports/secondary"
)

// ErrToolNotConfigured is returned by the stub for calls that need the
// external binary.
var ErrToolNotConfigured = errors.New("external video tool is not configured; set tool_bin in the config")

// Stub stands in for the external tool when no binary is configured. It
// keeps the wiring intact: calls log what would have happened and fail with
// ErrToolNotConfigured.
type Stub struct {
	logger *slog.Logger
}

// NewStub creates a stub tool adapter.
func NewStub(logger *slog.Logger) *Stub {
	return &Stub{logger: logger}
}

// Render logs the request and fails.
func (s *Stub) Render(ctx context.Context, req secondary.RenderRequest) (*secondary.RenderResult, error) {
	s.logger.Warn("render skipped, tool not configured", "clips", len(req.Clips))
	return nil, ErrToolNotConfigured
}

// FirstFrame logs the request and fails.
func (s *Stub) FirstFrame(ctx context.Context, inputVideo string, seekTo float64) (string, error) {
	s.logger.Warn("first-frame skipped, tool not configured", "inputVideo", inputVideo, "seekTo", seekTo)
	return "", ErrToolNotConfigured
}

// IngestCapture logs the request and fails.
func (s *Stub) IngestCapture(ctx context.Context) ([]secondary.CapturedClip, error) {
	s.logger.Warn("capture ingestion skipped, tool not configured")
	return nil, ErrToolNotConfigured
}

// Transcribe logs the request and fails.
func (s *Stub) Transcribe(ctx context.Context, spans []secondary.ClipSpan) (map[string][]string, error) {
	s.logger.Warn("transcription skipped, tool not configured", "spans", len(spans))
	return nil, ErrToolNotConfigured
}

// Ensure Stub implements both tool ports
var (
	_ secondary.RenderTool        = (*Stub)(nil)
	_ secondary.TranscriptionTool = (*Stub)(nil)
)
