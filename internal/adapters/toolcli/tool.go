// Package toolcli drives the external render/transcribe tool binary.
//
// Each call execs the binary with a subcommand, writes a JSON request to
// stdin and decodes a JSON response from stdout. Calls are bounded by a
// timeout; the caller must not hold a database transaction across them.
package toolcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/example/cutroom/internal/ports/secondary"
)

// Tool implements the RenderTool and TranscriptionTool ports by exec'ing an
// external binary.
type Tool struct {
	bin     string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a tool adapter for the given binary path.
func New(bin string, timeout time.Duration, logger *slog.Logger) *Tool {
	return &Tool{bin: bin, timeout: timeout, logger: logger}
}

// run execs one tool subcommand with a JSON request/response round trip.
func (t *Tool) run(ctx context.Context, subcommand string, request, response any) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", subcommand, err)
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, t.bin, subcommand)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("tool %s timed out after %s", subcommand, t.timeout)
		}
		return fmt.Errorf("tool %s failed: %w: %s", subcommand, err, stderr.String())
	}

	t.logger.Debug("tool call completed",
		"subcommand", subcommand,
		"duration", time.Since(start).String(),
	)

	if err := json.Unmarshal(stdout.Bytes(), response); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", subcommand, err)
	}
	return nil
}

// Render sends the ordered clip descriptors to the tool.
func (t *Tool) Render(ctx context.Context, req secondary.RenderRequest) (*secondary.RenderResult, error) {
	var result secondary.RenderResult
	if err := t.run(ctx, "render", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type firstFrameRequest struct {
	InputVideo string  `json:"inputVideo"`
	SeekTo     float64 `json:"seekTo"`
}

type firstFrameResponse struct {
	ImagePath string `json:"imagePath"`
}

// FirstFrame extracts a still frame from a video file.
func (t *Tool) FirstFrame(ctx context.Context, inputVideo string, seekTo float64) (string, error) {
	var result firstFrameResponse
	err := t.run(ctx, "first-frame", firstFrameRequest{InputVideo: inputVideo, SeekTo: seekTo}, &result)
	if err != nil {
		return "", err
	}
	return result.ImagePath, nil
}

type ingestResponse struct {
	Clips []secondary.CapturedClip `json:"clips"`
}

// IngestCapture pulls newly captured clip descriptors from the tool.
func (t *Tool) IngestCapture(ctx context.Context) ([]secondary.CapturedClip, error) {
	var result ingestResponse
	if err := t.run(ctx, "ingest-capture", struct{}{}, &result); err != nil {
		return nil, err
	}
	return result.Clips, nil
}

type transcribeRequest struct {
	Spans []secondary.ClipSpan `json:"spans"`
}

type transcribeResponse struct {
	Segments map[string][]string `json:"segments"`
}

// Transcribe returns ordered text segments per clip id. Ids absent from the
// tool's response were not transcribed.
func (t *Tool) Transcribe(ctx context.Context, spans []secondary.ClipSpan) (map[string][]string, error) {
	var result transcribeResponse
	if err := t.run(ctx, "transcribe", transcribeRequest{Spans: spans}, &result); err != nil {
		return nil, err
	}
	return result.Segments, nil
}

// Ensure Tool implements both tool ports
var (
	_ secondary.RenderTool        = (*Tool)(nil)
	_ secondary.TranscriptionTool = (*Tool)(nil)
)
