package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/ports/secondary"
)

// Mocks embed their port interface and override only what a test expects to
// be called; an unexpected call panics on the nil embedded interface, which
// fails the test loudly.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockRepoRepo struct {
	secondary.RepoRepository
	createWithStructure func(ctx context.Context, repo *secondary.RepoRecord, version *secondary.VersionRecord, sections []secondary.SectionSeed) error
	getByID             func(ctx context.Context, id string) (*secondary.RepoRecord, error)
}

func (m *mockRepoRepo) CreateWithStructure(ctx context.Context, repo *secondary.RepoRecord, version *secondary.VersionRecord, sections []secondary.SectionSeed) error {
	return m.createWithStructure(ctx, repo, version, sections)
}

func (m *mockRepoRepo) GetByID(ctx context.Context, id string) (*secondary.RepoRecord, error) {
	return m.getByID(ctx, id)
}

type mockVersionRepo struct {
	secondary.VersionRepository
	getByID       func(ctx context.Context, id string) (*secondary.VersionRecord, error)
	getLatest     func(ctx context.Context, repoID string) (*secondary.VersionRecord, error)
	listByRepo    func(ctx context.Context, repoID string) ([]*secondary.VersionRecord, error)
	copyStructure func(ctx context.Context, sourceVersionID string, newVersion *secondary.VersionRecord) error
	delete        func(ctx context.Context, id string) (*secondary.VersionRecord, error)
}

func (m *mockVersionRepo) GetByID(ctx context.Context, id string) (*secondary.VersionRecord, error) {
	return m.getByID(ctx, id)
}

func (m *mockVersionRepo) GetLatest(ctx context.Context, repoID string) (*secondary.VersionRecord, error) {
	return m.getLatest(ctx, repoID)
}

func (m *mockVersionRepo) ListByRepo(ctx context.Context, repoID string) ([]*secondary.VersionRecord, error) {
	return m.listByRepo(ctx, repoID)
}

func (m *mockVersionRepo) CopyStructure(ctx context.Context, sourceVersionID string, newVersion *secondary.VersionRecord) error {
	return m.copyStructure(ctx, sourceVersionID, newVersion)
}

func (m *mockVersionRepo) Delete(ctx context.Context, id string) (*secondary.VersionRecord, error) {
	return m.delete(ctx, id)
}

type mockSectionRepo struct {
	secondary.SectionRepository
	listByVersion func(ctx context.Context, repoVersionID string) ([]*secondary.SectionRecord, error)
}

func (m *mockSectionRepo) ListByVersion(ctx context.Context, repoVersionID string) ([]*secondary.SectionRecord, error) {
	return m.listByVersion(ctx, repoVersionID)
}

type mockLessonRepo struct {
	secondary.LessonRepository
	getByID       func(ctx context.Context, id string) (*secondary.LessonRecord, error)
	update        func(ctx context.Context, lesson *secondary.LessonRecord) error
	listBySection func(ctx context.Context, sectionID string) ([]*secondary.LessonRecord, error)
}

func (m *mockLessonRepo) GetByID(ctx context.Context, id string) (*secondary.LessonRecord, error) {
	return m.getByID(ctx, id)
}

func (m *mockLessonRepo) Update(ctx context.Context, lesson *secondary.LessonRecord) error {
	return m.update(ctx, lesson)
}

func (m *mockLessonRepo) ListBySection(ctx context.Context, sectionID string) ([]*secondary.LessonRecord, error) {
	return m.listBySection(ctx, sectionID)
}

type mockVideoRepo struct {
	secondary.VideoRepository
	getByID     func(ctx context.Context, id string) (*secondary.VideoRecord, error)
	setArchived func(ctx context.Context, id string, archived bool) error
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*secondary.VideoRecord, error) {
	return m.getByID(ctx, id)
}

func (m *mockVideoRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	return m.setArchived(ctx, id, archived)
}

type mockClipRepo struct {
	secondary.ClipRepository
	appendBatch      func(ctx context.Context, videoID string, clips []*secondary.ClipRecord) error
	listByIDs        func(ctx context.Context, ids []string) ([]*secondary.ClipRecord, error)
	listByVideo      func(ctx context.Context, videoID string, includeArchived bool) ([]*secondary.ClipRecord, error)
	setTranscription func(ctx context.Context, id, text, transcribedAt string) error
}

func (m *mockClipRepo) AppendBatch(ctx context.Context, videoID string, clips []*secondary.ClipRecord) error {
	return m.appendBatch(ctx, videoID, clips)
}

func (m *mockClipRepo) ListByIDs(ctx context.Context, ids []string) ([]*secondary.ClipRecord, error) {
	return m.listByIDs(ctx, ids)
}

func (m *mockClipRepo) ListByVideo(ctx context.Context, videoID string, includeArchived bool) ([]*secondary.ClipRecord, error) {
	return m.listByVideo(ctx, videoID, includeArchived)
}

func (m *mockClipRepo) SetTranscription(ctx context.Context, id, text, transcribedAt string) error {
	return m.setTranscription(ctx, id, text, transcribedAt)
}

type mockClipSectionRepo struct {
	secondary.ClipSectionRepository
	create                 func(ctx context.Context, section *secondary.ClipSectionRecord) error
	createAtInsertionPoint func(ctx context.Context, section *secondary.ClipSectionRecord, point timeline.InsertionPoint) error
}

func (m *mockClipSectionRepo) Create(ctx context.Context, section *secondary.ClipSectionRecord) error {
	return m.create(ctx, section)
}

func (m *mockClipSectionRepo) CreateAtInsertionPoint(ctx context.Context, section *secondary.ClipSectionRecord, point timeline.InsertionPoint) error {
	return m.createAtInsertionPoint(ctx, section, point)
}

type mockWorkspace struct {
	exists    func(path string) bool
	parseRepo func(path string) ([]secondary.ParsedSection, error)
}

func (m *mockWorkspace) Exists(path string) bool {
	return m.exists(path)
}

func (m *mockWorkspace) ParseRepo(path string) ([]secondary.ParsedSection, error) {
	return m.parseRepo(path)
}

type mockRenderTool struct {
	secondary.RenderTool
	render        func(ctx context.Context, req secondary.RenderRequest) (*secondary.RenderResult, error)
	firstFrame    func(ctx context.Context, inputVideo string, seekTo float64) (string, error)
	ingestCapture func(ctx context.Context) ([]secondary.CapturedClip, error)
}

func (m *mockRenderTool) Render(ctx context.Context, req secondary.RenderRequest) (*secondary.RenderResult, error) {
	return m.render(ctx, req)
}

func (m *mockRenderTool) FirstFrame(ctx context.Context, inputVideo string, seekTo float64) (string, error) {
	return m.firstFrame(ctx, inputVideo, seekTo)
}

func (m *mockRenderTool) IngestCapture(ctx context.Context) ([]secondary.CapturedClip, error) {
	return m.ingestCapture(ctx)
}

type mockTranscriptionTool struct {
	transcribe func(ctx context.Context, spans []secondary.ClipSpan) (map[string][]string, error)
}

func (m *mockTranscriptionTool) Transcribe(ctx context.Context, spans []secondary.ClipSpan) (map[string][]string, error) {
	return m.transcribe(ctx, spans)
}
