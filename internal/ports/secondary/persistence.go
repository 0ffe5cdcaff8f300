// Package secondary defines the secondary ports (driven adapters) for the engine.
// These are the interfaces through which the engine drives external systems.
package secondary

import (
	"context"

	"github.com/example/cutroom/internal/core/timeline"
)

// RepoRepository defines the secondary port for repo persistence.
type RepoRepository interface {
	// CreateWithStructure persists a repo, its first version, and the parsed
	// section/lesson structure in one transaction.
	CreateWithStructure(ctx context.Context, repo *RepoRecord, version *VersionRecord, sections []SectionSeed) error

	// GetByID retrieves a repo by its ID.
	GetByID(ctx context.Context, id string) (*RepoRecord, error)

	// List retrieves repos matching the given filters.
	List(ctx context.Context, filters RepoFilters) ([]*RepoRecord, error)

	// Rename updates the repo name.
	Rename(ctx context.Context, id, name string) error

	// SetArchived updates the archived flag. Idempotent.
	SetArchived(ctx context.Context, id string, archived bool) error

	// UpdateFilePath updates the repo's file path. Fails with an
	// AmbiguousRepoUpdate failure when more than one repo currently shares
	// the target repo's path; the count is taken inside the same
	// transaction that performs the update.
	UpdateFilePath(ctx context.Context, id, filePath string) error

	// Delete removes a repo and cascades to all versions beneath it.
	Delete(ctx context.Context, id string) error
}

// RepoRecord represents a repo as stored in persistence.
type RepoRecord struct {
	ID        string
	Name      string
	FilePath  string
	Archived  bool
	CreatedAt string
	UpdatedAt string
}

// RepoFilters contains filter options for querying repos.
type RepoFilters struct {
	FilePath        string
	IncludeArchived bool
}

// SectionSeed is the input for bulk section creation. Order keys are
// assigned by the store in slice order.
type SectionSeed struct {
	Title   string
	Lessons []LessonSeed
}

// LessonSeed is the input for bulk lesson creation.
type LessonSeed struct {
	Path   string
	Number int
}

// VersionRepository defines the secondary port for repo version persistence.
// A repo's versions form a linear append-only chain; the latest version is
// derived from the greatest sequence number, never stored.
type VersionRepository interface {
	// Create appends a new version to the repo's chain, assigning a
	// strictly increasing sequence number inside the insert transaction.
	Create(ctx context.Context, version *VersionRecord) error

	// GetByID retrieves a version by its ID.
	GetByID(ctx context.Context, id string) (*VersionRecord, error)

	// GetLatest retrieves the repo's latest version.
	GetLatest(ctx context.Context, repoID string) (*VersionRecord, error)

	// ListByRepo retrieves all versions of a repo in chain order.
	ListByRepo(ctx context.Context, repoID string) ([]*VersionRecord, error)

	// Rename updates the version name.
	Rename(ctx context.Context, id, name string) error

	// CopyStructure deep-copies the source version's sections and lessons
	// under a freshly created version. The "source is latest" precondition
	// is re-checked inside the copy transaction; on failure nothing is
	// written. newVersion.Seq and CreatedAt are filled in on success.
	CopyStructure(ctx context.Context, sourceVersionID string, newVersion *VersionRecord) error

	// Delete removes a version, cascading to its structure, and returns
	// the new latest version. Preconditions (not sole version, is latest)
	// are re-checked inside the delete transaction.
	Delete(ctx context.Context, id string) (*VersionRecord, error)
}

// VersionRecord represents a repo version as stored in persistence.
type VersionRecord struct {
	ID        string
	RepoID    string
	Name      string
	Seq       int
	CreatedAt string
}

// SectionRepository defines the secondary port for section persistence.
type SectionRepository interface {
	// CreateBatch bulk-inserts sections under a version, preserving input
	// order via generated order keys. The returned slice maps 1:1
	// positionally to the input.
	CreateBatch(ctx context.Context, repoVersionID string, seeds []SectionSeed) ([]*SectionRecord, error)

	// GetByID retrieves a section by its ID.
	GetByID(ctx context.Context, id string) (*SectionRecord, error)

	// ListByVersion retrieves a version's sections in timeline order.
	ListByVersion(ctx context.Context, repoVersionID string) ([]*SectionRecord, error)
}

// SectionRecord represents a section as stored in persistence.
type SectionRecord struct {
	ID            string
	RepoVersionID string
	Title         string
	Ord           string
}

// LessonRepository defines the secondary port for lesson persistence.
type LessonRepository interface {
	// CreateBatch bulk-inserts lessons under a section.
	CreateBatch(ctx context.Context, sectionID string, seeds []LessonSeed) ([]*LessonRecord, error)

	// GetByID retrieves a lesson by its ID.
	GetByID(ctx context.Context, id string) (*LessonRecord, error)

	// ListBySection retrieves a section's lessons ordered by lesson number.
	ListBySection(ctx context.Context, sectionID string) ([]*LessonRecord, error)

	// Update overwrites path, section and lesson number with the
	// caller-supplied authoritative values.
	Update(ctx context.Context, lesson *LessonRecord) error

	// Delete removes a lesson, cascading to its bound video and clips.
	Delete(ctx context.Context, id string) error
}

// LessonRecord represents a lesson as stored in persistence.
type LessonRecord struct {
	ID           string
	SectionID    string
	Path         string
	LessonNumber int
}

// VideoRepository defines the secondary port for video persistence.
type VideoRepository interface {
	// Create persists a new video. An empty LessonID marks a standalone video.
	Create(ctx context.Context, video *VideoRecord) error

	// GetByID retrieves a video by its ID.
	GetByID(ctx context.Context, id string) (*VideoRecord, error)

	// List retrieves videos matching the given filters.
	List(ctx context.Context, filters VideoFilters) ([]*VideoRecord, error)

	// SetArchived updates the archived flag. The lesson-bound guard lives
	// in the service; this is a plain field update.
	SetArchived(ctx context.Context, id string, archived bool) error
}

// VideoRecord represents a video as stored in persistence.
type VideoRecord struct {
	ID       string
	LessonID string // empty for standalone videos
	Path     string
	Archived bool
}

// VideoFilters contains filter options for querying videos.
type VideoFilters struct {
	LessonID        string
	StandaloneOnly  bool
	IncludeArchived bool
}

// ClipSectionRepository defines the secondary port for clip section persistence.
// Clip sections and unsectioned clips share one order-key space per video.
type ClipSectionRepository interface {
	// Create persists a clip section at a caller-supplied order key.
	Create(ctx context.Context, section *ClipSectionRecord) error

	// CreateAtInsertionPoint persists a clip section with an order key
	// computed from a fresh neighbor read inside the insert transaction.
	// section.Ord is filled in on success. Fails with NotFound when the
	// referenced clip does not belong to the section's video.
	CreateAtInsertionPoint(ctx context.Context, section *ClipSectionRecord, point timeline.InsertionPoint) error

	// Reorder swaps the section's order key with its immediate neighbor
	// section in the given direction. A boundary position is a successful
	// no-op.
	Reorder(ctx context.Context, id string, dir timeline.Direction) error

	// SetArchived soft-deletes or restores a clip section.
	SetArchived(ctx context.Context, id string, archived bool) error

	// GetByID retrieves a clip section by its ID.
	GetByID(ctx context.Context, id string) (*ClipSectionRecord, error)

	// ListByVideo retrieves a video's clip sections in timeline order.
	ListByVideo(ctx context.Context, videoID string, includeArchived bool) ([]*ClipSectionRecord, error)
}

// ClipSectionRecord represents a clip section as stored in persistence.
type ClipSectionRecord struct {
	ID       string
	VideoID  string
	Name     string
	Ord      string
	Archived bool
}

// ClipRepository defines the secondary port for clip persistence.
type ClipRepository interface {
	// AppendBatch persists clips at the end of the video's timeline,
	// generating order keys greater than the current maximum inside the
	// insert transaction. Ord fields are filled in on success.
	AppendBatch(ctx context.Context, videoID string, clips []*ClipRecord) error

	// GetByID retrieves a clip by its ID.
	GetByID(ctx context.Context, id string) (*ClipRecord, error)

	// ListByIDs retrieves clips by id, preserving timeline order.
	ListByIDs(ctx context.Context, ids []string) ([]*ClipRecord, error)

	// ListByVideo retrieves a video's clips in timeline order. Clips in
	// archived sections are excluded unless includeArchived is set.
	ListByVideo(ctx context.Context, videoID string, includeArchived bool) ([]*ClipRecord, error)

	// Update applies a partial update; nil fields are left unchanged.
	Update(ctx context.Context, id string, update ClipUpdate) error

	// SetTranscription writes back transcription text and timestamp.
	SetTranscription(ctx context.Context, id, text, transcribedAt string) error
}

// ClipRecord represents a clip as stored in persistence.
type ClipRecord struct {
	ID              string
	VideoID         string
	ClipSectionID   string // empty for unsectioned clips
	VideoFilename   string
	SourceStartTime float64
	SourceEndTime   float64
	BeatType        string
	Text            string
	TranscribedAt   string
	Ord             string
}

// ClipUpdate contains the partially updatable clip fields.
type ClipUpdate struct {
	BeatType        *string
	ClipSectionID   *string
	SourceStartTime *float64
	SourceEndTime   *float64
	Text            *string
}
