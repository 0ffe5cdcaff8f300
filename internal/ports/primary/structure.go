package primary

import "context"

// StructureService manages sections and lessons under a repo version.
type StructureService interface {
	// CreateSections bulk-creates sections under a version, preserving
	// input order. The response maps 1:1 positionally to the input so
	// callers can attach lessons to the right section.
	CreateSections(ctx context.Context, repoVersionID string, sections []SectionInput) ([]*Section, error)

	// CreateLessons bulk-creates lessons under a section; each lesson
	// number is parsed from the path's leading token.
	CreateLessons(ctx context.Context, sectionID string, paths []string) ([]*Lesson, error)

	// UpdateLesson renames or moves a lesson. The lesson number is
	// re-derived from the new path's leading numeric token.
	UpdateLesson(ctx context.Context, req UpdateLessonRequest) (*Lesson, error)

	// DeleteLesson removes a lesson and its bound video, if any.
	DeleteLesson(ctx context.Context, lessonID string) error

	// GetStructure retrieves a version's full section/lesson tree.
	GetStructure(ctx context.Context, repoVersionID string) ([]*Section, error)
}

// SectionInput is the input for bulk section creation.
type SectionInput struct {
	Title       string
	LessonPaths []string
}

// Section is a named, ordered grouping of lessons within a version.
type Section struct {
	ID            string
	RepoVersionID string
	Title         string
	Ord           string
	Lessons       []*Lesson
}

// UpdateLessonRequest carries a lesson rename/move.
type UpdateLessonRequest struct {
	LessonID  string
	Path      string
	SectionID string // empty keeps the current section
}

// Lesson is an ordered entry within a section.
type Lesson struct {
	ID           string
	SectionID    string
	Path         string
	LessonNumber int
}
