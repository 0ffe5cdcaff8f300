package app

import (
	"context"
	"log/slog"

	"github.com/example/cutroom/internal/core/lessonpath"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/ports/secondary"
)

// StructureService implements primary.StructureService.
type StructureService struct {
	sections secondary.SectionRepository
	lessons  secondary.LessonRepository
	logger   *slog.Logger
}

// NewStructureService creates a structure service.
func NewStructureService(
	sections secondary.SectionRepository,
	lessons secondary.LessonRepository,
	logger *slog.Logger,
) *StructureService {
	return &StructureService{sections: sections, lessons: lessons, logger: logger}
}

// CreateSections bulk-creates sections under a version. Lesson numbers are
// parsed before any write so a bad path fails the whole batch up front.
func (s *StructureService) CreateSections(ctx context.Context, repoVersionID string, sections []primary.SectionInput) ([]*primary.Section, error) {
	seeds := make([]secondary.SectionSeed, len(sections))
	for i, input := range sections {
		seed := secondary.SectionSeed{Title: input.Title}
		for _, path := range input.LessonPaths {
			number, err := lessonpath.Number(path)
			if err != nil {
				return nil, err
			}
			seed.Lessons = append(seed.Lessons, secondary.LessonSeed{Path: path, Number: number})
		}
		seeds[i] = seed
	}

	created, err := s.sections.CreateBatch(ctx, repoVersionID, seeds)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "create sections", err)
	}

	result := make([]*primary.Section, len(created))
	for i, record := range created {
		section, err := s.sectionWithLessons(ctx, record)
		if err != nil {
			return nil, err
		}
		result[i] = section
	}
	return result, nil
}

// CreateLessons bulk-creates lessons under a section.
func (s *StructureService) CreateLessons(ctx context.Context, sectionID string, paths []string) ([]*primary.Lesson, error) {
	seeds := make([]secondary.LessonSeed, len(paths))
	for i, path := range paths {
		number, err := lessonpath.Number(path)
		if err != nil {
			return nil, err
		}
		seeds[i] = secondary.LessonSeed{Path: path, Number: number}
	}

	created, err := s.lessons.CreateBatch(ctx, sectionID, seeds)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "create lessons", err)
	}

	result := make([]*primary.Lesson, len(created))
	for i, record := range created {
		result[i] = toLesson(record)
	}
	return result, nil
}

// UpdateLesson renames or moves a lesson, re-deriving the lesson number from
// the new path. The record is untouched when the path fails to parse.
func (s *StructureService) UpdateLesson(ctx context.Context, req primary.UpdateLessonRequest) (*primary.Lesson, error) {
	number, err := lessonpath.Number(req.Path)
	if err != nil {
		return nil, err
	}

	record, err := s.lessons.GetByID(ctx, req.LessonID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "get lesson", err)
	}

	record.Path = req.Path
	record.LessonNumber = number
	if req.SectionID != "" {
		record.SectionID = req.SectionID
	}
	if err := s.lessons.Update(ctx, record); err != nil {
		return nil, wrapUnexpected(s.logger, "update lesson", err)
	}
	return toLesson(record), nil
}

// DeleteLesson removes a lesson and its bound video, if any.
func (s *StructureService) DeleteLesson(ctx context.Context, lessonID string) error {
	return wrapUnexpected(s.logger, "delete lesson", s.lessons.Delete(ctx, lessonID))
}

// GetStructure retrieves a version's full section/lesson tree.
func (s *StructureService) GetStructure(ctx context.Context, repoVersionID string) ([]*primary.Section, error) {
	records, err := s.sections.ListByVersion(ctx, repoVersionID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list sections", err)
	}

	result := make([]*primary.Section, len(records))
	for i, record := range records {
		section, err := s.sectionWithLessons(ctx, record)
		if err != nil {
			return nil, err
		}
		result[i] = section
	}
	return result, nil
}

func (s *StructureService) sectionWithLessons(ctx context.Context, record *secondary.SectionRecord) (*primary.Section, error) {
	section := &primary.Section{
		ID:            record.ID,
		RepoVersionID: record.RepoVersionID,
		Title:         record.Title,
		Ord:           record.Ord,
	}
	lessons, err := s.lessons.ListBySection(ctx, record.ID)
	if err != nil {
		return nil, wrapUnexpected(s.logger, "list lessons", err)
	}
	for _, l := range lessons {
		section.Lessons = append(section.Lessons, toLesson(l))
	}
	return section, nil
}

func toLesson(l *secondary.LessonRecord) *primary.Lesson {
	return &primary.Lesson{
		ID:           l.ID,
		SectionID:    l.SectionID,
		Path:         l.Path,
		LessonNumber: l.LessonNumber,
	}
}

// Ensure StructureService implements the interface
var _ primary.StructureService = (*StructureService)(nil)
