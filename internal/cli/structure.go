package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/wire"
)

// StructureCmd shows a version's section/lesson tree.
func StructureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "structure [version-id]",
		Short: "Show a version's section/lesson tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.StructureService()
			if err != nil {
				return err
			}
			sections, err := svc.GetStructure(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get structure: %w", err)
			}

			if len(sections) == 0 {
				fmt.Println("No sections")
				return nil
			}
			for _, section := range sections {
				fmt.Printf("%s  %s\n", section.Title, dimID(section.ID))
				for _, lesson := range section.Lessons {
					fmt.Printf("  %s  %s\n", lesson.Path, dimID(lesson.ID))
				}
			}
			return nil
		},
	}
}

// SectionCmd manages sections under a repo version.
func SectionCmd() *cobra.Command {
	sectionCmd := &cobra.Command{
		Use:   "section",
		Short: "Manage sections under a repo version",
	}

	createCmd := &cobra.Command{
		Use:   "create [version-id] [title]",
		Short: "Create a section at the end of the version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonPaths, _ := cmd.Flags().GetStringArray("lesson")

			svc, err := wire.StructureService()
			if err != nil {
				return err
			}
			sections, err := svc.CreateSections(context.Background(), args[0], []primary.SectionInput{
				{Title: args[1], LessonPaths: lessonPaths},
			})
			if err != nil {
				return fmt.Errorf("failed to create section: %w", err)
			}
			fmt.Printf("%s Created section %s: %s\n", okMark, sections[0].ID, sections[0].Title)
			for _, lesson := range sections[0].Lessons {
				fmt.Printf("  %s\n", lesson.Path)
			}
			return nil
		},
	}
	createCmd.Flags().StringArray("lesson", nil, "Lesson path to seed (repeatable, \"<n>-<name>\")")

	sectionCmd.AddCommand(createCmd)
	return sectionCmd
}

// LessonCmd manages lessons under a section.
func LessonCmd() *cobra.Command {
	lessonCmd := &cobra.Command{
		Use:   "lesson",
		Short: "Manage lessons under a section",
	}

	createCmd := &cobra.Command{
		Use:   "create [section-id] [path...]",
		Short: "Create lessons under a section",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.StructureService()
			if err != nil {
				return err
			}
			lessons, err := svc.CreateLessons(context.Background(), args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to create lessons: %w", err)
			}
			for _, lesson := range lessons {
				fmt.Printf("%s Created lesson %s: %s\n", okMark, lesson.ID, lesson.Path)
			}
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [lesson-id] [path]",
		Short: "Rename or move a lesson (number re-derived from the path)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, _ := cmd.Flags().GetString("section")

			svc, err := wire.StructureService()
			if err != nil {
				return err
			}
			lesson, err := svc.UpdateLesson(context.Background(), primary.UpdateLessonRequest{
				LessonID:  args[0],
				Path:      args[1],
				SectionID: sectionID,
			})
			if err != nil {
				return fmt.Errorf("failed to update lesson: %w", err)
			}
			fmt.Printf("%s Updated lesson %s: %s (number %d)\n", okMark, lesson.ID, lesson.Path, lesson.LessonNumber)
			return nil
		},
	}
	updateCmd.Flags().String("section", "", "Move the lesson to this section")

	deleteCmd := &cobra.Command{
		Use:   "delete [lesson-id]",
		Short: "Delete a lesson and its bound video, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.StructureService()
			if err != nil {
				return err
			}
			if err := svc.DeleteLesson(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete lesson: %w", err)
			}
			fmt.Printf("%s Deleted lesson %s\n", okMark, args[0])
			return nil
		},
	}

	lessonCmd.AddCommand(createCmd, updateCmd, deleteCmd)
	return lessonCmd
}
