package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/wire"
)

// VideoCmd manages videos and their timelines.
func VideoCmd() *cobra.Command {
	videoCmd := &cobra.Command{
		Use:   "video",
		Short: "Manage videos",
		Long:  "Create and list videos, inspect timelines, ingest captured clips",
	}

	createCmd := &cobra.Command{
		Use:   "create [path]",
		Short: "Register a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, _ := cmd.Flags().GetString("lesson")

			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			video, err := svc.CreateVideo(context.Background(), primary.CreateVideoRequest{
				LessonID: lessonID,
				Path:     args[0],
			})
			if err != nil {
				return fmt.Errorf("failed to create video: %w", err)
			}

			if video.LessonID != "" {
				fmt.Printf("%s Created video %s for lesson %s\n", okMark, video.ID, video.LessonID)
			} else {
				fmt.Printf("%s Created standalone video %s\n", okMark, video.ID)
			}
			return nil
		},
	}
	createCmd.Flags().String("lesson", "", "Bind the video to this lesson (omit for standalone)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, _ := cmd.Flags().GetString("lesson")
			standalone, _ := cmd.Flags().GetBool("standalone")
			all, _ := cmd.Flags().GetBool("all")

			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			videos, err := svc.ListVideos(context.Background(), primary.VideoFilters{
				LessonID:        lessonID,
				StandaloneOnly:  standalone,
				IncludeArchived: all,
			})
			if err != nil {
				return fmt.Errorf("failed to list videos: %w", err)
			}

			if len(videos) == 0 {
				fmt.Println("No videos found")
				return nil
			}
			for _, v := range videos {
				marker := ""
				if v.Archived {
					marker = " " + archived
				}
				binding := "standalone"
				if v.LessonID != "" {
					binding = "lesson " + v.LessonID
				}
				fmt.Printf("%s  %s  (%s)%s\n", dimID(v.ID), v.Path, binding, marker)
			}
			return nil
		},
	}
	listCmd.Flags().String("lesson", "", "Only videos bound to this lesson")
	listCmd.Flags().Bool("standalone", false, "Only standalone videos")
	listCmd.Flags().Bool("all", false, "Include archived videos")

	archiveCmd := &cobra.Command{
		Use:   "archive [video-id]",
		Short: "Archive a standalone video",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return setVideoArchived(args[0], true) },
	}

	unarchiveCmd := &cobra.Command{
		Use:   "unarchive [video-id]",
		Short: "Restore an archived video",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return setVideoArchived(args[0], false) },
	}

	timelineCmd := &cobra.Command{
		Use:   "timeline [video-id]",
		Short: "Show a video's sections and clips in timeline order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			tl, err := svc.GetTimeline(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get timeline: %w", err)
			}

			fmt.Printf("%s  %s\n", tl.Video.Path, dimID(tl.Video.ID))

			// Sections and clips interleave on one key space; walk them merged.
			clipsBySection := map[string][]*primary.Clip{}
			for _, c := range tl.Clips {
				clipsBySection[c.ClipSectionID] = append(clipsBySection[c.ClipSectionID], c)
			}
			for _, section := range tl.Sections {
				marker := ""
				if section.Archived {
					marker = " " + archived
				}
				fmt.Printf("  § %s%s  %s\n", section.Name, marker, dimID(section.ID))
				for _, c := range clipsBySection[section.ID] {
					printClip(c, "    ")
				}
			}
			for _, c := range clipsBySection[""] {
				printClip(c, "  ")
			}
			return nil
		},
	}

	ingestCmd := &cobra.Command{
		Use:   "ingest [video-id]",
		Short: "Pull newly captured clips from the external tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			clips, err := svc.IngestCapture(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to ingest capture: %w", err)
			}

			if len(clips) == 0 {
				fmt.Println("No new captures")
				return nil
			}
			fmt.Printf("%s Ingested %d clips\n", okMark, len(clips))
			for _, c := range clips {
				printClip(c, "  ")
			}
			return nil
		},
	}

	videoCmd.AddCommand(createCmd, listCmd, archiveCmd, unarchiveCmd, timelineCmd, ingestCmd)
	return videoCmd
}

func setVideoArchived(videoID string, archivedFlag bool) error {
	svc, err := wire.ClipService()
	if err != nil {
		return err
	}
	if err := svc.UpdateVideoArchiveStatus(context.Background(), videoID, archivedFlag); err != nil {
		return fmt.Errorf("failed to update video archive status: %w", err)
	}
	if archivedFlag {
		fmt.Printf("%s Archived video %s\n", okMark, videoID)
	} else {
		fmt.Printf("%s Restored video %s\n", okMark, videoID)
	}
	return nil
}

func printClip(c *primary.Clip, indent string) {
	beat := ""
	if c.BeatType != "" {
		beat = "  [" + c.BeatType + "]"
	}
	fmt.Printf("%s%s  %.2f-%.2f%s  %s\n", indent, c.VideoFilename, c.SourceStartTime, c.SourceEndTime, beat, dimID(c.ID))
}
