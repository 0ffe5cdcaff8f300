package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/core/timeline"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/wire"
)

// ClipCmd manages clips and clip sections on a video's timeline.
func ClipCmd() *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Manage clips and clip sections",
	}

	addCmd := &cobra.Command{
		Use:   "add [video-id]",
		Short: "Append a clip to the end of the timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			start, _ := cmd.Flags().GetFloat64("start")
			end, _ := cmd.Flags().GetFloat64("end")
			beat, _ := cmd.Flags().GetString("beat")

			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			clips, err := svc.AppendClips(context.Background(), args[0], []primary.ClipInput{
				{VideoFilename: file, SourceStartTime: start, SourceEndTime: end, BeatType: beat},
			})
			if err != nil {
				return fmt.Errorf("failed to append clip: %w", err)
			}
			fmt.Printf("%s Appended clip %s\n", okMark, clips[0].ID)
			return nil
		},
	}
	addCmd.Flags().String("file", "", "Source video filename")
	addCmd.Flags().Float64("start", 0, "Source start time in seconds")
	addCmd.Flags().Float64("end", 0, "Source end time in seconds")
	addCmd.Flags().String("beat", "", "Beat type tag")
	addCmd.MarkFlagRequired("file")
	addCmd.MarkFlagRequired("end")

	updateCmd := &cobra.Command{
		Use:   "update [clip-id]",
		Short: "Update clip fields; unset flags are left unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.UpdateClipRequest{ClipID: args[0]}
			if cmd.Flags().Changed("beat") {
				v, _ := cmd.Flags().GetString("beat")
				req.BeatType = &v
			}
			if cmd.Flags().Changed("section") {
				v, _ := cmd.Flags().GetString("section")
				req.ClipSectionID = &v
			}
			if cmd.Flags().Changed("start") {
				v, _ := cmd.Flags().GetFloat64("start")
				req.SourceStartTime = &v
			}
			if cmd.Flags().Changed("end") {
				v, _ := cmd.Flags().GetFloat64("end")
				req.SourceEndTime = &v
			}
			if cmd.Flags().Changed("text") {
				v, _ := cmd.Flags().GetString("text")
				req.Text = &v
			}

			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			clip, err := svc.UpdateClip(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to update clip: %w", err)
			}
			fmt.Printf("%s Updated clip %s\n", okMark, clip.ID)
			printClip(clip, "  ")
			return nil
		},
	}
	updateCmd.Flags().String("beat", "", "Beat type tag")
	updateCmd.Flags().String("section", "", "Move the clip into this clip section (empty detaches)")
	updateCmd.Flags().Float64("start", 0, "Source start time in seconds")
	updateCmd.Flags().Float64("end", 0, "Source end time in seconds")
	updateCmd.Flags().String("text", "", "Transcript text")

	clipCmd.AddCommand(addCmd, updateCmd, clipSectionCmd())
	return clipCmd
}

func clipSectionCmd() *cobra.Command {
	sectionCmd := &cobra.Command{
		Use:   "section",
		Short: "Manage clip sections on a timeline",
	}

	addCmd := &cobra.Command{
		Use:   "add [video-id] [name]",
		Short: "Insert a clip section at the start or after a clip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			afterClip, _ := cmd.Flags().GetString("after-clip")

			point := timeline.InsertionPoint{Type: timeline.InsertAtStart}
			if afterClip != "" {
				point = timeline.InsertionPoint{Type: timeline.InsertAfterClip, ClipID: afterClip}
			}

			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			section, err := svc.CreateClipSectionAtInsertionPoint(context.Background(), args[0], args[1], point)
			if err != nil {
				return fmt.Errorf("failed to insert clip section: %w", err)
			}
			fmt.Printf("%s Created clip section %s: %s\n", okMark, section.ID, section.Name)
			return nil
		},
	}
	addCmd.Flags().String("after-clip", "", "Insert directly after this clip (default: at the start)")

	moveCmd := &cobra.Command{
		Use:       "move [section-id] [up|down]",
		Short:     "Swap a clip section with its neighbor",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir timeline.Direction
			switch args[1] {
			case "up":
				dir = timeline.DirectionUp
			case "down":
				dir = timeline.DirectionDown
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}

			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			if err := svc.ReorderClipSection(context.Background(), args[0], dir); err != nil {
				return fmt.Errorf("failed to move clip section: %w", err)
			}
			fmt.Printf("%s Moved clip section %s %s\n", okMark, args[0], args[1])
			return nil
		},
	}

	archiveCmd := &cobra.Command{
		Use:   "archive [section-id]",
		Short: "Archive a clip section (clips kept, excluded from export)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			if err := svc.ArchiveClipSection(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to archive clip section: %w", err)
			}
			fmt.Printf("%s Archived clip section %s\n", okMark, args[0])
			return nil
		},
	}

	unarchiveCmd := &cobra.Command{
		Use:   "unarchive [section-id]",
		Short: "Restore an archived clip section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.ClipService()
			if err != nil {
				return err
			}
			if err := svc.UnarchiveClipSection(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to unarchive clip section: %w", err)
			}
			fmt.Printf("%s Restored clip section %s\n", okMark, args[0])
			return nil
		},
	}

	sectionCmd.AddCommand(addCmd, moveCmd, archiveCmd, unarchiveCmd)
	return sectionCmd
}
