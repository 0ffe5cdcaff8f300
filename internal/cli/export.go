package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/wire"
)

// ExportCmd renders an ordered clip selection through the external tool.
func ExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export [video-id] [clip-id...]",
		Short: "Render a clip selection (whole timeline when no clips given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shortsName, _ := cmd.Flags().GetString("shorts-name")

			svc, err := wire.ExportService()
			if err != nil {
				return err
			}
			result, err := svc.ExportVideoClips(context.Background(), primary.ExportRequest{
				VideoID:                   args[0],
				ClipIDs:                   args[1:],
				ShortsDirectoryOutputName: shortsName,
			})
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			fmt.Printf("%s Rendered %d clips to %s\n", okMark, result.ClipCount, result.OutputPath)
			for _, w := range result.Warnings {
				fmt.Printf("  warning: %s\n", w)
			}
			return nil
		},
	}
	exportCmd.Flags().String("shorts-name", "", "Shorts output directory name")
	return exportCmd
}

// TranscribeCmd transcribes clips and writes the text back.
func TranscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe [clip-id...]",
		Short: "Transcribe clips and write the text back",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.ExportService()
			if err != nil {
				return err
			}
			result, err := svc.TranscribeClips(context.Background(), args)
			if err != nil {
				return fmt.Errorf("failed to transcribe: %w", err)
			}

			fmt.Printf("%s Transcribed %d clips\n", okMark, len(result.Transcribed))
			if len(result.Skipped) > 0 {
				fmt.Printf("  Skipped (not in tool response): %d\n", len(result.Skipped))
				for _, id := range result.Skipped {
					fmt.Printf("    %s\n", id)
				}
			}
			return nil
		},
	}
}

// FirstFrameCmd extracts a still frame from a video.
func FirstFrameCmd() *cobra.Command {
	firstFrameCmd := &cobra.Command{
		Use:   "first-frame [video-id]",
		Short: "Extract a still frame from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seekTo, _ := cmd.Flags().GetFloat64("seek")

			svc, err := wire.ExportService()
			if err != nil {
				return err
			}
			path, err := svc.FirstFrame(context.Background(), args[0], seekTo)
			if err != nil {
				return fmt.Errorf("failed to extract frame: %w", err)
			}
			fmt.Printf("%s Frame written to %s\n", okMark, path)
			return nil
		},
	}
	firstFrameCmd.Flags().Float64("seek", 0, "Seek position in seconds")
	return firstFrameCmd
}
