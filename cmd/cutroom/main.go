package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/cli"
	"github.com/example/cutroom/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cutroom",
		Short:   "cutroom - versioned course content and clip timelines",
		Version: version.String(),
		Long: `cutroom tracks course repos as versioned section/lesson structures and
edits per-video clip timelines for export through an external render tool.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.RepoCmd())
	rootCmd.AddCommand(cli.VersionCmd())
	rootCmd.AddCommand(cli.StructureCmd())
	rootCmd.AddCommand(cli.SectionCmd())
	rootCmd.AddCommand(cli.LessonCmd())
	rootCmd.AddCommand(cli.VideoCmd())
	rootCmd.AddCommand(cli.ClipCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.TranscribeCmd())
	rootCmd.AddCommand(cli.FirstFrameCmd())
	rootCmd.AddCommand(cli.ChangelogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
