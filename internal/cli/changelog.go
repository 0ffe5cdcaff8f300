package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/core/changelog"
	"github.com/example/cutroom/internal/wire"
)

// ChangelogCmd prints the structural changes between a repo's versions.
func ChangelogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "changelog [repo-id]",
		Short: "Show structural changes between consecutive versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.ChangelogService()
			if err != nil {
				return err
			}
			entries, err := svc.RepoChangelog(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to build changelog: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No version pairs to compare")
				return nil
			}
			fmt.Print(changelog.Render(entries))
			return nil
		},
	}
}
