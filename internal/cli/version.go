package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/wire"
)

// VersionCmd manages a repo's version chain.
func VersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Manage repo versions",
		Long:  "Append, branch, rename and delete versions in a repo's linear chain",
	}

	createCmd := &cobra.Command{
		Use:   "create [repo-id] [name]",
		Short: "Append an empty version to the repo's chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			version, err := svc.CreateVersion(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to create version: %w", err)
			}
			fmt.Printf("%s Created version %s (seq %d): %s\n", okMark, version.ID, version.Seq, version.Name)
			return nil
		},
	}

	branchCmd := &cobra.Command{
		Use:   "branch [source-version-id] [repo-id] [name]",
		Short: "Branch a new version by deep-copying the latest version's structure",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			version, err := svc.CopyVersionStructure(context.Background(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("failed to branch version: %w", err)
			}
			fmt.Printf("%s Branched version %s (seq %d): %s\n", okMark, version.ID, version.Seq, version.Name)
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename [version-id] [name]",
		Short: "Rename a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			if err := svc.RenameVersion(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to rename version: %w", err)
			}
			fmt.Printf("%s Renamed version %s to %s\n", okMark, args[0], args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [version-id]",
		Short: "Delete the repo's latest version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			newLatest, err := svc.DeleteRepoVersion(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete version: %w", err)
			}
			fmt.Printf("%s Deleted version %s\n", okMark, args[0])
			if newLatest != nil {
				fmt.Printf("  New latest: %s (seq %d)\n", newLatest.Name, newLatest.Seq)
			}
			return nil
		},
	}

	versionCmd.AddCommand(createCmd, branchCmd, renameCmd, deleteCmd)
	return versionCmd
}
