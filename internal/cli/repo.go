package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/wire"
)

// RepoCmd manages repos and their version chains.
func RepoCmd() *cobra.Command {
	repoCmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage course repos",
		Long:  "Create, list, rename, archive and delete tracked course repos",
	}

	createCmd := &cobra.Command{
		Use:   "create [path]",
		Short: "Create a repo from a course directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			resp, err := svc.CreateRepo(context.Background(), primary.CreateRepoRequest{
				FilePath: args[0],
				Name:     name,
			})
			if err != nil {
				return fmt.Errorf("failed to create repo: %w", err)
			}

			fmt.Printf("%s Created repo %s: %s\n", okMark, resp.Repo.ID, resp.Repo.Name)
			fmt.Printf("  First version: %s (%s)\n", resp.FirstVersion.Name, resp.FirstVersion.ID)
			return nil
		},
	}
	createCmd.Flags().String("name", "", "Repo name (defaults to the directory name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List repos",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			repos, err := svc.ListRepos(context.Background(), all)
			if err != nil {
				return fmt.Errorf("failed to list repos: %w", err)
			}

			if len(repos) == 0 {
				fmt.Println("No repos found")
				return nil
			}
			for _, r := range repos {
				marker := ""
				if r.Archived {
					marker = " " + archived
				}
				fmt.Printf("%s  %s  %s%s\n", dimID(r.ID), r.Name, r.FilePath, marker)
			}
			return nil
		},
	}
	listCmd.Flags().Bool("all", false, "Include archived repos")

	showCmd := &cobra.Command{
		Use:   "show [repo-id]",
		Short: "Show a repo with its version chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			repo, err := svc.GetRepo(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get repo: %w", err)
			}

			fmt.Printf("%s  %s\n", repo.Name, dimID(repo.ID))
			fmt.Printf("  Path: %s\n", repo.FilePath)
			if repo.Archived {
				fmt.Printf("  %s\n", archived)
			}
			for i, v := range repo.Versions {
				marker := ""
				if i == len(repo.Versions)-1 {
					marker = latest
				}
				fmt.Printf("  v%d  %s  %s%s\n", v.Seq, v.Name, dimID(v.ID), marker)
			}
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename [repo-id] [name]",
		Short: "Rename a repo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			if err := svc.RenameRepo(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to rename repo: %w", err)
			}
			fmt.Printf("%s Renamed repo %s to %s\n", okMark, args[0], args[1])
			return nil
		},
	}

	archiveCmd := &cobra.Command{
		Use:   "archive [repo-id]",
		Short: "Archive a repo",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return setRepoArchived(args[0], true) },
	}

	unarchiveCmd := &cobra.Command{
		Use:   "unarchive [repo-id]",
		Short: "Restore an archived repo",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return setRepoArchived(args[0], false) },
	}

	setPathCmd := &cobra.Command{
		Use:   "set-path [repo-id] [path]",
		Short: "Point a repo at a new course directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			if err := svc.UpdateRepoFilePath(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to update repo path: %w", err)
			}
			fmt.Printf("%s Updated repo %s path to %s\n", okMark, args[0], args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [repo-id]",
		Short: "Delete a repo and everything beneath it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RepoService()
			if err != nil {
				return err
			}
			if err := svc.DeleteRepo(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete repo: %w", err)
			}
			fmt.Printf("%s Deleted repo %s\n", okMark, args[0])
			return nil
		},
	}

	repoCmd.AddCommand(createCmd, listCmd, showCmd, renameCmd, archiveCmd, unarchiveCmd, setPathCmd, deleteCmd)
	return repoCmd
}

func setRepoArchived(repoID string, archivedFlag bool) error {
	svc, err := wire.RepoService()
	if err != nil {
		return err
	}
	if err := svc.ArchiveRepo(context.Background(), repoID, archivedFlag); err != nil {
		return fmt.Errorf("failed to update repo archive status: %w", err)
	}
	if archivedFlag {
		fmt.Printf("%s Archived repo %s\n", okMark, repoID)
	} else {
		fmt.Printf("%s Restored repo %s\n", okMark, repoID)
	}
	return nil
}
