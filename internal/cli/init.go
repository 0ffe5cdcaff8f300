package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/cutroom/internal/config"
	"github.com/example/cutroom/internal/db"
)

// InitCmd creates the config file and database.
func InitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the cutroom config and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			library, _ := cmd.Flags().GetString("library")
			toolBin, _ := cmd.Flags().GetString("tool-bin")

			path, err := config.Path()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("Config already exists at %s\n", path)
			} else {
				cfg := config.Default()
				cfg.LibraryPath = library
				cfg.ToolBin = toolBin
				if err := cfg.Save(); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Printf("%s Wrote config to %s\n", okMark, path)
			}

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			dbPath, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Printf("%s Database ready at %s\n", okMark, dbPath)
			return nil
		},
	}
	initCmd.Flags().String("library", "", "Root directory where course repos live")
	initCmd.Flags().String("tool-bin", "", "Path to the external render/transcribe binary")
	return initCmd
}

// DoctorCmd checks the local setup.
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, database and tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			fmt.Printf("%s Config loaded (log level %s)\n", okMark, cfg.LogLevel)

			if cfg.LibraryPath == "" {
				fmt.Println("  library path not set; repo paths must be absolute")
			} else if _, err := os.Stat(cfg.LibraryPath); err != nil {
				fmt.Printf("  library path %s is not accessible\n", cfg.LibraryPath)
			} else {
				fmt.Printf("%s Library at %s\n", okMark, cfg.LibraryPath)
			}

			if cfg.ToolBin == "" {
				fmt.Println("  external tool not configured; export/transcribe/ingest are disabled")
			} else if _, err := os.Stat(cfg.ToolBin); err != nil {
				fmt.Printf("  tool binary %s is not accessible\n", cfg.ToolBin)
			} else {
				fmt.Printf("%s Tool binary at %s\n", okMark, cfg.ToolBin)
			}

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			dbPath, _ := db.GetDBPath()
			fmt.Printf("%s Database at %s\n", okMark, dbPath)
			return nil
		},
	}
}
