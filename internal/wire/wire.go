// Package wire constructs and caches the application's dependency graph.
//
// Every accessor is a lazy singleton: the first call builds the instance,
// later calls reuse it. CLI commands get services from here and never
// construct adapters themselves.
package wire

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/cutroom/internal/adapters/filesystem"
	"github.com/example/cutroom/internal/adapters/sqlite"
	"github.com/example/cutroom/internal/adapters/toolcli"
	"github.com/example/cutroom/internal/app"
	"github.com/example/cutroom/internal/config"
	"github.com/example/cutroom/internal/db"
	"github.com/example/cutroom/internal/logging"
	"github.com/example/cutroom/internal/ports/primary"
	"github.com/example/cutroom/internal/ports/secondary"
)

var (
	cfgOnce sync.Once
	cfg     *config.Config
	cfgErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	dbOnce sync.Once
	dbConn *sql.DB
	dbErr  error

	toolOnce          sync.Once
	renderTool        secondary.RenderTool
	transcriptionTool secondary.TranscriptionTool

	repoServiceOnce sync.Once
	repoService     primary.RepoService

	structureServiceOnce sync.Once
	structureService     primary.StructureService

	clipServiceOnce sync.Once
	clipService     primary.ClipService

	exportServiceOnce sync.Once
	exportService     primary.ExportService

	changelogServiceOnce sync.Once
	changelogService     primary.ChangelogService
)

// Config returns the loaded configuration.
func Config() (*config.Config, error) {
	cfgOnce.Do(func() {
		cfg, cfgErr = config.Load()
	})
	return cfg, cfgErr
}

// Logger returns the process-wide structured logger.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		level := "info"
		if c, err := Config(); err == nil {
			level = c.LogLevel
		}
		logger = logging.New(level)
	})
	return logger
}

// DB returns the shared database connection.
func DB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbConn, dbErr = db.GetDB()
	})
	return dbConn, dbErr
}

// tools returns the render and transcription tool adapters: the exec adapter
// when a binary is configured, the stub otherwise.
func tools() (secondary.RenderTool, secondary.TranscriptionTool, error) {
	c, err := Config()
	if err != nil {
		return nil, nil, err
	}
	toolOnce.Do(func() {
		if c.ToolBin == "" {
			stub := toolcli.NewStub(Logger())
			renderTool, transcriptionTool = stub, stub
			return
		}
		tool := toolcli.New(c.ToolBin, time.Duration(c.ToolTimeoutSeconds)*time.Second, Logger())
		renderTool, transcriptionTool = tool, tool
	})
	return renderTool, transcriptionTool, nil
}

// RepoService returns the repo service singleton.
func RepoService() (primary.RepoService, error) {
	conn, err := DB()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	repoServiceOnce.Do(func() {
		repoService = app.NewRepoService(
			sqlite.NewRepoRepository(conn),
			sqlite.NewVersionRepository(conn),
			filesystem.NewWorkspace(),
			Logger(),
		)
	})
	return repoService, nil
}

// StructureService returns the structure service singleton.
func StructureService() (primary.StructureService, error) {
	conn, err := DB()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	structureServiceOnce.Do(func() {
		structureService = app.NewStructureService(
			sqlite.NewSectionRepository(conn),
			sqlite.NewLessonRepository(conn),
			Logger(),
		)
	})
	return structureService, nil
}

// ClipService returns the clip service singleton.
func ClipService() (primary.ClipService, error) {
	conn, err := DB()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	render, _, err := tools()
	if err != nil {
		return nil, err
	}
	clipServiceOnce.Do(func() {
		clipService = app.NewClipService(
			sqlite.NewVideoRepository(conn),
			sqlite.NewClipSectionRepository(conn),
			sqlite.NewClipRepository(conn),
			render,
			Logger(),
		)
	})
	return clipService, nil
}

// ExportService returns the export service singleton.
func ExportService() (primary.ExportService, error) {
	conn, err := DB()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	render, transcription, err := tools()
	if err != nil {
		return nil, err
	}
	exportServiceOnce.Do(func() {
		exportService = app.NewExportService(
			sqlite.NewVideoRepository(conn),
			sqlite.NewClipRepository(conn),
			render,
			transcription,
			Logger(),
		)
	})
	return exportService, nil
}

// ChangelogService returns the changelog service singleton.
func ChangelogService() (primary.ChangelogService, error) {
	conn, err := DB()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	changelogServiceOnce.Do(func() {
		changelogService = app.NewChangelogService(
			sqlite.NewVersionRepository(conn),
			sqlite.NewSectionRepository(conn),
			sqlite.NewLessonRepository(conn),
			Logger(),
		)
	})
	return changelogService, nil
}
