package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/blerimk/schoolroster/internal/config"
	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/internal/service"
	"github.com/blerimk/schoolroster/internal/store"
	"github.com/blerimk/schoolroster/internal/tui"
	"github.com/blerimk/schoolroster/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("schoolroster")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// attach the logger so FromContext never falls back to stderr while
	// the TUI owns the terminal
	ctx := log.WithContext(context.Background())

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database")
		}
	}()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	services := service.NewServices(store.NewRepositories(db, log), log)

	if err = services.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("error seeding default administrator")
	}

	version := buildVersion
	if version == "N/A" && cfg.App.Version != "" {
		version = cfg.App.Version
	}
	buildInfo := models.NewAppBuildInfo(version, buildDate, buildCommit)
	ui, err := tui.New(services, cfg.App.PhotoExportDir, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	if err = run(ctx, ui); err != nil {
		log.Fatal().Err(err).Msg("application run error")
	}
}

// run cycles sign-in and roster sessions until the user quits. Logging out
// of the roster returns to the sign-in screen.
func run(ctx context.Context, ui *tui.TUI) error {
	for {
		user, err := ui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}

		logout, err := ui.MainLoop(ctx, user)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
