package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/cli"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/config"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/db"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/repository"
	"github.com/ReleasePlanner/RP-ReleasePlanner-sub002/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	rescheduleRepo := repository.NewSQLiteRescheduleRepo(database)
	typeRepo := repository.NewSQLiteRescheduleTypeRepo(database)
	referenceRepo := repository.NewSQLiteReferenceRepo(database)
	calendarRepo := repository.NewSQLiteCalendarRepo(database)
	dayRepo := repository.NewSQLiteCalendarDayRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observerSink io.Writer
	if cfg.LogUseCases {
		observerSink = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(observerSink)

	app := &cli.App{
		Plans:          service.NewPlanService(planRepo, phaseRepo, uow, observer),
		Phases:         service.NewPhaseService(phaseRepo, rescheduleRepo, uow, observer),
		Reschedules:    service.NewRescheduleService(rescheduleRepo, typeRepo),
		Calendars:      service.NewCalendarService(calendarRepo, dayRepo, uow),
		References:     service.NewReferenceService(referenceRepo),
		DefaultCountry: cfg.DefaultCountry,
	}

	// Detect interactive terminal for the board entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
