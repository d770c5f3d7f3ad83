package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	launcherinadapter "threadsuite/internal/modules/launcher/adapter/in"
	launcheroutadapter "threadsuite/internal/modules/launcher/adapter/out"
	launcherservice "threadsuite/internal/modules/launcher/service"
	launcherusecase "threadsuite/internal/modules/launcher/usecase"
	threadinadapter "threadsuite/internal/modules/thread/adapter/in"
	threadoutadapter "threadsuite/internal/modules/thread/adapter/out"
	threadservice "threadsuite/internal/modules/thread/service"
	threadusecase "threadsuite/internal/modules/thread/usecase"
	"threadsuite/internal/platform/clock"
	"threadsuite/internal/platform/config"
	"threadsuite/internal/platform/id"
	uiapp "threadsuite/internal/ui/app"
)

type App struct {
	Config      config.Config
	LauncherCLI launcherinadapter.CLIHandler
	ThreadCLI   threadinadapter.CLIHandler
	Clock       clock.Clock
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	catalog, err := launcheroutadapter.NewConfigCatalog(cfg.Targets)
	if err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}
	journal, err := launcheroutadapter.NewSQLiteLaunchJournal(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new launch journal: %w", err)
	}
	launcherUC := launcherusecase.NewInteractor(launcherservice.NewLauncherService(
		catalog,
		launcheroutadapter.NewFSPathChecker(),
		launcheroutadapter.NewOSSpawner(),
		launcheroutadapter.NewMemoryRegistry(clk),
		journal,
		clk,
		ids,
		log.Named("launcher"),
	))

	threadStore, err := threadoutadapter.NewSQLiteThreadStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new thread store: %w", err)
	}
	threadUC := threadusecase.NewInteractor(threadservice.NewThreadService(
		clk,
		ids,
		threadoutadapter.NewFileBodySource(),
		threadStore,
		log.Named("thread"),
	))

	return &App{
		Config:      cfg,
		LauncherCLI: launcherinadapter.NewCLIHandler(launcherUC),
		ThreadCLI:   threadinadapter.NewCLIHandler(threadUC),
		Clock:       clk,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.LauncherCLI, app.ThreadCLI, app.Clock.Now)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
