// Package app provides the session aggregate and the dependency injection
// container for the application.
package app

import (
	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/infra/config"
	"github.com/quvia/centre/internal/infra/dailyfile"
	"github.com/quvia/centre/internal/infra/logging"
	"github.com/quvia/centre/internal/infra/metastore"
	"github.com/quvia/centre/internal/infra/notify"
	"github.com/quvia/centre/internal/report"
	"github.com/quvia/centre/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Days         domain.DayStore
	Journal      domain.JournalStore
	Meta         domain.MetaStore
	Legacy       domain.LegacyStore
	Reports      domain.ReportWriter
	Notifier     domain.Notifier
	ConfigLoader domain.ConfigLoader
	Clock        domain.Clock
	Logger       *logging.Logger
	Config       *domain.Config
	DataDir      string
}

// New creates a Container rooted at the resolved data directory: the
// nearest .centre found walking up from the working directory, falling back
// to ~/.centre.
func New() (*Container, error) {
	dataDir, err := dailyfile.EnsureDir()
	if err != nil {
		return nil, err
	}

	configLoader := config.NewLoader(dataDir)
	cfg, err := configLoader.Load()
	if err != nil {
		cfg = domain.NewDefaultConfig()
	}

	logger := logging.New(dataDir, logging.ParseLevel(cfg.Log.Level))
	clock := domain.RealClock{}
	store := dailyfile.NewStore(dataDir, clock, logger)
	meta := metastore.New(dataDir)

	return &Container{
		Days:         store,
		Journal:      store,
		Meta:         meta,
		Legacy:       dailyfile.NewLegacy(dataDir, logger),
		Reports:      report.NewGenerator(dataDir, store, meta, clock),
		Notifier:     notify.NewDesktop(logger),
		ConfigLoader: configLoader,
		Clock:        clock,
		Logger:       logger,
		Config:       cfg,
		DataDir:      dataDir,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

// UseCase factory methods

// LoadDayUseCase returns a new LoadDay use case.
func (c *Container) LoadDayUseCase() *usecase.LoadDay {
	return usecase.NewLoadDay(c.Days, c.Meta, c.Reports, c.Clock, c.Logger)
}

// MigrateLegacyUseCase returns a new MigrateLegacy use case.
func (c *Container) MigrateLegacyUseCase() *usecase.MigrateLegacy {
	return usecase.NewMigrateLegacy(c.Legacy, c.Days, c.Clock, c.Logger)
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger)
}

// StartTaskUseCase returns a new StartTask use case.
func (c *Container) StartTaskUseCase() *usecase.StartTask {
	return usecase.NewStartTask(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger)
}

// PauseTaskUseCase returns a new PauseTask use case.
func (c *Container) PauseTaskUseCase() *usecase.PauseTask {
	return usecase.NewPauseTask(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger, c.Notifier)
}

// ArchiveTaskUseCase returns a new ArchiveTask use case.
func (c *Container) ArchiveTaskUseCase() *usecase.ArchiveTask {
	return usecase.NewArchiveTask(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger)
}

// AdjustEstimateUseCase returns a new AdjustEstimate use case.
func (c *Container) AdjustEstimateUseCase() *usecase.AdjustEstimate {
	return usecase.NewAdjustEstimate(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger, c.ConfigLoader)
}

// PostponeTaskUseCase returns a new PostponeTask use case.
func (c *Container) PostponeTaskUseCase() *usecase.PostponeTask {
	return usecase.NewPostponeTask(c.LoadDayUseCase(), c.Days, c.Clock, c.Logger)
}

// SetModeUseCase returns a new SetMode use case.
func (c *Container) SetModeUseCase() *usecase.SetMode {
	return usecase.NewSetMode(c.LoadDayUseCase(), c.Days, c.Meta, c.Clock, c.Logger)
}

// AppendJournalUseCase returns a new AppendJournal use case.
func (c *Container) AppendJournalUseCase() *usecase.AppendJournal {
	return usecase.NewAppendJournal(c.Journal, c.Clock, c.Logger)
}

// GenerateReportUseCase returns a new GenerateReport use case.
func (c *Container) GenerateReportUseCase() *usecase.GenerateReport {
	return usecase.NewGenerateReport(c.Reports, c.Clock, c.Logger)
}
