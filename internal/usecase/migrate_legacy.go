package usecase

import (
	"context"
	"fmt"

	"github.com/quvia/centre/internal/domain"
)

// MigrateLegacyInput contains the parameters for the legacy migration.
type MigrateLegacyInput struct{}

// MigrateLegacyOutput contains the result of the legacy migration.
type MigrateLegacyOutput struct {
	Migrated  bool // True when legacy files were found and converted
	ItemCount int  // Items written into the unified daily file
	DoneCount int  // Done-log entries carried over
}

// MigrateLegacy converts the old three-file layout (today.md, tomorrow.md,
// done.log.md) into a unified daily file. The migration runs at most once:
// after a successful conversion the legacy task files are removed.
type MigrateLegacy struct {
	legacy domain.LegacyStore
	days   domain.DayStore
	clock  domain.Clock
	logger domain.Logger
}

// NewMigrateLegacy creates a new MigrateLegacy use case.
func NewMigrateLegacy(
	legacy domain.LegacyStore,
	days domain.DayStore,
	clock domain.Clock,
	logger domain.Logger,
) *MigrateLegacy {
	return &MigrateLegacy{
		legacy: legacy,
		days:   days,
		clock:  clock,
		logger: logger,
	}
}

// Execute runs the migration if legacy files are present.
func (uc *MigrateLegacy) Execute(ctx context.Context, in MigrateLegacyInput) (*MigrateLegacyOutput, error) {
	if !uc.legacy.HasLegacyFiles() {
		return &MigrateLegacyOutput{}, nil
	}

	now := uc.clock.Now()
	day, err := uc.legacy.LoadLegacy(now)
	if err != nil {
		return nil, fmt.Errorf("load legacy files: %w", err)
	}

	today := domain.FormatDate(now)
	if err := uc.days.Save(today, day); err != nil {
		return nil, fmt.Errorf("save migrated day: %w", err)
	}

	if err := uc.legacy.RemoveLegacy(); err != nil {
		return nil, fmt.Errorf("remove legacy files: %w", err)
	}

	uc.logger.Info("migration", fmt.Sprintf("migrated %d active and %d done items into %s",
		len(day.Active), len(day.Done), today))

	return &MigrateLegacyOutput{
		Migrated:  true,
		ItemCount: len(day.Active),
		DoneCount: len(day.Done),
	}, nil
}
