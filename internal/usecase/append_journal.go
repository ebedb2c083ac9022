package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/quvia/centre/internal/domain"
)

// AppendJournalInput carries a free-form journal entry.
type AppendJournalInput struct {
	Entry string
}

// AppendJournalOutput reports where the entry was written.
type AppendJournalOutput struct {
	Date string
}

// AppendJournal appends a timestamped entry to today's journal file.
type AppendJournal struct {
	journal domain.JournalStore
	clock   domain.Clock
	logger  domain.Logger
}

// NewAppendJournal creates a new AppendJournal use case.
func NewAppendJournal(journal domain.JournalStore, clock domain.Clock, logger domain.Logger) *AppendJournal {
	return &AppendJournal{journal: journal, clock: clock, logger: logger}
}

// Execute appends the entry under a heading for the current time.
func (uc *AppendJournal) Execute(ctx context.Context, in AppendJournalInput) (*AppendJournalOutput, error) {
	entry := strings.TrimSpace(in.Entry)
	if entry == "" {
		return nil, domain.ErrEmptyJournalEntry
	}

	now := uc.clock.Now()
	date := domain.FormatDate(now)
	if err := uc.journal.Append(date, now, entry); err != nil {
		return nil, fmt.Errorf("append journal: %w", err)
	}

	uc.logger.Info("journal", fmt.Sprintf("appended entry for %s", date))
	return &AppendJournalOutput{Date: date}, nil
}
