// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockDayStore is an in-memory test double for domain.DayStore.
// Fields are ordered to minimize memory padding.
type MockDayStore struct {
	Days    map[string]*domain.DayFile
	LoadErr error
	SaveErr error
	Saves   []string
}

// NewMockDayStore creates a new MockDayStore with an initialized map.
func NewMockDayStore() *MockDayStore {
	return &MockDayStore{Days: make(map[string]*domain.DayFile)}
}

// Exists reports whether a day file is present.
func (m *MockDayStore) Exists(date string) bool {
	_, ok := m.Days[date]
	return ok
}

// Load returns the stored day file.
func (m *MockDayStore) Load(date string) (*domain.DayFile, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	day, ok := m.Days[date]
	if !ok {
		return &domain.DayFile{}, nil
	}
	return day, nil
}

// Save stores a day file and records the saved date.
func (m *MockDayStore) Save(date string, day *domain.DayFile) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Days[date] = day
	m.Saves = append(m.Saves, date)
	return nil
}

// MockMetaStore is an in-memory test double for domain.MetaStore.
type MockMetaStore struct {
	Meta    *domain.Meta
	LoadErr error
	SaveErr error
	Saved   bool
}

// Load returns the stored metadata, defaulting to a fresh Meta.
func (m *MockMetaStore) Load() (*domain.Meta, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Meta == nil {
		m.Meta = domain.NewMeta()
	}
	return m.Meta, nil
}

// Save stores the metadata.
func (m *MockMetaStore) Save(meta *domain.Meta) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Meta = meta
	m.Saved = true
	return nil
}

// MockJournalStore is an in-memory test double for domain.JournalStore.
type MockJournalStore struct {
	Entries   map[string][]string
	AppendErr error
}

// NewMockJournalStore creates a new MockJournalStore with an initialized map.
func NewMockJournalStore() *MockJournalStore {
	return &MockJournalStore{Entries: make(map[string][]string)}
}

// Append records an entry under the given date.
func (m *MockJournalStore) Append(date string, now time.Time, entry string) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Entries[date] = append(m.Entries[date], entry)
	return nil
}

// Read returns all entries for the date joined by newlines.
func (m *MockJournalStore) Read(date string) (string, error) {
	return strings.Join(m.Entries[date], "\n"), nil
}

// MockLegacyStore is a test double for domain.LegacyStore.
type MockLegacyStore struct {
	Day       *domain.DayFile
	LoadErr   error
	RemoveErr error
	HasFiles  bool
	Removed   bool
}

// HasLegacyFiles reports whether legacy files are configured.
func (m *MockLegacyStore) HasLegacyFiles() bool {
	return m.HasFiles
}

// LoadLegacy returns the configured day file.
func (m *MockLegacyStore) LoadLegacy(_ time.Time) (*domain.DayFile, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Day == nil {
		return &domain.DayFile{}, nil
	}
	return m.Day, nil
}

// RemoveLegacy marks the legacy files as removed.
func (m *MockLegacyStore) RemoveLegacy() error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.Removed = true
	return nil
}

// MockReportWriter is a test double for domain.ReportWriter.
type MockReportWriter struct {
	Report    string
	Err       error
	Generated []string
}

// Generate records the requested date and returns the configured report.
func (m *MockReportWriter) Generate(date string) (string, error) {
	m.Generated = append(m.Generated, date)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Report, nil
}

// MockNotifier is a test double for domain.Notifier.
type MockNotifier struct {
	DoneTitles     []string
	EstimateTitles []string
}

// TaskDone records the completed title.
func (m *MockNotifier) TaskDone(title string) {
	m.DoneTitles = append(m.DoneTitles, title)
}

// EstimateReached records the over-estimate title.
func (m *MockNotifier) EstimateReached(title string) {
	m.EstimateTitles = append(m.EstimateTitles, title)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config, defaulting to domain defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// MockLogger records log lines per level for assertions.
type MockLogger struct {
	Lines []string
}

func (m *MockLogger) append(level, category, message string) {
	m.Lines = append(m.Lines, fmt.Sprintf("[%s] [%s] %s", level, category, message))
}

// Debug records a debug line.
func (m *MockLogger) Debug(category, message string) { m.append("DEBUG", category, message) }

// Info records an info line.
func (m *MockLogger) Info(category, message string) { m.append("INFO", category, message) }

// Warn records a warn line.
func (m *MockLogger) Warn(category, message string) { m.append("WARN", category, message) }

// Error records an error line.
func (m *MockLogger) Error(category, message string) { m.append("ERROR", category, message) }

var (
	_ domain.Clock        = (*MockClock)(nil)
	_ domain.DayStore     = (*MockDayStore)(nil)
	_ domain.MetaStore    = (*MockMetaStore)(nil)
	_ domain.JournalStore = (*MockJournalStore)(nil)
	_ domain.LegacyStore  = (*MockLegacyStore)(nil)
	_ domain.ReportWriter = (*MockReportWriter)(nil)
	_ domain.Notifier     = (*MockNotifier)(nil)
	_ domain.ConfigLoader = (*MockConfigLoader)(nil)
	_ domain.Logger       = (*MockLogger)(nil)
)
