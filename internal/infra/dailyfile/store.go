package dailyfile

import (
	"fmt"
	"os"
	"time"

	"github.com/quvia/centre/internal/domain"
)

// Store persists daily files and journals under a single data directory.
type Store struct {
	dir    string
	clock  domain.Clock
	logger domain.Logger
}

var _ domain.DayStore = (*Store)(nil)
var _ domain.JournalStore = (*Store)(nil)

// NewStore creates a store rooted at dir.
func NewStore(dir string, clock domain.Clock, logger domain.Logger) *Store {
	return &Store{dir: dir, clock: clock, logger: logger}
}

// Exists reports whether a daily file exists for the date.
func (s *Store) Exists(date string) bool {
	_, err := os.Stat(domain.DailyFilePath(s.dir, date))
	return err == nil
}

// Load reads and parses the daily file for the date. Unreadable records are
// logged and skipped.
func (s *Store) Load(date string) (*domain.DayFile, error) {
	path := domain.DailyFilePath(s.dir, date)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read daily file: %w", err)
	}

	day := Parse(string(content), s.clock.Now(), func(line int, perr error) {
		s.logger.Warn("store", fmt.Sprintf("skipping record at %s:%d: %v", path, line, perr))
	})
	return day, nil
}

// Save serializes and atomically writes the daily file for the date.
func (s *Store) Save(date string, day *domain.DayFile) error {
	content := Serialize(day, date, s.clock.Now())
	if err := WriteAtomic(domain.DailyFilePath(s.dir, date), []byte(content)); err != nil {
		return fmt.Errorf("save daily file: %w", err)
	}
	return nil
}

// Append adds a timestamped entry to the date's journal file, creating it
// with a header on first write.
func (s *Store) Append(date string, now time.Time, entry string) error {
	path := domain.JournalFilePath(s.dir, date)

	var buf []byte
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		buf = existing
	case os.IsNotExist(err):
		buf = []byte(fmt.Sprintf("# Journal %s\n", date))
	default:
		return fmt.Errorf("read journal: %w", err)
	}

	buf = append(buf, fmt.Sprintf("\n## %s\n\n%s\n", now.Format("15:04"), entry)...)

	if err := WriteAtomic(path, buf); err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// Read returns the raw contents of the date's journal file, or empty when
// no journal exists yet.
func (s *Store) Read(date string) (string, error) {
	content, err := os.ReadFile(domain.JournalFilePath(s.dir, date))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read journal: %w", err)
	}
	return string(content), nil
}
