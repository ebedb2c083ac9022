// Package metastore persists cross-day metadata as meta.json.
package metastore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quvia/centre/internal/domain"
	"github.com/quvia/centre/internal/infra/dailyfile"
)

// fileData is the on-disk JSON shape. Counters are stored as whole seconds
// and the mode change timestamp as an RFC3339 string.
// Fields are ordered to minimize memory padding.
type fileData struct {
	GlobalMode       string   `json:"global_mode"`
	PausedByModeIDs  []string `json:"paused_by_mode_task_ids"`
	ModeWorkingSecs  int64    `json:"mode_time_working_secs"`
	ModeBreakSecs    int64    `json:"mode_time_break_secs"`
	ModeLunchSecs    int64    `json:"mode_time_lunch_secs"`
	ModeGymSecs      int64    `json:"mode_time_gym_secs"`
	ModeDinnerSecs   int64    `json:"mode_time_dinner_secs"`
	ModePersonalSecs int64    `json:"mode_time_personal_secs"`
	ModeSleepSecs    int64    `json:"mode_time_sleep_secs"`
	LastModeChange   *string  `json:"last_mode_change_timestamp"`
}

// Store implements domain.MetaStore on a meta.json file.
type Store struct {
	path string
}

var _ domain.MetaStore = (*Store)(nil)

// New creates a store for the meta.json in dir.
func New(dir string) *Store {
	return &Store{path: domain.MetaFilePath(dir)}
}

// Load reads the metadata file. A missing file yields defaults; an unknown
// persisted mode falls back to Working.
func (s *Store) Load() (*domain.Meta, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.NewMeta(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	meta := domain.NewMeta()
	if mode, ok := domain.ParseMode(data.GlobalMode); ok {
		meta.Mode = mode
	}
	meta.PausedByMode = data.PausedByModeIDs
	meta.ModeTimes = map[domain.Mode]time.Duration{
		domain.ModeWorking:  time.Duration(data.ModeWorkingSecs) * time.Second,
		domain.ModeBreak:    time.Duration(data.ModeBreakSecs) * time.Second,
		domain.ModeLunch:    time.Duration(data.ModeLunchSecs) * time.Second,
		domain.ModeGym:      time.Duration(data.ModeGymSecs) * time.Second,
		domain.ModeDinner:   time.Duration(data.ModeDinnerSecs) * time.Second,
		domain.ModePersonal: time.Duration(data.ModePersonalSecs) * time.Second,
		domain.ModeSleep:    time.Duration(data.ModeSleepSecs) * time.Second,
	}
	if data.LastModeChange != nil {
		if ts, perr := time.Parse(time.RFC3339, *data.LastModeChange); perr == nil {
			local := ts.Local()
			meta.LastModeChange = &local
		}
	}

	return meta, nil
}

// Save atomically writes the metadata file.
func (s *Store) Save(meta *domain.Meta) error {
	data := fileData{
		GlobalMode:       string(meta.Mode),
		PausedByModeIDs:  meta.PausedByMode,
		ModeWorkingSecs:  int64(meta.ModeTimes[domain.ModeWorking].Seconds()),
		ModeBreakSecs:    int64(meta.ModeTimes[domain.ModeBreak].Seconds()),
		ModeLunchSecs:    int64(meta.ModeTimes[domain.ModeLunch].Seconds()),
		ModeGymSecs:      int64(meta.ModeTimes[domain.ModeGym].Seconds()),
		ModeDinnerSecs:   int64(meta.ModeTimes[domain.ModeDinner].Seconds()),
		ModePersonalSecs: int64(meta.ModeTimes[domain.ModePersonal].Seconds()),
		ModeSleepSecs:    int64(meta.ModeTimes[domain.ModeSleep].Seconds()),
	}
	if data.PausedByModeIDs == nil {
		data.PausedByModeIDs = []string{}
	}
	if meta.LastModeChange != nil {
		ts := meta.LastModeChange.Format(time.RFC3339)
		data.LastModeChange = &ts
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	if err := dailyfile.WriteAtomic(s.path, append(content, '\n')); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	return nil
}
