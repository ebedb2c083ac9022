package dailyfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quvia/centre/internal/domain"
)

// DataDirName is the directory holding all persisted state, local or global.
const DataDirName = ".centre"

// FindDir locates the data directory: the nearest .centre found walking up
// from the working directory, else ~/.centre. The returned directory may
// not exist yet.
func FindDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}

	if dir, ok := findLocalDir(cwd); ok {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", domain.ErrNoHomeDir
	}
	return filepath.Join(home, DataDirName), nil
}

func findLocalDir(start string) (string, bool) {
	current := start
	for {
		candidate := filepath.Join(current, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// EnsureDir resolves the data directory and creates it if missing.
func EnsureDir() (string, error) {
	dir, err := FindDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// InitLocalDir creates a .centre directory in the working directory.
// Fails if one already exists there.
func InitLocalDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}

	dir := filepath.Join(cwd, DataDirName)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrAlreadyInitialized, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// WriteAtomic writes content to path via a temp file in the same directory,
// synced to stable storage before the rename, so readers never observe a
// partial file and a crash cannot leave an empty one behind the rename.
func WriteAtomic(path string, content []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
