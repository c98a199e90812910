// Package backup keeps rotating copies of file-backed stores and moves
// whole snapshots in and out as JSON or YAML documents.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/logger"
)

const (
	MaxBackups       = constants.MaxBackups
	BackupDirName    = constants.BackupDirName
	BackupFilePrefix = constants.BackupFilePrefix

	stampMinute = "20060102-1504"
	stampSecond = "20060102-150405"
)

// ErrUnsupported is returned for locations that are not a local file.
var ErrUnsupported = errors.New("backups are only supported for sqlite and json files")

// BackupInfo describes one backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates and restores backups of one data file.
type Manager struct {
	dataPath  string
	backupDir string
	suffix    string
	now       func() time.Time
}

// NewManager returns a manager for the sqlite or json file at dataPath.
func NewManager(dataPath string) (*Manager, error) {
	suffix := strings.ToLower(filepath.Ext(dataPath))
	if dataPath == "" || dataPath == ":memory:" || strings.Contains(dataPath, "://") {
		return nil, ErrUnsupported
	}
	if suffix != ".json" {
		suffix = constants.BackupFileSuffix
	}
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), BackupDirName),
		suffix:    suffix,
		now:       time.Now,
	}, nil
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) isJSON() bool {
	return m.suffix == ".json"
}

// CreateBackup writes a new backup and prunes the oldest beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) createBackup() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	dest, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		if err := m.verify(m.dataPath); err != nil {
			return "", fmt.Errorf("data file appears to be corrupted: %w", err)
		}
		err = copyFile(m.dataPath, dest)
	} else {
		err = vacuumInto(m.dataPath, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.dataPath, err)
	}

	logger.Info("Created backup", "path", dest)
	return dest, nil
}

// nextBackupPath picks an unused name, adding seconds and then a counter
// when several backups land in the same minute.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	candidate := filepath.Join(m.backupDir, BackupFilePrefix+now.Format(stampMinute)+m.suffix)
	if !exists(candidate) {
		return candidate, nil
	}

	stamp := now.Format(stampSecond)
	candidate = filepath.Join(m.backupDir, BackupFilePrefix+stamp+m.suffix)
	for n := 1; exists(candidate); n++ {
		if n > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		candidate = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, stamp, n, m.suffix))
	}
	return candidate, nil
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		db.Close()
		return copyFile(src, dest)
	}
	return nil
}

// parseStamp reads the timestamp out of a backup file name, ignoring a
// trailing collision counter.
func parseStamp(name, suffix string) (time.Time, bool) {
	if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, suffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), suffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err == nil {
			stamp = parts[0] + "-" + parts[1]
		}
	}

	for _, layout := range []string{stampMinute, stampSecond} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns the backups in the backup directory, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseStamp(entry.Name(), m.suffix)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	slices.SortStableFunc(backups, func(a, b BackupInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(MaxBackups, len(backups)):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data file with backupPath. The current file,
// when present, is backed up first and that backup is not rotated away.
// It returns the path of the safety backup, or "" when none was needed.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !exists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if exists(m.dataPath) {
		var err error
		if safety, err = m.createBackup(); err != nil {
			return "", fmt.Errorf("failed to back up current data before restore: %w", err)
		}
	}

	tmp := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dataPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return safety, fmt.Errorf("failed to restore data file: %w", err)
	}

	logger.Info("Restored backup", "from", backupPath, "to", m.dataPath)
	return safety, nil
}

func (m *Manager) verify(path string) error {
	if m.isJSON() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !sonic.ConfigStd.Valid(data) {
			return errors.New("not a valid JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
