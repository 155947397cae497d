package monitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix = "settings-"
	backupSuffix = ".json"
	backupMaxAge = 30 * 24 * time.Hour
)

// RunBackupNow copies the settings file into the backup directory.
func (s *Service) RunBackupNow() (string, error) {
	if s.opts.BackupDir == "" || s.opts.SettingsPath == "" {
		return "", fmt.Errorf("backups are disabled")
	}
	return Backup(s.opts.SettingsPath, s.opts.BackupDir, time.Now())
}

// Backups lists the backup files, oldest first.
func (s *Service) Backups() ([]string, error) {
	if s.opts.BackupDir == "" {
		return []string{}, nil
	}
	return ListBackups(s.opts.BackupDir)
}

// runBackup takes a backup every day at 3am.
func (s *Service) runBackup(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
			path, err := s.RunBackupNow()
			if err != nil {
				slog.Error("monitor: backup failed", "err", err)
			} else {
				slog.Info("monitor: backup created", "file", path)
			}
		}
	}
}

// Backup writes a dated copy of src into dir and prunes copies older than 30 days.
func Backup(src, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open settings: %w", err)
	}
	defer in.Close()

	dest := filepath.Join(dir, backupPrefix+now.Format("2006-01-02")+backupSuffix)
	tmp, err := os.CreateTemp(dir, ".backup-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return "", fmt.Errorf("copy settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return "", err
	}

	pruneOldBackups(dir, now.Add(-backupMaxAge))
	return dest, nil
}

// ListBackups returns the backup files in dir sorted by name (newest last).
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, e := range entries {
		if isBackup(e) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func isBackup(e os.DirEntry) bool {
	return !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) && strings.HasSuffix(e.Name(), backupSuffix)
}

// pruneOldBackups deletes backups last modified before cutoff.
func pruneOldBackups(dir string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !isBackup(e) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				slog.Warn("monitor: failed to prune old backup", "file", path, "err", err)
			} else {
				slog.Info("monitor: pruned old backup", "file", path)
			}
		}
	}
}
