package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const backupStampLayout = "2006-01-02_15-04-05"

// RunDailyBackup copies srcDir into a timestamped folder under backupDir
// every day at hour:min and drops backups older than retention. It returns
// when ctx is done.
func RunDailyBackup(ctx context.Context, srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := nextRun(now, hour, min)
		slog.Info("next data backup scheduled", "at", next.Format("2006-01-02 15:04:05"))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		dest, err := BackupOnce(srcDir, backupDir, time.Now())
		if err != nil {
			slog.Error("data backup failed", "error", err)
		} else {
			slog.Info("data backed up", "dest", dest)
		}
		CleanupOldBackups(backupDir, retention, time.Now())
	}
}

func nextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// BackupOnce copies srcDir to backupDir/<timestamp> and returns that path.
func BackupOnce(srcDir, backupDir string, at time.Time) (string, error) {
	dest := filepath.Join(backupDir, at.Format(backupStampLayout))
	if err := copyDir(srcDir, dest); err != nil {
		return "", fmt.Errorf("backup %s: %w", srcDir, err)
	}
	return dest, nil
}

// CleanupOldBackups removes backup folders last modified before now-retention.
func CleanupOldBackups(backupDir string, retention time.Duration, now time.Time) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		slog.Error("read backup dir", "dir", backupDir, "error", err)
		return
	}

	cutoff := now.Add(-retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(backupDir, entry.Name())
		info, err := os.Stat(folder)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folder); err != nil {
				slog.Error("remove old backup", "dir", folder, "error", err)
			} else {
				slog.Info("removed old backup", "dir", folder)
			}
		}
	}
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, destPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
