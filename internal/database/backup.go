package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hangarbook/internal/config"
)

const backupPrefix = "hangarbook_"

// BackupService periodically snapshots the SQLite file into the backup
// directory and prunes snapshots older than the retention window.
type BackupService struct {
	dbPath string
	cfg    *config.Config
	logger *zerolog.Logger
}

func NewBackupService(dbPath string, cfg *config.Config, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		dbPath: dbPath,
		cfg:    cfg,
		logger: logger,
	}
}

// Start runs the backup loop until ctx is cancelled. A snapshot is
// taken immediately, then once per configured interval.
func (s *BackupService) Start(ctx context.Context) {
	if !s.cfg.Backup.Enabled {
		s.logger.Info().Msg("backups disabled")
		return
	}

	s.logger.Info().
		Dur("interval", s.cfg.BackupInterval()).
		Str("dir", s.cfg.Backup.Path).
		Msg("backup loop started")

	ticker := time.NewTicker(s.cfg.BackupInterval())
	defer ticker.Stop()

	s.runOnce()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *BackupService) runOnce() {
	path, err := s.Snapshot()
	if err != nil {
		s.logger.Error().Err(err).Msg("backup failed")
		return
	}
	s.logger.Info().Str("path", path).Msg("backup written")

	pruned, err := s.Prune()
	if err != nil {
		s.logger.Error().Err(err).Msg("backup prune failed")
		return
	}
	if pruned > 0 {
		s.logger.Info().Int("pruned", pruned).Msg("old backups removed")
	}
}

// Snapshot copies the database file into the backup directory and
// returns the path of the new copy.
func (s *BackupService) Snapshot() (string, error) {
	if err := os.MkdirAll(s.cfg.Backup.Path, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().Format("20060102_150405") + ".db"
	dst := filepath.Join(s.cfg.Backup.Path, name)

	source, err := os.Open(s.dbPath)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer source.Close()

	target, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		return "", fmt.Errorf("copy database: %w", err)
	}
	if err := target.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

// Prune deletes snapshots older than the retention window and reports
// how many were removed. A non-positive retention keeps everything.
func (s *BackupService) Prune() (int, error) {
	if s.cfg.Backup.RetentionDays <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(s.cfg.Backup.Path)
	if err != nil {
		return 0, fmt.Errorf("read backup directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Backup.RetentionDays)
	pruned := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.cfg.Backup.Path, entry.Name())); err != nil {
				s.logger.Error().Err(err).Str("file", entry.Name()).Msg("failed to remove old backup")
				continue
			}
			pruned++
		}
	}
	return pruned, nil
}
