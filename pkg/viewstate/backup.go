package viewstate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andri/podgrid/internal/logger"
)

// BackupOptions controls layout file backup behavior.
type BackupOptions struct {
	Enabled bool
	Now     func() time.Time
}

// BackupFile creates a timestamped copy of an existing layout file if present.
func BackupFile(path string, opts BackupOptions) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("layout file path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat layout file %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("layout file path is a directory: %s", path)
	}

	if !opts.Enabled {
		return "", nil
	}

	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	timestamp := clock().UTC().Format(time.RFC3339)
	backupPath := fmt.Sprintf("%s.backup.%s.json", path, timestamp)

	if err := copyFile(backupPath, path, info.Mode().Perm()); err != nil {
		return "", err
	}

	logger.Debug("backed up layout file", "path", path, "backup_path", backupPath)
	return backupPath, nil
}

// WriteFileWithBackup backs up an existing layout file (if enabled) before writing.
func WriteFileWithBackup(path string, vs ViewState, backup BackupOptions) (string, error) {
	backupPath, err := BackupFile(path, backup)
	if err != nil {
		return "", err
	}
	if err := WriteFile(path, vs); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

func copyFile(dst, src string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open layout file %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create backup file %s: %w", dst, err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy layout file to backup %s: %w", dst, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync backup file %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close backup file %s: %w", dst, err)
	}

	return nil
}
