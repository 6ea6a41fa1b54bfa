package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	logFilePerm = 0o600
	logDirPerm  = 0o755
	bytesPerMB  = 1024 * 1024
)

// RotatorConfig configures a LogRotator.
type RotatorConfig struct {
	Dir        string
	Name       string // e.g. "docking.log"
	MaxSize    int64  // bytes; <= 0 never rotates
	MaxBackups int    // 0 keeps every backup
	MaxAge     time.Duration
	Compress   bool
}

// RotatorConfigFromValues builds a config from megabytes and days.
func RotatorConfigFromValues(dir, name string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) RotatorConfig {
	return RotatorConfig{
		Dir:        dir,
		Name:       name,
		MaxSize:    int64(maxSizeMB) * bytesPerMB,
		MaxBackups: maxBackups,
		MaxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		Compress:   compress,
	}
}

// LogRotator is an io.Writer appending to Dir/Name that moves the file aside
// once it would grow past MaxSize.
type LogRotator struct {
	mu          sync.Mutex
	cfg         RotatorConfig
	currentFile *os.File
	currentSize int64
	now         func() time.Time
}

var _ io.WriteCloser = (*LogRotator)(nil)

// NewLogRotator opens, creating if needed, the log file.
func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("log file name is required")
	}
	if err := os.MkdirAll(cfg.Dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	r := &LogRotator{cfg: cfg, now: time.Now}
	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the active log file.
func (r *LogRotator) Path() string {
	return filepath.Join(r.cfg.Dir, r.cfg.Name)
}

func (r *LogRotator) openCurrentFile() error {
	logPath := r.Path()

	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.cfg.MaxSize > 0 && r.currentSize > 0 && r.currentSize+int64(len(p)) > r.cfg.MaxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close current log file: %v\n", err)
	}
	r.currentFile = nil

	backupPath := filepath.Join(r.cfg.Dir, r.cfg.Name+"."+r.now().Format("2006-01-02-15-04-05.000"))
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.cfg.Compress {
		if err := compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()

	r.currentSize = 0
	return r.openCurrentFile()
}

func compressFile(filePath string) (err error) {
	inputFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = inputFile.Close() }()

	outputFile, err := os.OpenFile(filePath+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := outputFile.Close(); err == nil {
			err = cerr
		}
	}()

	gzipWriter := gzip.NewWriter(outputFile)
	if _, err := io.Copy(gzipWriter, inputFile); err != nil {
		return err
	}
	return gzipWriter.Close()
}

// cleanup removes backups older than MaxAge, then the oldest beyond MaxBackups.
func (r *LogRotator) cleanup() {
	files, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return
	}

	var backupFiles []os.FileInfo
	now := r.now()

	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, r.cfg.Name+".") {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if r.cfg.MaxAge > 0 && now.Sub(info.ModTime()) > r.cfg.MaxAge {
			if err := os.Remove(filepath.Join(r.cfg.Dir, name)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to remove old log file: %v\n", err)
			}
			continue
		}

		backupFiles = append(backupFiles, info)
	}

	if r.cfg.MaxBackups <= 0 || len(backupFiles) <= r.cfg.MaxBackups {
		return
	}
	sort.Slice(backupFiles, func(i, j int) bool {
		return backupFiles[i].Name() < backupFiles[j].Name()
	})
	for _, info := range backupFiles[:len(backupFiles)-r.cfg.MaxBackups] {
		if err := os.Remove(filepath.Join(r.cfg.Dir, info.Name())); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove excess backup file: %v\n", err)
		}
	}
}

func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
