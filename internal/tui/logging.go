package tui

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ajramos/mailbrief/internal/config"
)

// LogPrefix and LogFlags are shared by every mailbrief logger
const (
	LogPrefix = "[mailbrief] "
	LogFlags  = log.LstdFlags | log.Lmicroseconds
)

// OpenLogFile opens the log file at path, or ~/.config/mailbrief/mailbrief.log
// when path is empty. Callers own the returned file.
func OpenLogFile(path string) (*log.Logger, *os.File, error) {
	if path == "" {
		dir := config.DefaultLogDir()
		if dir == "" {
			return nil, nil, os.ErrNotExist
		}
		path = filepath.Join(dir, "mailbrief.log")
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, LogPrefix, LogFlags), f, nil
}

// initLogger opens the file logger unless one was injected
func (a *App) initLogger() {
	if a.logger != nil {
		return
	}
	if logger, f, err := OpenLogFile(a.Config.LogFile); err == nil {
		a.logger = logger
		a.logFile = f
	}
}

// closeLogger closes the log file if we opened it
func (a *App) closeLogger() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
