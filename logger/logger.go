// Package logger holds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before InitLogger is called.
var Log = logrus.New()

// logFile is the file opened by the last InitLogger call, if any.
var logFile *os.File

// InitLogger configures the global logger. Unknown levels fall back to info.
// When filePath is set, output goes to both stderr and the file.
func InitLogger(levelStr string, filePath string) error {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	writers := []io.Writer{os.Stderr}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = file
		writers = append(writers, file)
	}
	Log.SetOutput(io.MultiWriter(writers...))

	return nil
}

// Quiet stops writing to stderr. Output continues to the log file when
// InitLogger opened one and is discarded otherwise. The terminal interface
// uses it so log lines do not corrupt the screen.
func Quiet() {
	if logFile != nil {
		Log.SetOutput(logFile)
		return
	}
	Log.SetOutput(io.Discard)
}

// Discard silences the global logger.
func Discard() {
	Log.SetOutput(io.Discard)
}
