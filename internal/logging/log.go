// Package logging configures the logrus logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ytget/ytfetch/internal/platform"
)

// Log file naming
const (
	FileDateLayout = "2006-01-02"
	FileExtension  = ".log"
)

// Options selects level, format and destination of log output
type Options struct {
	Level string // logrus level name, info when empty or invalid
	JSON  bool
	Dir   string    // write to <Dir>/<date>.log when set
	Out   io.Writer // used when Dir is empty; stderr when nil
}

// Setup builds a logger from opts. The returned closer releases the log file, if any.
func Setup(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	var closer io.Closer = nopCloser{}
	switch {
	case opts.Dir != "":
		if err := platform.CreateDirectoryIfNotExists(opts.Dir); err != nil {
			return nil, nil, fmt.Errorf("log directory: %w", err)
		}
		path := filepath.Join(opts.Dir, time.Now().Format(FileDateLayout)+FileExtension)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f
	case opts.Out != nil:
		logger.SetOutput(opts.Out)
	default:
		logger.SetOutput(os.Stderr)
	}

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger, closer, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
