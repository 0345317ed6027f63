package daemon

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logrus logger the pipeline logs through. Daemon
// drivers pass logFile=true to also append to logs/meetsync.log under
// the memory root, matching where the activity logs live.
func NewLogger(memoryRoot string, logFile bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if logFile {
		path := filepath.Join(memoryRoot, "logs", "meetsync.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644); err == nil {
				log.SetOutput(io.MultiWriter(os.Stdout, f))
			}
		}
	}

	return log
}
