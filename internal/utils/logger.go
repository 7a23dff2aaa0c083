package utils

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// GetLogger returns the process-wide logger. Level comes from LOG_LEVEL;
// when LOG_FILE is set, output also goes through a self-healing file writer.
func GetLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()

		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}

		logLevel, err := logrus.ParseLevel(level)
		if err != nil {
			logLevel = logrus.InfoLevel
		}
		logger.SetLevel(logLevel)

		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})

		if path := os.Getenv("LOG_FILE"); path != "" {
			logger.SetOutput(io.MultiWriter(os.Stdout, newHealingFileWriter(path)))
		} else {
			logger.SetOutput(os.Stdout)
		}
	})

	return logger
}

// healingFileWriter appends to a log file and reopens it whenever the file
// was removed or truncated out from under the process (log rotation, manual
// cleanup). Reconciliation happens before every write.
type healingFileWriter struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	written int64
}

func newHealingFileWriter(path string) *healingFileWriter {
	return &healingFileWriter{path: path}
}

func (w *healingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.reconcile(); err != nil {
		return 0, err
	}

	n, err := w.file.Write(p)
	w.written += int64(n)
	return n, err
}

// reconcile reopens the file when it is missing or smaller than what this
// process has written, which indicates external modification.
func (w *healingFileWriter) reconcile() error {
	if w.file != nil {
		info, err := os.Stat(w.path)
		if err == nil && info.Size() >= w.written {
			return nil
		}
		w.file.Close()
		w.file = nil
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	w.file = f
	w.written = info.Size()
	return nil
}
