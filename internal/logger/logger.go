package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before InitLogger runs.
var Log = newLogger(os.Stderr)

var (
	mu sync.Mutex
	// logFile is the file the current Log tees into, if any.
	logFile *os.File
)

// CustomFormatter writes "[TIME] [LEVL] [file:line] msg key=value ...".
type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		fileLine = fmt.Sprintf("%s:%d", fileName, entry.Caller.Line)
	}

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	timeStr := entry.Time.Format("2006-01-02 15:04:05")

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] [%s] %s", timeStr, level, fileLine, entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// InitLogger sets the level and, when filePath is set, tees output into
// that file. A file opened by an earlier call is closed once the new logger
// is in place.
func InitLogger(levelStr string, filePath string) error {
	l := newLogger(os.Stderr)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	var file *os.File
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		l.SetOutput(io.MultiWriter(os.Stderr, file))
	}

	mu.Lock()
	prev := logFile
	Log, logFile = l, file
	mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return nil
}

// Close releases the log file, if any, and sends output back to stderr.
func Close() error {
	mu.Lock()
	prev := logFile
	Log, logFile = newLogger(os.Stderr), nil
	mu.Unlock()

	if prev == nil {
		return nil
	}
	return prev.Close()
}

// Discard returns a logger that drops everything, for tests and library
// callers that do not want output.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&CustomFormatter{})
	l.SetOutput(w)
	return l
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
