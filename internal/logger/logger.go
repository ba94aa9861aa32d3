package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger/LogEntry/Fields re-export the underlying types so callers do not
// import logrus directly.
type Logger = logrus.Logger
type LogEntry = logrus.Entry
type Fields = logrus.Fields

// DefaultLogPath is where the CLI writes its log file. The TUI owns stdout,
// so everything goes to the file.
const DefaultLogPath = "logs/scenyx-cli.log"

var rootLogger = logrus.StandardLogger()

// Configure sets the global format and caller reporting.
func Configure() {
	root().SetReportCaller(true)
	root().SetFormatter(PlainFormatter{})
}

// SetupFile redirects the global logger to the given path (DefaultLogPath when
// empty). The returned closer owns the underlying file.
func SetupFile(logPath string) (io.Closer, string, error) {
	if logPath == "" {
		logPath = DefaultLogPath
	}
	f, resolved, err := openLogFile(logPath)
	if err != nil {
		return nil, "", err
	}
	root().SetOutput(f)
	return f, resolved, nil
}

// Root returns the shared global logger.
func Root() *Logger {
	return root()
}

// SetRoot overrides the global logger; nil resets to the standard logger.
func SetRoot(l *Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	rootLogger = l
}

// Entry returns a field-less entry on the global logger.
func Entry() *LogEntry {
	return logrus.NewEntry(root())
}

// Named returns an entry carrying a component field.
func Named(component string) *LogEntry {
	entry := Entry()
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func Info(args ...any) {
	root().Info(args...)
}

func Infof(format string, args ...any) {
	root().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	root().Warnf(format, args...)
}

func Fatalf(format string, args ...any) {
	root().Fatalf(format, args...)
}

func root() *logrus.Logger {
	if rootLogger == nil {
		rootLogger = logrus.StandardLogger()
	}
	return rootLogger
}

// PlainFormatter renders: caller [timestamp] [LEVEL] [component] message fields.
type PlainFormatter struct{}

// Format implements logrus.Formatter.
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	timestamp := entry.Time.UTC().Format(time.RFC3339Nano)
	level := strings.ToUpper(entry.Level.String())
	component := ""
	if val, ok := entry.Data["component"].(string); ok && val != "" {
		component = val
	}
	caller := formatCaller(entry)
	fields := formatFields(entry.Data)

	parts := make([]string, 0, 6)
	if caller != "" {
		parts = append(parts, caller)
	}
	parts = append(parts, fmt.Sprintf("[%s]", timestamp))
	parts = append(parts, fmt.Sprintf("[%s]", level))
	if component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	parts = append(parts, entry.Message)
	if fields != "" {
		parts = append(parts, fields)
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func formatCaller(entry *logrus.Entry) string {
	if entry == nil {
		return ""
	}
	if entry.HasCaller() && entry.Caller != nil {
		return fmt.Sprintf("%s:%d", shortenFilePath(entry.Caller.File), entry.Caller.Line)
	}
	if caller, ok := entry.Data["caller"].(string); ok && caller != "" {
		return caller
	}
	return ""
}

func formatFields(fields logrus.Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "component" || k == "caller" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

func shortenFilePath(file string) string {
	file = filepath.ToSlash(file)
	if idx := strings.Index(file, "/internal/"); idx != -1 {
		return file[idx+1:]
	}
	if idx := strings.Index(file, "/cmd/"); idx != -1 {
		return file[idx+1:]
	}
	if idx := strings.Index(file, "/scenyx-cli/"); idx != -1 {
		return file[idx+len("/scenyx-cli/"):]
	}
	return filepath.Base(file)
}

func openLogFile(logPath string) (*os.File, string, error) {
	if logPath == "" {
		logPath = DefaultLogPath
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, "", err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", err
	}
	return f, logPath, nil
}
