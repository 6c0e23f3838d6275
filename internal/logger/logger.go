package logger

import (
	"github.com/harrison/skydiff/internal/models"
	"github.com/harrison/skydiff/internal/reconcile"
)

// Logger receives progress and diagnostics from a skydiff run.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogPhase(name string)
	LogCommandStart(impl models.Implementation)
	LogCommandComplete(result *models.RunResult)
	LogLoaded(path string, doc *models.Document)
	LogSummary(summary reconcile.Summary)
}

// MultiLogger fans every call out to each wrapped logger in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers; nil entries are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogPhase(name string) {
	for _, l := range m.loggers {
		l.LogPhase(name)
	}
}

func (m *MultiLogger) LogCommandStart(impl models.Implementation) {
	for _, l := range m.loggers {
		l.LogCommandStart(impl)
	}
}

func (m *MultiLogger) LogCommandComplete(result *models.RunResult) {
	for _, l := range m.loggers {
		l.LogCommandComplete(result)
	}
}

func (m *MultiLogger) LogLoaded(path string, doc *models.Document) {
	for _, l := range m.loggers {
		l.LogLoaded(path, doc)
	}
}

func (m *MultiLogger) LogSummary(summary reconcile.Summary) {
	for _, l := range m.loggers {
		l.LogSummary(summary)
	}
}

// NoOpLogger discards everything. Useful in tests.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger instance
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogDebug(string) {}
func (n *NoOpLogger) LogInfo(string) {}
func (n *NoOpLogger) LogWarn(string) {}
func (n *NoOpLogger) LogError(string) {}
func (n *NoOpLogger) LogPhase(string) {}
func (n *NoOpLogger) LogCommandStart(models.Implementation) {}
func (n *NoOpLogger) LogCommandComplete(*models.RunResult) {}
func (n *NoOpLogger) LogLoaded(string, *models.Document) {}
func (n *NoOpLogger) LogSummary(reconcile.Summary) {}
