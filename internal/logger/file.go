package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harrison/skydiff/internal/models"
	"github.com/harrison/skydiff/internal/reconcile"
)

// FileLogger writes a structured JSON log of one run to
// <logDir>/run-YYYYMMDD-HHMMSS.log and points <logDir>/latest.log at it.
type FileLogger struct {
	logger  *zap.Logger
	runFile string
}

// NewFileLogger creates the log directory if needed and opens a new run log.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel(normalizeLogLevel(logLevel)))
	config.OutputPaths = []string{runFile}
	config.ErrorOutputPaths = []string{runFile}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil

	zl, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}
	if runID != "" {
		zl = zl.With(zap.String("run_id", runID))
	}

	latest := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(latest); err == nil {
		os.Remove(latest)
	}
	// Symlinks are best effort; some filesystems refuse them.
	_ = os.Symlink(filepath.Base(runFile), latest)

	return &FileLogger{logger: zl, runFile: runFile}, nil
}

// zapLevel maps our level names onto zap's; zap has no trace level.
func zapLevel(level string) zapcore.Level {
	switch level {
	case "trace", "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) LogDebug(message string) {
	fl.logger.Debug(message)
}

func (fl *FileLogger) LogInfo(message string) {
	fl.logger.Info(message)
}

func (fl *FileLogger) LogWarn(message string) {
	fl.logger.Warn(message)
}

func (fl *FileLogger) LogError(message string) {
	fl.logger.Error(message)
}

func (fl *FileLogger) LogPhase(name string) {
	fl.logger.Info("phase", zap.String("name", name))
}

func (fl *FileLogger) LogCommandStart(impl models.Implementation) {
	fl.logger.Info("command started",
		zap.String("implementation", impl.Name),
		zap.String("command", impl.Command),
		zap.String("output", impl.Output))
}

func (fl *FileLogger) LogCommandComplete(result *models.RunResult) {
	fl.logger.Info("command finished",
		zap.String("implementation", result.Implementation),
		zap.String("output", result.OutputPath),
		zap.Duration("duration", result.Duration),
		zap.Float64("seconds", result.Seconds()))
}

func (fl *FileLogger) LogLoaded(path string, doc *models.Document) {
	fields := []zap.Field{zap.String("path", path)}
	for _, c := range models.DefaultCategories {
		fields = append(fields, zap.Int(string(c), len(doc.Items(c))))
	}
	fl.logger.Debug("result loaded", fields...)
}

func (fl *FileLogger) LogSummary(summary reconcile.Summary) {
	fl.logger.Info("reconciled",
		zap.Int("reference_count", summary.Total.CountA),
		zap.Int("candidate_count", summary.Total.CountB),
		zap.Int("false_positives", summary.Total.FalsePositives),
		zap.Int("false_negatives", summary.Total.FalseNegatives),
		zap.String("discrepancy", summary.Total.Discrepancy()))
}

// Close flushes buffered entries.
func (fl *FileLogger) Close() error {
	if err := fl.logger.Sync(); err != nil {
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	return nil
}
