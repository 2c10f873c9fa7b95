package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/oakwood-commons/clipbar/pkg/settings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"

	// Layout pass keys.
	SourceKey      = "source"
	ToolbarKey     = "toolbar"
	OrientationKey = "orientation"
	ExtentKey      = "extent"
	EntriesKey     = "entries"
	ClippedKey     = "clipped"
	OverflowKey    = "overflow"
)

var (
	once sync.Once

	// globalZapLogger backs Sync; globalLogrLogger is what callers use.
	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger

	defaultNoopLogger logr.Logger = logr.Discard()
)

// Get initializes the global loggers on first use and returns the logr view.
// logLevel is a zapcore level: -1 for debug, 0 for info. Later calls ignore
// logLevel and return the same instance.
func Get(logLevel int8) *logr.Logger {
	once.Do(func() {
		globalZapLogger = newZap(zapcore.Lock(os.Stderr), logLevel)
		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// New builds a standalone JSON logger writing to w. It does not touch the
// global logger and is meant for embedding hosts and tests.
func New(w io.Writer, logLevel int8) *logr.Logger {
	l := zapr.NewLogger(newZap(zapcore.AddSync(w), logLevel))
	return &l
}

func newZap(sink zapcore.WriteSyncer, logLevel int8) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		sink,
		zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
	).With([]zapcore.Field{
		zap.String(CommitKey, settings.VersionInformation.Commit),
		zap.String(VersionKey, settings.VersionInformation.BuildVersion),
		zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
		zap.String(GoVersionKey, goVersion),
	})

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
}

// WithLogger returns ctx carrying log. The original context is returned when
// it already carries the same logger.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger carried by ctx, falling back to the global
// logger and then to a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
			return log
		}
	}
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
	}
}

// isIgnorableSyncError reports the errors Sync returns for pipes and TTYs.
// Windows consoles wrap ERROR_INVALID_HANDLE in *os.PathError, hence the
// string match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetGlobalLogger returns the global logger or a no-op logger before Get.
func GetGlobalLogger() *logr.Logger {
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a new logger carrying keysAndValues.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
