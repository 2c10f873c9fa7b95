package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
)

func withoutGlobal(t *testing.T) {
	t.Helper()
	orig := globalLogrLogger
	globalLogrLogger = nil
	t.Cleanup(func() { globalLogrLogger = orig })
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("no log line written")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	return entry
}

func TestGetIsShared(t *testing.T) {
	first := Get(-1)
	if first == nil {
		t.Fatal("Get returned nil")
	}
	if second := Get(0); second != first {
		t.Error("Get should return the logger built by the first call")
	}
	if GetGlobalLogger() != first {
		t.Error("GetGlobalLogger should return the logger built by Get")
	}
}

func TestNoopFallbacks(t *testing.T) {
	withoutGlobal(t)

	if got := GetGlobalLogger(); got != &defaultNoopLogger {
		t.Error("GetGlobalLogger without a global logger should be the no-op logger")
	}
	if got := FromContext(context.Background()); got != &defaultNoopLogger {
		t.Error("FromContext without any logger should be the no-op logger")
	}
	//nolint:staticcheck // nil context is the case under test
	if got := FromContext(nil); got != &defaultNoopLogger {
		t.Error("FromContext(nil) should be the no-op logger")
	}
	if GetNoopLogger() != &defaultNoopLogger {
		t.Error("GetNoopLogger should be the shared no-op logger")
	}
	GetNoopLogger().Info("layout pass", ToolbarKey, "main")
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	pass := New(&buf, 0)
	ctx := WithLogger(context.Background(), pass)

	if FromContext(ctx) != pass {
		t.Fatal("FromContext should return the logger stored by WithLogger")
	}
	if WithLogger(ctx, pass) != ctx {
		t.Error("storing the same logger again should keep the context")
	}

	other := logr.Discard()
	if FromContext(WithLogger(ctx, &other)) != &other {
		t.Error("a different logger should replace the stored one")
	}
}

func TestFromContextPrefersGlobalOverNoop(t *testing.T) {
	global := Get(0)
	if got := FromContext(context.Background()); got != global {
		t.Error("FromContext without a context logger should return the global logger")
	}
}

func TestNewWritesLayoutFields(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(&buf, -1)
	lgr.V(1).Info("layout pass", ToolbarKey, "main", ExtentKey, 80, ClippedKey, 2, OverflowKey, true)

	entry := decodeLine(t, &buf)
	if entry[MessageKey] != "layout pass" {
		t.Errorf("message = %v", entry[MessageKey])
	}
	if entry[ToolbarKey] != "main" {
		t.Errorf("toolbar = %v", entry[ToolbarKey])
	}
	if entry[ExtentKey] != float64(80) {
		t.Errorf("extent = %v", entry[ExtentKey])
	}
	if entry[OverflowKey] != true {
		t.Errorf("overflow = %v", entry[OverflowKey])
	}
	for _, key := range []string{VersionKey, CommitKey, GoVersionKey, TimeStampKey} {
		if _, ok := entry[key]; !ok {
			t.Errorf("%s field missing", key)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(&buf, 0)
	lgr.V(1).Info("layout pass")
	if buf.Len() != 0 {
		t.Errorf("debug entry written at info level: %s", buf.String())
	}
	lgr.Info("toolbar loaded")
	if !strings.Contains(buf.String(), "toolbar loaded") {
		t.Error("info entry missing")
	}
}

func TestWithValues(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, 0)

	scoped := WithValues(base, SubCommandKey, "themes")
	if scoped == base {
		t.Fatal("WithValues should return a new logger")
	}
	scoped.Info("listing")
	if entry := decodeLine(t, &buf); entry[SubCommandKey] != "themes" {
		t.Errorf("sub_command = %v", entry[SubCommandKey])
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), SubCommandKey) {
		t.Error("WithValues should not change the original logger")
	}

	defer func() {
		if recover() == nil {
			t.Error("WithValues on a nil logger should panic")
		}
	}()
	_ = WithValues(nil, "key", "value")
}

func TestSyncWithoutGlobal(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	Sync()
}

func TestIsIgnorableSyncError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}, true},
		{syscall.ENOTTY, true},
		{errors.New("sync /dev/stderr: The handle is invalid."), true},
		{errors.New("disk full"), false},
	}
	for _, tt := range tests {
		if got := isIgnorableSyncError(tt.err); got != tt.want {
			t.Errorf("isIgnorableSyncError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
