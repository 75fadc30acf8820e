package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-render/internal/config"
)

// useFile installs a file-only logger for the test and restores the
// previous one afterwards.
func useFile(t *testing.T, opts Options) string {
	t.Helper()
	if opts.File.Path == "" {
		opts.File = Rotation{Path: filepath.Join(t.TempDir(), "test.log"), MaxSizeMB: 10}
	}
	l, err := New(opts)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	t.Cleanup(Replace(l))
	return opts.File.Path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	useFile(t, Options{
		Level: "debug",
		File: Rotation{
			Path:       filepath.Join(dir, "test.log"),
			MaxSizeMB:  1,
			MaxBackups: 2,
			MaxAgeDays: 1,
		},
	})

	line := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("frame %d: %s", i, line)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}
	rotated := 0
	for _, e := range entries {
		name := e.Name()
		if name == "test.log" || !strings.HasPrefix(name, "test") {
			continue
		}
		rotated++
		// lumberjack names backups test-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s lacks a timestamp", name)
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files among %d entries", len(entries))
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			path := useFile(t, Options{Level: tt.level})

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			out := readLog(t, path)
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("expected %s in log output", want)
				}
			}
			for _, unwanted := range tt.excluded {
				if strings.Contains(out, unwanted) {
					t.Errorf("unexpected %s in log output", unwanted)
				}
			}
		})
	}
}

func TestUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestJSONFormat(t *testing.T) {
	path := useFile(t, Options{Level: "info", JSON: true})

	Info("frame rendered", zap.Int("draws", 12))

	line := strings.TrimSpace(readLog(t, path))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "frame rendered" || entry["draws"] != float64(12) || entry["level"] != "INFO" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
		want Options
	}{
		{
			name: "console only",
			cfg:  config.LoggingConfig{Level: "warn", Format: "console"},
			want: Options{Level: "warn", Console: true},
		},
		{
			name: "json with file",
			cfg:  config.LoggingConfig{Level: "debug", Format: "json", LogFile: "/tmp/render.log"},
			want: Options{Level: "debug", JSON: true, Console: true, File: DefaultRotation("/tmp/render.log")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromConfig(tt.cfg); got != tt.want {
				t.Errorf("FromConfig = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultRotation(t *testing.T) {
	got := DefaultRotation("/tmp/test.log")
	want := Rotation{Path: "/tmp/test.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if got != want {
		t.Errorf("DefaultRotation = %+v, want %+v", got, want)
	}
}

func TestLoggingBeforeInit(t *testing.T) {
	t.Cleanup(Replace(zap.NewNop()))

	// Must not panic without Init.
	Debug("debug message")
	Warn("warn message", zap.String("scene", "none"))
	Sugar.Infof("frame %d", 1)
	With(zap.String("component", "renderer")).Info("child logger")
}

func TestReplaceRestores(t *testing.T) {
	before := Log
	restore := Replace(zap.NewExample())
	if Log == before {
		t.Fatal("Replace did not install the logger")
	}
	restore()
	if Log != before {
		t.Error("restore did not bring back the previous logger")
	}
}

func TestWithFields(t *testing.T) {
	path := useFile(t, Options{Level: "debug"})

	With(zap.String("component", "renderer")).Info("frame rendered")

	if out := readLog(t, path); !strings.Contains(out, "renderer") {
		t.Errorf("expected component field in log output, got %q", out)
	}
}
