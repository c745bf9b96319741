package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer func() { Logger = nil }()

	if _, err := os.Stat(filepath.Join(configDir, "logs")); os.IsNotExist(err) {
		t.Error("log directory was not created")
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
	if want := filepath.Join(configDir, "logs", "boardprep.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", Logger.GetLevel())
	}

	Warn("written to file")
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer func() { Logger = nil }()

	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}
}

func TestUseCapturesLevels(t *testing.T) {
	var buf bytes.Buffer
	Use(&buf, log.InfoLevel, false)
	defer func() { Logger = nil }()

	Debug("hidden")
	Info("shown", "subject", "math")
	Error("failure", "err", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "subject=math") {
		t.Errorf("info message missing from output: %q", out)
	}
	if !strings.Contains(out, "failure") {
		t.Errorf("error message missing from output: %q", out)
	}
	if !strings.Contains(out, "boardprep") {
		t.Errorf("prefix missing from output: %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
