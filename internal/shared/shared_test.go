package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("Writes To Provided Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain 'hello', got %q", buf.String())
		}
	})

	t.Run("Nil Writer Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected non-nil logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "artanova.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info("written to file")

	content := mustRead(t, path)
	if !strings.Contains(content, "written to file") {
		t.Errorf("expected log file to contain message, got %q", content)
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == b {
		t.Error("expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string of length 36, got %d", len(a))
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"count": 3}

	compact, err := MarshalJSON(v, false)
	if err != nil {
		t.Fatalf("compact marshal failed: %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Error("compact output should not contain newlines")
	}

	pretty, err := MarshalJSON(v, true)
	if err != nil {
		t.Fatalf("pretty marshal failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n") {
		t.Error("pretty output should be indented")
	}
}

func TestOpenBrowser(t *testing.T) {
	orig := goos
	defer func() { goos = orig }()

	goos = func() string { return "plan9" }
	if err := OpenBrowser("https://artanova.dev"); err == nil {
		t.Error("expected error for unsupported platform")
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}
