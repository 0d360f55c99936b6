package ringlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogAliasesMatchPlainMethods(t *testing.T) {
	dir := t.TempDir()
	l, err := NewBuilder().WithDir(dir).WithProgramName("x").WithLevel(TRACE).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer l.Close()

	l.LogWarn("aliased-warn")
	l.Normal("aliased-normal")
	l.Flush()

	entries, _ := os.ReadDir(dir)
	var content string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".log") {
			b, _ := os.ReadFile(filepath.Join(dir, e.Name()))
			content = string(b)
		}
	}
	if !strings.Contains(content, "aliased-warn") || !strings.Contains(content, "[WARN]") {
		t.Fatal("LogWarn should behave exactly like Warn")
	}
	if !strings.Contains(content, "aliased-normal") || !strings.Contains(content, "[INFO]") {
		t.Fatal("Normal should behave exactly like Info")
	}
}
