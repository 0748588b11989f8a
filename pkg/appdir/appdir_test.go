package appdir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "logs.db")
	if got := Path(abs); got != abs {
		t.Errorf("absolute path rewritten: %s", got)
	}
	if got := Path("logs.db"); got != filepath.Join(AppDir(), "logs.db") {
		t.Errorf("relative path not joined onto AppDir: %s", got)
	}
}

func TestEnsure(t *testing.T) {
	base := t.TempDir()
	if err := ensure(filepath.Join(base, "a", "b")); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	err := ensure(filepath.Join(file, "sub"))
	if err == nil || !strings.Contains(err.Error(), "appdir: create") {
		t.Fatalf("expected create error under a regular file, got %v", err)
	}
}
