package dirs

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux only")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(base, "mediagrab"); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestEnsure(t *testing.T) {
	if err := Ensure(""); err == nil {
		t.Error("Ensure(\"\") error = nil")
	}
	if err := Ensure(filepath.Join(t.TempDir(), "x", "y")); err != nil {
		t.Errorf("Ensure() error = %v", err)
	}
}
