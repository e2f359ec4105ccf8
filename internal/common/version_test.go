package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadVersionFile(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = origVersion, origBuild, origCommit })

	Version, Build, GitCommit = "dev", "unknown", "abc1234"

	path := filepath.Join(t.TempDir(), ".version")
	content := "# generated by the build\nversion: 1.4.2\nbuild: 2026-10-01\ncommit: ffffff\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loadVersionFile(path)

	if Version != "1.4.2" {
		t.Errorf("Version = %q, want 1.4.2", Version)
	}
	if Build != "2026-10-01" {
		t.Errorf("Build = %q, want 2026-10-01", Build)
	}
	// ldflags value wins over the file
	if GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q, want abc1234", GitCommit)
	}
}

func TestLoadVersionFile_Missing(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })
	Version = "dev"

	loadVersionFile(filepath.Join(t.TempDir(), "absent"))

	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}
