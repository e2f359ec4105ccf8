package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Build metadata, set with -ldflags "-X github.com/bobmcallan/folio/internal/common.Version=..."
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

func GetVersion() string { return Version }
func GetBuild() string { return Build }
func GetGitCommit() string { return GitCommit }

// GetFullVersion returns a one-line version string for the startup log.
func GetFullVersion() string {
	return fmt.Sprintf("folio %s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile reads a .version file next to the binary. Values there
// only fill in fields that ldflags left at their defaults.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	loadVersionFile(filepath.Join(filepath.Dir(exe), ".version"))
}

// loadVersionFile accepts "key: value" or "key=value" lines with keys
// version, build and commit.
func loadVersionFile(path string) {
	values, err := godotenv.Read(path)
	if err != nil {
		return
	}
	fill := func(dst *string, def, key string) {
		if v := values[key]; v != "" && *dst == def {
			*dst = v
		}
	}
	fill(&Version, "dev", "version")
	fill(&Build, "unknown", "build")
	fill(&GitCommit, "unknown", "commit")
}
