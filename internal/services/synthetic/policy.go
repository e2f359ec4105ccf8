package synthetic

import (
	"fmt"
	"strings"
)

// Mode selects when synthetic data may replace provider data.
type Mode string

const (
	// ModeAuto calls providers and falls back to synthetic data on failure
	ModeAuto Mode = "auto"
	// ModeLive never synthesizes; provider failures surface to the caller
	ModeLive Mode = "live"
	// ModeSynthetic never calls providers
	ModeSynthetic Mode = "synthetic"
)

// ParseMode validates a fallback mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeLive:
		return ModeLive, nil
	case ModeSynthetic:
		return ModeSynthetic, nil
	}
	return "", fmt.Errorf("unknown fallback mode %q (want auto, live or synthetic)", s)
}

// Policy answers whether live and synthetic sources may be used.
type Policy struct {
	Mode Mode
}

// AllowLive reports whether providers may be called.
func (p Policy) AllowLive() bool {
	return p.Mode != ModeSynthetic
}

// AllowSynthetic reports whether synthetic data may be returned.
func (p Policy) AllowSynthetic() bool {
	return p.Mode != ModeLive
}
