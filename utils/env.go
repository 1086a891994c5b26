package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus-crane/pholish-mpris/shared"
)

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// DefaultStateDir resolves the directory shared with the media apps. HOME is
// used as is so the bridge follows whichever user session started it.
func DefaultStateDir() string {
	return filepath.Join(GetEnv("HOME", shared.DEFAULT_HOME), shared.STATE_DIR_RELATIVE)
}

// SplitList turns a comma separated env value into its trimmed, non-empty parts
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
