package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Sanitization constants
const (
	// ReplacementChar substitutes reserved filesystem characters
	ReplacementChar = "_"

	// FullwidthVerticalBar is the full-width form some sites use in titles
	FullwidthVerticalBar = "｜"

	// FallbackNamePrefix is used when a title sanitizes to nothing
	FallbackNamePrefix = "video_"

	// FallbackTimestampLayout gives second resolution, unique under normal call rates
	FallbackTimestampLayout = "20060102_150405"
)

// reservedReplacer maps characters that are unsafe in filenames to underscores
var reservedReplacer = strings.NewReplacer(
	"\\", ReplacementChar,
	"/", ReplacementChar,
	":", ReplacementChar,
	"*", ReplacementChar,
	"?", ReplacementChar,
	"\"", ReplacementChar,
	"<", ReplacementChar,
	">", ReplacementChar,
	"|", ReplacementChar,
)

// SanitizeFilename maps an arbitrary title to a filesystem-safe name.
// The full-width vertical bar is normalized to its ASCII form first so it
// goes through the same replacement as the reserved characters.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, FullwidthVerticalBar, "|")
	name = reservedReplacer.Replace(name)
	name = strings.Trim(name, ". ")

	if name == "" {
		return FallbackNamePrefix + time.Now().Format(FallbackTimestampLayout)
	}
	return name
}

// TruncateRunes returns at most n leading runes of s.
// Truncation must not split multi-byte characters, hence runes not bytes.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// FileExists reports whether a regular file exists at path
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetHomeDesktopDir returns the user's Desktop directory
func GetHomeDesktopDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Desktop"), nil
}
