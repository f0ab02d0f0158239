package destination

import (
	"regexp"
	"strings"
)

// DefaultCollectionTitle is used when a collection has no usable title
const DefaultCollectionTitle = "Untitled Playlist"

// MaxTitleLength caps directory names derived from titles (in runes)
const MaxTitleLength = 150

var (
	invalidChars    = regexp.MustCompile(`[<>:"/\\|?*%\x00-\x1f\x7f]`)
	trailingDots    = regexp.MustCompile(`[.\s]+$`)
	multiWhitespace = regexp.MustCompile(`\s+`)
)

// SanitizeTitle turns a collection title into a single safe path element.
// Path separators, characters invalid on common filesystems, the template
// escape character and control characters become underscores. An empty
// result, "." or ".." yield "".
func SanitizeTitle(title string) string {
	name := invalidChars.ReplaceAllString(title, "_")
	name = multiWhitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if r := []rune(name); len(r) > MaxTitleLength {
		name = strings.TrimSpace(string(r[:MaxTitleLength]))
	}

	// Windows refuses names ending with dots or spaces
	name = trailingDots.ReplaceAllString(name, "")

	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

// CollectionDirName returns the sanitized title, or the fallback title
func CollectionDirName(title string) (string, bool) {
	if name := SanitizeTitle(title); name != "" {
		return name, false
	}
	return DefaultCollectionTitle, true
}

// escapeTemplate escapes literal percent signs for the engine's template syntax
func escapeTemplate(path string) string {
	return strings.ReplaceAll(path, "%", "%%")
}
