package cmdline

import (
	"os"
	"runtime"
	"strings"
)

// FileSystem answers the file system queries made by the built-in value
// filters. Any failure to answer is reported as false by Exists.
type FileSystem interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// InvalidPathChars returns the characters never legal in a path.
	InvalidPathChars() string
}

// OSFileSystem is the [FileSystem] of the running process.
type OSFileSystem struct{}

// Exists reports whether os.Stat succeeds for path.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// InvalidPathChars returns NUL on unix, and the reserved characters plus all
// control characters on windows.
func (OSFileSystem) InvalidPathChars() string {
	if runtime.GOOS == "windows" {
		return windowsInvalidPathChars
	}

	return "\x00"
}

var windowsInvalidPathChars = func() string {
	var sb strings.Builder

	sb.WriteString(`"<>|`)

	for c := range rune(32) {
		sb.WriteRune(c)
	}

	return sb.String()
}()

type filterAction int

const (
	keepValue filterAction = iota
	unmatchValue
	dropValue
)

// valueFilter decides the fate of one raw value before arity resolution.
type valueFilter func(fs FileSystem, value string) filterAction

func rejectIllegalPaths(fs FileSystem, value string) filterAction {
	if strings.ContainsAny(value, fs.InvalidPathChars()) {
		return unmatchValue
	}

	return keepValue
}

func dropMissingFiles(fs FileSystem, value string) filterAction {
	if !fs.Exists(value) {
		return dropValue
	}

	return keepValue
}
