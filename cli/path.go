package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/argot/cli/cmd"
	"github.com/ardnew/argot/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// baseDefinitions is the name of the configuration subdirectory searched for
// definition files.
const baseDefinitions = "definitions"

// definitionExts are tried in order when a definition name has no match as
// given.
var definitionExts = []string{".yaml", ".yml", ".toml"}

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// By default, basePrefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with cmd
//   - "^\.+" (dot-prefixed names): remove the dot prefix
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name, // dlv default output
			regexp.MustCompile(`^\.+`):             "",       // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".config")
			} else {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, basePrefix())
	},
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".cache")
			} else {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, basePrefix())
	},
)

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	// Create base config directory
	err := os.MkdirAll(configDir(), defaultDirMode)
	if err != nil {
		return err
	}

	// Create base cache directory
	err = os.MkdirAll(cacheDir(), defaultDirMode)
	if err != nil {
		return err
	}

	return nil
}

// searchPathEnv returns the name of the environment variable listing
// directories searched for definition files, such as ARGOT_PATH.
func searchPathEnv() string {
	return strings.ToUpper(basePrefix()) + "_PATH"
}

// searchPath returns the directories searched for definition files: those
// listed in [searchPathEnv] followed by the definitions directory in the
// configuration directory.
func searchPath() []string {
	list := mung.Make(
		mung.WithSubjectItems(configPath(baseDefinitions)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(filepath.SplitList(os.Getenv(searchPathEnv()))...),
	).String()

	dirs := slices.DeleteFunc(filepath.SplitList(list),
		func(s string) bool { return strings.TrimSpace(s) == "" })

	return slices.Compact(dirs)
}

// findDefinition returns the path of the definition file identified by name.
//
// A name that refers to a regular file is used as is. Otherwise, unless name
// is absolute, each directory in dirs is tried in order with name itself and
// then name with each of [definitionExts] appended. An empty name returns an
// empty path, leaving the commands to report that no definition was given.
func findDefinition(name string, dirs []string) (string, error) {
	if name == "" {
		return "", nil
	}

	candidates := []string{name}

	if !filepath.IsAbs(name) {
		for _, dir := range dirs {
			base := filepath.Join(dir, name)
			candidates = append(candidates, base)

			for _, ext := range definitionExts {
				candidates = append(candidates, base+ext)
			}
		}
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", cmd.ErrFindDefinition.With(
		slog.String("name", name),
		slog.Any("search", dirs),
	)
}
