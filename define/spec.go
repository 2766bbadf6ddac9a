package define

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/argot/cmdline"
)

var (
	ErrDecode            = cmdline.NewError("cannot decode definition")
	ErrInvalidDefinition = cmdline.NewError("invalid definition")
	ErrExprCompile       = cmdline.NewError("cannot compile validation rule")
	ErrUnknownFormat     = cmdline.NewError("unknown definition format")

	errEmpty = errors.New("empty document")
)

// Spec is the root command of a definition document.
type Spec struct {
	Command `yaml:",inline"`
}

// Command describes a command and its subtree.
type Command struct {
	Name                   string    `toml:"name"                   yaml:"name"`
	Aliases                []string  `toml:"aliases"                yaml:"aliases"`
	Description            string    `toml:"description"            yaml:"description"`
	Hidden                 bool      `toml:"hidden"                 yaml:"hidden"`
	Handler                bool      `toml:"handler"                yaml:"handler"`
	TreatUnmatchedAsErrors *bool     `toml:"treatUnmatchedAsErrors" yaml:"treatUnmatchedAsErrors"`
	Argument               *Argument `toml:"argument"               yaml:"argument"`
	Options                []Option  `toml:"options"                yaml:"options"`
	Commands               []Command `toml:"commands"               yaml:"commands"`
	Validate               []Rule    `toml:"validate"               yaml:"validate"`
}

// Option describes an option.
type Option struct {
	Aliases     []string  `toml:"aliases"     yaml:"aliases"`
	Description string    `toml:"description" yaml:"description"`
	Required    bool      `toml:"required"    yaml:"required"`
	Hidden      bool      `toml:"hidden"      yaml:"hidden"`
	Argument    *Argument `toml:"argument"    yaml:"argument"`
	Validate    []Rule    `toml:"validate"    yaml:"validate"`
}

// Argument describes the argument of a command or option.
//
// Arity is either a preset name or range accepted by [cmdline.ParseArity].
// Min and Max override it; a Min without Max is unbounded.
type Argument struct {
	Name               string   `toml:"name"               yaml:"name"`
	Description        string   `toml:"description"        yaml:"description"`
	Arity              string   `toml:"arity"              yaml:"arity"`
	Min                *int     `toml:"min"                yaml:"min"`
	Max                *int     `toml:"max"                yaml:"max"`
	Default            any      `toml:"default"            yaml:"default"`
	Allowed            []string `toml:"allowed"            yaml:"allowed"`
	LegalFilePathsOnly bool     `toml:"legalFilePathsOnly" yaml:"legalFilePathsOnly"`
	ExistingFilesOnly  bool     `toml:"existingFilesOnly"  yaml:"existingFilesOnly"`
	Suggestions        []string `toml:"suggestions"        yaml:"suggestions"`
	Validate           []Rule   `toml:"validate"           yaml:"validate"`
}

// Rule is a validation expression and the message reported when it
// evaluates to false.
type Rule struct {
	Expr    string `toml:"expr"    yaml:"expr"`
	Message string `toml:"message" yaml:"message"`
}

// Format identifies the encoding of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Load reads the definition at path and builds its command tree.
func Load(path string) (*cmdline.Command, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, ErrUnknownFormat.With(slog.String("path", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	spec, err := Decode(f, format)
	if err != nil {
		return nil, err
	}

	return Build(spec)
}

// Decode reads a definition document. Unknown keys are errors in both
// formats.
func Decode(r io.Reader, format Format) (*Spec, error) {
	var spec Spec

	switch format {
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, ErrDecode.Wrap(err)
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil, ErrDecode.Wrap(errEmpty)
		}

		if err := yaml.UnmarshalWithOptions(data, &spec, yaml.Strict()); err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("format", string(format)))
		}

	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&spec)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("format", string(format)))
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}

			return nil, ErrDecode.
				Wrap(fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))).
				With(slog.String("format", string(format)))
		}

	default:
		return nil, ErrUnknownFormat.With(slog.String("format", string(format)))
	}

	return &spec, nil
}
