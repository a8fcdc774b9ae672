// Package config loads optional purgeshift defaults from a YAML, TOML or CUE
// file.
//
// All formats are checked against the same closed CUE schema, so unknown
// keys and out-of-range values are rejected before any G-code is touched:
//
//	mask:    "01111"   # five binary digits with at least one 1
//	seed:    42        # fixed slot selection
//	pause:   false     # skip "Press Enter to continue..."
//	shift_w: false     # also shift W tokens on probe lines
//	format:  text      # text | json
//	verbose: false
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Config holds defaults read from a config file. Pointer fields are nil when
// the key was absent so callers can tell "unset" from the zero value.
type Config struct {
	Mask    string  `json:"mask,omitempty"`
	Seed    *uint64 `json:"seed,omitempty"`
	Pause   *bool   `json:"pause,omitempty"`
	ShiftW  *bool   `json:"shift_w,omitempty"`
	Format  string  `json:"format,omitempty"`
	Verbose *bool   `json:"verbose,omitempty"`
}

// Error reports an invalid config file.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error     // underlying read error, if any
}

func (e *Error) Error() string {
	if e.Pos.IsValid() && e.Pos.Line() > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads and validates the config file at path. The format is chosen by
// extension: .cue, .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: fmt.Sprintf("failed to read config file: %v", err), Err: err}
	}

	ctx := cuecontext.New()

	var v cue.Value
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		v = ctx.CompileBytes(data, cue.Filename(path))
	case ".yaml", ".yml":
		raw := map[string]interface{}{}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&raw); err != nil && err != io.EOF {
			return nil, &Error{Path: path, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
		}
		v = ctx.Encode(raw)
	case ".toml":
		raw := map[string]interface{}{}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &Error{Path: path, Message: fmt.Sprintf("failed to parse TOML: %v", err)}
		}
		v = ctx.Encode(raw)
	default:
		return nil, &Error{Path: path, Message: fmt.Sprintf("unsupported config extension %q (want .cue, .toml, .yaml or .yml)", ext)}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(path, err)
	}

	return decode(ctx, path, v)
}

// decode unifies v with the #Config schema and decodes the result.
func decode(ctx *cue.Context, path string, v cue.Value) (*Config, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(path, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, formatCUEError(path, err)
	}
	return &cfg, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Path: path, Message: err.Error()}
	}

	first := errs[0]
	cfgErr := &Error{Path: path, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		cfgErr.Pos = positions[0]
	}
	return cfgErr
}
