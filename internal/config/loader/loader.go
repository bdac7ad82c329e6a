// Package loader reads and writes input binding descriptor documents.
//
// Documents are TOML, YAML or JSON and share one shape:
//
//	double_click_timing = 400
//	post_acceptance_delay = "150ms"
//
//	[bindings.Player]
//	Teleport = [ { Pulse = { JustPressed = ["Key.Space", "Gamepad.South"] } } ]
//	Sprint = [ { Continuous = { Hold = ["Key.ShiftLeft"] } } ]
//
// A document may list other documents under include; they are loaded
// first and the including document replaces their bindings.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/report"
)

// Loader errors.
var (
	// ErrUnknownFormat indicates a file extension or format name is not
	// TOML, YAML or JSON.
	ErrUnknownFormat = errors.New("unknown descriptor format")

	// ErrIncludeDepth indicates include directives nest too deeply or form
	// a cycle.
	ErrIncludeDepth = errors.New("include depth exceeded")
)

// MaxIncludeDepth bounds nested include directives.
const MaxIncludeDepth = 8

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ParseError represents a syntax error in a descriptor document.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader loads descriptor files from a FileSystem.
type Loader struct {
	fs FileSystem
}

// New creates a loader reading from fsys. A nil fsys reads the OS file
// system.
func New(fsys FileSystem) *Loader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &Loader{fs: fsys}
}

// Load reads the document at path, resolves its includes and decodes it.
// The error is non-nil only when a file cannot be read or parsed. Decode
// problems go to the report and the returned configuration omits the
// bindings that failed, so a non-nil configuration may come back alongside
// report errors. Callers must check rep.HasErrors() before applying it.
func (l *Loader) Load(path string) (*config.InputConfig, *report.Report, error) {
	rep := report.New()
	cfg, err := l.load(path, rep, MaxIncludeDepth)
	if err != nil {
		return nil, rep, err
	}
	return cfg, rep, nil
}

func (l *Loader) load(path string, rep *report.Report, depth int) (*config.InputConfig, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w at %s", ErrIncludeDepth, path)
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input config %s: %w", path, err)
	}
	doc, err := Unmarshal(path, data, format)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	delete(doc, KeyInclude)

	// Includes are lower priority than the including file.
	base := config.Empty()
	dir := filepath.Dir(path)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(dir, inc)
		}
		incCfg, err := l.load(inc, rep, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		base = base.MergeReplace(incCfg)
	}

	cfg, decodeRep := Decode(doc)
	for _, p := range decodeRep.Problems {
		if p.Path == "" {
			p.Path = path
		} else {
			p.Path = path + ": " + p.Path
		}
		rep.Add(p)
	}
	return base.MergeReplace(cfg), nil
}

func includeList(doc map[string]any) ([]string, error) {
	raw, ok := doc[KeyInclude]
	if !ok {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("include must be a string or a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("include must be a string or a list of strings, got %s", typeName(raw))
}

// File names a document and how it merges with the files before it.
type File struct {
	Path string
	Mode config.MergeMode
}

// LoadAll loads files in order and folds them. Reports of every file are
// merged. Loading stops at the first unreadable or unparsable file.
func (l *Loader) LoadAll(files ...File) (*config.InputConfig, *report.Report, error) {
	rep := report.New()
	entries := make([]config.Entry, 0, len(files))
	for _, f := range files {
		cfg, fileRep, err := l.Load(f.Path)
		rep.Merge(fileRep)
		if err != nil {
			return nil, rep, err
		}
		entries = append(entries, config.Entry{Mode: f.Mode, Config: cfg})
	}
	return config.Fold(entries...), rep, nil
}

// Save writes cfg to path in the format implied by its extension.
func Save(path string, cfg *config.InputConfig) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(cfg, format)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
