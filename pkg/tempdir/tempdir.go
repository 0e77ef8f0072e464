// Package tempdir provides a self-cleaning temporary directory fixture with
// content assertions for filesystem-facing tests.
package tempdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	fixtures "github.com/goliatone/go-fixtures"
)

// Option configures a TempDirectory.
type Option func(*TempDirectory)

// WithIgnore excludes entries whose base name matches any of the glob
// patterns from listings and checks. Useful for editor droppings and VCS
// metadata.
func WithIgnore(patterns ...string) Option {
	return func(d *TempDirectory) {
		d.ignore = append(d.ignore, patterns...)
	}
}

// TempDirectory owns one temporary directory for the duration of a test.
type TempDirectory struct {
	path   string
	ignore []string
}

// New creates the backing directory. Callers are responsible for Cleanup,
// typically via defer or t.Cleanup.
func New(opts ...Option) (*TempDirectory, error) {
	path, err := os.MkdirTemp("", "fixtures-")
	if err != nil {
		return nil, fmt.Errorf("tempdir: create: %w", err)
	}
	d := &TempDirectory{path: path}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Path returns the absolute path of the directory.
func (d *TempDirectory) Path() string {
	return d.path
}

// Join resolves rel inside the directory.
func (d *TempDirectory) Join(rel ...string) string {
	return filepath.Join(append([]string{d.path}, rel...)...)
}

// Write stores data at rel, creating parent directories as needed, and
// returns the absolute path written.
func (d *TempDirectory) Write(rel string, data []byte) (string, error) {
	path := d.Join(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("tempdir: write %q: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("tempdir: write %q: %w", rel, err)
	}
	return path, nil
}

// Read returns the contents of the file at rel.
func (d *TempDirectory) Read(rel string) ([]byte, error) {
	data, err := os.ReadFile(d.Join(rel))
	if err != nil {
		return nil, fmt.Errorf("tempdir: read %q: %w", rel, err)
	}
	return data, nil
}

// List returns the sorted entry names directly under rel. Directories carry
// a trailing separator so the listing distinguishes them from files.
func (d *TempDirectory) List(rel string) ([]string, error) {
	entries, err := os.ReadDir(d.Join(rel))
	if err != nil {
		return nil, fmt.Errorf("tempdir: list %q: %w", rel, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if d.ignored(name) {
			continue
		}
		if entry.IsDir() {
			name += string(filepath.Separator)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Check asserts that the directory's top-level listing matches exactly the
// expected names.
func (d *TempDirectory) Check(expected ...string) error {
	return d.CheckDir(".", expected...)
}

// CheckDir asserts the listing of the subdirectory rel.
func (d *TempDirectory) CheckDir(rel string, expected ...string) error {
	actual, err := d.List(rel)
	if err != nil {
		return err
	}
	want := append([]string{}, expected...)
	sort.Strings(want)
	if len(want) == 0 {
		want = []string{}
	}
	return fixtures.Compare(want, actual)
}

// Cleanup removes the directory and everything under it.
func (d *TempDirectory) Cleanup() error {
	if d.path == "" {
		return nil
	}
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("tempdir: cleanup: %w", err)
	}
	d.path = ""
	return nil
}

func (d *TempDirectory) ignored(name string) bool {
	for _, pattern := range d.ignore {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
