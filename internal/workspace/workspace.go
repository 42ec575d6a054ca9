// Package workspace provides the destinations generated files are written to:
// the project directory itself, or an in-memory preview used by dry runs and
// drift checks.
package workspace

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-udiff"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/pkg/fileutil"
)

func resolve(root, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Disk writes into the project directory.
type Disk struct {
	Root string
}

// NewDisk returns a sink rooted at root.
func NewDisk(root string) *Disk {
	return &Disk{Root: root}
}

// ReadFile reads a file relative to the root.
func (d *Disk) ReadFile(p string) ([]byte, bool, error) {
	data, found, err := fileutil.ReadOptional(resolve(d.Root, p))
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading %s", p)
	}
	return data, found, nil
}

// WriteFile atomically replaces a file relative to the root. An existing
// file keeps its permission bits.
func (d *Disk) WriteFile(p string, data []byte) error {
	full := resolve(d.Root, p)
	if err := fileutil.AtomicWriteFile(full, data, fileutil.ExistingPerm(full, fileutil.FilePerm)); err != nil {
		return errors.Wrapf(err, "writing %s", p)
	}
	return nil
}

// Change is one file a Preview would write.
type Change struct {
	// Path is the path as given to WriteFile.
	Path string

	// Old is the content on disk; empty when Created.
	Old string

	// New is the content that would be written.
	New string

	// Created is true when the file does not exist on disk.
	Created bool
}

// Modified reports whether the write would alter the file.
func (c Change) Modified() bool {
	return c.Created || c.Old != c.New
}

// Diff returns a unified diff from the current to the pending content.
func (c Change) Diff() string {
	oldLabel := "a/" + c.Path
	if c.Created {
		oldLabel = "/dev/null"
	}
	return udiff.Unified(oldLabel, "b/"+c.Path, c.Old, c.New)
}

// Preview reads through to disk but keeps every write in memory. Later
// reads see earlier writes, so tools sharing a file compose as they would
// on disk.
type Preview struct {
	Root string

	mu      sync.Mutex
	order   []string
	pending map[string]*Change
}

// NewPreview returns an empty preview over root.
func NewPreview(root string) *Preview {
	return &Preview{Root: root, pending: map[string]*Change{}}
}

func (p *Preview) ReadFile(path string) ([]byte, bool, error) {
	p.mu.Lock()
	c, ok := p.pending[path]
	p.mu.Unlock()
	if ok {
		return []byte(c.New), true, nil
	}

	data, found, err := fileutil.ReadOptional(resolve(p.Root, path))
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading %s", path)
	}
	return data, found, nil
}

func (p *Preview) WriteFile(path string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.pending[path]; ok {
		c.New = string(data)
		return nil
	}

	old, found, err := fileutil.ReadOptional(resolve(p.Root, path))
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	p.pending[path] = &Change{Path: path, Old: string(old), New: string(data), Created: !found}
	p.order = append(p.order, path)
	return nil
}

// Changes returns every recorded write sorted by path, including writes
// that leave the file unchanged.
func (p *Preview) Changes() []Change {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Change, 0, len(p.order))
	for _, path := range p.order {
		out = append(out, *p.pending[path])
	}
	slices.SortFunc(out, func(a, b Change) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// Modified returns the changes that would alter files.
func (p *Preview) Modified() []Change {
	var out []Change
	for _, c := range p.Changes() {
		if c.Modified() {
			out = append(out, c)
		}
	}
	return out
}
