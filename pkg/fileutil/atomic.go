// Package fileutil provides file system utilities including atomic write operations.
package fileutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mush/internal/errors"
)

// DirPerm is the permission used for directories created on behalf of a write.
const DirPerm os.FileMode = 0o755

// FilePerm is the default permission for generated files.
const FilePerm os.FileMode = 0o644

// ExistingPerm returns the permission bits of the file at path, or fallback
// when it does not exist. Rewrites use it so a user's chmod survives.
func ExistingPerm(path string, fallback os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fallback
	}
	return info.Mode().Perm()
}

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// Interrupted writes leave the original file intact. Parent directories are
// created when missing.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".mush-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	committed = true

	return nil
}

// MarshalJSON encodes v with two-space indentation, without HTML escaping
// (URLs keep their slashes and ampersands) and with a trailing newline.
// Map keys are emitted in sorted order.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return buf.Bytes(), nil
}

// AtomicWriteJSON writes v as indented JSON to path atomically with 0644
// permissions.
func AtomicWriteJSON(path string, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, FilePerm)
}

// MarshalYAML encodes v as YAML with two-space indentation.
func MarshalYAML(v any) (data []byte, err error) {
	// yaml.v3 panics on unmarshalable types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "marshaling YAML")
	}
	return buf.Bytes(), nil
}

// AtomicWriteYAML writes v as YAML to path atomically. New files get 0644;
// existing files keep their permissions.
func AtomicWriteYAML(path string, v any) error {
	data, err := MarshalYAML(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, ExistingPerm(path, FilePerm))
}
