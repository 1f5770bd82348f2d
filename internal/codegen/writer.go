package codegen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// rename is swapped in tests to simulate a failing filesystem.
var rename = os.Rename

// WriteFiles stages every file next to its target and only then renames
// them into place. If staging fails, previous outputs are left untouched and
// no temporary file remains. If a rename fails, targets already replaced are
// restored from their previous content. Files whose content is unchanged are
// skipped. It returns the paths that were rewritten.
func WriteFiles(root string, files []File) ([]string, error) {
	type staged struct {
		tmp    string
		target string
		rel    string
		// prev is the replaced content, nil when the target did not exist.
		prev []byte
	}
	var pending []staged

	cleanup := func() {
		for _, s := range pending {
			os.Remove(s.tmp)
		}
	}

	for _, f := range files {
		target := filepath.Join(root, filepath.FromSlash(f.Path))

		existing, err := os.ReadFile(target)
		if err == nil && bytes.Equal(existing, f.Content) {
			continue
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			cleanup()
			return nil, buildErr(IoError, "reading "+target, err)
		}

		tmp, err := stage(target, f.Content)
		if err != nil {
			cleanup()
			return nil, err
		}
		pending = append(pending, staged{tmp: tmp, target: target, rel: f.Path, prev: existing})
	}

	var written []string
	for i, s := range pending {
		if err := rename(s.tmp, s.target); err != nil {
			for _, rest := range pending[i:] {
				os.Remove(rest.tmp)
			}
			for _, done := range pending[:i] {
				restore(done.target, done.prev)
			}
			return nil, buildErr(IoError, "replacing "+s.target, err)
		}
		written = append(written, s.rel)
	}
	return written, nil
}

// restore puts back a target's previous content, or removes it if it did
// not exist before. Failures are not recoverable at this point.
func restore(target string, prev []byte) {
	if prev == nil {
		os.Remove(target)
		return
	}
	tmp, err := stage(target, prev)
	if err != nil {
		return
	}
	if err := rename(tmp, target); err != nil {
		os.Remove(tmp)
	}
}

func stage(target string, content []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", buildErr(IoError, "creating "+dir, err)
	}

	// The leading dot keeps a stray temp file out of the go tool's view.
	f, err := os.CreateTemp(dir, ".connectorgen-*.tmp")
	if err != nil {
		return "", buildErr(IoError, "staging "+target, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", buildErr(IoError, "staging "+target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", buildErr(IoError, "staging "+target, err)
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		os.Remove(f.Name())
		return "", buildErr(IoError, "staging "+target, err)
	}
	return f.Name(), nil
}

// Stale returns the paths whose on-disk content differs from the plan.
func Stale(root string, files []File) ([]string, error) {
	var stale []string
	for _, f := range files {
		target := filepath.Join(root, filepath.FromSlash(f.Path))
		existing, err := os.ReadFile(target)
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, f.Path)
			continue
		}
		if err != nil {
			return nil, buildErr(IoError, "reading "+target, err)
		}
		if !bytes.Equal(existing, f.Content) {
			stale = append(stale, f.Path)
		}
	}
	return stale, nil
}
