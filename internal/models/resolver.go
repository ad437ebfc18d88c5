// Package models resolves vosk model identifiers to directories and discovers
// the models installed in the configured search directories.
package models

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forPelevin/voskcap/internal/types"
)

// Auto expands to every discoverable model.
const Auto = "auto"

// DefaultSearchDirs are probed in order for bare model names.
var DefaultSearchDirs = []string{"./models", "/usr/share/vosk/models"}

type Resolver struct {
	SearchDirs []string
}

type Model struct {
	Name string
	Path string
	// SizeBytes is zero until MeasureSizes runs.
	SizeBytes int64
}

func NewResolver(searchDirs []string) Resolver {
	if len(searchDirs) == 0 {
		searchDirs = DefaultSearchDirs
	}
	return Resolver{SearchDirs: append([]string(nil), searchDirs...)}
}

// Resolve maps an identifier to an absolute model directory. An absolute
// identifier must exist as is; anything else is looked up in the search
// directories in order.
func (r Resolver) Resolve(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty model identifier", types.ErrModelNotFound)
	}
	if filepath.IsAbs(id) {
		if isDir(id) {
			return filepath.Clean(id), nil
		}
		return "", fmt.Errorf("%w: model path %s does not exist", types.ErrModelNotFound, id)
	}
	for _, dir := range r.SearchDirs {
		p := filepath.Join(dir, id)
		if !isDir(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return "", fmt.Errorf("%w: cannot resolve %q in %s", types.ErrModelNotFound, id, strings.Join(r.SearchDirs, ", "))
}

// Discover lists model directories, search directory order first and names
// sorted within each directory. A name found in an earlier directory shadows
// later ones, matching Resolve. Sizes are left unset.
func (r Resolver) Discover() ([]Model, error) {
	var out []Model
	seen := map[string]struct{}{}
	for _, dir := range r.SearchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("list models in %s: %w", dir, err)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			p := filepath.Join(dir, e.Name())
			if strings.HasPrefix(e.Name(), ".") || !isDir(p) {
				continue
			}
			if _, ok := seen[e.Name()]; ok {
				continue
			}
			seen[e.Name()] = struct{}{}
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, err
			}
			out = append(out, Model{Name: e.Name(), Path: abs})
		}
	}
	return out, nil
}

// Expand resolves every identifier, replacing Auto with all discovered
// models. Duplicates keep their first position.
func (r Resolver) Expand(ids []string) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, id := range ids {
		if strings.EqualFold(strings.TrimSpace(id), Auto) {
			found, err := r.Discover()
			if err != nil {
				return nil, err
			}
			for _, m := range found {
				add(m.Path)
			}
			continue
		}
		p, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		add(p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no models found in %s", types.ErrModelNotFound, strings.Join(r.SearchDirs, ", "))
	}
	return out, nil
}

// MeasureSizes fills SizeBytes by walking every model directory.
func MeasureSizes(ms []Model) {
	for i := range ms {
		ms[i].SizeBytes = dirSize(ms[i].Path)
	}
}

func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

func dirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}
