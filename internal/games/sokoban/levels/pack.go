// Package levels provides level sequences for the Sokoban game: directory
// packs described by a pack.yaml manifest or a levels.txt list, the packs
// embedded in the binary, and in-memory levels.
// This package depends on core but core does not depend on levels.
package levels

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile describes a pack and its levels.
	ManifestFile = "pack.yaml"
	// ListFile lists level files, one path per line, when there is no
	// manifest.
	ListFile = "levels.txt"
)

// ErrNoIndex is returned for a directory with neither a manifest nor a list.
var ErrNoIndex = errors.New("no " + ManifestFile + " or " + ListFile)

// Entry is one level of a pack.
type Entry struct {
	File string
	Name string
}

// Pack is an ordered set of levels read from a file system.
type Pack struct {
	ID          string
	Name        string
	Description string
	Entries     []Entry

	fsys fs.FS
}

// YAMLManifest is the structure of pack.yaml.
type YAMLManifest struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Levels      []YAMLEntry `yaml:"levels"`
}

// YAMLEntry is a level in pack.yaml.
type YAMLEntry struct {
	File string `yaml:"file"`
	Name string `yaml:"name,omitempty"`
}

// Len returns the number of levels.
func (p *Pack) Len() int { return len(p.Entries) }

// Source returns the source of level i.
func (p *Pack) Source(i int) core.Source {
	e := p.Entries[i]
	return &fileSource{fsys: p.fsys, entry: e}
}

// Title returns the display name, falling back to the ID.
func (p *Pack) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

type fileSource struct {
	fsys  fs.FS
	entry Entry
}

func (s *fileSource) Name() string {
	if s.entry.Name != "" {
		return s.entry.Name
	}
	return strings.TrimSuffix(path.Base(s.entry.File), path.Ext(s.entry.File))
}

func (s *fileSource) Open() (io.ReadCloser, error) {
	return s.fsys.Open(s.entry.File)
}

// LoadDir reads the pack stored in dir. The directory name is the default
// pack ID.
func LoadDir(dir string) (*Pack, error) {
	return LoadFS(os.DirFS(dir), filepath.Base(dir))
}

// LoadFS reads a pack from the root of fsys. A manifest wins over a list.
func LoadFS(fsys fs.FS, id string) (*Pack, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	switch {
	case err == nil:
		return parseManifest(fsys, id, data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	data, err = fs.ReadFile(fsys, ListFile)
	switch {
	case err == nil:
		return parseList(fsys, id, data)
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("pack %s: %w", id, ErrNoIndex)
	default:
		return nil, fmt.Errorf("reading %s: %w", ListFile, err)
	}
}

func parseManifest(fsys fs.FS, id string, data []byte) (*Pack, error) {
	var m YAMLManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("yaml unmarshal %s: %w", ManifestFile, err)
	}
	if m.ID != "" {
		id = m.ID
	}
	p := &Pack{ID: id, Name: m.Name, Description: m.Description, fsys: fsys}
	for _, l := range m.Levels {
		if l.File == "" {
			continue
		}
		if _, err := fs.Stat(fsys, l.File); err != nil {
			return nil, fmt.Errorf("pack %s: level %s: %w", id, l.File, err)
		}
		p.Entries = append(p.Entries, Entry{File: l.File, Name: l.Name})
	}
	return p, nil
}

// parseList reads levels.txt. Blank lines are ignored and files that do not
// exist are skipped.
func parseList(fsys fs.FS, id string, data []byte) (*Pack, error) {
	p := &Pack{ID: id, fsys: fsys}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		file := strings.TrimSpace(scanner.Text())
		if file == "" {
			continue
		}
		if _, err := fs.Stat(fsys, file); err != nil {
			continue
		}
		p.Entries = append(p.Entries, Entry{File: file})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", ListFile, err)
	}
	return p, nil
}

// Discover loads every pack found in the immediate subdirectories of root.
// Directories without an index are skipped. Packs are sorted by ID.
func Discover(root string) ([]*Pack, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", root, err)
	}

	var packs []*Pack
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := LoadDir(filepath.Join(root, e.Name()))
		if errors.Is(err, ErrNoIndex) {
			continue
		}
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}
