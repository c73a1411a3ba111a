package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed packs
var packsFS embed.FS

// Embedded returns the packs built into the binary, sorted by ID.
func Embedded() ([]*Pack, error) {
	root, err := fs.Sub(packsFS, "packs")
	if err != nil {
		return nil, err
	}
	dirs, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("reading embedded packs: %w", err)
	}

	var packs []*Pack
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		sub, err := fs.Sub(root, d.Name())
		if err != nil {
			return nil, err
		}
		p, err := LoadFS(sub, d.Name())
		if err != nil {
			return nil, fmt.Errorf("embedded pack %s: %w", d.Name(), err)
		}
		packs = append(packs, p)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}
