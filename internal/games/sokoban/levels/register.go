package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

func init() {
	packs, err := Embedded()
	if err != nil {
		panic(fmt.Sprintf("levels: %v", err))
	}
	for _, p := range packs {
		registerPack(p)
	}
}

func registerPack(p *Pack) {
	registry.Register(p.ID, func() (registry.Pack, error) {
		return p, nil
	})
}

// RegisterDir discovers the packs under root and registers those whose ID
// is still free. It returns the IDs that were skipped.
func RegisterDir(root string) (skipped []string, err error) {
	packs, err := Discover(root)
	if err != nil {
		return nil, err
	}
	for _, p := range packs {
		if registry.Exists(p.ID) {
			skipped = append(skipped, p.ID)
			continue
		}
		registerPack(p)
	}
	return skipped, nil
}
