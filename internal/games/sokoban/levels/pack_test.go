package levels

import (
	"errors"
	"io"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func readSource(t *testing.T, src core.Source) string {
	t.Helper()
	rc, err := src.Open()
	if err != nil {
		t.Fatalf("open %s: %v", src.Name(), err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", src.Name(), err)
	}
	return string(data)
}

func TestLoadDirManifest(t *testing.T) {
	p, err := LoadDir("testdata/manifest")
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if p.ID != "manifest" || p.Name != "Manifest Pack" {
		t.Errorf("unexpected pack header: id=%q name=%q", p.ID, p.Name)
	}
	if p.Len() != 2 {
		t.Fatalf("expected 2 levels, got %d", p.Len())
	}

	tests := []struct {
		index int
		name  string
	}{
		{0, "Alpha"},
		{1, "b"},
	}
	for _, tt := range tests {
		if got := p.Source(tt.index).Name(); got != tt.name {
			t.Errorf("level %d: expected name %q, got %q", tt.index, tt.name, got)
		}
	}

	if got := readSource(t, p.Source(0)); got != "####\n#@.#\n####\n" {
		t.Errorf("unexpected level text %q", got)
	}
}

func TestLoadDirListSkipsMissing(t *testing.T) {
	p, err := LoadDir("testdata/listed")
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if p.ID != "listed" {
		t.Errorf("expected directory name as ID, got %q", p.ID)
	}
	if p.Len() != 2 {
		t.Fatalf("expected 2 levels (missing file skipped), got %d", p.Len())
	}
	if p.Entries[1].File != "sub/two.txt" {
		t.Errorf("expected nested path, got %q", p.Entries[1].File)
	}
	if p.Source(1).Name() != "two" {
		t.Errorf("expected name from file, got %q", p.Source(1).Name())
	}
}

func TestLoadDirNoIndex(t *testing.T) {
	_, err := LoadDir("testdata/empty")
	if !errors.Is(err, ErrNoIndex) {
		t.Fatalf("expected ErrNoIndex, got %v", err)
	}
}

func TestDiscover(t *testing.T) {
	packs, err := Discover("testdata")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(packs) != 2 {
		t.Fatalf("expected 2 packs, got %d", len(packs))
	}
	if packs[0].ID != "listed" || packs[1].ID != "manifest" {
		t.Errorf("packs not sorted by ID: %s, %s", packs[0].ID, packs[1].ID)
	}
}

func TestEmbeddedPacksParse(t *testing.T) {
	packs, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded failed: %v", err)
	}
	if len(packs) < 2 {
		t.Fatalf("expected at least 2 embedded packs, got %d", len(packs))
	}

	for _, p := range packs {
		if p.Len() == 0 {
			t.Errorf("pack %s has no levels", p.ID)
		}
		for i := 0; i < p.Len(); i++ {
			src := p.Source(i)
			rc, err := src.Open()
			if err != nil {
				t.Errorf("pack %s level %s: %v", p.ID, src.Name(), err)
				continue
			}
			_, err = core.ParseLevel(src.Name(), rc)
			rc.Close()
			if err != nil {
				t.Errorf("pack %s level %s: %v", p.ID, src.Name(), err)
			}
		}
	}
}

func TestStrings(t *testing.T) {
	l := Strings("#@#\n", "#+#\n")
	if l.Len() != 2 {
		t.Fatalf("expected 2 sources, got %d", l.Len())
	}
	if l.Source(1).Name() != "level-2" {
		t.Errorf("unexpected name %q", l.Source(1).Name())
	}
	if got := readSource(t, l.Source(0)); got != "#@#\n" {
		t.Errorf("unexpected text %q", got)
	}
}
