package levels

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// StringSource is a level held in memory.
type StringSource struct {
	Label string
	Text  string
}

// Name returns the label.
func (s StringSource) Name() string { return s.Label }

// Open returns a reader over the level text.
func (s StringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.Text)), nil
}

// List is a sequence of arbitrary sources.
type List []core.Source

// Len returns the number of sources.
func (l List) Len() int { return len(l) }

// Source returns source i.
func (l List) Source(i int) core.Source { return l[i] }

// Strings builds a sequence from level texts named "level-1", "level-2"...
func Strings(texts ...string) List {
	l := make(List, len(texts))
	for i, text := range texts {
		l[i] = StringSource{Label: fmt.Sprintf("level-%d", i+1), Text: text}
	}
	return l
}
