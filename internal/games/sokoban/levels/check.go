package levels

import (
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Report is the result of parsing one level of a sequence.
type Report struct {
	Index    int
	Name     string
	Width    int
	Height   int
	Boxes    int
	Targets  int
	Warnings []string
	Err      error
}

// OK reports whether the level parsed.
func (r Report) OK() bool { return r.Err == nil }

// Check parses every level of seq and reports what it found. Parse errors
// do not stop the check.
func Check(seq core.Sequence, opts ...core.ParseOption) []Report {
	reports := make([]Report, seq.Len())
	for i := range reports {
		reports[i] = checkOne(i, seq.Source(i), opts)
	}
	return reports
}

func checkOne(i int, src core.Source, opts []core.ParseOption) Report {
	r := Report{Index: i, Name: src.Name()}

	rc, err := src.Open()
	if err != nil {
		r.Err = &core.SourceReadError{Source: src.Name(), Err: err}
		return r
	}
	defer rc.Close()

	board, err := core.ParseLevel(src.Name(), rc, opts...)
	if err != nil {
		r.Err = err
		return r
	}

	r.Width, r.Height = board.Width, board.Height
	r.Targets = len(board.Targets())
	for _, m := range board.Pushables() {
		if m.Kind() == core.KindBox {
			r.Boxes++
		}
	}

	switch {
	case r.Targets == 0:
		r.Warnings = append(r.Warnings, "no targets, solved on the first move")
	case r.Boxes < r.Targets:
		r.Warnings = append(r.Warnings, "fewer boxes than targets, cannot be solved")
	}
	return r
}
