package parsec

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Location is a position within a source text, given as 1-based line and column.
// Columns count runes, not bytes.
type Location struct {
	Line   int
	Column int
}

func (loc Location) String() string {
	return fmt.Sprintf("line %d, column %d", loc.Line, loc.Column)
}

// Locator maps raw source offsets to line/column locations.
type Locator interface {
	Locate(offset int) Location
}

// SourceLocator is the default locator for an in-memory source text.
// It is immutable after creation and may be shared between parse runs.
type SourceLocator struct {
	source     string
	lineStarts []int // byte offset of the start of every line
}

var _ Locator = (*SourceLocator)(nil)

// NewSourceLocator creates a locator for source.
func NewSourceLocator(source string) *SourceLocator {
	sl := &SourceLocator{
		source:     source,
		lineStarts: make([]int, 1, strings.Count(source, "\n")+1),
	}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			sl.lineStarts = append(sl.lineStarts, i+1)
		}
	}
	return sl
}

// Locate returns the location of a byte offset. Offsets outside the source are
// clipped to the source's boundaries.
func (sl *SourceLocator) Locate(offset int) Location {
	if offset < 0 {
		offset = 0
	} else if offset > len(sl.source) {
		offset = len(sl.source)
	}
	// find the last line starting at or before offset
	line := sort.Search(len(sl.lineStarts), func(i int) bool {
		return sl.lineStarts[i] > offset
	}) - 1
	start := sl.lineStarts[line]
	return Location{
		Line:   line + 1,
		Column: utf8.RuneCountInString(sl.source[start:offset]) + 1,
	}
}

// Lines returns the number of lines of the source.
func (sl *SourceLocator) Lines() int {
	return len(sl.lineStarts)
}
