package parser

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/parsec"
)

// diagnostics keeps the furthest failure of a parse run. Records at a deeper
// source offset replace everything recorded before; records at the same
// offset are merged.
type diagnostics struct {
	at          int // source offset, -1 if nothing has been recorded
	expected    *treeset.Set
	unexpected  *treeset.Set
	messages    []string
	encountered string
}

func newDiagnostics() *diagnostics {
	return &diagnostics{at: -1}
}

// reach checks if a record at offset is to be kept, resetting the record if
// offset is deeper than anything seen before.
func (d *diagnostics) reach(offset int, encountered func() string) bool {
	if offset < d.at {
		return false
	}
	if offset > d.at {
		d.at = offset
		d.expected, d.unexpected, d.messages = nil, nil, nil
		d.encountered = encountered()
	}
	return true
}

func (d *diagnostics) expect(offset int, name string, encountered func() string) {
	if !d.reach(offset, encountered) {
		return
	}
	if d.expected == nil {
		d.expected = treeset.NewWithStringComparator()
	}
	d.expected.Add(name)
}

func (d *diagnostics) unexpect(offset int, name string, encountered func() string) {
	if !d.reach(offset, encountered) {
		return
	}
	if d.unexpected == nil {
		d.unexpected = treeset.NewWithStringComparator()
	}
	d.unexpected.Add(name)
}

func (d *diagnostics) fail(offset int, msg string, encountered func() string) {
	if !d.reach(offset, encountered) {
		return
	}
	for _, m := range d.messages {
		if m == msg {
			return
		}
	}
	d.messages = append(d.messages, msg)
}

// merge adds the records of other, if they are at least as deep.
func (d *diagnostics) merge(other *diagnostics) {
	if other.at < 0 || other.at < d.at {
		return
	}
	if other.at > d.at {
		*d = diagnostics{at: other.at, encountered: other.encountered}
	}
	for _, name := range names(other.expected) {
		d.expect(other.at, name, nil)
	}
	for _, name := range names(other.unexpected) {
		d.unexpect(other.at, name, nil)
	}
	for _, msg := range other.messages {
		d.fail(other.at, msg, nil)
	}
}

func (d *diagnostics) render(ctx *Context) *Error {
	err := &Error{
		SourceName: ctx.name,
		Index:      d.at,
		Messages:   append([]string(nil), d.messages...),
	}
	if d.at < 0 {
		err.Index = ctx.Index()
		err.Encountered = ctx.encountered()
		err.Messages = []string{"syntax error"}
	} else {
		err.Expected = names(d.expected)
		err.Unexpected = names(d.unexpected)
		err.Encountered = d.encountered
	}
	err.Location = ctx.Locate(err.Index)
	return err
}

func names(set *treeset.Set) []string {
	if set == nil {
		return nil
	}
	n := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		n = append(n, v.(string))
	}
	return n
}

// --- Errors ----------------------------------------------------------------

// Error is the error returned from a failed parse run. It describes the
// furthest position in the source any parser did reach.
type Error struct {
	SourceName  string          // name of the input, may be empty
	Index       int             // source offset of the failure
	Location    parsec.Location // line and column of Index
	Expected    []string        // sorted names of expected items
	Unexpected  []string        // sorted names of unexpected items
	Messages    []string        // free-form failure messages
	Encountered string          // description of the input found at Index
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		b.WriteString(e.SourceName)
		b.WriteString(", ")
	}
	b.WriteString(e.Location.String())
	b.WriteString(": ")
	b.WriteString(e.Message())
	return b.String()
}

// Message returns the error text without position information.
func (e *Error) Message() string {
	var parts []string
	if len(e.Messages) > 0 {
		parts = append(parts, strings.Join(e.Messages, "; "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Unexpected, ", "))
	}
	if len(e.Expected) > 0 {
		parts = append(parts, strings.Join(e.Expected, " or ")+" expected")
	}
	if e.Encountered != "" && len(e.Unexpected) == 0 {
		parts = append(parts, e.Encountered+" encountered")
	}
	return strings.Join(parts, ", ")
}

// ConstructionError is used for panics caused by grammars wired together
// incorrectly, e.g. a nil operand or a reference used without being set.
type ConstructionError string

func (e ConstructionError) Error() string {
	return "parser construction: " + string(e)
}

func constructionError(format string, args ...interface{}) ConstructionError {
	e := ConstructionError(fmt.Sprintf(format, args...))
	tracer().Errorf("%s", e.Error())
	return e
}
