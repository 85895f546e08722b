package parser

import (
	"fmt"
	"strings"
)

// Hook is an observer for parse runs. Hooks are called before a parser is
// applied and after it succeeded or failed, together with the source offset
// and the nesting depth of the parser. Hooks must not modify the context.
//
// Without a hook installed, the engine does no tracing at all.
type Hook interface {
	Attempt(p fmt.Stringer, at int, depth int)
	Success(p fmt.Stringer, at int, depth int)
	Failure(p fmt.Stringer, at int, depth int)
}

// TraceHook returns a hook logging every parser step to tracer 'parsec.parser'
// with level Debug.
func TraceHook() Hook {
	return traceHook{}
}

type traceHook struct{}

const maxTraceDepth = 40

func indent(depth int) string {
	if depth > maxTraceDepth {
		depth = maxTraceDepth
	}
	return strings.Repeat(". ", depth)
}

func (traceHook) Attempt(p fmt.Stringer, at int, depth int) {
	tracer().Debugf("%s%s @%d ?", indent(depth), p, at)
}

func (traceHook) Success(p fmt.Stringer, at int, depth int) {
	tracer().Debugf("%s%s -> @%d", indent(depth), p, at)
}

func (traceHook) Failure(p fmt.Stringer, at int, depth int) {
	tracer().Debugf("%s%s failed @%d", indent(depth), p, at)
}

// CountingHook counts parser invocations by the parsers' string
// representation. It is useful for tests and for spotting excessive
// backtracking.
type CountingHook struct {
	Attempts  map[string]int
	Successes map[string]int
}

var _ Hook = (*CountingHook)(nil)

// NewCountingHook creates an empty counting hook.
func NewCountingHook() *CountingHook {
	return &CountingHook{
		Attempts:  make(map[string]int),
		Successes: make(map[string]int),
	}
}

func (h *CountingHook) Attempt(p fmt.Stringer, at int, depth int) {
	h.Attempts[p.String()]++
}

func (h *CountingHook) Success(p fmt.Stringer, at int, depth int) {
	h.Successes[p.String()]++
}

func (h *CountingHook) Failure(p fmt.Stringer, at int, depth int) {}
