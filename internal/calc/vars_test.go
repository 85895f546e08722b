package calc

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, old := symtab.DefineTag("new-sym", 1)
	if sym == nil || old != nil {
		t.Fatalf("expected new symbol without predecessor, have %v, %v", sym, old)
	}
	if _, old := symtab.DefineTag("new-sym", 2); old != sym {
		t.Error("symbol should have been replaced")
	}
	if s := symtab.ResolveTag("new-sym"); s == nil || s.Value != 2 {
		t.Errorf("cannot find stored symbol in table, have %v", s)
	}
	if symtab.Size() != 1 {
		t.Errorf("expected 1 symbol, have %d", symtab.Size())
	}
}

func TestEachInOrder(t *testing.T) {
	symtab := NewSymbolTable()
	for _, name := range []string{"c", "a", "b"} {
		symtab.DefineTag(name, 0)
	}
	var names string
	symtab.Each(func(name string, _ *Tag) {
		names += name
	})
	if names != "abc" {
		t.Errorf("expected tags in order of their names, have %q", names)
	}
}

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.calc")
	defer teardown()
	//
	parent := Globals()
	scope := NewScope("current", parent)
	if tag, sc := scope.Resolve("pi"); tag == nil || tag.Value != math.Pi || sc != parent {
		t.Errorf("expected pi in parent scope, have %v in %v", tag, sc)
	}
	scope.Define("pi", 3)
	if tag, sc := scope.Resolve("pi"); tag.Value != 3 || sc != scope {
		t.Errorf("expected local pi to shadow global one, have %v in %v", tag, sc)
	}
	parent.Merge(scope)
	if tag, _ := parent.Resolve("pi"); tag.Value != 3 {
		t.Errorf("expected merged pi, have %v", tag)
	}
	if tag, sc := scope.Resolve("nope"); tag != nil || sc != nil {
		t.Errorf("did not expect to find undefined variable")
	}
}
