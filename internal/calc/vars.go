package calc

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Symbol table for variables. Symbol tables are attached to scopes.
// Scopes are organized as a chain from the innermost scope to the globals.

// --- Tags ------------------------------------------------------------------

// Tag is a variable stored in a symbol table.
type Tag struct {
	name  string
	Value float64
}

// NewTag creates a new tag.
func NewTag(nm string, v float64) *Tag {
	return &Tag{name: nm, Value: v}
}

// Name gets the tag's name.
func (t *Tag) Name() string {
	return t.name
}

func (t *Tag) String() string {
	return fmt.Sprintf("<tag '%s'=%g>", t.name, t.Value)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
// It is safe for concurrent use.
type SymbolTable struct {
	sync.RWMutex
	table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Tag)}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	t.RLock()
	defer t.RUnlock()
	return t.table[tagname]
}

// DefineTag creates a new tag to store into the symbol table.
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tagname string, v float64) (*Tag, *Tag) {
	tag := NewTag(tagname, v)
	t.Lock()
	defer t.Unlock()
	old := t.table[tagname]
	t.table[tagname] = tag
	return tag, old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.table)
}

// Each iterates over each tag in the table in order of the tags' names,
// executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	t.RLock()
	names := make([]string, 0, len(t.table))
	for k := range t.table {
		names = append(names, k)
	}
	tags := make(map[string]*Tag, len(t.table))
	for k, v := range t.table {
		tags[k] = v
	}
	t.RUnlock()
	sort.Strings(names)
	for _, k := range names {
		mapper(k, tags[k])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain variable definitions. Scopes link
// back to a parent scope, forming a chain.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

// Globals creates a root scope holding the constants pi and e.
func Globals() *Scope {
	sc := NewScope("globals", nil)
	sc.Define("pi", math.Pi)
	sc.Define("e", math.E)
	return sc
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// Define defines a variable in the scope. Returns the new tag and the
// previously stored tag under this key, if any.
func (s *Scope) Define(name string, v float64) (*Tag, *Tag) {
	tracer().P("scope", s.Name).Debugf("%s = %g", name, v)
	return s.symtab.DefineTag(name, v)
}

// Resolve finds a variable. Returns the tag (or nil) and the scope the tag
// was found in.
func (s *Scope) Resolve(name string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(name); tag != nil {
			return tag, sc
		}
	}
	return nil, nil
}

// Merge copies all variables of other into s.
func (s *Scope) Merge(other *Scope) {
	other.symtab.Each(func(name string, tag *Tag) {
		s.Define(name, tag.Value)
	})
}
