// File: symtab.go
// Title: Flat Symbol Table
// Description: Maps declared variable names to their declared type. One table
//              is owned by one parse; there is a single namespace for the
//              whole program and no block scoping.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation
// - 2026-10-14 v0.1.1: Entries remember their declaration line

package symtab

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var (
	// ErrDuplicate is returned by Insert when the name is already declared
	ErrDuplicate = errors.New("symtab: duplicate declaration")

	// ErrUnknownType is returned by Insert for a type that is not a type keyword
	ErrUnknownType = errors.New("symtab: unknown type")
)

// types lists the type keywords a declaration may use
var types = map[string]bool{
	"int":    true,
	"float":  true,
	"double": true,
	"string": true,
	"bool":   true,
	"char":   true,
}

// Entry is one declared variable
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Line int    `json:"line" yaml:"line"`
}

// Table is a flat name -> entry map. The zero value is not usable; call New.
type Table struct {
	entries map[string]Entry
}

// New creates an empty table
func New() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// IsType reports whether name is one of the declarable type keywords
func IsType(name string) bool {
	return types[name]
}

// Insert declares name with the given type. The table is left unchanged on
// error.
func (t *Table) Insert(name, typ string, line int) error {
	if !IsType(typ) {
		return fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	if prev, exists := t.entries[name]; exists {
		return fmt.Errorf("%w: %s already declared as %s on line %d",
			ErrDuplicate, prev.Name, prev.Type, prev.Line)
	}
	t.entries[name] = Entry{Name: name, Type: typ, Line: line}
	return nil
}

// Lookup returns the entry for name
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Contains reports whether name is declared
func (t *Table) Contains(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Len returns the number of declared names
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns all entries sorted by name
func (t *Table) Entries() []Entry {
	names := lo.Keys(t.entries)
	slices.Sort(names)

	return lo.Map(names, func(name string, _ int) Entry {
		return t.entries[name]
	})
}
