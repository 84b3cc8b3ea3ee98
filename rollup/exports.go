// Package rollup aggregates the exported symbol names declared by a set of
// submodules into the ordered, duplicate-free list their parent should
// re-export. Each submodule declares its own export metadata; the parent
// never hard-codes the names.
package rollup

import (
	"fmt"
	"unicode"
)

// Exports is the export metadata a module declares about itself.
//
// Each field is an ordered list of symbol names. A nil slice means the
// field is unset; a non-nil empty slice is an explicit empty list. The
// distinction matters for Allow: unset falls back to Public, while an
// explicit empty allow-list propagates nothing.
type Exports struct {
	// Public is the module's own public API surface.
	Public []string
	// Allow lists the names the module permits to propagate into an
	// aggregating parent. Unset defaults to Public.
	Allow []string
	// Block lists names that must never propagate, overriding Allow.
	Block []string
}

// Exporter is satisfied by any module handle that can report its export
// metadata. Exports itself implements the interface, so a bare metadata
// value can be passed straight to Rollup.
type Exporter interface {
	Exports() Exports
}

// Exports returns the value itself.
func (e Exports) Exports() Exports { return e }

// Effective resolves the module's contribution to a parent rollup: the
// allow-list (defaulting to Public when unset) minus the block-list, with
// the allow-list's order preserved. The result is always a fresh slice.
func (e Exports) Effective() []string {
	allow := e.Allow
	if allow == nil {
		allow = e.Public
	}
	if len(allow) == 0 {
		return nil
	}
	blocked := make(map[string]struct{}, len(e.Block))
	for _, name := range e.Block {
		blocked[name] = struct{}{}
	}
	effective := make([]string, 0, len(allow))
	for _, name := range allow {
		if _, skip := blocked[name]; skip {
			continue
		}
		effective = append(effective, name)
	}
	if len(effective) == 0 {
		return nil
	}
	return effective
}

// Rollup concatenates the effective export set of each module, in argument
// order, collapsing exact duplicates so the first occurrence keeps its
// position. Nil arguments contribute nothing. The call never mutates its
// arguments and never fails; a module with no export metadata simply
// contributes an empty set.
func Rollup(mods ...Exporter) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		for _, name := range mod.Exports().Effective() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// ValidName reports whether name has identifier shape: a letter or
// underscore followed by letters, digits, or underscores.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// CheckNames verifies every entry in names is identifier-shaped. The label
// identifies the list in error messages (e.g. "exports.allow"). Used by
// manifest loading to surface malformed declarations as configuration
// errors; the aggregation itself never validates.
func CheckNames(label string, names []string) error {
	for i, name := range names {
		if !ValidName(name) {
			return fmt.Errorf("%s[%d]: %q is not a valid symbol name", label, i, name)
		}
	}
	return nil
}
