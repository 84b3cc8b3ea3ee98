package manifest

import (
	"fmt"
	"strings"

	"github.com/kingrea/rollup/internal/module"
	"github.com/kingrea/rollup/rollup"
)

// Manifest describes one submodule's export declaration.
//
// The struct mirrors the on-disk schema under .rollup/modules/*.yaml and is
// intentionally narrow so the tooling can validate a declaration before it
// contributes names to the parent's export list.
type Manifest struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string      `json:"version" yaml:"version"`
	Exports     ExportsSpec `json:"exports,omitempty" yaml:"exports,omitempty"`
}

// ExportsSpec declares the module's export metadata. Omitted lists stay
// nil, which is the "unset" state the aggregation defaulting chain relies
// on; `allow: []` in YAML is an explicit empty allow-list.
type ExportsSpec struct {
	Public []string `json:"public,omitempty" yaml:"public,omitempty"`
	Allow  []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	Block  []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// Normalized returns a trimmed, copy-on-write variant of the manifest.
func (m Manifest) Normalized() Manifest {
	return Manifest{
		ID:          strings.TrimSpace(m.ID),
		Name:        strings.TrimSpace(m.Name),
		Description: strings.TrimSpace(m.Description),
		Version:     strings.TrimSpace(m.Version),
		Exports: ExportsSpec{
			Public: trimmedNames(m.Exports.Public),
			Allow:  trimmedNames(m.Exports.Allow),
			Block:  trimmedNames(m.Exports.Block),
		},
	}
}

// Validate ensures the manifest is well-formed. Missing export lists are
// fine; entries that are not identifier-shaped are configuration errors
// reported with the list and index they came from. Allow entries are not
// cross-checked against public names.
func (m Manifest) Validate() error {
	normalized := m.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("manifest: id is required")
	}
	if normalized.Version == "" {
		return fmt.Errorf("manifest %s: version is required", normalized.ID)
	}
	if err := rollup.CheckNames("exports.public", normalized.Exports.Public); err != nil {
		return fmt.Errorf("manifest %s: %w", normalized.ID, err)
	}
	if err := rollup.CheckNames("exports.allow", normalized.Exports.Allow); err != nil {
		return fmt.Errorf("manifest %s: %w", normalized.ID, err)
	}
	if err := rollup.CheckNames("exports.block", normalized.Exports.Block); err != nil {
		return fmt.Errorf("manifest %s: %w", normalized.ID, err)
	}
	return nil
}

// Module adapts the manifest into a registrable module handle.
func (m Manifest) Module() module.Module {
	normalized := m.Normalized()
	return module.Static{
		Meta: module.Info{
			ID:          normalized.ID,
			Name:        normalized.Name,
			Description: normalized.Description,
			Version:     normalized.Version,
		},
		Declared: rollup.Exports{
			Public: normalized.Exports.Public,
			Allow:  normalized.Exports.Allow,
			Block:  normalized.Exports.Block,
		},
	}
}

// trimmedNames trims each entry while preserving the nil/empty distinction
// of the source slice.
func trimmedNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.TrimSpace(name)
	}
	return out
}
