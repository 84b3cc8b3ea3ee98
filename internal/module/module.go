package module

import (
	"fmt"

	"github.com/kingrea/rollup/rollup"
)

// Info describes a module's identity.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("module: id is required")
	}
	if i.Version == "" {
		return fmt.Errorf("module: version is required for %s", i.ID)
	}
	return nil
}

// Label returns the friendliest non-empty identifier for display.
func (i Info) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}

// Module is implemented by every unit that participates in a parent rollup.
type Module interface {
	Info() Info
	rollup.Exporter
}

// Static is the simplest Module: fixed identity and export metadata.
// Built-in modules and tests use it directly.
type Static struct {
	Meta     Info
	Declared rollup.Exports
}

// Info returns the module's identity block.
func (s Static) Info() Info { return s.Meta }

// Exports returns the module's declared export metadata.
func (s Static) Exports() rollup.Exports { return s.Declared }
