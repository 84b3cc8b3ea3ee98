package manifest

import (
	"fmt"

	"github.com/kingrea/rollup/internal/config"
	"github.com/kingrea/rollup/internal/module"
)

// RegisterModules discovers YAML and Go export manifests under
// .rollup/modules and registers them. Registration order is the parent's
// aggregation order: ids pinned in the project config come first, in the
// pinned order, and the remaining manifests follow in path order.
func RegisterModules(reg *module.Registry, cfg *config.Config) error {
	if reg == nil || cfg == nil {
		return nil
	}
	files, err := loadAllManifestFiles(cfg.ModulesDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	seen := make(map[string]string)
	for _, file := range files {
		id := file.Manifest.ID
		if existing, ok := seen[id]; ok {
			return fmt.Errorf("manifest: duplicate module id %s (%s and %s)", id, existing, file.Path)
		}
		seen[id] = file.Path
	}
	ordered, err := orderManifests(files, cfg.ModuleOrder())
	if err != nil {
		return err
	}
	for _, file := range ordered {
		if err := reg.Register(file.Manifest.Module()); err != nil {
			return fmt.Errorf("manifest: register %s from %s: %w", file.Manifest.ID, file.Path, err)
		}
	}
	return nil
}

func loadAllManifestFiles(dir string) ([]File, error) {
	yamlFiles, err := LoadManifestDir(dir)
	if err != nil {
		return nil, err
	}
	goFiles, err := LoadGoManifestDir(dir)
	if err != nil {
		return nil, err
	}
	return append(yamlFiles, goFiles...), nil
}

// orderManifests applies the config pin list: pinned ids first in pin
// order, then everything else in the order files arrived. A pin naming an
// unknown id is a configuration error, not a silent no-op.
func orderManifests(files []File, pins []string) ([]File, error) {
	if len(pins) == 0 {
		return files, nil
	}
	byID := make(map[string]File, len(files))
	for _, file := range files {
		byID[file.Manifest.ID] = file
	}
	pinned := make(map[string]struct{}, len(pins))
	ordered := make([]File, 0, len(files))
	for _, id := range pins {
		file, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("manifest: config pins unknown module id %s", id)
		}
		pinned[id] = struct{}{}
		ordered = append(ordered, file)
	}
	for _, file := range files {
		if _, ok := pinned[file.Manifest.ID]; ok {
			continue
		}
		ordered = append(ordered, file)
	}
	return ordered, nil
}
