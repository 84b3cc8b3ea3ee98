package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File pairs a parsed manifest with its on-disk source.
type File struct {
	Manifest Manifest
	Path     string
}

// ParseManifestYAML decodes and validates a single manifest payload.
func ParseManifestYAML(data []byte) (Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Manifest{}, fmt.Errorf("manifest: payload is empty")
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m.Normalized(), nil
}

// LoadManifestFile reads a YAML file from disk and returns the parsed manifest.
func LoadManifestFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("manifest: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("manifest: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := ParseManifestYAML(data)
	if err != nil {
		return File{}, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return File{Manifest: m, Path: filepath.Clean(path)}, nil
}

// LoadManifestDir scans a directory for *.yaml manifests and returns the
// parsed declarations. Missing directories are treated as "no modules" to
// simplify startup.
func LoadManifestDir(dir string) ([]File, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("manifest: read %s: %w", trimmed, err)
	}
	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		path := filepath.Join(trimmed, name)
		file, err := LoadManifestFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
