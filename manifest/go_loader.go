package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"gopkg.in/yaml.v3"
)

const goManifestFuncName = "ModuleExports"

// LoadGoManifestDir evaluates every .go file in dir and collects the export
// declarations returned by its ModuleExports() function. Go manifests earn
// their keep when a module's export lists are computed rather than written
// out by hand.
func LoadGoManifestDir(dir string) ([]File, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("manifest: read %s: %w", trimmed, err)
	}
	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		fileManifests, err := loadGoManifestFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, fileManifests...)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func loadGoManifestFile(path string) ([]File, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("manifest: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("manifest: interpret %s: %w", path, err)
	}
	fnValue, err := i.Eval(goManifestFuncName)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s must define %s() ([]map[string]any, error): %w", path, goManifestFuncName, err)
	}
	declarations, callErr := invokeManifestFunc(fnValue)
	if callErr != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, callErr)
	}
	files := make([]File, 0, len(declarations))
	for idx, raw := range declarations {
		payload, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("manifest: %s declaration[%d]: %w", path, idx, err)
		}
		parsed, err := ParseManifestYAML(payload)
		if err != nil {
			return nil, fmt.Errorf("manifest: %s declaration[%d]: %w", path, idx, err)
		}
		files = append(files, File{Manifest: parsed, Path: fmt.Sprintf("%s#%d", path, idx+1)})
	}
	return files, nil
}

func invokeManifestFunc(value reflect.Value) ([]map[string]any, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("missing %s function", goManifestFuncName)
	}
	fn := value
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", goManifestFuncName)
	}
	results := fn.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return ([]map[string]any[, error])", goManifestFuncName)
	}
	declsVal := results[0]
	if len(results) == 2 {
		if !results[1].IsNil() {
			if e, ok := results[1].Interface().(error); ok && e != nil {
				return nil, e
			}
			return nil, fmt.Errorf("%s returned non-error second value", goManifestFuncName)
		}
	}
	decls, ok := declsVal.Interface().([]map[string]any)
	if ok {
		return decls, nil
	}
	if declsVal.Kind() == reflect.Slice {
		result := make([]map[string]any, declsVal.Len())
		for i := 0; i < declsVal.Len(); i++ {
			entry := declsVal.Index(i).Interface()
			m, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not map[string]any", goManifestFuncName, i)
			}
			result[i] = m
		}
		return result, nil
	}
	return nil, fmt.Errorf("%s must return []map[string]any", goManifestFuncName)
}
