package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleManifest = `id: parser
version: 1.0.0
name: Parser
exports:
  public:
    - Parse
    - Tokenize
  block:
    - Tokenize
`

func TestParseManifestYAML(t *testing.T) {
	m, err := ParseManifestYAML([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.ID != "parser" || m.Name != "Parser" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if !reflect.DeepEqual(m.Exports.Public, []string{"Parse", "Tokenize"}) {
		t.Fatalf("unexpected public names: %v", m.Exports.Public)
	}
}

func TestParseManifestYAMLExplicitEmptyAllow(t *testing.T) {
	payload := `id: sealed
version: 1.0.0
exports:
  public: [Parse]
  allow: []
`
	m, err := ParseManifestYAML([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Exports.Allow == nil {
		t.Fatalf("explicit empty allow must decode as non-nil")
	}
	if got := m.Module().Exports().Effective(); got != nil {
		t.Fatalf("sealed module must contribute nothing, got %v", got)
	}
}

func TestParseManifestYAMLErrors(t *testing.T) {
	if _, err := ParseManifestYAML([]byte("")); err == nil {
		t.Fatalf("expected empty payload to fail validation")
	}
	if _, err := ParseManifestYAML([]byte("version: 1.0.0\n")); err == nil {
		t.Fatalf("expected missing id to fail validation")
	}
}

func TestLoadManifestDir(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "parser.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	files, err := LoadManifestDir(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 manifest, got %d", len(files))
	}
	if files[0].Path != path {
		t.Fatalf("expected path %s, got %s", path, files[0].Path)
	}
	if files[0].Manifest.ID != "parser" {
		t.Fatalf("unexpected id: %+v", files[0].Manifest)
	}
}

func TestLoadManifestDirMissing(t *testing.T) {
	files, err := LoadManifestDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if files != nil {
		t.Fatalf("expected nil slice for missing dir, got %v", files)
	}
}
