package manifest

import (
	"reflect"
	"strings"
	"testing"
)

func TestManifestValidate(t *testing.T) {
	m := Manifest{
		ID:      "parser",
		Name:    "Parser",
		Version: "1.0.0",
		Exports: ExportsSpec{
			Public: []string{"Parse", "Tokenize"},
			Block:  []string{"Tokenize"},
		},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("expected manifest to validate, got %v", err)
	}
}

func TestManifestValidateAllowsMissingExports(t *testing.T) {
	m := Manifest{ID: "quiet", Version: "0.1.0"}
	if err := m.Validate(); err != nil {
		t.Fatalf("manifest without exports must validate, got %v", err)
	}
}

func TestManifestValidateFailures(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
		msg  string
	}{
		{
			name: "missing id",
			m:    Manifest{Version: "1.0.0"},
			msg:  "id is required",
		},
		{
			name: "missing version",
			m:    Manifest{ID: "parser"},
			msg:  "version is required",
		},
		{
			name: "malformed public name",
			m: Manifest{
				ID:      "parser",
				Version: "1.0.0",
				Exports: ExportsSpec{Public: []string{"Parse", "not a name"}},
			},
			msg: "exports.public[1]",
		},
		{
			name: "malformed block name",
			m: Manifest{
				ID:      "parser",
				Version: "1.0.0",
				Exports: ExportsSpec{Block: []string{"9lives"}},
			},
			msg: "exports.block[0]",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.m.Validate(); err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected error containing %q, got %v", tc.msg, err)
			}
		})
	}
}

func TestManifestValidateDoesNotCrossCheckAllow(t *testing.T) {
	m := Manifest{
		ID:      "parser",
		Version: "1.0.0",
		Exports: ExportsSpec{
			Public: []string{"Parse"},
			Allow:  []string{"Tokenize"},
		},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("allow entries outside public must be permitted, got %v", err)
	}
}

func TestManifestModule(t *testing.T) {
	m := Manifest{
		ID:      " parser ",
		Name:    "Parser",
		Version: "1.0.0",
		Exports: ExportsSpec{
			Allow: []string{"Parse", "Tokenize"},
			Block: []string{"Tokenize"},
		},
	}
	mod := m.Module()
	if mod.Info().ID != "parser" {
		t.Fatalf("expected trimmed id, got %q", mod.Info().ID)
	}
	got := mod.Exports().Effective()
	if !reflect.DeepEqual(got, []string{"Parse"}) {
		t.Fatalf("unexpected effective exports: %v", got)
	}
}

func TestNormalizedPreservesUnsetLists(t *testing.T) {
	m := Manifest{
		ID:      "parser",
		Version: "1.0.0",
		Exports: ExportsSpec{
			Public: []string{"Parse"},
			Allow:  []string{},
		},
	}
	normalized := m.Normalized()
	if normalized.Exports.Block != nil {
		t.Fatalf("unset block-list must stay nil, got %v", normalized.Exports.Block)
	}
	if normalized.Exports.Allow == nil {
		t.Fatalf("explicit empty allow-list must stay non-nil")
	}
}
