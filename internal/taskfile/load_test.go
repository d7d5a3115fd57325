package taskfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"Taskfile.toml", FormatTOML, false},
		{"tasks.YAML", FormatYAML, false},
		{"tasks.yml", FormatYAML, false},
		{"grunt.json", FormatJSON, false},
		{"Gruntfile.js", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q): err = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q): got %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDecodeKeepsOrder(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, `
[zeta]
__groups = ["test", "build"]

[alpha.dist]
__groups = "build"

[alpha.dev]
__groups = "test"

[beta]
src = "lib"
`},
		{"yaml", FormatYAML, `
zeta:
  __groups: [test, build]
alpha:
  dist:
    __groups: build
  dev:
    __groups: test
beta:
  src: lib
`},
		{"json", FormatJSON, `{
  "zeta": {"__groups": ["test", "build"]},
  "alpha": {
    "dist": {"__groups": "build"},
    "dev": {"__groups": "test"}
  },
  "beta": {"src": "lib"}
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if want := []string{"zeta", "alpha", "beta"}; !reflect.DeepEqual(m.Keys(), want) {
				t.Errorf("root keys: got %v, want %v", m.Keys(), want)
			}

			v, ok := m.Lookup("alpha")
			if !ok {
				t.Fatal("alpha missing")
			}
			alpha, ok := v.(*Map)
			if !ok {
				t.Fatalf("alpha: got %T, want *Map", v)
			}
			if want := []string{"dist", "dev"}; !reflect.DeepEqual(alpha.Keys(), want) {
				t.Errorf("alpha keys: got %v, want %v", alpha.Keys(), want)
			}

			v, _ = m.Lookup("zeta")
			tags, _ := v.(*Map).Lookup("__groups")
			if want := []any{"test", "build"}; !reflect.DeepEqual(tags, want) {
				t.Errorf("zeta tags: got %#v, want %#v", tags, want)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		m, err := Decode([]byte("\n"), format)
		if err != nil {
			t.Fatalf("Decode(%s): %v", format, err)
		}
		if m.Len() != 0 {
			t.Errorf("Decode(%s): got %d keys, want 0", format, m.Len())
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   string
	}{
		{"json array root", FormatJSON, `["a"]`, "root must be an object"},
		{"json trailing data", FormatJSON, `{} {}`, "after top-level value"},
		{"yaml scalar root", FormatYAML, `hello`, "root must be an object"},
		{"bad toml", FormatTOML, `a = `, ""},
		{"unknown format", Format("ini"), `a=1`, "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yaml")
	if err := os.WriteFile(path, []byte("jshint:\n  __groups: lint\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := map[string]any{"jshint": map[string]any{"__groups": "lint"}}; !reflect.DeepEqual(m.Plain(), want) {
		t.Errorf("Plain: got %v, want %v", m.Plain(), want)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMapSet(t *testing.T) {
	m := NewMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	if want := []string{"b", "a"}; !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("Keys: got %v, want %v", m.Keys(), want)
	}
	if v, _ := m.Lookup("b"); v != 3 {
		t.Errorf("b: got %v, want 3", v)
	}
}
