package taskfile

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		data      string
		valid     bool
		wantPaths []string
	}{
		{
			name:  "flat and multi tasks",
			tag:   "__groups",
			data:  `{"jshint": {"__groups": "lint"}, "mocha": {"unit": {"__groups": ["test", "ci"]}}, "pkg": "package.json"}`,
			valid: true,
		},
		{
			name:  "untagged options",
			tag:   "__groups",
			data:  `{"copy": {"options": {"mode": true}, "files": ["a"]}, "version": 3}`,
			valid: true,
		},
		{
			name:      "numeric flat tag",
			tag:       "__groups",
			data:      `{"jshint": {"__groups": 5}}`,
			wantPaths: []string{"jshint.__groups"},
		},
		{
			name:      "non-string target tag element",
			tag:       "__groups",
			data:      `{"mocha": {"unit": {"__groups": ["test", 1]}}}`,
			wantPaths: []string{"mocha.unit.__groups"},
		},
		{
			name:  "custom tag",
			tag:   "tags",
			data:  `{"jshint": {"tags": "lint", "__groups": 5}}`,
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.data), FormatJSON)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			result, err := Validate(m, tt.tag)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if result.Valid != tt.valid {
				t.Fatalf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			for _, want := range tt.wantPaths {
				found := false
				for _, e := range result.Errors {
					if strings.HasPrefix(e.Error(), want+":") {
						found = true
					}
				}
				if !found {
					t.Errorf("no error at %q in %v", want, result.Errors)
				}
			}
		})
	}
}

func TestValidateTOMLValues(t *testing.T) {
	m, err := Decode([]byte(`
[watch]
interval = 5
since = 2024-01-02T03:04:05Z
__groups = ["dev"]
`), FormatTOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	result, err := Validate(m, "__groups")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %v", result.Errors)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"/jshint/__groups", "jshint.__groups"},
		{"/mocha/unit/__groups/1", "mocha.unit.__groups[1]"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.in); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
