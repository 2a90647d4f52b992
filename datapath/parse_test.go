package datapath

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		path string
		// canonical rendering and step count of the parse result
		want  string
		steps int
	}{
		{
			name:  "single field",
			path:  "projects",
			want:  "projects",
			steps: 1,
		},
		{
			name:  "dotted fields",
			path:  "a.b.c",
			want:  "a.b.c",
			steps: 3,
		},
		{
			name:  "slash separators",
			path:  "a/b/c",
			want:  "a.b.c",
			steps: 3,
		},
		{
			name:  "mixed separators",
			path:  "a/b.c",
			want:  "a.b.c",
			steps: 3,
		},
		{
			name:  "index",
			path:  "projects[0]",
			want:  "projects[0]",
			steps: 2,
		},
		{
			name:  "negative index",
			path:  "projects[-1]",
			want:  "projects[-1]",
			steps: 2,
		},
		{
			name:  "chained selectors",
			path:  "matrix[0][1]",
			want:  "matrix[0][1]",
			steps: 3,
		},
		{
			name:  "bare selector segment",
			path:  "metrics.[2022]",
			want:  "metrics[2022]",
			steps: 2,
		},
		{
			name:  "quoted key single",
			path:  "obj['a key']",
			want:  "obj['a key']",
			steps: 2,
		},
		{
			name:  "quoted key double",
			path:  `obj["a key"]`,
			want:  "obj['a key']",
			steps: 2,
		},
		{
			name:  "quoted key with escape",
			path:  `obj['it\'s']`,
			want:  `obj['it\'s']`,
			steps: 2,
		},
		{
			name:  "filter on string",
			path:  "projects[id='P-1']",
			want:  "projects[id='P-1']",
			steps: 2,
		},
		{
			name:  "filter on integer",
			path:  "projects[id=543]",
			want:  "projects[id=543]",
			steps: 2,
		},
		{
			name:  "filter on float",
			path:  "points[x=1.5]",
			want:  "points[x=1.5]",
			steps: 2,
		},
		{
			name:  "filter on bool",
			path:  "tasks[done=true]",
			want:  "tasks[done=true]",
			steps: 2,
		},
		{
			name:  "filter bare word is string",
			path:  "tasks[status=open]",
			want:  "tasks[status='open']",
			steps: 2,
		},
		{
			name:  "whitespace insignificant",
			path:  " projects [ 0 ] . epics [ id = 543 ] ",
			want:  "projects[0].epics[id=543]",
			steps: 4,
		},
		{
			name:  "unicode field",
			path:  "café.items",
			want:  "café.items",
			steps: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.path)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.path, err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.path, got, tt.want)
			}
			if got := p.Len(); got != tt.steps {
				t.Errorf("Parse(%q).Len() = %d, want %d", tt.path, got, tt.steps)
			}
		})
	}
}

func TestParseCanonicalFixpoint(t *testing.T) {
	paths := []string{
		"projects[0].epics[1].id",
		"projects[id=543].name",
		"obj['a key'].x",
		"tasks[done=false]",
	}
	for _, path := range paths {
		p, err := Parse(path)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", path, err)
		}
		again, err := Parse(p.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", p.String(), err)
		}
		if again.String() != p.String() {
			t.Errorf("canonical form not stable: %q -> %q", p.String(), again.String())
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"leading dot", ".a"},
		{"trailing dot", "a."},
		{"double dot", "a..b"},
		{"unterminated selector", "a[0"},
		{"unterminated string", "a['key"},
		{"empty selector", "a[]"},
		{"float index", "a[1.5]"},
		{"bare ident selector", "a[foo]"},
		{"filter missing value", "a[foo=]"},
		{"filter missing bracket", "a[foo=1"},
		{"stray character", "a[#]"},
		{"junk after quoted key", "a['k' x]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.path)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.path)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", tt.path, err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("Parse(%q) error is not a *SyntaxError: %v", tt.path, err)
			}
		})
	}
}
