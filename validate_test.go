package dataspec_test

import (
	"errors"
	"testing"

	"github.com/dataspec-format/dataspec"
	"github.com/dataspec-format/dataspec/ir"
	"github.com/dataspec-format/dataspec/load"
	"github.com/dataspec-format/dataspec/schema"
)

const trackerSchema = `
"<<root>>":
  projects:
    type: array
    items:
      $ref: "#/Project"
  metrics:
    type: map
    keys:
      type: integer
    values:
      type: number
    optional: true
Project:
  properties:
    id:
      type: integer
    name:
      type: string
    epics:
      type: array
      items:
        $ref: "#/Epic"
Epic:
  properties:
    id:
      type: string
    name:
      type: string
    user_stories:
      type: array
      items:
        $ref: "#/UserStory"
      optional: true
    sub_epics:
      type: array
      items:
        $ref: "#/Epic"
      optional: true
UserStory:
  properties:
    id:
      type: string
    name:
      type: string
    points:
      type: number
      optional: true
    tasks:
      type: array
      items:
        $ref: "#/Task"
      optional: true
Task:
  properties:
    id:
      type: string
    done:
      type: boolean
    sub_tasks:
      type: array
      items:
        $ref: "#/Task"
      optional: true
`

const validTracker = `
projects:
- id: 543
  name: Apollo
  epics:
  - id: EPIC-1
    name: Onboarding
    user_stories:
    - id: US-1
      name: Signup
      points: 3
      tasks:
      - id: T-1
        done: true
        sub_tasks:
        - id: T-1a
          done: true
      - id: T-2
        done: false
    - id: US-2
      name: Login
    sub_epics:
    - id: EPIC-1a
      name: Invites
- id: 544
  name: Hermes
  epics: []
metrics:
  2022: 34.5
  2023: 41
`

func trackerModel(t *testing.T) *schema.Model {
	t.Helper()
	doc, err := load.Parse([]byte(trackerSchema), load.YAMLFormat)
	if err != nil {
		t.Fatalf("cannot parse schema: %v", err)
	}
	m, err := schema.Load(doc)
	if err != nil {
		t.Fatalf("cannot load schema: %v", err)
	}
	return m
}

func parseYAML(t *testing.T, doc string) *ir.Node {
	t.Helper()
	y, err := load.Parse([]byte(doc), load.YAMLFormat)
	if err != nil {
		t.Fatalf("cannot parse data: %v", err)
	}
	return y
}

func TestValidateOK(t *testing.T) {
	m := trackerModel(t)
	res, err := dataspec.Validate(parseYAML(t, validTracker), m)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !res.OK() {
		t.Errorf("Validate() found errors on valid data:\n%s", res)
	}
}

func TestValidateErrors(t *testing.T) {
	m := trackerModel(t)
	tests := []struct {
		name string
		doc  string
		// expected findings as path -> code
		want map[string]string
	}{
		{
			name: "missing required nested id",
			doc: `
projects:
- id: 543
  name: Apollo
  epics:
  - id: EPIC-1
    name: Onboarding
    user_stories:
    - name: Signup
`,
			want: map[string]string{
				"projects[0].epics[0].user_stories[0].id": dataspec.CodeRequired,
			},
		},
		{
			name: "type mismatches",
			doc: `
projects:
- id: not-a-number
  name: 7
  epics: {}
`,
			want: map[string]string{
				"projects[0].id":    dataspec.CodeTypeMismatch,
				"projects[0].name":  dataspec.CodeTypeMismatch,
				"projects[0].epics": dataspec.CodeTypeMismatch,
			},
		},
		{
			name: "unknown key",
			doc: `
projects:
- id: 543
  name: Apollo
  owner: somebody
  epics: []
`,
			want: map[string]string{
				"projects[0].owner": dataspec.CodeUnknownKey,
			},
		},
		{
			name: "root not an object",
			doc:  `[1, 2, 3]`,
			want: map[string]string{
				"": dataspec.CodeTypeMismatch,
			},
		},
		{
			name: "fractional float does not satisfy integer",
			doc: `
projects:
- id: 543.5
  name: Apollo
  epics: []
`,
			want: map[string]string{
				"projects[0].id": dataspec.CodeTypeMismatch,
			},
		},
		{
			name: "bad map value",
			doc: `
projects: []
metrics:
  2022: fast
`,
			want: map[string]string{
				"metrics[2022]": dataspec.CodeTypeMismatch,
			},
		},
		{
			name: "bad map key",
			doc: `
projects: []
metrics:
  yearly: 34
`,
			want: map[string]string{
				"metrics['yearly']": dataspec.CodeInvalidMapKey,
			},
		},
		{
			name: "errors accumulate",
			doc: `
projects:
- id: x
  epics: []
  extra: 1
`,
			want: map[string]string{
				"projects[0].id":    dataspec.CodeTypeMismatch,
				"projects[0].name":  dataspec.CodeRequired,
				"projects[0].extra": dataspec.CodeUnknownKey,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := dataspec.Validate(parseYAML(t, tt.doc), m)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			got := map[string]string{}
			for _, e := range res.Errors {
				got[e.Path] = e.Code
			}
			if len(got) != len(tt.want) {
				t.Errorf("got %d findings, want %d:\n%s", len(got), len(tt.want), res)
			}
			for path, code := range tt.want {
				if got[path] != code {
					t.Errorf("want %s at %q, got %q", code, path, got[path])
				}
			}
		})
	}
}

// An integer-valued scalar satisfies number fields, and map keys that
// arrive as strings from the decoder still count as integers.
func TestValidateNumericLenience(t *testing.T) {
	m := trackerModel(t)
	res, err := dataspec.Validate(parseYAML(t, `
projects: []
metrics:
  2022: 34
  2023: 41.5
`), m)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !res.OK() {
		t.Errorf("unexpected findings:\n%s", res)
	}
}

func TestValidateErrorPathsResolvable(t *testing.T) {
	m := trackerModel(t)
	doc := parseYAML(t, `
projects:
- id: 543
  name: 7
  epics: []
`)
	res, err := dataspec.Validate(doc, m)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("want 1 finding, got:\n%s", res)
	}
	// the reported path addresses the offending value
	v, err := dataspec.Search(doc, res.Errors[0].Path)
	if err != nil {
		t.Fatalf("Search(%q) error = %v", res.Errors[0].Path, err)
	}
	if v.Type != ir.NumberType {
		t.Errorf("Search(%q) = %+v, want the bad number", res.Errors[0].Path, v)
	}
}

func TestValidateNilModel(t *testing.T) {
	_, err := dataspec.Validate(ir.Null(), nil)
	if !errors.Is(err, dataspec.ErrNilModel) {
		t.Errorf("Validate(nil model) error = %v, want ErrNilModel", err)
	}
}

func TestValidateMaxDepth(t *testing.T) {
	doc, err := load.Parse([]byte(`
"<<root>>":
  node:
    $ref: "#/Node"
Node:
  properties:
    child:
      type: array
      items:
        $ref: "#/Node"
`), load.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	m, err := schema.Load(doc)
	if err != nil {
		t.Fatal(err)
	}
	// build a chain deeper than the ceiling
	leaf := ir.FromMap(map[string]*ir.Node{"child": ir.FromSlice(nil)})
	cur := leaf
	for range 50 {
		cur = ir.FromMap(map[string]*ir.Node{
			"child": ir.FromSlice([]*ir.Node{cur}),
		})
	}
	data := ir.FromMap(map[string]*ir.Node{"node": cur})

	_, err = dataspec.Validate(data, m, dataspec.WithMaxDepth(20))
	if !errors.Is(err, dataspec.ErrMaxDepth) {
		t.Errorf("Validate() error = %v, want ErrMaxDepth", err)
	}
	// the default ceiling leaves this depth alone
	res, err := dataspec.Validate(data, m)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !res.OK() {
		t.Errorf("unexpected findings:\n%s", res)
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	m := trackerModel(t)
	doc := parseYAML(t, validTracker)
	before := doc.Clone()
	if _, err := dataspec.Validate(doc, m); err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(doc, before) {
		t.Errorf("Validate mutated its input")
	}
}
