package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/layout"
	"github.com/matzehuels/schematic/pkg/scene"
)

func TestCatalogBuildsCleanly(t *testing.T) {
	for _, d := range All {
		t.Run(d.Name, func(t *testing.T) {
			if err := errors.ValidateDiagramName(d.Name); err != nil {
				t.Fatalf("invalid name: %v", err)
			}
			if d.Description == "" {
				t.Error("missing description")
			}
			s, err := d.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			l, err := layout.Build(s)
			if err != nil {
				t.Fatalf("layout.Build: %v", err)
			}
			for _, w := range l.Warnings {
				t.Errorf("unexpected warning: %s", w.Message)
			}
			if l.Title == nil {
				t.Error("catalog diagrams carry a title")
			}
		})
	}
}

func TestBuildReturnsFreshScenes(t *testing.T) {
	a, err := EntityRelationship.Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := EntityRelationship.Build()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("Build should return a new scene each call")
	}
}

func TestFindAndLookup(t *testing.T) {
	if d := Find("erd"); d != EntityRelationship {
		t.Errorf("Find(erd) = %v, want EntityRelationship", d)
	}
	if d := Find("nope"); d != nil {
		t.Errorf("Find(nope) = %v, want nil", d)
	}

	tests := []struct {
		name string
		code errors.Code
	}{
		{"mvvm", ""},
		{"missing", errors.ErrCodeNotFound},
		{"../etc", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.name)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Lookup(%q) code = %q, want %q", tt.name, got, tt.code)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	if err != nil || len(all) != len(All) {
		t.Errorf("Select(nil) = %d diagrams, %v; want %d", len(all), err, len(All))
	}
	two, err := Select([]string{"mvvm", "erd"})
	if err != nil {
		t.Fatal(err)
	}
	if two[0] != MVVM || two[1] != EntityRelationship {
		t.Errorf("Select kept order wrong: %s, %s", two[0].Name, two[1].Name)
	}
	if _, err := Select([]string{"erd", "bogus"}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Select(bogus) = %v, want NOT_FOUND", err)
	}
}

func TestERDSchema(t *testing.T) {
	s, err := EntityRelationship.Build()
	if err != nil {
		t.Fatal(err)
	}

	tables := 0
	for _, sh := range s.Shapes() {
		if sh.Kind == scene.EntityTable {
			tables++
		}
	}
	if tables != 8 {
		t.Errorf("tables = %d, want 8", tables)
	}

	for _, c := range s.Connectors() {
		if c.Decoration != scene.CrowsFoot {
			t.Errorf("%s -> %s is not a crow's-foot relationship", c.From.Shape, c.To.Shape)
		}
	}

	// Every foreign key names a table that links to this one.
	links := map[string]bool{}
	for _, c := range s.Connectors() {
		links[c.From.Shape+">"+c.To.Shape] = true
	}
	owners := map[string]string{"UserId": "users", "TermId": "terms", "CourseId": "courses", "CategoryId": "categories"}
	for _, sh := range s.Shapes() {
		for _, f := range sh.Fields {
			if f.Role != scene.ForeignKey {
				continue
			}
			owner := owners[f.Name]
			if !links[owner+">"+sh.ID] {
				t.Errorf("%s.%s has no relationship from %s", sh.ID, f.Name, owner)
			}
		}
	}

	terms, _ := s.Shape("terms")
	if want := scene.TableHeight(5); terms.Size.H != want {
		t.Errorf("terms height = %v, want %v", terms.Size.H, want)
	}
}

func TestGPASequenceMessages(t *testing.T) {
	s, err := GPASequence.Build()
	if err != nil {
		t.Fatal(err)
	}
	cs := s.Connectors()
	if len(cs) != 9 {
		t.Fatalf("messages = %d, want 9", len(cs))
	}
	if cs[5].Routing != scene.SelfLoop {
		t.Errorf("message 6 routing = %v, want self-loop", cs[5].Routing)
	}
	// Returns run right to left with the label above.
	ret := cs[4]
	from, _ := s.Anchor(ret.From)
	to, _ := s.Anchor(ret.To)
	if !(to.X < from.X) || ret.LabelSide != scene.LabelRight {
		t.Errorf("message 5 = %v -> %v side %v, want leftward with right label", from, to, ret.LabelSide)
	}
}

func TestNames(t *testing.T) {
	got := strings.Join(Names(), ",")
	if want := "architecture,csv-export-flow,erd,gpa-sequence,mvvm"; got != want {
		t.Errorf("Names() = %s, want %s", got, want)
	}
}

func ExampleFind() {
	d := Find("csv-export-flow")
	fmt.Println(d.Type, d.Description)
	// Output: flowchart Flowchart of the transcript CSV export
}
