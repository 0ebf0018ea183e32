package scene

import "github.com/matzehuels/schematic/pkg/geom"

// Kind selects how a shape is drawn and which anchors it supports.
type Kind int

const (
	// Terminator is a rounded "start/end" pill.
	Terminator Kind = iota
	// Process is a rounded rectangle, outlined only.
	Process
	// Decision is a rhombus inscribed in its bounding box.
	Decision
	// EntityTable is a header band with one row per field.
	EntityTable
	// ActorBox is a rounded participant box, optionally with a lifeline.
	ActorBox
	// Container is a translucent band grouping other shapes under a title.
	Container
	// Note is free-standing annotation text.
	Note
)

var kindNames = []string{"terminator", "process", "decision", "entity-table", "actor", "container", "note"}

func (k Kind) String() string { return enumName(kindNames, k) }

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool { return k >= Terminator && k <= Note }

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := parseEnum[Kind](kindNames, "shape kind", string(b))
	*k = v
	return err
}

// Role marks a table field as a key.
type Role int

const (
	Plain Role = iota
	PrimaryKey
	ForeignKey
)

var roleNames = []string{"", "pk", "fk"}

func (r Role) String() string { return enumName(roleNames, r) }

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	v, err := parseEnum[Role](roleNames, "field role", string(b))
	*r = v
	return err
}

// Field is one row of an entity table.
type Field struct {
	Name string `json:"name"`
	Role Role   `json:"role,omitempty"`
}

// Display returns the row text: "PK: id", "FK: user_id" or the bare name.
func (f Field) Display() string {
	switch f.Role {
	case PrimaryKey:
		return "PK: " + f.Name
	case ForeignKey:
		return "FK: " + f.Name
	}
	return f.Name
}

// PK and FK build key fields.
func PK(name string) Field { return Field{Name: name, Role: PrimaryKey} }
func FK(name string) Field { return Field{Name: name, Role: ForeignKey} }

// F builds a plain field.
func F(name string) Field { return Field{Name: name} }

// Entity table geometry.
const (
	DefaultHeaderHeight = 0.4
	DefaultRowHeight    = 0.35
)

// TableHeight is the height of an entity table with n fields.
func TableHeight(n int) float64 {
	return DefaultHeaderHeight + float64(n)*DefaultRowHeight
}

// Shape is a labeled node placed on the grid.
//
// Labels may contain newlines. Fields are only meaningful for EntityTable
// and Lifeline only for ActorBox, where it is the depth (Y) at which the
// dashed lifeline ends; nil means the actor has no lifeline.
type Shape struct {
	ID       string     `json:"id"`
	Kind     Kind       `json:"kind"`
	Center   geom.Point `json:"center"`
	Size     geom.Size  `json:"size"`
	Label    string     `json:"label,omitempty"`
	Style    StyleRef   `json:"style,omitempty"`
	Fields   []Field    `json:"fields,omitempty"`
	Lifeline *float64   `json:"lifeline,omitempty"`
}

// Box returns the bounding box of the shape.
func (s Shape) Box() geom.Box { return geom.BoxAt(s.Center, s.Size) }

// HasLifeline reports whether s is an actor with a lifeline.
func (s Shape) HasLifeline() bool { return s.Kind == ActorBox && s.Lifeline != nil }

// LifelineTo returns a Lifeline value ending at depth y.
func LifelineTo(y float64) *float64 { return &y }

func (s Shape) clone() Shape {
	if s.Fields != nil {
		s.Fields = append([]Field(nil), s.Fields...)
	}
	if s.Lifeline != nil {
		s.Lifeline = LifelineTo(*s.Lifeline)
	}
	return s
}
