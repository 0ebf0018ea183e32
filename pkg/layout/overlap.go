package layout

import (
	"fmt"

	"github.com/matzehuels/schematic/pkg/scene"
)

// overlapWarnings reports pairs of shapes whose bounding boxes partially
// overlap. A box fully inside another is treated as grouping, not a
// collision, so components drawn on a container band stay quiet.
func overlapWarnings(shapes []scene.Shape) []Warning {
	var out []Warning
	for i := 0; i < len(shapes); i++ {
		a := shapes[i].Box()
		for j := i + 1; j < len(shapes); j++ {
			bx := shapes[j].Box()
			if !a.Overlaps(bx) || a.Contains(bx) || bx.Contains(a) {
				continue
			}
			out = append(out, Warning{
				Code:    WarnOverlap,
				Shapes:  []string{shapes[i].ID, shapes[j].ID},
				Message: fmt.Sprintf("shapes %q and %q partially overlap", shapes[i].ID, shapes[j].ID),
			})
		}
	}
	return out
}
