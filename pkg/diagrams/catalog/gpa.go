package catalog

import (
	"github.com/matzehuels/schematic/pkg/diagrams"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// GPASequence follows one GPA request from the user to the database and
// back.
var GPASequence = &Diagram{
	Name:        "gpa-sequence",
	Type:        TypeSequence,
	Description: "GPA calculation data flow as a sequence diagram",
	Build:       buildGPASequence,
}

func buildGPASequence() (*scene.Scene, error) {
	msg := func(from, to string, y float64, label string, kind diagrams.MessageKind) diagrams.Message {
		return diagrams.Message{From: from, To: to, Y: y, Label: label, Kind: kind}
	}

	return diagrams.Sequence(diagrams.SequenceDiagram{
		Header: diagrams.Header{
			Title:  "GPA Calculation - Data Flow Sequence Diagram",
			Canvas: geom.Size{W: 11, H: 10.5},
		},
		Top:         9.5,
		ActorSize:   geom.Size{W: 1.4, H: 0.6},
		LifelineEnd: 0.5,
		Color:       styles.Ink,
		Actors: []diagrams.Actor{
			{ID: "user", Label: "User", X: 2},
			{ID: "app", Label: "MAUI App\n(GPAViewModel)", X: 4},
			{ID: "apiservice", Label: "ApiService", X: 6},
			{ID: "grades", Label: "GradesController", X: 8},
			{ID: "db", Label: "Azure SQL\nDatabase", X: 10},
		},
		Messages: []diagrams.Message{
			msg("user", "app", 8.5, "1. User taps\n\"View GPA\"", diagrams.Call),
			msg("app", "apiservice", 7.5, "2. GetGpaAsync(termId)", diagrams.Call),
			msg("apiservice", "grades", 6.5, "3. GET /api/reports/gpa/{termId}", diagrams.Call),
			msg("grades", "db", 5.5, "4. Query via EF Core", diagrams.Call),
			msg("db", "grades", 4.5, "5. Return courses with\ngrades & credit hours", diagrams.Return),
			msg("grades", "grades", 3.5, "6. Calculate weighted GPA\nΣ(grade × credits) / Σ(credits)", diagrams.Self),
			msg("grades", "apiservice", 2.5, "7. JSON response\nwith GPA data", diagrams.Return),
			msg("apiservice", "app", 1.5, "8. Return GPA data", diagrams.Return),
			msg("app", "user", 0.8, "9. Display calculated GPA", diagrams.Return),
		},
	})
}
