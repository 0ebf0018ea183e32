package catalog

import (
	"github.com/matzehuels/schematic/pkg/diagrams"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// MVVM shows how pages, view models and services of the app relate.
var MVVM = &Diagram{
	Name:        "mvvm",
	Type:        TypeLayered,
	Description: "MVVM pattern: views, view models and the model/service layer",
	Build:       buildMVVM,
}

func buildMVVM() (*scene.Scene, error) {
	box := func(id, label string, x, y, w, h, pt float64) diagrams.Component {
		return diagrams.Component{ID: id, Label: label, Center: geom.Pt(x, y), Size: geom.Size{W: w, H: h}, FontSize: pt}
	}
	layer := func(id, title string, minY, h float64, c scene.Color, comps ...diagrams.Component) diagrams.Layer {
		return diagrams.Layer{
			ID:         id,
			Title:      title,
			Box:        geom.Box{Min: geom.Pt(0.5, minY), Max: geom.Pt(9.5, minY+h)},
			Color:      c,
			Components: comps,
		}
	}
	down := func(from, to string) (scene.End, scene.End) {
		return scene.End{Shape: from, Anchor: geom.Bottom}, scene.End{Shape: to, Anchor: geom.Top}
	}

	var links []diagrams.Link
	for _, pair := range [][2]string{{"gpa-page", "gpa-vm"}, {"terms-page", "terms-vm"}, {"courses-page", "courses-vm"}} {
		from, to := down(pair[0], pair[1])
		links = append(links, diagrams.Link{From: from, To: to, Heads: scene.HeadBoth, Color: styles.Orange, Width: 2.5})
	}
	for _, pair := range [][3]string{{"gpa-vm", "apiservice", ""}, {"terms-vm", "models", "Calls"}, {"courses-vm", "services", ""}} {
		from, to := down(pair[0], pair[1])
		links = append(links, diagrams.Link{
			From:     from,
			To:       to,
			Label:    pair[2],
			Side:     scene.LabelLeft,
			Color:    styles.Gray,
			Width:    2,
			FontSize: 9,
		})
	}

	return diagrams.Layered(diagrams.LayeredDiagram{
		Header: diagrams.Header{
			Title:  "Student Progress Tracker - MVVM Pattern Architecture",
			Canvas: geom.Size{W: 10, H: 10},
			Legend: &scene.Legend{
				Origin:   geom.Pt(0.7, 1.3),
				Spacing:  0.25,
				FontSize: 8,
				Entries: []scene.LegendEntry{
					{Swatch: scene.SwatchFilled, Color: styles.Blue, Text: "View Layer"},
					{Swatch: scene.SwatchFilled, Color: styles.Purple, Text: "ViewModel Layer"},
					{Swatch: scene.SwatchFilled, Color: styles.Red, Text: "Model/Service Layer"},
					{Swatch: scene.SwatchLine, Color: styles.Orange, Text: "Two-Way Data Binding"},
					{Swatch: scene.SwatchLine, Color: styles.Gray, Text: "Service Calls"},
				},
			},
		},
		Layers: []diagrams.Layer{
			layer("view-layer", "View Layer (XAML Pages)", 7.5, 2, styles.Blue,
				box("gpa-page", "GPAPage.xaml\n(binds to\nGPAViewModel)", 2, 8.2, 1.4, 0.7, 9),
				box("terms-page", "TermsPage.xaml\n(binds to\nTermsViewModel)", 5, 8.2, 1.4, 0.7, 9),
				box("courses-page", "CoursesPage.xaml\n(binds to\nCoursesViewModel)", 8, 8.2, 1.4, 0.7, 9),
			),
			layer("viewmodel-layer", "ViewModel Layer (Business Logic & Commands)", 4.5, 2.5, styles.Purple,
				box("gpa-vm", "GPAViewModel\n• ExportGpaReportCommand\n• ExportTranscriptCommand", 2, 5.6, 1.9, 0.8, 8.5),
				box("terms-vm", "TermsViewModel\n• LoadTermsCommand\n• AddTermCommand", 5, 5.6, 1.9, 0.8, 8.5),
				box("courses-vm", "CoursesViewModel\n• LoadCoursesCommand\n• DeleteCourseCommand", 8, 5.6, 1.9, 0.8, 8.5),
			),
			layer("model-layer", "Model/Service Layer", 1.5, 2.5, styles.Red,
				box("apiservice", "ApiService\n(HTTP\nCommunication)", 2.5, 2.7, 1.4, 0.7, 9),
				box("models", "Models\n(Term, Course,\nAssessment, etc.)", 5, 2.7, 1.4, 0.7, 9),
				box("services", "Services\n(Data Access)", 7.5, 2.7, 1.4, 0.7, 9),
			),
		},
		Links: links,
		Notes: []diagrams.Note{
			{
				ID:       "binding-note",
				Text:     "Two-Way\nData Binding",
				Center:   geom.Pt(2.75, 7.25),
				Size:     geom.Size{W: 1, H: 0.4},
				Color:    styles.Orange,
				FontSize: 8,
			},
			{
				ID:       "observable-note",
				Text:     "Observable\nProperties\nUpdate",
				Center:   geom.Pt(9, 6.45),
				Size:     geom.Size{W: 0.9, H: 0.6},
				Color:    styles.Purple,
				Border:   styles.Purple,
				FontSize: 8,
			},
		},
	})
}
