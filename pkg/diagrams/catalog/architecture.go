package catalog

import (
	"github.com/matzehuels/schematic/pkg/diagrams"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Architecture is the three-tier architecture overview.
var Architecture = &Diagram{
	Name:        "architecture",
	Type:        TypeLayered,
	Description: "Three-tier architecture: MAUI client, Web API, SQL database",
	Build:       buildArchitecture,
}

func buildArchitecture() (*scene.Scene, error) {
	const layerSize = 16.0

	component := func(id, label string, x, y, w, h, pt float64) diagrams.Component {
		return diagrams.Component{ID: id, Label: label, Center: geom.Pt(x, y), Size: geom.Size{W: w, H: h}, FontSize: pt}
	}
	layer := func(id, title string, minY float64, c scene.Color, comps ...diagrams.Component) diagrams.Layer {
		return diagrams.Layer{
			ID:         id,
			Title:      title,
			Box:        geom.Box{Min: geom.Pt(1, minY), Max: geom.Pt(9, minY+2.2)},
			Color:      c,
			Alpha:      0.2,
			TitleSize:  layerSize,
			Components: comps,
		}
	}
	link := func(from, to, label string) diagrams.Link {
		return diagrams.Link{
			From:     scene.End{Shape: from, Anchor: geom.Bottom},
			To:       scene.End{Shape: to, Anchor: geom.Top},
			Label:    label,
			Side:     scene.LabelLeft, // east of a downward arrow
			Color:    styles.Slate,
			Width:    2.5,
			FontSize: 11,
		}
	}

	return diagrams.Layered(diagrams.LayeredDiagram{
		Header: diagrams.Header{
			Title:     "Student Progress Tracker - Three-Tier Architecture",
			Canvas:    geom.Size{W: 10, H: 10},
			TitleSize: 18,
		},
		Layers: []diagrams.Layer{
			layer("client", ".NET MAUI Mobile Client (iOS/Android)", 7, styles.SkyBlue,
				component("viewmodels", "ViewModels\n(MVVM pattern)", 2.5, 8.2, 1.6, 0.6, 10),
				component("views", "Views\n(XAML pages)", 5, 8.2, 1.6, 0.6, 10),
				component("apiservice", "ApiService\n(centralized HTTP client)", 7.5, 8.2, 1.6, 0.6, 10),
			),
			layer("api", "ASP.NET Core Web API (Azure App Service)", 4.2, styles.SteelBlue,
				component("controllers", "Controllers\n(Terms, Courses,\nAssessments, Grades,\nIncome, Expenses,\nReports)", 2.5, 5.35, 1.6, 1.05, 9),
				component("models", "Models\n(Term, Course,\nAssessment, Grade,\nIncome, Expense)", 5, 5.35, 1.6, 1.05, 9),
				component("dbcontext", "DbContext\n(Entity Framework Core)", 7.5, 5.35, 1.6, 1.05, 9),
			),
			layer("database", "Azure SQL Database", 1.2, styles.Gray,
				component("tables", "Tables:\nTerms, Courses,\nAssessments,\nGrades, Income,\nExpenses", 5, 2.45, 2.4, 1.05, 10),
			),
		},
		Links: []diagrams.Link{
			link("client", "api", "HTTPS/JSON\nRESTful API"),
			link("api", "database", "Entity Framework\nCore ORM"),
		},
	})
}
