package catalog

import (
	"github.com/matzehuels/schematic/pkg/diagrams"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// CSVExportFlow is the transcript export flowchart.
var CSVExportFlow = &Diagram{
	Name:        "csv-export-flow",
	Type:        TypeFlowchart,
	Description: "Flowchart of the transcript CSV export",
	Build:       buildCSVExportFlow,
}

func buildCSVExportFlow() (*scene.Scene, error) {
	const (
		top  = 11.5
		step = 0.9
	)
	check := top - 1.5*step
	branch := check - 1.5*step

	steps := []diagrams.Step{
		{ID: "start", Kind: diagrams.StepTerminal, Label: "START\nUser taps\n\"Export Transcript\"", Center: geom.Pt(5, top), Size: geom.Size{W: 2.2, H: 0.6}},
		{ID: "has-data", Kind: diagrams.StepDecision, Label: "Data\nexists?", Center: geom.Pt(5, check), Size: geom.Size{W: 1.8, H: 1.2}},
		{ID: "error", Kind: diagrams.StepProcess, Label: "Show error\ndialog", Center: geom.Pt(2.5, branch), Size: geom.Size{W: 1.8, H: 0.6}},
		{ID: "end-error", Kind: diagrams.StepTerminal, Label: "END", Center: geom.Pt(2.5, branch-step), Size: geom.Size{W: 1.5, H: 0.5}},
	}
	// The success path is a straight column of processes below the decision.
	column := []struct{ id, label string }{
		{"call-api", "ViewModel calls\nApiService.ExportTranscriptAsync()"},
		{"send-get", "ApiService sends\nGET /api/reports/transcript/csv"},
		{"query", "API queries database\nand formats CSV"},
		{"return-bytes", "API returns\nbyte array (CSV data)"},
		{"save-cache", "MAUI app saves to\nFileSystem.CacheDirectory"},
		{"filename", "Generate\ntimestamped filename"},
		{"share", "Open native\nShare dialog"},
	}
	y := branch
	for _, c := range column {
		steps = append(steps, diagrams.Step{ID: c.id, Kind: diagrams.StepProcess, Label: c.label, Center: geom.Pt(5, y), Size: geom.Size{W: 2.8, H: 0.6}})
		y -= step
	}
	steps = append(steps, diagrams.Step{ID: "end", Kind: diagrams.StepTerminal, Label: "END\nUser can email/\nsave/share CSV", Center: geom.Pt(5, y), Size: geom.Size{W: 2.2, H: 0.6}})

	down := func(from, to string) diagrams.Flow {
		return diagrams.Flow{From: scene.End{Shape: from, Anchor: geom.Bottom}, To: scene.End{Shape: to, Anchor: geom.Top}}
	}
	flows := []diagrams.Flow{
		down("start", "has-data"),
		{
			From:  scene.End{Shape: "has-data", Anchor: geom.Left},
			To:    scene.End{Shape: "error", Anchor: geom.Top},
			Label: "No",
			Side:  scene.LabelRight, // west of a down-left arrow
			Color: styles.Red,
		},
		down("error", "end-error"),
		{
			From:  scene.End{Shape: "has-data", Anchor: geom.Right},
			To:    scene.End{Shape: "call-api", Anchor: geom.Top},
			Label: "Yes",
			Side:  scene.LabelLeft,
			Color: styles.Green,
		},
	}
	for i := 1; i < len(column); i++ {
		flows = append(flows, down(column[i-1].id, column[i].id))
	}
	flows = append(flows, down("share", "end"))

	return diagrams.Flowchart(diagrams.FlowchartDiagram{
		Header: diagrams.Header{
			Title:  "CSV Export Flow - Transcript Export Process",
			Canvas: geom.Size{W: 10, H: 12.5},
			Legend: &scene.Legend{
				Origin:   geom.Pt(7.5, 10),
				Spacing:  0.4,
				FontSize: 8,
				Entries: []scene.LegendEntry{
					{Swatch: scene.SwatchFilled, Color: styles.Green, Text: "Start/End"},
					{Swatch: scene.SwatchOutlined, Color: styles.Blue, Text: "Process"},
					{Swatch: scene.SwatchDiamond, Color: styles.Red, Text: "Decision"},
				},
			},
		},
		Palette: diagrams.FlowPalette{
			Terminal: styles.Green,
			Process:  styles.Blue,
			Decision: styles.Red,
			Arrow:    styles.Gray,
		},
		Steps: steps,
		Flows: flows,
	})
}
