package catalog

import (
	"github.com/matzehuels/schematic/pkg/diagrams"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// EntityRelationship is the database schema. It models the corrected
// schema: users own terms, income, categories and expenses, and grades
// belong to courses.
var EntityRelationship = &Diagram{
	Name:        "erd",
	Type:        TypeERD,
	Description: "Entity relationship diagram of the database schema",
	Build:       buildERD,
}

func buildERD() (*scene.Scene, error) {
	pk, fk, f := scene.PK, scene.FK, scene.F
	table := func(id, name string, x, y float64, fields ...scene.Field) diagrams.Table {
		return diagrams.Table{ID: id, Name: name, Center: geom.Pt(x, y), Fields: fields}
	}
	rel := func(from string, fa geom.Anchor, to string, ta geom.Anchor) diagrams.Relationship {
		return diagrams.Relationship{From: from, FromAnchor: fa, To: to, ToAnchor: ta}
	}

	return diagrams.ERD(diagrams.ERDDiagram{
		Header: diagrams.Header{
			Title:     "Student Progress Tracker - Entity Relationship Diagram",
			Canvas:    geom.Size{W: 16, H: 11},
			TitleSize: 18,
			Legend: &scene.Legend{
				Origin: geom.Pt(0.6, 1.2),
				Entries: []scene.LegendEntry{
					{Swatch: scene.SwatchFilled, Color: styles.Red, Text: "PK: Primary Key"},
					{Swatch: scene.SwatchFilled, Color: styles.Orange, Text: "FK: Foreign Key"},
					{Swatch: scene.SwatchLine, Color: styles.Gray, Text: "1:M One-to-Many Relationship"},
				},
			},
		},
		TableColor: styles.Blue,
		LineColor:  styles.Gray,
		Tables: []diagrams.Table{
			table("users", "Users", 2, 7.5,
				pk("UserId"), f("Email"), f("Name"), f("CreatedAt"), f("UpdatedAt")),
			table("terms", "Terms", 6, 7.5,
				pk("TermId"), fk("UserId"), f("Title"), f("StartDate"), f("EndDate")),
			table("courses", "Courses", 10, 7.5,
				pk("CourseId"), fk("TermId"), f("Title"), f("Status"), f("InstructorName"),
				f("InstructorPhone"), f("InstructorEmail"), f("StartDate"), f("EndDate"), f("Notes")),
			table("assessments", "Assessments", 14, 7.5,
				pk("AssessmentId"), fk("CourseId"), f("Name"), f("Type"), f("StartDate"), f("DueDate")),
			table("income", "Income", 2, 3.2,
				pk("IncomeId"), fk("UserId"), f("Source"), f("Amount"), f("Date")),
			table("categories", "Categories", 5.5, 3.2,
				pk("CategoryId"), fk("UserId"), f("Name"), f("IsCustom")),
			table("expenses", "Expenses", 9, 3.2,
				pk("ExpenseId"), fk("UserId"), fk("CategoryId"), f("Description"), f("Amount"), f("Date")),
			table("grades", "Grades", 13, 3.2,
				pk("GradeId"), fk("CourseId"), f("LetterGrade"), f("Percentage"), f("CreditHours")),
		},
		Relations: []diagrams.Relationship{
			rel("users", geom.Right, "terms", geom.Left),
			rel("terms", geom.Right, "courses", geom.Left),
			rel("courses", geom.Right, "assessments", geom.Left),
			rel("courses", geom.Bottom, "grades", geom.Top),
			rel("users", geom.Bottom, "income", geom.Top),
			rel("users", geom.BottomRight, "categories", geom.Top),
			rel("users", geom.BottomRight, "expenses", geom.Top),
			rel("categories", geom.Right, "expenses", geom.Left),
		},
	})
}
