package render

import (
	"strings"
	"testing"

	"resumeforge/internal/resume"
)

var allVariants = []resume.Template{
	resume.TemplateModern,
	resume.TemplateMinimal,
	resume.TemplateProfessional,
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"  ":      "",
		"2022-03": "Mar 2022",
		"2022-01": "Jan 2022",
		"1999-12": "Dec 1999",
		"garbage": "garbage",
	}
	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDateRangeCurrentOverridesEndDate(t *testing.T) {
	got := DateRange("2022-01", "2023-06", true)
	if got != "Jan 2022 - Present" {
		t.Fatalf("DateRange = %q, want %q", got, "Jan 2022 - Present")
	}
}

func TestEmptyDocumentShowsPlaceholderAndNoSectionHeaders(t *testing.T) {
	doc := resume.NewDocument()

	for _, variant := range allVariants {
		doc.TemplateLayout = variant
		html, err := Render(doc)
		if err != nil {
			t.Fatalf("%s: render: %v", variant, err)
		}
		if !strings.Contains(html, PlaceholderName) {
			t.Errorf("%s: missing placeholder name", variant)
		}
		// 种子空白行不能渲染出小节标题。
		for _, header := range []string{"Experience", "Education", "Skills", "Projects", "Certifications"} {
			if strings.Contains(html, ">"+header+"<") {
				t.Errorf("%s: empty document rendered %s header", variant, header)
			}
		}
		if !strings.Contains(html, `id="resume-root"`) {
			t.Errorf("%s: missing surface root element", variant)
		}
	}
}

func TestAllVariantsShareDateFormatting(t *testing.T) {
	doc := resume.NewDocument()
	doc.PersonalInfo.FullName = "Test Person"
	doc.Experience[0] = resume.ExperienceEntry{
		ID:        resume.NewEntryID(),
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: "2022-01",
		EndDate:   "",
		Current:   true,
	}

	for _, variant := range allVariants {
		doc.TemplateLayout = variant
		html, err := Render(doc)
		if err != nil {
			t.Fatalf("%s: render: %v", variant, err)
		}
		if !strings.Contains(html, "Jan 2022 - Present") {
			t.Errorf("%s: expected %q in output", variant, "Jan 2022 - Present")
		}
	}
}

func TestSectionGateSkipsSeededBlankRows(t *testing.T) {
	doc := resume.NewDocument()
	doc.PersonalInfo.FullName = "Gate Check"
	// 首条为空白种子行，第二条有真实内容：按规则整节仍不渲染。
	doc.Experience = append(doc.Experience, resume.ExperienceEntry{
		ID:      resume.NewEntryID(),
		Company: "Filled Later",
	})

	html, err := Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, ">Experience<") {
		t.Fatal("experience section must stay hidden while first entry is blank")
	}

	doc.Experience[0].Company = "Acme"
	html, err = Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, ">Experience<") {
		t.Fatal("experience section must appear once first entry has content")
	}
}

func TestUnknownVariantFallsBackToModern(t *testing.T) {
	doc := resume.NewDocument()
	doc.TemplateLayout = resume.Template("spacey")

	html, err := Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	modern, err := Render(func() resume.Document {
		d := doc
		d.TemplateLayout = resume.TemplateModern
		return d
	}())
	if err != nil {
		t.Fatalf("render modern: %v", err)
	}
	if html != modern {
		t.Fatal("unknown variant must resolve to the default template")
	}
}

func TestRenderIncludesAllNonEmptySections(t *testing.T) {
	doc := resume.NewDocument()
	doc.PersonalInfo = resume.PersonalInfo{
		FullName: "Full Doc",
		Email:    "full@example.com",
		Summary:  "A complete record.",
	}
	doc.Education[0] = resume.EducationEntry{ID: "e1", Institution: "State U", Degree: "BS", Field: "CS", StartDate: "2015-09", EndDate: "2019-06", GPA: "3.9"}
	doc.Experience[0] = resume.ExperienceEntry{ID: "x1", Company: "Acme", Position: "Dev", StartDate: "2019-07", EndDate: "2021-01", Description: "Built things."}
	doc.Skills = []resume.Skill{{ID: "s1", Name: "Go", Category: resume.SkillTechnical}}
	doc.Projects = []resume.ProjectEntry{{ID: "p1", Name: "Sidecar", Description: "Infra tool", Technologies: []string{"Go", "Redis"}}}
	doc.Certifications = []resume.CertificationEntry{{ID: "c1", Name: "CKA", Issuer: "CNCF", Date: "2021-03"}}

	for _, variant := range allVariants {
		doc.TemplateLayout = variant
		html, err := Render(doc)
		if err != nil {
			t.Fatalf("%s: render: %v", variant, err)
		}
		for _, want := range []string{
			"Full Doc", "full@example.com", "A complete record.",
			"State U", "Sep 2015 - Jun 2019", "3.9",
			"Acme", "Jul 2019 - Jan 2021", "Built things.",
			"Go", "Sidecar", "CKA", "CNCF", "Mar 2021",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("%s: output missing %q", variant, want)
			}
		}
	}
}
