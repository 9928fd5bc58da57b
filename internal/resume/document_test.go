package resume

import (
	"encoding/json"
	"testing"
)

func TestNewDocumentSeedsBlankEntries(t *testing.T) {
	doc := NewDocument()

	if doc.Title != DefaultTitle {
		t.Fatalf("title = %q, want %q", doc.Title, DefaultTitle)
	}
	if doc.TemplateLayout != TemplateModern {
		t.Fatalf("template = %q, want modern", doc.TemplateLayout)
	}
	if len(doc.Education) != 1 || doc.Education[0].Institution != "" {
		t.Fatalf("expected exactly one blank education entry, got %+v", doc.Education)
	}
	if len(doc.Experience) != 1 || doc.Experience[0].Company != "" {
		t.Fatalf("expected exactly one blank experience entry, got %+v", doc.Experience)
	}
	if doc.Education[0].ID == "" || doc.Experience[0].ID == "" {
		t.Fatal("seed entries must carry synthetic ids")
	}
	if len(doc.Skills) != 0 || len(doc.Projects) != 0 || len(doc.Certifications) != 0 {
		t.Fatal("skills/projects/certifications must be seeded empty")
	}
}

func TestParseTemplateFallsBackToDefault(t *testing.T) {
	cases := map[string]Template{
		"modern":       TemplateModern,
		"Minimal":      TemplateMinimal,
		" professional ": TemplateProfessional,
		"":             TemplateModern,
		"fancy":        TemplateModern,
	}
	for in, want := range cases {
		if got := ParseTemplate(in); got != want {
			t.Errorf("ParseTemplate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeRepairsLegacyShape(t *testing.T) {
	// 模拟旧版存储：缺少 skills/projects/certifications 字段，模板非法。
	raw := []byte(`{
		"title": "",
		"personal_info": {"full_name": "Ada"},
		"education": [{"institution": "MIT"}],
		"experience": null,
		"template_layout": "legacy"
	}`)

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc.Normalize()

	if doc.Title != DefaultTitle {
		t.Fatalf("title = %q, want default", doc.Title)
	}
	if doc.TemplateLayout != TemplateModern {
		t.Fatalf("template = %q, want modern fallback", doc.TemplateLayout)
	}
	if doc.Skills == nil || doc.Projects == nil || doc.Certifications == nil {
		t.Fatal("missing sections must be re-seeded, not nil")
	}
	if len(doc.Experience) != 1 || doc.Experience[0].ID == "" {
		t.Fatalf("experience must be re-seeded with one blank entry, got %+v", doc.Experience)
	}
	if doc.Education[0].ID == "" {
		t.Fatal("loaded entries without ids must be assigned one")
	}
	if doc.Education[0].Institution != "MIT" {
		t.Fatal("normalize must not touch populated fields")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := NewDocument()
	doc.PersonalInfo.FullName = "Grace Hopper"
	doc.PersonalInfo.Summary = "Rear admiral, compiler pioneer."
	doc.Education[0].Institution = "Yale"
	doc.Education[0].StartDate = "1930-09"
	doc.Skills = append(doc.Skills, Skill{ID: NewEntryID(), Name: "COBOL", Category: SkillTechnical})
	doc.Experience[0].Company = "US Navy"
	doc.Experience[0].Current = true
	doc.Projects = append(doc.Projects, ProjectEntry{
		ID:           NewEntryID(),
		Name:         "UNIVAC",
		Technologies: []string{"assembly"},
	})

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back.Normalize()

	again, err := json.Marshal(back)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(data) != string(again) {
		t.Fatalf("round trip changed content:\n%s\nvs\n%s", data, again)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := NewDocument()
	doc.Projects = append(doc.Projects, ProjectEntry{ID: "p1", Technologies: []string{"go"}})

	clone := doc.Clone()
	clone.Education[0].Institution = "changed"
	clone.Projects[0].Technologies[0] = "rust"

	if doc.Education[0].Institution == "changed" {
		t.Fatal("clone shares education backing array")
	}
	if doc.Projects[0].Technologies[0] == "rust" {
		t.Fatal("clone shares technologies backing array")
	}
}

func TestSetFieldUnknownField(t *testing.T) {
	var e ExperienceEntry
	if err := e.SetField("salary", "1"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := e.SetField("current", "TRUE"); err != nil {
		t.Fatalf("set current: %v", err)
	}
	if !e.Current {
		t.Fatal("current must parse case-insensitively")
	}
}
