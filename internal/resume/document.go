package resume

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultTitle 是新建文档的初始标题。
const DefaultTitle = "My Resume"

// NewEntryID 生成重复节条目的合成标识。
// 仅用于会话内寻址（按 ID 修改/删除），不会作为服务端主键持久化。
func NewEntryID() string {
	return uuid.NewString()
}

// NewDocument 构造带种子值的空文档：
// 教育与工作经历各预置一条空白条目（表单易用性），其余节为空切片。
func NewDocument() Document {
	return Document{
		Title:          DefaultTitle,
		PersonalInfo:   PersonalInfo{},
		Education:      []EducationEntry{{ID: NewEntryID()}},
		Skills:         []Skill{},
		Experience:     []ExperienceEntry{{ID: NewEntryID()}},
		Projects:       []ProjectEntry{},
		Certifications: []CertificationEntry{},
		TemplateLayout: DefaultTemplate,
	}
}

// Normalize 修复从旧版存储结构加载出的文档：
// 缺失的节回落到与新建文档相同的种子值，模板与标题兜底到默认值。
// 反序列化后调用一次，保证后续渲染不会因 nil 切片或空枚举出错。
func (d *Document) Normalize() {
	if strings.TrimSpace(d.Title) == "" {
		d.Title = DefaultTitle
	}
	d.TemplateLayout = ParseTemplate(string(d.TemplateLayout))

	if d.Education == nil {
		d.Education = []EducationEntry{{ID: NewEntryID()}}
	}
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{{ID: NewEntryID()}}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Projects == nil {
		d.Projects = []ProjectEntry{}
	}
	if d.Certifications == nil {
		d.Certifications = []CertificationEntry{}
	}

	for i := range d.Education {
		if d.Education[i].ID == "" {
			d.Education[i].ID = NewEntryID()
		}
	}
	for i := range d.Skills {
		if d.Skills[i].ID == "" {
			d.Skills[i].ID = NewEntryID()
		}
		d.Skills[i].Category = ParseSkillCategory(string(d.Skills[i].Category))
	}
	for i := range d.Experience {
		if d.Experience[i].ID == "" {
			d.Experience[i].ID = NewEntryID()
		}
	}
	for i := range d.Projects {
		if d.Projects[i].ID == "" {
			d.Projects[i].ID = NewEntryID()
		}
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
	for i := range d.Certifications {
		if d.Certifications[i].ID == "" {
			d.Certifications[i].ID = NewEntryID()
		}
	}
}

// Clone 返回文档的深拷贝，供快照与只读渲染使用。
func (d Document) Clone() Document {
	out := d
	out.Education = append([]EducationEntry(nil), d.Education...)
	out.Skills = append([]Skill(nil), d.Skills...)
	out.Experience = append([]ExperienceEntry(nil), d.Experience...)
	out.Projects = make([]ProjectEntry, len(d.Projects))
	for i, p := range d.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		out.Projects[i] = p
	}
	out.Certifications = append([]CertificationEntry(nil), d.Certifications...)
	return out
}

// SetField 更新教育条目的单个命名字段，其余字段保持不变。
func (e *EducationEntry) SetField(field, value string) error {
	switch field {
	case "institution":
		e.Institution = value
	case "degree":
		e.Degree = value
	case "field":
		e.Field = value
	case "start_date":
		e.StartDate = value
	case "end_date":
		e.EndDate = value
	case "gpa":
		e.GPA = value
	default:
		return fmt.Errorf("unknown education field %q", field)
	}
	return nil
}

// SetField 更新工作经历条目的单个命名字段。
// current 字段接受 "true"/"false" 字符串。
func (e *ExperienceEntry) SetField(field, value string) error {
	switch field {
	case "company":
		e.Company = value
	case "position":
		e.Position = value
	case "location":
		e.Location = value
	case "start_date":
		e.StartDate = value
	case "end_date":
		e.EndDate = value
	case "current":
		e.Current = strings.EqualFold(strings.TrimSpace(value), "true")
	case "description":
		e.Description = value
	default:
		return fmt.Errorf("unknown experience field %q", field)
	}
	return nil
}

// SetField 更新项目条目的单个命名字段。
// technologies 字段接受逗号分隔列表。
func (p *ProjectEntry) SetField(field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "description":
		p.Description = value
	case "technologies":
		parts := strings.Split(value, ",")
		techs := make([]string, 0, len(parts))
		for _, part := range parts {
			if t := strings.TrimSpace(part); t != "" {
				techs = append(techs, t)
			}
		}
		p.Technologies = techs
	case "link":
		p.Link = value
	default:
		return fmt.Errorf("unknown project field %q", field)
	}
	return nil
}

// SetField 更新证书条目的单个命名字段。
func (c *CertificationEntry) SetField(field, value string) error {
	switch field {
	case "name":
		c.Name = value
	case "issuer":
		c.Issuer = value
	case "date":
		c.Date = value
	default:
		return fmt.Errorf("unknown certification field %q", field)
	}
	return nil
}

// SetField 更新个人信息块的单个命名字段。
func (p *PersonalInfo) SetField(field, value string) error {
	switch field {
	case "full_name":
		p.FullName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedin":
		p.LinkedIn = value
	case "website":
		p.Website = value
	case "summary":
		p.Summary = value
	default:
		return fmt.Errorf("unknown personal info field %q", field)
	}
	return nil
}
