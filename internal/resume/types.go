package resume

import "strings"

// Template 枚举可用的简历模板变体。
type Template string

const (
	TemplateModern       Template = "modern"
	TemplateMinimal      Template = "minimal"
	TemplateProfessional Template = "professional"
)

// DefaultTemplate 在模板字段缺失或取值非法时兜底。
const DefaultTemplate = TemplateModern

// ParseTemplate 将任意字符串解析为合法模板，未识别的值回落到默认模板。
func ParseTemplate(s string) Template {
	switch Template(strings.ToLower(strings.TrimSpace(s))) {
	case TemplateModern:
		return TemplateModern
	case TemplateMinimal:
		return TemplateMinimal
	case TemplateProfessional:
		return TemplateProfessional
	default:
		return DefaultTemplate
	}
}

// SkillCategory 是技能分类的封闭枚举。
type SkillCategory string

const (
	SkillTechnical SkillCategory = "technical"
	SkillSoft      SkillCategory = "soft"
	SkillLanguage  SkillCategory = "language"
)

// ParseSkillCategory 解析技能分类，未识别的值回落到 technical。
func ParseSkillCategory(s string) SkillCategory {
	switch SkillCategory(strings.ToLower(strings.TrimSpace(s))) {
	case SkillSoft:
		return SkillSoft
	case SkillLanguage:
		return SkillLanguage
	default:
		return SkillTechnical
	}
}

// PersonalInfo 是单例的个人信息块，所有字段都是展示用字符串。
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// EducationEntry 表示一段教育经历。
// ID 是会话内寻址用的合成标识，不作为持久化主键。
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa,omitempty"`
}

// Skill 表示一条 (名称, 分类) 技能。
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

// ExperienceEntry 表示一段工作经历。
// Current 为 true 时渲染端用 "Present" 替换结束日期。
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ProjectEntry 表示一个项目条目。
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

// CertificationEntry 表示一条证书记录。
type CertificationEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Document 是一份简历在内存中的根记录。
// 各重复节的切片顺序即展示顺序。
type Document struct {
	Title          string               `json:"title"`
	PersonalInfo   PersonalInfo         `json:"personal_info"`
	Education      []EducationEntry     `json:"education"`
	Skills         []Skill              `json:"skills"`
	Experience     []ExperienceEntry    `json:"experience"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	TemplateLayout Template             `json:"template_layout"`
}
