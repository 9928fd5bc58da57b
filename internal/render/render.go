package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"resumeforge/internal/resume"
)

// PlaceholderName 在姓名为空时替代显示，渲染永不因缺失字段失败。
const PlaceholderName = "Your Name"

// SurfaceElementID 是每个模板根节点的 DOM id，导出管线按它截取画面。
const SurfaceElementID = "resume-root"

// FormatDate 是所有模板共享的日期格式化规则：
// 空串渲染为空；"YYYY-MM" 渲染为缩写月份加四位年份（如 "Mar 2022"）；
// 无法解析的值原样透出，绝不渲染成无效日期。
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2006")
}

// DateRange 渲染 "起 - 止" 区间；current 为 true 时结束侧固定为 "Present"。
func DateRange(start, end string, current bool) string {
	from := FormatDate(start)
	to := FormatDate(end)
	if current {
		to = "Present"
	}
	if from == "" && to == "" {
		return ""
	}
	return from + " - " + to
}

var templateFuncs = template.FuncMap{
	"formatDate": FormatDate,
	"dateRange":  DateRange,
	"join": func(items []string, sep string) string {
		return strings.Join(items, sep)
	},
}

var variants = map[resume.Template]*template.Template{
	resume.TemplateModern:       template.Must(template.New("modern").Funcs(templateFuncs).Parse(modernTemplate)),
	resume.TemplateMinimal:      template.Must(template.New("minimal").Funcs(templateFuncs).Parse(minimalTemplate)),
	resume.TemplateProfessional: template.Must(template.New("professional").Funcs(templateFuncs).Parse(professionalTemplate)),
}

// docView 在模板执行前预先算好各节的显隐，模板只做排版。
// 各变体只能在排列与装饰上不同，纳入哪些数据由这里统一决定。
type docView struct {
	resume.Document
	Name string
}

// ShowEducation 只有在教育节非空且首条目的学校名非空时才渲染，
// 避免种子空白行渲染出孤零零的小节标题。
func (v docView) ShowEducation() bool {
	return len(v.Education) > 0 && strings.TrimSpace(v.Education[0].Institution) != ""
}

// ShowExperience 同上，主键字段是公司名。
func (v docView) ShowExperience() bool {
	return len(v.Experience) > 0 && strings.TrimSpace(v.Experience[0].Company) != ""
}

func (v docView) ShowSkills() bool         { return len(v.Skills) > 0 }
func (v docView) ShowProjects() bool       { return len(v.Projects) > 0 }
func (v docView) ShowCertifications() bool { return len(v.Certifications) > 0 }

func (v docView) ShowSummary() bool {
	return strings.TrimSpace(v.PersonalInfo.Summary) != ""
}

func newDocView(doc resume.Document) docView {
	name := strings.TrimSpace(doc.PersonalInfo.FullName)
	if name == "" {
		name = PlaceholderName
	}
	return docView{Document: doc, Name: name}
}

// Render 将文档投影为所选模板变体的完整 HTML 页面。
// 未识别的变体取默认模板；对任何结构完好的文档都不应返回错误。
func Render(doc resume.Document) (string, error) {
	tmpl, ok := variants[doc.TemplateLayout]
	if !ok {
		tmpl = variants[resume.DefaultTemplate]
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDocView(doc)); err != nil {
		return "", fmt.Errorf("render template %q: %w", doc.TemplateLayout, err)
	}
	return buf.String(), nil
}
