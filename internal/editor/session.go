package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"resumeforge/internal/database"
	"resumeforge/internal/resume"
)

// Step 是编辑流程中的一个命名步骤。
type Step string

const (
	StepPersonal       Step = "personal"
	StepEducation      Step = "education"
	StepSkills         Step = "skills"
	StepExperience     Step = "experience"
	StepProjects       Step = "projects"
	StepCertifications Step = "certifications"
	StepPreview        Step = "preview"
)

// Steps 按展示顺序列出全部步骤。
var Steps = []Step{
	StepPersonal,
	StepEducation,
	StepSkills,
	StepExperience,
	StepProjects,
	StepCertifications,
	StepPreview,
}

// ParseStep 校验步骤名。
func ParseStep(s string) (Step, error) {
	candidate := Step(strings.ToLower(strings.TrimSpace(s)))
	for _, step := range Steps {
		if step == candidate {
			return step, nil
		}
	}
	return "", fmt.Errorf("unknown step %q", s)
}

// Section 标识可重复编辑的简历小节。
type Section string

const (
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
)

// ParseSection 校验小节名。
func ParseSection(s string) (Section, error) {
	switch Section(strings.ToLower(strings.TrimSpace(s))) {
	case SectionEducation:
		return SectionEducation, nil
	case SectionExperience:
		return SectionExperience, nil
	case SectionProjects:
		return SectionProjects, nil
	case SectionCertifications:
		return SectionCertifications, nil
	default:
		return "", fmt.Errorf("unknown section %q", s)
	}
}

var (
	// ErrEntryNotFound 表示给定合成标识在小节中不存在。
	ErrEntryNotFound = errors.New("entry not found")
	// ErrBlankSkill 表示技能名去空白后为空，新增被拒绝。
	ErrBlankSkill = errors.New("skill name is blank")
	// ErrImplicitSave 包裹导出前隐式保存的失败，便于与普通保存失败区分。
	ErrImplicitSave = errors.New("implicit save before export failed")
)

// ExportRequester 把"导出当前简历"交给外部执行（入队等）。
type ExportRequester interface {
	RequestExport(ctx context.Context, resumeID, ownerID uint) error
}

// Session 承载一份简历的多步编辑过程。
// 所有字段编辑都是纯内存操作，显式 Save 之前不产生任何网络副作用。
// 方法内部用互斥锁串行化，对应 UI 运行时一次只处理一个交互回调的语义。
type Session struct {
	mu sync.Mutex

	id       string
	ownerID  uint
	recordID uint // 首次保存前为 0
	doc      resume.Document
	step     Step

	// 技能输入的暂存区：提交成功后清空。
	skillDraftName     string
	skillDraftCategory resume.SkillCategory

	store    database.ResumeStore
	exporter ExportRequester

	// 保存合并：同一会话并发触发的保存收敛为一次持久化，
	// 防止首次保存的双击竞态创建两条记录。
	saveGroup singleflight.Group
}

// Snapshot 是会话状态的只读快照。
type Snapshot struct {
	SessionID string
	RecordID  uint
	Step      Step
	Document  resume.Document
}

// Snapshot 返回会话当前状态的深拷贝。
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SessionID: s.id,
		RecordID:  s.recordID,
		Step:      s.step,
		Document:  s.doc.Clone(),
	}
}

// ID 返回会话标识。
func (s *Session) ID() string { return s.id }

// OwnerID 返回持有会话的用户。
func (s *Session) OwnerID() uint { return s.ownerID }

// Advance 前进到下一步，已在最后一步时保持不变。
func (s *Session) Advance() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, step := range Steps {
		if step == s.step && i < len(Steps)-1 {
			s.step = Steps[i+1]
			break
		}
	}
	return s.step
}

// Retreat 回退到上一步，已在第一步时保持不变。
func (s *Session) Retreat() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, step := range Steps {
		if step == s.step && i > 0 {
			s.step = Steps[i-1]
			break
		}
	}
	return s.step
}

// Jump 直接切换到任意步骤，不做任何校验门禁。
func (s *Session) Jump(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}

// SetTitle 更新简历标题。
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Title = title
}

// SetTemplate 切换模板变体，未识别的值落到默认模板。
func (s *Session) SetTemplate(layout string) resume.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.TemplateLayout = resume.ParseTemplate(layout)
	return s.doc.TemplateLayout
}

// UpdatePersonal 更新个人信息块的单个字段。
func (s *Session) UpdatePersonal(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.PersonalInfo.SetField(field, value)
}

// AppendEntry 在小节末尾追加一条空白条目并返回其合成标识。
func (s *Session) AppendEntry(section Section) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := resume.NewEntryID()
	switch section {
	case SectionEducation:
		s.doc.Education = append(s.doc.Education, resume.EducationEntry{ID: id})
	case SectionExperience:
		s.doc.Experience = append(s.doc.Experience, resume.ExperienceEntry{ID: id})
	case SectionProjects:
		s.doc.Projects = append(s.doc.Projects, resume.ProjectEntry{ID: id, Technologies: []string{}})
	case SectionCertifications:
		s.doc.Certifications = append(s.doc.Certifications, resume.CertificationEntry{ID: id})
	default:
		return "", fmt.Errorf("unknown section %q", section)
	}
	return id, nil
}

// UpdateEntry 更新小节中指定条目的单个字段，其余条目保持原位不动。
func (s *Session) UpdateEntry(section Section, entryID, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch section {
	case SectionEducation:
		for i := range s.doc.Education {
			if s.doc.Education[i].ID == entryID {
				return s.doc.Education[i].SetField(field, value)
			}
		}
	case SectionExperience:
		for i := range s.doc.Experience {
			if s.doc.Experience[i].ID == entryID {
				return s.doc.Experience[i].SetField(field, value)
			}
		}
	case SectionProjects:
		for i := range s.doc.Projects {
			if s.doc.Projects[i].ID == entryID {
				return s.doc.Projects[i].SetField(field, value)
			}
		}
	case SectionCertifications:
		for i := range s.doc.Certifications {
			if s.doc.Certifications[i].ID == entryID {
				return s.doc.Certifications[i].SetField(field, value)
			}
		}
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return ErrEntryNotFound
}

// RemoveEntry 按合成标识删除条目，保持其余条目顺序。
// 删除最后一条是允许的，结果是空小节。
func (s *Session) RemoveEntry(section Section, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch section {
	case SectionEducation:
		for i := range s.doc.Education {
			if s.doc.Education[i].ID == entryID {
				s.doc.Education = append(s.doc.Education[:i], s.doc.Education[i+1:]...)
				return nil
			}
		}
	case SectionExperience:
		for i := range s.doc.Experience {
			if s.doc.Experience[i].ID == entryID {
				s.doc.Experience = append(s.doc.Experience[:i], s.doc.Experience[i+1:]...)
				return nil
			}
		}
	case SectionProjects:
		for i := range s.doc.Projects {
			if s.doc.Projects[i].ID == entryID {
				s.doc.Projects = append(s.doc.Projects[:i], s.doc.Projects[i+1:]...)
				return nil
			}
		}
	case SectionCertifications:
		for i := range s.doc.Certifications {
			if s.doc.Certifications[i].ID == entryID {
				s.doc.Certifications = append(s.doc.Certifications[:i], s.doc.Certifications[i+1:]...)
				return nil
			}
		}
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	return ErrEntryNotFound
}

// StageSkill 把候选技能放入暂存区。
func (s *Session) StageSkill(name string, category resume.SkillCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skillDraftName = name
	s.skillDraftCategory = category
}

// AddSkill 提交暂存的技能：名称去空白后为空则拒绝；
// 成功后追加到技能列表并清空暂存区。
func (s *Session) AddSkill() (resume.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(s.skillDraftName)
	if name == "" {
		return resume.Skill{}, ErrBlankSkill
	}

	skill := resume.Skill{
		ID:       resume.NewEntryID(),
		Name:     name,
		Category: resume.ParseSkillCategory(string(s.skillDraftCategory)),
	}
	s.doc.Skills = append(s.doc.Skills, skill)
	s.skillDraftName = ""
	s.skillDraftCategory = resume.SkillTechnical
	return skill, nil
}

// RemoveSkill 按合成标识删除技能。
func (s *Session) RemoveSkill(entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Skills {
		if s.doc.Skills[i].ID == entryID {
			s.doc.Skills = append(s.doc.Skills[:i], s.doc.Skills[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// Load 按标识加载已有简历并整体替换内存中的文档。
// 失败时会话状态保持不变。
func (s *Session) Load(ctx context.Context, recordID uint) error {
	s.mu.Lock()
	store := s.store
	ownerID := s.ownerID
	s.mu.Unlock()

	record, err := store.GetByID(ctx, recordID, ownerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordID = record.ID
	s.doc = record.Document
	return nil
}

// Save 把整份文档写入持久化网关。
// 首次保存创建记录并留存其标识，之后均为整体覆盖更新。
// 同一会话并发触发的保存通过 singleflight 合并为一次。
func (s *Session) Save(ctx context.Context) (*database.ResumeRecord, error) {
	result, err, _ := s.saveGroup.Do("save", func() (any, error) {
		// 挂起点之后不复用旧引用：进了临界区再取当前字段。
		s.mu.Lock()
		doc := s.doc.Clone()
		recordID := s.recordID
		store := s.store
		ownerID := s.ownerID
		s.mu.Unlock()

		var record *database.ResumeRecord
		var err error
		if recordID == 0 {
			record, err = store.Create(ctx, ownerID, doc)
		} else {
			record, err = store.Update(ctx, recordID, ownerID, doc)
		}
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.recordID = record.ID
		s.mu.Unlock()
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*database.ResumeRecord), nil
}

// Export 请求导出当前简历。
// 前置条件是记录已有持久化标识；没有则先隐式保存，
// 隐式保存失败用 ErrImplicitSave 区分于其他失败。
func (s *Session) Export(ctx context.Context) (uint, error) {
	s.mu.Lock()
	recordID := s.recordID
	s.mu.Unlock()

	if recordID == 0 {
		record, err := s.Save(ctx)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrImplicitSave, err)
		}
		recordID = record.ID
	}

	if err := s.exporter.RequestExport(ctx, recordID, s.ownerID); err != nil {
		return 0, err
	}
	return recordID, nil
}
