package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumeforge/internal/resume"
)

// ErrResumeNotFound 表示记录不存在或不属于请求方。
var ErrResumeNotFound = errors.New("resume not found")

// ResumeRecord 是持久化网关返回的记录：文档内容加服务端元数据。
type ResumeRecord struct {
	ID           uint
	OwnerID      uint
	Status       string
	Document     resume.Document
	PdfObjectKey string
	PdfFileName  string
	PdfFileSize  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResumeStore 是简历记录的持久化网关。
// 所有读写都以 ownerID 为作用域，跨用户访问一律返回 ErrResumeNotFound。
type ResumeStore interface {
	Create(ctx context.Context, ownerID uint, doc resume.Document) (*ResumeRecord, error)
	Update(ctx context.Context, id, ownerID uint, doc resume.Document) (*ResumeRecord, error)
	List(ctx context.Context, ownerID uint) ([]ResumeRecord, error)
	GetByID(ctx context.Context, id, ownerID uint) (*ResumeRecord, error)
	Delete(ctx context.Context, id, ownerID uint) error
	// SetArtifact 记录导出制品的位置与大小，并把状态置为 completed。
	SetArtifact(ctx context.Context, id uint, objectKey, fileName string, size int64) error
}

// GormResumeStore 基于 GORM/PostgreSQL 实现 ResumeStore。
type GormResumeStore struct {
	db *gorm.DB
}

// NewResumeStore 构造持久化网关。
func NewResumeStore(db *gorm.DB) *GormResumeStore {
	return &GormResumeStore{db: db}
}

func (s *GormResumeStore) Create(ctx context.Context, ownerID uint, doc resume.Document) (*ResumeRecord, error) {
	content, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	model := Resume{
		Title:          doc.Title,
		TemplateLayout: string(doc.TemplateLayout),
		Content:        datatypes.JSON(content),
		Status:         ResumeStatusDraft,
		UserID:         ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return recordFromModel(model)
}

func (s *GormResumeStore) Update(ctx context.Context, id, ownerID uint, doc resume.Document) (*ResumeRecord, error) {
	model, err := s.findForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	updates := map[string]any{
		"title":           doc.Title,
		"template_layout": string(doc.TemplateLayout),
		"content":         datatypes.JSON(content),
	}
	if err := s.db.WithContext(ctx).Model(model).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}
	if err := s.db.WithContext(ctx).First(model, model.ID).Error; err != nil {
		return nil, fmt.Errorf("reload resume: %w", err)
	}
	return recordFromModel(*model)
}

func (s *GormResumeStore) List(ctx context.Context, ownerID uint) ([]ResumeRecord, error) {
	var models []Resume
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	records := make([]ResumeRecord, 0, len(models))
	for _, m := range models {
		rec, err := recordFromModel(m)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (s *GormResumeStore) GetByID(ctx context.Context, id, ownerID uint) (*ResumeRecord, error) {
	model, err := s.findForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return recordFromModel(*model)
}

func (s *GormResumeStore) Delete(ctx context.Context, id, ownerID uint) error {
	model, err := s.findForOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&Resume{}, model.ID).Error; err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}

func (s *GormResumeStore) SetArtifact(ctx context.Context, id uint, objectKey, fileName string, size int64) error {
	updates := map[string]any{
		"pdf_object_key": objectKey,
		"pdf_file_name":  fileName,
		"pdf_file_size":  size,
		"status":         ResumeStatusCompleted,
	}
	result := s.db.WithContext(ctx).Model(&Resume{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("record artifact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (s *GormResumeStore) findForOwner(ctx context.Context, id, ownerID uint) (*Resume, error) {
	var model Resume
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("query resume: %w", err)
	}
	return &model, nil
}

func recordFromModel(model Resume) (*ResumeRecord, error) {
	var doc resume.Document
	if len(model.Content) > 0 {
		if err := json.Unmarshal(model.Content, &doc); err != nil {
			return nil, fmt.Errorf("decode resume content: %w", err)
		}
	}
	// 旧版记录可能缺节，读出即修复。
	doc.Normalize()

	return &ResumeRecord{
		ID:           model.ID,
		OwnerID:      model.UserID,
		Status:       model.Status,
		Document:     doc,
		PdfObjectKey: model.PdfObjectKey,
		PdfFileName:  model.PdfFileName,
		PdfFileSize:  model.PdfFileSize,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}
