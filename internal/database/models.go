package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// 简历记录的状态标签。
const (
	ResumeStatusDraft     = "draft"
	ResumeStatusCompleted = "completed"
)

// Resume 表示用户创建的简历。
// Content(JSONB) 存放序列化后的 resume.Document；
// Pdf* 字段记录最近一次导出的制品信息。
type Resume struct {
	gorm.Model
	Title          string         `gorm:"size:255"`
	TemplateLayout string         `gorm:"size:32"`
	Content        datatypes.JSON `gorm:"type:jsonb"`
	Status         string         `gorm:"size:32"`
	PdfObjectKey   string         `gorm:"size:512"`
	PdfFileName    string         `gorm:"size:255"`
	PdfFileSize    int64
	UserID         uint `gorm:"index"`
	User           User `gorm:"constraint:OnDelete:CASCADE"`
}
