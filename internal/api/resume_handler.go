package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/database"
	"resumeforge/internal/export"
	"resumeforge/internal/resume"
	"resumeforge/internal/storage"
	"resumeforge/internal/tasks"
)

// artifactStorage 是简历处理器需要的对象存储能力子集。
type artifactStorage interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	GetObjectBytes(ctx context.Context, objectKey string) ([]byte, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

var _ artifactStorage = (*storage.Client)(nil)

// ResumeHandler 负责处理与简历相关的 API 请求。
type ResumeHandler struct {
	store       database.ResumeStore
	asynqClient *asynq.Client
	storage     artifactStorage
	maxResumes  int
	downloadTTL time.Duration
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(store database.ResumeStore, asynqClient *asynq.Client, storageClient artifactStorage, maxResumes int, downloadTTL time.Duration) *ResumeHandler {
	return &ResumeHandler{
		store:       store,
		asynqClient: asynqClient,
		storage:     storageClient,
		maxResumes:  maxResumes,
		downloadTTL: downloadTTL,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type resumeListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID          uint            `json:"id"`
	Status      string          `json:"status"`
	Document    resume.Document `json:"document"`
	PdfFileName string          `json:"pdf_file_name,omitempty"`
	PdfFileSize int64           `json:"pdf_file_size,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func newResumeResponse(record database.ResumeRecord) resumeResponse {
	return resumeResponse{
		ID:          record.ID,
		Status:      record.Status,
		Document:    record.Document,
		PdfFileName: record.PdfFileName,
		PdfFileSize: record.PdfFileSize,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// CreateResume 保存一份新的简历，超过限额则提示升级。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var doc resume.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, err.Error())
		return
	}
	doc.Normalize()

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.List(ctx, userID)
	if err != nil {
		Internal(c, "failed to count resumes")
		return
	}
	if h.maxResumes > 0 && len(existing) >= h.maxResumes {
		Forbidden(c, "resume limit reached")
		return
	}

	record, err := h.store.Create(ctx, userID, doc)
	if err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(*record))
}

// ListResumes 列出用户全部简历，按更新时间倒序。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	records, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(records))
	for _, r := range records {
		items = append(items, resumeListItem{
			ID:        r.ID,
			Title:     r.Document.Title,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*record))
}

// UpdateResume 以整份文档覆盖指定简历。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var doc resume.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, err.Error())
		return
	}
	doc.Normalize()

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeError(c, err)
		return
	}

	updated, err := h.store.Update(c.Request.Context(), record.ID, userID, doc)
	if err != nil {
		Internal(c, "failed to update resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*updated))
}

// DeleteResume 删除指定简历，并清理其导出制品。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Delete(ctx, record.ID, userID); err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	// 行删掉后清理对象存储里的历史制品，失败不阻塞响应。
	prefix := fmt.Sprintf("%d/%d/", userID, record.ID)
	if err := h.storage.DeletePrefix(ctx, prefix); err != nil {
		middleware.LoggerFromContext(c).Warn("delete resume artifacts failed", "error", err)
	}

	c.Status(http.StatusNoContent)
}

// ExportResume 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(record.ID, userID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成简历 PDF 的预签名下载链接。
// 预签名失败时退回 API 直传路径，下载能力不依赖外部可达的对象存储。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeError(c, err)
		return
	}

	if record.PdfObjectKey == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), record.PdfObjectKey, h.downloadTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Warn("presign download link failed", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"url":      fmt.Sprintf("/v1/resumes/%d/download", record.ID),
			"fallback": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// DownloadResume 直接回传 PDF 字节，是预签名链接的兜底通道。
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyResumeError(c, err)
		return
	}

	if record.PdfObjectKey == "" {
		Conflict(c, "pdf not ready")
		return
	}

	data, err := h.storage.GetObjectBytes(c.Request.Context(), record.PdfObjectKey)
	if err != nil {
		Internal(c, "failed to fetch pdf")
		return
	}

	fileName := record.PdfFileName
	if fileName == "" {
		fileName = export.FileName(record.Document.Title, time.Now())
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ResumeHandler) replyResumeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, database.ErrResumeNotFound):
		NotFound(c, "resume not found")
	default:
		Internal(c, "failed to query resume")
	}
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID uint) (*database.ResumeRecord, error) {
	resumeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidResumeID
	}
	return h.store.GetByID(ctx, uint(resumeID), userID)
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
