package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumeforge/internal/database"
	"resumeforge/internal/errcode"
	"resumeforge/internal/export"
	"resumeforge/internal/render"
	"resumeforge/internal/storage"
	"resumeforge/internal/tasks"
)

// ErrArtifactUpload 标记制品上传阶段的失败，便于通知侧区分错误码。
var ErrArtifactUpload = errors.New("artifact upload failed")

// ExportTaskHandler 负责消费 PDF 导出任务。
type ExportTaskHandler struct {
	store       database.ResumeStore
	generator   *export.Generator
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	store database.ResumeStore,
	generator *export.Generator,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		store:       store,
		generator:   generator,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler：
// 取出简历文档，渲染所选模板，截图合成 A4 PDF，
// 上传对象存储并回写制品元数据，最后向属主推送完成通知。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
		slog.Uint64("user_id", uint64(payload.OwnerID)),
	)
	log.Info("Starting resume PDF export task...")

	record, err := h.store.GetByID(ctx, payload.ResumeID, payload.OwnerID)
	if err != nil {
		if errors.Is(err, database.ErrResumeNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := PDFExportNotifyMessage{
			Status:        "error",
			ResumeID:      record.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     classifyExportError(retErr),
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, payload.OwnerID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	htmlContent, err := render.Render(record.Document)
	if err != nil {
		log.Error("render resume template failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := h.generator.GeneratePDF(htmlContent)
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	fileName := export.FileName(record.Document.Title, time.Now())
	objectKey := export.ObjectKey(payload.OwnerID, record.ID, fileName)
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectKey, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrArtifactUpload, err)
	}

	if err := h.store.SetArtifact(ctx, record.ID, objectKey, fileName, int64(len(pdfBytes))); err != nil {
		log.Error("record artifact failed", slog.Any("error", err))
		return err
	}

	notify := PDFExportNotifyMessage{
		Status:        "completed",
		ResumeID:      record.ID,
		FileName:      fileName,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, payload.OwnerID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("PDF export task completed successfully.", slog.String("object_key", objectKey))
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify PDFExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

// classifyExportError 把失败原因映射到通知错误码。
func classifyExportError(err error) int {
	switch {
	case errors.Is(err, export.ErrNoSurface), errors.Is(err, export.ErrEmptyCapture):
		return errcode.CaptureFailed
	case errors.Is(err, ErrArtifactUpload):
		return errcode.UploadFailed
	default:
		return errcode.SystemError
	}
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
