package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type correlationIDKey struct{}

// WithCorrelationID 把请求的 Correlation ID 带进上下文，供入队时透传。
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext 取出上下文里的 Correlation ID，没有则现生成一个。
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Enqueuer 把导出请求投递到 asynq 队列。
type Enqueuer struct {
	client   *asynq.Client
	maxRetry int
}

// NewEnqueuer 构造队列生产者。
func NewEnqueuer(client *asynq.Client, maxRetry int) *Enqueuer {
	return &Enqueuer{client: client, maxRetry: maxRetry}
}

// RequestExport 为指定简历入队一个 PDF 导出任务。
func (e *Enqueuer) RequestExport(ctx context.Context, resumeID, ownerID uint) error {
	task, err := NewPDFExportTask(resumeID, ownerID, CorrelationIDFromContext(ctx))
	if err != nil {
		return fmt.Errorf("build export task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, asynq.MaxRetry(e.maxRetry)); err != nil {
		return fmt.Errorf("enqueue export task: %w", err)
	}
	return nil
}
