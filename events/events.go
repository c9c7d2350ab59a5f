// Package events 数据变更后推送领域事件。推送失败只记录日志，不影响请求结果。
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BerniceZTT/client_crm/utils"
)

// 事件类型，同时作为路由键
const (
	ClientCreated     = "client.created"
	ClientUpdated     = "client.updated"
	ClientDeleted     = "client.deleted"
	ProjectCreated    = "project.created"
	ProjectUpdated    = "project.updated"
	ProjectDeleted    = "project.deleted"
	PaymentCreated    = "payment.created"
	PaymentDeleted    = "payment.deleted"
	NoteCreated       = "note.created"
	NoteDeleted       = "note.deleted"
	FileUploaded      = "file.uploaded"
	FileDeleted       = "file.deleted"
	ReminderCreated   = "reminder.created"
	ReminderCompleted = "reminder.completed"
	ReminderDeleted   = "reminder.deleted"
	ReminderDue       = "reminder.due"
)

// Event 领域事件
type Event struct {
	Type       string      `json:"type"`
	EntityID   string      `json:"entity_id"`
	OperatorID string      `json:"operator_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

// ToJSON 序列化
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher 事件推送接口
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher 未配置消息队列时使用
type NoopPublisher struct{}

// Publish 只记录调试日志
func (NoopPublisher) Publish(ctx context.Context, event Event) error {
	utils.Logger.Debug().Str("type", event.Type).Str("entityId", event.EntityID).Msg("事件未推送（未配置消息队列）")
	return nil
}

// Close 无操作
func (NoopPublisher) Close() error { return nil }

// Emit 推送事件，失败只记日志
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := p.Publish(ctx, event); err != nil {
		utils.LogError(err, map[string]interface{}{
			"type":     event.Type,
			"entityId": event.EntityID,
		}, "推送事件失败")
	}
}
