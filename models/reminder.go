package models

import "time"

// ReminderType 提醒类型
type ReminderType string

const (
	ReminderTypePayment  ReminderType = "payment"
	ReminderTypeDeadline ReminderType = "deadline"
)

// Reminder 提醒
type Reminder struct {
	ID           string       `json:"id" bson:"_id"`
	ClientID     string       `json:"client_id" bson:"client_id"`
	ProjectID    *string      `json:"project_id" bson:"project_id"`
	ReminderType ReminderType `json:"reminder_type" bson:"reminder_type"`
	ReminderDate string       `json:"reminder_date" bson:"reminder_date"` // YYYY-MM-DD 或 RFC3339
	Message      string       `json:"message" bson:"message"`
	IsSent       bool         `json:"is_sent" bson:"is_sent"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`

	// 关联查询填充
	Client  *Client  `json:"clients,omitempty" bson:"clients,omitempty"`
	Project *Project `json:"projects,omitempty" bson:"projects,omitempty"`
}

// ReminderInput 创建提醒请求
type ReminderInput struct {
	ClientID     string       `json:"client_id" validate:"required"`
	ProjectID    *string      `json:"project_id"`
	ReminderType ReminderType `json:"reminder_type" validate:"required,oneof=payment deadline"`
	ReminderDate string       `json:"reminder_date" validate:"required"`
	Message      string       `json:"message" validate:"max=1000"`
}

// ReminderView 带逾期标记的提醒
type ReminderView struct {
	Reminder
	Overdue bool `json:"overdue"`
}
