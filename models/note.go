package models

import "time"

// Note 客户备注
type Note struct {
	ID        string    `json:"id" bson:"_id"`
	ClientID  string    `json:"client_id" bson:"client_id"`
	ProjectID *string   `json:"project_id" bson:"project_id"`
	Note      string    `json:"note" bson:"note"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	CreatedBy *string   `json:"created_by" bson:"created_by"`
}

// NoteInput 新增备注请求
type NoteInput struct {
	Note      string  `json:"note" validate:"required"`
	ProjectID *string `json:"project_id"`
}
