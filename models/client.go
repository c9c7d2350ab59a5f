package models

import "time"

// Client 客户
type Client struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	ContactPerson *string   `json:"contact_person" bson:"contact_person"`
	Phone         *string   `json:"phone" bson:"phone"`
	Email         *string   `json:"email" bson:"email"`
	Address       *string   `json:"address" bson:"address"`
	WhatsApp      *string   `json:"whatsapp" bson:"whatsapp"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	CreatedBy     *string   `json:"created_by" bson:"created_by"`

	// 关联查询填充
	Projects []Project `json:"projects,omitempty" bson:"projects,omitempty"`
}

// ClientInput 创建/更新客户请求
type ClientInput struct {
	Name          string  `json:"name" validate:"required,max=200"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	WhatsApp      *string `json:"whatsapp"`
}
