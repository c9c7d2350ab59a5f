package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "Pending"
	ProjectStatusOngoing   ProjectStatus = "Ongoing"
	ProjectStatusCompleted ProjectStatus = "Completed"
)

// 项目列表筛选项，除具体状态外的两个特殊值
const (
	ProjectFilterAll      = "All"
	ProjectFilterUpcoming = "Upcoming"
)

// ProjectStatuses 按展示顺序排列的全部状态
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPending,
	ProjectStatusOngoing,
	ProjectStatusCompleted,
}

// Project 项目结构体
type Project struct {
	ID          string          `json:"id" bson:"_id"`
	ClientID    string          `json:"client_id" bson:"client_id"`
	ProjectName string          `json:"project_name" bson:"project_name"`
	Description *string         `json:"description" bson:"description"`
	StartDate   *string         `json:"start_date" bson:"start_date"` // YYYY-MM-DD
	Deadline    *string         `json:"deadline" bson:"deadline"`     // YYYY-MM-DD
	Status      ProjectStatus   `json:"status" bson:"status"`
	TotalCost   decimal.Decimal `json:"total_cost" bson:"total_cost"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at"`

	// 关联查询填充
	Client   *Client   `json:"clients,omitempty" bson:"clients,omitempty"`
	Payments []Payment `json:"payments,omitempty" bson:"payments,omitempty"`
}

// ProjectInput 创建/更新项目请求
type ProjectInput struct {
	ClientID    string          `json:"client_id" validate:"required"`
	ProjectName string          `json:"project_name" validate:"required,max=200"`
	Description *string         `json:"description"`
	StartDate   *string         `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Deadline    *string         `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status      ProjectStatus   `json:"status" validate:"required,oneof=Pending Ongoing Completed"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// ProjectView 项目及其收款进度
type ProjectView struct {
	Project
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	// Progress 展示用百分比，最高100；RawProgress 未截断
	Progress    decimal.Decimal `json:"progress"`
	RawProgress decimal.Decimal `json:"raw_progress"`
	Overpaid    bool            `json:"overpaid"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Filter   string        `json:"filter"`
	Projects []ProjectView `json:"projects"`
}
