package models

import "github.com/shopspring/decimal"

// 图表数据项
type ChartDataItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// 看板统计卡片
type DashboardStats struct {
	TotalClients    int             `json:"totalClients"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	PendingPayments decimal.Decimal `json:"pendingPayments"`
	ActiveProjects  int             `json:"activeProjects"`
}

// 数据看板响应结构
type DashboardDataResponse struct {
	Stats             DashboardStats  `json:"stats"`
	ProjectStatusData []ChartDataItem `json:"projectStatusData"` // 项目状态分布
}

// 客户列表项
type ClientSummary struct {
	Client
	OngoingProjects   int `json:"ongoingProjects"`
	CompletedProjects int `json:"completedProjects"`
}

// 客户详情响应
type ClientDetailResponse struct {
	Client       Client          `json:"client"`
	Projects     []ProjectView   `json:"projects"`
	Notes        []Note          `json:"notes"`
	Files        []FileRecord    `json:"files"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalPending decimal.Decimal `json:"totalPending"`
}
