package finance

import (
	"github.com/shopspring/decimal"

	"github.com/BerniceZTT/client_crm/models"
)

// PaidAmount 收款合计，空列表为0
func PaidAmount(payments []models.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// Remaining 剩余应收 = 总价 - 已收。超额收款时为负数，不做截断
func Remaining(project models.Project, payments []models.Payment) decimal.Decimal {
	return project.TotalCost.Sub(PaidAmount(payments))
}

// RawProgressPercent 已收占总价的百分比，不截断（超额时大于100）。总价不大于0时返回0
func RawProgressPercent(project models.Project, payments []models.Payment) decimal.Decimal {
	if !project.TotalCost.IsPositive() {
		return decimal.Zero
	}
	return PaidAmount(payments).Mul(hundred).Div(project.TotalCost)
}

// ProgressPercent 展示用收款进度，最高100
func ProgressPercent(project models.Project, payments []models.Payment) decimal.Decimal {
	return decimal.Min(hundred, RawProgressPercent(project, payments))
}

// TotalRevenue 各项目已收合计，项目需带关联的收款记录
func TotalRevenue(projects []models.Project) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range projects {
		sum = sum.Add(PaidAmount(p.Payments))
	}
	return sum
}

// TotalPendingAcrossClient 客户详情页的待收合计：逐个项目的剩余应收相加，负数同样计入
func TotalPendingAcrossClient(projects []models.Project) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range projects {
		sum = sum.Add(Remaining(p, p.Payments))
	}
	return sum
}

// DashboardPending 看板的待收金额：全部项目总价之和减去全部收款之和。
// 与 TotalPendingAcrossClient 是两套口径，输入集合不同，不要合并。
func DashboardPending(projects []models.Project, payments []models.Payment) decimal.Decimal {
	totalCost := decimal.Zero
	for _, p := range projects {
		totalCost = totalCost.Add(p.TotalCost)
	}
	return totalCost.Sub(PaidAmount(payments))
}

// Summarize 计算单个项目的收款视图
func Summarize(project models.Project) models.ProjectView {
	remaining := Remaining(project, project.Payments)
	return models.ProjectView{
		Project:     project,
		Paid:        PaidAmount(project.Payments),
		Remaining:   remaining,
		Progress:    ProgressPercent(project, project.Payments),
		RawProgress: RawProgressPercent(project, project.Payments),
		Overpaid:    remaining.IsNegative(),
	}
}

// SummarizeAll 批量计算，保持输入顺序
func SummarizeAll(projects []models.Project) []models.ProjectView {
	views := make([]models.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, Summarize(p))
	}
	return views
}
