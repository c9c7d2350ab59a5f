// Package status 按状态或日期筛选项目与提醒。
//
// 日期字段统一为 YYYY-MM-DD 字符串，定长且补零，直接按字符串比较即可得到日期先后。
// 所有函数都显式接收当前时间 now，"今天" 取 now 所在时区的日期。
package status

import (
	"sort"
	"time"

	"github.com/BerniceZTT/client_crm/models"
)

// DateLayout 日期字段格式
const DateLayout = "2006-01-02"

// Today 返回 now 所在时区的日期字符串
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// FilterProjectsByStatus 按筛选项过滤项目，保持原有顺序。
//   - "All": 原样返回
//   - "Upcoming": 开始日期晚于今天的项目，未设置开始日期的项目不包含在内
//   - 其他值: 状态完全相等
func FilterProjectsByStatus(projects []models.Project, filter string, now time.Time) []models.Project {
	if filter == models.ProjectFilterAll {
		return projects
	}

	result := make([]models.Project, 0, len(projects))
	if filter == models.ProjectFilterUpcoming {
		today := Today(now)
		for _, p := range projects {
			startDate := ""
			if p.StartDate != nil {
				startDate = *p.StartDate
			}
			if startDate > today {
				result = append(result, p)
			}
		}
		return result
	}

	for _, p := range projects {
		if string(p.Status) == filter {
			result = append(result, p)
		}
	}
	return result
}

// CountByStatus 统计各状态项目数
func CountByStatus(projects []models.Project) map[models.ProjectStatus]int {
	counts := make(map[models.ProjectStatus]int, len(models.ProjectStatuses))
	for _, p := range projects {
		counts[p.Status]++
	}
	return counts
}

// Distribution 按 Pending/Ongoing/Completed 顺序输出图表数据，数量为0的状态也保留
func Distribution(projects []models.Project) []models.ChartDataItem {
	counts := CountByStatus(projects)
	items := make([]models.ChartDataItem, 0, len(models.ProjectStatuses))
	for _, s := range models.ProjectStatuses {
		items = append(items, models.ChartDataItem{Name: string(s), Value: counts[s]})
	}
	return items
}

// ParseReminderDate 解析提醒日期。只有日期时按 loc 时区当天零点处理，带时间的按完整时间处理
func ParseReminderDate(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// IsOverdue 提醒时间严格早于当前时刻即为逾期。
// 用完整时间比较而不是截断到日期：今天日期的提醒在今天零点之后就算逾期。
// 无法解析的日期视为未逾期。
func IsOverdue(reminderDate string, now time.Time) bool {
	t, err := ParseReminderDate(reminderDate, now.Location())
	if err != nil {
		return false
	}
	return t.Before(now)
}

// ActiveReminders 未发送且日期不早于今天的提醒，按日期升序。
// 已过期但未发送的提醒不会返回。
func ActiveReminders(reminders []models.Reminder, now time.Time) []models.Reminder {
	today := Today(now)
	result := make([]models.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.IsSent || r.ReminderDate < today {
			continue
		}
		result = append(result, r)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ReminderDate < result[j].ReminderDate
	})
	return result
}
