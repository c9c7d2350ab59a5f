package service

import (
	"context"
	"strings"
	"time"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/status"
	"github.com/BerniceZTT/client_crm/utils"
)

// 每天指定时间执行任务，ctx 取消后退出
func ScheduleDailyTaskAt(ctx context.Context, hour, min, sec int, task func(context.Context)) {
	go func() {
		for {
			now := time.Now()
			timer := time.NewTimer(nextDailyRun(now, hour, min, sec).Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				task(ctx)
			}
		}
	}()
}

// nextDailyRun 下一次执行时间。按日历日加一天，夏令时切换当天仍在本地指定时刻执行
func nextDailyRun(now time.Time, hour, min, sec int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
	if now.After(next) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, min, sec, 0, now.Location())
	}
	return next
}

// ReminderDigest 每日提醒：今天到期的未完成提醒逐条推送 reminder.due 事件。
// 不修改提醒的 is_sent，完成仍由用户操作。
type ReminderDigest struct {
	svc    *Service
	screen *Screen[[]models.ReminderView]
}

// NewReminderDigest 创建每日提醒任务
func NewReminderDigest(svc *Service) *ReminderDigest {
	return &ReminderDigest{svc: svc, screen: NewScreen[[]models.ReminderView]()}
}

// Run 执行一次，返回推送条数。加载失败时保留上一次的提醒列表
func (d *ReminderDigest) Run(ctx context.Context) (int, error) {
	utils.Logger.Info().Time("time", d.svc.now()).Msg("开始执行每日提醒任务")

	if err := d.screen.Load(ctx, d.svc.Reminders); err != nil {
		utils.Logger.Error().Err(err).Msg("加载提醒失败")
		return 0, err
	}

	today := status.Today(d.svc.now())
	sent := 0
	for _, r := range d.screen.Data() {
		if !strings.HasPrefix(r.ReminderDate, today) {
			continue
		}
		d.svc.emit(ctx, events.ReminderDue, r.ID, nil, r)
		sent++
	}

	utils.Logger.Info().Int("count", sent).Msg("每日提醒任务完成")
	return sent, nil
}

// Last 最近一次加载结果
func (d *ReminderDigest) Last() *Screen[[]models.ReminderView] {
	return d.screen
}

// Schedule 每天 hour 点执行
func (d *ReminderDigest) Schedule(ctx context.Context, hour int) {
	ScheduleDailyTaskAt(ctx, hour, 0, 0, func(ctx context.Context) {
		// 错误已在 Run 中记录
		_, _ = d.Run(ctx)
	})
}
