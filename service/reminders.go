package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/status"
	"github.com/BerniceZTT/client_crm/utils"
)

// Reminders 未发送且日期不早于今天的提醒，按日期升序，附逾期标记
func (s *Service) Reminders(ctx context.Context) ([]models.ReminderView, error) {
	now := s.now()

	var reminders []models.Reminder
	q := repository.From(repository.RemindersTable).
		Include(repository.ClientsTable, repository.ProjectsTable).
		Gte("reminder_date", status.Today(now)).
		Eq("is_sent", false).
		Order("reminder_date", true)
	if err := s.gw.Select(ctx, q, &reminders); err != nil {
		return nil, logFailure(err, "list reminders")
	}

	active := status.ActiveReminders(reminders, now)
	views := make([]models.ReminderView, 0, len(active))
	for _, r := range active {
		views = append(views, models.ReminderView{
			Reminder: r,
			Overdue:  status.IsOverdue(r.ReminderDate, now),
		})
	}
	return views, nil
}

// CreateReminder 新建提醒
func (s *Service) CreateReminder(ctx context.Context, user *utils.LoginUser, in models.ReminderInput) (*models.Reminder, error) {
	in.ReminderDate = strings.TrimSpace(in.ReminderDate)
	if err := s.check(in); err != nil {
		return nil, err
	}
	if _, err := status.ParseReminderDate(in.ReminderDate, s.now().Location()); err != nil {
		return nil, fmt.Errorf("%w: 提醒日期无效 %q", ErrValidation, in.ReminderDate)
	}

	if _, err := selectOne[models.Client](ctx, s.gw, repository.From(repository.ClientsTable).Select("id").Eq("id", in.ClientID)); err != nil {
		return nil, logFailure(err, "create reminder")
	}
	// 关联的项目必须属于同一客户
	if in.ProjectID != nil && *in.ProjectID != "" {
		q := repository.From(repository.ProjectsTable).Select("id").Eq("id", *in.ProjectID).Eq("client_id", in.ClientID)
		if _, err := selectOne[models.Project](ctx, s.gw, q); err != nil {
			return nil, logFailure(err, "create reminder")
		}
	}

	reminder := models.Reminder{
		ID:           s.newID(),
		ClientID:     in.ClientID,
		ProjectID:    in.ProjectID,
		ReminderType: in.ReminderType,
		ReminderDate: in.ReminderDate,
		Message:      in.Message,
		IsSent:       false,
		CreatedAt:    s.now(),
	}
	if err := s.gw.Insert(ctx, repository.RemindersTable, reminder); err != nil {
		return nil, logFailure(err, "create reminder")
	}

	s.emit(ctx, events.ReminderCreated, reminder.ID, user, reminder)
	return &reminder, nil
}

// CompleteReminder 标记为已完成
func (s *Service) CompleteReminder(ctx context.Context, user *utils.LoginUser, id string) error {
	if err := s.gw.Update(ctx, repository.RemindersTable, id, map[string]interface{}{"is_sent": true}); err != nil {
		return logFailure(err, "complete reminder")
	}
	s.emit(ctx, events.ReminderCompleted, id, user, nil)
	return nil
}

// DeleteReminder 删除提醒
func (s *Service) DeleteReminder(ctx context.Context, user *utils.LoginUser, id string) error {
	if err := s.gw.Delete(ctx, repository.RemindersTable, id); err != nil {
		return logFailure(err, "delete reminder")
	}
	s.emit(ctx, events.ReminderDeleted, id, user, nil)
	return nil
}
