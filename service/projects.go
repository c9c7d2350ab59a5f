package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/finance"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/status"
	"github.com/BerniceZTT/client_crm/utils"
)

// ValidProjectFilter 校验项目列表筛选值，空值视为 All
func ValidProjectFilter(filter string) (string, error) {
	switch filter {
	case "":
		return models.ProjectFilterAll, nil
	case models.ProjectFilterAll, models.ProjectFilterUpcoming:
		return filter, nil
	}
	for _, st := range models.ProjectStatuses {
		if filter == string(st) {
			return filter, nil
		}
	}
	return "", fmt.Errorf("%w: 未知的项目筛选 %q", ErrValidation, filter)
}

// ListProjects 项目列表，带客户与收款进度
func (s *Service) ListProjects(ctx context.Context, filter string) (models.ProjectListResponse, error) {
	filter, err := ValidProjectFilter(filter)
	if err != nil {
		return models.ProjectListResponse{}, err
	}

	var projects []models.Project
	q := repository.From(repository.ProjectsTable).
		Include(repository.ClientsTable, repository.PaymentsTable).
		Order("created_at", false)
	if err := s.gw.Select(ctx, q, &projects); err != nil {
		return models.ProjectListResponse{}, logFailure(err, "list projects")
	}

	filtered := status.FilterProjectsByStatus(projects, filter, s.now())
	return models.ProjectListResponse{
		Filter:   filter,
		Projects: finance.SummarizeAll(filtered),
	}, nil
}

func (s *Service) checkProject(in *models.ProjectInput) error {
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	if err := s.check(in); err != nil {
		return err
	}
	if in.TotalCost.IsNegative() {
		return fmt.Errorf("%w: 项目总价不能为负数", ErrValidation)
	}
	return nil
}

// CreateProject 新建项目
func (s *Service) CreateProject(ctx context.Context, user *utils.LoginUser, in models.ProjectInput) (*models.Project, error) {
	if err := s.checkProject(&in); err != nil {
		return nil, err
	}

	if _, err := selectOne[models.Client](ctx, s.gw, repository.From(repository.ClientsTable).Select("id").Eq("id", in.ClientID)); err != nil {
		return nil, logFailure(err, "create project")
	}

	now := s.now()
	project := models.Project{
		ID:          s.newID(),
		ClientID:    in.ClientID,
		ProjectName: in.ProjectName,
		Description: in.Description,
		StartDate:   in.StartDate,
		Deadline:    in.Deadline,
		Status:      in.Status,
		TotalCost:   in.TotalCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.gw.Insert(ctx, repository.ProjectsTable, project); err != nil {
		return nil, logFailure(err, "create project")
	}

	s.emit(ctx, events.ProjectCreated, project.ID, user, project)
	return &project, nil
}

// UpdateProject 更新项目
func (s *Service) UpdateProject(ctx context.Context, user *utils.LoginUser, id string, in models.ProjectInput) error {
	if err := s.checkProject(&in); err != nil {
		return err
	}

	if _, err := selectOne[models.Client](ctx, s.gw, repository.From(repository.ClientsTable).Select("id").Eq("id", in.ClientID)); err != nil {
		return logFailure(err, "update project")
	}

	fields := map[string]interface{}{
		"client_id":    in.ClientID,
		"project_name": in.ProjectName,
		"description":  in.Description,
		"start_date":   in.StartDate,
		"deadline":     in.Deadline,
		"status":       in.Status,
		"total_cost":   in.TotalCost,
		"updated_at":   s.now(),
	}
	if err := s.gw.Update(ctx, repository.ProjectsTable, id, fields); err != nil {
		return logFailure(err, "update project")
	}

	s.emit(ctx, events.ProjectUpdated, id, user, nil)
	return nil
}

// DeleteProject 删除项目及其收款
func (s *Service) DeleteProject(ctx context.Context, user *utils.LoginUser, id string) error {
	if _, err := s.gw.DeleteWhere(ctx, repository.PaymentsTable, "project_id", id); err != nil {
		return logFailure(err, "delete project payments")
	}
	if err := s.gw.Delete(ctx, repository.ProjectsTable, id); err != nil {
		return logFailure(err, "delete project")
	}

	s.emit(ctx, events.ProjectDeleted, id, user, nil)
	return nil
}
