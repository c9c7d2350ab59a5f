package service

import (
	"context"

	"github.com/BerniceZTT/client_crm/finance"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/status"

	"golang.org/x/sync/errgroup"
)

// Dashboard 看板统计：客户数、已收、待收、进行中项目数及状态分布
func (s *Service) Dashboard(ctx context.Context) (models.DashboardDataResponse, error) {
	var (
		clients  []models.Client
		projects []models.Project
		payments []models.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.gw.Select(gctx, repository.From(repository.ClientsTable).Select("id"), &clients)
	})
	g.Go(func() error {
		return s.gw.Select(gctx, repository.From(repository.ProjectsTable).Select("id", "status", "total_cost"), &projects)
	})
	g.Go(func() error {
		return s.gw.Select(gctx, repository.From(repository.PaymentsTable).Select("amount"), &payments)
	})
	if err := g.Wait(); err != nil {
		return models.DashboardDataResponse{}, logFailure(err, "dashboard")
	}

	counts := status.CountByStatus(projects)
	return models.DashboardDataResponse{
		Stats: models.DashboardStats{
			TotalClients:    len(clients),
			TotalEarnings:   finance.PaidAmount(payments),
			PendingPayments: finance.DashboardPending(projects, payments),
			ActiveProjects:  counts[models.ProjectStatusOngoing],
		},
		ProjectStatusData: status.Distribution(projects),
	}, nil
}
