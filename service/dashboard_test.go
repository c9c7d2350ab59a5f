package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"

	"github.com/shopspring/decimal"
)

func TestDashboard(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.ClientsTable] = []models.Client{{ID: "c1"}, {ID: "c2"}}
	h.gw.rows[repository.ProjectsTable] = []models.Project{
		{ID: "p1", Status: models.ProjectStatusOngoing, TotalCost: decimal.RequireFromString("1000")},
		{ID: "p2", Status: models.ProjectStatusCompleted, TotalCost: decimal.RequireFromString("500")},
		{ID: "p3", Status: models.ProjectStatusOngoing, TotalCost: decimal.RequireFromString("250.50")},
	}
	h.gw.rows[repository.PaymentsTable] = []models.Payment{
		{Amount: decimal.RequireFromString("300")},
		{Amount: decimal.RequireFromString("500")},
		{Amount: decimal.RequireFromString("0.25")},
	}

	got, err := h.svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if got.Stats.TotalClients != 2 {
		t.Errorf("TotalClients = %d", got.Stats.TotalClients)
	}
	if !got.Stats.TotalEarnings.Equal(decimal.RequireFromString("800.25")) {
		t.Errorf("TotalEarnings = %s", got.Stats.TotalEarnings)
	}
	if !got.Stats.PendingPayments.Equal(decimal.RequireFromString("950.25")) {
		t.Errorf("PendingPayments = %s", got.Stats.PendingPayments)
	}
	if got.Stats.ActiveProjects != 2 {
		t.Errorf("ActiveProjects = %d", got.Stats.ActiveProjects)
	}

	want := []models.ChartDataItem{{Name: "Pending", Value: 0}, {Name: "Ongoing", Value: 2}, {Name: "Completed", Value: 1}}
	if len(got.ProjectStatusData) != len(want) {
		t.Fatalf("ProjectStatusData = %v", got.ProjectStatusData)
	}
	for i := range want {
		if got.ProjectStatusData[i] != want[i] {
			t.Errorf("ProjectStatusData[%d] = %v, want %v", i, got.ProjectStatusData[i], want[i])
		}
	}

	projectQueries := h.gw.queriesFor(repository.ProjectsTable)
	if len(projectQueries) != 1 || len(projectQueries[0].Columns) != 3 {
		t.Errorf("projects query = %+v", projectQueries)
	}
}

func TestDashboardFailsWhenAnyReadFails(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.ClientsTable] = []models.Client{{ID: "c1"}}
	h.gw.selectErr[repository.PaymentsTable] = errors.New("network down")

	if _, err := h.svc.Dashboard(context.Background()); err == nil {
		t.Fatal("expected error when one read fails")
	}
}
