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

	"golang.org/x/sync/errgroup"
)

// PaymentOptions 收款表单下拉：全部客户，选中客户时附带其项目
func (s *Service) PaymentOptions(ctx context.Context, clientID string) (models.PaymentOptions, error) {
	var (
		clients  []models.Client
		projects []models.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := repository.From(repository.ClientsTable).Select("id", "name").Order("name", true)
		return s.gw.Select(gctx, q, &clients)
	})
	if clientID != "" {
		g.Go(func() error {
			q := repository.From(repository.ProjectsTable).
				Select("id", "project_name", "status").
				Eq("client_id", clientID).
				Order("project_name", true)
			return s.gw.Select(gctx, q, &projects)
		})
	}
	if err := g.Wait(); err != nil {
		return models.PaymentOptions{}, logFailure(err, "payment options")
	}

	return models.PaymentOptions{Clients: nonNil(clients), Projects: nonNil(projects)}, nil
}

// CreatePayment 登记收款，日期默认今天，方式默认现金
func (s *Service) CreatePayment(ctx context.Context, user *utils.LoginUser, in models.PaymentInput) (*models.Payment, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	amount, err := finance.ParseAmount(string(in.Amount))
	if err != nil {
		return nil, fmt.Errorf("金额 %q: %w", in.Amount, err)
	}

	if _, err := selectOne[models.Project](ctx, s.gw, repository.From(repository.ProjectsTable).Select("id").Eq("id", in.ProjectID)); err != nil {
		return nil, logFailure(err, "create payment")
	}

	now := s.now()
	payment := models.Payment{
		ID:            s.newID(),
		ProjectID:     in.ProjectID,
		Amount:        amount,
		PaymentDate:   in.PaymentDate,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if payment.PaymentDate == "" {
		payment.PaymentDate = status.Today(now)
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.DefaultPaymentMethod
	}

	if err := s.gw.Insert(ctx, repository.PaymentsTable, payment); err != nil {
		return nil, logFailure(err, "create payment")
	}

	s.emit(ctx, events.PaymentCreated, payment.ID, user, payment)
	return &payment, nil
}

// ListPayments 收款记录，按收款日期倒序，附合计
func (s *Service) ListPayments(ctx context.Context) (models.PaymentListResponse, error) {
	var payments []models.Payment
	q := repository.From(repository.PaymentsTable).
		Include("projects.clients").
		Order("payment_date", false)
	if err := s.gw.Select(ctx, q, &payments); err != nil {
		return models.PaymentListResponse{}, logFailure(err, "list payments")
	}

	return models.PaymentListResponse{
		Payments:      nonNil(payments),
		TotalReceived: finance.PaidAmount(payments),
	}, nil
}

// DeletePayment 删除收款
func (s *Service) DeletePayment(ctx context.Context, user *utils.LoginUser, id string) error {
	if err := s.gw.Delete(ctx, repository.PaymentsTable, id); err != nil {
		return logFailure(err, "delete payment")
	}
	s.emit(ctx, events.PaymentDeleted, id, user, nil)
	return nil
}
