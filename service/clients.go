package service

import (
	"context"
	"strings"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/finance"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/status"
	"github.com/BerniceZTT/client_crm/utils"

	"golang.org/x/sync/errgroup"
)

// ListClients 客户列表，按创建时间倒序，search 不区分大小写匹配名称、联系人、邮箱
func (s *Service) ListClients(ctx context.Context, search string) ([]models.ClientSummary, error) {
	var clients []models.Client
	q := repository.From(repository.ClientsTable).
		Include(repository.ProjectsTable).
		Order("created_at", false)
	if err := s.gw.Select(ctx, q, &clients); err != nil {
		return nil, logFailure(err, "list clients")
	}

	summaries := make([]models.ClientSummary, 0, len(clients))
	for _, c := range clients {
		if !matchClient(c, search) {
			continue
		}
		counts := status.CountByStatus(c.Projects)
		summaries = append(summaries, models.ClientSummary{
			Client:            c,
			OngoingProjects:   counts[models.ProjectStatusOngoing],
			CompletedProjects: counts[models.ProjectStatusCompleted],
		})
	}
	return summaries, nil
}

func matchClient(c models.Client, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	contains := func(v *string) bool {
		return v != nil && strings.Contains(strings.ToLower(*v), search)
	}
	return strings.Contains(strings.ToLower(c.Name), search) ||
		contains(c.ContactPerson) ||
		contains(c.Email)
}

// CreateClient 新建客户
func (s *Service) CreateClient(ctx context.Context, user *utils.LoginUser, in models.ClientInput) (*models.Client, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	now := s.now()
	client := models.Client{
		ID:            s.newID(),
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		WhatsApp:      in.WhatsApp,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     user.IDPtr(),
	}
	if err := s.gw.Insert(ctx, repository.ClientsTable, client); err != nil {
		return nil, logFailure(err, "create client")
	}

	s.emit(ctx, events.ClientCreated, client.ID, user, client)
	return &client, nil
}

// UpdateClient 更新客户资料
func (s *Service) UpdateClient(ctx context.Context, user *utils.LoginUser, id string, in models.ClientInput) error {
	if err := s.check(in); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"name":           strings.TrimSpace(in.Name),
		"contact_person": in.ContactPerson,
		"phone":          in.Phone,
		"email":          in.Email,
		"address":        in.Address,
		"whatsapp":       in.WhatsApp,
		"updated_at":     s.now(),
	}
	if err := s.gw.Update(ctx, repository.ClientsTable, id, fields); err != nil {
		return logFailure(err, "update client")
	}

	s.emit(ctx, events.ClientUpdated, id, user, nil)
	return nil
}

// DeleteClient 删除客户及其项目、收款、备注、提醒、文件
func (s *Service) DeleteClient(ctx context.Context, user *utils.LoginUser, id string) error {
	var (
		projects []models.Project
		files    []models.FileRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := repository.From(repository.ProjectsTable).Select("id").Eq("client_id", id)
		return s.gw.Select(gctx, q, &projects)
	})
	g.Go(func() error {
		q := repository.From(repository.FilesTable).Select("id", "file_path").Eq("client_id", id)
		return s.gw.Select(gctx, q, &files)
	})
	if err := g.Wait(); err != nil {
		return logFailure(err, "delete client")
	}

	if len(files) > 0 {
		paths := make([]string, 0, len(files))
		for _, f := range files {
			paths = append(paths, f.FilePath)
		}
		if err := s.blobs.Remove(ctx, s.bucket, paths...); err != nil {
			return logFailure(err, "delete client files")
		}
	}

	if len(projects) > 0 {
		projectIDs := make([]string, 0, len(projects))
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
		if _, err := s.gw.DeleteWhere(ctx, repository.PaymentsTable, "project_id", projectIDs); err != nil {
			return logFailure(err, "delete client payments")
		}
	}

	for _, table := range []string{
		repository.ProjectsTable,
		repository.NotesTable,
		repository.RemindersTable,
		repository.FilesTable,
	} {
		if _, err := s.gw.DeleteWhere(ctx, table, "client_id", id); err != nil {
			return logFailure(err, "delete client "+table)
		}
	}

	if err := s.gw.Delete(ctx, repository.ClientsTable, id); err != nil {
		return logFailure(err, "delete client")
	}

	s.emit(ctx, events.ClientDeleted, id, user, nil)
	return nil
}

// ClientDetails 客户详情：项目（含收款）、备注、文件及收入合计
func (s *Service) ClientDetails(ctx context.Context, id string) (models.ClientDetailResponse, error) {
	var (
		client   *models.Client
		projects []models.Project
		notes    []models.Note
		files    []models.FileRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		client, err = selectOne[models.Client](gctx, s.gw, repository.From(repository.ClientsTable).Eq("id", id))
		return err
	})
	g.Go(func() error {
		q := repository.From(repository.ProjectsTable).
			Eq("client_id", id).
			Include(repository.PaymentsTable).
			Order("created_at", false)
		return s.gw.Select(gctx, q, &projects)
	})
	g.Go(func() error {
		q := repository.From(repository.NotesTable).Eq("client_id", id).Order("created_at", false)
		return s.gw.Select(gctx, q, &notes)
	})
	g.Go(func() error {
		q := repository.From(repository.FilesTable).Eq("client_id", id).Order("uploaded_at", false)
		return s.gw.Select(gctx, q, &files)
	})
	if err := g.Wait(); err != nil {
		return models.ClientDetailResponse{}, logFailure(err, "client details")
	}

	return models.ClientDetailResponse{
		Client:       *client,
		Projects:     finance.SummarizeAll(projects),
		Notes:        nonNil(notes),
		Files:        nonNil(files),
		TotalRevenue: finance.TotalRevenue(projects),
		TotalPending: finance.TotalPendingAcrossClient(projects),
	}, nil
}

// AddNote 新增客户备注
func (s *Service) AddNote(ctx context.Context, user *utils.LoginUser, clientID string, in models.NoteInput) (*models.Note, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := s.check(in); err != nil {
		return nil, err
	}

	note := models.Note{
		ID:        s.newID(),
		ClientID:  clientID,
		ProjectID: in.ProjectID,
		Note:      in.Note,
		CreatedAt: s.now(),
		CreatedBy: user.IDPtr(),
	}
	if err := s.gw.Insert(ctx, repository.NotesTable, note); err != nil {
		return nil, logFailure(err, "add note")
	}

	s.emit(ctx, events.NoteCreated, note.ID, user, note)
	return &note, nil
}

// DeleteNote 删除备注
func (s *Service) DeleteNote(ctx context.Context, user *utils.LoginUser, id string) error {
	if err := s.gw.Delete(ctx, repository.NotesTable, id); err != nil {
		return logFailure(err, "delete note")
	}
	s.emit(ctx, events.NoteDeleted, id, user, nil)
	return nil
}

// nonNil 空结果返回空切片，JSON 输出 [] 而不是 null
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
