package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/storage"
	"github.com/BerniceZTT/client_crm/utils"

	"golang.org/x/sync/errgroup"
)

// UploadInput 上传文件参数
type UploadInput struct {
	ClientID    string
	ProjectID   *string
	FileType    string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

var fileTypes = map[string]bool{
	models.FileTypeDocument: true,
	models.FileTypeContract: true,
	models.FileTypeInvoice:  true,
	models.FileTypeImage:    true,
	models.FileTypeOther:    true,
}

func (in UploadInput) check() error {
	switch {
	case in.ClientID == "":
		return fmt.Errorf("%w: 请选择客户", ErrValidation)
	case in.FileName == "":
		return fmt.Errorf("%w: 缺少文件名", ErrValidation)
	case in.FileType != "" && !fileTypes[in.FileType]:
		return fmt.Errorf("%w: 未知的文件类型 %q", ErrValidation, in.FileType)
	case in.Size < 0:
		return fmt.Errorf("%w: 文件大小无效", ErrValidation)
	case in.Content == nil:
		return fmt.Errorf("%w: 缺少文件内容", ErrValidation)
	}
	return nil
}

// FileManager 文件列表和客户下拉
func (s *Service) FileManager(ctx context.Context) (models.FileManagerResponse, error) {
	var (
		files   []models.FileRecord
		clients []models.Client
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := repository.From(repository.FilesTable).
			Include(repository.ClientsTable).
			Order("uploaded_at", false)
		return s.gw.Select(gctx, q, &files)
	})
	g.Go(func() error {
		q := repository.From(repository.ClientsTable).Select("id", "name").Order("name", true)
		return s.gw.Select(gctx, q, &clients)
	})
	if err := g.Wait(); err != nil {
		return models.FileManagerResponse{}, logFailure(err, "file manager")
	}

	return models.FileManagerResponse{Files: nonNil(files), Clients: nonNil(clients)}, nil
}

// UploadFile 先写对象存储，再写文件记录
func (s *Service) UploadFile(ctx context.Context, user *utils.LoginUser, in UploadInput) (*models.FileRecord, error) {
	in.FileName = strings.TrimSpace(in.FileName)
	if err := in.check(); err != nil {
		return nil, err
	}

	if _, err := selectOne[models.Client](ctx, s.gw, repository.From(repository.ClientsTable).Select("id").Eq("id", in.ClientID)); err != nil {
		return nil, logFailure(err, "upload file")
	}

	now := s.now()
	objectPath := storage.ObjectPath(in.ClientID, in.FileName, now)
	if err := s.blobs.Upload(ctx, s.bucket, objectPath, in.Content, in.Size, in.ContentType); err != nil {
		return nil, logFailure(err, "upload file")
	}

	fileType := in.FileType
	if fileType == "" {
		fileType = models.FileTypeDocument
	}
	size := in.Size
	record := models.FileRecord{
		ID:         s.newID(),
		ClientID:   in.ClientID,
		ProjectID:  in.ProjectID,
		FileName:   in.FileName,
		FilePath:   objectPath,
		FileType:   fileType,
		FileSize:   &size,
		UploadedAt: now,
		UploadedBy: user.IDPtr(),
	}
	if err := s.gw.Insert(ctx, repository.FilesTable, record); err != nil {
		// 记录写入失败时清理已上传的对象
		if rmErr := s.blobs.Remove(ctx, s.bucket, objectPath); rmErr != nil {
			utils.LogError(rmErr, map[string]interface{}{"path": objectPath}, "清理上传文件失败")
		}
		return nil, logFailure(err, "upload file")
	}

	s.emit(ctx, events.FileUploaded, record.ID, user, record)
	return &record, nil
}

// DownloadFile 返回文件记录和内容，调用方负责关闭
func (s *Service) DownloadFile(ctx context.Context, id string) (*models.FileRecord, io.ReadCloser, error) {
	record, err := selectOne[models.FileRecord](ctx, s.gw, repository.From(repository.FilesTable).Eq("id", id))
	if err != nil {
		return nil, nil, logFailure(err, "download file")
	}

	rc, err := s.blobs.Download(ctx, s.bucket, record.FilePath)
	if err != nil {
		return nil, nil, logFailure(err, "download file")
	}
	return record, rc, nil
}

// DeleteFile 先删对象再删记录
func (s *Service) DeleteFile(ctx context.Context, user *utils.LoginUser, id string) error {
	record, err := selectOne[models.FileRecord](ctx, s.gw, repository.From(repository.FilesTable).Eq("id", id))
	if err != nil {
		return logFailure(err, "delete file")
	}

	if err := s.blobs.Remove(ctx, s.bucket, record.FilePath); err != nil {
		return logFailure(err, "delete file")
	}
	if err := s.gw.Delete(ctx, repository.FilesTable, id); err != nil {
		return logFailure(err, "delete file")
	}

	s.emit(ctx, events.FileDeleted, id, user, nil)
	return nil
}
