// Package service 各页面的数据加载与变更操作。
// 读请求并发发出、全部成功才算成功；写操作成功后推送领域事件。
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/storage"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrValidation 请求参数不合法
	ErrValidation = errors.New("参数校验失败")
	// ErrConflict 数据已存在
	ErrConflict = errors.New("数据已存在")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)

// Service 页面服务
type Service struct {
	gw        repository.Gateway
	blobs     storage.BlobStore
	publisher events.Publisher
	bucket    string
	validate  *validator.Validate
	now       func() time.Time
	newID     func() string
}

// Option 可选配置
type Option func(*Service)

// WithClock 替换当前时间来源
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator 替换ID生成
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New 创建服务
func New(gw repository.Gateway, blobs storage.BlobStore, publisher events.Publisher, bucket string, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	s := &Service{
		gw:        gw,
		blobs:     blobs,
		publisher: publisher,
		bucket:    bucket,
		validate:  validator.New(),
		now:       time.Now,
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID 生成按时间有序的ID
func NewID() string {
	return ulid.Make().String()
}

func (s *Service) check(v interface{}) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}

func (s *Service) emit(ctx context.Context, typ, entityID string, user *utils.LoginUser, payload interface{}) {
	event := events.Event{
		Type:       typ,
		EntityID:   entityID,
		OccurredAt: s.now(),
		Payload:    payload,
	}
	if user != nil {
		event.OperatorID = user.ID
	}
	events.Emit(ctx, s.publisher, event)
}

// selectOne 查询单条记录，不存在时返回 repository.ErrNotFound
func selectOne[T any](ctx context.Context, gw repository.Gateway, q repository.Query) (*T, error) {
	var rows []T
	if err := gw.Select(ctx, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", q.Table, repository.ErrNotFound)
	}
	return &rows[0], nil
}

// logFailure 远端读写失败先记日志再返回
func logFailure(err error, op string) error {
	if err != nil {
		utils.LogError(err, map[string]interface{}{"operation": op}, "请求失败")
	}
	return err
}
