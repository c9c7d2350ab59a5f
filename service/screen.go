package service

import (
	"context"
	"time"
)

// ScreenState 页面加载状态
type ScreenState string

const (
	StateLoading ScreenState = "loading"
	StateLoaded  ScreenState = "loaded"
	StateErrored ScreenState = "errored"
)

// Screen 单个页面的数据快照。加载失败时保留上一次成功的数据
type Screen[T any] struct {
	state    ScreenState
	data     T
	err      error
	loadedAt time.Time
}

// NewScreen 初始为加载中
func NewScreen[T any]() *Screen[T] {
	return &Screen[T]{state: StateLoading}
}

// State 当前状态
func (s *Screen[T]) State() ScreenState { return s.state }

// Data 最近一次成功加载的数据
func (s *Screen[T]) Data() T { return s.data }

// Err 最近一次失败原因，成功后清空
func (s *Screen[T]) Err() error { return s.err }

// LoadedAt 最近一次成功加载时间
func (s *Screen[T]) LoadedAt() time.Time { return s.loadedAt }

// Load 重新加载
func (s *Screen[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) error {
	s.state = StateLoading

	data, err := fetch(ctx)
	if err != nil {
		s.state = StateErrored
		s.err = err
		return err
	}

	s.state = StateLoaded
	s.data = data
	s.err = nil
	s.loadedAt = time.Now()
	return nil
}
