package service

import (
	"context"
	"errors"
	"testing"
)

func TestScreenTransitions(t *testing.T) {
	screen := NewScreen[[]string]()
	if screen.State() != StateLoading {
		t.Fatalf("initial state = %s", screen.State())
	}

	ctx := context.Background()
	if err := screen.Load(ctx, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if screen.State() != StateLoaded || len(screen.Data()) != 2 || screen.Err() != nil {
		t.Fatalf("after success: state=%s data=%v err=%v", screen.State(), screen.Data(), screen.Err())
	}
	loadedAt := screen.LoadedAt()

	failure := errors.New("request failed")
	if err := screen.Load(ctx, func(context.Context) ([]string, error) {
		return nil, failure
	}); !errors.Is(err, failure) {
		t.Fatalf("Load error = %v", err)
	}
	if screen.State() != StateErrored {
		t.Fatalf("state = %s, want errored", screen.State())
	}
	if len(screen.Data()) != 2 {
		t.Fatalf("stale data should be kept, got %v", screen.Data())
	}
	if !screen.LoadedAt().Equal(loadedAt) {
		t.Fatal("LoadedAt changed on failure")
	}

	if err := screen.Load(ctx, func(context.Context) ([]string, error) {
		return []string{"c"}, nil
	}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if screen.State() != StateLoaded || screen.Err() != nil || screen.Data()[0] != "c" {
		t.Fatalf("after recovery: state=%s data=%v err=%v", screen.State(), screen.Data(), screen.Err())
	}
}
