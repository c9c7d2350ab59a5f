package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/storage"
)

type updateCall struct {
	table  string
	id     string
	fields map[string]interface{}
}

type deleteWhereCall struct {
	table  string
	column string
	value  interface{}
}

// fakeGateway 按表返回预置数据，并记录所有调用
type fakeGateway struct {
	mu sync.Mutex

	rows      map[string]interface{}
	selectErr map[string]error
	writeErr  error

	queries     []repository.Query
	inserts     map[string][]interface{}
	updates     []updateCall
	deletes     []string
	deleteWhere []deleteWhereCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		rows:      map[string]interface{}{},
		selectErr: map[string]error{},
		inserts:   map[string][]interface{}{},
	}
}

func (f *fakeGateway) Select(ctx context.Context, q repository.Query, out interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, q)
	if err := f.selectErr[q.Table]; err != nil {
		return err
	}
	rows, ok := f.rows[q.Table]
	if !ok {
		return nil
	}

	dst := reflect.ValueOf(out).Elem()
	src := reflect.ValueOf(rows)
	if dst.Type() != src.Type() {
		return fmt.Errorf("fake: %s rows are %s, want %s", q.Table, src.Type(), dst.Type())
	}
	dst.Set(src)
	return nil
}

func (f *fakeGateway) Insert(ctx context.Context, table string, rows ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.inserts[table] = append(f.inserts[table], rows...)
	return nil
}

func (f *fakeGateway) Update(ctx context.Context, table, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updates = append(f.updates, updateCall{table: table, id: id, fields: fields})
	return nil
}

func (f *fakeGateway) Delete(ctx context.Context, table, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deletes = append(f.deletes, table+"/"+id)
	return nil
}

func (f *fakeGateway) DeleteWhere(ctx context.Context, table, column string, value interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.deleteWhere = append(f.deleteWhere, deleteWhereCall{table: table, column: column, value: value})
	return 1, nil
}

func (f *fakeGateway) queriesFor(table string) []repository.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.Query
	for _, q := range f.queries {
		if q.Table == table {
			out = append(out, q)
		}
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// testNow 2026-10-18 15:30 UTC
var testNow = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

type harness struct {
	gw    *fakeGateway
	blobs *storage.MemoryStore
	pub   *fakePublisher
	svc   *Service
}

func newHarness() *harness {
	h := &harness{
		gw:    newFakeGateway(),
		blobs: storage.NewMemoryStore(),
		pub:   &fakePublisher{},
	}
	seq := 0
	h.svc = New(h.gw, h.blobs, h.pub, "client-files",
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id%d", seq)
		}),
	)
	return h
}

func strPtr(s string) *string { return &s }

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }
