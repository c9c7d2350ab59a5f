package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type recordedPublish struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	published []recordedPublish
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, recordedPublish{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisherPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch, exchange: "crm.events"}

	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	event := Event{Type: PaymentCreated, EntityID: "pay1", OperatorID: "u1", OccurredAt: at}
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(ch.published) != 1 {
		t.Fatalf("published %d messages", len(ch.published))
	}
	got := ch.published[0]
	if got.exchange != "crm.events" || got.key != PaymentCreated {
		t.Errorf("exchange/key = %s/%s", got.exchange, got.key)
	}
	if got.msg.DeliveryMode != amqp091.Persistent || got.msg.ContentType != "application/json" {
		t.Errorf("unexpected publishing %+v", got.msg)
	}

	var decoded Event
	if err := json.Unmarshal(got.msg.Body, &decoded); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if decoded.EntityID != "pay1" || decoded.OperatorID != "u1" || !decoded.OccurredAt.Equal(at) {
		t.Errorf("decoded = %+v", decoded)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Errorf("Close: %v closed=%v", err, ch.closed)
	}
}

func TestAMQPPublisherError(t *testing.T) {
	p := &AMQPPublisher{channel: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}
	if err := p.Publish(context.Background(), Event{Type: ClientCreated}); err == nil {
		t.Fatal("expected publish error")
	}
}

type countingPublisher struct {
	events []Event
	err    error
}

func (c *countingPublisher) Publish(ctx context.Context, event Event) error {
	c.events = append(c.events, event)
	return c.err
}

func (c *countingPublisher) Close() error { return nil }

func TestEmitSwallowsErrorsAndStamps(t *testing.T) {
	p := &countingPublisher{err: errors.New("broker down")}
	Emit(context.Background(), p, Event{Type: FileUploaded, EntityID: "f1"})

	if len(p.events) != 1 {
		t.Fatalf("events = %d", len(p.events))
	}
	if p.events[0].OccurredAt.IsZero() {
		t.Error("OccurredAt not set")
	}

	// nil 推送器不报错
	Emit(context.Background(), nil, Event{Type: FileUploaded})
}

func TestNewPublisherWithoutURL(t *testing.T) {
	p, err := NewPublisher("", "crm.events")
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	if _, ok := p.(NoopPublisher); !ok {
		t.Fatalf("expected NoopPublisher, got %T", p)
	}
	if err := p.Publish(context.Background(), Event{Type: ClientCreated}); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}
