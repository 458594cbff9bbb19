package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	declared   string
	declareErr error

	exchange string
	key      string
	msg      amqp.Publishing
	pubErr   error

	closed bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = name + ":" + kind
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.pubErr
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "pigbot")
	if err != nil {
		t.Fatalf("newAMQPPublisher: %v", err)
	}
	if ch.declared != "pigbot:topic" {
		t.Fatalf("declared = %q", ch.declared)
	}

	ev := Event{
		ID:         "e1",
		Kind:       KindDuelResolved,
		OccurredAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Payload:    DuelResolved{Outcome: "win", WinnerID: 1, LoserID: 2, Damage: 5},
	}
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if ch.exchange != "pigbot" || ch.key != KindDuelResolved {
		t.Fatalf("published to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.ContentType != "application/json" || ch.msg.MessageId != "e1" {
		t.Fatalf("unexpected publishing %+v", ch.msg)
	}

	var got struct {
		Kind    string       `json:"kind"`
		Payload DuelResolved `json:"payload"`
	}
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil {
		t.Fatalf("body: %v", err)
	}
	if got.Kind != KindDuelResolved || got.Payload.Damage != 5 {
		t.Fatalf("body = %+v", got)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Fatalf("Close err=%v closed=%v", err, ch.closed)
	}
}

func TestAMQPPublisher_Errors(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("denied")}
	if _, err := newAMQPPublisher(ch, "x"); err == nil || !ch.closed {
		t.Fatalf("declare failure: err=%v closed=%v", err, ch.closed)
	}

	ch = &fakeChannel{pubErr: errors.New("blocked")}
	p, _ := newAMQPPublisher(ch, "x")
	if err := p.Publish(context.Background(), Event{Kind: KindPigFed}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestLogAndNopPublishers(t *testing.T) {
	ev := Event{ID: "e", Kind: KindAchievementUnlocked, Payload: AchievementUnlocked{Code: 206, Name: "jackpot"}}
	if err := (LogPublisher{}).Publish(context.Background(), ev); err != nil {
		t.Fatalf("LogPublisher: %v", err)
	}
	if err := (Nop{}).Publish(context.Background(), ev); err != nil {
		t.Fatalf("Nop: %v", err)
	}
	bad := Event{Kind: "x", Payload: make(chan int)}
	if err := (LogPublisher{}).Publish(context.Background(), bad); err == nil {
		t.Fatalf("expected marshal error")
	}
}
