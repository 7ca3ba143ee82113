package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	if err := q.Publish(ctx, Message{Type: "record", Body: []byte("rec-1")}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	select {
	case msg := <-messages:
		if msg.Type != "record" || string(msg.Body) != "rec-1" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
	}
}

func TestInMemoryPublishRespectsCancel(t *testing.T) {
	q := NewInMemory(1)
	ctx, cancel := context.WithCancel(context.Background())
	if err := q.Publish(ctx, Message{Type: "record"}); err != nil {
		t.Fatalf("publish into capacity: %v", err)
	}
	cancel()
	if err := q.Publish(ctx, Message{Type: "record"}); err == nil {
		t.Fatalf("expected publish to fail once the context is cancelled")
	}
}

func TestInMemoryConsumeClosesWithoutReader(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewInMemory(1)
	if err := q.Publish(ctx, Message{Type: "record", Body: []byte("rec-1")}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Let the goroutine pick up the message and block on delivery with no
	// reader, then cancel. It must drop the message and close the channel
	// instead of waiting forever.
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)

	select {
	case msg, open := <-messages:
		if open {
			t.Fatalf("expected closed channel after cancel, got message %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for channel close")
	}
}

func TestInMemoryConsumeClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewInMemory(1)
	messages, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	cancel()
	select {
	case _, open := <-messages:
		if open {
			t.Fatalf("expected channel to close after cancel")
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for channel close")
	}
}
