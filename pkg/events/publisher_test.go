package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEmitFansOutToLocalSubscribers(t *testing.T) {
	p := NewPublisher(nil, "test", "events")

	ch := p.Subscribe("sub-1", 4)
	defer p.Unsubscribe("sub-1")

	err := p.Emit(context.Background(), TTSGenerated, "job-1", TTSGeneratedData{
		JobID:      "job-1",
		AudioBytes: 128,
		DurationMs: 42,
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	select {
	case env := <-ch:
		if env.Type != TTSGenerated {
			t.Errorf("type = %s", env.Type)
		}
		if env.JobID != "job-1" || env.ID == "" {
			t.Errorf("envelope ids wrong: %+v", env)
		}
		var data TTSGeneratedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatal(err)
		}
		if data.AudioBytes != 128 {
			t.Errorf("payload not preserved: %+v", data)
		}
	default:
		t.Fatal("subscriber received nothing")
	}
}

func TestEmitDropsWhenSubscriberFull(t *testing.T) {
	p := NewPublisher(nil, "test", "events")
	p.Subscribe("slow", 1)
	defer p.Unsubscribe("slow")

	// Second emit overflows the buffer; it must not block or error.
	for i := 0; i < 3; i++ {
		if err := p.Emit(context.Background(), TTSFailed, "", TTSFailedData{Reason: "poll_timeout"}); err != nil {
			t.Fatalf("Emit %d: %v", i, err)
		}
	}
}

func TestEmitRejectsUnmarshalablePayload(t *testing.T) {
	p := NewPublisher(nil, "test", "events")
	ch := p.Subscribe("sub", 4)
	defer p.Unsubscribe("sub")

	if err := p.Emit(context.Background(), TTSFailed, "job-x", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}

	select {
	case env := <-ch:
		t.Errorf("subscriber received envelope for failed marshal: %+v", env)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	p := NewPublisher(nil, "test", "events")
	ch := p.Subscribe("sub", 1)
	p.Unsubscribe("sub")

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}
