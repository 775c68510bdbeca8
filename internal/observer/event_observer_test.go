package observer

import (
	"context"
	"testing"
	"time"
)

func TestMetricsObserver(t *testing.T) {
	obs := NewMetricsObserver().(*MetricsObserver)
	ctx := context.Background()

	obs.OnEvent(ctx, ExtractionEvent{EventType: ExtractionStarted})
	obs.OnEvent(ctx, ExtractionEvent{EventType: ExtractionCompleted, ProcessingTime: 100 * time.Millisecond})
	obs.OnEvent(ctx, ExtractionEvent{EventType: ExtractionStarted})
	obs.OnEvent(ctx, ExtractionEvent{EventType: ExtractionFailed})
	obs.OnEvent(ctx, ExtractionEvent{EventType: BackdropSuspect})

	metrics := obs.GetMetrics()
	if metrics["total_extractions"].(int64) != 2 {
		t.Errorf("total_extractions = %v, want 2", metrics["total_extractions"])
	}
	if metrics["successful_extractions"].(int64) != 1 {
		t.Errorf("successful_extractions = %v, want 1", metrics["successful_extractions"])
	}
	if metrics["failed_extractions"].(int64) != 1 {
		t.Errorf("failed_extractions = %v, want 1", metrics["failed_extractions"])
	}
	if metrics["avg_processing_time"].(time.Duration) != 100*time.Millisecond {
		t.Errorf("avg_processing_time = %v, want 100ms", metrics["avg_processing_time"])
	}
}

// channelObserver signals on a channel so async delivery can be awaited
type channelObserver struct {
	name string
	ch   chan ExtractionEvent
}

func (o *channelObserver) OnEvent(ctx context.Context, event ExtractionEvent) {
	o.ch <- event
}

func (o *channelObserver) GetObserverName() string {
	return o.name
}

func TestEventPublisher_NotifiesSubscribers(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &channelObserver{name: "test", ch: make(chan ExtractionEvent, 1)}
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), ExtractionEvent{EventType: PairFetched})

	select {
	case event := <-obs.ch:
		if event.EventType != PairFetched {
			t.Errorf("event type = %s, want %s", event.EventType, PairFetched)
		}
	case <-time.After(time.Second):
		t.Fatal("observer never received the event")
	}
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &channelObserver{name: "test", ch: make(chan ExtractionEvent, 1)}
	publisher.Subscribe(obs)
	publisher.Unsubscribe(obs)

	publisher.NotifyObservers(context.Background(), ExtractionEvent{EventType: PairFetched})

	select {
	case <-obs.ch:
		t.Fatal("unsubscribed observer received an event")
	case <-time.After(50 * time.Millisecond):
	}
}
