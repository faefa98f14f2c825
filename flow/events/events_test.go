package events

import "testing"

func TestBusEmitFanOutOrder(t *testing.T) {
	b := New()
	var order []int

	b.Subscribe(func(ev Event) { order = append(order, 1) })
	b.Subscribe(func(ev Event) { order = append(order, 2) })
	b.Subscribe(func(ev Event) { order = append(order, 3) })

	b.Emit(Event{Kind: KindSessionStarted, SessionID: "s1"})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected fan-out order: %v", order)
	}
}

func TestBusEmitIsolatesPanickingSubscriber(t *testing.T) {
	b := New()
	var panicked bool
	b.OnSubscriberPanic = func(recovered interface{}, sub int, ev Event) {
		panicked = true
	}

	var secondCalled bool
	b.Subscribe(func(ev Event) { panic("boom") })
	b.Subscribe(func(ev Event) { secondCalled = true })

	b.Emit(Event{Kind: KindNodeStarted})

	if !panicked {
		t.Error("expected OnSubscriberPanic to be invoked")
	}
	if !secondCalled {
		t.Error("expected fan-out to continue to the second subscriber after a panic")
	}
}

func TestBusEmitNoSubscribers(t *testing.T) {
	b := New()
	b.Emit(Event{Kind: KindSessionCompleted})
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	var calls int

	unsubscribe := b.Subscribe(func(ev Event) { calls++ })
	b.Emit(Event{Kind: KindSessionStarted})
	unsubscribe()
	b.Emit(Event{Kind: KindSessionStarted})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no delivery after unsubscribe)", calls)
	}
}

func TestBusUnsubscribeTwiceIsNoop(t *testing.T) {
	b := New()
	unsubscribe := b.Subscribe(func(ev Event) {})
	unsubscribe()
	unsubscribe()
}
