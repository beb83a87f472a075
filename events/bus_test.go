package events

import (
	"reflect"
	"testing"
)

func TestPublishDispatchesInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(BoostActivated, func(_ Type, _ interface{}) {
		order = append(order, "first")
	})
	bus.Subscribe(BoostActivated, func(_ Type, _ interface{}) {
		order = append(order, "second")
	})

	bus.Publish(BoostActivated, ActivatedPayload{BoostID: "b-1"})

	want := []string{"first", "second"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("expected dispatch order %v, got %v", want, order)
	}
}

func TestPublishDeliversPayload(t *testing.T) {
	bus := NewBus()
	var got ExpiredPayload

	bus.Subscribe(BoostExpired, func(_ Type, payload interface{}) {
		got = payload.(ExpiredPayload)
	})

	sent := ExpiredPayload{PlayerID: "p-1", GameID: "g-1", BoostID: "b-1", PerkID: "perk-1", PerkName: "Speed Boost"}
	bus.Publish(BoostExpired, sent)

	if got != sent {
		t.Fatalf("expected payload %+v, got %+v", sent, got)
	}
}

func TestPublishIgnoresOtherEventTypes(t *testing.T) {
	bus := NewBus()
	calls := 0

	bus.Subscribe(BoostExpired, func(_ Type, _ interface{}) {
		calls++
	})

	bus.Publish(BoostActivated, ActivatedPayload{BoostID: "b-1"})

	if calls != 0 {
		t.Fatalf("expected no calls for unrelated event type, got %d", calls)
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	// Must not panic: a subscriber that is not listening simply misses the event.
	bus.Publish(BoostExpired, ExpiredPayload{BoostID: "b-1"})
}

func TestPanickingHandlerDoesNotStopFanout(t *testing.T) {
	bus := NewBus()
	delivered := false

	bus.Subscribe(BoostActivated, func(_ Type, _ interface{}) {
		panic("bad subscriber")
	})
	bus.Subscribe(BoostActivated, func(_ Type, _ interface{}) {
		delivered = true
	})

	bus.Publish(BoostActivated, ActivatedPayload{BoostID: "b-1"})

	if !delivered {
		t.Fatal("expected second handler to run after first panicked")
	}
}
