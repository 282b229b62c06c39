package services

import "testing"

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	bus.Subscribe("topic", func() { order = append(order, 1) })
	bus.Subscribe("topic", func() { order = append(order, 2) })
	bus.Subscribe("topic", func() { order = append(order, 3) })

	bus.Publish("topic")

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestBusTopicsAreIndependent(t *testing.T) {
	bus := NewBus()

	var aCount, bCount int
	bus.Subscribe("a", func() { aCount++ })
	bus.Subscribe("b", func() { bCount++ })

	bus.Publish("a")
	bus.Publish("a")

	if aCount != 2 || bCount != 0 {
		t.Fatalf("aCount=%d bCount=%d, want 2 and 0", aCount, bCount)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var count int
	dispose := bus.Subscribe("topic", func() { count++ })

	bus.Publish("topic")
	dispose()
	bus.Publish("topic")

	if count != 1 {
		t.Fatalf("count = %d, want 1 (no delivery after dispose)", count)
	}

	// Disposing twice is harmless
	dispose()
	bus.Publish("topic")
	if count != 1 {
		t.Fatalf("count = %d after double dispose, want 1", count)
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	// Must not panic or block
	bus.Publish("nobody-listening")
}

func TestBusSubscriberCanUnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus()

	var dispose func()
	var fired int
	dispose = bus.Subscribe("topic", func() {
		fired++
		dispose()
	})

	bus.Publish("topic")
	bus.Publish("topic")

	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestPerUserMealTopics(t *testing.T) {
	if TopicMealsChanged("user-1") == TopicMealsChanged("user-2") {
		t.Fatal("meal topics must be scoped per user")
	}

	bus := NewBus()
	var fired int
	bus.Subscribe(TopicMealsChanged("user-1"), func() { fired++ })

	bus.Publish(TopicMealsChanged("user-2"))
	if fired != 0 {
		t.Fatal("user-1 subscriber fired for user-2's topic")
	}
	bus.Publish(TopicMealsChanged("user-1"))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}
