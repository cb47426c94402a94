package event

import "testing"

type damageTaken struct {
	Target uint32
	Amount int
}

type levelLoaded struct {
	Name string
}

func TestPublishFansOutInSubscriptionOrder(t *testing.T) {
	b := NewBus()

	var order []string
	Subscribe(b, func(damageTaken) { order = append(order, "first") })
	Subscribe(b, func(damageTaken) { order = append(order, "second") })

	Publish(b, damageTaken{Target: 7, Amount: 3})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("delivery order %v, want [first second]", order)
	}
}

func TestPublishCarriesPayload(t *testing.T) {
	b := NewBus()

	var got damageTaken
	Subscribe(b, func(ev damageTaken) { got = ev })

	Publish(b, damageTaken{Target: 42, Amount: 9})
	if got.Target != 42 || got.Amount != 9 {
		t.Fatalf("handler received %+v", got)
	}
}

func TestTypesDoNotCross(t *testing.T) {
	b := NewBus()

	damage := 0
	loads := 0
	Subscribe(b, func(damageTaken) { damage++ })
	Subscribe(b, func(levelLoaded) { loads++ })

	Publish(b, damageTaken{})
	Publish(b, damageTaken{})
	Publish(b, levelLoaded{Name: "arena"})

	if damage != 2 || loads != 1 {
		t.Fatalf("damage=%d loads=%d, want 2 and 1", damage, loads)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := NewBus()
	Publish(b, levelLoaded{Name: "empty"})
}

func TestSubscribeNExpires(t *testing.T) {
	b := NewBus()

	calls := 0
	permanent := 0
	SubscribeN(b, 2, func(damageTaken) { calls++ })
	Subscribe(b, func(damageTaken) { permanent++ })

	for i := 0; i < 5; i++ {
		Publish(b, damageTaken{})
	}

	if calls != 2 {
		t.Fatalf("expiring handler ran %d times, want 2", calls)
	}
	if permanent != 5 {
		t.Fatalf("permanent handler ran %d times, want 5", permanent)
	}
}

func TestSubscribeNRejectsNonPositiveBudget(t *testing.T) {
	b := NewBus()

	calls := 0
	SubscribeN(b, 0, func(damageTaken) { calls++ })
	SubscribeN(b, -3, func(damageTaken) { calls++ })

	Publish(b, damageTaken{})
	if calls != 0 {
		t.Fatalf("handler with zero budget ran %d times", calls)
	}
}
