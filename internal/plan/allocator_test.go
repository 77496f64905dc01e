package plan

import "testing"

func TestSlotRange_MinimumTenSlots(t *testing.T) {
	rng := SlotRange(map[int]Option{1: {Installments: 6}})
	if len(rng) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(rng))
	}
	if rng[0] != 1 || rng[len(rng)-1] != 10 {
		t.Fatalf("expected 1..10, got %d..%d", rng[0], rng[len(rng)-1])
	}
}

func TestSlotRange_GrowsPastHighestUsedIndex(t *testing.T) {
	options := map[int]Option{15: {Installments: 6}}
	rng := SlotRange(options)
	if rng[len(rng)-1] != 16 {
		t.Fatalf("expected upper bound 16, got %d", rng[len(rng)-1])
	}
}

func TestSlotRange_GrowsPastRowCount(t *testing.T) {
	options := map[int]Option{}
	for i := 1; i <= 11; i++ {
		options[i] = Option{Installments: 1}
	}
	rng := SlotRange(options)
	if rng[len(rng)-1] != 12 {
		t.Fatalf("expected upper bound 12, got %d", rng[len(rng)-1])
	}
}

func TestNextSlot_FillsLowestGap(t *testing.T) {
	// indices 1..10 and 12 in use: the 13th row lands on 11, and the range
	// keeps offering a slot beyond 12
	options := map[int]Option{}
	for i := 1; i <= 10; i++ {
		options[i] = Option{Installments: 1}
	}
	options[12] = Option{Installments: 1}

	if got := NextSlot(options); got != 11 {
		t.Fatalf("expected next slot 11, got %d", got)
	}
	rng := SlotRange(options)
	if rng[len(rng)-1] < 13 {
		t.Fatalf("expected range upper bound >= 13, got %d", rng[len(rng)-1])
	}
}

func TestNextSlot_NeverCollides(t *testing.T) {
	options := map[int]Option{}
	for step := 0; step < 25; step++ {
		next := NextSlot(options)
		if _, used := options[next]; used {
			t.Fatalf("step %d: slot %d already in use", step, next)
		}
		rng := SlotRange(options)
		if next < rng[0] || next > rng[len(rng)-1] {
			t.Fatalf("step %d: slot %d outside range 1..%d", step, next, rng[len(rng)-1])
		}
		options[next] = Option{Installments: 1}
	}
}

func TestNextSlot_EmptyPlan(t *testing.T) {
	if got := NextSlot(map[int]Option{}); got != 1 {
		t.Fatalf("expected 1 on empty plan, got %d", got)
	}
}
