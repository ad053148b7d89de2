package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(7, 0, 5); got != 5 {
		t.Fatalf("Clamp(7,0,5)=%d", got)
	}
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Fatalf("Clamp(-1,0,5)=%d", got)
	}
	if got := Clamp(3, 5, 0); got != 3 {
		t.Fatalf("Clamp with swapped bounds=%d", got)
	}
}

func TestStepClamp_Saturates(t *testing.T) {
	var v uint8
	if got := StepClamp(v, -1, 0, 1); got != 0 {
		t.Fatalf("decrement below zero: got %d", got)
	}
	if got := StepClamp(uint8(5), +1, 0, 5); got != 5 {
		t.Fatalf("increment past hi: got %d", got)
	}
	if got := StepClamp(uint8(2), +1, 0, 5); got != 3 {
		t.Fatalf("plain increment: got %d", got)
	}
}

func TestBetween(t *testing.T) {
	if !Between(600, 0, 600) || Between(601, 600, 0) {
		t.Fatal("Between bounds are inclusive and order-insensitive")
	}
}
