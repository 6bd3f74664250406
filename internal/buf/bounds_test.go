package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(320, 22); !ok || got != 7040 {
		t.Fatalf("MulOverflowSafe(320,22)=%d,%v want 7040,true", got, ok)
	}
	if got, ok := MulOverflowSafe(0, 99); !ok || got != 0 {
		t.Fatalf("MulOverflowSafe(0,99)=%d,%v want 0,true", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 4); ok {
		t.Fatalf("negative count should not be accepted")
	}
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(100, 10, 9, 10)
	if err != nil || end != 100 {
		t.Fatalf("CheckListBounds valid case = %d, %v", end, err)
	}
	if _, err := CheckListBounds(100, 10, 10, 10); err == nil {
		t.Fatalf("expected bounds error when list runs past buffer")
	}
	if _, err := CheckListBounds(100, 0, -1, 10); err == nil {
		t.Fatalf("expected error for negative count")
	}
	if _, err := CheckListBounds(100, 0, math.MaxInt, 2); err == nil {
		t.Fatalf("expected overflow error for huge count")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}
