package slippi

import "testing"

func TestValidityAllValidWithoutNull(t *testing.T) {
	var c column[uint32]
	c.push(10)
	c.push(20)
	c.push(30)

	for i, want := range []uint32{10, 20, 30} {
		v, ok := c.get(i)
		if !ok || v != want {
			t.Fatalf("get(%d) = %v, %v; want %v, true", i, v, ok, want)
		}
	}
}

func TestColumnPushNullBackfillsPriorRows(t *testing.T) {
	var c column[uint32]
	c.push(1)
	c.push(2)
	c.pushNull()
	c.push(4)

	wantValid := []bool{true, true, false, true}
	for i, want := range wantValid {
		_, ok := c.get(i)
		if ok != want {
			t.Fatalf("get(%d) valid = %v, want %v", i, ok, want)
		}
	}
	if c.len() != 4 {
		t.Fatalf("len() = %d, want 4", c.len())
	}
}

func TestValidityGetBeyondAllocatedWordsIsFalse(t *testing.T) {
	v := newValidity(0)
	if v.get(200) {
		t.Fatal("get() on an unallocated word should be false")
	}
}

func TestValidityGrowsAcrossWordBoundary(t *testing.T) {
	v := &validity{}
	for i := 0; i < 130; i++ {
		v.push(i%7 != 0)
	}
	if v.Len() != 130 {
		t.Fatalf("Len() = %d, want 130", v.Len())
	}
	for i := 0; i < 130; i++ {
		want := i%7 != 0
		if got := v.get(i); got != want {
			t.Fatalf("get(%d) = %v, want %v", i, got, want)
		}
	}
}
