package slippi

import "testing"

// TestRollbackIndexesSpecScenario reproduces the documented rollback
// sub-sequence: ids [..., 350, 351, 351, 352, ...] at rows 473..476, where
// row 475 is a rollback-repeated 351.
func TestRollbackIndexesSpecScenario(t *testing.T) {
	ids := make([]int32, 477)
	for i := range ids[:475] {
		ids[i] = FirstIndex + int32(i)
	}
	ids[475] = 351 // rollback duplicate of row 474
	ids[476] = 352

	initial, err := rollbackIndexesInitial(ids)
	if err != nil {
		t.Fatal(err)
	}
	wantInitialTail := []int{473, 474, 476}
	gotInitialTail := lastN(initial, 3)
	if !equalInts(gotInitialTail, wantInitialTail) {
		t.Fatalf("rollbackIndexesInitial tail = %v, want %v", gotInitialTail, wantInitialTail)
	}

	final, err := rollbackIndexesFinal(ids)
	if err != nil {
		t.Fatal(err)
	}
	wantFinalTail := []int{473, 475, 476}
	gotFinalTail := lastN(final, 3)
	if !equalInts(gotFinalTail, wantFinalTail) {
		t.Fatalf("rollbackIndexesFinal tail = %v, want %v", gotFinalTail, wantFinalTail)
	}
}

func TestSlotForRejectsIDBelowFirstIndex(t *testing.T) {
	if _, err := slotFor(FirstIndex - 1); err == nil {
		t.Fatal("expected an error for an id preceding FirstIndex")
	}
}

func TestRollbackIndexesEmpty(t *testing.T) {
	initial, err := rollbackIndexesInitial(nil)
	if err != nil || initial != nil {
		t.Fatalf("rollbackIndexesInitial(nil) = %v, %v", initial, err)
	}
	final, err := rollbackIndexesFinal(nil)
	if err != nil || final != nil {
		t.Fatalf("rollbackIndexesFinal(nil) = %v, %v", final, err)
	}
}

func lastN(s []int, n int) []int {
	if len(s) < n {
		return s
	}
	return s[len(s)-n:]
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
