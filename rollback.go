package slippi

// FirstIndex is the frame id of the first frame of any game.
const FirstIndex int32 = -123

// slotFor maps a frame id to its dense slot index, id - FirstIndex. A
// negative slot means an id was observed below FirstIndex, which is a
// programmer/decoder error rather than a recoverable condition.
func slotFor(id int32) (int, error) {
	slot := int(id) - int(FirstIndex)
	if slot < 0 {
		return 0, parseErrorf(0, "frame id %d precedes FIRST_INDEX %d", id, FirstIndex)
	}
	return slot, nil
}

// RollbackIndexesInitial returns, for every distinct frame id in f.id, the
// row index of its first (left-to-right) occurrence, in ascending row
// order.
func (f *Frames) RollbackIndexesInitial() ([]int, error) {
	return rollbackIndexesInitial(f.id.values)
}

// RollbackIndexesFinal returns, for every distinct frame id in f.id, the
// row index of its last (rightmost) occurrence, in ascending row order.
func (f *Frames) RollbackIndexesFinal() ([]int, error) {
	return rollbackIndexesFinal(f.id.values)
}

func rollbackIndexesInitial(ids []int32) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	firstAt, err := seenSlots(ids)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(ids))
	for i, id := range ids {
		slot, err := slotFor(id)
		if err != nil {
			return nil, err
		}
		if firstAt[slot] == i {
			out = append(out, i)
		}
	}
	return out, nil
}

func rollbackIndexesFinal(ids []int32) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	lastAt := make(map[int]int, len(ids))
	for i, id := range ids {
		slot, err := slotFor(id)
		if err != nil {
			return nil, err
		}
		lastAt[slot] = i
	}

	out := make([]int, 0, len(lastAt))
	for i, id := range ids {
		slot, err := slotFor(id)
		if err != nil {
			return nil, err
		}
		if lastAt[slot] == i {
			out = append(out, i)
		}
	}
	return out, nil
}

// seenSlots returns, for each id's slot, the row index of its first
// occurrence.
func seenSlots(ids []int32) (map[int]int, error) {
	firstAt := make(map[int]int, len(ids))
	for i, id := range ids {
		slot, err := slotFor(id)
		if err != nil {
			return nil, err
		}
		if _, ok := firstAt[slot]; !ok {
			firstAt[slot] = i
		}
	}
	return firstAt, nil
}
