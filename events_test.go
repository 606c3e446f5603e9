package slippi

import (
	"bytes"
	"testing"
)

func splitterSegment(data []byte, actualSize uint16, wrappedCode byte, isFinal bool) []byte {
	buf := make([]byte, 512)
	copy(buf, data)
	var w BitWriter
	w.WriteBytes(buf)
	w.WriteUint16(actualSize)
	w.WriteUint8(wrappedCode)
	w.WriteBool(isFinal)
	return w.Bytes()
}

func TestSplitAccumulatorSingleSegment(t *testing.T) {
	var acc splitAccumulator
	payload := bytes.Repeat([]byte{0xab}, 100)
	seg := splitterSegment(payload, 100, byte(CmdGameEnd), true)

	code, raw, actualSize, final, err := acc.accumulate(seg)
	if err != nil {
		t.Fatal(err)
	}
	if !final {
		t.Fatal("expected final=true for a single-segment message")
	}
	if actualSize != 100 {
		t.Fatalf("actualSize = %d, want 100", actualSize)
	}
	if code != byte(CmdGameEnd) {
		t.Fatalf("wrappedCode = %#x, want %#x", code, CmdGameEnd)
	}
	if !bytes.Equal(raw[:100], payload) {
		t.Fatal("reassembled payload mismatch")
	}
	if len(raw) != 512 {
		t.Fatalf("len(raw) = %d, want 512 (full segment retained for round-trip)", len(raw))
	}
}

func TestSplitAccumulatorMultiSegmentSurvivesAcrossCalls(t *testing.T) {
	var acc splitAccumulator
	first := bytes.Repeat([]byte{0x01}, 512)
	second := bytes.Repeat([]byte{0x02}, 200)

	_, _, _, final, err := acc.accumulate(splitterSegment(first, 512, byte(CmdGeckoCodes), false))
	if err != nil {
		t.Fatal(err)
	}
	if final {
		t.Fatal("first segment should not be final")
	}

	code, raw, actualSize, final, err := acc.accumulate(splitterSegment(second, 200, byte(CmdGeckoCodes), true))
	if err != nil {
		t.Fatal(err)
	}
	if !final {
		t.Fatal("second segment should be final")
	}
	if code != byte(CmdGeckoCodes) {
		t.Fatalf("wrappedCode = %#x, want %#x", code, CmdGeckoCodes)
	}
	if len(raw) != 1024 {
		t.Fatalf("len(raw) = %d, want 1024", len(raw))
	}
	// actualSize is the sum across both segments, returned before the
	// accumulator resets itself.
	if actualSize != 712 {
		t.Fatalf("actualSize = %d, want 712", actualSize)
	}
	// Accumulator resets after a final segment.
	if len(acc.raw) != 0 || acc.actualSize != 0 {
		t.Fatal("accumulator did not reset after final segment")
	}
}

func TestSplitAccumulatorRejectsWrongSize(t *testing.T) {
	var acc splitAccumulator
	_, _, _, _, err := acc.accumulate([]byte{0x01, 0x02})
	if err == nil {
		t.Fatal("expected an error for a non-516-byte splitter payload")
	}
}
