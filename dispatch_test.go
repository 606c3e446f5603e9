package slippi

import (
	"bytes"
	"testing"
)

// buildTestReplay assembles a complete, well-formed replay byte stream for
// v3.12: two occupied ports (P1 a standalone character, P2 Ice Climbers),
// a FirstIndex..FirstIndex+2 sequence of frames with a rollback-duplicated
// middle frame, one Item row on the first frame, and a GameEnd.
func buildTestReplay(t *testing.T) []byte {
	t.Helper()

	cfg := gameStartConfig{major: 3, minor: 12, stage: 3, damageRatio: 1.0, randomSeed: 7}
	cfg.players[0] = playerV0Fields{playerType: uint8(Human), character: 2}
	cfg.players[1] = playerV0Fields{playerType: uint8(Human), character: CharacterIceClimbers}
	cfg.players[2] = playerV0Fields{playerType: uint8(Empty)}
	cfg.players[3] = playerV0Fields{playerType: uint8(Empty)}
	startPayload := buildGameStartPayload(cfg)

	frameStart := frameStartBody(FirstIndex, 7, 1)
	framePre := framePreBody(FirstIndex, 0, false, 0)
	item0 := itemBody(FirstIndex, 5, 1000, 0)
	framePost := framePostBody(FirstIndex, 0, false, 2, 0)
	frameEnd := frameEndBody(FirstIndex, -1)
	endPayload := []byte{byte(EndGame)}

	sizes := map[byte]uint16{
		byte(CmdGameStart):  uint16(len(startPayload)),
		byte(CmdFrameStart): uint16(len(frameStart)),
		byte(CmdFramePre):   uint16(len(framePre)),
		byte(CmdFramePost):  uint16(len(framePost)),
		byte(CmdItem):       uint16(len(item0)),
		byte(CmdFrameEnd):   uint16(len(frameEnd)),
		byte(CmdGameEnd):    uint16(len(endPayload)),
	}

	var raw bytes.Buffer
	if err := writeEventCatalog(&raw, sizes); err != nil {
		t.Fatal(err)
	}
	if err := writeEvent(&raw, byte(CmdGameStart), startPayload); err != nil {
		t.Fatal(err)
	}

	ids := []int32{FirstIndex, FirstIndex + 1, FirstIndex + 1, FirstIndex + 2}
	for n, id := range ids {
		fs := frameStartBody(id, 7, uint32(n))
		if err := writeEvent(&raw, byte(CmdFrameStart), fs); err != nil {
			t.Fatal(err)
		}
		if err := writeEvent(&raw, byte(CmdFramePre), framePreBody(id, 0, false, 0)); err != nil {
			t.Fatal(err)
		}
		if err := writeEvent(&raw, byte(CmdFramePre), framePreBody(id, 1, false, 0)); err != nil {
			t.Fatal(err)
		}
		if err := writeEvent(&raw, byte(CmdFramePre), framePreBody(id, 1, true, 0)); err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			if err := writeEvent(&raw, byte(CmdItem), itemBody(id, 5, 1000, 0)); err != nil {
				t.Fatal(err)
			}
		}
		if err := writeEvent(&raw, byte(CmdFramePost), framePostBody(id, 0, false, 2, 0)); err != nil {
			t.Fatal(err)
		}
		if err := writeEvent(&raw, byte(CmdFramePost), framePostBody(id, 1, false, CharacterIceClimbers, 0)); err != nil {
			t.Fatal(err)
		}
		if err := writeEvent(&raw, byte(CmdFramePost), framePostBody(id, 1, true, CharacterIceClimbers, 0)); err != nil {
			t.Fatal(err)
		}
		if err := writeEvent(&raw, byte(CmdFrameEnd), frameEndBody(id, int32(FirstIndex)+int32(n)-1)); err != nil {
			t.Fatal(err)
		}
	}

	if err := writeEvent(&raw, byte(CmdGameEnd), endPayload); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	out.Write(slippiFileSignature)
	var lenW BitWriter
	lenW.WriteUint32(uint32(raw.Len()))
	out.Write(lenW.Bytes())
	out.Write(raw.Bytes())
	if err := serializeMetadata(&out, map[string]interface{}{}); err != nil {
		t.Fatal(err)
	}

	return out.Bytes()
}

func TestDecodeFullReplay(t *testing.T) {
	buf := buildTestReplay(t)
	game, err := Decode(bytes.NewReader(buf), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(game.Start.Players) != 2 {
		t.Fatalf("len(Players) = %d, want 2", len(game.Start.Players))
	}
	if game.Frames.Len() != 4 {
		t.Fatalf("Frames.Len() = %d, want 4 (one rollback-duplicated row)", game.Frames.Len())
	}

	// Ice Climbers' follower column is present and populated; the other
	// port's follower is nil.
	p1 := game.Frames.portByWire(0)
	p2 := game.Frames.portByWire(1)
	if p1.follower != nil {
		t.Fatal("non-Ice-Climbers port should have no follower column")
	}
	if p2.follower == nil {
		t.Fatal("Ice Climbers port should have a follower column")
	}

	initial, err := game.Frames.RollbackIndexesInitial()
	if err != nil {
		t.Fatal(err)
	}
	if !equalInts(initial, []int{0, 1, 3}) {
		t.Fatalf("RollbackIndexesInitial() = %v, want [0 1 3]", initial)
	}
	final, err := game.Frames.RollbackIndexesFinal()
	if err != nil {
		t.Fatal(err)
	}
	if !equalInts(final, []int{0, 2, 3}) {
		t.Fatalf("RollbackIndexesFinal() = %v, want [0 2 3]", final)
	}

	rec := game.Frames.Transpose(0)
	if len(rec.Items) != 1 || rec.Items[0].ID != 1000 {
		t.Fatalf("row 0 Items = %+v, want one item with ID 1000", rec.Items)
	}
	rec1 := game.Frames.Transpose(1)
	if len(rec1.Items) != 0 {
		t.Fatalf("row 1 Items = %+v, want none", rec1.Items)
	}

	if game.End == nil || game.End.Method != EndGame {
		t.Fatalf("End = %+v, want Method EndGame", game.End)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	buf := buildTestReplay(t)
	game, err := Decode(bytes.NewReader(buf), nil)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Serialize(&out, game); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), buf) {
		t.Fatalf("Serialize(Decode(buf)) != buf\ngot  %d bytes\nwant %d bytes", out.Len(), len(buf))
	}
}
