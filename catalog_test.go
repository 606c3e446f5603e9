package slippi

import "testing"

func TestParseEventCatalog(t *testing.T) {
	var buf []byte
	buf = append(buf, byte(CmdEventPayloads))
	buf = append(buf, 7) // 2 entries: 1 + 2*3
	buf = append(buf, byte(CmdGameStart), 0x01, 0x00)
	buf = append(buf, byte(CmdGameEnd), 0x00, 0x10)

	sizes, err := parseEventCatalog(NewBitReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if sizes[byte(CmdGameStart)] != 0x0100 {
		t.Fatalf("GameStart size = %#x, want 0x100", sizes[byte(CmdGameStart)])
	}
	if sizes[byte(CmdGameEnd)] != 0x0010 {
		t.Fatalf("GameEnd size = %#x, want 0x10", sizes[byte(CmdGameEnd)])
	}
}

func TestParseEventCatalogRejectsWrongLeadCode(t *testing.T) {
	buf := []byte{byte(CmdGameStart), 0x01}
	if _, err := parseEventCatalog(NewBitReader(buf)); err == nil {
		t.Fatal("expected an error when the stream doesn't start with the event payloads code")
	}
}

func TestParseEventCatalogRejectsBadSizeByte(t *testing.T) {
	buf := []byte{byte(CmdEventPayloads), 0x05} // 5 % 3 != 1
	if _, err := parseEventCatalog(NewBitReader(buf)); err == nil {
		t.Fatal("expected an error for a size byte not congruent to 1 mod 3")
	}
}
