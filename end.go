package slippi

// End describes how a game concluded, as captured in the Game End event.
type End struct {
	Method EndMethod
	// LRASInitiator is the port of the player who triggered a Low Resolution
	// Actionable State (LRAS) conclusion, if any. It is nil before v2.0, and
	// also nil when the wire port byte is outside 0..3 (255 means none).
	LRASInitiator *Port
	// RawBytes is the complete, unmodified Game End payload.
	RawBytes []byte
}

// decodeGameEnd parses the Game End event payload.
func decodeGameEnd(raw []byte) (*End, error) {
	r := NewBitReader(raw)

	method, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	e := &End{
		Method:   EndMethod(method),
		RawBytes: raw,
	}

	if r.Remaining() > 0 {
		wire, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if port, err := portFromWire(wire); err == nil {
			e.LRASInitiator = &port
		}
	}

	return e, nil
}
