package slippi

// Command enumerates the command bytes of Slippi events. For more on the
// wire format, see https://github.com/project-slippi/slippi-wiki/blob/master/SPEC.md
type Command byte

// Commands
const (
	CmdEventPayloads Command = 0x35
	CmdGameStart     Command = 0x36
	CmdFramePre      Command = 0x37
	CmdFramePost     Command = 0x38
	CmdGameEnd       Command = 0x39
	CmdFrameStart    Command = 0x3A
	CmdItem          Command = 0x3B
	CmdFrameEnd      Command = 0x3C
	CmdGeckoCodes    Command = 0x3D
	CmdSplitter      Command = 0x10
)

// splitterPayloadSize is the fixed size of a message splitter event's
// payload: 512 bytes of wrapped data, a 2-byte actual size, a 1-byte
// wrapped event code, and a 1-byte "is final" flag.
const splitterPayloadSize = 512 + 2 + 1 + 1

// splitAccumulator reassembles a message-splitter-wrapped event across
// one or more 0x10 segments. It is dispatcher-scoped: it survives across
// unrelated events between segments of the same logical message, and is
// reset after each "final" segment.
type splitAccumulator struct {
	raw        []byte
	actualSize uint32
}

func (a *splitAccumulator) reset() {
	a.raw = a.raw[:0]
	a.actualSize = 0
}

// accumulate appends one splitter segment. Bytes beyond the declared
// actual_size are semantically garbage but are retained verbatim so that
// re-serialization can reproduce the original stream exactly. Once the
// final segment arrives, it returns the wrapped event code and the full
// reassembled payload.
func (a *splitAccumulator) accumulate(payload []byte) (wrappedCode byte, raw []byte, actualSize uint32, final bool, err error) {
	if len(payload) != splitterPayloadSize {
		return 0, nil, 0, false, parseErrorf(0, "splitter payload must be %d bytes, got %d", splitterPayloadSize, len(payload))
	}

	r := NewBitReader(payload)
	data, err := r.Slice(512)
	if err != nil {
		return 0, nil, 0, false, err
	}
	segmentSize, err := r.ReadUint16()
	if err != nil {
		return 0, nil, 0, false, err
	}
	wrappedEvent, err := r.ReadUint8()
	if err != nil {
		return 0, nil, 0, false, err
	}
	isFinal, err := r.ReadBool()
	if err != nil {
		return 0, nil, 0, false, err
	}

	a.raw = append(a.raw, data...)
	a.actualSize += uint32(segmentSize)

	if isFinal {
		result := make([]byte, len(a.raw))
		copy(result, a.raw)
		total := a.actualSize
		a.reset()
		return wrappedEvent, result, total, true, nil
	}
	return wrappedEvent, nil, 0, false, nil
}
