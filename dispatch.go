package slippi

import (
	"fmt"
)

// debugSink receives a copy of every event's payload bytes, keyed by event
// code, for callers that want to inspect the raw stream (see Options.DebugDir).
type debugSink interface {
	write(code byte, payload []byte)
}

// decodeState carries everything the dispatch loop threads through both
// the pre-Start and post-Start phases.
type decodeState struct {
	sizes    map[byte]uint16
	splitter splitAccumulator
	debug    debugSink

	// lastActualSize is the summed actual_size of the most recently
	// reassembled splitter message, valid only for the event readEvent just
	// returned (splitAccumulator.reset clears its own copy once reassembly
	// completes, so this is the only place it survives to).
	lastActualSize uint32
}

// readEvent reads one event's code and payload, transparently unwrapping a
// message-splitter segment. It returns the event code to dispatch under,
// the payload bytes, and whether this call produced a dispatchable event
// (a non-final splitter segment produces none).
func (s *decodeState) readEvent(r *BitReader) (code byte, payload []byte, ok bool, err error) {
	codeStart := r.Offset()
	rawCode, err := r.ReadUint8()
	if err != nil {
		return 0, nil, false, err
	}

	size, known := s.sizes[rawCode]
	if !known {
		return 0, nil, false, parseErrorf(codeStart, "unknown event code 0x%x", rawCode)
	}
	buf, err := r.ReadBytes(int(size))
	if err != nil {
		return 0, nil, false, err
	}

	code = rawCode
	payload = buf
	if Command(rawCode) == CmdSplitter {
		wrapped, reassembled, actualSize, final, err := s.splitter.accumulate(buf)
		if err != nil {
			return 0, nil, false, err
		}
		if !final {
			return 0, nil, false, nil
		}
		code = wrapped
		payload = reassembled
		s.lastActualSize = actualSize
	}

	if s.debug != nil {
		s.debug.write(code, payload)
	}
	return code, payload, true, nil
}

// decodeRaw drives the full event stream: the catalog, GameStart, all frame
// events, GeckoCodes, and GameEnd. rawLength is 0 for an in-progress
// replay, in which case the loop runs until GameEnd or EOF. extraSink, if
// non-nil, receives every dispatched event alongside any DebugDir sink
// (used by Decoder.Subscribe).
func decodeRaw(r *BitReader, rawLength uint32, opts *Options, extraSink debugSink) (*Game, error) {
	rawStart := r.Offset()
	rawEnd := rawStart + int64(rawLength)
	sizes, err := parseEventCatalog(r)
	if err != nil {
		return nil, err
	}

	state := &decodeState{sizes: sizes}
	var sinks []debugSink
	if opts != nil && opts.DebugDir != "" {
		sinks = append(sinks, newFileDebugSink(opts.DebugDir))
	}
	if extraSink != nil {
		sinks = append(sinks, extraSink)
	}
	switch len(sinks) {
	case 0:
	case 1:
		state.debug = sinks[0]
	default:
		state.debug = multiSink(sinks)
	}

	var start *Start
	for start == nil {
		if rawLength != 0 && r.Offset() >= rawEnd {
			return nil, parseErrorf(r.Offset(), "raw payload ended before GameStart")
		}
		code, payload, ok, err := state.readEvent(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if Command(code) != CmdGameStart {
			return nil, parseErrorf(r.Offset(), "invalid event before GameStart: 0x%x", code)
		}
		start, err = decodeGameStart(payload)
		if err != nil {
			return nil, err
		}
	}

	assembler := newFrameAssembler(start.Version, start.Players)

	if opts != nil && opts.SkipFrames {
		if err := skipToGameEnd(r, rawLength, rawEnd, sizes); err != nil {
			return nil, err
		}
	}

	var end *End
	var geckoCodes *GeckoCodes
	for end == nil {
		if rawLength != 0 && r.Offset() >= rawEnd {
			break
		}
		if rawLength == 0 && r.Remaining() == 0 {
			break
		}
		code, payload, ok, err := state.readEvent(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		switch Command(code) {
		case CmdGameStart:
			return nil, parseErrorf(r.Offset(), "duplicate GameStart event")
		case CmdGameEnd:
			end, err = decodeGameEnd(payload)
			if err != nil {
				return nil, err
			}
		case CmdGeckoCodes:
			geckoCodes = &GeckoCodes{Bytes: payload, ActualSize: state.lastActualSize}
		case CmdFrameStart:
			if assembler.frames.start == nil {
				return nil, parseErrorf(r.Offset(), "FrameStart event before v2.2")
			}
			if err := dispatchFrameStart(assembler, payload); err != nil {
				return nil, err
			}
		case CmdFramePre:
			if err := dispatchFramePre(assembler, payload); err != nil {
				return nil, err
			}
		case CmdFramePost:
			if err := dispatchFramePost(assembler, payload); err != nil {
				return nil, err
			}
		case CmdItem:
			if assembler.frames.items == nil {
				return nil, parseErrorf(r.Offset(), "Item event before v3.0")
			}
			if err := dispatchItem(assembler, payload); err != nil {
				return nil, err
			}
		case CmdFrameEnd:
			if assembler.frames.end == nil {
				return nil, parseErrorf(r.Offset(), "FrameEnd event before v3.0")
			}
			if err := dispatchFrameEnd(assembler, payload); err != nil {
				return nil, err
			}
		default:
			// Unknown to this decoder but sized by the catalog: skip silently.
		}
	}

	assembler.finish()

	if rawLength != 0 && r.Offset() != rawEnd {
		return nil, parseErrorf(r.Offset(), "consumed %d bytes, expected %d", r.Offset()-rawStart, rawLength)
	}

	return &Game{
		Start:      start,
		End:        end,
		Frames:     assembler.frames,
		GeckoCodes: geckoCodes,
	}, nil
}

func dispatchFrameStart(a *frameAssembler, payload []byte) error {
	r := NewBitReader(payload)
	id, err := r.ReadInt32()
	if err != nil {
		return err
	}
	return a.handleFrameStart(id, r)
}

func dispatchFramePre(a *frameAssembler, payload []byte) error {
	r := NewBitReader(payload)
	id, err := r.ReadInt32()
	if err != nil {
		return err
	}
	port, err := r.ReadUint8()
	if err != nil {
		return err
	}
	isFollower, err := r.ReadBool()
	if err != nil {
		return err
	}
	return a.handleFramePre(id, port, isFollower, r)
}

func dispatchFramePost(a *frameAssembler, payload []byte) error {
	r := NewBitReader(payload)
	id, err := r.ReadInt32()
	if err != nil {
		return err
	}
	port, err := r.ReadUint8()
	if err != nil {
		return err
	}
	isFollower, err := r.ReadBool()
	if err != nil {
		return err
	}
	return a.handleFramePost(id, port, isFollower, r)
}

func dispatchItem(a *frameAssembler, payload []byte) error {
	r := NewBitReader(payload)
	id, err := r.ReadInt32()
	if err != nil {
		return err
	}
	return a.handleItem(id, r)
}

func dispatchFrameEnd(a *frameAssembler, payload []byte) error {
	r := NewBitReader(payload)
	id, err := r.ReadInt32()
	if err != nil {
		return err
	}
	return a.handleFrameEnd(id, r)
}

// skipToGameEnd fast-forwards the reader past all frame events, leaving it
// positioned at the final GameEnd event. It requires rawLength to be known
// and for a GameEnd-sized tail to actually remain.
func skipToGameEnd(r *BitReader, rawLength uint32, rawEnd int64, sizes map[byte]uint16) error {
	endSize, known := sizes[byte(CmdGameEnd)]
	if !known {
		return parseErrorf(r.Offset(), "cannot skip to GameEnd: catalog has no GameEnd size")
	}
	endOffset := int64(endSize) + 1
	if rawLength == 0 {
		return parseErrorf(r.Offset(), "cannot skip to GameEnd: replay is in-progress")
	}
	remaining := rawEnd - r.Offset()
	if remaining < endOffset {
		return parseErrorf(r.Offset(), "cannot skip to GameEnd: replay is truncated")
	}
	skip := remaining - endOffset
	return r.Skip(int(skip))
}

// fileDebugSink writes each event's raw payload bytes under
// {dir}/{code}/{count}, matching the reference decoder's debug dump layout.
type fileDebugSink struct {
	dir    string
	writer func(path string, data []byte) error
	counts map[byte]int
}

func newFileDebugSink(dir string) *fileDebugSink {
	return &fileDebugSink{dir: dir, writer: writeDebugFile, counts: map[byte]int{}}
}

func (s *fileDebugSink) write(code byte, payload []byte) {
	count := s.counts[code]
	s.counts[code]++
	path := fmt.Sprintf("%s/%d/%d", s.dir, code, count)
	_ = s.writer(path, payload)
}

// multiSink fans one event out to several sinks.
type multiSink []debugSink

func (m multiSink) write(code byte, payload []byte) {
	for _, s := range m {
		s.write(code, payload)
	}
}
