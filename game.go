package slippi

import (
	"io"
	"os"
)

// GeckoCodes carries the raw bytes of the GeckoCodes event, if present.
// ActualSize is the summed actual_size reported by the message-splitter
// segments it was reassembled from (GeckoCodes payloads always exceed the
// 512-byte splitter threshold).
type GeckoCodes struct {
	Bytes      []byte
	ActualSize uint32
}

// Game is the fully decoded representation of a Slippi replay: its
// settings, its per-frame columnar data, how it ended, and any metadata
// or Gecko codes attached to the file.
type Game struct {
	Start      *Start
	End        *End
	Frames     *Frames
	Metadata   map[string]interface{}
	GeckoCodes *GeckoCodes
}

// Options controls how a replay is decoded.
type Options struct {
	// SkipFrames decodes only Start, End, and Metadata, fast-forwarding
	// past the frame event stream. Requires a known raw payload length.
	SkipFrames bool
	// DebugDir, if set, receives a copy of every event's raw payload
	// bytes under {DebugDir}/{code}/{count}.
	DebugDir string
}

// Decode parses a complete Slippi replay from r.
func Decode(r io.Reader, opts *Options) (*Game, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(buf, opts)
}

// DecodeFile opens and parses the replay at path.
func DecodeFile(path string, opts *Options) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, opts)
}

func decodeBytes(buf []byte, opts *Options) (*Game, error) {
	return decodeBytesWithSink(buf, opts, nil)
}

func decodeBytesWithSink(buf []byte, opts *Options, sink debugSink) (*Game, error) {
	r := NewBitReader(buf)

	rawLength, err := parseEnvelopeHeader(r)
	if err != nil {
		return nil, err
	}

	game, err := decodeRaw(r, rawLength, opts, sink)
	if err != nil {
		return nil, err
	}

	if rawLength != 0 {
		metadata, err := parseMetadataEnvelope(r)
		if err != nil {
			return nil, err
		}
		game.Metadata = metadata
	}

	return game, nil
}
