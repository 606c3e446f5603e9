package slippi

import (
	"bytes"

	"github.com/jmank88/ubjson"
)

// slippiFileSignature is the fixed 11-byte UBJSON preamble every replay
// begins with: an opening brace, the "raw" key and its type tag
// ("{U\x03raw[$U#l").
var slippiFileSignature = []byte{0x7b, 0x55, 0x03, 0x72, 0x61, 0x77, 0x5b, 0x24, 0x55, 0x23, 0x6c}

// metadataKeyPrefix is the literal byte sequence for the "metadata" key
// and its type tag, including the opening brace of its value
// ("U\x08metadata{"). Once this prefix is consumed, only the UBJSON map
// body (terminated by its own closing brace) remains.
var metadataKeyPrefix = []byte{0x55, 0x08, 0x6d, 0x65, 0x74, 0x61, 0x64, 0x61, 0x74, 0x61, 0x7b}

// envelope holds the result of parsing the outer UBJSON-ish envelope: the
// raw event-stream payload, and whether the replay is in progress (declared
// raw length 0). The trailing metadata map is not held here; it is returned
// by parseMetadataEnvelope.
type envelope struct {
	rawPayload []byte
	inProgress bool
}

// parseEnvelopeHeader consumes the file signature and the raw payload
// length prefix, returning the declared raw length (0 for an
// in-progress/unterminated replay).
func parseEnvelopeHeader(r *BitReader) (rawLength uint32, err error) {
	if err := r.ExpectBytes(slippiFileSignature); err != nil {
		return 0, parseErrorf(r.Offset(), "not a Slippi replay: %w", err)
	}
	rawLength, err = r.ReadUint32()
	if err != nil {
		return 0, parseErrorf(r.Offset(), "failed to read raw payload length: %w", err)
	}
	return rawLength, nil
}

// parseMetadataEnvelope consumes the trailing "metadata" key/value and the
// closing brace of the top-level object, following the raw payload. It is
// only called when the replay declared a nonzero raw length (i.e. was
// fully written) — an in-progress replay has no metadata envelope.
func parseMetadataEnvelope(r *BitReader) (map[string]interface{}, error) {
	if err := r.ExpectBytes(metadataKeyPrefix); err != nil {
		return nil, parseErrorf(r.Offset(), "missing metadata envelope: %w", err)
	}

	// The opening '{' of the metadata value was already consumed above as
	// part of metadataKeyPrefix, so the UBJSON decoder only sees the map
	// body; it consumes the matching closing '}' itself. bytes.Reader's
	// Len() after Decode tells us exactly how many bytes it consumed, so
	// the shared BitReader cursor can be advanced past it without a
	// second decode pass.
	br := bytes.NewReader(r.Bytes())
	dec := ubjson.NewDecoder(br)
	metadata := make(map[string]interface{})
	if err := dec.Decode(&metadata); err != nil {
		return nil, parseErrorf(r.Offset(), "failed to decode metadata: %w", err)
	}
	consumed := r.Remaining() - br.Len()
	if err := r.Skip(consumed); err != nil {
		return nil, err
	}

	if err := r.ExpectBytes([]byte{0x7d}); err != nil {
		return nil, parseErrorf(r.Offset(), "missing closing brace: %w", err)
	}
	return metadata, nil
}
