package slippi

// parseEventCatalog decodes the Event Payload Catalog: the mandatory first
// event of the raw stream, command 0x35. Its body is a size byte S followed
// by (S-1)/3 entries of (event code byte, big-endian u16 size). The
// resulting map is keyed by raw event code, not by the known Command enum,
// so that codes unknown to this decoder can still be looked up and skipped
// rather than treated as a parse failure.
func parseEventCatalog(r *BitReader) (map[byte]uint16, error) {
	start := r.Offset()
	code, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if Command(code) != CmdEventPayloads {
		return nil, parseErrorf(start, "first event must be event payloads (0x%x), got 0x%x", CmdEventPayloads, code)
	}

	size, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if size%3 != 1 {
		return nil, parseErrorf(r.Offset(), "event payloads size byte %d is not congruent to 1 mod 3", size)
	}

	count := int(size-1) / 3
	sizes := make(map[byte]uint16, count)
	for i := 0; i < count; i++ {
		eventCode, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		eventSize, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		sizes[eventCode] = eventSize
	}
	return sizes, nil
}
