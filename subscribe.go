package slippi

// Event is one decoded wire event, delivered to a Decoder's subscribers in
// stream order. It is a debug/introspection view of the stream, not the
// decoder's primary output: Decode and DecodeFile return a fully assembled
// Game, never an Event.
type Event struct {
	Code    byte
	Payload []byte
}

// Decoder wraps Decode with an optional live feed of every dispatched
// event, for tools that want to watch the stream as it is consumed.
// Subscribe must be called before Decode; Decode closes the subscriber
// channel when it returns.
//
// The channel plumbing reuses util.go's MakeUnboundedChannel, the
// teacher's own mechanism for decoupling a producer from a slow consumer
// without a bounded channel's risk of blocking the decode loop.
type Decoder struct {
	opts Options
	in   chan<- *Event
	out  <-chan *Event
}

// NewDecoder constructs a Decoder with the given options.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// Subscribe returns a channel of every event dispatched during the next
// Decode call, in stream order. It may be called at most once
// per Decoder.
func (d *Decoder) Subscribe() <-chan *Event {
	d.in, d.out = MakeUnboundedChannel[Event]()
	return d.out
}

func (d *Decoder) write(code byte, payload []byte) {
	if d.in == nil {
		return
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	d.in <- &Event{Code: code, Payload: cp}
}

// Decode parses a complete replay, forwarding every dispatched event to
// any channel returned by a prior call to Subscribe.
func (d *Decoder) Decode(buf []byte) (*Game, error) {
	opts := d.opts
	game, err := decodeBytesWithSink(buf, &opts, d.subscriberSink())
	if d.in != nil {
		close(d.in)
		d.in = nil
	}
	return game, err
}

func (d *Decoder) subscriberSink() debugSink {
	if d.out == nil {
		return nil
	}
	return debugSinkFunc(d.write)
}

// debugSinkFunc adapts a plain function to the debugSink interface.
type debugSinkFunc func(code byte, payload []byte)

func (f debugSinkFunc) write(code byte, payload []byte) { f(code, payload) }
