package slippi

import "github.com/blang/semver/v4"

// frameData is the (Pre, Post) pair for one leader or follower slot.
type frameData struct {
	pre  *pre
	post *post
}

func newFrameData(version semver.Version) *frameData {
	return &frameData{pre: newPre(version), post: newPost(version)}
}

func (d *frameData) len() int {
	return d.pre.len()
}

func (d *frameData) pushNull() {
	d.pre.pushNull()
	d.post.pushNull()
}

// portData holds one occupied port's leader data and, for Ice Climbers,
// its follower data.
type portData struct {
	port     Port
	leader   *frameData
	follower *frameData // nil unless this port's character is Ice Climbers
}

// frameStartCol holds the per-row columns carried by the FrameStart event.
type frameStartCol struct {
	randomSeed column[uint32]

	hasSceneFrameCounter bool // >= 3.10
	sceneFrameCounter    column[uint32]
}

func newFrameStartCol(version semver.Version) *frameStartCol {
	return &frameStartCol{hasSceneFrameCounter: versionGTE(version, 3, 10)}
}

func (s *frameStartCol) readPush(r *BitReader) error {
	v, err := r.ReadUint32()
	if err != nil {
		return err
	}
	s.randomSeed.push(v)
	if s.hasSceneFrameCounter {
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		s.sceneFrameCounter.push(v)
	}
	return nil
}

// frameEndCol holds the per-row columns carried by the FrameEnd event.
type frameEndCol struct {
	determined               bool
	hasLatestFinalizedFrame bool
	latestFinalizedFrame    column[int32]
}

func (e *frameEndCol) readPush(r *BitReader) error {
	if !e.determined {
		e.hasLatestFinalizedFrame = r.Remaining() > 0
		e.determined = true
	}
	if e.hasLatestFinalizedFrame {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		e.latestFinalizedFrame.push(v)
	}
	return nil
}

// Frames is the columnar table of per-frame data: one row per transmitted
// frame (including rollback-duplicated rows), one PortData per occupied
// port, plus an optional variable-length Item child table.
type Frames struct {
	id    column[int32]
	ports []*portData

	start *frameStartCol // nil before v2.2
	end   *frameEndCol   // nil before v3.0

	items       *item   // nil before v3.0
	itemOffsets []int32 // length rows+1 when items != nil
}

func (f *Frames) Len() int {
	return f.id.len()
}

func (f *Frames) portByWire(wire uint8) *portData {
	for _, p := range f.ports {
		if uint8(p.port-1) == wire {
			return p
		}
	}
	return nil
}

// frameAssembler converts per-event frame fragments into Frames rows. It
// is append-only: a rollback never backtracks a column, it simply opens a
// new row for the repeated or out-of-order id.
type frameAssembler struct {
	frames  *Frames
	version semver.Version

	haveRow         bool
	lastID          int32
	rowItemBaseline int
}

func newFrameAssembler(version semver.Version, players []Player) *frameAssembler {
	ports := make([]*portData, 0, len(players))
	for _, p := range players {
		pd := &portData{port: p.Port, leader: newFrameData(version)}
		if p.Character == CharacterIceClimbers {
			pd.follower = newFrameData(version)
		}
		ports = append(ports, pd)
	}

	frames := &Frames{ports: ports}
	if versionGTE(version, 2, 2) {
		frames.start = newFrameStartCol(version)
	}
	if versionGTE(version, 3, 0) {
		frames.end = &frameEndCol{}
		frames.items = newItem(version)
		frames.itemOffsets = []int32{0}
	}

	return &frameAssembler{frames: frames, version: version}
}

// closeRow pads any follower column up to the leader's length and, when an
// item child table exists, pushes the offset delta accumulated since the
// row was opened.
func (a *frameAssembler) closeRow() {
	if !a.haveRow {
		return
	}
	for _, pd := range a.frames.ports {
		if pd.follower == nil {
			continue
		}
		for pd.follower.len() < pd.leader.len() {
			pd.follower.pushNull()
		}
	}
	if a.frames.items != nil {
		newLen := int32(a.frames.items.len())
		prev := a.frames.itemOffsets[len(a.frames.itemOffsets)-1]
		a.frames.itemOffsets = append(a.frames.itemOffsets, prev+(newLen-int32(a.rowItemBaseline)))
	}
	a.haveRow = false
}

// beginRow closes out whatever row is currently open (simulating a missing
// FrameEnd for pre-3.0 replays) and opens a fresh one for id.
func (a *frameAssembler) beginRow(id int32) {
	a.closeRow()
	a.frames.id.push(id)
	a.lastID = id
	a.haveRow = true
	if a.frames.items != nil {
		a.rowItemBaseline = a.frames.items.len()
	}
}

// handleFrameStart processes a FrameStart event body (the id has already
// been consumed by the caller).
func (a *frameAssembler) handleFrameStart(id int32, r *BitReader) error {
	a.beginRow(id)
	return a.frames.start.readPush(r)
}

// handleFramePre processes a FramePre event body (id, port, is_follower
// already consumed by the caller).
func (a *frameAssembler) handleFramePre(id int32, wirePort uint8, isFollower bool, r *BitReader) error {
	if a.frames.start != nil {
		if id != a.lastID {
			return parseErrorf(r.Offset(), "frame pre id %d does not match open row id %d", id, a.lastID)
		}
	} else {
		switch {
		case !a.haveRow:
			a.beginRow(id)
		case id == a.lastID+1:
			a.beginRow(id)
		case id != a.lastID:
			return parseErrorf(r.Offset(), "frame pre id %d does not match open row id %d", id, a.lastID)
		}
	}

	pd := a.frames.portByWire(wirePort)
	if pd == nil {
		return parseErrorf(r.Offset(), "frame pre references unoccupied port %d", wirePort)
	}
	d := pd.leader
	if isFollower {
		if pd.follower == nil {
			return parseErrorf(r.Offset(), "frame pre follower event for non-Ice-Climbers port %d", wirePort)
		}
		d = pd.follower
	}
	return d.pre.readPush(r)
}

// handleFramePost processes a FramePost event body.
func (a *frameAssembler) handleFramePost(id int32, wirePort uint8, isFollower bool, r *BitReader) error {
	if id != a.lastID {
		return parseErrorf(r.Offset(), "frame post id %d does not match open row id %d", id, a.lastID)
	}
	pd := a.frames.portByWire(wirePort)
	if pd == nil {
		return parseErrorf(r.Offset(), "frame post references unoccupied port %d", wirePort)
	}
	d := pd.leader
	if isFollower {
		if pd.follower == nil {
			return parseErrorf(r.Offset(), "frame post follower event for non-Ice-Climbers port %d", wirePort)
		}
		d = pd.follower
	}
	return d.post.readPush(r)
}

// handleItem processes an Item event body.
func (a *frameAssembler) handleItem(id int32, r *BitReader) error {
	if id != a.lastID {
		return parseErrorf(r.Offset(), "item id %d does not match open row id %d", id, a.lastID)
	}
	return a.frames.items.readPush(r)
}

// handleFrameEnd processes a FrameEnd event body (v3.0+ only).
func (a *frameAssembler) handleFrameEnd(id int32, r *BitReader) error {
	if id != a.lastID {
		return parseErrorf(r.Offset(), "frame end id %d does not match open row id %d", id, a.lastID)
	}
	if err := a.frames.end.readPush(r); err != nil {
		return err
	}
	a.closeRow()
	return nil
}

// finish closes out any row still open at end-of-stream (relevant only to
// pre-3.0 replays, which never see an explicit FrameEnd).
func (a *frameAssembler) finish() {
	a.closeRow()
}
