package slippi

import "github.com/blang/semver/v4"

// versionGTE reports whether v is at least major.minor.0, ignoring patch
// (the wire format only ever gates on major.minor).
func versionGTE(v semver.Version, major, minor uint64) bool {
	return v.GTE(semver.Version{Major: major, Minor: minor})
}

// pre holds the Pre-Frame Update columns for one (port, leader|follower)
// slot. Fields introduced by a later version are structurally absent for
// an earlier replay: their column slices stay nil/zero-length rather than
// carrying per-row nulls, since the gating is stream-wide.
type pre struct {
	randomSeed                         column[uint32]
	state                               column[uint16]
	positionX, positionY                column[float32]
	direction                           column[float32]
	joystickX, joystickY                column[float32]
	cstickX, cstickY                    column[float32]
	triggers                            column[float32]
	buttons                             column[uint32]
	buttonsPhysical                     column[uint16]
	triggersPhysicalL, triggersPhysicalR column[float32]

	hasPercent bool // >= 1.2
	percent    column[float32]

	hasRawAnalogX bool // >= 1.4
	rawAnalogX    column[int8]
}

func newPre(version semver.Version) *pre {
	return &pre{
		hasPercent:    versionGTE(version, 1, 2),
		hasRawAnalogX: versionGTE(version, 1, 4),
	}
}

func (p *pre) len() int {
	return p.state.len()
}

// readPush reads one Pre-Frame Update event body (after its id/port/
// is_follower header has already been consumed) and appends it as a new
// row.
func (p *pre) readPush(r *BitReader) error {
	var err error
	if rv, e := r.ReadUint32(); e != nil {
		return e
	} else {
		p.randomSeed.push(rv)
	}
	if v, e := r.ReadUint16(); e != nil {
		return e
	} else {
		p.state.push(v)
	}
	x, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.positionX.push(x)
	p.positionY.push(y)
	if v, e := r.ReadFloat32(); e != nil {
		return e
	} else {
		p.direction.push(v)
	}
	jx, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	jy, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.joystickX.push(jx)
	p.joystickY.push(jy)
	cx, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	cy, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.cstickX.push(cx)
	p.cstickY.push(cy)
	if v, e := r.ReadFloat32(); e != nil {
		return e
	} else {
		p.triggers.push(v)
	}
	if v, e := r.ReadUint32(); e != nil {
		return e
	} else {
		p.buttons.push(v)
	}
	if v, e := r.ReadUint16(); e != nil {
		return e
	} else {
		p.buttonsPhysical.push(v)
	}
	tl, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	tr, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.triggersPhysicalL.push(tl)
	p.triggersPhysicalR.push(tr)

	if p.hasPercent {
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		p.percent.push(v)
	}
	if p.hasRawAnalogX {
		v, err := r.ReadInt8()
		if err != nil {
			return err
		}
		p.rawAnalogX.push(v)
	}
	return nil
}

// pushNull appends a null row to every column, used to keep a follower
// column aligned with its leader's row count on a frame with no follower
// event.
func (p *pre) pushNull() {
	p.randomSeed.pushNull()
	p.state.pushNull()
	p.positionX.pushNull()
	p.positionY.pushNull()
	p.direction.pushNull()
	p.joystickX.pushNull()
	p.joystickY.pushNull()
	p.cstickX.pushNull()
	p.cstickY.pushNull()
	p.triggers.pushNull()
	p.buttons.pushNull()
	p.buttonsPhysical.pushNull()
	p.triggersPhysicalL.pushNull()
	p.triggersPhysicalR.pushNull()
	if p.hasPercent {
		p.percent.pushNull()
	}
	if p.hasRawAnalogX {
		p.rawAnalogX.pushNull()
	}
}

// PreRecord is the single-row materialization of a Pre column, produced by
// Transpose.
type PreRecord struct {
	RandomSeed        uint32
	State             uint16
	PositionX, PositionY float32
	Direction         float32
	JoystickX, JoystickY float32
	CStickX, CStickY  float32
	Triggers          float32
	Buttons           uint32
	ButtonsPhysical   uint16
	TriggersPhysicalL, TriggersPhysicalR float32
	Percent           *float32
	RawAnalogX        *int8
}

func (p *pre) transposeOne(i int) PreRecord {
	rec := PreRecord{}
	rec.RandomSeed, _ = p.randomSeed.get(i)
	rec.State, _ = p.state.get(i)
	rec.PositionX, _ = p.positionX.get(i)
	rec.PositionY, _ = p.positionY.get(i)
	rec.Direction, _ = p.direction.get(i)
	rec.JoystickX, _ = p.joystickX.get(i)
	rec.JoystickY, _ = p.joystickY.get(i)
	rec.CStickX, _ = p.cstickX.get(i)
	rec.CStickY, _ = p.cstickY.get(i)
	rec.Triggers, _ = p.triggers.get(i)
	rec.Buttons, _ = p.buttons.get(i)
	rec.ButtonsPhysical, _ = p.buttonsPhysical.get(i)
	rec.TriggersPhysicalL, _ = p.triggersPhysicalL.get(i)
	rec.TriggersPhysicalR, _ = p.triggersPhysicalR.get(i)
	if p.hasPercent {
		v, _ := p.percent.get(i)
		rec.Percent = &v
	}
	if p.hasRawAnalogX {
		v, _ := p.rawAnalogX.get(i)
		rec.RawAnalogX = &v
	}
	return rec
}
