package slippi

import "github.com/blang/semver/v4"

// item holds the columns for the variable-length Item child table, shared
// across all rows via the Frames-level item_offset list encoding.
type item struct {
	itemType column[uint16]
	state    column[uint8]
	direction column[float32]
	velocityX, velocityY column[float32]
	positionX, positionY column[float32]
	damage   column[uint16]
	timer    column[float32]
	id       column[uint32]

	hasMisc bool // >= 3.2
	misc0   column[uint8]
	misc1   column[uint8]
	misc2   column[uint8]
	misc3   column[uint8]

	hasOwner bool // >= 3.6
	owner    column[int8]
}

func newItem(version semver.Version) *item {
	return &item{
		hasMisc:  versionGTE(version, 3, 2),
		hasOwner: versionGTE(version, 3, 6),
	}
}

func (it *item) len() int {
	return it.itemType.len()
}

func (it *item) readPush(r *BitReader) error {
	t, err := r.ReadUint16()
	if err != nil {
		return err
	}
	it.itemType.push(t)
	st, err := r.ReadUint8()
	if err != nil {
		return err
	}
	it.state.push(st)
	dir, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	it.direction.push(dir)
	vx, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	vy, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	it.velocityX.push(vx)
	it.velocityY.push(vy)
	px, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	py, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	it.positionX.push(px)
	it.positionY.push(py)
	dmg, err := r.ReadUint16()
	if err != nil {
		return err
	}
	it.damage.push(dmg)
	timer, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	it.timer.push(timer)
	id, err := r.ReadUint32()
	if err != nil {
		return err
	}
	it.id.push(id)

	if it.hasMisc {
		misc, err := r.ReadBytes(4)
		if err != nil {
			return err
		}
		it.misc0.push(misc[0])
		it.misc1.push(misc[1])
		it.misc2.push(misc[2])
		it.misc3.push(misc[3])
	}
	if it.hasOwner {
		v, err := r.ReadInt8()
		if err != nil {
			return err
		}
		it.owner.push(v)
	}
	return nil
}

// ItemRecord is the single-row materialization of an Item.
type ItemRecord struct {
	Type      uint16
	State     uint8
	Direction float32
	VelocityX, VelocityY float32
	PositionX, PositionY float32
	Damage    uint16
	Timer     float32
	ID        uint32
	Misc      *[4]uint8
	Owner     *int8
}

func (it *item) transposeOne(i int) ItemRecord {
	var rec ItemRecord
	rec.Type, _ = it.itemType.get(i)
	rec.State, _ = it.state.get(i)
	rec.Direction, _ = it.direction.get(i)
	rec.VelocityX, _ = it.velocityX.get(i)
	rec.VelocityY, _ = it.velocityY.get(i)
	rec.PositionX, _ = it.positionX.get(i)
	rec.PositionY, _ = it.positionY.get(i)
	rec.Damage, _ = it.damage.get(i)
	rec.Timer, _ = it.timer.get(i)
	rec.ID, _ = it.id.get(i)
	if it.hasMisc {
		m0, _ := it.misc0.get(i)
		m1, _ := it.misc1.get(i)
		m2, _ := it.misc2.get(i)
		m3, _ := it.misc3.get(i)
		misc := [4]uint8{m0, m1, m2, m3}
		rec.Misc = &misc
	}
	if it.hasOwner {
		v, _ := it.owner.get(i)
		rec.Owner = &v
	}
	return rec
}
