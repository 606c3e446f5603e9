package slippi

import "github.com/blang/semver/v4"

// post holds the Post-Frame Update columns for one (port, leader|follower)
// slot.
type post struct {
	character    column[uint8]
	state        column[uint16]
	positionX, positionY column[float32]
	direction    column[float32]
	percent      column[float32]
	shield       column[float32]
	lastAttackLanded column[uint8]
	comboCount   column[uint8]
	lastHitBy    column[uint8]
	stocks       column[uint8]

	hasStateAge bool // >= 0.2
	stateAge    column[float32]

	has2_0      bool // >= 2.0: state_flags, misc_as, airborne, ground, jumps, l_cancel
	stateFlags0 column[uint8]
	stateFlags1 column[uint8]
	stateFlags2 column[uint8]
	stateFlags3 column[uint8]
	stateFlags4 column[uint8]
	miscAS      column[float32]
	airborne    column[bool]
	ground      column[uint16]
	jumps       column[uint8]
	lCancel     column[uint8]

	hasHurtboxState bool // >= 2.1
	hurtboxState    column[uint8]

	has3_5           bool // >= 3.5: velocities, hitlag
	selfXAir         column[float32]
	selfY            column[float32]
	knockbackX       column[float32]
	knockbackY       column[float32]
	selfXGround      column[float32]
	hitlag           column[float32]

	hasAnimationIndex bool // >= 3.8
	animationIndex    column[uint32]
}

func newPost(version semver.Version) *post {
	return &post{
		hasStateAge:       versionGTE(version, 0, 2),
		has2_0:            versionGTE(version, 2, 0),
		hasHurtboxState:   versionGTE(version, 2, 1),
		has3_5:            versionGTE(version, 3, 5),
		hasAnimationIndex: versionGTE(version, 3, 8),
	}
}

func (p *post) len() int {
	return p.state.len()
}

func (p *post) readPush(r *BitReader) error {
	v8, err := r.ReadUint8()
	if err != nil {
		return err
	}
	p.character.push(v8)
	v16, err := r.ReadUint16()
	if err != nil {
		return err
	}
	p.state.push(v16)
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
	dir, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.direction.push(dir)
	pct, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.percent.push(pct)
	shield, err := r.ReadFloat32()
	if err != nil {
		return err
	}
	p.shield.push(shield)
	lal, err := r.ReadUint8()
	if err != nil {
		return err
	}
	p.lastAttackLanded.push(lal)
	combo, err := r.ReadUint8()
	if err != nil {
		return err
	}
	p.comboCount.push(combo)
	lhb, err := r.ReadUint8()
	if err != nil {
		return err
	}
	p.lastHitBy.push(lhb)
	stocks, err := r.ReadUint8()
	if err != nil {
		return err
	}
	p.stocks.push(stocks)

	if p.hasStateAge {
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		p.stateAge.push(v)
	}

	if p.has2_0 {
		flags, err := r.ReadBytes(5)
		if err != nil {
			return err
		}
		p.stateFlags0.push(flags[0])
		p.stateFlags1.push(flags[1])
		p.stateFlags2.push(flags[2])
		p.stateFlags3.push(flags[3])
		p.stateFlags4.push(flags[4])

		miscAS, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		p.miscAS.push(miscAS)

		airborne, err := r.ReadBool()
		if err != nil {
			return err
		}
		p.airborne.push(airborne)

		ground, err := r.ReadUint16()
		if err != nil {
			return err
		}
		p.ground.push(ground)

		jumps, err := r.ReadUint8()
		if err != nil {
			return err
		}
		p.jumps.push(jumps)

		lCancel, err := r.ReadUint8()
		if err != nil {
			return err
		}
		p.lCancel.push(lCancel)
	}

	if p.hasHurtboxState {
		v, err := r.ReadUint8()
		if err != nil {
			return err
		}
		p.hurtboxState.push(v)
	}

	if p.has3_5 {
		selfXAir, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		selfY, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		kbX, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		kbY, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		selfXGround, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		p.selfXAir.push(selfXAir)
		p.selfY.push(selfY)
		p.knockbackX.push(kbX)
		p.knockbackY.push(kbY)
		p.selfXGround.push(selfXGround)

		hitlag, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		p.hitlag.push(hitlag)
	}

	if p.hasAnimationIndex {
		v, err := r.ReadUint32()
		if err != nil {
			return err
		}
		p.animationIndex.push(v)
	}

	return nil
}

func (p *post) pushNull() {
	p.character.pushNull()
	p.state.pushNull()
	p.positionX.pushNull()
	p.positionY.pushNull()
	p.direction.pushNull()
	p.percent.pushNull()
	p.shield.pushNull()
	p.lastAttackLanded.pushNull()
	p.comboCount.pushNull()
	p.lastHitBy.pushNull()
	p.stocks.pushNull()
	if p.hasStateAge {
		p.stateAge.pushNull()
	}
	if p.has2_0 {
		p.stateFlags0.pushNull()
		p.stateFlags1.pushNull()
		p.stateFlags2.pushNull()
		p.stateFlags3.pushNull()
		p.stateFlags4.pushNull()
		p.miscAS.pushNull()
		p.airborne.pushNull()
		p.ground.pushNull()
		p.jumps.pushNull()
		p.lCancel.pushNull()
	}
	if p.hasHurtboxState {
		p.hurtboxState.pushNull()
	}
	if p.has3_5 {
		p.selfXAir.pushNull()
		p.selfY.pushNull()
		p.knockbackX.pushNull()
		p.knockbackY.pushNull()
		p.selfXGround.pushNull()
		p.hitlag.pushNull()
	}
	if p.hasAnimationIndex {
		p.animationIndex.pushNull()
	}
}

// PostRecord is the single-row materialization of a Post column.
type PostRecord struct {
	Character        uint8
	State            uint16
	PositionX, PositionY float32
	Direction        float32
	Percent          float32
	Shield           float32
	LastAttackLanded uint8
	ComboCount       uint8
	LastHitBy        uint8
	Stocks           uint8
	StateAge         *float32
	StateFlags       *[5]uint8
	MiscAS           *float32
	Airborne         *bool
	Ground           *uint16
	Jumps            *uint8
	LCancel          *LCancelStatus
	HurtboxState     *HurtboxCollisionState
	SelfXAir, SelfY  *float32
	KnockbackX, KnockbackY *float32
	SelfXGround      *float32
	Hitlag           *float32
	AnimationIndex   *uint32
}

func (p *post) transposeOne(i int) PostRecord {
	var rec PostRecord
	rec.Character, _ = p.character.get(i)
	rec.State, _ = p.state.get(i)
	rec.PositionX, _ = p.positionX.get(i)
	rec.PositionY, _ = p.positionY.get(i)
	rec.Direction, _ = p.direction.get(i)
	rec.Percent, _ = p.percent.get(i)
	rec.Shield, _ = p.shield.get(i)
	rec.LastAttackLanded, _ = p.lastAttackLanded.get(i)
	rec.ComboCount, _ = p.comboCount.get(i)
	rec.LastHitBy, _ = p.lastHitBy.get(i)
	rec.Stocks, _ = p.stocks.get(i)

	if p.hasStateAge {
		v, _ := p.stateAge.get(i)
		rec.StateAge = &v
	}
	if p.has2_0 {
		f0, _ := p.stateFlags0.get(i)
		f1, _ := p.stateFlags1.get(i)
		f2, _ := p.stateFlags2.get(i)
		f3, _ := p.stateFlags3.get(i)
		f4, _ := p.stateFlags4.get(i)
		flags := [5]uint8{f0, f1, f2, f3, f4}
		rec.StateFlags = &flags
		v, _ := p.miscAS.get(i)
		rec.MiscAS = &v
		a, _ := p.airborne.get(i)
		rec.Airborne = &a
		g, _ := p.ground.get(i)
		rec.Ground = &g
		j, _ := p.jumps.get(i)
		rec.Jumps = &j
		lc, _ := p.lCancel.get(i)
		lcs := LCancelStatus(lc)
		rec.LCancel = &lcs
	}
	if p.hasHurtboxState {
		v, _ := p.hurtboxState.get(i)
		hv := HurtboxCollisionState(v)
		rec.HurtboxState = &hv
	}
	if p.has3_5 {
		v, _ := p.selfXAir.get(i)
		rec.SelfXAir = &v
		v, _ = p.selfY.get(i)
		rec.SelfY = &v
		v, _ = p.knockbackX.get(i)
		rec.KnockbackX = &v
		v, _ = p.knockbackY.get(i)
		rec.KnockbackY = &v
		v, _ = p.selfXGround.get(i)
		rec.SelfXGround = &v
		v, _ = p.hitlag.get(i)
		rec.Hitlag = &v
	}
	if p.hasAnimationIndex {
		v, _ := p.animationIndex.get(i)
		rec.AnimationIndex = &v
	}
	return rec
}
