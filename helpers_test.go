package slippi

// playerV0Fields describes the fixed 36-byte per-player block of the Game
// Start event, used by tests to build exact payloads without hand-counting
// padding bytes.
type playerV0Fields struct {
	character, playerType, stocks, costume uint8
	teamShade, handicap, teamColor         uint8
	bitfield, cpuLevel                     uint8
	offenseRatio, defenseRatio, modelScale float32
}

func buildPlayerV0(f playerV0Fields) []byte {
	var w BitWriter
	w.WriteUint8(f.character)
	w.WriteUint8(f.playerType)
	w.WriteUint8(f.stocks)
	w.WriteUint8(f.costume)
	w.WriteBytes(make([]byte, 3))
	w.WriteUint8(f.teamShade)
	w.WriteUint8(f.handicap)
	w.WriteUint8(f.teamColor)
	w.WriteBytes(make([]byte, 2))
	w.WriteUint8(f.bitfield)
	w.WriteBytes(make([]byte, 2))
	w.WriteUint8(f.cpuLevel)
	w.WriteBytes(make([]byte, 8))
	w.WriteFloat32(f.offenseRatio)
	w.WriteFloat32(f.defenseRatio)
	w.WriteFloat32(f.modelScale)
	return w.Bytes()
}

func emptyPlayerV0() []byte {
	return buildPlayerV0(playerV0Fields{playerType: uint8(Empty)})
}

// gameStartConfig describes the handful of fields a test cares about; all
// others are zeroed.
type gameStartConfig struct {
	major, minor, revision uint8
	isTeams                bool
	stage                  uint16
	damageRatio            float32
	players                [maxPlayerBlocks]playerV0Fields
	randomSeed             uint32
	language               uint8
}

// buildGameStartPayload lays out a Game Start event body byte-for-byte in
// the order decodeGameStart expects, including every version-gated
// trailing block (this always builds the latest, v3.12, layout).
func buildGameStartPayload(cfg gameStartConfig) []byte {
	var w BitWriter
	w.WriteUint8(cfg.major)
	w.WriteUint8(cfg.minor)
	w.WriteUint8(cfg.revision)
	w.WriteUint8(0) // unused build number

	w.WriteBytes(make([]byte, 4)) // bitfield
	w.WriteBytes(make([]byte, 2))
	w.WriteBool(false) // isRainingBombs
	w.WriteBytes(make([]byte, 1))
	w.WriteBool(cfg.isTeams)
	w.WriteBytes(make([]byte, 2))
	w.WriteInt8(0) // itemSpawnFrequency
	w.WriteInt8(0) // selfDestructScore
	w.WriteBytes(make([]byte, 1))
	w.WriteUint16(cfg.stage)
	w.WriteUint32(480) // timer
	w.WriteBytes(make([]byte, 15))
	w.WriteBytes(make([]byte, 5)) // itemSpawnBitfield
	w.WriteBytes(make([]byte, 8))
	w.WriteFloat32(cfg.damageRatio)
	w.WriteBytes(make([]byte, 44))

	for _, p := range cfg.players {
		w.WriteBytes(buildPlayerV0(p))
	}
	w.WriteUint32(cfg.randomSeed)

	for i := 0; i < numPorts; i++ { // playersV1_0: dash back / shield drop, unused by tests
		w.WriteUint32(0)
		w.WriteUint32(0)
	}
	for i := 0; i < numPorts; i++ { // playersV1_3: name tag, left blank
		w.WriteBytes(make([]byte, 16))
	}
	w.WriteBool(true)  // isPAL
	w.WriteBool(false) // isFrozenPS
	w.WriteUint8(0)    // scene minor
	w.WriteUint8(8)    // scene major
	for i := 0; i < numPorts; i++ { // playersV3_9Name
		w.WriteBytes(make([]byte, 31))
	}
	for i := 0; i < numPorts; i++ { // playersV3_9Code
		w.WriteBytes(make([]byte, 10))
	}
	for i := 0; i < numPorts; i++ { // playersV3_11: SUID
		w.WriteBytes(make([]byte, 29))
	}
	w.WriteUint8(cfg.language)

	return w.Bytes()
}

func framePreBody(id int32, wirePort uint8, isFollower bool, state uint16) []byte {
	var w BitWriter
	w.WriteInt32(id)
	w.WriteUint8(wirePort)
	w.WriteBool(isFollower)
	w.WriteUint32(0) // randomSeed
	w.WriteUint16(state)
	w.WriteFloat32(0) // positionX
	w.WriteFloat32(0) // positionY
	w.WriteFloat32(1) // direction
	w.WriteFloat32(0) // joystickX
	w.WriteFloat32(0) // joystickY
	w.WriteFloat32(0) // cstickX
	w.WriteFloat32(0) // cstickY
	w.WriteFloat32(0) // triggers
	w.WriteUint32(0)  // buttons
	w.WriteUint16(0)  // buttonsPhysical
	w.WriteFloat32(0) // triggersPhysicalL
	w.WriteFloat32(0) // triggersPhysicalR
	w.WriteFloat32(0) // percent (>= 1.2)
	w.WriteInt8(0)    // rawAnalogX (>= 1.4)
	return w.Bytes()
}

func framePostBody(id int32, wirePort uint8, isFollower bool, character uint8, state uint16) []byte {
	var w BitWriter
	w.WriteInt32(id)
	w.WriteUint8(wirePort)
	w.WriteBool(isFollower)
	w.WriteUint8(character)
	w.WriteUint16(state)
	w.WriteFloat32(0) // positionX
	w.WriteFloat32(0) // positionY
	w.WriteFloat32(1) // direction
	w.WriteFloat32(0) // percent
	w.WriteFloat32(0) // shield
	w.WriteUint8(0)   // lastAttackLanded
	w.WriteUint8(0)   // comboCount
	w.WriteUint8(0xff) // lastHitBy (none)
	w.WriteUint8(4)   // stocks
	w.WriteFloat32(0) // stateAge (>= 0.2)
	w.WriteBytes(make([]byte, 5)) // stateFlags0-4 (>= 2.0)
	w.WriteFloat32(0)             // miscAS
	w.WriteBool(true)             // airborne
	w.WriteUint16(0)              // ground
	w.WriteUint8(0)               // jumps
	w.WriteUint8(0)               // lCancel
	w.WriteUint8(0)               // hurtboxState (>= 2.1)
	w.WriteFloat32(0)             // selfXAir (>= 3.5)
	w.WriteFloat32(0)             // selfY
	w.WriteFloat32(0)             // knockbackX
	w.WriteFloat32(0)             // knockbackY
	w.WriteFloat32(0)             // selfXGround
	w.WriteFloat32(0)             // hitlag
	w.WriteUint32(0)              // animationIndex (>= 3.8)
	return w.Bytes()
}

func frameStartBody(id int32, randomSeed uint32, sceneFrameCounter uint32) []byte {
	var w BitWriter
	w.WriteInt32(id)
	w.WriteUint32(randomSeed)
	w.WriteUint32(sceneFrameCounter) // >= 3.10
	return w.Bytes()
}

func frameEndBody(id int32, latestFinalizedFrame int32) []byte {
	var w BitWriter
	w.WriteInt32(id)
	w.WriteInt32(latestFinalizedFrame)
	return w.Bytes()
}

func itemBody(id int32, itemType uint16, itemID uint32, owner int8) []byte {
	var w BitWriter
	w.WriteInt32(id)
	w.WriteUint16(itemType)
	w.WriteUint8(0)   // state
	w.WriteFloat32(0) // direction
	w.WriteFloat32(0) // velocityX
	w.WriteFloat32(0) // velocityY
	w.WriteFloat32(0) // positionX
	w.WriteFloat32(0) // positionY
	w.WriteUint16(0)  // damage
	w.WriteFloat32(0) // timer
	w.WriteUint32(itemID)
	w.WriteBytes(make([]byte, 4)) // misc0-3 (>= 3.2)
	w.WriteInt8(owner)            // owner (>= 3.6)
	return w.Bytes()
}
