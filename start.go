package slippi

import "github.com/blang/semver/v4"

// Start describes a game's settings as captured in the Game Start event:
// the replay format version, stage and ruleset, and each occupied port's
// player.
type Start struct {
	Version semver.Version

	Bitfield           [4]byte
	IsRainingBombs     bool
	IsTeams            bool
	ItemSpawnFrequency int8
	SelfDestructScore  int8
	Stage              uint16
	Timer              uint32
	ItemSpawnBitfield  [5]byte
	DamageRatio        float32
	Players            []Player
	RandomSeed         uint32

	// IsPAL is nil for replays recorded before v1.5, which predates the
	// PAL/NTSC distinction being recorded at all.
	IsPAL *bool
	// IsFrozenPS is nil before v2.0.
	IsFrozenPS *bool
	// Scene is nil before v3.7.
	Scene *Scene
	// Language is nil before v3.12.
	Language *Language

	// RawBytes is the complete, unmodified Game Start payload, retained so
	// the event can be re-serialized byte-for-byte.
	RawBytes []byte
}

// Scene identifies the menu scene a game was started from.
type Scene struct {
	Minor uint8
	Major uint8
}

// Team records a player's team assignment when teams are enabled.
type Team struct {
	Color TeamColor
	Shade TeamShade
}

// UCF records the dashback and shield drop controller fix settings applied
// to a player, introduced in v1.0.
type UCF struct {
	DashBack   DashBackFix
	ShieldDrop ShieldDropFix
}

// Netplay carries a player's Slippi Online display name, connect code, and
// (from v3.11) stable user id, as recorded at the time of the match.
type Netplay struct {
	Name string
	Code string
	SUID string
}

// Player describes one occupied port's settings at the start of a game.
// Only ports occupied by a Human, CPU, or Demo player produce a Player;
// other wire byte values (notably an empty port) are dropped entirely.
type Player struct {
	Port      Port
	Character uint8
	Type      PlayerType
	Stocks    uint8
	Costume   uint8
	Team      *Team
	Handicap  uint8
	Bitfield  uint8
	// CPULevel is nil unless Type is CPU.
	CPULevel      *uint8
	OffenseRatio  float32
	DefenseRatio  float32
	ModelScale    float32
	UCF           *UCF
	NameTag       string
	Netplay       *Netplay
}

const numPorts = 4

// maxPlayerBlocks is the number of 36-byte player blocks the wire format
// always reserves, independent of how many ports are actually occupied.
const maxPlayerBlocks = 6

// decodeGameStart parses the Game Start event payload. Fields beyond the
// base v0 layout are read only if bytes remain, since a replay's version
// determines which trailing fields the wire layout carries; the layout is
// monotonic in version order, so a simple "bytes remain" check is
// equivalent to comparing against the version each field was introduced.
func decodeGameStart(raw []byte) (*Start, error) {
	r := NewBitReader(raw)

	major, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	revision, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint8(); err != nil { // unused build number
		return nil, err
	}

	s := &Start{
		Version:  semver.Version{Major: uint64(major), Minor: uint64(minor), Patch: uint64(revision)},
		RawBytes: raw,
	}

	bitfield, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	copy(s.Bitfield[:], bitfield)

	if err := r.Skip(2); err != nil {
		return nil, err
	}
	if s.IsRainingBombs, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if err := r.Skip(1); err != nil {
		return nil, err
	}
	if s.IsTeams, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	if s.ItemSpawnFrequency, err = r.ReadInt8(); err != nil {
		return nil, err
	}
	if s.SelfDestructScore, err = r.ReadInt8(); err != nil {
		return nil, err
	}
	if err := r.Skip(1); err != nil {
		return nil, err
	}
	if s.Stage, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if s.Timer, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if err := r.Skip(15); err != nil {
		return nil, err
	}
	itemSpawnBitfield, err := r.ReadBytes(5)
	if err != nil {
		return nil, err
	}
	copy(s.ItemSpawnBitfield[:], itemSpawnBitfield)

	if err := r.Skip(8); err != nil {
		return nil, err
	}
	if s.DamageRatio, err = r.ReadFloat32(); err != nil {
		return nil, err
	}
	if err := r.Skip(44); err != nil {
		return nil, err
	}

	// Six 36-byte player blocks are present regardless of player count;
	// only the first numPorts (the four real controller ports) are used.
	var playersV0 [maxPlayerBlocks][]byte
	for i := range playersV0 {
		playersV0[i], err = r.ReadBytes(36)
		if err != nil {
			return nil, err
		}
	}

	if s.RandomSeed, err = r.ReadUint32(); err != nil {
		return nil, err
	}

	var playersV1_0 [numPorts][]byte
	if r.Remaining() > 0 {
		for i := range playersV1_0 {
			if playersV1_0[i], err = r.ReadBytes(8); err != nil {
				return nil, err
			}
		}
	}

	var playersV1_3 [numPorts][]byte
	if r.Remaining() > 0 {
		for i := range playersV1_3 {
			if playersV1_3[i], err = r.ReadBytes(16); err != nil {
				return nil, err
			}
		}
	}

	if r.Remaining() > 0 {
		v, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		s.IsPAL = &v
	}
	if r.Remaining() > 0 {
		v, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		s.IsFrozenPS = &v
	}
	if r.Remaining() > 0 {
		minor, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		major, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		s.Scene = &Scene{Minor: minor, Major: major}
	}

	var playersV3_9Name, playersV3_9Code [numPorts][]byte
	if r.Remaining() > 0 {
		for i := range playersV3_9Name {
			if playersV3_9Name[i], err = r.ReadBytes(31); err != nil {
				return nil, err
			}
		}
		for i := range playersV3_9Code {
			if playersV3_9Code[i], err = r.ReadBytes(10); err != nil {
				return nil, err
			}
		}
	}

	var playersV3_11 [numPorts][]byte
	if r.Remaining() > 0 {
		for i := range playersV3_11 {
			if playersV3_11[i], err = r.ReadBytes(29); err != nil {
				return nil, err
			}
		}
	}

	if r.Remaining() > 0 {
		lang, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		l := Language(lang)
		s.Language = &l
	}

	for i := 0; i < numPorts; i++ {
		p, err := decodePlayer(Port(i+1), playersV0[i], s.IsTeams,
			playersV1_0[i], playersV1_3[i],
			playersV3_9Name[i], playersV3_9Code[i], playersV3_11[i])
		if err != nil {
			return nil, err
		}
		if p != nil {
			s.Players = append(s.Players, *p)
		}
	}

	return s, nil
}

// decodePlayer assembles one port's Player from its version-gated byte
// blocks. It returns nil, nil for a port whose type is not Human, CPU, or
// Demo (an empty port, or any value this decoder does not recognize).
func decodePlayer(port Port, v0 []byte, isTeams bool, v1_0, v1_3, v3_9Name, v3_9Code, v3_11 []byte) (*Player, error) {
	r := NewBitReader(v0)

	character, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	typeByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	playerType := PlayerType(typeByte)
	stocks, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	costume, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(3); err != nil {
		return nil, err
	}
	teamShade, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	handicap, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	teamColor, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	var team *Team
	if isTeams {
		team = &Team{Color: TeamColor(teamColor), Shade: TeamShade(teamShade)}
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	bitfield, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	cpuLevelByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	var cpuLevel *uint8
	if playerType == CPU {
		cpuLevel = &cpuLevelByte
	}
	if err := r.Skip(8); err != nil {
		return nil, err
	}
	offenseRatio, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	defenseRatio, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	modelScale, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	if playerType != Human && playerType != CPU && playerType != Demo {
		return nil, nil
	}

	p := &Player{
		Port:         port,
		Character:    character,
		Type:         playerType,
		Stocks:       stocks,
		Costume:      costume,
		Team:         team,
		Handicap:     handicap,
		Bitfield:     bitfield,
		CPULevel:     cpuLevel,
		OffenseRatio: offenseRatio,
		DefenseRatio: defenseRatio,
		ModelScale:   modelScale,
	}

	if v1_0 != nil {
		ur := NewBitReader(v1_0)
		dashBackRaw, err := ur.ReadUint32()
		if err != nil {
			return nil, err
		}
		shieldDropRaw, err := ur.ReadUint32()
		if err != nil {
			return nil, err
		}
		ucf := &UCF{}
		if dashBackRaw != 0 {
			ucf.DashBack = DashBackFix(dashBackRaw)
		}
		if shieldDropRaw != 0 {
			ucf.ShieldDrop = ShieldDropFix(shieldDropRaw)
		}
		p.UCF = ucf
	}

	if v1_3 != nil {
		tag, err := decodeMeleeString(v1_3)
		if err != nil {
			return nil, err
		}
		p.NameTag = tag
	}

	if v3_9Name != nil && v3_9Code != nil {
		name, err := decodeMeleeString(v3_9Name)
		if err != nil {
			return nil, err
		}
		code, err := decodeMeleeString(v3_9Code)
		if err != nil {
			return nil, err
		}
		netplay := &Netplay{Name: name, Code: code}
		if v3_11 != nil {
			netplay.SUID = decodeSUID(v3_11)
		}
		p.Netplay = netplay
	}

	return p, nil
}
