package slippi

import "fmt"

// Port enumerates the four player slots a replay can address. Wire port
// bytes are 0..3; Port values are 1-based (P1..P4) to match how the game
// itself labels them.
type Port uint8

// Ports
const (
	P1 Port = iota + 1
	P2
	P3
	P4
)

func (p Port) String() string {
	if p >= P1 && p <= P4 {
		return fmt.Sprintf("P%d", int(p))
	}
	return fmt.Sprintf("Port(%d)", uint8(p))
}

// portFromWire converts a 0-based wire port byte into a Port.
func portFromWire(b uint8) (Port, error) {
	if b > 3 {
		return 0, fmt.Errorf("invalid wire port byte: %d", b)
	}
	return Port(b + 1), nil
}

// PlayerType enumerates the different player types in Melee.
type PlayerType uint8

// PlayerTypes
const (
	Human PlayerType = iota
	CPU
	Demo
	Empty
)

// TeamShade enumerates the coloration variant used to distinguish
// multiple players of the same character on the same team.
type TeamShade uint8

// TeamShades
const (
	ShadeNormal TeamShade = iota
	ShadeLight
	ShadeDark
)

// TeamColor enumerates the possible team colors in Melee.
type TeamColor uint8

// TeamColors
const (
	TeamRed TeamColor = iota
	TeamBlue
	TeamGreen
)

// DashBackFix enumerates the controller fix applied to dash-back inputs.
type DashBackFix uint32

// DashBackFixes
const (
	DashBackNone DashBackFix = iota
	DashBackUCF
	DashBackDween
)

// ShieldDropFix enumerates the controller fix applied to shield-drop
// inputs.
type ShieldDropFix uint32

// ShieldDropFixes
const (
	ShieldDropNone ShieldDropFix = iota
	ShieldDropUCF
	ShieldDropDween
)

// ItemSpawnBehavior enumerates item spawn frequency settings. A negative
// value means items are off.
type ItemSpawnBehavior int8

// ItemSpawnBehaviors
const (
	ItemSpawnOff ItemSpawnBehavior = -1
)

// Language enumerates the in-game language options introduced in v3.12.
type Language uint8

// Languages
const (
	Japanese Language = iota
	English
)

// EndMethod enumerates how a game concluded.
type EndMethod uint8

// EndMethods
const (
	EndUnresolved EndMethod = 0
	EndTime       EndMethod = 1
	EndGame       EndMethod = 2
	EndResolved   EndMethod = 3
	EndNoContest  EndMethod = 7
)

// LCancelStatus enumerates possible L-cancel outcomes.
type LCancelStatus uint8

// LCancelStatuses
const (
	LCancelNone LCancelStatus = iota
	LCancelSuccessful
	LCancelUnsuccessful
)

// HurtboxCollisionState enumerates possible hurtbox collision states.
type HurtboxCollisionState uint8

// HurtboxCollisionStates
const (
	HurtboxVulnerable HurtboxCollisionState = iota
	HurtboxInvulnerable
	HurtboxIntangible
)

// CharacterIceClimbers is the internal character ID for Ice Climbers, the
// only character that produces a follower column.
const CharacterIceClimbers uint8 = 14
