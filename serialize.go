package slippi

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/jmank88/ubjson"
)

// Serialize writes g back out in the original replay wire format. For any
// Game produced by Decode, Serialize(Decode(bytes)) reproduces bytes
// exactly: GameStart and GameEnd are re-emitted from their preserved raw
// payloads rather than re-encoded from their decoded fields, and every
// frame event is re-derived field-for-field from the column store.
func Serialize(w io.Writer, g *Game) error {
	var raw bytes.Buffer
	if err := serializeRaw(&raw, g); err != nil {
		return err
	}

	if _, err := w.Write(slippiFileSignature); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(raw.Len()))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(raw.Bytes()); err != nil {
		return err
	}

	if g.Metadata != nil {
		if err := serializeMetadata(w, g.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func writeEvent(w io.Writer, code byte, payload []byte) error {
	if _, err := w.Write([]byte{code}); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func serializeRaw(w io.Writer, g *Game) error {
	sizes := buildEventSizes(g)
	if err := writeEventCatalog(w, sizes); err != nil {
		return err
	}
	if err := writeEvent(w, byte(CmdGameStart), g.Start.RawBytes); err != nil {
		return err
	}

	rows := g.Frames.Len()
	for i := 0; i < rows; i++ {
		rec := g.Frames.Transpose(i)

		if g.Frames.start != nil {
			if err := writeFrameStart(w, rec); err != nil {
				return err
			}
		}
		for _, pd := range rec.Ports {
			if err := writeFramePre(w, rec.ID, pd, false); err != nil {
				return err
			}
			if pd.Follower != nil {
				if err := writeFramePre(w, rec.ID, pd, true); err != nil {
					return err
				}
			}
		}
		for _, it := range rec.Items {
			if err := writeItem(w, rec.ID, it); err != nil {
				return err
			}
		}
		for _, pd := range rec.Ports {
			if err := writeFramePost(w, rec.ID, pd, false); err != nil {
				return err
			}
			if pd.Follower != nil {
				if err := writeFramePost(w, rec.ID, pd, true); err != nil {
					return err
				}
			}
		}
		if g.Frames.end != nil {
			if err := writeFrameEnd(w, rec); err != nil {
				return err
			}
		}
	}

	if g.GeckoCodes != nil {
		if err := writeGeckoCodes(w, g.GeckoCodes); err != nil {
			return err
		}
	}
	if g.End != nil {
		if err := writeEvent(w, byte(CmdGameEnd), g.End.RawBytes); err != nil {
			return err
		}
	}
	return nil
}

// serializeMetadata re-encodes the metadata map and writes the trailing
// "metadata" key/prefix and closing braces. The UBJSON encoder writes its
// own leading '{' for the map; since that brace was already written as
// part of metadataKeyPrefix (matching how the decoder consumes it), it is
// stripped back off before the body is written.
func serializeMetadata(w io.Writer, metadata map[string]interface{}) error {
	if _, err := w.Write(metadataKeyPrefix); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := ubjson.NewEncoder(&buf).Encode(metadata); err != nil {
		return err
	}
	body := buf.Bytes()
	if len(body) > 0 && body[0] == '{' {
		body = body[1:]
	}
	if _, err := w.Write(body); err != nil {
		return err
	}

	_, err := w.Write([]byte{0x7d})
	return err
}

// writeEventCatalog emits the Event Payload Catalog with its entries
// sorted by code, so that re-serializing a decoded Game is deterministic
// regardless of Go's randomized map iteration order.
func writeEventCatalog(w io.Writer, sizes map[byte]uint16) error {
	codes := make([]byte, 0, len(sizes))
	for code := range sizes {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	size := uint8(1 + 3*len(sizes))
	var bw BitWriter
	bw.WriteUint8(size)
	for _, code := range codes {
		bw.WriteUint8(code)
		bw.WriteUint16(sizes[code])
	}
	return writeEvent(w, byte(CmdEventPayloads), bw.Bytes())
}

func sizeOfFramePre(hasPercent, hasRawAnalogX bool) uint16 {
	size := uint16(4 + 1 + 1 + 52)
	if hasPercent {
		size += 4
	}
	if hasRawAnalogX {
		size++
	}
	return size
}

func sizeOfFramePost(hasStateAge, has2_0, hasHurtboxState, has3_5, hasAnimationIndex bool) uint16 {
	size := uint16(4 + 1 + 1 + 27)
	if hasStateAge {
		size += 4
	}
	if has2_0 {
		size += 14
	}
	if hasHurtboxState {
		size++
	}
	if has3_5 {
		size += 24
	}
	if hasAnimationIndex {
		size += 4
	}
	return size
}

func sizeOfItem(hasMisc, hasOwner bool) uint16 {
	size := uint16(4 + 33)
	if hasMisc {
		size += 4
	}
	if hasOwner {
		size++
	}
	return size
}

func sizeOfFrameStart(hasSceneFrameCounter bool) uint16 {
	size := uint16(4 + 4)
	if hasSceneFrameCounter {
		size += 4
	}
	return size
}

func sizeOfFrameEnd(hasLatestFinalizedFrame bool) uint16 {
	size := uint16(4)
	if hasLatestFinalizedFrame {
		size += 4
	}
	return size
}

func buildEventSizes(g *Game) map[byte]uint16 {
	sizes := map[byte]uint16{
		byte(CmdGameStart): uint16(len(g.Start.RawBytes)),
	}
	if g.End != nil {
		sizes[byte(CmdGameEnd)] = uint16(len(g.End.RawBytes))
	}

	v := g.Start.Version
	sizes[byte(CmdFramePre)] = sizeOfFramePre(versionGTE(v, 1, 2), versionGTE(v, 1, 4))
	sizes[byte(CmdFramePost)] = sizeOfFramePost(
		versionGTE(v, 0, 2), versionGTE(v, 2, 0), versionGTE(v, 2, 1),
		versionGTE(v, 3, 5), versionGTE(v, 3, 8))

	if g.Frames.items != nil {
		sizes[byte(CmdItem)] = sizeOfItem(g.Frames.items.hasMisc, g.Frames.items.hasOwner)
	}
	if g.Frames.start != nil {
		sizes[byte(CmdFrameStart)] = sizeOfFrameStart(g.Frames.start.hasSceneFrameCounter)
	}
	if g.Frames.end != nil {
		sizes[byte(CmdFrameEnd)] = sizeOfFrameEnd(g.Frames.end.hasLatestFinalizedFrame)
	}
	if g.GeckoCodes != nil {
		sizes[byte(CmdGeckoCodes)] = uint16(len(g.GeckoCodes.Bytes))
		if len(g.GeckoCodes.Bytes) > 512 {
			sizes[byte(CmdSplitter)] = splitterPayloadSize
		}
	}
	return sizes
}

func writeFrameStart(w io.Writer, rec FrameRecord) error {
	var bw BitWriter
	bw.WriteInt32(rec.ID)
	bw.WriteUint32(rec.Start.RandomSeed)
	if rec.Start.SceneFrameCounter != nil {
		bw.WriteUint32(*rec.Start.SceneFrameCounter)
	}
	return writeEvent(w, byte(CmdFrameStart), bw.Bytes())
}

func writeFrameEnd(w io.Writer, rec FrameRecord) error {
	var bw BitWriter
	bw.WriteInt32(rec.ID)
	if rec.End.LatestFinalizedFrame != nil {
		bw.WriteInt32(*rec.End.LatestFinalizedFrame)
	}
	return writeEvent(w, byte(CmdFrameEnd), bw.Bytes())
}

func writeItem(w io.Writer, id int32, it ItemRecord) error {
	var bw BitWriter
	bw.WriteInt32(id)
	bw.WriteUint16(it.Type)
	bw.WriteUint8(it.State)
	bw.WriteFloat32(it.Direction)
	bw.WriteFloat32(it.VelocityX)
	bw.WriteFloat32(it.VelocityY)
	bw.WriteFloat32(it.PositionX)
	bw.WriteFloat32(it.PositionY)
	bw.WriteUint16(it.Damage)
	bw.WriteFloat32(it.Timer)
	bw.WriteUint32(it.ID)
	if it.Misc != nil {
		bw.WriteBytes(it.Misc[:])
	}
	if it.Owner != nil {
		bw.WriteInt8(*it.Owner)
	}
	return writeEvent(w, byte(CmdItem), bw.Bytes())
}

func writeFramePre(w io.Writer, id int32, pd PortDataRecord, follower bool) error {
	data := pd.Leader
	if follower {
		if pd.Follower == nil {
			return nil
		}
		data = *pd.Follower
	}
	rec := data.Pre

	var bw BitWriter
	bw.WriteInt32(id)
	bw.WriteUint8(uint8(pd.Port - 1))
	bw.WriteBool(follower)
	bw.WriteUint32(rec.RandomSeed)
	bw.WriteUint16(rec.State)
	bw.WriteFloat32(rec.PositionX)
	bw.WriteFloat32(rec.PositionY)
	bw.WriteFloat32(rec.Direction)
	bw.WriteFloat32(rec.JoystickX)
	bw.WriteFloat32(rec.JoystickY)
	bw.WriteFloat32(rec.CStickX)
	bw.WriteFloat32(rec.CStickY)
	bw.WriteFloat32(rec.Triggers)
	bw.WriteUint32(rec.Buttons)
	bw.WriteUint16(rec.ButtonsPhysical)
	bw.WriteFloat32(rec.TriggersPhysicalL)
	bw.WriteFloat32(rec.TriggersPhysicalR)
	if rec.Percent != nil {
		bw.WriteFloat32(*rec.Percent)
	}
	if rec.RawAnalogX != nil {
		bw.WriteInt8(*rec.RawAnalogX)
	}
	return writeEvent(w, byte(CmdFramePre), bw.Bytes())
}

func writeFramePost(w io.Writer, id int32, pd PortDataRecord, follower bool) error {
	data := pd.Leader
	if follower {
		if pd.Follower == nil {
			return nil
		}
		data = *pd.Follower
	}
	rec := data.Post

	var bw BitWriter
	bw.WriteInt32(id)
	bw.WriteUint8(uint8(pd.Port - 1))
	bw.WriteBool(follower)
	bw.WriteUint8(rec.Character)
	bw.WriteUint16(rec.State)
	bw.WriteFloat32(rec.PositionX)
	bw.WriteFloat32(rec.PositionY)
	bw.WriteFloat32(rec.Direction)
	bw.WriteFloat32(rec.Percent)
	bw.WriteFloat32(rec.Shield)
	bw.WriteUint8(rec.LastAttackLanded)
	bw.WriteUint8(rec.ComboCount)
	bw.WriteUint8(rec.LastHitBy)
	bw.WriteUint8(rec.Stocks)

	if rec.StateAge != nil {
		bw.WriteFloat32(*rec.StateAge)
	}
	if rec.StateFlags != nil {
		bw.WriteBytes(rec.StateFlags[:])
		bw.WriteFloat32(*rec.MiscAS)
		bw.WriteBool(*rec.Airborne)
		bw.WriteUint16(*rec.Ground)
		bw.WriteUint8(*rec.Jumps)
		bw.WriteUint8(uint8(*rec.LCancel))
	}
	if rec.HurtboxState != nil {
		bw.WriteUint8(uint8(*rec.HurtboxState))
	}
	if rec.SelfXAir != nil {
		bw.WriteFloat32(*rec.SelfXAir)
		bw.WriteFloat32(*rec.SelfY)
		bw.WriteFloat32(*rec.KnockbackX)
		bw.WriteFloat32(*rec.KnockbackY)
		bw.WriteFloat32(*rec.SelfXGround)
		bw.WriteFloat32(*rec.Hitlag)
	}
	if rec.AnimationIndex != nil {
		bw.WriteUint32(*rec.AnimationIndex)
	}
	return writeEvent(w, byte(CmdFramePost), bw.Bytes())
}

// writeGeckoCodes re-splits a reassembled GeckoCodes payload into 516-byte
// message-splitter segments. Segments before the last always carry a full
// 512-byte actual_size, matching how the game itself only ever emits a
// partial final segment.
func writeGeckoCodes(w io.Writer, gc *GeckoCodes) error {
	if len(gc.Bytes) <= 512 {
		return writeEvent(w, byte(CmdGeckoCodes), gc.Bytes)
	}

	segments := len(gc.Bytes) / 512
	for i := 0; i < segments; i++ {
		chunk := gc.Bytes[i*512 : (i+1)*512]
		isFinal := i == segments-1
		actualSize := uint16(512)
		if isFinal {
			rem := gc.ActualSize - uint32(512*i)
			if rem > 512 {
				rem = 512
			}
			actualSize = uint16(rem)
		}
		var bw BitWriter
		bw.WriteBytes(chunk)
		bw.WriteUint16(actualSize)
		bw.WriteUint8(byte(CmdGeckoCodes))
		bw.WriteBool(isFinal)
		if err := writeEvent(w, byte(CmdSplitter), bw.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
