package multipcm

import (
	"encoding/binary"
	"errors"
)

const serializeVersion = 1

const (
	voiceSerializeSize    = 65
	multipcmSerializeSize = 11 + numVoices*voiceSerializeSize
)

// SerializeSize returns the number of bytes needed to serialize the chip
// state. The value is constant and can be used to pre-allocate a
// reusable buffer.
func (m *MultiPCM) SerializeSize() int {
	return multipcmSerializeSize
}

// Serialize writes all mutable chip state into buf in a compact
// little-endian binary format. Returns an error if len(buf) <
// SerializeSize(). ROM contents and the decoded sample table are not
// included: the host owns the ROM data and re-uploads it before
// restoring. The mute mask is host audio config, not chip state, and is
// not included either.
func (m *MultiPCM) Serialize(buf []byte) error {
	if len(buf) < multipcmSerializeSize {
		return errors.New("multipcm: serialize buffer too small")
	}

	buf[0] = serializeVersion
	buf[1] = uint8(m.curSlot)
	buf[2] = m.address
	binary.LittleEndian.PutUint32(buf[3:], m.bankL)
	binary.LittleEndian.PutUint32(buf[7:], m.bankR)

	o := 11
	for i := range m.voices {
		v := &m.voices[i]
		copy(buf[o:], v.regs[:])
		buf[o+8] = boolByte(v.playing)
		buf[o+9] = v.sampleIdx
		binary.LittleEndian.PutUint32(buf[o+10:], v.base)
		binary.LittleEndian.PutUint32(buf[o+14:], v.offset)
		binary.LittleEndian.PutUint32(buf[o+18:], v.step)
		buf[o+22] = v.pan
		binary.LittleEndian.PutUint32(buf[o+23:], v.tl)
		buf[o+27] = uint8(v.dstTL)
		binary.LittleEndian.PutUint32(buf[o+28:], uint32(v.tlStep))
		binary.LittleEndian.PutUint32(buf[o+32:], uint32(v.prev))
		binary.LittleEndian.PutUint32(buf[o+36:], uint32(v.eg.volume))
		buf[o+40] = uint8(v.eg.state)
		binary.LittleEndian.PutUint32(buf[o+41:], uint32(v.eg.ar))
		binary.LittleEndian.PutUint32(buf[o+45:], uint32(v.eg.d1r))
		binary.LittleEndian.PutUint32(buf[o+49:], uint32(v.eg.d2r))
		binary.LittleEndian.PutUint32(buf[o+53:], uint32(v.eg.rr))
		binary.LittleEndian.PutUint32(buf[o+57:], uint32(v.eg.dl))
		binary.LittleEndian.PutUint16(buf[o+61:], v.plfo.phase)
		binary.LittleEndian.PutUint16(buf[o+63:], v.alfo.phase)
		o += voiceSerializeSize
	}
	return nil
}

// Deserialize restores all mutable chip state from buf, which must have
// been produced by Serialize. Returns an error if the buffer is too
// small or was produced by an incompatible version. The host must have
// uploaded the same ROM beforehand so the sample table and masked reads
// match the serialized voices. The mute mask is not modified.
func (m *MultiPCM) Deserialize(buf []byte) error {
	if len(buf) < multipcmSerializeSize {
		return errors.New("multipcm: deserialize buffer too small")
	}
	if buf[0] != serializeVersion {
		return errors.New("multipcm: unsupported serialize version")
	}

	m.curSlot = int8(buf[1])
	m.address = buf[2]
	m.bankL = binary.LittleEndian.Uint32(buf[3:])
	m.bankR = binary.LittleEndian.Uint32(buf[7:])

	o := 11
	for i := range m.voices {
		v := &m.voices[i]
		copy(v.regs[:], buf[o:o+8])
		v.playing = buf[o+8] != 0
		v.sampleIdx = buf[o+9]
		v.base = binary.LittleEndian.Uint32(buf[o+10:])
		v.offset = binary.LittleEndian.Uint32(buf[o+14:])
		v.step = binary.LittleEndian.Uint32(buf[o+18:])
		v.pan = buf[o+22]
		v.tl = binary.LittleEndian.Uint32(buf[o+23:])
		v.dstTL = uint32(buf[o+27])
		v.tlStep = int32(binary.LittleEndian.Uint32(buf[o+28:]))
		v.prev = int32(binary.LittleEndian.Uint32(buf[o+32:]))
		v.eg.volume = int32(binary.LittleEndian.Uint32(buf[o+36:]))
		v.eg.state = EGState(buf[o+40])
		v.eg.ar = int32(binary.LittleEndian.Uint32(buf[o+41:]))
		v.eg.d1r = int32(binary.LittleEndian.Uint32(buf[o+45:]))
		v.eg.d2r = int32(binary.LittleEndian.Uint32(buf[o+49:]))
		v.eg.rr = int32(binary.LittleEndian.Uint32(buf[o+53:]))
		v.eg.dl = int32(binary.LittleEndian.Uint32(buf[o+57:]))
		v.plfo.phase = binary.LittleEndian.Uint16(buf[o+61:])
		v.alfo.phase = binary.LittleEndian.Uint16(buf[o+63:])
		o += voiceSerializeSize

		// Phase steps and table references are derived from registers
		// 6 and 7, not serialized.
		m.recomputeLFOs(v)
	}
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
