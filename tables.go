package multipcm

import "math"

// Fixed-point precisions used throughout the chip.
const (
	shift    = 12 // phase and pan/volume fixed point: Q(n.12)
	egShift  = 16 // envelope volume fixed point: Q(10.16)
	lfoShift = 8  // LFO phase step fixed point: Q(n.8)
)

// The chip derives its output sample rate by dividing the input clock by 180.
const clockDiv = 180.0

// Slot select values map through this table: every 8th value is a gap,
// selecting 28 of the 32 possible slots. A gap deselects (-1).
var val2chan = [32]int8{
	0, 1, 2, 3, 4, 5, 6, -1,
	7, 8, 9, 10, 11, 12, 13, -1,
	14, 15, 16, 17, 18, 19, 20, -1,
	21, 22, 23, 24, 25, 26, 27, -1,
}

// Envelope segment times in milliseconds, on a 44100Hz timebase. Entries
// 0-3 never advance and entry 63 is a sentinel for the instant rate.
var baseTimes = [64]float64{
	0, 0, 0, 0, 6222.95, 4978.37, 4148.66, 3556.01, 3111.47, 2489.21, 2074.33, 1778.00, 1555.74, 1244.63, 1037.19, 889.02,
	777.87, 622.31, 518.59, 444.54, 388.93, 311.16, 259.32, 222.27, 194.47, 155.60, 129.66, 111.16, 97.23, 77.82, 64.85, 55.60,
	48.62, 38.91, 32.43, 27.80, 24.31, 19.46, 16.24, 13.92, 12.15, 9.75, 8.12, 6.98, 6.08, 4.90, 4.08, 3.49,
	3.04, 2.49, 2.13, 1.90, 1.72, 1.41, 1.18, 1.04, 0.91, 0.73, 0.59, 0.50, 0.45, 0.45, 0.45, 0.45,
}

// Decay segments run slower than attack segments by this factor.
const ar2dr = 14.32833

// LFO rates in Hz for the 3-bit frequency setting.
var lfoFreq = [8]float64{0.168, 2.019, 3.196, 4.206, 5.215, 5.888, 6.224, 7.066}

// Pitch LFO depth in cents and amplitude LFO depth in dB for the 3-bit
// depth settings. Depth 0 disables the LFO.
var pscale = [8]float64{0.0, 3.378, 5.065, 6.750, 10.114, 20.170, 40.180, 79.307}
var ascale = [8]float64{0.0, 0.4, 0.8, 1.5, 3.0, 6.0, 12.0, 24.0}

// Pan/volume lookup tables, indexed by (pan << 7) | TL. Entries are the
// per-channel gain in Q(n.12) after TL attenuation, pan attenuation and
// the global /4 scale.
var lpanTable, rpanTable [0x800]int32

// Linear envelope level to exponential gain, Q(n.12). Index is the
// 10-bit envelope volume; 0 is -96dB, 0x3ff is 0dB.
var lin2ExpVol [0x400]int32

// TL interpolation steps per output sample, Q(n.12). Index 0 lowers the
// level (0x80 steps over 78.2ms), index 1 raises it at half that speed.
var tlSteps [2]int32

// LFO triangle tables. plfoTri is signed (-127..127) for pitch deviation,
// alfoTri is unsigned (0..255) for amplitude.
var plfoTri, alfoTri [256]int32

// Per-depth LFO scaling tables. pscales maps a signed triangle value
// (offset by 128) to a pitch multiplier, ascales maps an unsigned
// triangle value to an amplitude multiplier. Both Q(n.8).
var pscales, ascales [8][256]int32

// lfix converts a float scale factor to Q(n.8).
func lfix(v float64) int32 {
	return int32(float64(int32(1)<<lfoShift) * v)
}

// dbToGain converts dB to a Q(n.8) amplitude multiplier.
func dbToGain(db float64) int32 {
	return lfix(math.Pow(10.0, db/20.0))
}

// centsToStep converts cents to a Q(n.8) pitch step multiplier.
func centsToStep(cents float64) int32 {
	return lfix(math.Pow(2.0, cents/1200.0))
}

func init() {
	// Volume+pan table. TL attenuates at -24dB/0x40 per step. Pan 0 is
	// centered, pan 8 mutes both channels, pan values with bit 3 set
	// attenuate the right channel, others the left, at -12dB/4 per step
	// with the extreme setting (low bits 7) fully muting that side.
	for i := 0; i < 0x800; i++ {
		iTL := float64(i & 0x7f)
		iPan := (i >> 7) & 0xf

		segaDB := iTL * -24.0 / float64(0x40)
		tl := math.Pow(10.0, segaDB/20.0)

		var lPan, rPan float64
		switch {
		case iPan == 0x8:
			lPan, rPan = 0.0, 0.0
		case iPan == 0x0:
			lPan, rPan = 1.0, 1.0
		case iPan&0x8 != 0:
			lPan = 1.0
			p := 0x10 - iPan
			segaDB = float64(p) * -12.0 / float64(0x4)
			rPan = math.Pow(10.0, segaDB/20.0)
			if p&0x7 == 7 {
				rPan = 0.0
			}
		default:
			rPan = 1.0
			segaDB = float64(iPan) * -12.0 / float64(0x4)
			lPan = math.Pow(10.0, segaDB/20.0)
			if iPan&0x7 == 7 {
				lPan = 0.0
			}
		}

		tl /= 4.0

		lpanTable[i] = int32(float64(int32(1)<<shift) * lPan * tl)
		rpanTable[i] = int32(float64(int32(1)<<shift) * rPan * tl)
	}

	// TL interpolation steps.
	tlStepBase := float64(int32(0x80 << shift))
	tlSteps[0] = -int32(tlStepBase / (78.2 * 44100.0 / 1000.0))
	tlSteps[1] = int32(tlStepBase / (78.2 * 2 * 44100.0 / 1000.0))

	// Linear to exponential envelope ramp: 0x400 steps spanning -96dB..0dB.
	for i := 0; i < 0x400; i++ {
		db := -(96.0 - (96.0 * float64(i) / float64(0x400)))
		lin2ExpVol[i] = int32(math.Pow(10.0, db/20.0) * float64(int32(1)<<shift))
	}

	initLFOTables()
}
