package multipcm

// EGState identifies an envelope generator stage. A voice walks attack
// -> decay1 -> decay2 while keyed on, moves to release at key off, and
// stops when the release ramp reaches zero.
type EGState uint8

const (
	EGAttack EGState = iota
	EGDecay1
	EGDecay2
	EGRelease
)

// envelope is the per-voice EG state. volume is Q(10.16): the top 10
// bits index the linear-to-exponential table. The rate fields are
// per-sample volume steps resolved at key-on from the chip's step
// tables, sample rates and key rate scaling. dl caches the decay1 end
// level already inverted (0xf - sample DL).
type envelope struct {
	volume int32
	state  EGState
	ar     int32
	d1r    int32
	d2r    int32
	rr     int32
	dl     int32
}

const egVolMax = 0x3ff << egShift

// stepEnvelope advances the envelope by one output sample and returns the
// exponential gain factor for the current level, Q(n.12). Reaching zero
// in release stops the voice.
func (v *voice) stepEnvelope() int32 {
	eg := &v.eg
	switch eg.state {
	case EGAttack:
		eg.volume += eg.ar
		if eg.volume >= egVolMax {
			eg.state = EGDecay1
			if eg.d1r >= 0x400<<egShift { // decay1 is instant, skip it
				eg.state = EGDecay2
			}
			eg.volume = egVolMax
		}
	case EGDecay1:
		eg.volume -= eg.d1r
		if eg.volume <= 0 {
			eg.volume = 0
		}
		if eg.volume>>egShift <= eg.dl<<(10-4) {
			eg.state = EGDecay2
		}
	case EGDecay2:
		eg.volume -= eg.d2r
		if eg.volume <= 0 {
			eg.volume = 0
		}
	case EGRelease:
		eg.volume -= eg.rr
		if eg.volume <= 0 {
			eg.volume = 0
			v.playing = false
		}
	default:
		return 1 << shift
	}
	return lin2ExpVol[eg.volume>>egShift]
}

// getRate looks up a per-sample volume step for a 4-bit rate value after
// key rate scaling. Value 0 always maps to entry 0 (frozen) and value
// 0xf always to entry 0x3f (the fastest rate, instant in the attack
// table), regardless of scaling.
func getRate(steps *[0x40]int32, rate int32, val uint8) int32 {
	if val == 0 {
		return steps[0]
	}
	if val == 0xf {
		return steps[0x3f]
	}
	r := 4*int32(val) + rate
	if r > 0x3f {
		r = 0x3f
	}
	if r < 0 {
		r = 0
	}
	return steps[r]
}

// calcEnvelope resolves the envelope step rates for a voice at key-on
// from the latched sample's rates, the octave and key rate scaling.
func (m *MultiPCM) calcEnvelope(v *voice) {
	s := &m.samples[v.sampleIdx]

	octave := int32((v.regs[3]>>4)-1) & 0xf
	if octave&8 != 0 {
		octave -= 16
	}
	var rate int32
	if s.KRS != 0xf {
		rate = (octave+int32(s.KRS))*2 + int32((v.regs[3]>>3)&1)
	}

	v.eg.ar = getRate(&m.arStep, rate, s.AR)
	v.eg.d1r = getRate(&m.drStep, rate, s.DR1)
	v.eg.d2r = getRate(&m.drStep, rate, s.DR2)
	v.eg.rr = getRate(&m.drStep, rate, s.RR)
	v.eg.dl = 0xf - int32(s.DL)
}
