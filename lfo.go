package multipcm

// lfo is one low-frequency oscillator. The chip gives each voice a pair:
// a pitch LFO (vibrato) and an amplitude LFO (tremolo), both reading a
// 256-entry triangle through a per-depth scaling table. phase is a
// 16-bit accumulator whose top 8 bits index the triangle; it advances
// by phaseStep, Q(n.8), each sample.
type lfo struct {
	phase     uint16
	phaseStep uint32
	table     *[256]int32
	scale     *[256]int32
}

// stepPitch advances the LFO and returns a Q(n.12) multiplier for the
// voice phase step. The triangle value is signed, so the scale table is
// indexed with a +128 offset.
func (l *lfo) stepPitch() int32 {
	l.phase += uint16(l.phaseStep)
	p := l.table[(l.phase>>lfoShift)&0xff]
	p = l.scale[p+128]
	return p << (shift - lfoShift)
}

// stepAmplitude advances the LFO and returns a Q(n.12) multiplier for
// the voice sample. The triangle value is unsigned.
func (l *lfo) stepAmplitude() int32 {
	l.phase += uint16(l.phaseStep)
	p := l.table[(l.phase>>lfoShift)&0xff]
	p = l.scale[p]
	return p << (shift - lfoShift)
}

// computeLFOStep resolves the LFO frequency and depth settings into a phase
// step and table references. freq and depth are the 3-bit register
// fields. amplitude selects tremolo tables over vibrato tables. The
// phase itself is preserved so reprogramming does not click.
func (m *MultiPCM) computeLFOStep(l *lfo, freq, depth uint8, amplitude bool) {
	step := lfoFreq[freq&7] * 256.0 / m.rate
	l.phaseStep = uint32(float64(int32(1)<<lfoShift) * step)
	if amplitude {
		l.table = &alfoTri
		l.scale = &ascales[depth&7]
	} else {
		l.table = &plfoTri
		l.scale = &pscales[depth&7]
	}
}

// recomputeLFOs reprograms both of a voice's LFOs from registers 6 and
// 7. Register 6 holds the shared frequency and the vibrato depth,
// register 7 the tremolo depth.
func (m *MultiPCM) recomputeLFOs(v *voice) {
	m.computeLFOStep(&v.plfo, (v.regs[6]>>3)&7, v.regs[6]&7, false)
	m.computeLFOStep(&v.alfo, (v.regs[6]>>3)&7, v.regs[7]&7, true)
}

// initLFOTables builds the shared triangle and depth scaling tables.
// The amplitude triangle runs 255..0..254 unsigned; the pitch triangle
// runs 0..127..-127..0 signed, a quarter wave out of phase.
func initLFOTables() {
	for i := 0; i < 256; i++ {
		var a, p int32
		if i < 128 {
			a = int32(255 - i*2)
		} else {
			a = int32(i*2 - 256)
		}
		switch {
		case i < 64:
			p = int32(i * 2)
		case i < 128:
			p = int32(255 - i*2)
		case i < 192:
			p = int32(256 - i*2)
		default:
			p = int32(i*2 - 511)
		}
		alfoTri[i] = a
		plfoTri[i] = p
	}

	for s := 0; s < 8; s++ {
		limit := pscale[s]
		for i := -128; i < 128; i++ {
			pscales[s][i+128] = centsToStep(limit * float64(i) / 128.0)
		}
		limit = -ascale[s]
		for i := 0; i < 256; i++ {
			ascales[s][i] = dbToGain(limit * float64(i) / 256.0)
		}
	}
}
