// Command multipcm-wav renders a short demo note through the MultiPCM
// core and writes the stereo output to a WAV file. It builds a synthetic
// sample ROM in memory (sample table plus a single-cycle sine wave), so
// no game data is required. Useful as an end-to-end smoke test and for
// inspecting the envelope and LFO behavior in an audio editor.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/user-none/go-chip-multipcm"
)

const (
	waveOffset = 0x1800 // first byte after the sample table
	waveLen    = 256
)

// buildROM assembles a minimal sample ROM: descriptor 0 points at a
// 256-byte sine wave looping over its full length, with a moderate
// envelope and a touch of vibrato.
func buildROM() []byte {
	rom := make([]byte, 0x4000)

	// Descriptor 0
	d := rom[0:12]
	d[0] = waveOffset >> 16
	d[1] = (waveOffset >> 8) & 0xff
	d[2] = waveOffset & 0xff
	d[3], d[4] = 0x00, 0x00 // loop start 0
	length := 0xffff - waveLen
	d[5] = uint8(length >> 8)
	d[6] = uint8(length)
	d[7] = 0x22  // LFO freq 4, vibrato depth 2
	d[8] = 0xc4  // AR 0xc, DR1 4
	d[9] = 0x22  // DL 2, DR2 2
	d[10] = 0xf8 // KRS 0xf (none), RR 8
	d[11] = 0x00 // no tremolo

	for i := 0; i < waveLen; i++ {
		rom[waveOffset+i] = byte(int8(127.0 * math.Sin(2.0*math.Pi*float64(i)/waveLen)))
	}
	return rom
}

// program writes a voice's registers through the quick-write port:
// sample 0, the given pitch register pair, pan, and full volume set
// directly.
func program(m *multipcm.MultiPCM, slot uint8, pitchLSB, pitchMSB, pan uint8) {
	quick := func(reg, data uint8) {
		m.WriteQuick(slot<<3|reg, data)
	}
	quick(1, 0x00)
	quick(2, pitchLSB)
	quick(3, pitchMSB)
	quick(0, pan<<4)
	quick(5, 0x01) // TL 0, direct
}

func main() {
	out := flag.String("out", "multipcm.wav", "output WAV path")
	clock := flag.Int("clock", 8053975, "chip input clock in Hz")
	flag.Parse()

	m := multipcm.New(*clock)
	rom := buildROM()
	m.AllocROM(uint32(len(rom)))
	m.WriteROM(0, rom)

	rate := int(m.Rate())

	// Two detuned voices, panned apart. Slot values 0 and 1 map to
	// voices 0 and 1.
	program(m, 0, 0x00, 0x10, 0x2)
	program(m, 1, 0x80, 0x10, 0xa)
	m.WriteQuick(0<<3|4, 0x80)
	m.WriteQuick(1<<3|4, 0x80)

	hold := rate // 1s keyed on
	tail := rate / 2
	outL := make([]int32, hold+tail)
	outR := make([]int32, hold+tail)

	m.Update(outL[:hold], outR[:hold])
	m.WriteQuick(0<<3|4, 0x00)
	m.WriteQuick(1<<3|4, 0x00)
	m.Update(outL[hold:], outR[hold:])

	data := make([]int, 2*len(outL))
	for i := range outL {
		data[2*i] = clamp16(outL[i])
		data[2*i+1] = clamp16(outR[i])
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "multipcm-wav: %v\n", err)
		os.Exit(1)
	}

	enc := wav.NewEncoder(f, rate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		fmt.Fprintf(os.Stderr, "multipcm-wav: %v\n", err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "multipcm-wav: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "multipcm-wav: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s: %d samples at %d Hz\n", *out, len(outL), rate)
}

func clamp16(v int32) int {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int(v)
}
