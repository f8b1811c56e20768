package audio

import (
	"log"
	"math"
	"sync/atomic"
)

type voiceState int

const (
	stateIdle voiceState = iota
	stateSounding
)

// speed returns the playback rate that shifts a sample by the given number
// of semitones: the equal-tempered ratio 2^(offset/12).
func speed(offset int) float64 {
	return math.Exp2(float64(offset) / 12)
}

// Voice plays one sample at one fixed pitch shift. It reacts only to
// messages addressed to its own pitch, which is basePitch+offset: note on
// starts output, note off stops it, and aftertouch adjusts the gain of a
// note that is already sounding without restarting it.
type Voice struct {
	basePitch int
	offset    int
	speed     float64
	buf       []float64 // shared with sibling voices, read-only
	out       Output

	state voiceState
	gain  atomic.Value // float64, read by the render callback
	pos   float64
}

func NewVoice(out Output, buf []float64, basePitch, offset int) *Voice {
	v := &Voice{
		basePitch: basePitch,
		offset:    offset,
		speed:     speed(offset),
		buf:       buf,
		out:       out,
	}
	v.gain.Store(0.0)
	return v
}

func (v *Voice) Pitch() int { return v.basePitch + v.offset }

func (v *Voice) Offset() int { return v.offset }

func (v *Voice) Speed() float64 { return v.speed }

func (v *Voice) Gain() float64 { return v.gain.Load().(float64) }

func (v *Voice) Sounding() bool { return v.state == stateSounding }

// Handle applies one performance message. Messages for other pitches are
// dropped. A note on while already sounding stops the current output
// before anything else, so two outputs never stack: the stop is
// unconditional, the restart depends on the new velocity.
func (v *Voice) Handle(msg Message) {
	if msg.Pitch != v.Pitch() {
		log.Printf("voice %d: ignoring message for pitch %d", v.Pitch(), msg.Pitch)
		return
	}
	switch msg.Kind {
	case NoteOn:
		if v.state == stateSounding {
			v.stop()
		}
		if msg.Value > 0 {
			v.start(Gain(msg.Value))
		}
	case NoteOff:
		if v.state == stateSounding {
			v.stop()
		}
	case Aftertouch:
		if v.state != stateSounding {
			return
		}
		if msg.Value <= 0 {
			v.stop()
			return
		}
		v.gain.Store(Gain(msg.Value))
	}
}

func (v *Voice) start(gain float64) {
	v.pos = 0
	v.gain.Store(gain)
	v.state = stateSounding
	v.out.Start(v)
}

func (v *Voice) stop() {
	v.out.Stop(v)
	v.state = stateIdle
}

// Process renders into buf, advancing the sample position by speed per
// output frame with linear interpolation. A voice that has run past the
// end of its sample goes silent but stays registered until a note off.
func (v *Voice) Process(buf []float64) {
	gain := v.gain.Load().(float64)
	pos := v.pos
	for i := range buf {
		j := int(pos)
		if j >= len(v.buf) {
			break
		}
		frac := pos - float64(j)
		next := v.buf[j] // hold the final sample at the end of the buffer
		if j+1 < len(v.buf) {
			next = v.buf[j+1]
		}
		buf[i] += (v.buf[j] + (next-v.buf[j])*frac) * gain
		pos += v.speed
	}
	v.pos = pos
}
