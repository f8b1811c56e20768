package audio

import "fmt"

// maxVelocity is the protocol's velocity ceiling. Velocity and pressure
// values are normalized to [0, 1] by dividing by it.
const maxVelocity = 128

type Kind int

const (
	NoteOn Kind = iota
	NoteOff
	Aftertouch
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "noteOn"
	case NoteOff:
		return "noteOff"
	case Aftertouch:
		return "aftertouch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Message is one performance event from the transport. Value carries the
// raw velocity (NoteOn) or pressure (Aftertouch) in 0..127; it is unused
// for NoteOff.
type Message struct {
	Kind  Kind
	Pitch int
	Value int
}

func (m Message) String() string {
	return fmt.Sprintf("%s pitch=%d value=%d", m.Kind, m.Pitch, m.Value)
}

// Gain converts a raw velocity or pressure value to a gain in [0, 1].
func Gain(value int) float64 {
	return float64(value) / maxVelocity
}
