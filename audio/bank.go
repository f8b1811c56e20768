package audio

import (
	"errors"
	"fmt"
	"log"
)

// maxOffset is how far the playback engine can comfortably shift a sample
// from its native pitch, in semitones. Offsets beyond it are accepted but
// the resulting rate falls outside the supported band.
const maxOffset = 21

// Bank holds the voices derived from one sample: one voice per offset in a
// closed range around the base pitch, all sharing the decoded buffer.
type Bank struct {
	basePitch int
	voices    []*Voice
}

// NewBank builds one voice per offset in [low, high]. The buffer must
// already be decoded; banks are never built ahead of their sample.
func NewBank(out Output, buf []float64, basePitch, low, high int) (*Bank, error) {
	if len(buf) == 0 {
		return nil, errors.New("bank: no sample data")
	}
	if low > high {
		return nil, fmt.Errorf("bank: inverted offset range %d..%d", low, high)
	}
	b := &Bank{basePitch: basePitch}
	for offset := low; offset <= high; offset++ {
		if offset < -maxOffset || offset > maxOffset {
			log.Printf("bank: offset %d from pitch %d exceeds %d semitones, playback rate %.2f is suspect",
				offset, basePitch, maxOffset, speed(offset))
		}
		b.voices = append(b.voices, NewVoice(out, buf, basePitch, offset))
	}
	return b, nil
}

func (b *Bank) Voices() []*Voice { return b.voices }
