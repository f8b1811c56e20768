package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	sampleRate = 44100
	bufferSize = 512
)

// Source produces audio by adding samples into buf.
type Source interface {
	Process(buf []float64)
}

// Output is the process-wide audio sink handle. Voices are given one at
// construction time and call Start and Stop to register and unregister
// themselves as the note-state machine demands.
type Output interface {
	Start(Source)
	Stop(Source)
}

// Sink plays registered sources on the default portaudio output stream.
// Start, Stop and the stream callback all take the same mutex, so a source
// removed by Stop is never mid-render, and source state touched before
// Start or after Stop is safe to mutate without further locking.
type Sink struct {
	mu      sync.Mutex
	sources map[Source]struct{}
	level   float64 // master level in dB
	stream  *portaudio.Stream
	buf     []float64
}

func NewSink(level float64) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize audio host: %w", err)
	}
	s := &Sink{
		sources: make(map[Source]struct{}),
		level:   level,
		buf:     make([]float64, bufferSize),
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, bufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open output stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *Sink) Run() error {
	return s.stream.Start()
}

func (s *Sink) Close() error {
	s.stream.Close()
	return portaudio.Terminate()
}

func (s *Sink) Start(src Source) {
	s.mu.Lock()
	s.sources[src] = struct{}{}
	s.mu.Unlock()
}

func (s *Sink) Stop(src Source) {
	s.mu.Lock()
	delete(s.sources, src)
	s.mu.Unlock()
}

func (s *Sink) process(out [][]float32) {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.mu.Lock()
	for src := range s.sources {
		src.Process(s.buf)
	}
	s.mu.Unlock()

	gain := math.Pow(10, s.level/20.0)
	for i, sample := range s.buf {
		v := float32(gain * sample)
		out[0][i] = v
		out[1][i] = v
	}
}
