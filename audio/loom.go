package audio

import (
	"log"
	"sync"
)

const numPitches = 128

// Loom routes performance messages to the voice owning each pitch. The
// pitch table is built once, after every family has settled, and is
// read-only from then on.
type Loom struct {
	mu       sync.Mutex
	families []*Family
	pending  int
	table    [numPitches]*Voice
	built    bool
	done     chan struct{}
}

func NewLoom() *Loom {
	return &Loom{done: make(chan struct{})}
}

// Await arms the loom with the families it must wait for. The table is
// built when the last of them settles, successfully or not; a failed
// family simply contributes no voices. Until then Route drops everything.
func (l *Loom) Await(families []*Family) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.families = families
	l.pending = len(families)
	if l.pending == 0 {
		l.build()
	}
}

// FamilySettled is the completion signal each family fires exactly once.
func (l *Loom) FamilySettled(*Family) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending--
	if l.pending == 0 && !l.built {
		l.build()
	}
}

// build populates the table in declared family order. When two families
// claim the same pitch the later declared one wins.
func (l *Loom) build() {
	var n int
	for _, f := range l.families {
		for _, v := range f.Voices() {
			pitch := v.Pitch()
			if pitch < 0 || pitch >= numPitches {
				log.Printf("loom: voice pitch %d out of range, skipping", pitch)
				continue
			}
			if l.table[pitch] != nil {
				log.Printf("loom: pitch %d remapped to family at base %d", pitch, v.basePitch)
			} else {
				n++
			}
			l.table[pitch] = v
		}
	}
	l.built = true
	close(l.done)
	log.Printf("loom: pitch table built, %d pitches mapped", n)
}

// Route forwards msg to the voice at its pitch. Messages arriving before
// the table is built are dropped, not queued. A pitch with no voice is an
// expected steady-state condition and drops silently.
//
// The lock is held across Handle: the MIDI callback and the repl both feed
// Route, and voice state transitions must be serialized between them. Handle
// only ever takes the sink mutex below this one.
func (l *Loom) Route(msg Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.built || msg.Pitch < 0 || msg.Pitch >= numPitches {
		return
	}
	if v := l.table[msg.Pitch]; v != nil {
		v.Handle(msg)
	}
}

func (l *Loom) Built() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.built
}

// Done is closed once the pitch table has been built.
func (l *Loom) Done() <-chan struct{} { return l.done }

// Mapped returns the pitches that currently resolve to a voice.
func (l *Loom) Mapped() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var pitches []int
	for pitch, v := range l.table {
		if v != nil {
			pitches = append(pitches, pitch)
		}
	}
	return pitches
}
