// Package midi delivers performance messages from a hardware MIDI input
// port to the instrument.
package midi

import (
	"errors"
	"fmt"
	"log"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	"github.com/duhrer/guitarompler/audio"
)

// Ports returns the names of the available MIDI input ports.
func Ports() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// Input forwards note and aftertouch messages from one MIDI input port,
// in the order the port delivers them.
type Input struct {
	port drivers.In
	stop func()
}

// Open connects to the first input port whose name contains name,
// case-insensitively, or to the first available port when name is empty.
func Open(name string, handler func(audio.Message)) (*Input, error) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, errors.New("no MIDI input ports available")
	}
	var port drivers.In
	for _, in := range ins {
		if name == "" || strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			port = in
			break
		}
	}
	if port == nil {
		return nil, fmt.Errorf("no MIDI input matching %q", name)
	}
	if err := port.Open(); err != nil {
		return nil, fmt.Errorf("open %q: %w", port.String(), err)
	}
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, _ int32) {
		if m, ok := Translate(msg); ok {
			handler(m)
		}
	})
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("listen on %q: %w", port.String(), err)
	}
	log.Printf("midi: listening on %q", port.String())
	return &Input{port: port, stop: stop}, nil
}

func (i *Input) Port() string { return i.port.String() }

func (i *Input) Close() {
	i.stop()
	i.port.Close()
	gomidi.CloseDriver()
}

// Translate decodes a wire message into a performance message. Messages
// outside the per-note protocol, channel pressure included, are dropped.
func Translate(msg gomidi.Message) (audio.Message, bool) {
	var channel, key, value uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &value):
		return audio.Message{Kind: audio.NoteOn, Pitch: int(key), Value: int(value)}, true
	case msg.GetNoteOff(&channel, &key, &value):
		return audio.Message{Kind: audio.NoteOff, Pitch: int(key)}, true
	case msg.GetPolyAfterTouch(&channel, &key, &value):
		return audio.Message{Kind: audio.Aftertouch, Pitch: int(key), Value: int(value)}, true
	}
	return audio.Message{}, false
}
