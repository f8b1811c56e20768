package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/duhrer/guitarompler/audio"
	"github.com/duhrer/guitarompler/midi"
)

func main() {
	var (
		configPath = flag.String("config", "guitarompler.json", "path to config, created with defaults if missing")
		listPorts  = flag.Bool("list-ports", false, "list MIDI input ports and exit")
		start      = flag.Bool("start", false, "activate the instrument immediately instead of waiting for the start command")
	)
	flag.Parse()

	if *listPorts {
		for _, p := range midi.Ports() {
			fmt.Println(p)
		}
		return
	}

	config, err := ReadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	s := &session{config: config}
	defer s.close()

	if *start {
		if err := s.start(); err != nil {
			log.Fatal(err)
		}
	}

	if err := repl(s); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// session holds the running instrument. Everything in it is nil until the
// first activation: samples are not fetched before the user has engaged
// the instrument.
type session struct {
	config *Config
	sink   *audio.Sink
	inst   *audio.Instrument
	input  *midi.Input
}

func (s *session) start() error {
	if s.inst != nil {
		return errors.New("already started")
	}
	sink, err := audio.NewSink(s.config.Level)
	if err != nil {
		return fmt.Errorf("audio unavailable: %w", err)
	}
	if err := sink.Run(); err != nil {
		sink.Close()
		return fmt.Errorf("audio unavailable: %w", err)
	}
	s.sink = sink
	s.inst = audio.NewInstrument(s.config.families(), &audio.WAVLoader{}, sink)
	go func() {
		<-s.inst.Done()
		log.Printf("instrument: routing, %d pitches mapped", len(s.inst.Mapped()))
	}()

	input, err := midi.Open(s.config.MIDIPort, s.inst.Handle)
	if err != nil {
		// keep running: notes can still be played from the repl
		log.Printf("midi: %v", err)
		return nil
	}
	s.input = input
	return nil
}

// route feeds one message through the same path the MIDI transport uses.
func (s *session) route(msg audio.Message) error {
	if s.inst == nil {
		return errors.New("not started")
	}
	s.inst.Handle(msg)
	return nil
}

func (s *session) close() {
	if s.input != nil {
		s.input.Close()
	}
	if s.sink != nil {
		s.sink.Close()
	}
}
