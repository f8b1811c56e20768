package main

import (
	"fmt"
	"strconv"

	"github.com/duhrer/guitarompler/audio"
	"github.com/duhrer/guitarompler/midi"
)

type command struct {
	name  string
	run   func(*session, []string) error
	arity int
}

var commands = []command{
	{"start", startCommand, 0},
	{"note", noteCommand, 2},
	{"off", offCommand, 1},
	{"touch", touchCommand, 2},
	{"status", statusCommand, 0},
	{"ports", portsCommand, 0},
}

func startCommand(s *session, args []string) error {
	return s.start()
}

func noteCommand(s *session, args []string) error {
	pitch, velocity, err := readInts(args[0], args[1])
	if err != nil {
		return err
	}
	return s.route(audio.Message{Kind: audio.NoteOn, Pitch: pitch, Value: velocity})
}

func offCommand(s *session, args []string) error {
	pitch, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	return s.route(audio.Message{Kind: audio.NoteOff, Pitch: pitch})
}

func touchCommand(s *session, args []string) error {
	pitch, pressure, err := readInts(args[0], args[1])
	if err != nil {
		return err
	}
	return s.route(audio.Message{Kind: audio.Aftertouch, Pitch: pitch, Value: pressure})
}

func statusCommand(s *session, args []string) error {
	if s.inst == nil {
		fmt.Println("not started")
		return nil
	}
	if !s.inst.Ready() {
		fmt.Println("loading samples")
		return nil
	}
	for _, f := range s.inst.Families() {
		cfg := f.Config()
		state := "failed"
		if f.Ready() {
			state = "ready"
		}
		fmt.Printf("%s: %s, pitches %d..%d\n", cfg.URL, state, cfg.BasePitch+cfg.Low, cfg.BasePitch+cfg.High)
	}
	fmt.Printf("%d pitches mapped\n", len(s.inst.Mapped()))
	return nil
}

func portsCommand(s *session, args []string) error {
	ports := midi.Ports()
	if len(ports) == 0 {
		fmt.Println("no MIDI input ports")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}

func readInts(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
