package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func repl(s *session) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			return nil
		}
		if err := eval(s, fields[0], fields[1:]); err != nil {
			fmt.Println(err)
		}
	}
}

func eval(s *session, name string, args []string) error {
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if len(args) != cmd.arity {
			return fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(args))
		}
		if err := cmd.run(s, args); err != nil {
			return fmt.Errorf("%s: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", name)
}
