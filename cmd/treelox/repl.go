package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"treelox/internal"
)

func replCommand(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(s.cfg.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(s.cfg.HistoryFile); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			s.logger.WithError(err).Warn("could not save history")
		}
	}()

	interp := s.interpreter(true)
	for {
		source, ok := s.readInput(ln, interp)
		if !ok {
			s.printer.Println()
			return nil
		}
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return nil
		}

		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
		interp.Run(source)
		interp.PrintErrors()
	}
}

// readInput keeps prompting while the buffered source is incomplete,
// ok is false once input is exhausted
func (s *session) readInput(ln *liner.State, interp *internal.Interpreter) (string, bool) {
	var b strings.Builder
	for {
		prompt := s.cfg.Prompt
		if b.Len() > 0 {
			prompt = s.cfg.ContinuationPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			s.logger.WithError(err).Error("could not read input")
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !interp.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}
