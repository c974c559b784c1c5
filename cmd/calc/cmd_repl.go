package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/el2nil/calculator/internal/display"
)

const replHelp = `Type keys to press them, e.g. 2 + 3 * 4 = or M sq ->M.
Commands:
  :undo            undo the last key (backspace)
  :clear           clear the calculation and variables
  :vars            list variables
  :program         print the keys entered so far
  :save [slot]     store the calculation in a slot (default brain)
  :restore [slot]  bring back the last saved calculation, or a slot's
  :help            show this text
  :quit            leave
`

func newREPLCmd(a *app) *cobra.Command {
	var (
		given []string
		load  string
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Use the calculator interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(given)
			if err != nil {
				return err
			}
			k := a.keypad(e)
			if err := a.restore(k, load, ""); err != nil {
				return err
			}
			return a.repl(k, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().StringVar(&load, "load", "", "start from the program in a save slot")

	return cmd
}

func (a *app) repl(k *display.Keypad, w io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(a.completer(k))

	if a.cfg.History != "" {
		if f, err := os.Open(a.cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	fmt.Fprintln(w, k.Display())
	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.log.Errorf("read input: %v", err)
			}
			fmt.Fprintln(w)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if done := a.replCommand(k, w, line); done {
				break
			}
			continue
		}
		if err := a.press(k, line); err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if h := k.History(); h != "" {
			fmt.Fprintln(w, h)
		}
		fmt.Fprintln(w, k.Display())
	}

	if a.cfg.History != "" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.History), 0o755); err != nil {
			return err
		}
		f, err := os.Create(a.cfg.History)
		if err != nil {
			return fmt.Errorf("write history: %w", err)
		}
		defer f.Close()
		if _, err := ln.WriteHistory(f); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	return nil
}

// replCommand handles a line starting with a colon. It returns true when the
// REPL should exit.
func (a *app) replCommand(k *display.Keypad, w io.Writer, line string) (exit bool) {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	e := k.Engine()

	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit", ":q":
		return true
	case ":help":
		fmt.Fprint(w, replHelp)
		return false
	case ":undo":
		k.Backspace()
	case ":clear":
		k.Clear()
	case ":vars":
		vars := e.Variables()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s = %s\n", name, a.cfg.Display.Format(vars[name]))
		}
		return false
	case ":program":
		fmt.Fprintln(w, e.Program())
		return false
	case ":save":
		k.Save()
		if arg == "" {
			arg = slotBrain
		}
		if err := a.keep(e, arg, ""); err != nil {
			fmt.Fprintln(w, err)
		}
		return false
	case ":restore":
		if arg == "" && k.Restore() {
			break
		}
		if arg == "" {
			arg = slotBrain
		}
		if err := a.restore(k, arg, ""); err != nil {
			fmt.Fprintln(w, err)
			return false
		}
	default:
		fmt.Fprintln(w, "unknown command. Type :help for help.")
		return false
	}
	if h := k.History(); h != "" {
		fmt.Fprintln(w, h)
	}
	fmt.Fprintln(w, k.Display())
	return false
}

// completer completes the word under the cursor with the engine's symbols
// and the ASCII key spellings.
func (a *app) completer(k *display.Keypad) liner.WordCompleter {
	return func(line string, pos int) (head string, completions []string, tail string) {
		// pos counts runes.
		r := []rune(line)
		before := string(r[:pos])
		start := strings.LastIndexAny(before, " \t") + 1
		head, word, tail := before[:start], before[start:], string(r[pos:])
		if word == "" {
			return head, nil, tail
		}
		words := append(k.Engine().Symbols(), asciiKeys...)
		for name := range a.cfg.Aliases {
			words = append(words, name)
		}
		sort.Strings(words)
		for i, w := range words {
			if i > 0 && w == words[i-1] {
				continue
			}
			if strings.HasPrefix(w, word) {
				completions = append(completions, w)
			}
		}
		return head, completions, tail
	}
}

// asciiKeys are the word spellings of operations accepted by the key
// scanner.
var asciiKeys = []string{"sqrt", "pi", "neg", "sq", "inv", "csc", "sec"}
