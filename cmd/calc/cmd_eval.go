package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		inname      string
		given       []string
		lines, echo bool
		load, from  string
		save, out   string
	)

	cmd := &cobra.Command{
		Use:   "eval [keys...]",
		Short: "Press keys and print the display",
		Long: `Press keys and print the display.

Each argument is a string of keys. With no arguments, keys are read from
stdin, or from the file named by --in. All keys make one calculation unless
-n is given, in which case each line and each argument is a separate
calculation sharing the same variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(given)
			if err != nil {
				return err
			}
			k := a.keypad(e)
			if err := a.restore(k, load, from); err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), inname, len(args) == 0, lines)
			if err != nil {
				return err
			}
			inputs = append(inputs, args...)

			w := cmd.OutOrStdout()
			for i, in := range inputs {
				if lines && i > 0 {
					e.Clear()
					k.Refresh()
				}
				if err := a.press(k, in); err != nil {
					return err
				}
				if lines {
					show(w, k, echo)
				}
			}
			if !lines {
				show(w, k, echo)
			}
			return a.keep(e, save, out)
		},
	}

	cmd.Flags().StringVar(&inname, "in", "", "input file, - for stdin (default stdin if no args given)")
	cmd.Flags().StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().BoolVarP(&lines, "lines", "n", false, "treat separate input lines as separate calculations")
	cmd.Flags().BoolVar(&echo, "echo", false, "print the calculation before its result")
	cmd.Flags().StringVar(&load, "load", "", "start from the program in a save slot")
	cmd.Flags().StringVar(&from, "from", "", "start from the program in a .json, .yaml, or .pb file")
	cmd.Flags().StringVar(&save, "save", "", "save the program to a slot")
	cmd.Flags().StringVar(&out, "out", "", "write the program to a .json, .yaml, or .pb file")

	return cmd
}

// readInputs reads key text from the named file, or from stdin if the name
// is - or if the name is empty and std is set. With lines set, each
// non-blank line is a separate input.
func readInputs(stdin io.Reader, inname string, std, lines bool) ([]string, error) {
	var r io.Reader
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	case inname == "-", std:
		r = stdin
	default:
		return nil, nil
	}
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return []string{string(b)}, nil
	}
	var ins []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			ins = append(ins, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return ins, nil
}
