package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/el2nil/calculator/internal/script"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		given      []string
		exec       string
		load, save string
	)

	cmd := &cobra.Command{
		Use:   "run [script.lua...]",
		Short: "Drive the calculator from Lua scripts",
		Long: `Drive the calculator from Lua scripts.

Scripts run in order against one calculator, through the global table calc:
calc.keys("2 + 3 ="), calc.operand(x), calc.op("√"), calc.set("M", 2),
calc.result(), calc.description(), calc.display(), calc.program(), and more.
print writes to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && exec == "" {
				return errors.New("no script given")
			}
			e, err := a.engine(given)
			if err != nil {
				return err
			}
			k := a.keypad(e)
			if err := a.restore(k, load, ""); err != nil {
				return err
			}
			r := script.New(k, cmd.OutOrStdout())
			if exec != "" {
				if err := r.RunString(exec); err != nil {
					return err
				}
			}
			for _, name := range args {
				a.log.Debugf("run %s", name)
				if err := r.RunFile(name); err != nil {
					return err
				}
			}
			return a.keep(e, save, "")
		},
	}

	cmd.Flags().StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().StringVarP(&exec, "exec", "e", "", "Lua source to run before any scripts")
	cmd.Flags().StringVar(&load, "load", "", "start from the program in a save slot")
	cmd.Flags().StringVar(&save, "save", "", "save the program to a slot when done")

	return cmd
}
