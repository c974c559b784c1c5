package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/el2nil/calculator"
	"github.com/el2nil/calculator/internal/store"
)

func newSlotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List saved calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.slots()
			if err != nil {
				return err
			}
			for _, name := range s.Names() {
				p, _ := s.Get(name)
				e := calculator.New(a.cfg.EngineOptions()...)
				e.SetProgram(p)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, e.Description())
			}
			return nil
		},
	}

	cmd.AddCommand(newSlotsShowCmd(a))
	cmd.AddCommand(newSlotsDeleteCmd(a))
	cmd.AddCommand(newSlotsExportCmd(a))
	cmd.AddCommand(newSlotsImportCmd(a))

	return cmd
}

func newSlotsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [slot]",
		Short: "Show the keys, description, and result of a saved calculation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := slotBrain
			if len(args) > 0 {
				name = args[0]
			}
			e, err := a.engine(nil)
			if err != nil {
				return err
			}
			k := a.keypad(e)
			if err := a.restore(k, name, ""); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "keys: %v\n", e.Program())
			fmt.Fprintf(w, "description: %s\n", k.History())
			fmt.Fprintf(w, "display: %s\n", k.Display())
			return nil
		},
	}
}

func newSlotsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete slot...",
		Aliases: []string{"rm"},
		Short:   "Delete saved calculations",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.slots()
			if err != nil {
				return err
			}
			for _, name := range args {
				if !s.Delete(name) {
					return fmt.Errorf("slot %q is empty", name)
				}
			}
			return s.Save()
		},
	}
}

func newSlotsExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export slot file",
		Short: "Write a saved calculation to a .json, .yaml, or .pb file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.slots()
			if err != nil {
				return err
			}
			p, ok := s.Get(args[0])
			if !ok {
				return fmt.Errorf("slot %q is empty", args[0])
			}
			return store.WriteFile(args[1], p)
		},
	}
}

func newSlotsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import slot file",
		Short: "Save the calculation in a .json, .yaml, or .pb file to a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.ReadFile(args[1])
			if err != nil {
				return err
			}
			s, err := a.slots()
			if err != nil {
				return err
			}
			s.Put(args[0], p)
			return s.Save()
		},
	}
}
