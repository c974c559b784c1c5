package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/el2nil/calculator"
	"github.com/el2nil/calculator/internal/config"
	"github.com/el2nil/calculator/internal/display"
	"github.com/el2nil/calculator/internal/store"
)

// Slot names used when none is given.
const (
	slotBrain = "brain"
	slotGraph = "graph"
)

// app is the state shared by all commands.
type app struct {
	configPath string
	verbose    int

	cfg config.Config
	log commonlog.Logger
}

func main() {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "calc",
		Short: "An immediate-execution calculator",
		Long: `An immediate-execution calculator.

Keys are typed as text: numbers, operation symbols such as + − × ÷ = √ x² π,
or their ASCII spellings - * / sqrt sq pi. Names that are not operations are
variables, and ->M (or →M) stores the displayed value in M. Operations are
performed as they are entered, left to right, so 2 + 3 * 4 = gives 20.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.Dir()+"/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "log more (repeatable)")

	rootCmd.AddCommand(newEvalCmd(a))
	rootCmd.AddCommand(newREPLCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newPlotCmd(a))
	rootCmd.AddCommand(newSlotsCmd(a))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	v := cfg.Verbosity
	if a.verbose > 0 {
		v = a.verbose
	}
	commonlog.Configure(v, nil)
	a.log = commonlog.GetLogger("calc")
	a.log.Debugf("slots file %s, history file %s", cfg.Slots, cfg.History)
	return nil
}

// engine creates an engine with the configured variables and any
// name=value definitions. Values are themselves keys to evaluate.
func (a *app) engine(given []string) (*calculator.Engine, error) {
	opts := a.cfg.EngineOptions()
	for _, d := range given {
		name, val, ok := strings.Cut(d, "=")
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		v, err := a.evaluate(val)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		opts = append(opts, calculator.SetVar(name, v))
	}
	return calculator.New(opts...), nil
}

// evaluate computes the value of a key string on a fresh engine.
func (a *app) evaluate(src string) (float64, error) {
	keys, err := a.scan(src)
	if err != nil {
		return 0, err
	}
	e := calculator.New(a.cfg.EngineOptions()...)
	for _, k := range keys {
		if t, ok := k.Token(); ok {
			e.Apply(t)
		}
	}
	e.PerformOperation("=")
	if err := e.Err(); err != nil {
		return e.Result(), err
	}
	return e.Result(), nil
}

func (a *app) keypad(e *calculator.Engine) *display.Keypad {
	return display.NewKeypad(e, a.cfg.Display)
}

func (a *app) scan(src string) ([]calculator.Key, error) {
	return calculator.ScanKeysString(src, a.cfg.KeyOptions()...)
}

// press scans src and presses each key on k.
func (a *app) press(k *display.Keypad, src string) error {
	keys, err := a.scan(src)
	if err != nil {
		return err
	}
	for _, key := range keys {
		a.log.Debugf("press %v", key)
		k.Press(key)
	}
	return nil
}

func (a *app) slots() (*store.Slots, error) {
	s, err := store.OpenSlots(a.cfg.Slots)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("opened slots %s: %v", s.Path(), s.Names())
	return s, nil
}

// restore replaces the engine's program with the one in a slot or file. At
// most one of slot and file is used; neither being set does nothing.
func (a *app) restore(k *display.Keypad, slot, file string) error {
	var p calculator.Program
	switch {
	case slot != "" && file != "":
		return fmt.Errorf("load a slot or a file, not both")
	case slot != "":
		s, err := a.slots()
		if err != nil {
			return err
		}
		q, ok := s.Get(slot)
		if !ok {
			return fmt.Errorf("slot %q is empty", slot)
		}
		p = q
	case file != "":
		q, err := store.ReadFile(file)
		if err != nil {
			return err
		}
		a.log.Infof("read %d keys from %s", len(q), file)
		p = q
	default:
		return nil
	}
	k.Engine().SetProgram(p)
	k.Refresh()
	return nil
}

// keep saves the engine's program to a slot, a file, or both.
func (a *app) keep(e *calculator.Engine, slot, file string) error {
	p := e.Program()
	if slot != "" {
		s, err := a.slots()
		if err != nil {
			return err
		}
		s.Put(slot, p)
		if err := s.Save(); err != nil {
			return fmt.Errorf("save slot %s: %w", slot, err)
		}
		a.log.Infof("saved %d keys to slot %s", len(p), slot)
	}
	if file != "" {
		if err := store.WriteFile(file, p); err != nil {
			return err
		}
		a.log.Infof("wrote %d keys to %s", len(p), file)
	}
	return nil
}

// show prints the keypad's display, preceded by its history line if echo is
// set.
func show(w io.Writer, k *display.Keypad, echo bool) {
	if echo {
		if h := k.History(); h != "" {
			fmt.Fprintf(w, "%s ", h)
		}
	}
	fmt.Fprintln(w, k.Display())
}
