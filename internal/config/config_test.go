package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/el2nil/calculator"
	"github.com/el2nil/calculator/internal/display"
)

func write(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, defaultIn(dir)) {
		t.Errorf("want defaults, got %+v", c)
	}
	if c.Display != display.DefaultFormatter() || c.GraphVariable != "M" {
		t.Errorf("wrong defaults %+v", c)
	}
}

func TestLoad(t *testing.T) {
	path := write(t, `
display:
  decimalSeparator: ","
  groupingSeparator: "."
slots: saved/slots.yaml
history: /tmp/calc-history
verbosity: 2
variables:
  M: 3
  rate: 0.25
aliases:
  square: "x²"
graphVariable: x
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	want := Config{
		Display: display.Formatter{
			MaxFractionDigits: 6,
			GroupingSeparator: ".",
			DecimalSeparator:  ",",
			NaNSymbol:         "Error",
		},
		Slots:         filepath.Join(dir, "saved", "slots.yaml"),
		History:       "/tmp/calc-history",
		Verbosity:     2,
		Variables:     map[string]float64{"M": 3, "rate": 0.25},
		Aliases:       map[string]string{"square": "x²"},
		GraphVariable: "x",
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("want %+v\ngot  %+v", want, c)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"syntax", "display: [\n"},
		{"type", "verbosity: loud\n"},
		{"negative", "verbosity: -1\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(write(t, c.text)); err == nil {
				t.Error("no error")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	var c Config
	if c.EngineOptions() != nil || c.KeyOptions() != nil {
		t.Error("empty config has options")
	}
	c.Variables = map[string]float64{"M": 4}
	c.Aliases = map[string]string{"square": "x²"}
	e := calculator.New(c.EngineOptions()...)
	keys, err := calculator.ScanKeysString("M square", c.KeyOptions()...)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		if tok, ok := k.Token(); ok {
			e.Apply(tok)
		}
	}
	if r := e.Result(); r != 16 {
		t.Errorf("M square with M=4 gave %g", r)
	}
}
