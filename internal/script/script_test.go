package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/el2nil/calculator"
	"github.com/el2nil/calculator/internal/display"
)

func run(t *testing.T, src string) (string, *Runner, error) {
	t.Helper()
	var out strings.Builder
	k := display.NewKeypad(calculator.New(), display.DefaultFormatter())
	r := New(k, &out)
	err := r.RunString(src)
	return out.String(), r, err
}

func TestRunString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "chain",
			src: `calc.operand(2) calc.op("+") calc.operand(3) calc.op("×") calc.operand(4) calc.op("=")
				print(calc.result(), calc.description(), calc.partial())`,
			want: "20\t2 + (3) × 4\tfalse\n",
		},
		{
			name: "keys",
			src:  `calc.keys("2 + 3 * 4 =") print(calc.result(), calc.display())`,
			want: "20\t20\n",
		},
		{
			name: "partial",
			src:  `calc.keys("7 +") print(calc.description(), calc.partial())`,
			want: "7 +\ttrue\n",
		},
		{
			name: "variables",
			src: `calc.operand("M") calc.op("+") calc.operand(1) calc.op("=")
				print(calc.get("M"), calc.result())
				calc.set("M", 9)
				print(calc.get("M"), calc.result(), calc.description())`,
			want: "nil\t1\n9\t10\tM + 1\n",
		},
		{
			name: "store-key",
			src:  `calc.keys("6 x² →M M sqrt") print(calc.get("M"), calc.result())`,
			want: "36\t6\n",
		},
		{
			name: "error",
			src:  `calc.keys("1 / 0 =") print(calc.err(), calc.display(), calc.result())`,
			want: "division by zero\tdivision by zero\t+Inf\n",
		},
		{
			name: "no-error",
			src:  `calc.keys("1 / 2 =") print(calc.err())`,
			want: "nil\n",
		},
		{
			name: "undo-clear",
			src: `calc.keys("2 + 3") calc.undo() print(calc.description())
				calc.clear() print(calc.description(), calc.result(), #calc.program())`,
			want: "2 +\n\t0\t0\n",
		},
		{
			name: "program",
			src: `calc.keys("2 * pi =")
				local p = calc.program()
				print(#p, p[1], p[2], p[3], p[4])`,
			want: "4\t2\t×\tπ\t=\n",
		},
		{
			name: "load",
			src:  `calc.load({3, "−", "x", "="}) calc.set("x", 1) print(calc.result(), calc.description())`,
			want: "2\t3 − x\n",
		},
		{
			name: "clearvars",
			src:  `calc.set("a", 4) calc.operand("a") calc.clearvars() print(calc.get("a"), calc.result())`,
			want: "nil\t0\n",
		},
		{
			name: "lua",
			src: `calc.operand(1)
				for i = 2, 4 do calc.op("+") calc.operand(i) end
				calc.op("=") print(calc.result())`,
			want: "10\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, _, err := run(t, c.src)
			if err != nil {
				t.Fatal(err)
			}
			if out != c.want {
				t.Errorf("want output %q, got %q", c.want, out)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `calc.op(`, ""},
		{"bad-key", `calc.keys("2 $")`, "invalid key"},
		{"bad-operand", `calc.operand({})`, ""},
		{"bad-load", `calc.load({1, true})`, "program element 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := run(t, c.src)
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestRunFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sq.lua")
	src := "calc.keys(\"M sq\")\ncalc.set(\"M\", 5)\nprint(calc.result())\n"
	if err := os.WriteFile(name, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	k := display.NewKeypad(calculator.New(), display.DefaultFormatter())
	r := New(k, &out)
	if err := r.RunFile(name); err != nil {
		t.Fatal(err)
	}
	if out.String() != "25\n" {
		t.Errorf("want 25, got %q", out.String())
	}
	if d := r.Keypad().Engine().Description(); d != "(M)²" {
		t.Errorf("engine description %q", d)
	}
	if err := r.RunFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("ran a missing file")
	}
}
