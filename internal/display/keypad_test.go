package display

import (
	"reflect"
	"testing"

	"github.com/el2nil/calculator"
)

func newKeypad() *Keypad {
	return NewKeypad(calculator.New(), DefaultFormatter())
}

func TestKeypadTyping(t *testing.T) {
	k := newKeypad()
	if d := k.Display(); d != "0" {
		t.Errorf("initial display %q", d)
	}
	for _, d := range []string{"1", "2", ".", "5", "."} {
		k.Digit(d)
	}
	if d := k.Display(); d != "12.5" {
		t.Errorf("typed display %q", d)
	}
	if len(k.Engine().Program()) != 0 {
		t.Error("typing entered an operand")
	}
	k.Operation("+")
	if d, h := k.Display(), k.History(); d != "12.5" || h != "12.5 +..." {
		t.Errorf("after +: display %q, history %q", d, h)
	}
	k.Digit("3")
	k.Operation("=")
	if d, h := k.Display(), k.History(); d != "15.5" || h != "12.5 + 3 =" {
		t.Errorf("after =: display %q, history %q", d, h)
	}
}

func TestKeypadDecimalFirst(t *testing.T) {
	k := newKeypad()
	k.Digit(".")
	k.Digit("5")
	k.Operation("x²")
	if d := k.Display(); d != "0.25" {
		t.Errorf("display %q", d)
	}
}

func TestKeypadPlusMinus(t *testing.T) {
	k := newKeypad()
	k.Digit("5")
	k.PlusMinus()
	if d := k.Display(); d != "-5" {
		t.Errorf("toggled display %q", d)
	}
	k.PlusMinus()
	if d := k.Display(); d != "5" {
		t.Errorf("toggled back display %q", d)
	}
	k.Operation("=")
	k.PlusMinus()
	if d, h := k.Display(), k.History(); d != "-5" || h != "-(5) =" {
		t.Errorf("± operation: display %q, history %q", d, h)
	}
}

func TestKeypadBackspace(t *testing.T) {
	k := newKeypad()
	k.Digit("7")
	k.Operation("+")
	k.Digit("1")
	k.Digit("2")
	k.Backspace()
	if d := k.Display(); d != "1" || !k.Typing() {
		t.Errorf("after one backspace: %q, typing %t", d, k.Typing())
	}
	k.Backspace()
	if d := k.Display(); d != "7" || k.Typing() {
		t.Errorf("after erasing the number: %q, typing %t", d, k.Typing())
	}
	k.Backspace()
	if h := k.History(); h != "7 =" {
		t.Errorf("undo + gave history %q", h)
	}
}

func TestKeypadErrorClears(t *testing.T) {
	k := newKeypad()
	k.Digit("1")
	k.Operation("÷")
	k.Digit("0")
	k.Operation("=")
	if d := k.Display(); d != "division by zero" {
		t.Errorf("error display %q", d)
	}
	k.Digit("5")
	k.Operation("+")
	want := calculator.Program{calculator.Number(5), calculator.Symbol("+")}
	if p := k.Engine().Program(); !reflect.DeepEqual(p, want) {
		t.Errorf("operation after error: want %v, got %v", want, p)
	}
}

func TestKeypadVariables(t *testing.T) {
	k := newKeypad()
	k.PushVariable("M")
	k.Operation("+")
	k.Digit("1")
	k.Operation("=")
	if d := k.Display(); d != "1" {
		t.Errorf("unbound M + 1 = %q", d)
	}
	k.Digit("4")
	k.StoreVariable("M")
	if d, h := k.Display(), k.History(); d != "5" || h != "M + 1 =" {
		t.Errorf("after →M: display %q, history %q", d, h)
	}
	k.StoreVariable("N")
	if v, ok := k.Engine().Variable("N"); !ok || v != 5 {
		t.Errorf("→N from result: %g, %t", v, ok)
	}
}

func TestKeypadSaveRestoreClear(t *testing.T) {
	k := newKeypad()
	if k.Restore() {
		t.Error("restored with nothing saved")
	}
	k.Digit("2")
	k.Operation("×")
	k.Digit("3")
	k.Operation("=")
	k.Save()
	k.Digit("4")
	k.StoreVariable("M")
	k.Clear()
	if d, h := k.Display(), k.History(); d != "0" || h != "" {
		t.Errorf("after clear: display %q, history %q", d, h)
	}
	if _, ok := k.Engine().Variable("M"); ok {
		t.Error("clear kept variables")
	}
	if !k.Restore() {
		t.Fatal("restore failed")
	}
	if d, h := k.Display(), k.History(); d != "6" || h != "2 × 3 =" {
		t.Errorf("after restore: display %q, history %q", d, h)
	}
}

func TestKeypadPress(t *testing.T) {
	cases := []struct {
		src     string
		display string
		history string
	}{
		{"2 + 3 * 4 =", "20", "2 + (3) × 4 ="},
		{"2 +", "2", "2 +..."},
		{"9 sqrt", "3", "√(9) ="},
		{"5 neg", "-5", "-(5) ="},
		{"3 ->M M * M =", "9", "M × M ="},
		{"1 / 0 =", "division by zero", "1 ÷ 0 ="},
		{"1 / 0 = 7", "7", "7 ="},
		{"x + 1 =", "1", "x + 1 ="},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			keys, err := calculator.ScanKeysString(c.src)
			if err != nil {
				t.Fatal(err)
			}
			k := newKeypad()
			for _, key := range keys {
				k.Press(key)
			}
			if d := k.Display(); d != c.display {
				t.Errorf("display: want %q, got %q", c.display, d)
			}
			if h := k.History(); h != c.history {
				t.Errorf("history: want %q, got %q", c.history, h)
			}
		})
	}
}
