package display

import (
	"strings"

	"github.com/el2nil/calculator"
)

// Keypad is the input side of a calculator display. Digits are collected
// into a typed number until an operation needs it, at which point it is
// entered into the engine as an operand.
type Keypad struct {
	engine *calculator.Engine
	format Formatter

	// text is the display text.
	text string
	// typing indicates that text is a number still being typed.
	typing bool
	saved  calculator.Program
}

// NewKeypad creates a keypad driving e and formatting with f.
func NewKeypad(e *calculator.Engine, f Formatter) *Keypad {
	return &Keypad{engine: e, format: f, text: "0"}
}

// Engine returns the engine the keypad drives.
func (k *Keypad) Engine() *calculator.Engine {
	return k.engine
}

// Display returns the display text: the number being typed, the error of
// the last operation, or the formatted result.
func (k *Keypad) Display() string {
	return k.text
}

// History returns the description of the calculation, followed by "..."
// while a binary operation is pending and " =" otherwise.
func (k *Keypad) History() string {
	d := k.engine.Description()
	if d == "" {
		return ""
	}
	if k.engine.IsPartialResult() {
		return d + "..."
	}
	return d + " ="
}

// Typing returns whether a number is being typed.
func (k *Keypad) Typing() bool {
	return k.typing
}

// Digit types a digit or the decimal separator. A second decimal separator
// in the same number is ignored.
func (k *Keypad) Digit(d string) {
	sep := k.format.decimal()
	if !k.typing {
		k.typing = true
		if d == sep {
			k.text = "0" + sep
			return
		}
		k.text = d
		return
	}
	if d == sep && strings.Contains(k.text, sep) {
		return
	}
	k.text += d
}

// Number enters v as an operand, replacing any number being typed.
func (k *Keypad) Number(v float64) {
	k.typing = false
	k.engine.SetOperand(v)
	k.Refresh()
}

// PlusMinus toggles the sign of the number being typed. When no number is
// being typed, it performs the ± operation instead.
func (k *Keypad) PlusMinus() {
	if !k.typing {
		k.Operation("±")
		return
	}
	if strings.HasPrefix(k.text, "-") {
		k.text = k.text[1:]
	} else {
		k.text = "-" + k.text
	}
}

// Backspace removes the last typed character. When no number is being
// typed, it undoes the last key entered into the engine.
func (k *Keypad) Backspace() {
	if k.typing {
		r := []rune(k.text)
		k.text = string(r[:len(r)-1])
		if k.text == "" || k.text == "-" {
			k.typing = false
			k.Refresh()
		}
		return
	}
	k.engine.UndoLast()
	k.Refresh()
}

// Operation performs an operation, entering the typed number first. If the
// previous operation reported an error, the engine is cleared first.
func (k *Keypad) Operation(symbol string) {
	if k.engine.Err() != nil {
		k.engine.Clear()
	}
	k.commit()
	k.engine.PerformOperation(symbol)
	k.Refresh()
}

// PushVariable enters a variable as an operand. A number being typed is
// discarded, since the variable replaces it.
func (k *Keypad) PushVariable(name string) {
	k.typing = false
	k.engine.SetOperandVar(name)
	k.Refresh()
}

// StoreVariable binds a variable to the displayed value.
func (k *Keypad) StoreVariable(name string) {
	var v float64
	switch {
	case k.typing:
		x, err := k.format.Parse(k.text)
		if err != nil {
			return
		}
		v = x
		k.typing = false
	case k.engine.Err() != nil:
		// The display shows an error, not a value.
		return
	default:
		v = k.engine.Result()
	}
	k.engine.SetVariable(name, v)
	k.Refresh()
}

// Clear clears the engine and its variables.
func (k *Keypad) Clear() {
	k.engine.Clear()
	k.engine.ClearVariables()
	k.typing = false
	k.text = "0"
}

// Save remembers the engine's program.
func (k *Keypad) Save() {
	k.saved = k.engine.Program()
}

// Restore replays the program remembered by Save, if any. It returns false
// if nothing has been saved.
func (k *Keypad) Restore() bool {
	if k.saved == nil {
		return false
	}
	k.typing = false
	k.engine.SetProgram(k.saved)
	k.Refresh()
	return true
}

// Press enters a scanned key. Symbols that are not operations of the engine
// are entered as variables.
func (k *Keypad) Press(key calculator.Key) {
	switch key.Kind {
	case calculator.KeyNumber:
		if k.engine.Err() != nil {
			k.engine.Clear()
		}
		k.Number(key.Value)
	case calculator.KeySymbol:
		op, ok := k.engine.Lookup(key.Text)
		switch {
		case !ok, op.Kind() == calculator.OpVariable:
			k.PushVariable(key.Text)
		case key.Text == "±":
			k.PlusMinus()
		default:
			k.Operation(key.Text)
		}
	case calculator.KeyStore:
		k.StoreVariable(key.Text)
	}
}

// commit enters the typed number into the engine.
func (k *Keypad) commit() {
	if !k.typing {
		return
	}
	k.typing = false
	v, err := k.format.Parse(k.text)
	if err != nil {
		return
	}
	k.engine.SetOperand(v)
}

// Refresh redisplays the engine's error or result, abandoning any number
// being typed. Call it after using the engine directly.
func (k *Keypad) Refresh() {
	k.typing = false
	if err := k.engine.Err(); err != nil {
		k.text = err.Error()
		return
	}
	k.text = k.format.Format(k.engine.Result())
}
