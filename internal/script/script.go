// Package script drives a calculator from Lua.
//
// Scripts see a global table calc:
//
//	calc.operand(x)      enter a number, or a variable if x is a string
//	calc.op(symbol)      perform an operation
//	calc.keys(text)      press the keys scanned from text
//	calc.set(name, x)    bind a variable
//	calc.get(name)       value of a variable, or nil if unbound
//	calc.clearvars()     remove all variable bindings
//	calc.result()        current result
//	calc.description()   current description
//	calc.partial()       whether a binary operation is pending
//	calc.err()           error message of the last operation, or nil
//	calc.display()       keypad display text
//	calc.undo()          undo the last token
//	calc.clear()         clear the calculation
//	calc.program()       the program as a list of numbers and strings
//	calc.load(list)      replace the program
//
// The global print writes to the runner's output rather than standard output.
package script

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/el2nil/calculator"
	"github.com/el2nil/calculator/internal/display"
)

// Runner executes Lua scripts against a keypad and its engine.
type Runner struct {
	l   *lua.State
	k   *display.Keypad
	out io.Writer
}

// New creates a runner for k. Script output is written to out.
func New(k *display.Keypad, out io.Writer) *Runner {
	r := &Runner{l: lua.NewState(), k: k, out: out}
	lua.OpenLibraries(r.l)
	r.l.Register("print", r.print)
	lua.NewLibrary(r.l, r.library())
	r.l.SetGlobal("calc")
	return r
}

// Keypad returns the keypad scripts drive.
func (r *Runner) Keypad() *display.Keypad {
	return r.k
}

// RunString executes a chunk of Lua source.
func (r *Runner) RunString(src string) error {
	if err := lua.DoString(r.l, src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile executes a Lua source file.
func (r *Runner) RunFile(name string) error {
	if err := lua.DoFile(r.l, name); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

func (r *Runner) engine() *calculator.Engine {
	return r.k.Engine()
}

func (r *Runner) library() []lua.RegistryFunction {
	return []lua.RegistryFunction{
		{Name: "operand", Function: func(l *lua.State) int {
			if l.TypeOf(1) == lua.TypeString {
				s, _ := l.ToString(1)
				r.k.PushVariable(s)
				return 0
			}
			r.k.Number(lua.CheckNumber(l, 1))
			return 0
		}},
		{Name: "op", Function: func(l *lua.State) int {
			r.k.Operation(lua.CheckString(l, 1))
			return 0
		}},
		{Name: "keys", Function: func(l *lua.State) int {
			keys, err := calculator.ScanKeysString(lua.CheckString(l, 1))
			if err != nil {
				lua.Errorf(l, "%s", err.Error())
				return 0
			}
			for _, key := range keys {
				r.k.Press(key)
			}
			return 0
		}},
		{Name: "set", Function: func(l *lua.State) int {
			name := lua.CheckString(l, 1)
			v := lua.CheckNumber(l, 2)
			r.engine().SetVariable(name, v)
			r.k.Refresh()
			return 0
		}},
		{Name: "get", Function: func(l *lua.State) int {
			v, ok := r.engine().Variable(lua.CheckString(l, 1))
			if !ok {
				l.PushNil()
				return 1
			}
			l.PushNumber(v)
			return 1
		}},
		{Name: "clearvars", Function: func(l *lua.State) int {
			r.engine().ClearVariables()
			r.k.Refresh()
			return 0
		}},
		{Name: "result", Function: func(l *lua.State) int {
			l.PushNumber(r.engine().Result())
			return 1
		}},
		{Name: "description", Function: func(l *lua.State) int {
			l.PushString(r.engine().Description())
			return 1
		}},
		{Name: "partial", Function: func(l *lua.State) int {
			l.PushBoolean(r.engine().IsPartialResult())
			return 1
		}},
		{Name: "err", Function: func(l *lua.State) int {
			err := r.engine().Err()
			if err == nil {
				l.PushNil()
				return 1
			}
			l.PushString(err.Error())
			return 1
		}},
		{Name: "display", Function: func(l *lua.State) int {
			l.PushString(r.k.Display())
			return 1
		}},
		{Name: "undo", Function: func(l *lua.State) int {
			r.k.Backspace()
			return 0
		}},
		{Name: "clear", Function: func(l *lua.State) int {
			r.engine().Clear()
			r.k.Refresh()
			return 0
		}},
		{Name: "program", Function: func(l *lua.State) int {
			p := r.engine().Program()
			l.CreateTable(len(p), 0)
			for i, t := range p {
				if v, ok := t.Number(); ok {
					l.PushNumber(v)
				} else {
					s, _ := t.Symbol()
					l.PushString(s)
				}
				l.RawSetInt(-2, i+1)
			}
			return 1
		}},
		{Name: "load", Function: func(l *lua.State) int {
			lua.CheckType(l, 1, lua.TypeTable)
			n := l.RawLength(1)
			p := make(calculator.Program, 0, n)
			for i := 1; i <= n; i++ {
				l.RawGetInt(1, i)
				switch l.TypeOf(-1) {
				case lua.TypeNumber:
					v, _ := l.ToNumber(-1)
					p = append(p, calculator.Number(v))
				case lua.TypeString:
					s, _ := l.ToString(-1)
					p = append(p, calculator.Symbol(s))
				default:
					lua.ArgumentError(l, 1, "program element "+strconv.Itoa(i)+" is "+lua.TypeNameOf(l, -1))
					return 0
				}
				l.Pop(1)
			}
			r.engine().SetProgram(p)
			r.k.Refresh()
			return 0
		}},
	}
}

// print writes its arguments separated by tabs, as Lua's print does.
func (r *Runner) print(l *lua.State) int {
	n := l.Top()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		switch l.TypeOf(i) {
		case lua.TypeNumber:
			v, _ := l.ToNumber(i)
			parts[i-1] = strconv.FormatFloat(v, 'g', -1, 64)
		case lua.TypeString:
			parts[i-1], _ = l.ToString(i)
		case lua.TypeBoolean:
			parts[i-1] = strconv.FormatBool(l.ToBoolean(i))
		case lua.TypeNil:
			parts[i-1] = "nil"
		default:
			parts[i-1] = lua.TypeNameOf(l, i)
		}
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
