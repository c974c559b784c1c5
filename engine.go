package calculator

import (
	"sort"
	"strconv"
)

// Engine is an immediate-execution calculator. It accepts operands and
// operations one at a time, as keys pressed on a calculator, and after each
// one exposes the current result and a description of what has been entered.
//
// Binary operations are resolved strictly left to right: entering an
// operation resolves whichever one is pending, so 2 + 3 × 4 = evaluates to 20.
// Precedence only decides where the description needs parentheses.
//
// Every accepted token is logged in the engine's Program, and all other
// state is derived from replaying it. It is not safe to use an Engine
// concurrently.
type Engine struct {
	acc     float64
	desc    string
	// prec is the precedence of the last binary operation entered since
	// the engine was cleared.
	prec    Precedence
	pending *pending
	err     error
	program Program

	ops  map[string]Operation
	vars map[string]float64
	rand func() float64
}

// pending is a binary operation waiting for its second operand.
type pending struct {
	symbol string
	f      func(a, b float64) float64
	first  float64
	join   func(a, b string) string
	text   string
	check  func(a, b float64) error
	// second records whether an operand has been entered since the operation
	// was installed. It only changes how the description is rendered.
	second bool
}

// New creates an engine with the builtin operation table, modified by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		prec: precAtomic,
		ops:  builtins(),
		vars: make(map[string]float64),
		rand: defaultRand(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			e.register(opt.name)
			e.vars[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				e.register(k)
				e.vars[k] = v
			}
		case randopt:
			if opt != nil {
				e.rand = opt
			}
		case opopt:
			if opt.op.kind == OpNone {
				delete(e.ops, opt.symbol)
				continue
			}
			e.ops[opt.symbol] = opt.op
		default:
			panic("calculator: unknown option type")
		}
	}
	return e
}

// SetOperand enters a number.
func (e *Engine) SetOperand(v float64) {
	e.program = append(e.program, Number(v))
	e.err = nil
	e.operand(v, formatNumber(v))
}

// SetOperandVar enters a variable. If name is not already in the operation
// table, it is added as a variable.
func (e *Engine) SetOperandVar(name string) {
	e.register(name)
	e.PerformOperation(name)
}

// SetVariable binds a variable and replays the program, so that every
// occurrence of the variable already entered sees the new value. The symbol
// becomes a variable even if it named another operation.
func (e *Engine) SetVariable(name string, v float64) {
	e.ops[name] = Variable()
	e.vars[name] = v
	e.replay()
}

// Variable returns the value bound to a variable and whether it is bound.
// Unbound variables evaluate to 0.
func (e *Engine) Variable(name string) (float64, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Variables returns a copy of the engine's variable bindings.
func (e *Engine) Variables() map[string]float64 {
	m := make(map[string]float64, len(e.vars))
	for k, v := range e.vars {
		m[k] = v
	}
	return m
}

// ClearVariables removes every variable binding and replays the program.
func (e *Engine) ClearVariables() {
	e.vars = make(map[string]float64)
	e.replay()
}

// PerformOperation enters an operation symbol. Symbols missing from the
// operation table are logged in the program and clear the error but
// otherwise do nothing.
func (e *Engine) PerformOperation(symbol string) {
	e.program = append(e.program, Symbol(symbol))
	e.err = nil
	op, ok := e.ops[symbol]
	if !ok {
		return
	}
	switch op.kind {
	case OpVariable:
		e.operand(e.vars[symbol], symbol)
	case OpNullary:
		gen := op.gen
		if gen == nil {
			gen = e.rand
		}
		e.operand(gen(), op.label)
	case OpConstant:
		e.operand(op.value, symbol)
	case OpUnary:
		if op.check != nil {
			e.fail(symbol, op.check(e.acc))
		}
		e.acc = op.unary(e.acc)
		e.desc = op.describe(e.desc)
		e.supplied()
	case OpBinary:
		// The current description is grouped against the previous binary
		// operation's precedence before that operation resolves, so
		// 2 + 3 × 4 is described as 2 + (3) × 4.
		if e.prec < op.prec {
			e.desc = "(" + e.desc + ")"
		}
		e.prec = op.prec
		e.resolve()
		e.pending = &pending{
			symbol: symbol,
			f:      op.binary,
			first:  e.acc,
			join:   op.join,
			text:   e.desc,
			check:  op.check2,
		}
	case OpEquals:
		e.resolve()
	}
}

// Apply enters a single program token: numbers as operands and symbols as
// operations. Symbols missing from the operation table are added as
// variables first.
func (e *Engine) Apply(t Token) {
	switch t.kind {
	case TokenNumber:
		e.SetOperand(t.num)
	case TokenSymbol:
		e.register(t.sym)
		e.PerformOperation(t.sym)
	}
}

// Result returns the current value.
func (e *Engine) Result() float64 {
	return e.acc
}

// Description returns a readable rendering of what has been entered. While a
// binary operation is pending and no second operand has been entered, its
// second operand is left empty, as in "2 +".
func (e *Engine) Description() string {
	p := e.pending
	if p == nil {
		return e.desc
	}
	if !p.second {
		return p.join(p.text, "")
	}
	return p.join(p.text, e.desc)
}

// IsPartialResult returns whether a binary operation is waiting for its
// second operand.
func (e *Engine) IsPartialResult() bool {
	return e.pending != nil
}

// Err returns the error reported by the most recent operation, if any. The
// error is advisory: the operation's result is computed regardless. Errors
// from the builtin operations are *DomainError.
func (e *Engine) Err() error {
	return e.err
}

// Clear resets the engine to its initial state and empties the program.
// Variable bindings and the operation table are kept.
func (e *Engine) Clear() {
	e.acc = 0
	e.pending = nil
	e.err = nil
	e.prec = precAtomic
	e.desc = ""
	e.program = nil
}

// UndoLast removes the last token from the program and replays the rest.
func (e *Engine) UndoLast() {
	if len(e.program) == 0 {
		e.Clear()
		return
	}
	e.SetProgram(e.program[:len(e.program)-1])
}

// Program returns a copy of the tokens the engine has accepted since it was
// last cleared.
func (e *Engine) Program() Program {
	return e.program.Clone()
}

// SetProgram clears the engine and replays p.
func (e *Engine) SetProgram(p Program) {
	// Clear drops e.program rather than truncating it, so p may alias it.
	e.Clear()
	for _, t := range p {
		e.Apply(t)
	}
}

// Lookup returns the operation bound to a symbol.
func (e *Engine) Lookup(symbol string) (Operation, bool) {
	op, ok := e.ops[symbol]
	return op, ok
}

// Symbols returns the sorted symbols of the engine's operation table,
// including variables registered so far.
func (e *Engine) Symbols() []string {
	r := make([]string, 0, len(e.ops))
	for k := range e.ops {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Clone creates an independent copy of the engine, including its program,
// variable bindings, operation table, and pending operation.
func (e *Engine) Clone() *Engine {
	n := *e
	n.program = e.program.Clone()
	n.ops = make(map[string]Operation, len(e.ops))
	for k, v := range e.ops {
		n.ops[k] = v
	}
	n.vars = e.Variables()
	if e.pending != nil {
		p := *e.pending
		n.pending = &p
	}
	return &n
}

// register adds name to the operation table as a variable unless the symbol
// is already known.
func (e *Engine) register(name string) {
	if _, ok := e.ops[name]; !ok {
		e.ops[name] = Variable()
	}
}

// operand replaces the current value and its description.
func (e *Engine) operand(v float64, text string) {
	e.acc = v
	e.desc = text
	e.supplied()
}

func (e *Engine) supplied() {
	if e.pending != nil {
		e.pending.second = true
	}
}

// resolve combines the pending binary operation, if any, with the current
// value.
func (e *Engine) resolve() {
	p := e.pending
	if p == nil {
		return
	}
	if p.check != nil {
		e.fail(p.symbol, p.check(p.first, e.acc))
	}
	e.desc = p.join(p.text, e.desc)
	e.acc = p.f(p.first, e.acc)
	e.pending = nil
}

func (e *Engine) fail(symbol string, err error) {
	if err != nil {
		e.err = &DomainError{Op: symbol, X: e.acc, Err: err}
	}
}

func (e *Engine) replay() {
	e.SetProgram(e.program)
}

// formatNumber renders a number for descriptions. The format is C's %g: six
// significant digits without trailing zeros, independent of locale.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
