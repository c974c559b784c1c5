package calculator

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Operation is an entry in an engine's operation table. It is one of six
// kinds, each carrying only the data that kind needs. The zero Operation is
// invalid.
type Operation struct {
	kind OpKind

	// value is the value of a constant.
	value float64
	// label is the description of a nullary operation.
	label string
	// prec is the precedence of a binary operation.
	prec Precedence

	gen      func() float64
	unary    func(float64) float64
	binary   func(a, b float64) float64
	describe func(string) string
	join     func(a, b string) string
	check    func(float64) error
	check2   func(a, b float64) error
}

// OpKind is the kind of an Operation.
type OpKind int8

const (
	OpNone OpKind = iota

	OpConstant // fixed value, described by its symbol
	OpNullary  // generated value, described by a fixed label
	OpUnary    // transforms the current value
	OpBinary   // combines a pending first operand with the current value
	OpEquals   // resolves the pending binary operation
	OpVariable // value looked up in the variable bindings
)

func (k OpKind) String() string {
	switch k {
	case OpNone:
		return "None"
	case OpConstant:
		return "Constant"
	case OpNullary:
		return "Nullary"
	case OpUnary:
		return "Unary"
	case OpBinary:
		return "Binary"
	case OpEquals:
		return "Equals"
	case OpVariable:
		return "Variable"
	default:
		return "OpKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Precedence is the binding strength of a binary operation. It only decides
// where descriptions need parentheses; numeric evaluation is always left to
// right.
type Precedence int

const (
	PrecAdditive       Precedence = 0
	PrecMultiplicative Precedence = 1

	// precAtomic is the precedence of a description that never needs
	// parentheses: a number, a name, or a function application.
	precAtomic Precedence = math.MaxInt
)

// Kind returns the operation's kind.
func (op Operation) Kind() OpKind {
	return op.kind
}

// Precedence returns the precedence of a binary operation. Other kinds bind
// atomically.
func (op Operation) Precedence() Precedence {
	if op.kind != OpBinary {
		return precAtomic
	}
	return op.prec
}

// Constant creates an operation that sets the current value to v.
func Constant(v float64) Operation {
	return Operation{kind: OpConstant, value: v}
}

// Nullary creates an operation that sets the current value to the result of
// gen, described as label. A nil gen uses the engine's random source.
func Nullary(gen func() float64, label string) Operation {
	return Operation{kind: OpNullary, gen: gen, label: label}
}

// Unary creates an operation that transforms the current value with f and its
// description with describe. If check is not nil, it is called on the value
// before the transform; an error it returns becomes the engine's error but
// does not prevent the transform.
func Unary(f func(float64) float64, describe func(string) string, check func(float64) error) Operation {
	return Operation{kind: OpUnary, unary: f, describe: describe, check: check}
}

// Binary creates an operation that combines two values with f and their
// descriptions with join. check, if not nil, is called on the operands when
// the operation resolves.
func Binary(f func(a, b float64) float64, join func(a, b string) string, prec Precedence, check func(a, b float64) error) Operation {
	return Operation{kind: OpBinary, binary: f, join: join, prec: prec, check2: check}
}

// Equals creates an operation that resolves a pending binary operation.
func Equals() Operation {
	return Operation{kind: OpEquals}
}

// Variable creates an operation that looks up its own symbol in the engine's
// variable bindings.
func Variable() Operation {
	return Operation{kind: OpVariable}
}

// Sentinel errors reported by the builtin validators.
var (
	ErrDivideByZero = errors.New("division by zero")
	ErrLogNegative  = errors.New("log of negative number")
	ErrSqrtNegative = errors.New("sqrt of negative number")
)

// DomainError is the error an engine reports when a validator rejects the
// operands of an operation. DomainError unwraps to the validator's error.
type DomainError struct {
	// Op is the symbol of the operation.
	Op string
	// X is the current value when the operation ran. For a binary operation
	// it is the second operand.
	X float64
	// Err is the error returned by the validator.
	Err error
}

func (err *DomainError) Error() string {
	return err.Err.Error()
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// Infix returns a description function that joins two operands around sym.
// Empty operands are left out, so a binary operation still waiting for its
// second operand is described as "a sym".
func Infix(sym string) func(a, b string) string {
	return func(a, b string) string {
		parts := make([]string, 0, 3)
		if a != "" {
			parts = append(parts, a)
		}
		parts = append(parts, sym)
		if b != "" {
			parts = append(parts, b)
		}
		return strings.Join(parts, " ")
	}
}

// Wrap returns a description function that parenthesizes its operand between
// prefix and suffix, e.g. Wrap("ln", "") describes x as "ln(x)".
func Wrap(prefix, suffix string) func(string) string {
	return func(s string) string {
		return prefix + "(" + s + ")" + suffix
	}
}

func nonzero(x float64) error {
	if x == 0 {
		return ErrDivideByZero
	}
	return nil
}

func nonnegative(err error) func(float64) error {
	return func(x float64) error {
		if x < 0 {
			return err
		}
		return nil
	}
}

// pi and e are computed once with extended precision so that the constants
// are correctly rounded.
var pi, euler = func() (float64, float64) {
	var p, e, one big.Float
	p.SetPrec(64)
	e.SetPrec(64)
	one.SetPrec(64).SetFloat64(1)
	bigfloat.Pi(&p)
	bigfloat.Exp(&e, &one)
	pf, _ := p.Float64()
	ef, _ := e.Float64()
	return pf, ef
}()

// builtins returns a fresh copy of the default operation table.
func builtins() map[string]Operation {
	return map[string]Operation{
		"x²":  Unary(func(x float64) float64 { return x * x }, Wrap("", "²"), nil),
		"x⁻¹": Unary(func(x float64) float64 { return 1 / x }, Wrap("", "⁻¹"), nonzero),
		"sin⁻¹": Unary(
			func(x float64) float64 { return 1 / math.Sin(x) },
			Wrap("sin", "⁻¹"),
			func(x float64) error { return nonzero(math.Sin(x)) },
		),
		"cos⁻¹": Unary(
			func(x float64) float64 { return 1 / math.Cos(x) },
			Wrap("cos", "⁻¹"),
			func(x float64) error { return nonzero(math.Cos(x)) },
		),
		"tan": Unary(math.Tan, Wrap("tan", ""), nil),
		"ln":  Unary(math.Log, Wrap("ln", ""), nonnegative(ErrLogNegative)),
		"sin": Unary(math.Sin, Wrap("sin", ""), nil),
		"cos": Unary(math.Cos, Wrap("cos", ""), nil),
		"√":   Unary(math.Sqrt, Wrap("√", ""), nonnegative(ErrSqrtNegative)),
		"±":   Unary(func(x float64) float64 { return -x }, Wrap("-", ""), nil),

		"×": Binary(func(a, b float64) float64 { return a * b }, Infix("×"), PrecMultiplicative, nil),
		"÷": Binary(
			func(a, b float64) float64 { return a / b },
			Infix("÷"),
			PrecMultiplicative,
			func(a, b float64) error { return nonzero(b) },
		),
		"+": Binary(func(a, b float64) float64 { return a + b }, Infix("+"), PrecAdditive, nil),
		"−": Binary(func(a, b float64) float64 { return a - b }, Infix("−"), PrecAdditive, nil),

		"rand": Nullary(nil, "rand()"),
		"π":    Constant(pi),
		"e":    Constant(euler),
		"=":    Equals(),
	}
}

// defaultRand is the random source used by nullary operations without their
// own generator when no RandSource option is given.
func defaultRand() func() float64 {
	return rand.Float64
}
