package calculator

// Option is an option used when creating an engine.
type Option interface {
	engineOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	randopt func() float64
	opopt   struct {
		symbol string
		op     Operation
	}
)

func (varopt) engineOption()  {}
func (varsopt) engineOption() {}
func (randopt) engineOption() {}
func (opopt) engineOption()   {}

// SetVar binds a variable in the engine.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

// SetVars binds any number of variables in the engine.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

// RandSource sets the generator used by nullary operations that have none of
// their own, including the builtin rand. f must return values in [0, 1).
func RandSource(f func() float64) Option {
	return randopt(f)
}

// WithOperation adds or replaces an entry in the engine's operation table.
// Passing the zero Operation removes the symbol, so that it is treated as a
// variable when it appears in a program.
func WithOperation(symbol string, op Operation) Option {
	return opopt{symbol, op}
}
