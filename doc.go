// Package calculator implements the engine of an immediate-execution
// calculator, the kind with a key for each operation and no parentheses.
//
// Keys are fed to an Engine one at a time. "2 + 3 × 4 =" is entered as
//
//	e := calculator.New()
//	e.SetOperand(2)
//	e.PerformOperation("+")
//	e.SetOperand(3)
//	e.PerformOperation("×")
//	e.SetOperand(4)
//	e.PerformOperation("=")
//
// after which e.Result() is 20, because each operation resolves the one
// before it. e.Description() is "2 + (3) × 4": the operand of × is grouped
// against the + still pending when × is entered.
//
// The engine remembers every key as its Program. Undo, rebinding a variable,
// and restoring a saved program all replay a program from scratch, so a
// variable entered early in a calculation follows its binding afterward.
// ScanKeys turns typed text such as "2 + 3 * 4 =" into keys.
package calculator
