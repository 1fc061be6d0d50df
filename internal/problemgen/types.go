package problemgen

import (
	"fmt"
	"strings"
)

// Operation is one of the four arithmetic operations a problem can use.
type Operation string

const (
	OpAdd      Operation = "ADD"
	OpSubtract Operation = "SUBTRACT"
	OpMultiply Operation = "MULTIPLY"
	OpDivide   Operation = "DIVIDE"
)

// Operations lists the concrete operations in the order MIXED draws from.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Symbol returns the operator glyph used in problem text and signatures.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return "?"
	}
}

// Commutative reports whether operand order is irrelevant for uniqueness.
func (o Operation) Commutative() bool {
	return o == OpAdd || o == OpMultiply
}

// Mode selects which operations a stage draws problems from.
type Mode string

const (
	ModeAdd      Mode = "ADD"
	ModeSubtract Mode = "SUBTRACT"
	ModeMultiply Mode = "MULTIPLY"
	ModeDivide   Mode = "DIVIDE"
	ModeMixed    Mode = "MIXED"
)

// Operation returns the single operation for a non-mixed mode.
func (m Mode) Operation() (Operation, bool) {
	switch m {
	case ModeAdd:
		return OpAdd, true
	case ModeSubtract:
		return OpSubtract, true
	case ModeMultiply:
		return OpMultiply, true
	case ModeDivide:
		return OpDivide, true
	}
	return "", false
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := m.Operation()
	return ok || m == ModeMixed
}

// ParseMode accepts a mode name case-insensitively, plus the short forms
// "add", "sub", "mul", "div" and "mix".
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADD":
		return ModeAdd, nil
	case "SUB", "SUBTRACT":
		return ModeSubtract, nil
	case "MUL", "MULTIPLY":
		return ModeMultiply, nil
	case "DIV", "DIVIDE":
		return ModeDivide, nil
	case "MIX", "MIXED":
		return ModeMixed, nil
	}
	return "", fmt.Errorf("unknown operation mode %q", s)
}

// Problem is a single multiple-choice arithmetic question. Problems are
// never mutated after generation.
type Problem struct {
	// ID is "<stagePrefix>-q<slot>". Skipped slots leave gaps.
	ID string

	// Text is the prompt, e.g. "12 × 7 = ?".
	Text string

	Operand1  int
	Operand2  int
	Operation Operation

	CorrectAnswer int

	// Options holds exactly four pairwise-distinct values, one of which is
	// CorrectAnswer, in display order.
	Options []int
}

// Signature returns the uniqueness key for an operation and its operands.
// Commutative operations are keyed on the ordered pair so "3 + 5" and
// "5 + 3" collide.
func Signature(op Operation, a, b int) string {
	if op.Commutative() {
		return fmt.Sprintf("%s_%d_%d", op.Symbol(), min(a, b), max(a, b))
	}
	return fmt.Sprintf("%s_%d_%d", op.Symbol(), a, b)
}

// Signature returns the uniqueness key of p.
func (p Problem) Signature() string {
	return Signature(p.Operation, p.Operand1, p.Operand2)
}

func formatText(op Operation, a, b int) string {
	return fmt.Sprintf("%d %s %d = ?", a, op.Symbol(), b)
}
