package problemgen

import (
	"slices"
	"strconv"
	"strings"
)

// CheckAnswer reports whether value is the correct answer to p.
func CheckAnswer(p Problem, value int) bool {
	return value == p.CorrectAnswer
}

// OptionIndex returns the position of value in p.Options, or -1.
func OptionIndex(p Problem, value int) int {
	return slices.Index(p.Options, value)
}

// CorrectIndex returns the position of the correct answer in p.Options.
func CorrectIndex(p Problem) int {
	return OptionIndex(p, p.CorrectAnswer)
}

// ParseChoice resolves typed input against p's options. Input is either an
// option value or a 1-based option number; a value match wins when both
// apply. Whitespace is trimmed.
func ParseChoice(p Problem, input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	if slices.Contains(p.Options, n) {
		return n, true
	}
	if n >= 1 && n <= len(p.Options) {
		return p.Options[n-1], true
	}
	return 0, false
}
