package app

import (
	"fmt"
	"strings"
)

type Strategy string

const (
	Rescan Strategy = "rescan"
	Stack  Strategy = "stack"
)

// ParseStrategy accepts "rescan", "stack" or an empty string (rescan).
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Rescan:
		return Rescan, nil
	case Stack:
		return Stack, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, s)
}

func (s Strategy) Reduce(p Polymer, opts ...Option) (*Result, error) {
	if s == Stack {
		return ReduceStack(p, opts...), nil
	}
	return Reduce(p, opts...)
}
