package app

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoInput            = errors.New("no input line")
	ErrLineTooLong        = errors.New("input line too long")
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// Polymer is an ordered sequence of units, one byte each.
type Polymer []byte

func (p Polymer) String() string {
	return string(p)
}

// InvariantError means a reaction was reported without the expected
// two-unit shrink. It is a bug in the reactor, never an input problem.
type InvariantError struct {
	Step   int
	Before int
	After  int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: reaction %d changed length %d -> %d", ErrInvariantViolation, e.Step, e.Before, e.After)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// Step describes one performed reaction.
type Step struct {
	N    int    // порядковый номер реакции
	At   int    // индекс первого элемента удалённой пары
	Pair string // удалённая пара, например "cC"
	Len  int    // длина полимера после реакции
}

// Result is the outcome of a full reduction.
type Result struct {
	Polymer   Polymer
	InputLen  int
	OutputLen int
	Reactions int
	Strategy  Strategy
}

// Reactor performs at most one reaction. It returns the index of the
// removed pair, or -1 when nothing reacted.
type Reactor func(p Polymer) (Polymer, int)

type options struct {
	tracer  func(Step)
	reactor Reactor
}

type Option func(*options)

// WithTracer registers a callback invoked after every reaction.
func WithTracer(fn func(Step)) Option {
	return func(o *options) {
		o.tracer = fn
	}
}

// WithReactor replaces the single-step reactor used by Reduce.
func WithReactor(r Reactor) Option {
	return func(o *options) {
		o.reactor = r
	}
}

func isLower(u byte) bool {
	return u >= 'a' && u <= 'z'
}

func isUpper(u byte) bool {
	return u >= 'A' && u <= 'Z'
}

// IsReactive reports whether a and b are the same letter in opposite case.
func IsReactive(a, b byte) bool {
	switch {
	case isLower(a) && isUpper(b):
		return a-'a' == b-'A'
	case isUpper(a) && isLower(b):
		return a-'A' == b-'a'
	}
	return false
}

// ReactAt removes the first reactive pair. The input is never modified;
// a new polymer is returned when a pair was found.
func ReactAt(p Polymer) (Polymer, int) {
	for i := 0; i+1 < len(p); i++ {
		if IsReactive(p[i], p[i+1]) {
			next := make(Polymer, 0, len(p)-2)
			next = append(next, p[:i]...)
			next = append(next, p[i+2:]...)
			return next, i
		}
	}
	return p, -1
}

// React is ReactAt without the index.
func React(p Polymer) (Polymer, bool) {
	next, at := ReactAt(p)
	return next, at >= 0
}

// Reduce reacts p until it is stable, rescanning from the start after
// every single reaction.
func Reduce(p Polymer, opts ...Option) (*Result, error) {
	o := options{reactor: ReactAt}
	for _, opt := range opts {
		opt(&o)
	}

	cur := p
	reactions := 0
	for {
		next, at := o.reactor(cur)
		if at < 0 {
			break
		}
		if len(next) != len(cur)-2 || at+1 >= len(cur) {
			return nil, &InvariantError{Step: reactions + 1, Before: len(cur), After: len(next)}
		}
		reactions++
		if o.tracer != nil {
			o.tracer(Step{N: reactions, At: at, Pair: string(cur[at : at+2]), Len: len(next)})
		}
		cur = next
	}

	return &Result{
		Polymer:   cur,
		InputLen:  len(p),
		OutputLen: len(cur),
		Reactions: reactions,
		Strategy:  Rescan,
	}, nil
}

// ReduceStack gives the same final polymer as Reduce in a single pass.
// Units are pushed onto a stack and a unit reacting with the top pops it.
// WithReactor has no effect here.
func ReduceStack(p Polymer, opts ...Option) *Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	stack := make(Polymer, 0, len(p))
	reactions := 0
	for i, u := range p {
		n := len(stack)
		if n > 0 && IsReactive(stack[n-1], u) {
			reactions++
			if o.tracer != nil {
				o.tracer(Step{
					N:    reactions,
					At:   n - 1,
					Pair: string([]byte{stack[n-1], u}),
					Len:  n - 1 + len(p) - i - 1,
				})
			}
			stack = stack[:n-1]
			continue
		}
		stack = append(stack, u)
	}

	return &Result{
		Polymer:   stack,
		InputLen:  len(p),
		OutputLen: len(stack),
		Reactions: reactions,
		Strategy:  Stack,
	}
}
