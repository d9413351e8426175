package app

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReactive(t *testing.T) {
	tests := []struct {
		a, b byte
		want bool
	}{
		{'a', 'A', true},
		{'A', 'a', true},
		{'z', 'Z', true},
		{'a', 'a', false},
		{'A', 'A', false},
		{'a', 'B', false},
		{'b', 'A', false},
		{'1', '1', false},
		{'[', '{', false},
		{'@', '`', false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsReactive(tt.a, tt.b), "IsReactive(%q, %q)", tt.a, tt.b)
	}
}

func TestReactRemovesFirstPairOnly(t *testing.T) {
	in := Polymer("xaAbBy")
	next, changed := React(in)

	require.True(t, changed)
	assert.Equal(t, "xbBy", next.String())
	assert.Equal(t, "xaAbBy", in.String(), "input must not be modified")
}

func TestReactNoPair(t *testing.T) {
	in := Polymer("abAB")
	next, at := ReactAt(in)

	assert.Equal(t, -1, at)
	assert.Equal(t, "abAB", next.String())
}

func TestReactShortInputs(t *testing.T) {
	for _, s := range []string{"", "a"} {
		_, changed := React(Polymer(s))
		assert.False(t, changed, "input %q", s)
	}
}

func TestReduceScenarios(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		reactions int
	}{
		{"", "", 0},
		{"aA", "", 1},
		{"abBA", "", 2},
		{"abAB", "abAB", 0},
		{"aabAAB", "aabAAB", 0},
		{"dabAcCaCBAcCcaDA", "dabCBAcaDA", 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, err := Reduce(Polymer(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Polymer.String())
			assert.Equal(t, tt.reactions, res.Reactions)
			assert.Equal(t, len(tt.in), res.InputLen)
			assert.Equal(t, len(tt.want), res.OutputLen)
			assert.Equal(t, Rescan, res.Strategy)
		})
	}
}

func TestReduceTracer(t *testing.T) {
	var steps []Step
	_, err := Reduce(Polymer("dabAcCaCBAcCcaDA"), WithTracer(func(s Step) {
		steps = append(steps, s)
	}))
	require.NoError(t, err)

	want := []Step{
		{N: 1, At: 4, Pair: "cC", Len: 14},
		{N: 2, At: 3, Pair: "Aa", Len: 12},
		{N: 3, At: 6, Pair: "cC", Len: 10},
	}
	assert.Equal(t, want, steps)
}

func TestReduceInvariantViolation(t *testing.T) {
	broken := func(p Polymer) (Polymer, int) {
		if len(p) < 2 {
			return p, -1
		}
		return p, 0
	}

	res, err := Reduce(Polymer("aA"), WithReactor(broken))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInvariantViolation))

	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Step)
	assert.Equal(t, 2, ie.Before)
	assert.Equal(t, 2, ie.After)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestReduceInvariantBadIndex(t *testing.T) {
	broken := func(p Polymer) (Polymer, int) {
		if len(p) < 2 {
			return p, -1
		}
		return p[2:], len(p)
	}

	_, err := Reduce(Polymer("abcd"), WithReactor(broken))
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestReduceStackMatchesReduce(t *testing.T) {
	for _, s := range append(randomPolymers(200), "", "aA", "abBA", "dabAcCaCBAcCcaDA") {
		want, err := Reduce(Polymer(s))
		require.NoError(t, err)

		got := ReduceStack(Polymer(s))
		want.Strategy = Stack
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("ReduceStack(%q) mismatch (-rescan +stack):\n%s", s, diff)
		}
	}
}

func TestReduceStackTracer(t *testing.T) {
	var pairs []string
	res := ReduceStack(Polymer("abBA"), WithTracer(func(s Step) {
		pairs = append(pairs, s.Pair)
	}))

	assert.Equal(t, "", res.Polymer.String())
	assert.Equal(t, []string{"bB", "aA"}, pairs)
}

func TestReduceProperties(t *testing.T) {
	for _, s := range randomPolymers(500) {
		res, err := Reduce(Polymer(s))
		require.NoError(t, err)
		out := res.Polymer

		assert.LessOrEqual(t, len(out), len(s))
		assert.Equal(t, len(s)-2*res.Reactions, len(out), "input %q", s)

		for i := 0; i+1 < len(out); i++ {
			if IsReactive(out[i], out[i+1]) {
				t.Fatalf("reactive pair left at %d in %q (input %q)", i, out, s)
			}
		}

		again, err := Reduce(out)
		require.NoError(t, err)
		assert.Equal(t, out.String(), again.Polymer.String(), "reduce must be idempotent")
		assert.Zero(t, again.Reactions)
	}
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{"": Rescan, "rescan": Rescan, "STACK": Stack, " stack ": Stack} {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStrategy("random")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStrategyReduce(t *testing.T) {
	for _, s := range []Strategy{Rescan, Stack} {
		res, err := s.Reduce(Polymer("dabAcCaCBAcCcaDA"))
		require.NoError(t, err)
		assert.Equal(t, "dabCBAcaDA", res.Polymer.String())
		assert.Equal(t, s, res.Strategy)
	}
}

// randomPolymers строит короткие полимеры из маленького алфавита, чтобы реакций было много
func randomPolymers(n int) []string {
	const alphabet = "aAbBcC"
	rnd := rand.New(rand.NewSource(5))
	out := make([]string, n)
	for i := range out {
		b := make([]byte, rnd.Intn(40))
		for j := range b {
			b[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		out[i] = string(b)
	}
	return out
}
