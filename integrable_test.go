package fieldode

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropagationRequiresConfiguration(t *testing.T) {
	f := New(nil)
	p := NewPropagation(f, 0, 1, 0.1)
	err := p.Propagate()
	assert.True(t, errors.Is(err, ErrNotConfigured))

	require.NoError(t, f.Redim(2))
	err = NewPropagation(f, 0, 1, 0.1).Propagate()
	assert.True(t, errors.Is(err, ErrNotConfigured), "propagation before an initial condition must fail")
}

func TestPropagationLinearDecay(t *testing.T) {
	// ds/dt = -s has the closed form s(t) = s0*exp(-t); RK4 with a small
	// fixed step must track it to well under a relative 1e-6 over one unit.
	f := New(ReactionFunc(func(s, u float64) float64 { return -s }))
	require.NoError(t, f.Redim(3))
	require.NoError(t, f.SetInitialCondition([]float64{1, 2, -4}))
	require.NoError(t, f.SetConstDrivingField(0))
	require.NoError(t, NewPropagation(f, 0, 1, 0.01).Propagate())
	exp := math.Exp(-1)
	for i, s0 := range []float64{1, 2, -4} {
		if !floats.EqualWithinAbs(f.Values()[i], s0*exp, 1e-5) {
			t.Fatalf("node %d = %f, expected %f", i, f.Values()[i], s0*exp)
		}
	}
}

func TestPropagationDrivenEquilibrium(t *testing.T) {
	// ds/dt = u - s with constant u relaxes every node to u.
	f := New(ReactionFunc(func(s, u float64) float64 { return u - s }))
	require.NoError(t, f.Redim(2))
	require.NoError(t, f.SetInitialCondition([]float64{0, 10}))
	require.NoError(t, f.SetConstDrivingField(5))
	require.NoError(t, NewPropagation(f, 0, 20, 0.05).Propagate())
	if !floats.EqualApprox(f.Values(), []float64{5, 5}, 1e-6) {
		t.Fatalf("after relaxation: %+v", f.Values())
	}
}

func TestPropagationUpdatesBothBuffers(t *testing.T) {
	// After a propagation, a plain Euler advance must start from the
	// propagated values, not from the pre-propagation state.
	f := New(Identity{})
	require.NoError(t, f.Redim(1))
	require.NoError(t, f.SetConstInitialCondition(1))
	require.NoError(t, f.SetConstDrivingField(0))
	require.NoError(t, NewPropagation(f, 0, 0.5, 0.05).Propagate())
	after := f.Values()[0]
	f.SetTimeStep(0)
	require.NoError(t, f.SetConstDrivingField(0))
	require.NoError(t, f.AdvanceOneTimeStep())
	if !floats.EqualWithinAbs(f.Values()[0], after, 1e-14) {
		t.Fatalf("zero-step advance moved the state from %f to %f", after, f.Values()[0])
	}
}
