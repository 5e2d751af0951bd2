// Package fieldode advances a nodal scalar field s coupled to an externally
// computed driving field u by explicit operator splitting: each node carries
// its own scalar ODE ds/dt = g(s, u) and is advanced one forward-Euler step
// per call, with the spatial problem that produces u left entirely to the
// collaborating solver.
package fieldode

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

/* Handles the per-node reaction integration. */

// Field holds the nodal state of the reaction integrator. The current and
// previous step values are kept in separate buffers so that the update for
// node i always reads the pre-step value; the copy into the previous buffer
// happens only once the full pass over all nodes has completed.
type Field struct {
	n        int
	dt       float64
	s        []float64 // current step values
	sPrev    []float64 // values of the previous completed step
	u        []float64 // driving field snapshot for the next advance
	reaction Reaction
	icSet    bool
	logger   kitlog.Logger
}

// New returns a Field using the provided reaction. A nil reaction selects
// Identity. The field is unconfigured until Redim is called.
func New(reaction Reaction) *Field {
	if reaction == nil {
		reaction = Identity{}
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", "fieldode")
	return &Field{reaction: reaction, logger: klog}
}

// SetLogger replaces the logger of this field.
func (f *Field) SetLogger(logger kitlog.Logger) {
	f.logger = logger
}

// SetReaction replaces the reaction evaluated on the next advance. A nil
// reaction selects Identity.
func (f *Field) SetReaction(r Reaction) {
	if r == nil {
		r = Identity{}
	}
	f.reaction = r
}

// Redim allocates the field for n nodes, discarding all previous state.
// Any initial condition set before this call is invalidated.
func (f *Field) Redim(n int) error {
	if n <= 0 {
		return InvalidSizeError{n}
	}
	f.n = n
	f.s = make([]float64, n)
	f.sPrev = make([]float64, n)
	f.u = make([]float64, n)
	f.icSet = false
	return nil
}

// SetTimeStep stores the step size used by AdvanceOneTimeStep. No constraint
// is placed on sign or magnitude; a zero step yields a no-op advance, and
// picking a stable step is the caller's responsibility.
func (f *Field) SetTimeStep(dt float64) {
	f.dt = dt
}

// TimeStep returns the current step size.
func (f *Field) TimeStep() float64 { return f.dt }

// SetInitialCondition copies one value per node into the field as the state
// of the (virtual) previous step.
func (f *Field) SetInitialCondition(values []float64) error {
	if f.n == 0 {
		return NotConfiguredError{Op: "SetInitialCondition", Missing: "field size"}
	}
	if len(values) != f.n {
		return DimensionMismatchError{Want: f.n, Got: len(values)}
	}
	copy(f.sPrev, values)
	copy(f.s, values)
	f.icSet = true
	return nil
}

// SetConstInitialCondition fills every node with the same initial value.
func (f *Field) SetConstInitialCondition(value float64) error {
	if f.n == 0 {
		return NotConfiguredError{Op: "SetConstInitialCondition", Missing: "field size"}
	}
	for i := range f.sPrev {
		f.sPrev[i] = value
		f.s[i] = value
	}
	f.icSet = true
	return nil
}

// SetConstInitialConditionAndStep sets a constant initial condition and the
// time step in a single call.
func (f *Field) SetConstInitialConditionAndStep(value, dt float64) error {
	if err := f.SetConstInitialCondition(value); err != nil {
		return err
	}
	f.dt = dt
	return nil
}

// SetDrivingField copies one driving value per node for the next advance.
// The field keeps no cross-step guarantee on u: callers must supply it
// before every advance, even when it is unchanged.
func (f *Field) SetDrivingField(values []float64) error {
	if f.n == 0 {
		return NotConfiguredError{Op: "SetDrivingField", Missing: "field size"}
	}
	if len(values) != f.n {
		return DimensionMismatchError{Want: f.n, Got: len(values)}
	}
	copy(f.u, values)
	return nil
}

// SetConstDrivingField fills the driving field with the same value for all nodes.
func (f *Field) SetConstDrivingField(value float64) error {
	if f.n == 0 {
		return NotConfiguredError{Op: "SetConstDrivingField", Missing: "field size"}
	}
	for i := range f.u {
		f.u[i] = value
	}
	return nil
}

// AdvanceOneTimeStep performs one forward-Euler step on every node:
// s[i] = sPrev[i] + dt*g(sPrev[i], u[i]). The previous-step buffer is
// updated only after the full pass, so the reaction never observes values
// from the step being computed. The update runs unconditionally for any dt.
func (f *Field) AdvanceOneTimeStep() error {
	if f.n == 0 {
		return NotConfiguredError{Op: "AdvanceOneTimeStep", Missing: "field size"}
	}
	if !f.icSet {
		return NotConfiguredError{Op: "AdvanceOneTimeStep", Missing: "initial condition"}
	}
	nanSeen := false
	for i := 0; i < f.n; i++ {
		f.s[i] = f.sPrev[i] + f.dt*f.reaction.Rate(f.sPrev[i], f.u[i])
		if !nanSeen && math.IsNaN(f.s[i]) {
			nanSeen = true
			f.logger.Log("level", "critical", "node", i, "s", "NaN", "sPrev", f.sPrev[i], "u", f.u[i], "dt", f.dt)
		}
	}
	copy(f.sPrev, f.s)
	return nil
}

// Size returns the number of nodes.
func (f *Field) Size() int { return f.n }

// State copies the values of the most recently completed step into the
// first Size() slots of out and returns the number of values written. The
// returned values are never from a partially computed step.
func (f *Field) State(out []float64) (int, error) {
	if f.n == 0 {
		return 0, NotConfiguredError{Op: "State", Missing: "field size"}
	}
	if len(out) < f.n {
		return 0, DimensionMismatchError{Want: f.n, Got: len(out)}
	}
	copy(out[:f.n], f.s)
	return f.n, nil
}

// Values returns a freshly allocated copy of the current state.
func (f *Field) Values() []float64 {
	values := make([]float64, f.n)
	copy(values, f.s)
	return values
}

func (f *Field) String() string {
	return fmt.Sprintf("Field{n=%d, dt=%g}", f.n, f.dt)
}
