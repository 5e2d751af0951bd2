package fieldode

import (
	"github.com/ChristopherRabotin/ode"
)

// Propagation drives a configured Field with the RK4 integrator over a time
// span, reusing the field's reaction as the per-node derivative. The driving
// field is held fixed for the whole span, so this is only meaningful between
// two hand-overs from the collaborating solver; the step-by-step coupling
// loop should use AdvanceOneTimeStep instead.
type Propagation struct {
	field      *Field
	start, end float64
	current    float64
	step       float64
}

// NewPropagation returns a Propagation of the given field from start to end
// with a fixed RK4 step.
func NewPropagation(f *Field, start, end, step float64) *Propagation {
	return &Propagation{field: f, start: start, end: end, current: start, step: step}
}

// Propagate integrates until the end time is reached. Blocking.
func (p *Propagation) Propagate() error {
	if p.field.n == 0 {
		return NotConfiguredError{Op: "Propagate", Missing: "field size"}
	}
	if !p.field.icSet {
		return NotConfiguredError{Op: "Propagate", Missing: "initial condition"}
	}
	p.current = p.start
	ode.NewRK4(p.start, p.step, p).Solve()
	return nil
}

// GetState returns the state for the integrator.
func (p *Propagation) GetState() []float64 {
	s := make([]float64, p.field.n)
	copy(s, p.field.sPrev)
	return s
}

// SetState sets the updated state. Each RK4 step is a completed step, so
// both buffers of the field are refreshed.
func (p *Propagation) SetState(t float64, s []float64) {
	copy(p.field.s, s)
	copy(p.field.sPrev, s)
}

// Func is the integration function: one reaction rate per node.
func (p *Propagation) Func(t float64, s []float64) []float64 {
	rates := make([]float64, p.field.n)
	for i := 0; i < p.field.n; i++ {
		rates[i] = p.field.reaction.Rate(s[i], p.field.u[i])
	}
	return rates
}

// Stop implements the stop call of the integrator.
func (p *Propagation) Stop(t float64) bool {
	p.current += p.step
	return p.current > p.end+1e-12
}
