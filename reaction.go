package fieldode

// Reaction defines the per-node reaction term of the field ODE. Rate
// evaluates g(s, u) for a single node given its own state s and its own
// driving value u. Implementations must not keep references to neighbor
// state: the advance loop relies on every node being independent.
type Reaction interface {
	Rate(s, u float64) float64
}

// ReactionFunc adapts a plain function to the Reaction interface.
type ReactionFunc func(s, u float64) float64

// Rate implements the Reaction interface.
func (f ReactionFunc) Rate(s, u float64) float64 { return f(s, u) }

/* Available reactions */

// Identity is the default reaction: the rate equals the local state, so a
// step scales every node by (1 + dt).
type Identity struct{}

// Rate implements the Reaction interface.
func (Identity) Rate(s, u float64) float64 { return s }

// Linear relaxes the node toward its driving value at rate K.
type Linear struct {
	K float64
}

// Rate implements the Reaction interface.
func (r Linear) Rate(s, u float64) float64 { return r.K * (u - s) }

// Logistic grows the node logistically up to Capacity at rate R, with the
// driving value acting as an additive source.
type Logistic struct {
	R        float64
	Capacity float64
}

// Rate implements the Reaction interface.
func (r Logistic) Rate(s, u float64) float64 {
	return r.R*s*(1-s/r.Capacity) + u
}

// MichaelisMenten produces the node state from the driving concentration
// with saturation kinetics, balanced by first-order removal of the state.
type MichaelisMenten struct {
	VMax float64
	KM   float64
}

// Rate implements the Reaction interface.
func (r MichaelisMenten) Rate(s, u float64) float64 {
	return r.VMax*u/(r.KM+u) - s
}
