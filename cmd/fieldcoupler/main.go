package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
	fieldode "github.com/hhc2tech/fenics-mixed"
)

// NOTE: This tool runs the lock-step coupling loop: the diffuser computes the
// driving field u from the previous reaction state, hands it over, the field
// advances one step, and the new state feeds back into the next diffusion
// update. The diffuser stands in for the external PDE solver.

/* === CONFIG === */
var (
	numNodes     int
	timeStep     float64
	numSteps     int
	reactionName string
	diffusivity  float64
	coupling     float64
	exportCSV    bool
)

/* ===  END  === */

func init() {
	flag.IntVar(&numNodes, "nodes", 0, "number of nodes (0 uses the configuration file value)")
	flag.Float64Var(&timeStep, "dt", 0, "time step (0 uses the configuration file value)")
	flag.IntVar(&numSteps, "steps", 0, "number of coupled steps (0 uses the configuration file value)")
	flag.StringVar(&reactionName, "reaction", "", "reaction: identity, linear, logistic or michaelismenten")
	flag.Float64Var(&diffusivity, "kappa", 0.25, "diffusivity of the driving field")
	flag.Float64Var(&coupling, "gamma", 1.0, "coupling coefficient of the reaction state into the diffusion source")
	flag.BoolVar(&exportCSV, "csv", false, "export every step as CSV to the configured output directory")
}

// diffuser is the collaborator side of the coupling: an explicit
// finite-difference update of the driving field on a 1-D unit grid, with
// the reaction state fed back as a source term. Reflecting boundaries.
type diffuser struct {
	op      *mat64.Dense // explicit update operator I + r*L
	u       *mat64.Vector
	scratch *mat64.Vector
	dt      float64
	gamma   float64
}

func newDiffuser(n int, dt, kappa, gamma float64) *diffuser {
	h := 1 / float64(n)
	r := kappa * dt / (h * h)
	if r > 0.5 {
		fmt.Fprintf(os.Stderr, "diffusion number %.3f exceeds 0.5, the driving field will blow up (reduce -dt or -kappa)\n", r)
	}
	op := mat64.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		op.Set(i, i, 1-2*r)
		if i > 0 {
			op.Set(i, i-1, r)
		}
		if i < n-1 {
			op.Set(i, i+1, r)
		}
	}
	// Reflecting boundaries: the missing neighbor folds back.
	op.Set(0, 0, 1-r)
	op.Set(n-1, n-1, 1-r)
	return &diffuser{
		op:      op,
		u:       mat64.NewVector(n, nil),
		scratch: mat64.NewVector(n, nil),
		dt:      dt,
		gamma:   gamma,
	}
}

// step diffuses the driving field once, sourcing from the reaction state of
// the previous completed step, and returns the new field values.
func (d *diffuser) step(s []float64) []float64 {
	d.scratch.MulVec(d.op, d.u)
	n := d.u.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		d.u.SetVec(i, d.scratch.At(i, 0)+d.dt*d.gamma*s[i])
		out[i] = d.u.At(i, 0)
	}
	return out
}

func reactionFromName(name string) fieldode.Reaction {
	switch name {
	case "identity":
		return fieldode.Identity{}
	case "linear":
		return fieldode.Linear{K: 1}
	case "logistic":
		return fieldode.Logistic{R: 1, Capacity: 1}
	case "michaelismenten":
		return fieldode.MichaelisMenten{VMax: 1, KM: 0.5}
	default:
		fmt.Fprintf(os.Stderr, "unknown reaction %q\n", name)
		os.Exit(1)
		return nil
	}
}

func main() {
	flag.Parse()
	conf := fieldode.ReadConfig()
	if numNodes <= 0 {
		numNodes = conf.NumNodes
	}
	if timeStep == 0 {
		timeStep = conf.TimeStep
	}
	if numSteps <= 0 {
		numSteps = conf.NumSteps
	}
	if reactionName == "" {
		reactionName = conf.Reaction
	}

	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", "fieldcoupler")

	field := fieldode.New(reactionFromName(reactionName))
	field.SetLogger(klog)
	if err := field.Redim(numNodes); err != nil {
		klog.Log("level", "critical", "err", err)
		os.Exit(1)
	}
	field.SetTimeStep(timeStep)

	// Gaussian bump centered on the grid as the initial reaction state.
	ic := make([]float64, numNodes)
	for i := range ic {
		x := (float64(i) + 0.5) / float64(numNodes)
		ic[i] = math.Exp(-100 * (x - 0.5) * (x - 0.5))
	}
	if err := field.SetInitialCondition(ic); err != nil {
		klog.Log("level", "critical", "err", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	histChan := make(chan fieldode.Snapshot, 1000)
	wg.Add(1)
	go func() {
		defer wg.Done()
		fieldode.StreamStates(fieldode.ExportConfig{Filename: reactionName, AsCSV: exportCSV, Timestamp: true}, histChan)
	}()

	diff := newDiffuser(numNodes, timeStep, diffusivity, coupling)
	s := field.Values()
	logEvery := numSteps / 10
	if logEvery == 0 {
		logEvery = 1
	}
	klog.Log("level", "info", "status", "starting", "field", field, "steps", numSteps, "reaction", reactionName)
	for step := 1; step <= numSteps; step++ {
		u := diff.step(s)
		if err := field.SetDrivingField(u); err != nil {
			klog.Log("level", "critical", "step", step, "err", err)
			os.Exit(1)
		}
		if err := field.AdvanceOneTimeStep(); err != nil {
			klog.Log("level", "critical", "step", step, "err", err)
			os.Exit(1)
		}
		s = field.Values()
		histChan <- fieldode.Snapshot{Step: step, T: float64(step) * timeStep, Values: s}
		if step%logEvery == 0 {
			klog.Log("level", "info", "step", step, "t", float64(step)*timeStep, "s[mid]", s[numNodes/2], "u[mid]", u[numNodes/2])
		}
	}
	close(histChan)
	wg.Wait() // Don't return until we're done writing the file.
	klog.Log("level", "notice", "status", "finished", "steps", numSteps)
}
