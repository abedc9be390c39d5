package optim

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

// Axis is one searched knob and the values tried for it.
type Axis struct {
	Field  params.Field
	Values []float64
}

// Linspace spans the field's full range in n evenly spaced values.
func Linspace(f params.Field, n int) Axis {
	lo, hi, _ := f.Range()
	if n < 2 {
		return Axis{Field: f, Values: []float64{lo}}
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	vals[n-1] = hi
	return Axis{Field: f, Values: vals}
}

// Objective scores an operating point. Lower cost is better.
type Objective struct {
	Name string
	Cost func(p params.Params, s telemetry.Snapshot) float64
}

var objectives = map[string]Objective{
	"thrust": {"thrust", func(_ params.Params, s telemetry.Snapshot) float64 {
		return -s.Thrust
	}},
	"efficiency": {"efficiency", func(p params.Params, s telemetry.Snapshot) float64 {
		if p.FuelFlow <= 0 {
			return math.Inf(1)
		}
		return -s.Thrust / p.FuelFlow
	}},
	"resonance": {"resonance", func(_ params.Params, s telemetry.Snapshot) float64 {
		return -s.Resonance
	}},
	"cool": {"cool", func(_ params.Params, s telemetry.Snapshot) float64 {
		return s.ChamberTemp
	}},
}

func GetObjective(name string) (Objective, error) {
	o, ok := objectives[strings.ToLower(name)]
	if !ok {
		return Objective{}, fmt.Errorf("unknown objective %q (have %s)", name, strings.Join(ObjectiveNames(), ", "))
	}
	return o, nil
}

func ObjectiveNames() []string {
	names := make([]string, 0, len(objectives))
	for n := range objectives {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Result is the best point found.
type Result struct {
	Params    params.Params
	Telemetry telemetry.Snapshot
	Cost      float64
	Evaluated int
	Rejected  int
}

// GridSearch evaluates every combination of its axes.
type GridSearch struct {
	axes []Axis
	// MaxTemp rejects points whose chamber runs hotter, 0 disables.
	MaxTemp float64
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// point decodes a flat grid index onto base.
func (g *GridSearch) point(base params.Params, idx int) params.Params {
	p := base
	for i := len(g.axes) - 1; i >= 0; i-- {
		a := g.axes[i]
		p = p.Set(a.Field, a.Values[idx%len(a.Values)])
		idx /= len(a.Values)
	}
	return p
}

// Search scores every grid point in parallel. Knobs not on an axis keep
// their value from base. Ties go to the earliest grid point.
func (g *GridSearch) Search(ctx context.Context, base params.Params, obj Objective) (Result, error) {
	n := g.Size()
	if n == 0 {
		return Result{}, fmt.Errorf("empty grid: %w", dynamo.ErrParameterBounds)
	}

	type local struct {
		idx      int
		cost     float64
		rejected int
	}
	var (
		mu   sync.Mutex
		best = local{idx: -1, cost: math.Inf(1)}
		rej  int
	)

	dynamo.ParallelFor(n, 256, func(start, end int) {
		l := local{idx: -1, cost: math.Inf(1)}
		for i := start; i < end; i++ {
			if i%1024 == 0 && ctx.Err() != nil {
				return
			}
			p := g.point(base, i)
			s := telemetry.FromParams(p)
			if g.MaxTemp > 0 && s.ChamberTemp > g.MaxTemp {
				l.rejected++
				continue
			}
			if c := obj.Cost(p, s); c < l.cost {
				l.idx, l.cost = i, c
			}
		}
		mu.Lock()
		defer mu.Unlock()
		rej += l.rejected
		if l.idx >= 0 && (l.cost < best.cost || (l.cost == best.cost && l.idx < best.idx)) {
			best = l
		}
	})

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if best.idx < 0 {
		return Result{Evaluated: n, Rejected: rej}, fmt.Errorf("no grid point satisfies the constraints: %w", dynamo.ErrParameterBounds)
	}

	p := g.point(base, best.idx)
	return Result{
		Params:    p,
		Telemetry: telemetry.FromParams(p),
		Cost:      best.cost,
		Evaluated: n,
		Rejected:  rej,
	}, nil
}
