package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/pulsejet/internal/control"
	"github.com/san-kum/pulsejet/internal/metrics"
	"github.com/san-kum/pulsejet/internal/params"
)

type Registry struct {
	controllers map[string]func(map[string]float64) (control.Controller, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		controllers: make(map[string]func(map[string]float64) (control.Controller, error)),
	}

	r.controllers["none"] = func(map[string]float64) (control.Controller, error) {
		return control.NewNone(), nil
	}
	r.controllers["hold-thrust"] = func(opts map[string]float64) (control.Controller, error) {
		target, ok := opts["target"]
		if !ok || target <= 0 {
			return nil, fmt.Errorf("hold-thrust needs a positive target")
		}
		h := control.NewThrustHold(target)
		for _, k := range []string{"kp", "ki", "kd"} {
			if v, ok := opts[k]; ok {
				h.PID.SetParam(k, v)
			}
		}
		return h, nil
	}
	for _, f := range params.Fields() {
		f := f
		r.controllers["pin-"+f.String()] = func(opts map[string]float64) (control.Controller, error) {
			v, ok := opts["value"]
			if !ok {
				return nil, fmt.Errorf("pin-%s needs a value", f)
			}
			return control.NewPin(f, v), nil
		}
	}

	return r
}

func (r *Registry) GetController(name string, opts map[string]float64) (control.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(opts)
}

func (r *Registry) ListControllers() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return metrics.Defaults()
}
