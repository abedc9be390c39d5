package control

import "github.com/san-kum/pulsejet/internal/params"

// Controller trims the parameters for the frame at simulated time t. The
// second result is the correction applied, for effort metrics.
type Controller interface {
	Adjust(t float64, p params.Params) (params.Params, float64)
	Reset()
}

type None struct{}

func NewNone() *None { return &None{} }

func (*None) Adjust(_ float64, p params.Params) (params.Params, float64) { return p, 0 }

func (*None) Reset() {}
