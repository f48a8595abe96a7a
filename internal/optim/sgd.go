package optim

import (
	"github.com/eodole/BayesFlow/internal/network"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Without momentum:
//
//	param -= lr * grad
//
// With momentum:
//
//	velocity = momentum * velocity + grad
//	param -= lr * velocity
type SGD struct {
	params     []*network.Parameter
	lr         float32
	momentum   float32
	velocities map[*network.Parameter][]float32
}

// SGDConfig holds SGD hyperparameters.
type SGDConfig struct {
	LR       float32 // learning rate (default 0.01)
	Momentum float32 // momentum factor in [0, 1) (default 0)
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD(params []*network.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*network.Parameter][]float32),
	}
}

// Step applies one descent update to every parameter with a gradient.
func (s *SGD) Step() {
	for _, p := range s.params {
		if p.Grad() == nil {
			continue
		}
		value := p.Tensor().AsFloat32()
		grad := p.Grad().AsFloat32()

		if s.momentum == 0 {
			for i := range value {
				value[i] -= s.lr * grad[i]
			}
			continue
		}

		velocity, ok := s.velocities[p]
		if !ok {
			velocity = make([]float32, len(value))
			s.velocities[p] = velocity
		}
		for i := range value {
			velocity[i] = s.momentum*velocity[i] + grad[i]
			value[i] -= s.lr * velocity[i]
		}
	}
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() { zeroGrads(s.params) }

// GetLR returns the learning rate.
func (s *SGD) GetLR() float32 { return s.lr }

// SetLR updates the learning rate, e.g. for external scheduling.
func (s *SGD) SetLR(lr float32) { s.lr = lr }
