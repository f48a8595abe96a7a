// Package network provides the neural building blocks of the toolkit:
// lazily built dense layers with manual backward passes, an MLP classifier,
// and a permutation-invariant DeepSet summary network.
//
// Layers follow a forward/backward contract rather than taped autodiff: each
// Forward caches what its Backward needs, Backward accumulates parameter
// gradients and returns the gradient with respect to its input. Shapes are
// validated with panics, matching the backend's programmer-error convention.
package network

import (
	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Stage identifies which phase of the training lifecycle a metrics pass
// belongs to. Sample-based metrics are skipped during training.
type Stage string

// Lifecycle stages.
const (
	StageTraining   Stage = "training"
	StageValidation Stage = "validation"
	StageInference  Stage = "inference"
)

// Layer is one differentiable stage of a network.
type Layer interface {
	// Forward computes the layer output and caches activations for Backward.
	Forward(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor

	// Backward consumes the gradient w.r.t. the output, accumulates
	// parameter gradients, and returns the gradient w.r.t. the input.
	// Must follow a Forward call.
	Backward(b tensor.Backend, grad *tensor.RawTensor) *tensor.RawTensor

	// Parameters returns the trainable parameters, empty for stateless
	// layers.
	Parameters() []*Parameter
}

// Classifier maps conditioning features to a feature representation that a
// logits projection turns into model scores.
type Classifier interface {
	serialization.Saveable
	Layer
}

// Summary reduces a set-valued input of shape (batch, set, features) to a
// fixed-size representation of shape (batch, summaryDim).
type Summary interface {
	serialization.Saveable
	Layer

	// ComputeMetrics runs the summary forward pass and returns its metrics.
	// The "outputs" entry holds the summary representation; a "loss" entry
	// is present only for self-supervised summary networks.
	ComputeMetrics(b tensor.Backend, x *tensor.RawTensor, stage Stage) (map[string]*tensor.RawTensor, error)
}

// Metric is a stateless sample metric evaluated outside the training stage.
type Metric interface {
	// Name is the metric key in reported metric maps.
	Name() string

	// Compute evaluates the metric for a batch, returning a scalar tensor.
	// Classifier metrics receive hard class predictions of shape [batch];
	// summary metrics receive the summary representation.
	Compute(b tensor.Backend, targets, outputs *tensor.RawTensor) *tensor.RawTensor
}
