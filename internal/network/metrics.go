package network

import (
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Accuracy is the fraction of samples whose predicted class matches the
// target class. Predictions arrive as class indices of shape [batch];
// one-hot targets are reduced by argmax over the trailing axis.
type Accuracy struct{}

// Interface check.
var _ Metric = Accuracy{}

// Name returns "accuracy".
func (Accuracy) Name() string { return "accuracy" }

// Compute returns the match fraction as a 0-D Float32 tensor.
func (Accuracy) Compute(b tensor.Backend, targets, predicted *tensor.RawTensor) *tensor.RawTensor {
	expected := targets
	if expected.NDim() == predicted.NDim()+1 {
		expected = b.Argmax(expected, -1)
	}

	n := predicted.NumElements()
	hits := 0
	for i := 0; i < n; i++ {
		if predicted.FloatAt(i) == expected.FloatAt(i) {
			hits++
		}
	}
	out := tensor.Zeros(tensor.Shape{}, tensor.Float32)
	out.SetFloatAt(0, float64(hits)/float64(n))
	return out
}
