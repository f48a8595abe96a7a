package network

import (
	"fmt"
	"math"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// CategoricalCrossEntropyMean computes the mean cross-entropy between
// targets and logits over the batch, as a 0-D tensor.
func CategoricalCrossEntropyMean(b tensor.Backend, targets, logits *tensor.RawTensor) *tensor.RawTensor {
	return b.Mean(b.CategoricalCrossEntropy(targets, logits))
}

// CrossEntropyBackward computes the gradient of the mean cross-entropy loss
// with respect to the logits: (softmax(logits) - onehot(targets)) / batch.
//
// Targets may be class indices of shape [batch] or one-hot rows of shape
// [batch, classes], matching CategoricalCrossEntropy.
func CrossEntropyBackward(b tensor.Backend, targets, logits *tensor.RawTensor) *tensor.RawTensor {
	if logits.NDim() != 2 {
		panic(fmt.Sprintf("cross entropy backward: logits must be [batch, classes], got %v", logits.Shape()))
	}
	batch, classes := logits.Shape()[0], logits.Shape()[1]

	grad := tensor.Zeros(tensor.Shape{batch, classes}, tensor.Float32)
	out := grad.AsFloat32()
	inv := float32(1) / float32(batch)

	for i := 0; i < batch; i++ {
		// softmax via max-shifted exponentials
		maxv := logits.FloatAt(i * classes)
		for j := 1; j < classes; j++ {
			if v := logits.FloatAt(i*classes + j); v > maxv {
				maxv = v
			}
		}
		sum := 0.0
		row := make([]float64, classes)
		for j := 0; j < classes; j++ {
			row[j] = math.Exp(logits.FloatAt(i*classes+j) - maxv)
			sum += row[j]
		}
		for j := 0; j < classes; j++ {
			out[i*classes+j] = float32(row[j]/sum) * inv
		}

		switch targets.NDim() {
		case 1:
			k := int(targets.FloatAt(i))
			if k < 0 || k >= classes {
				panic(fmt.Sprintf("cross entropy backward: target index %d out of range [0, %d)", k, classes))
			}
			out[i*classes+k] -= inv
		case 2:
			for j := 0; j < classes; j++ {
				out[i*classes+j] -= float32(targets.FloatAt(i*classes+j)) * inv
			}
		default:
			panic(fmt.Sprintf("cross entropy backward: targets must be [batch] or [batch, classes], got %v", targets.Shape()))
		}
	}
	return grad
}
