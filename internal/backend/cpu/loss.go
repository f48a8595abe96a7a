package cpu

import (
	"fmt"
	"math"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// CategoricalCrossEntropy computes per-sample cross-entropy from logits.
//
// logits must have shape [batch, classes]. targets are either class indices
// with shape [batch] or one-hot/probability rows with shape [batch, classes].
// The log-sum-exp trick keeps the computation stable for large logits.
func (b *Backend) CategoricalCrossEntropy(targets, logits *tensor.RawTensor) *tensor.RawTensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cross entropy: logits must be 2D [batch, classes], got %v", shape))
	}
	batch, classes := shape[0], shape[1]

	tShape := targets.Shape()
	oneHot := false
	switch {
	case len(tShape) == 1 && tShape[0] == batch:
	case len(tShape) == 2 && tShape[0] == batch && tShape[1] == classes:
		oneHot = true
	default:
		panic(fmt.Sprintf("cross entropy: targets shape %v incompatible with logits %v", tShape, shape))
	}

	result, err := tensor.NewRaw(tensor.Shape{batch}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("cross entropy: %v", err))
	}
	out := result.AsFloat32()

	row := make([]float64, classes)
	for i := 0; i < batch; i++ {
		for c := 0; c < classes; c++ {
			row[c] = logits.FloatAt(i*classes + c)
		}
		logProbs := logSoftmax(row)

		if oneHot {
			loss := 0.0
			for c := 0; c < classes; c++ {
				loss -= targets.FloatAt(i*classes+c) * logProbs[c]
			}
			out[i] = float32(loss)
		} else {
			idx := int(targets.FloatAt(i))
			if idx < 0 || idx >= classes {
				panic(fmt.Sprintf("cross entropy: target index %d out of bounds for %d classes", idx, classes))
			}
			out[i] = float32(-logProbs[idx])
		}
	}

	return result
}

// logSoftmax computes log(softmax(z)) via log-sum-exp:
//
//	LogSoftmax(z)[i] = z[i] - (max(z) + log(Σ exp(z - max(z))))
func logSoftmax(z []float64) []float64 {
	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}

	sumExp := 0.0
	for _, v := range z {
		sumExp += math.Exp(v - maxZ)
	}
	logSumExp := maxZ + math.Log(sumExp)

	result := make([]float64, len(z))
	for i, v := range z {
		result[i] = v - logSumExp
	}
	return result
}
