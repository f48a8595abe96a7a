package simulator

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/eodole/BayesFlow/internal/tensor"
)

// ModelIndicesKey is the variable under which ModelComparisonSimulator
// reports which candidate model generated each sample.
const ModelIndicesKey = "model_indices"

// ModelComparisonSimulator draws each sample from one of several candidate
// simulators and labels it with a one-hot model index. Model assignment is
// categorical: uniform by default, or weighted via WithWeights.
//
// All candidate simulators must produce the same variable keys so their
// batches can be concatenated.
type ModelComparisonSimulator struct {
	simulators []Simulator
	weights    []float64
	dist       distuv.Categorical
}

// Option configures a ModelComparisonSimulator.
type Option func(*config)

type config struct {
	weights []float64
	seed    uint64
}

// WithWeights sets per-model sampling weights. Weights must be positive and
// match the number of simulators; they are normalized internally.
func WithWeights(weights []float64) Option {
	return func(c *config) { c.weights = append([]float64(nil), weights...) }
}

// WithSeed fixes the random source for reproducible model assignment.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// NewModelComparison creates a simulator mixing the given candidates.
func NewModelComparison(simulators []Simulator, opts ...Option) (*ModelComparisonSimulator, error) {
	if len(simulators) == 0 {
		return nil, fmt.Errorf("model comparison: at least one simulator required: %w", tensor.ErrInvalidArgument)
	}
	cfg := config{seed: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	weights := cfg.weights
	if weights == nil {
		weights = make([]float64, len(simulators))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(simulators) {
		return nil, fmt.Errorf("model comparison: %d weights for %d simulators: %w",
			len(weights), len(simulators), tensor.ErrInvalidArgument)
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("model comparison: weights must be positive, got %v: %w", w, tensor.ErrInvalidArgument)
		}
	}
	return &ModelComparisonSimulator{
		simulators: simulators,
		weights:    weights,
		dist:       distuv.NewCategorical(weights, rand.NewSource(cfg.seed)),
	}, nil
}

// NumModels returns the number of candidate simulators.
func (m *ModelComparisonSimulator) NumModels() int { return len(m.simulators) }

// Sample draws batchSize samples. Each sample's model is drawn from the
// categorical assignment distribution; per-model sub-batches are generated
// in one call each and concatenated, with one-hot labels under
// ModelIndicesKey.
func (m *ModelComparisonSimulator) Sample(batchSize int) (map[string]*tensor.RawTensor, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("model comparison: batch size must be positive, got %d: %w",
			batchSize, tensor.ErrInvalidArgument)
	}

	counts := make([]int, len(m.simulators))
	for i := 0; i < batchSize; i++ {
		counts[int(m.dist.Rand())]++
	}

	var keys []string
	batches := make([]map[string]*tensor.RawTensor, 0, len(m.simulators))
	order := make([]int, 0, len(m.simulators))
	for model, n := range counts {
		if n == 0 {
			continue
		}
		batch, err := m.simulators[model].Sample(n)
		if err != nil {
			return nil, fmt.Errorf("model comparison: simulator %d: %w", model, err)
		}
		if keys == nil {
			for k := range batch {
				keys = append(keys, k)
			}
			sort.Strings(keys)
		} else if err := sameKeys(keys, batch); err != nil {
			return nil, fmt.Errorf("model comparison: simulator %d: %w", model, err)
		}
		batches = append(batches, batch)
		order = append(order, model)
	}

	out := make(map[string]*tensor.RawTensor, len(keys)+1)
	for _, key := range keys {
		tensors := make([]*tensor.RawTensor, 0, len(batches))
		for _, batch := range batches {
			tensors = append(tensors, batch[key])
		}
		joined, err := concatBatches(tensors)
		if err != nil {
			return nil, fmt.Errorf("model comparison: variable %q: %w", key, err)
		}
		out[key] = joined
	}

	// One-hot labels, aligned with the concatenation order.
	labels := tensor.Zeros(tensor.Shape{batchSize, len(m.simulators)}, tensor.Float32)
	data := labels.AsFloat32()
	row := 0
	for _, model := range order {
		n := counts[model]
		for j := 0; j < n; j++ {
			data[row*len(m.simulators)+model] = 1
			row++
		}
	}
	out[ModelIndicesKey] = labels
	return out, nil
}

func sameKeys(keys []string, batch map[string]*tensor.RawTensor) error {
	if len(batch) != len(keys) {
		return fmt.Errorf("produced %d variables, want %d: %w", len(batch), len(keys), tensor.ErrInvalidArgument)
	}
	for _, k := range keys {
		if _, ok := batch[k]; !ok {
			return fmt.Errorf("missing variable %q: %w", k, tensor.ErrInvalidArgument)
		}
	}
	return nil
}

// concatBatches joins per-model batches along the leading axis.
func concatBatches(tensors []*tensor.RawTensor) (*tensor.RawTensor, error) {
	if len(tensors) == 1 {
		return tensors[0], nil
	}
	first := tensors[0]
	rows := 0
	for _, t := range tensors {
		if t.DType() != first.DType() || !t.Shape()[1:].Equal(first.Shape()[1:]) {
			return nil, fmt.Errorf("incompatible sub-batch shapes %v and %v: %w",
				first.Shape(), t.Shape(), tensor.ErrInvalidArgument)
		}
		rows += t.Shape()[0]
	}
	shape := append(tensor.Shape{rows}, first.Shape()[1:]...)
	out := tensor.Zeros(shape, first.DType())
	offset := 0
	for _, t := range tensors {
		offset += copy(out.Data()[offset:], t.Data())
	}
	return out, nil
}
